package services

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/marchalgreen/rundeklar/models"
	"github.com/marchalgreen/rundeklar/repositories"
	"github.com/marchalgreen/rundeklar/scheduler"
)

// nopDriver backs a *sql.DB whose transactions always succeed. The fake
// repositories ignore the executor they are handed, so only Begin/Commit
// need to work.
type nopDriver struct{}

func (nopDriver) Open(string) (driver.Conn, error) { return nopConn{}, nil }

type nopConn struct{}

func (nopConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not supported") }
func (nopConn) Close() error                        { return nil }
func (nopConn) Begin() (driver.Tx, error)           { return nopTx{}, nil }

type nopTx struct{}

func (nopTx) Commit() error   { return nil }
func (nopTx) Rollback() error { return nil }

var registerNopDriver sync.Once

func testDB() *sql.DB {
	registerNopDriver.Do(func() { sql.Register("nop", nopDriver{}) })
	db, err := sql.Open("nop", "")
	if err != nil {
		panic(err)
	}
	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testHub() *scheduler.Hub {
	return scheduler.NewHub(testLogger())
}

type fakeSessionRepo struct {
	nextID int
	active *models.TrainingSession
	ended  []int
}

func (f *fakeSessionRepo) Create(_ context.Context, session *models.TrainingSession) error {
	f.nextID++
	session.ID = f.nextID
	session.Status = models.SessionStatusActive
	f.active = session
	return nil
}

func (f *fakeSessionRepo) GetByID(_ context.Context, id int) (*models.TrainingSession, error) {
	if f.active != nil && f.active.ID == id {
		return f.active, nil
	}
	return nil, repositories.ErrSessionNotFound
}

func (f *fakeSessionRepo) GetActive(context.Context) (*models.TrainingSession, error) {
	if f.active == nil {
		return nil, repositories.ErrNoActiveSession
	}
	return f.active, nil
}

func (f *fakeSessionRepo) End(_ context.Context, _ repositories.SQLExecutor, id int) error {
	if f.active == nil || f.active.ID != id {
		return repositories.ErrSessionNotFound
	}
	f.ended = append(f.ended, id)
	f.active = nil
	return nil
}

type fakeCheckInRepo struct {
	checkIns []models.CheckIn
}

func (f *fakeCheckInRepo) Create(_ context.Context, checkIn *models.CheckIn) error {
	for _, c := range f.checkIns {
		if c.PlayerID == checkIn.PlayerID && c.SessionID == checkIn.SessionID {
			return repositories.ErrCheckInConflict
		}
	}
	checkIn.ID = len(f.checkIns) + 1
	f.checkIns = append(f.checkIns, *checkIn)
	return nil
}

func (f *fakeCheckInRepo) CheckOut(_ context.Context, sessionID, playerID int) error {
	for i, c := range f.checkIns {
		if c.SessionID == sessionID && c.PlayerID == playerID {
			f.checkIns = append(f.checkIns[:i], f.checkIns[i+1:]...)
			return nil
		}
	}
	return repositories.ErrCheckInNotFound
}

func (f *fakeCheckInRepo) ListActive(_ context.Context, sessionID int) ([]models.CheckIn, error) {
	out := make([]models.CheckIn, 0, len(f.checkIns))
	for _, c := range f.checkIns {
		if c.SessionID == sessionID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCheckInRepo) add(sessionID int, player models.Player) {
	p := player
	f.checkIns = append(f.checkIns, models.CheckIn{
		ID:        len(f.checkIns) + 1,
		SessionID: sessionID,
		PlayerID:  player.ID,
		Player:    &p,
	})
}

type fakeCourtRepo struct {
	saved    map[string][]models.Court
	stored   map[string][]models.Court
	failSave error
}

func newFakeCourtRepo() *fakeCourtRepo {
	return &fakeCourtRepo{
		saved:  make(map[string][]models.Court),
		stored: make(map[string][]models.Court),
	}
}

func courtKey(sessionID, round int) string {
	return fmt.Sprintf("%d/%d", sessionID, round)
}

func (f *fakeCourtRepo) SaveRoundCourts(_ context.Context, _ repositories.SQLExecutor, sessionID, round int, courts []models.Court) error {
	if f.failSave != nil {
		return f.failSave
	}
	f.saved[courtKey(sessionID, round)] = courts
	return nil
}

func (f *fakeCourtRepo) LoadRoundCourts(_ context.Context, sessionID, round int) ([]models.Court, error) {
	return f.stored[courtKey(sessionID, round)], nil
}

type fakePlayerRepo struct {
	players map[int]models.Player
}

func (f *fakePlayerRepo) GetByID(_ context.Context, id int) (*models.Player, error) {
	p, ok := f.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	return &p, nil
}

func (f *fakePlayerRepo) List(context.Context) ([]models.Player, error) {
	out := make([]models.Player, 0, len(f.players))
	for _, p := range f.players {
		out = append(out, p)
	}
	return out, nil
}

type fakeResultRepo struct {
	results []models.MatchResult
}

func (f *fakeResultRepo) Create(_ context.Context, result *models.MatchResult) error {
	result.ID = len(f.results) + 1
	f.results = append(f.results, *result)
	return nil
}

func (f *fakeResultRepo) ListBySession(_ context.Context, sessionID int) ([]models.MatchResult, error) {
	out := make([]models.MatchResult, 0)
	for _, r := range f.results {
		if r.SessionID == sessionID {
			out = append(out, r)
		}
	}
	return out, nil
}
