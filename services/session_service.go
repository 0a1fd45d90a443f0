package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/marchalgreen/rundeklar/models"
	"github.com/marchalgreen/rundeklar/repositories"
	"github.com/marchalgreen/rundeklar/scheduler"
	"github.com/marchalgreen/rundeklar/storage"
)

type SessionService interface {
	// Start returns the running session, creating one when none is
	// active. Idempotent.
	Start(ctx context.Context) (*models.TrainingSession, error)
	// End persists every non-empty round and closes the session. On
	// failure the in-memory board survives so ending can be retried.
	End(ctx context.Context) (*models.TrainingSession, error)
	Active(ctx context.Context) (*models.TrainingSession, error)
	// SelectRound switches the displayed round. Pure view change; the
	// round snapshot is hydrated from storage at most once.
	SelectRound(ctx context.Context, round int) (*BoardView, error)
}

type sessionService struct {
	db          *sql.DB
	live        *LiveBoard
	sessionRepo repositories.SessionRepository
	checkInRepo repositories.CheckInRepository
	courtRepo   repositories.CourtRepository
	resultRepo  repositories.ResultRepository
	archiver    storage.FileUploader // nil disables archiving
	hub         *scheduler.Hub
	logger      *slog.Logger
	maxCourts   int
	maxRounds   int
}

func NewSessionService(
	db *sql.DB,
	live *LiveBoard,
	sessionRepo repositories.SessionRepository,
	checkInRepo repositories.CheckInRepository,
	courtRepo repositories.CourtRepository,
	resultRepo repositories.ResultRepository,
	archiver storage.FileUploader,
	hub *scheduler.Hub,
	logger *slog.Logger,
	maxCourts, maxRounds int,
) SessionService {
	return &sessionService{
		db:          db,
		live:        live,
		sessionRepo: sessionRepo,
		checkInRepo: checkInRepo,
		courtRepo:   courtRepo,
		resultRepo:  resultRepo,
		archiver:    archiver,
		hub:         hub,
		logger:      logger,
		maxCourts:   maxCourts,
		maxRounds:   maxRounds,
	}
}

func (s *sessionService) Start(ctx context.Context) (*models.TrainingSession, error) {
	s.live.mu.Lock()
	defer s.live.mu.Unlock()

	if s.live.session != nil {
		return s.live.session, nil
	}

	session, err := s.sessionRepo.GetActive(ctx)
	switch {
	case err == nil:
		// a session survived a process restart; adopt it
		s.logger.Info("adopting active training session", slog.Int("session_id", session.ID))
	case errors.Is(err, repositories.ErrNoActiveSession):
		session = &models.TrainingSession{}
		if createErr := s.sessionRepo.Create(ctx, session); createErr != nil {
			return nil, fmt.Errorf("failed to start training session: %w", createErr)
		}
		s.logger.Info("training session started", slog.Int("session_id", session.ID))
	default:
		return nil, fmt.Errorf("failed to look up active session: %w", err)
	}

	s.live.session = session
	s.live.board = scheduler.NewBoard(s.maxCourts, s.maxRounds)
	s.live.round = 1
	return session, nil
}

func (s *sessionService) Active(ctx context.Context) (*models.TrainingSession, error) {
	s.live.mu.Lock()
	if s.live.session != nil {
		session := s.live.session
		s.live.mu.Unlock()
		return session, nil
	}
	s.live.mu.Unlock()

	session, err := s.sessionRepo.GetActive(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrNoActiveSession) {
			return nil, ErrNoActiveSession
		}
		return nil, err
	}
	return session, nil
}

func (s *sessionService) End(ctx context.Context) (*models.TrainingSession, error) {
	s.live.mu.Lock()
	defer s.live.mu.Unlock()

	if s.live.session == nil {
		return nil, ErrNoActiveSession
	}
	session := s.live.session
	final := s.live.board.FinalCourts()

	if err := s.persistFinal(ctx, session.ID, final); err != nil {
		// the board stays authoritative; the user retries the end
		s.logger.Error("session end failed", slog.Int("session_id", session.ID), slog.Any("error", err))
		return nil, fmt.Errorf("%w: %v", ErrSessionEndFailed, err)
	}

	now := time.Now()
	session.Status = models.SessionStatusEnded
	session.EndedAt = &now

	s.archiveSession(ctx, session, final)

	s.hub.BroadcastToRoom(s.live.roomID(), scheduler.BoardMessage{
		Type:    "SESSION_ENDED",
		Payload: session,
		RoomID:  s.live.roomID(),
	})

	s.live.session = nil
	s.live.board = nil
	s.live.round = 0

	s.logger.Info("training session ended",
		slog.Int("session_id", session.ID),
		slog.Int("persisted_rounds", len(final)))
	return session, nil
}

// persistFinal writes the non-empty rounds and the session status change
// in one transaction.
func (s *sessionService) persistFinal(ctx context.Context, sessionID int, final map[int][]models.Court) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				s.logger.Error("rollback failed", slog.Any("error", rbErr))
			}
		}
	}()

	rounds := make([]int, 0, len(final))
	for round := range final {
		rounds = append(rounds, round)
	}
	sort.Ints(rounds)

	for _, round := range rounds {
		if err = s.courtRepo.SaveRoundCourts(ctx, tx, sessionID, round, final[round]); err != nil {
			return err
		}
	}
	if err = s.sessionRepo.End(ctx, tx, sessionID); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit session end: %w", err)
	}
	return nil
}

// archiveSession uploads a JSON summary of the night to the configured
// bucket. Best effort: a failure is logged, never surfaced.
func (s *sessionService) archiveSession(ctx context.Context, session *models.TrainingSession, final map[int][]models.Court) {
	if s.archiver == nil {
		return
	}

	results, err := s.resultRepo.ListBySession(ctx, session.ID)
	if err != nil {
		s.logger.Warn("archive: failed to load match results", slog.Int("session_id", session.ID), slog.Any("error", err))
	}

	archive := struct {
		Session *models.TrainingSession `json:"session"`
		Rounds  map[int][]models.Court  `json:"rounds"`
		Results []models.MatchResult    `json:"results,omitempty"`
	}{Session: session, Rounds: final, Results: results}

	payload, err := json.Marshal(archive)
	if err != nil {
		s.logger.Error("archive: marshal failed", slog.Int("session_id", session.ID), slog.Any("error", err))
		return
	}

	key := fmt.Sprintf("sessions/%d/%s.json", session.ID, session.StartedAt.Format("2006-01-02"))
	if _, err := s.archiver.Upload(ctx, key, "application/json", strings.NewReader(string(payload))); err != nil {
		s.logger.Error("archive: upload failed", slog.Int("session_id", session.ID), slog.Any("error", err))
		return
	}
	s.logger.Info("session archived", slog.Int("session_id", session.ID), slog.String("key", key))
}

func (s *sessionService) SelectRound(ctx context.Context, round int) (*BoardView, error) {
	s.live.mu.Lock()
	defer s.live.mu.Unlock()

	if s.live.session == nil {
		return nil, ErrNoActiveSession
	}
	if round < 1 || round > s.live.board.MaxRounds() {
		return nil, scheduler.ErrRoundOutOfRange
	}

	// pool and stored courts are independent; load them in parallel
	g, gCtx := errgroup.WithContext(ctx)

	var checkIns []models.CheckIn
	g.Go(func() error {
		var err error
		checkIns, err = s.checkInRepo.ListActive(gCtx, s.live.session.ID)
		if err != nil {
			return fmt.Errorf("failed to load checked-in players: %w", err)
		}
		return nil
	})

	var stored []models.Court
	needHydration := !s.live.board.Visited(round)
	if needHydration {
		g.Go(func() error {
			var err error
			stored, err = s.courtRepo.LoadRoundCourts(gCtx, s.live.session.ID, round)
			if err != nil {
				return fmt.Errorf("failed to load stored courts for round %d: %w", round, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if needHydration && len(stored) > 0 {
		if err := s.live.board.Hydrate(round, stored); err != nil {
			return nil, err
		}
	}
	s.live.round = round

	return assembleBoardView(ctx, s.live, checkIns, s.courtRepo)
}
