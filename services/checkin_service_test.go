package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marchalgreen/rundeklar/models"
	"github.com/marchalgreen/rundeklar/scheduler"
)

type checkInFixture struct {
	svc     CheckInService
	live    *LiveBoard
	players *fakePlayerRepo
	repo    *fakeCheckInRepo
}

func newCheckInFixture(t *testing.T) *checkInFixture {
	t.Helper()
	f := &checkInFixture{
		live: NewLiveBoard(),
		players: &fakePlayerRepo{players: map[int]models.Player{
			1: {ID: 1, Name: "Jonas"},
			2: {ID: 2, Name: "Mia"},
		}},
		repo: &fakeCheckInRepo{},
	}
	f.live.session = &models.TrainingSession{ID: 1, Status: models.SessionStatusActive}
	f.live.board = scheduler.NewBoard(8, 4)
	f.live.round = 1
	f.svc = NewCheckInService(f.live, f.repo, f.players, testHub())
	return f
}

func TestCheckInRequiresActiveSession(t *testing.T) {
	f := newCheckInFixture(t)
	f.live.session = nil

	_, err := f.svc.CheckIn(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestCheckInUnknownPlayer(t *testing.T) {
	f := newCheckInFixture(t)

	_, err := f.svc.CheckIn(context.Background(), 404)
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestCheckInTwice(t *testing.T) {
	f := newCheckInFixture(t)
	ctx := context.Background()

	checkIn, err := f.svc.CheckIn(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, checkIn.Player)
	assert.Equal(t, "Jonas", checkIn.Player.Name)

	_, err = f.svc.CheckIn(ctx, 1)
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
}

func TestCheckOutBenchesPlayerEverywhere(t *testing.T) {
	f := newCheckInFixture(t)
	ctx := context.Background()

	_, err := f.svc.CheckIn(ctx, 1)
	require.NoError(t, err)

	rs1, err := f.live.board.Round(1)
	require.NoError(t, err)
	require.NoError(t, rs1.MoveToSlot(1, 1, 0))
	rs2, err := f.live.board.Round(2)
	require.NoError(t, err)
	require.NoError(t, rs2.MoveToSlot(1, 4, 2))

	require.NoError(t, f.svc.CheckOut(ctx, 1))

	assert.Empty(t, rs1.AssignedPlayers())
	assert.Empty(t, rs2.AssignedPlayers())

	list, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCheckOutNotCheckedIn(t *testing.T) {
	f := newCheckInFixture(t)

	err := f.svc.CheckOut(context.Background(), 2)
	assert.ErrorIs(t, err, ErrPlayerNotCheckedIn)
}
