package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marchalgreen/rundeklar/models"
	"github.com/marchalgreen/rundeklar/scheduler"
)

func TestValidateSets(t *testing.T) {
	cases := []struct {
		name string
		sets []models.SetScore
		err  error
	}{
		{"no sets", nil, ErrResultNoSets},
		{"four sets", []models.SetScore{{Home: 21, Away: 10}, {Home: 21, Away: 10}, {Home: 21, Away: 10}, {Home: 21, Away: 10}}, ErrResultTooManySets},
		{"regular win", []models.SetScore{{Home: 21, Away: 15}}, nil},
		{"shutout", []models.SetScore{{Home: 21, Away: 0}}, nil},
		{"deciding third set", []models.SetScore{{Home: 21, Away: 18}, {Home: 19, Away: 21}, {Home: 23, Away: 21}}, nil},
		{"extended win by two", []models.SetScore{{Home: 25, Away: 23}}, nil},
		{"cap at thirty", []models.SetScore{{Home: 30, Away: 29}}, nil},
		{"cap after deuce run", []models.SetScore{{Home: 30, Away: 28}}, nil},
		{"twenty-one twenty", []models.SetScore{{Home: 21, Away: 20}}, ErrResultInvalidSet},
		{"extended but not by two", []models.SetScore{{Home: 25, Away: 22}}, ErrResultInvalidSet},
		{"beyond the cap", []models.SetScore{{Home: 31, Away: 29}}, ErrResultInvalidSet},
		{"unfinished set", []models.SetScore{{Home: 15, Away: 9}}, ErrResultInvalidSet},
		{"negative score", []models.SetScore{{Home: 21, Away: -1}}, ErrResultInvalidSet},
		{"cap without deuce", []models.SetScore{{Home: 30, Away: 20}}, ErrResultInvalidSet},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateSets(tc.sets)
			if tc.err == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.err)
			}
		})
	}
}

func TestRecordRequiresActiveSession(t *testing.T) {
	svc := NewResultService(NewLiveBoard(), &fakeResultRepo{})

	_, err := svc.Record(context.Background(), 1, 1, []models.SetScore{{Home: 21, Away: 15}})
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestRecordStoresResult(t *testing.T) {
	live := NewLiveBoard()
	live.session = &models.TrainingSession{ID: 5, Status: models.SessionStatusActive}
	live.board = scheduler.NewBoard(8, 4)
	rs, err := live.board.Round(2)
	require.NoError(t, err)
	require.NoError(t, rs.MoveToSlot(7, 3, 0))

	repo := &fakeResultRepo{}
	svc := NewResultService(live, repo)
	ctx := context.Background()

	result, err := svc.Record(ctx, 2, 3, []models.SetScore{{Home: 21, Away: 19}, {Home: 18, Away: 21}, {Home: 21, Away: 12}})
	require.NoError(t, err)
	assert.Equal(t, 5, result.SessionID)
	assert.Equal(t, 2, result.Round)
	assert.Equal(t, 3, result.CourtNumber)
	assert.NotZero(t, result.ID)

	listed, err := svc.ListBySession(ctx, 5)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Len(t, listed[0].Sets, 3)
}

func TestRecordRejectsOutOfRangeTargets(t *testing.T) {
	live := NewLiveBoard()
	live.session = &models.TrainingSession{ID: 5, Status: models.SessionStatusActive}
	live.board = scheduler.NewBoard(8, 4)

	svc := NewResultService(live, &fakeResultRepo{})
	ctx := context.Background()

	// rounds the board never visited still go through range validation
	_, err := svc.Record(ctx, 99, 1, []models.SetScore{{Home: 21, Away: 15}})
	assert.ErrorIs(t, err, scheduler.ErrRoundOutOfRange)

	_, err = svc.Record(ctx, 0, 1, []models.SetScore{{Home: 21, Away: 15}})
	assert.ErrorIs(t, err, scheduler.ErrRoundOutOfRange)

	_, err = svc.Record(ctx, 1, 50, []models.SetScore{{Home: 21, Away: 15}})
	assert.ErrorIs(t, err, scheduler.ErrCourtOutOfRange)

	_, err = svc.Record(ctx, 1, 0, []models.SetScore{{Home: 21, Away: 15}})
	assert.ErrorIs(t, err, scheduler.ErrCourtOutOfRange)
}

func TestRecordRejectsEmptyCourt(t *testing.T) {
	live := NewLiveBoard()
	live.session = &models.TrainingSession{ID: 5, Status: models.SessionStatusActive}
	live.board = scheduler.NewBoard(8, 4)
	_, err := live.board.Round(1)
	require.NoError(t, err)

	svc := NewResultService(live, &fakeResultRepo{})

	_, err = svc.Record(context.Background(), 1, 4, []models.SetScore{{Home: 21, Away: 15}})
	assert.ErrorIs(t, err, ErrResultCourtNoPlayers)
}
