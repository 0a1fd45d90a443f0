package scheduler

import (
	"testing"

	"github.com/marchalgreen/rundeklar/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardRoundRange(t *testing.T) {
	board := NewBoard(8, 4)

	_, err := board.Round(0)
	assert.ErrorIs(t, err, ErrRoundOutOfRange)
	_, err = board.Round(5)
	assert.ErrorIs(t, err, ErrRoundOutOfRange)

	rs, err := board.Round(4)
	require.NoError(t, err)
	assert.Len(t, rs.Courts, 8)
}

func TestBoardRoundsAreIndependent(t *testing.T) {
	board := NewBoard(8, 4)

	r1, err := board.Round(1)
	require.NoError(t, err)
	require.NoError(t, r1.MoveToSlot(10, 1, 0))
	r1.MoveToInactive(20)

	r2, err := board.Round(2)
	require.NoError(t, err)
	assert.True(t, r2.Courts[0].IsEmpty())
	assert.False(t, r2.Unavailable[20], "exclusion sets must not carry over")
}

func TestNormalizeCourtsFillsGaps(t *testing.T) {
	partial := []models.Court{
		courtWith(3, 1, 2),
		{Number: 5, Capacity: 6, Slots: []int{9, 0, 0, 0, 0, 0}},
	}

	courts := normalizeCourts(partial, 8)
	require.Len(t, courts, 8)
	for i, c := range courts {
		assert.Equal(t, i+1, c.Number)
	}
	assert.Equal(t, []int{1, 2}, courts[2].PlayerIDs())
	assert.Equal(t, 6, courts[4].Capacity)
	assert.Equal(t, models.DefaultCourtCapacity, courts[0].Capacity)
}

func TestHydrateKeepsMemoryAuthoritative(t *testing.T) {
	board := NewBoard(8, 4)
	rs, err := board.Round(2)
	require.NoError(t, err)
	require.NoError(t, rs.MoveToSlot(10, 1, 0))

	// a later hydration from storage must not clobber live state
	require.NoError(t, board.Hydrate(2, []models.Court{courtWith(1, 99)}))
	assert.Equal(t, 10, rs.Courts[0].Slots[0])
}

func TestHydrateSeedsUnvisitedRound(t *testing.T) {
	board := NewBoard(8, 4)
	require.False(t, board.Visited(3))

	require.NoError(t, board.Hydrate(3, []models.Court{courtWith(2, 7, 8)}))
	require.True(t, board.Visited(3))

	rs, err := board.Round(3)
	require.NoError(t, err)
	assert.Equal(t, []int{7, 8}, rs.Courts[1].PlayerIDs())
}

func TestFinalCourtsSkipsEmptyRounds(t *testing.T) {
	board := NewBoard(8, 4)

	r1, err := board.Round(1)
	require.NoError(t, err)
	require.NoError(t, r1.MoveToSlot(10, 1, 0))

	// round 2 visited but never populated
	_, err = board.Round(2)
	require.NoError(t, err)

	final := board.FinalCourts()
	require.Len(t, final, 1)
	require.Len(t, final[1], 1)
	assert.Equal(t, 1, final[1][0].Number)
}
