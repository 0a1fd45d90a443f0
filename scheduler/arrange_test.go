package scheduler

import (
	"testing"

	"github.com/marchalgreen/rundeklar/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func benchOf(n int) []models.Player {
	players := make([]models.Player, n)
	for i := range players {
		players[i] = models.Player{ID: i + 1, Gender: models.GenderMale, Category: models.CategoryDouble}
	}
	return players
}

func TestAutoArrangeFirstRun(t *testing.T) {
	board := NewBoard(2, 4)
	rs, err := board.Round(1)
	require.NoError(t, err)

	result := rs.AutoArrange(benchOf(6), 1, false)

	assert.Equal(t, 2, result.FilledCourts)
	assert.Equal(t, 6, result.Placed)
	assert.Equal(t, 0, result.Leftover)
	assert.Equal(t, 4, rs.Courts[0].Occupied())
	assert.Equal(t, 2, rs.Courts[1].Occupied())
	assert.True(t, rs.Arranged())
}

func TestAutoArrangeLeftoverStaysOnBench(t *testing.T) {
	board := NewBoard(2, 4)
	rs, err := board.Round(1)
	require.NoError(t, err)

	result := rs.AutoArrange(benchOf(10), 1, false)

	assert.Equal(t, 2, result.FilledCourts)
	assert.Equal(t, 8, result.Placed)
	assert.Equal(t, 2, result.Leftover)
}

func TestAutoArrangeFirstRunLocksOccupiedCourts(t *testing.T) {
	board := NewBoard(3, 4)
	rs, err := board.Round(1)
	require.NoError(t, err)

	// court 2 was arranged by hand before the first auto pass
	require.NoError(t, rs.MoveToSlot(100, 2, 0))

	result := rs.AutoArrange(benchOf(8), 1, false)

	assert.True(t, rs.Locked[2], "pre-occupied court must be auto-locked")
	assert.Equal(t, []int{100}, rs.Courts[1].PlayerIDs(), "pre-occupied court must not be redistributed")
	assert.Equal(t, 2, result.FilledCourts)
	assert.Equal(t, 8, result.Placed)
}

func TestAutoArrangeRespectsExplicitLocks(t *testing.T) {
	board := NewBoard(2, 4)
	rs, err := board.Round(1)
	require.NoError(t, err)
	_, err = rs.ToggleLock(1)
	require.NoError(t, err)

	result := rs.AutoArrange(benchOf(6), 1, false)

	assert.True(t, rs.Courts[0].IsEmpty())
	assert.Equal(t, 1, result.FilledCourts)
	assert.Equal(t, 4, result.Placed)
	assert.Equal(t, 2, result.Leftover)
}

func TestAutoArrangeReshuffleClearsUnlocked(t *testing.T) {
	board := NewBoard(2, 4)
	rs, err := board.Round(1)
	require.NoError(t, err)

	pool := benchOf(8)
	rs.AutoArrange(pool, 1, false)
	_, err = rs.ToggleLock(1)
	require.NoError(t, err)
	lockedBefore := append([]int(nil), rs.Courts[0].Slots...)

	result := rs.AutoArrange(pool, 1, true)

	assert.Equal(t, lockedBefore, rs.Courts[0].Slots, "locked court survives a reshuffle")
	assert.Equal(t, 4, rs.Courts[1].Occupied(), "unlocked court is cleared and refilled")
	assert.Equal(t, 1, result.FilledCourts)
	assert.Equal(t, 0, result.Leftover)
}

func TestAutoArrangeReshuffleClearsAutoLockedCourts(t *testing.T) {
	board := NewBoard(2, 4)
	rs, err := board.Round(1)
	require.NoError(t, err)

	// court 1 was filled by hand, so the first pass auto-locks it
	require.NoError(t, rs.MoveToSlot(100, 1, 0))
	rs.AutoArrange(benchOf(8), 1, false)
	require.True(t, rs.Locked[1])

	// only user locks survive a reshuffle; the hand-filled court is
	// cleared and refilled like any other
	result := rs.AutoArrange(benchOf(8), 1, true)

	assert.False(t, rs.Locked[1], "auto-lock must not survive a reshuffle")
	assert.Equal(t, 4, rs.Courts[0].Occupied())
	assert.Equal(t, 4, rs.Courts[1].Occupied())
	_, _, found := rs.locate(100)
	assert.False(t, found, "hand-placed player returns to the bench pool")
	assert.Equal(t, 2, result.FilledCourts)
	assert.Equal(t, 8, result.Placed)
}

func TestAutoArrangeSkipsInactivePlayers(t *testing.T) {
	board := NewBoard(2, 4)
	rs, err := board.Round(2)
	require.NoError(t, err)

	pool := benchOf(5)
	pool[4].MaxRounds = 1 // sat out after round 1
	rs.MoveToInactive(3)

	result := rs.AutoArrange(pool, 2, false)

	assert.Equal(t, 3, result.Placed)
	_, _, found := rs.locate(3)
	assert.False(t, found)
	_, _, found = rs.locate(5)
	assert.False(t, found)
}
