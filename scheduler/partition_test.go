package scheduler

import (
	"testing"

	"github.com/marchalgreen/rundeklar/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func player(id int, g models.Gender, c models.Category, maxRounds int) models.Player {
	return models.Player{ID: id, Gender: g, Category: c, MaxRounds: maxRounds}
}

func ids(players []models.Player) []int {
	out := make([]int, len(players))
	for i, p := range players {
		out[i] = p.ID
	}
	return out
}

func TestPartitionPoolRoundLimited(t *testing.T) {
	checkedIn := []models.Player{
		player(1, models.GenderMale, models.CategoryDouble, 0),   // X
		player(2, models.GenderFemale, models.CategorySingle, 0), // Y
		player(3, models.GenderMale, models.CategoryUnset, 1),    // Z, first round only
	}

	bench, inactive := PartitionPool(checkedIn, 2, nil, nil, nil)
	assert.Equal(t, []int{1, 2}, ids(bench))
	assert.Equal(t, []int{3}, ids(inactive))

	// assigned players appear in neither partition
	bench, inactive = PartitionPool(checkedIn, 2, map[int]bool{1: true}, nil, nil)
	assert.Equal(t, []int{2}, ids(bench))
	assert.Equal(t, []int{3}, ids(inactive))
}

func TestPartitionPoolRoundOne(t *testing.T) {
	checkedIn := []models.Player{
		player(1, models.GenderMale, models.CategoryDouble, 1),
		player(2, models.GenderMale, models.CategoryDouble, 0),
	}

	// MaxRounds only bites after round 1
	bench, inactive := PartitionPool(checkedIn, 1, nil, nil, nil)
	assert.Equal(t, []int{1, 2}, ids(bench))
	assert.Empty(t, inactive)
}

func TestPartitionPoolActivationOverride(t *testing.T) {
	checkedIn := []models.Player{
		player(1, models.GenderMale, models.CategoryDouble, 1),
	}

	bench, inactive := PartitionPool(checkedIn, 3, nil, nil, map[int]bool{1: true})
	assert.Equal(t, []int{1}, ids(bench))
	assert.Empty(t, inactive)
}

func TestPartitionPoolUnavailable(t *testing.T) {
	checkedIn := []models.Player{
		player(1, models.GenderMale, models.CategoryDouble, 0),
		player(2, models.GenderMale, models.CategoryDouble, 0),
	}

	bench, inactive := PartitionPool(checkedIn, 1, nil, map[int]bool{2: true}, nil)
	assert.Equal(t, []int{1}, ids(bench))
	assert.Equal(t, []int{2}, ids(inactive))
}

func TestPartitionPoolOrdering(t *testing.T) {
	checkedIn := []models.Player{
		player(1, models.GenderUnset, models.CategoryUnset, 0),
		player(2, models.GenderFemale, models.CategorySingle, 0),
		player(3, models.GenderFemale, models.CategoryDouble, 0),
		player(4, models.GenderMale, models.CategorySingle, 0),
		player(5, models.GenderMale, models.CategoryBoth, 0),
		player(6, models.GenderMale, models.CategoryDouble, 0),
	}

	bench, _ := PartitionPool(checkedIn, 1, nil, nil, nil)
	require.Len(t, bench, 6)
	// men before women before unset, double before both before single
	assert.Equal(t, []int{6, 5, 4, 3, 2, 1}, ids(bench))
}

func TestPartitionPoolStableWithinGroup(t *testing.T) {
	checkedIn := []models.Player{
		player(9, models.GenderMale, models.CategoryDouble, 0),
		player(4, models.GenderMale, models.CategoryDouble, 0),
		player(7, models.GenderMale, models.CategoryDouble, 0),
	}

	bench, _ := PartitionPool(checkedIn, 1, nil, nil, nil)
	assert.Equal(t, []int{9, 4, 7}, ids(bench), "check-in order must survive sorting")
}
