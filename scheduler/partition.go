package scheduler

import (
	"sort"

	"github.com/marchalgreen/rundeklar/models"
)

// PartitionPool splits the checked-in pool into the bench (eligible for
// assignment this round) and the inactive list (excluded this round).
// Players already occupying a slot appear in neither. Pure function.
//
// A player is inactive when they are in the unavailable set, or when they
// are limited to one round (MaxRounds == 1), the round is past the first
// and no explicit activation was given.
func PartitionPool(checkedIn []models.Player, round int, assigned, unavailable, activations map[int]bool) (bench, inactive []models.Player) {
	bench = make([]models.Player, 0, len(checkedIn))
	inactive = make([]models.Player, 0)

	for _, p := range checkedIn {
		if assigned[p.ID] {
			continue
		}
		roundLimited := round > 1 && p.MaxRounds == 1 && !activations[p.ID]
		if roundLimited || unavailable[p.ID] {
			inactive = append(inactive, p)
		} else {
			bench = append(bench, p)
		}
	}

	sortPool(bench)
	sortPool(inactive)
	return bench, inactive
}

// sortPool orders players by gender group, then category group. Ties keep
// the incoming order, so the check-in sequence is the final tiebreak.
func sortPool(players []models.Player) {
	sort.SliceStable(players, func(i, j int) bool {
		gi, gj := genderRank(players[i].Gender), genderRank(players[j].Gender)
		if gi != gj {
			return gi < gj
		}
		return categoryRank(players[i].Category) < categoryRank(players[j].Category)
	})
}

func genderRank(g models.Gender) int {
	switch g {
	case models.GenderMale:
		return 0
	case models.GenderFemale:
		return 1
	default:
		return 2
	}
}

func categoryRank(c models.Category) int {
	switch c {
	case models.CategoryDouble:
		return 0
	case models.CategoryBoth:
		return 1
	case models.CategorySingle:
		return 2
	default:
		return 3
	}
}
