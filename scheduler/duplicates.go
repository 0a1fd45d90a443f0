package scheduler

import (
	"sort"

	"github.com/marchalgreen/rundeklar/models"
)

// duplicateThreshold is the number of shared players that turns a court
// into a repeated grouping. Two players meeting again is expected; three
// or more means a near-identical constellation.
const duplicateThreshold = 3

// DuplicateReport maps flagged court numbers to the players that already
// shared a court in an earlier round. Advisory only; it never blocks a
// placement.
type DuplicateReport struct {
	Players map[int][]int `json:"players"`
}

func (r DuplicateReport) Flagged(courtNumber int) bool {
	return len(r.Players[courtNumber]) > 0
}

func (r DuplicateReport) Courts() []int {
	courts := make([]int, 0, len(r.Players))
	for n := range r.Players {
		courts = append(courts, n)
	}
	sort.Ints(courts)
	return courts
}

// FindDuplicates compares the current round's courts against every prior
// round. A current court with three or more occupants is flagged when at
// least duplicateThreshold of them stood on one court together in any
// earlier round; the intersecting players accumulate across prior rounds.
func FindDuplicates(round int, current []models.Court, prior map[int][]models.Court) DuplicateReport {
	report := DuplicateReport{Players: make(map[int][]int)}
	if round <= 1 {
		return report
	}

	for _, court := range current {
		ids := court.PlayerIDs()
		if len(ids) < duplicateThreshold {
			continue
		}
		idSet := make(map[int]bool, len(ids))
		for _, id := range ids {
			idSet[id] = true
		}

		flagged := make(map[int]bool)
		for prevRound := 1; prevRound < round; prevRound++ {
			for _, prevCourt := range prior[prevRound] {
				shared := make([]int, 0, duplicateThreshold)
				for _, id := range prevCourt.PlayerIDs() {
					if idSet[id] {
						shared = append(shared, id)
					}
				}
				if len(shared) >= duplicateThreshold {
					for _, id := range shared {
						flagged[id] = true
					}
				}
			}
		}

		if len(flagged) > 0 {
			players := make([]int, 0, len(flagged))
			for id := range flagged {
				players = append(players, id)
			}
			sort.Ints(players)
			report.Players[court.Number] = players
		}
	}
	return report
}
