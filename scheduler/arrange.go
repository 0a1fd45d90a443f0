package scheduler

import "github.com/marchalgreen/rundeklar/models"

// ArrangeResult is the user feedback from an auto-arrange pass.
type ArrangeResult struct {
	FilledCourts int `json:"filled_courts"`
	Placed       int `json:"placed"`
	Leftover     int `json:"leftover"`
}

// AutoArrange distributes the bench over the unlocked courts of the round
// in partition order, court by court, up to each court's capacity.
//
// On the first pass for a round every court already holding a player is
// treated as decided by hand: it is skipped and added to the lock set. A
// reshuffle instead clears all courts except the explicitly locked ones
// and refills from scratch, so cleared players re-enter the bench pool.
//
// Running out of court capacity is not an error; leftover players simply
// stay on the bench.
func (rs *RoundState) AutoArrange(checkedIn []models.Player, round int, reshuffle bool) ArrangeResult {
	if reshuffle {
		rs.Reset()
	} else {
		for i := range rs.Courts {
			if !rs.Courts[i].IsEmpty() && !rs.Locked[rs.Courts[i].Number] {
				rs.Locked[rs.Courts[i].Number] = true
				rs.autoLocked[rs.Courts[i].Number] = true
			}
		}
	}

	bench, _ := PartitionPool(checkedIn, round, rs.AssignedPlayers(), rs.Unavailable, rs.Activations)

	queue := make([]int, len(bench))
	for i, p := range bench {
		queue[i] = p.ID
	}

	var result ArrangeResult
	for i := range rs.Courts {
		if rs.Locked[rs.Courts[i].Number] {
			continue
		}
		placed := 0
		for si := range rs.Courts[i].Slots {
			if len(queue) == 0 {
				break
			}
			if rs.Courts[i].Slots[si] != 0 {
				continue
			}
			rs.Courts[i].Slots[si] = queue[0]
			queue = queue[1:]
			placed++
		}
		if placed > 0 {
			result.FilledCourts++
			result.Placed += placed
		}
	}
	result.Leftover = len(queue)

	rs.arranged = true
	rs.assertIntegrity()
	return result
}

// Arranged reports whether an auto-arrange pass already ran for this
// round, i.e. whether the next pass is a reshuffle.
func (rs *RoundState) Arranged() bool {
	return rs.arranged
}
