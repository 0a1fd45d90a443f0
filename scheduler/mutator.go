package scheduler

import "github.com/marchalgreen/rundeklar/models"

// MoveToSlot places the player into the given slot of the given court.
//
// The player is first detached from whatever slot they hold in this round.
// If the target slot holds another player, the two exchange places: the
// occupant moves to the slot the mover came from, or to the bench when the
// mover held none. Moving a player onto their own slot is a no-op.
func (rs *RoundState) MoveToSlot(playerID, courtNumber, slot int) error {
	ci, err := rs.courtIndex(courtNumber)
	if err != nil {
		return err
	}
	court := &rs.Courts[ci]
	if slot < 0 || slot >= court.Capacity {
		return ErrSlotOutOfRange
	}
	if rs.Locked[courtNumber] {
		return ErrCourtLocked
	}

	occupant := court.Slots[slot]
	if occupant == playerID {
		return nil
	}

	prevCourt, prevSlot, hadSlot := rs.locate(playerID)
	if hadSlot {
		rs.Courts[prevCourt].Slots[prevSlot] = 0
	}
	court.Slots[slot] = playerID
	if occupant != 0 && hadSlot {
		// swap partner takes the mover's old slot; without one the
		// occupant is simply displaced to the bench
		rs.Courts[prevCourt].Slots[prevSlot] = occupant
	}

	rs.assertIntegrity()
	return nil
}

// MoveToCourt places the player into the first free slot of the court.
func (rs *RoundState) MoveToCourt(playerID, courtNumber int) error {
	ci, err := rs.courtIndex(courtNumber)
	if err != nil {
		return err
	}
	if rs.Locked[courtNumber] {
		return ErrCourtLocked
	}
	if pc, _, ok := rs.locate(playerID); ok && pc == ci {
		return nil
	}
	slot := rs.Courts[ci].FreeSlot()
	if slot < 0 {
		return ErrCourtFull
	}
	return rs.MoveToSlot(playerID, courtNumber, slot)
}

// MoveToBench removes the player from any slot they occupy. The
// unavailable and activation sets are left untouched.
func (rs *RoundState) MoveToBench(playerID int) {
	if ci, si, ok := rs.locate(playerID); ok {
		rs.Courts[ci].Slots[si] = 0
	}
	rs.assertIntegrity()
}

// MoveToInactive benches the player and marks them unavailable for the
// rest of this round.
func (rs *RoundState) MoveToInactive(playerID int) {
	rs.MoveToBench(playerID)
	rs.Unavailable[playerID] = true
}

// MarkAvailable clears the unavailable flag, returning the player to
// bench eligibility.
func (rs *RoundState) MarkAvailable(playerID int) {
	delete(rs.Unavailable, playerID)
}

// ActivateForRound lets a one-round-only player take part in this round.
func (rs *RoundState) ActivateForRound(playerID int) {
	rs.Activations[playerID] = true
}

// ToggleLock flips the lock on a court and reports the new state. A
// toggled-on lock is always a user lock, so it survives reshuffles even
// when the court was auto-locked before.
func (rs *RoundState) ToggleLock(courtNumber int) (bool, error) {
	if _, err := rs.courtIndex(courtNumber); err != nil {
		return false, err
	}
	if rs.Locked[courtNumber] {
		delete(rs.Locked, courtNumber)
		delete(rs.autoLocked, courtNumber)
		return false, nil
	}
	rs.Locked[courtNumber] = true
	delete(rs.autoLocked, courtNumber)
	return true, nil
}

// SetCapacity overrides the court capacity for this round only. Shrinking
// displaces the players in the trimmed slots to the bench.
func (rs *RoundState) SetCapacity(courtNumber, capacity int) error {
	ci, err := rs.courtIndex(courtNumber)
	if err != nil {
		return err
	}
	if capacity < models.MinCourtCapacity || capacity > models.MaxCourtCapacity {
		return ErrCapacityOutOfRange
	}

	court := &rs.Courts[ci]
	slots := make([]int, capacity)
	copy(slots, court.Slots)
	court.Capacity = capacity
	court.Slots = slots

	rs.assertIntegrity()
	return nil
}

// Reset clears every court of the round that the user did not lock
// explicitly, returning their players to the bench. Locks added by the
// first arrange pass are dropped along with their courts; the exclusion
// sets are kept.
func (rs *RoundState) Reset() {
	for n := range rs.autoLocked {
		delete(rs.Locked, n)
		delete(rs.autoLocked, n)
	}
	for i := range rs.Courts {
		if rs.Locked[rs.Courts[i].Number] {
			continue
		}
		for si := range rs.Courts[i].Slots {
			rs.Courts[i].Slots[si] = 0
		}
	}
}
