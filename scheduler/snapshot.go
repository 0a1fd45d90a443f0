package scheduler

import (
	"errors"
	"fmt"

	"github.com/marchalgreen/rundeklar/models"
)

var (
	ErrRoundOutOfRange    = errors.New("round number out of range")
	ErrCourtOutOfRange    = errors.New("court number out of range")
	ErrSlotOutOfRange     = errors.New("slot index out of range")
	ErrCourtLocked        = errors.New("court is locked")
	ErrCourtFull          = errors.New("court has no free slot")
	ErrCapacityOutOfRange = errors.New("court capacity out of range")
)

// RoundState is everything the engine tracks for a single round: the full
// court list (always maxCourts entries, numbered 1..maxCourts), the
// user-facing lock set and the per-round exclusion sets. Nothing here
// carries over between rounds.
type RoundState struct {
	Courts      []models.Court
	Locked      map[int]bool // court numbers excluded from auto-arrange
	Unavailable map[int]bool // player ids sitting this round out
	Activations map[int]bool // one-round players explicitly activated again

	// autoLocked marks the subset of Locked added by the first arrange
	// pass rather than by the user. A reshuffle clears these courts like
	// any other; only explicit user locks survive it.
	autoLocked map[int]bool

	maxCourts int
	arranged  bool
}

func newRoundState(maxCourts int) *RoundState {
	return &RoundState{
		Courts:      normalizeCourts(nil, maxCourts),
		Locked:      make(map[int]bool),
		Unavailable: make(map[int]bool),
		Activations: make(map[int]bool),
		autoLocked:  make(map[int]bool),
		maxCourts:   maxCourts,
	}
}

// normalizeCourts rebuilds the complete court list 1..maxCourts. An absent
// court never means "no court"; it is materialized empty at default
// capacity. Slot slices are forced to match the court capacity.
func normalizeCourts(courts []models.Court, maxCourts int) []models.Court {
	byNumber := make(map[int]models.Court, len(courts))
	for _, c := range courts {
		byNumber[c.Number] = c
	}

	out := make([]models.Court, 0, maxCourts)
	for n := 1; n <= maxCourts; n++ {
		c, ok := byNumber[n]
		if !ok {
			out = append(out, models.NewCourt(n, models.DefaultCourtCapacity))
			continue
		}
		if c.Capacity < models.MinCourtCapacity || c.Capacity > models.MaxCourtCapacity {
			c.Capacity = models.DefaultCourtCapacity
		}
		slots := make([]int, c.Capacity)
		copy(slots, c.Slots)
		c.Slots = slots
		out = append(out, c)
	}
	return out
}

// courtIndex maps a court number to its position in rs.Courts.
func (rs *RoundState) courtIndex(courtNumber int) (int, error) {
	if courtNumber < 1 || courtNumber > rs.maxCourts {
		return 0, ErrCourtOutOfRange
	}
	return courtNumber - 1, nil
}

// locate finds the court index and slot currently holding the player.
func (rs *RoundState) locate(playerID int) (courtIdx, slot int, ok bool) {
	for ci := range rs.Courts {
		for si, id := range rs.Courts[ci].Slots {
			if id == playerID {
				return ci, si, true
			}
		}
	}
	return 0, 0, false
}

// AssignedPlayers returns the set of player ids occupying any slot.
func (rs *RoundState) AssignedPlayers() map[int]bool {
	assigned := make(map[int]bool)
	for _, c := range rs.Courts {
		for _, id := range c.Slots {
			if id != 0 {
				assigned[id] = true
			}
		}
	}
	return assigned
}

// NonEmptyCourts returns the courts holding at least one player.
func (rs *RoundState) NonEmptyCourts() []models.Court {
	out := make([]models.Court, 0, len(rs.Courts))
	for _, c := range rs.Courts {
		if !c.IsEmpty() {
			out = append(out, c)
		}
	}
	return out
}

// assertIntegrity panics if a player occupies more than one slot. A
// violation is a bug in the mutation code, not a user error.
func (rs *RoundState) assertIntegrity() {
	seen := make(map[int]struct{})
	for _, c := range rs.Courts {
		for si, id := range c.Slots {
			if id == 0 {
				continue
			}
			if _, dup := seen[id]; dup {
				panic(fmt.Sprintf("scheduler: player %d occupies multiple slots (court %d slot %d)", id, c.Number, si))
			}
			seen[id] = struct{}{}
		}
	}
}

// Board holds the per-round state of one active training session.
// Round states are created lazily and stay in memory until the session
// ends; durable storage is only written at that point.
type Board struct {
	maxCourts int
	maxRounds int
	rounds    map[int]*RoundState
}

func NewBoard(maxCourts, maxRounds int) *Board {
	return &Board{
		maxCourts: maxCourts,
		maxRounds: maxRounds,
		rounds:    make(map[int]*RoundState),
	}
}

func (b *Board) MaxCourts() int { return b.maxCourts }
func (b *Board) MaxRounds() int { return b.maxRounds }

// Round returns the state for the given round, creating an empty one on
// first access.
func (b *Board) Round(n int) (*RoundState, error) {
	if n < 1 || n > b.maxRounds {
		return nil, ErrRoundOutOfRange
	}
	rs, ok := b.rounds[n]
	if !ok {
		rs = newRoundState(b.maxCourts)
		b.rounds[n] = rs
	}
	return rs, nil
}

// Visited reports whether the round has state in memory, i.e. it was
// opened or mutated during this session.
func (b *Board) Visited(n int) bool {
	_, ok := b.rounds[n]
	return ok
}

// Hydrate seeds a round from previously persisted courts. It is a no-op
// when the round already has in-memory state, which stays authoritative.
func (b *Board) Hydrate(n int, courts []models.Court) error {
	if n < 1 || n > b.maxRounds {
		return ErrRoundOutOfRange
	}
	if _, ok := b.rounds[n]; ok {
		return nil
	}
	rs := newRoundState(b.maxCourts)
	rs.Courts = normalizeCourts(courts, b.maxCourts)
	rs.assertIntegrity()
	b.rounds[n] = rs
	return nil
}

// FinalCourts collects, per round, the non-empty courts to be persisted at
// session end. Rounds without a single occupied slot are skipped.
func (b *Board) FinalCourts() map[int][]models.Court {
	final := make(map[int][]models.Court)
	for n, rs := range b.rounds {
		courts := rs.NonEmptyCourts()
		if len(courts) > 0 {
			final[n] = courts
		}
	}
	return final
}
