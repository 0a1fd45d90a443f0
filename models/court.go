package models

const (
	DefaultCourtCapacity = 4
	MinCourtCapacity     = 4
	MaxCourtCapacity     = 8
)

// Court is one playing court within a single round. Slots always holds
// exactly Capacity entries; a zero entry is a vacant slot. Court numbers
// are stable across rounds, capacity overrides are not.
type Court struct {
	Number   int   `json:"number"`
	Capacity int   `json:"capacity"`
	Slots    []int `json:"slots"`
}

func NewCourt(number, capacity int) Court {
	return Court{
		Number:   number,
		Capacity: capacity,
		Slots:    make([]int, capacity),
	}
}

// PlayerIDs returns the occupants in slot order, vacancies skipped.
func (c Court) PlayerIDs() []int {
	ids := make([]int, 0, len(c.Slots))
	for _, id := range c.Slots {
		if id != 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

func (c Court) Occupied() int {
	n := 0
	for _, id := range c.Slots {
		if id != 0 {
			n++
		}
	}
	return n
}

func (c Court) IsEmpty() bool {
	return c.Occupied() == 0
}

// FreeSlot returns the index of the first vacant slot, or -1.
func (c Court) FreeSlot() int {
	for i, id := range c.Slots {
		if id == 0 {
			return i
		}
	}
	return -1
}
