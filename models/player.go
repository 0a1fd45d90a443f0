package models

import "time"

// Gender соответствует ENUM player_gender в БД.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderUnset  Gender = ""
)

type Category string

const (
	CategorySingle Category = "single"
	CategoryDouble Category = "double"
	CategoryBoth   Category = "both"
	CategoryUnset  Category = ""
)

// Player is a club roster entry. The scheduling core only reads players
// and references them by id; the roster itself is maintained elsewhere.
type Player struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Gender    Gender    `json:"gender"`
	Category  Category  `json:"category"`
	MaxRounds int       `json:"max_rounds"` // 0 = unlimited, 1 = first round only
	Note      *string   `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
