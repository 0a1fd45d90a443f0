package models

import "time"

// CheckIn ties a roster player to one active training session.
// A check-out is soft: the row stays, CheckedOutAt is set.
type CheckIn struct {
	ID           int        `json:"id"`
	SessionID    int        `json:"session_id"`
	PlayerID     int        `json:"player_id"`
	CheckedInAt  time.Time  `json:"checked_in_at"`
	CheckedOutAt *time.Time `json:"checked_out_at,omitempty"`

	Player *Player `json:"player,omitempty"`
}
