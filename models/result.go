package models

import "time"

// SetScore is one badminton set. Validation lives in the result service.
type SetScore struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// MatchResult records the outcome played on one court in one round.
type MatchResult struct {
	ID          int        `json:"id"`
	SessionID   int        `json:"session_id"`
	Round       int        `json:"round"`
	CourtNumber int        `json:"court_number"`
	Sets        []SetScore `json:"sets"`
	CreatedAt   time.Time  `json:"created_at"`
}
