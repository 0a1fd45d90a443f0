package models

import "time"

// SessionStatus соответствует ENUM в БД.
type SessionStatus string

const (
	SessionStatusActive SessionStatus = "active"
	SessionStatusEnded  SessionStatus = "ended"
)

// TrainingSession is the lifecycle wrapper around one club night.
// At most one session is active at a time; ending is terminal.
type TrainingSession struct {
	ID        int           `json:"id"`
	Status    SessionStatus `json:"status"`
	StartedAt time.Time     `json:"started_at"`
	EndedAt   *time.Time    `json:"ended_at,omitempty"`
}
