package services

import (
	"fmt"
	"sync"

	"github.com/marchalgreen/rundeklar/models"
	"github.com/marchalgreen/rundeklar/scheduler"
)

// LiveBoard is the in-memory state of the active training session: the
// engine board plus the round currently on display. It is the only
// mutable shared resource in the system; the session and board services
// serialize all access through its mutex. Durable storage is written
// exactly once, when the session ends.
type LiveBoard struct {
	mu      sync.Mutex
	session *models.TrainingSession
	board   *scheduler.Board
	round   int
}

func NewLiveBoard() *LiveBoard {
	return &LiveBoard{}
}

// roomID is the websocket room of the active session. Callers must hold
// the mutex.
func (l *LiveBoard) roomID() string {
	if l.session == nil {
		return ""
	}
	return fmt.Sprintf("session_%d", l.session.ID)
}

// SessionRoomID builds the hub room name for a session id; used by the
// websocket handler, which sees only the id from the URL.
func SessionRoomID(sessionID int) string {
	return fmt.Sprintf("session_%d", sessionID)
}
