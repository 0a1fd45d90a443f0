package services

import "errors"

// Common errors shared across services and the HTTP error mapping.
var (
	ErrNoActiveSession      = errors.New("no active training session")
	ErrSessionEndFailed     = errors.New("training not ended, try again")
	ErrPlayerNotCheckedIn   = errors.New("player is not checked in for this session")
	ErrPlayerNotFound       = errors.New("player not found")
	ErrAlreadyCheckedIn     = errors.New("player is already checked in")
	ErrInvalidMoveTarget    = errors.New("invalid move target")
	ErrInvalidAccessCode    = errors.New("invalid board access code")
	ErrResultNoSets         = errors.New("a match result needs at least one set")
	ErrResultTooManySets    = errors.New("a match result has at most three sets")
	ErrResultInvalidSet     = errors.New("invalid badminton set score")
	ErrResultCourtNoPlayers = errors.New("court has no players in this round")
)
