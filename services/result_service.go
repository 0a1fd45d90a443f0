package services

import (
	"context"
	"fmt"

	"github.com/marchalgreen/rundeklar/models"
	"github.com/marchalgreen/rundeklar/repositories"
	"github.com/marchalgreen/rundeklar/scheduler"
)

const (
	setWinScore = 21
	setCapScore = 30
	maxSets     = 3
)

type ResultService interface {
	Record(ctx context.Context, round, courtNumber int, sets []models.SetScore) (*models.MatchResult, error)
	ListBySession(ctx context.Context, sessionID int) ([]models.MatchResult, error)
}

type resultService struct {
	live       *LiveBoard
	resultRepo repositories.ResultRepository
}

func NewResultService(live *LiveBoard, resultRepo repositories.ResultRepository) ResultService {
	return &resultService{live: live, resultRepo: resultRepo}
}

func (s *resultService) Record(ctx context.Context, round, courtNumber int, sets []models.SetScore) (*models.MatchResult, error) {
	s.live.mu.Lock()
	if s.live.session == nil {
		s.live.mu.Unlock()
		return nil, ErrNoActiveSession
	}
	sessionID := s.live.session.ID
	if s.live.board != nil {
		if round < 1 || round > s.live.board.MaxRounds() {
			s.live.mu.Unlock()
			return nil, scheduler.ErrRoundOutOfRange
		}
		if courtNumber < 1 || courtNumber > s.live.board.MaxCourts() {
			s.live.mu.Unlock()
			return nil, scheduler.ErrCourtOutOfRange
		}
	}
	if s.live.board != nil && s.live.board.Visited(round) {
		rs, err := s.live.board.Round(round)
		if err != nil {
			s.live.mu.Unlock()
			return nil, err
		}
		occupied := false
		for _, court := range rs.Courts {
			if court.Number == courtNumber {
				occupied = !court.IsEmpty()
				break
			}
		}
		if !occupied {
			s.live.mu.Unlock()
			return nil, fmt.Errorf("%w: court %d, round %d", ErrResultCourtNoPlayers, courtNumber, round)
		}
	}
	s.live.mu.Unlock()

	if err := ValidateSets(sets); err != nil {
		return nil, err
	}

	result := &models.MatchResult{
		SessionID:   sessionID,
		Round:       round,
		CourtNumber: courtNumber,
		Sets:        sets,
	}
	if err := s.resultRepo.Create(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *resultService) ListBySession(ctx context.Context, sessionID int) ([]models.MatchResult, error) {
	return s.resultRepo.ListBySession(ctx, sessionID)
}

// ValidateSets checks badminton set scores: sets go to 21, won by two,
// capped at 30 (a 30-29 finish is legal).
func ValidateSets(sets []models.SetScore) error {
	if len(sets) == 0 {
		return ErrResultNoSets
	}
	if len(sets) > maxSets {
		return ErrResultTooManySets
	}
	for i, set := range sets {
		if !validSet(set.Home, set.Away) {
			return fmt.Errorf("%w: set %d (%d-%d)", ErrResultInvalidSet, i+1, set.Home, set.Away)
		}
	}
	return nil
}

func validSet(a, b int) bool {
	if a < 0 || b < 0 {
		return false
	}
	winner, loser := a, b
	if b > a {
		winner, loser = b, a
	}
	switch {
	case winner == setWinScore:
		return loser <= setWinScore-2
	case winner > setWinScore && winner < setCapScore:
		return loser == winner-2
	case winner == setCapScore:
		return loser == setCapScore-1 || loser == setCapScore-2
	default:
		return false
	}
}
