package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/marchalgreen/rundeklar/models"
	"github.com/marchalgreen/rundeklar/repositories"
	"github.com/marchalgreen/rundeklar/scheduler"
)

type CheckInService interface {
	CheckIn(ctx context.Context, playerID int) (*models.CheckIn, error)
	CheckOut(ctx context.Context, playerID int) error
	List(ctx context.Context) ([]models.CheckIn, error)
}

type checkInService struct {
	live        *LiveBoard
	checkInRepo repositories.CheckInRepository
	playerRepo  repositories.PlayerRepository
	hub         *scheduler.Hub
}

func NewCheckInService(
	live *LiveBoard,
	checkInRepo repositories.CheckInRepository,
	playerRepo repositories.PlayerRepository,
	hub *scheduler.Hub,
) CheckInService {
	return &checkInService{
		live:        live,
		checkInRepo: checkInRepo,
		playerRepo:  playerRepo,
		hub:         hub,
	}
}

// activeSessionID reads the live session under the lock.
func (s *checkInService) activeSessionID() (int, error) {
	s.live.mu.Lock()
	defer s.live.mu.Unlock()
	if s.live.session == nil {
		return 0, ErrNoActiveSession
	}
	return s.live.session.ID, nil
}

func (s *checkInService) CheckIn(ctx context.Context, playerID int) (*models.CheckIn, error) {
	sessionID, err := s.activeSessionID()
	if err != nil {
		return nil, err
	}

	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to load player %d: %w", playerID, err)
	}

	checkIn := &models.CheckIn{SessionID: sessionID, PlayerID: playerID}
	if err := s.checkInRepo.Create(ctx, checkIn); err != nil {
		if errors.Is(err, repositories.ErrCheckInConflict) {
			return nil, ErrAlreadyCheckedIn
		}
		return nil, err
	}
	checkIn.Player = player

	s.hub.BroadcastToRoom(SessionRoomID(sessionID), scheduler.BoardMessage{
		Type:    "POOL_UPDATED",
		Payload: checkIn,
		RoomID:  SessionRoomID(sessionID),
	})
	return checkIn, nil
}

func (s *checkInService) CheckOut(ctx context.Context, playerID int) error {
	sessionID, err := s.activeSessionID()
	if err != nil {
		return err
	}

	if err := s.checkInRepo.CheckOut(ctx, sessionID, playerID); err != nil {
		if errors.Is(err, repositories.ErrCheckInNotFound) {
			return ErrPlayerNotCheckedIn
		}
		return err
	}

	// a checked-out player must not linger on a court
	s.live.mu.Lock()
	if s.live.session != nil && s.live.session.ID == sessionID {
		for round := 1; round <= s.live.board.MaxRounds(); round++ {
			if !s.live.board.Visited(round) {
				continue
			}
			if rs, roundErr := s.live.board.Round(round); roundErr == nil {
				rs.MoveToBench(playerID)
			}
		}
	}
	s.live.mu.Unlock()

	s.hub.BroadcastToRoom(SessionRoomID(sessionID), scheduler.BoardMessage{
		Type:    "POOL_UPDATED",
		Payload: map[string]int{"checked_out_player_id": playerID},
		RoomID:  SessionRoomID(sessionID),
	})
	return nil
}

func (s *checkInService) List(ctx context.Context) ([]models.CheckIn, error) {
	sessionID, err := s.activeSessionID()
	if err != nil {
		return nil, err
	}
	return s.checkInRepo.ListActive(ctx, sessionID)
}
