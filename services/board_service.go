package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/marchalgreen/rundeklar/models"
	"github.com/marchalgreen/rundeklar/repositories"
	"github.com/marchalgreen/rundeklar/scheduler"
)

type MoveTarget string

const (
	MoveTargetCourt    MoveTarget = "court"
	MoveTargetBench    MoveTarget = "bench"
	MoveTargetInactive MoveTarget = "inactive"
)

// MoveCommand is one discrete drag/drop intent from the presentation
// layer. There is no engine-side notion of "currently dragging".
type MoveCommand struct {
	PlayerID    int        `json:"player_id"`
	Target      MoveTarget `json:"target"`
	CourtNumber int        `json:"court_number,omitempty"`
	// Slot targets one slot exactly (0-based); nil means the first free
	// slot of the court.
	Slot *int `json:"slot,omitempty"`
}

// BoardView is the complete per-round state handed to the presentation
// layer: every configured court (empty ones included), both pool
// partitions, the lock set and the duplicate annotations.
type BoardView struct {
	SessionID    int                       `json:"session_id"`
	Round        int                       `json:"round"`
	MaxRounds    int                       `json:"max_rounds"`
	Courts       []models.Court            `json:"courts"`
	Bench        []models.Player           `json:"bench"`
	Inactive     []models.Player           `json:"inactive"`
	LockedCourts []int                     `json:"locked_courts"`
	Duplicates   scheduler.DuplicateReport `json:"duplicates"`
}

// ArrangeOutcome pairs the auto-arrange feedback with the resulting view.
type ArrangeOutcome struct {
	Result scheduler.ArrangeResult `json:"result"`
	View   *BoardView              `json:"view"`
}

type BoardService interface {
	View(ctx context.Context) (*BoardView, error)
	Move(ctx context.Context, cmd MoveCommand) (*BoardView, error)
	AutoArrange(ctx context.Context) (*ArrangeOutcome, error)
	ResetRound(ctx context.Context) (*BoardView, error)
	ToggleLock(ctx context.Context, courtNumber int) (*BoardView, error)
	SetCapacity(ctx context.Context, courtNumber, capacity int) (*BoardView, error)
	ActivatePlayer(ctx context.Context, playerID int) (*BoardView, error)
	MarkAvailable(ctx context.Context, playerID int) (*BoardView, error)
}

type boardService struct {
	live        *LiveBoard
	checkInRepo repositories.CheckInRepository
	courtRepo   repositories.CourtRepository
	hub         *scheduler.Hub
}

func NewBoardService(
	live *LiveBoard,
	checkInRepo repositories.CheckInRepository,
	courtRepo repositories.CourtRepository,
	hub *scheduler.Hub,
) BoardService {
	return &boardService{
		live:        live,
		checkInRepo: checkInRepo,
		courtRepo:   courtRepo,
		hub:         hub,
	}
}

func (s *boardService) View(ctx context.Context) (*BoardView, error) {
	s.live.mu.Lock()
	defer s.live.mu.Unlock()
	return buildBoardView(ctx, s.live, s.checkInRepo, s.courtRepo)
}

func (s *boardService) Move(ctx context.Context, cmd MoveCommand) (*BoardView, error) {
	s.live.mu.Lock()
	defer s.live.mu.Unlock()

	rs, checkIns, err := s.roundStateLocked(ctx)
	if err != nil {
		return nil, err
	}

	found := false
	for _, c := range checkIns {
		if c.PlayerID == cmd.PlayerID {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrPlayerNotCheckedIn
	}

	switch cmd.Target {
	case MoveTargetCourt:
		if cmd.Slot != nil {
			err = rs.MoveToSlot(cmd.PlayerID, cmd.CourtNumber, *cmd.Slot)
		} else {
			err = rs.MoveToCourt(cmd.PlayerID, cmd.CourtNumber)
		}
	case MoveTargetBench:
		rs.MoveToBench(cmd.PlayerID)
	case MoveTargetInactive:
		rs.MoveToInactive(cmd.PlayerID)
	default:
		err = fmt.Errorf("%w: %q", ErrInvalidMoveTarget, cmd.Target)
	}
	if err != nil {
		return nil, err
	}

	return s.broadcastViewLocked(ctx, checkIns)
}

func (s *boardService) AutoArrange(ctx context.Context) (*ArrangeOutcome, error) {
	s.live.mu.Lock()
	defer s.live.mu.Unlock()

	rs, checkIns, err := s.roundStateLocked(ctx)
	if err != nil {
		return nil, err
	}

	pool := make([]models.Player, 0, len(checkIns))
	for _, c := range checkIns {
		if c.Player != nil {
			pool = append(pool, *c.Player)
		}
	}

	result := rs.AutoArrange(pool, s.live.round, rs.Arranged())

	view, err := s.broadcastViewLocked(ctx, checkIns)
	if err != nil {
		return nil, err
	}
	return &ArrangeOutcome{Result: result, View: view}, nil
}

func (s *boardService) ResetRound(ctx context.Context) (*BoardView, error) {
	return s.mutate(ctx, func(rs *scheduler.RoundState) error {
		rs.Reset()
		return nil
	})
}

func (s *boardService) ToggleLock(ctx context.Context, courtNumber int) (*BoardView, error) {
	return s.mutate(ctx, func(rs *scheduler.RoundState) error {
		_, err := rs.ToggleLock(courtNumber)
		return err
	})
}

func (s *boardService) SetCapacity(ctx context.Context, courtNumber, capacity int) (*BoardView, error) {
	return s.mutate(ctx, func(rs *scheduler.RoundState) error {
		return rs.SetCapacity(courtNumber, capacity)
	})
}

func (s *boardService) ActivatePlayer(ctx context.Context, playerID int) (*BoardView, error) {
	return s.mutate(ctx, func(rs *scheduler.RoundState) error {
		rs.ActivateForRound(playerID)
		return nil
	})
}

func (s *boardService) MarkAvailable(ctx context.Context, playerID int) (*BoardView, error) {
	return s.mutate(ctx, func(rs *scheduler.RoundState) error {
		rs.MarkAvailable(playerID)
		return nil
	})
}

// mutate runs one engine mutation against the current round and returns
// the refreshed, broadcast view.
func (s *boardService) mutate(ctx context.Context, fn func(*scheduler.RoundState) error) (*BoardView, error) {
	s.live.mu.Lock()
	defer s.live.mu.Unlock()

	rs, checkIns, err := s.roundStateLocked(ctx)
	if err != nil {
		return nil, err
	}
	if err := fn(rs); err != nil {
		return nil, err
	}
	return s.broadcastViewLocked(ctx, checkIns)
}

// roundStateLocked resolves the active session's current round state and
// the checked-in pool. Callers must hold the live mutex.
func (s *boardService) roundStateLocked(ctx context.Context) (*scheduler.RoundState, []models.CheckIn, error) {
	if s.live.session == nil {
		return nil, nil, ErrNoActiveSession
	}
	rs, err := s.live.board.Round(s.live.round)
	if err != nil {
		return nil, nil, err
	}
	checkIns, err := s.checkInRepo.ListActive(ctx, s.live.session.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load checked-in players: %w", err)
	}
	return rs, checkIns, nil
}

func (s *boardService) broadcastViewLocked(ctx context.Context, checkIns []models.CheckIn) (*BoardView, error) {
	view, err := assembleBoardView(ctx, s.live, checkIns, s.courtRepo)
	if err != nil {
		return nil, err
	}
	s.hub.BroadcastToRoom(s.live.roomID(), scheduler.BoardMessage{
		Type:    "BOARD_UPDATED",
		Payload: view,
		RoomID:  s.live.roomID(),
	})
	return view, nil
}

// buildBoardView loads the pool and assembles the view. The live mutex
// must be held.
func buildBoardView(ctx context.Context, live *LiveBoard, checkInRepo repositories.CheckInRepository, courtRepo repositories.CourtRepository) (*BoardView, error) {
	if live.session == nil {
		return nil, ErrNoActiveSession
	}
	checkIns, err := checkInRepo.ListActive(ctx, live.session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load checked-in players: %w", err)
	}
	return assembleBoardView(ctx, live, checkIns, courtRepo)
}

// assembleBoardView partitions the pool and runs the duplicate detector
// against all prior rounds. Prior rounds visited this session are read
// from memory; the rest fall back to durable storage.
func assembleBoardView(ctx context.Context, live *LiveBoard, checkIns []models.CheckIn, courtRepo repositories.CourtRepository) (*BoardView, error) {
	rs, err := live.board.Round(live.round)
	if err != nil {
		return nil, err
	}

	pool := make([]models.Player, 0, len(checkIns))
	for _, c := range checkIns {
		if c.Player != nil {
			pool = append(pool, *c.Player)
		}
	}
	bench, inactive := scheduler.PartitionPool(pool, live.round, rs.AssignedPlayers(), rs.Unavailable, rs.Activations)

	prior := make(map[int][]models.Court)
	for r := 1; r < live.round; r++ {
		if live.board.Visited(r) {
			prev, roundErr := live.board.Round(r)
			if roundErr != nil {
				return nil, roundErr
			}
			prior[r] = prev.Courts
			continue
		}
		stored, loadErr := courtRepo.LoadRoundCourts(ctx, live.session.ID, r)
		if loadErr != nil {
			return nil, fmt.Errorf("failed to load prior round %d: %w", r, loadErr)
		}
		prior[r] = stored
	}
	duplicates := scheduler.FindDuplicates(live.round, rs.Courts, prior)

	locked := make([]int, 0, len(rs.Locked))
	for n := range rs.Locked {
		locked = append(locked, n)
	}
	sort.Ints(locked)

	courts := make([]models.Court, len(rs.Courts))
	copy(courts, rs.Courts)

	return &BoardView{
		SessionID:    live.session.ID,
		Round:        live.round,
		MaxRounds:    live.board.MaxRounds(),
		Courts:       courts,
		Bench:        bench,
		Inactive:     inactive,
		LockedCourts: locked,
		Duplicates:   duplicates,
	}, nil
}
