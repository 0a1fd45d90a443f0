package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/marchalgreen/rundeklar/models"
)

var (
	ErrCheckInNotFound      = errors.New("check-in not found")
	ErrCheckInConflict      = errors.New("player is already checked in for this session")
	ErrCheckInPlayerInvalid = errors.New("check-in player conflict or invalid")
)

type CheckInRepository interface {
	Create(ctx context.Context, checkIn *models.CheckIn) error
	CheckOut(ctx context.Context, sessionID, playerID int) error
	// ListActive returns the currently checked-in players of a session,
	// player details included, ordered by check-in time.
	ListActive(ctx context.Context, sessionID int) ([]models.CheckIn, error)
}

type postgresCheckInRepository struct {
	db *sql.DB
}

func NewPostgresCheckInRepository(db *sql.DB) CheckInRepository {
	return &postgresCheckInRepository{db: db}
}

func (r *postgresCheckInRepository) Create(ctx context.Context, checkIn *models.CheckIn) error {
	query := `
		INSERT INTO checkins (session_id, player_id)
		VALUES ($1, $2)
		RETURNING id, checked_in_at`

	err := r.db.QueryRowContext(ctx, query, checkIn.SessionID, checkIn.PlayerID).
		Scan(&checkIn.ID, &checkIn.CheckedInAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505": // unique_violation
				if pqErr.Constraint == "checkins_session_id_player_id_key" {
					return ErrCheckInConflict
				}
			case "23503": // foreign_key_violation
				if pqErr.Constraint == "checkins_player_id_fkey" {
					return ErrCheckInPlayerInvalid
				}
			}
		}
		return fmt.Errorf("failed to create check-in: %w", err)
	}
	return nil
}

func (r *postgresCheckInRepository) CheckOut(ctx context.Context, sessionID, playerID int) error {
	query := `
		UPDATE checkins
		SET checked_out_at = now()
		WHERE session_id = $1 AND player_id = $2 AND checked_out_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, sessionID, playerID)
	if err != nil {
		return fmt.Errorf("failed to check out player %d: %w", playerID, err)
	}
	return checkAffectedRows(result, ErrCheckInNotFound)
}

func (r *postgresCheckInRepository) ListActive(ctx context.Context, sessionID int) ([]models.CheckIn, error) {
	query := `
		SELECT
			c.id, c.session_id, c.player_id, c.checked_in_at, c.checked_out_at,
			p.id, p.name, p.gender, p.category, p.max_rounds, p.note, p.created_at
		FROM checkins c
		JOIN players p ON p.id = c.player_id
		WHERE c.session_id = $1 AND c.checked_out_at IS NULL
		ORDER BY c.checked_in_at ASC, c.id ASC`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query check-ins for session %d: %w", sessionID, err)
	}
	defer rows.Close()

	checkIns := make([]models.CheckIn, 0)
	for rows.Next() {
		var c models.CheckIn
		var p models.Player
		if scanErr := rows.Scan(
			&c.ID, &c.SessionID, &c.PlayerID, &c.CheckedInAt, &c.CheckedOutAt,
			&p.ID, &p.Name, &p.Gender, &p.Category, &p.MaxRounds, &p.Note, &p.CreatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan check-in row: %w", scanErr)
		}
		c.Player = &p
		checkIns = append(checkIns, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during check-in rows iteration: %w", err)
	}
	return checkIns, nil
}
