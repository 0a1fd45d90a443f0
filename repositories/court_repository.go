package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/marchalgreen/rundeklar/models"
)

var ErrRoundCourtsConflict = errors.New("round courts already saved for this session and round")

// CourtRepository persists the final court snapshots of a session. Slots
// are stored as an integer[] column, vacancies as zeroes, so the exact
// slot layout of a round survives.
type CourtRepository interface {
	SaveRoundCourts(ctx context.Context, exec SQLExecutor, sessionID, round int, courts []models.Court) error
	LoadRoundCourts(ctx context.Context, sessionID, round int) ([]models.Court, error)
}

type postgresCourtRepository struct {
	db *sql.DB
}

func NewPostgresCourtRepository(db *sql.DB) CourtRepository {
	return &postgresCourtRepository{db: db}
}

func (r *postgresCourtRepository) SaveRoundCourts(ctx context.Context, exec SQLExecutor, sessionID, round int, courts []models.Court) error {
	query := `
		INSERT INTO round_courts (session_id, round, court_number, capacity, slots)
		VALUES ($1, $2, $3, $4, $5)`

	for _, court := range courts {
		slots := make([]int64, len(court.Slots))
		for i, id := range court.Slots {
			slots[i] = int64(id)
		}
		if _, err := exec.ExecContext(ctx, query, sessionID, round, court.Number, court.Capacity, pq.Array(slots)); err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
				return ErrRoundCourtsConflict
			}
			return fmt.Errorf("failed to save court %d of round %d: %w", court.Number, round, err)
		}
	}
	return nil
}

func (r *postgresCourtRepository) LoadRoundCourts(ctx context.Context, sessionID, round int) ([]models.Court, error) {
	query := `
		SELECT court_number, capacity, slots
		FROM round_courts
		WHERE session_id = $1 AND round = $2
		ORDER BY court_number ASC`

	rows, err := r.db.QueryContext(ctx, query, sessionID, round)
	if err != nil {
		return nil, fmt.Errorf("failed to query round courts for session %d round %d: %w", sessionID, round, err)
	}
	defer rows.Close()

	courts := make([]models.Court, 0)
	for rows.Next() {
		var court models.Court
		var slots pq.Int64Array
		if scanErr := rows.Scan(&court.Number, &court.Capacity, &slots); scanErr != nil {
			return nil, fmt.Errorf("failed to scan round court row: %w", scanErr)
		}
		court.Slots = make([]int, len(slots))
		for i, id := range slots {
			court.Slots[i] = int(id)
		}
		courts = append(courts, court)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during round court rows iteration: %w", err)
	}
	return courts, nil
}
