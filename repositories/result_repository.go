package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/marchalgreen/rundeklar/models"
)

var (
	ErrResultNotFound       = errors.New("match result not found")
	ErrResultSessionInvalid = errors.New("match result session conflict or invalid")
)

type ResultRepository interface {
	Create(ctx context.Context, result *models.MatchResult) error
	ListBySession(ctx context.Context, sessionID int) ([]models.MatchResult, error)
}

type postgresResultRepository struct {
	db *sql.DB
}

func NewPostgresResultRepository(db *sql.DB) ResultRepository {
	return &postgresResultRepository{db: db}
}

func (r *postgresResultRepository) Create(ctx context.Context, result *models.MatchResult) error {
	sets, err := json.Marshal(result.Sets)
	if err != nil {
		return fmt.Errorf("failed to marshal set scores: %w", err)
	}

	query := `
		INSERT INTO match_results (session_id, round, court_number, sets)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err = r.db.QueryRowContext(ctx, query, result.SessionID, result.Round, result.CourtNumber, sets).
		Scan(&result.ID, &result.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			if pqErr.Constraint == "match_results_session_id_fkey" {
				return ErrResultSessionInvalid
			}
		}
		return fmt.Errorf("failed to create match result: %w", err)
	}
	return nil
}

func (r *postgresResultRepository) ListBySession(ctx context.Context, sessionID int) ([]models.MatchResult, error) {
	query := `
		SELECT id, session_id, round, court_number, sets, created_at
		FROM match_results
		WHERE session_id = $1
		ORDER BY round ASC, court_number ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query match results for session %d: %w", sessionID, err)
	}
	defer rows.Close()

	results := make([]models.MatchResult, 0)
	for rows.Next() {
		var result models.MatchResult
		var sets []byte
		if scanErr := rows.Scan(&result.ID, &result.SessionID, &result.Round, &result.CourtNumber, &sets, &result.CreatedAt); scanErr != nil {
			return nil, fmt.Errorf("failed to scan match result row: %w", scanErr)
		}
		if unmarshalErr := json.Unmarshal(sets, &result.Sets); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to unmarshal set scores for result %d: %w", result.ID, unmarshalErr)
		}
		results = append(results, result)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match result rows iteration: %w", err)
	}
	return results, nil
}
