package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/marchalgreen/rundeklar/models"
)

var (
	ErrSessionNotFound = errors.New("training session not found")
	ErrNoActiveSession = errors.New("no active training session")
)

type SessionRepository interface {
	Create(ctx context.Context, session *models.TrainingSession) error
	GetByID(ctx context.Context, id int) (*models.TrainingSession, error)
	GetActive(ctx context.Context) (*models.TrainingSession, error)
	// End marks the session ended. The final court snapshots are saved in
	// the same transaction by the court repository.
	End(ctx context.Context, exec SQLExecutor, id int) error
}

type postgresSessionRepository struct {
	db *sql.DB
}

func NewPostgresSessionRepository(db *sql.DB) SessionRepository {
	return &postgresSessionRepository{db: db}
}

func (r *postgresSessionRepository) Create(ctx context.Context, session *models.TrainingSession) error {
	query := `
		INSERT INTO training_sessions (status)
		VALUES ($1)
		RETURNING id, started_at`

	session.Status = models.SessionStatusActive
	err := r.db.QueryRowContext(ctx, query, session.Status).Scan(&session.ID, &session.StartedAt)
	if err != nil {
		return fmt.Errorf("failed to create training session: %w", err)
	}
	return nil
}

func (r *postgresSessionRepository) GetByID(ctx context.Context, id int) (*models.TrainingSession, error) {
	query := `
		SELECT id, status, started_at, ended_at
		FROM training_sessions
		WHERE id = $1`

	session := &models.TrainingSession{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&session.ID, &session.Status, &session.StartedAt, &session.EndedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to scan training session %d: %w", id, err)
	}
	return session, nil
}

func (r *postgresSessionRepository) GetActive(ctx context.Context) (*models.TrainingSession, error) {
	query := `
		SELECT id, status, started_at, ended_at
		FROM training_sessions
		WHERE status = $1
		ORDER BY started_at DESC
		LIMIT 1`

	session := &models.TrainingSession{}
	err := r.db.QueryRowContext(ctx, query, models.SessionStatusActive).
		Scan(&session.ID, &session.Status, &session.StartedAt, &session.EndedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoActiveSession
		}
		return nil, fmt.Errorf("failed to scan active training session: %w", err)
	}
	return session, nil
}

func (r *postgresSessionRepository) End(ctx context.Context, exec SQLExecutor, id int) error {
	query := `
		UPDATE training_sessions
		SET status = $1, ended_at = now()
		WHERE id = $2 AND status = $3`

	result, err := exec.ExecContext(ctx, query, models.SessionStatusEnded, id, models.SessionStatusActive)
	if err != nil {
		return fmt.Errorf("failed to end training session %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrSessionNotFound)
}
