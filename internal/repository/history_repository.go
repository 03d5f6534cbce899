package repository

import (
	"context"
	"time"

	"career-guidance/internal/database"
	"career-guidance/internal/domain/assessment"

	"github.com/google/uuid"
)

type HistoryRepository interface {
	// Append is idempotent: appending an id already present is a no-op.
	Append(ctx context.Context, userID string, resultID uuid.UUID, at time.Time) error
	List(ctx context.Context, userID string) ([]assessment.HistoryEntry, error)
	// ListOrphans returns the user's result ids that no history entry references.
	ListOrphans(ctx context.Context, userID string) ([]uuid.UUID, error)
	ListUsersWithOrphans(ctx context.Context, limit int) ([]string, error)
}

type PostgresHistoryRepository struct {
	db database.DB
}

func NewPostgresHistoryRepository(db database.DB) *PostgresHistoryRepository {
	return &PostgresHistoryRepository{db: db}
}

func (r *PostgresHistoryRepository) Append(ctx context.Context, userID string, resultID uuid.UUID, at time.Time) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_result_history (user_id, result_id, appended_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, result_id) DO NOTHING`,
		userID, resultID, at,
	)
	return err
}

func (r *PostgresHistoryRepository) List(ctx context.Context, userID string) ([]assessment.HistoryEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT result_id, appended_at FROM user_result_history WHERE user_id = $1 ORDER BY appended_at ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]assessment.HistoryEntry, 0)
	for rows.Next() {
		var e assessment.HistoryEntry
		if err := rows.Scan(&e.ResultID, &e.AppendedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresHistoryRepository) ListOrphans(ctx context.Context, userID string) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT r.id
		 FROM results r
		 LEFT JOIN user_result_history h ON h.result_id = r.id AND h.user_id = r.user_id
		 WHERE r.user_id = $1 AND h.result_id IS NULL
		 ORDER BY r.completed_at ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresHistoryRepository) ListUsersWithOrphans(ctx context.Context, limit int) ([]string, error) {
	limit, _ = clampPage(limit, 0, 500, 5000)

	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT r.user_id
		 FROM results r
		 LEFT JOIN user_result_history h ON h.result_id = r.id AND h.user_id = r.user_id
		 WHERE h.result_id IS NULL
		 ORDER BY r.user_id ASC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
