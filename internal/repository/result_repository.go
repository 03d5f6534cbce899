package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"career-guidance/internal/database"
	"career-guidance/internal/domain/assessment"

	"github.com/google/uuid"
)

type ResultRepository interface {
	Create(ctx context.Context, r assessment.Result) error
	GetByID(ctx context.Context, id uuid.UUID) (assessment.Result, error)
	// ListHistory returns the results referenced from the user's history,
	// newest first.
	ListHistory(ctx context.Context, userID string, limit, offset int) ([]assessment.Result, error)
}

type PostgresResultRepository struct {
	db database.DB
}

func NewPostgresResultRepository(db database.DB) *PostgresResultRepository {
	return &PostgresResultRepository{db: db}
}

func (r *PostgresResultRepository) Create(ctx context.Context, res assessment.Result) error {
	scores, err := json.Marshal(res.Scores)
	if err != nil {
		return err
	}
	answers, err := json.Marshal(res.Answers)
	if err != nil {
		return err
	}
	recs, err := json.Marshal(res.Recommendations)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO results (id, user_id, assessment_type, scores, answers, total_score, recommendations, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		res.ID, res.UserID, res.AssessmentType, scores, answers, res.TotalScore, recs, res.CompletedAt,
	)
	return err
}

func (r *PostgresResultRepository) GetByID(ctx context.Context, id uuid.UUID) (assessment.Result, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, assessment_type, scores, answers, total_score, recommendations, completed_at
		 FROM results WHERE id = $1`,
		id,
	)
	res, err := scanResult(row)
	if err != nil {
		if isNoRows(err) {
			return assessment.Result{}, ErrNotFound
		}
		return assessment.Result{}, err
	}
	return res, nil
}

func (r *PostgresResultRepository) ListHistory(ctx context.Context, userID string, limit, offset int) ([]assessment.Result, error) {
	limit, offset = clampPage(limit, offset, 20, 200)

	rows, err := r.db.Query(ctx,
		`SELECT r.id, r.user_id, r.assessment_type, r.scores, r.answers, r.total_score, r.recommendations, r.completed_at
		 FROM user_result_history h
		 JOIN results r ON r.id = h.result_id
		 WHERE h.user_id = $1
		 ORDER BY h.appended_at DESC, r.id ASC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]assessment.Result, 0)
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanResult(row database.Row) (assessment.Result, error) {
	var (
		res                   assessment.Result
		scores, answers, recs []byte
	)
	if err := row.Scan(&res.ID, &res.UserID, &res.AssessmentType, &scores, &answers, &res.TotalScore, &recs, &res.CompletedAt); err != nil {
		return assessment.Result{}, err
	}
	if err := json.Unmarshal(scores, &res.Scores); err != nil {
		return assessment.Result{}, fmt.Errorf("result %s: decode scores: %w", res.ID, err)
	}
	if err := json.Unmarshal(answers, &res.Answers); err != nil {
		return assessment.Result{}, fmt.Errorf("result %s: decode answers: %w", res.ID, err)
	}
	if len(recs) > 0 {
		if err := json.Unmarshal(recs, &res.Recommendations); err != nil {
			return assessment.Result{}, fmt.Errorf("result %s: decode recommendations: %w", res.ID, err)
		}
	}
	res.CompletedAt = res.CompletedAt.UTC()
	return res, nil
}
