package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"career-guidance/internal/database"
	"career-guidance/internal/domain/assessment"
	"career-guidance/internal/domain/riasec"
)

type QuestionRepository interface {
	ListByAssessmentType(ctx context.Context, assessmentType string) ([]assessment.Question, error)
	Upsert(ctx context.Context, assessmentType string, questions []assessment.Question) (int, error)
}

type PostgresQuestionRepository struct {
	db database.DB
}

func NewPostgresQuestionRepository(db database.DB) *PostgresQuestionRepository {
	return &PostgresQuestionRepository{db: db}
}

func (r *PostgresQuestionRepository) ListByAssessmentType(ctx context.Context, assessmentType string) ([]assessment.Question, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, prompt, category, sort_order, options
		 FROM questions
		 WHERE assessment_type = $1
		 ORDER BY sort_order ASC, id ASC`,
		assessmentType,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]assessment.Question, 0)
	for rows.Next() {
		var (
			q       assessment.Question
			cat     string
			options []byte
		)
		if err := rows.Scan(&q.ID, &q.Prompt, &cat, &q.Order, &options); err != nil {
			return nil, err
		}
		c, err := riasec.Parse(cat)
		if err != nil {
			return nil, fmt.Errorf("question %s: %w", q.ID, err)
		}
		q.Category = c
		if len(options) > 0 {
			if err := json.Unmarshal(options, &q.Options); err != nil {
				return nil, fmt.Errorf("question %s: decode options: %w", q.ID, err)
			}
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Upsert writes the questions in one transaction and returns how many rows
// were inserted or changed.
func (r *PostgresQuestionRepository) Upsert(ctx context.Context, assessmentType string, questions []assessment.Question) (int, error) {
	affected := 0
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		for _, q := range questions {
			if !q.Category.Valid() {
				return fmt.Errorf("question %s: invalid category %q", q.ID, q.Category)
			}
			options, err := json.Marshal(q.Options)
			if err != nil {
				return err
			}
			n, err := tx.Exec(ctx,
				`INSERT INTO questions (id, assessment_type, prompt, category, sort_order, options)
				 VALUES ($1, $2, $3, $4, $5, $6)
				 ON CONFLICT (id) DO UPDATE SET
					assessment_type = EXCLUDED.assessment_type,
					prompt = EXCLUDED.prompt,
					category = EXCLUDED.category,
					sort_order = EXCLUDED.sort_order,
					options = EXCLUDED.options`,
				q.ID, assessmentType, q.Prompt, string(q.Category), q.Order, options,
			)
			if err != nil {
				return fmt.Errorf("upsert question %s: %w", q.ID, err)
			}
			affected += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}
