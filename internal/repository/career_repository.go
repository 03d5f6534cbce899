package repository

import (
	"context"
	"fmt"

	"career-guidance/internal/database"
	"career-guidance/internal/domain/career"
	"career-guidance/internal/domain/riasec"
)

type CareerRepository interface {
	// ListByCategories returns careers sharing at least one of cats, in
	// catalog order, capped at limit. Catalog order is the order of the
	// latest Upsert that wrote each career.
	ListByCategories(ctx context.Context, cats []riasec.Category, limit int) ([]career.Career, error)
	Search(ctx context.Context, patterns []string, limit, offset int) ([]career.Career, error)
	GetByID(ctx context.Context, id string) (career.Career, error)
	Upsert(ctx context.Context, careers []career.Career) (int, error)
}

type PostgresCareerRepository struct {
	db database.DB
}

func NewPostgresCareerRepository(db database.DB) *PostgresCareerRepository {
	return &PostgresCareerRepository{db: db}
}

const careerColumns = `id, title, categories, description, education, salary_range, outlook, created_at`

func (r *PostgresCareerRepository) ListByCategories(ctx context.Context, cats []riasec.Category, limit int) ([]career.Career, error) {
	if len(cats) == 0 {
		return []career.Career{}, nil
	}
	limit, _ = clampPage(limit, 0, 5, 500)

	rows, err := r.db.Query(ctx,
		`SELECT `+careerColumns+`
		 FROM careers
		 WHERE categories && $1::text[]
		 ORDER BY position ASC, id ASC
		 LIMIT $2`,
		categoryStrings(cats), limit,
	)
	if err != nil {
		return nil, err
	}
	return scanCareers(rows)
}

// Search matches any of the ILIKE patterns against title or description.
func (r *PostgresCareerRepository) Search(ctx context.Context, patterns []string, limit, offset int) ([]career.Career, error) {
	limit, offset = clampPage(limit, offset, 20, 100)
	if len(patterns) == 0 {
		rows, err := r.db.Query(ctx,
			`SELECT `+careerColumns+` FROM careers ORDER BY title ASC, id ASC LIMIT $1 OFFSET $2`,
			limit, offset,
		)
		if err != nil {
			return nil, err
		}
		return scanCareers(rows)
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+careerColumns+`
		 FROM careers
		 WHERE title ILIKE ANY($1::text[]) OR description ILIKE ANY($1::text[])
		 ORDER BY title ASC, id ASC
		 LIMIT $2 OFFSET $3`,
		patterns, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	return scanCareers(rows)
}

func (r *PostgresCareerRepository) GetByID(ctx context.Context, id string) (career.Career, error) {
	rows, err := r.db.Query(ctx, `SELECT `+careerColumns+` FROM careers WHERE id = $1`, id)
	if err != nil {
		return career.Career{}, err
	}
	out, err := scanCareers(rows)
	if err != nil {
		return career.Career{}, err
	}
	if len(out) == 0 {
		return career.Career{}, ErrNotFound
	}
	return out[0], nil
}

// Upsert writes careers in one transaction. Each row's position continues
// after the current maximum in slice order, so a re-import moves its careers
// to the end of the catalog in file order.
func (r *PostgresCareerRepository) Upsert(ctx context.Context, careers []career.Career) (int, error) {
	affected := 0
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		var base int64
		if err := tx.QueryRow(ctx, `SELECT COALESCE(MAX(position), 0) FROM careers`).Scan(&base); err != nil {
			return fmt.Errorf("read catalog position: %w", err)
		}
		for i, c := range careers {
			if c.ID == "" || c.Title == "" {
				return fmt.Errorf("career requires id and title")
			}
			n, err := tx.Exec(ctx,
				`INSERT INTO careers (id, title, categories, description, education, salary_range, outlook, position)
				 VALUES ($1, $2, $3::text[], $4, $5, $6, $7, $8)
				 ON CONFLICT (id) DO UPDATE SET
					title = EXCLUDED.title,
					categories = EXCLUDED.categories,
					description = EXCLUDED.description,
					education = EXCLUDED.education,
					salary_range = EXCLUDED.salary_range,
					outlook = EXCLUDED.outlook,
					position = EXCLUDED.position`,
				c.ID, c.Title, categoryStrings(c.Categories), c.Description, c.Education, c.SalaryRange, c.Outlook, base+int64(i)+1,
			)
			if err != nil {
				return fmt.Errorf("upsert career %s: %w", c.ID, err)
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

func scanCareers(rows database.Rows) ([]career.Career, error) {
	defer rows.Close()

	out := make([]career.Career, 0)
	for rows.Next() {
		var (
			c    career.Career
			cats []string
		)
		if err := rows.Scan(&c.ID, &c.Title, &cats, &c.Description, &c.Education, &c.SalaryRange, &c.Outlook, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Categories = parseCategories(cats)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func categoryStrings(cats []riasec.Category) []string {
	out := make([]string, 0, len(cats))
	for _, c := range cats {
		out = append(out, string(c))
	}
	return out
}

// parseCategories drops unknown symbols.
func parseCategories(in []string) []riasec.Category {
	out := make([]riasec.Category, 0, len(in))
	for _, s := range in {
		if c, err := riasec.Parse(s); err == nil {
			out = append(out, c)
		}
	}
	return out
}
