package seeder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"career-guidance/internal/database"
)

var ErrSchemaMismatch = errors.New("schema mismatch")

// RequireColumns fails with ErrSchemaMismatch naming every column of table
// that the public schema lacks. Seeders call it before writing so a stale
// database is reported instead of half seeded.
func RequireColumns(ctx context.Context, q database.Querier, table string, columns ...string) error {
	if q == nil {
		return database.ErrNilDB
	}
	if strings.TrimSpace(table) == "" || len(columns) == 0 {
		return fmt.Errorf("%w: table and columns are required", ErrSchemaMismatch)
	}

	rows, err := q.Query(ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema = 'public' AND table_name = $1`,
		table,
	)
	if err != nil {
		return fmt.Errorf("inspect %s: %w", table, err)
	}
	defer rows.Close()

	present := make(map[string]bool, len(columns))
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		present[name] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	var missing []string
	for _, c := range columns {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s lacks %s", ErrSchemaMismatch, table, strings.Join(missing, ", "))
	}
	return nil
}
