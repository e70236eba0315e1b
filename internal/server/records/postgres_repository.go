package records

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/qianzhu/lifeplanner/internal/common"
	"github.com/qianzhu/lifeplanner/internal/dbx"
)

// PostgresRepository implements record storage over a dbx.DBTX
// (*sql.DB or *sql.Tx). The user_data table is one wide row per user, so
// column lists are built dynamically from the field bag; keys are sorted to
// keep statements deterministic.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, userID string) (Fields, error) {
	query := `SELECT * FROM user_data WHERE user_id = $1`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		return nil, common.ErrorNotFound
	}

	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	row := make(Fields, len(cols))
	for i, col := range cols {
		row[col] = values[i]
	}
	return row, nil
}

func (r *PostgresRepository) Exists(ctx context.Context, userID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM user_data WHERE user_id = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, row Fields) error {
	keys := sortedKeys(row)

	cols := make([]string, len(keys))
	placeholders := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		cols[i] = k
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = encodeValue(row[k])
	}

	query := fmt.Sprintf(
		"INSERT INTO user_data (%s) VALUES (%s)",
		strings.Join(cols, ", "), strings.Join(placeholders, ", "),
	)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, userID string, row Fields) error {
	keys := sortedKeys(row)

	assignments := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys)+1)
	for _, k := range keys {
		if k == "user_id" {
			continue
		}
		assignments = append(assignments, fmt.Sprintf("%s = $%d", k, len(args)+1))
		args = append(args, encodeValue(row[k]))
	}
	args = append(args, userID)

	query := fmt.Sprintf(
		"UPDATE user_data SET %s WHERE user_id = $%d",
		strings.Join(assignments, ", "), len(args),
	)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func sortedKeys(row Fields) []string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// encodeValue converts composite values to JSON for jsonb columns; scalars
// pass through to the driver untouched.
func encodeValue(v any) any {
	switch v.(type) {
	case []string, []any, map[string]any:
		b, err := json.Marshal(v)
		if err != nil {
			return nil
		}
		return b
	}
	return v
}
