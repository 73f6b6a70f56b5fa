package dbtools

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/FreePeak/db-view-server/internal/domain"
	"github.com/FreePeak/db-view-server/pkg/db"
	"github.com/FreePeak/db-view-server/pkg/logger"
)

// Queryer is the part of *sql.Tx and *sql.DB used to run a single statement
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// QueryRows runs statement and renders every row as text
func QueryRows(ctx context.Context, q Queryer, statement string) (domain.ResultSet, error) {
	rows, err := q.QueryContext(ctx, statement)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			logger.Warn("Error closing rows: %v", closeErr)
		}
	}()

	return RowsToResultSet(rows)
}

// ExecStatement runs statement for effect and returns the affected row count,
// or -1 when the driver cannot report it.
func ExecStatement(ctx context.Context, q Queryer, statement string) (int64, error) {
	result, err := q.ExecContext(ctx, statement)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return -1, nil
	}
	return affected, nil
}

// RowsToResultSet converts sql.Rows into ordered text rows.
// NULL becomes the empty string and a repeated column name keeps its first value.
func RowsToResultSet(rows *sql.Rows) (domain.ResultSet, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	values := make([]interface{}, len(columns))
	scanArgs := make([]interface{}, len(columns))
	for i := range values {
		scanArgs[i] = &values[i]
	}

	results := domain.ResultSet{}
	for rows.Next() {
		if err := rows.Scan(scanArgs...); err != nil {
			return nil, err
		}

		row := make(domain.ResultRow, 0, len(columns))
		for i, col := range columns {
			row = row.Set(col, formatValue(values[i]))
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func formatValue(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	case string:
		return v
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}

// WithTransaction runs fn inside a transaction on database. The transaction
// is committed when fn succeeds and rolled back otherwise.
func WithTransaction(ctx context.Context, database db.Database, fn func(tx *sql.Tx) error) error {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			logger.Warn("Error rolling back transaction: %v", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
