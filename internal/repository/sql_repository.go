package repository

import (
	"context"
	"database/sql"

	"github.com/FreePeak/db-view-server/internal/domain"
	"github.com/FreePeak/db-view-server/pkg/db"
	"github.com/FreePeak/db-view-server/pkg/dbtools"
	"github.com/FreePeak/db-view-server/pkg/logger"
)

// SQLRepository implements domain.SQLExecutor. Every call opens its own
// connection, runs one transaction and closes the connection again.
type SQLRepository struct {
	timer *dbtools.StatementTimer
}

// NewSQLRepository creates a new SQL repository
func NewSQLRepository() *SQLRepository {
	return &SQLRepository{timer: dbtools.NewStatementTimer(dbtools.DefaultSlowThreshold)}
}

// Execute runs statement against the database described by conn
func (r *SQLRepository) Execute(ctx context.Context, conn domain.ConnectionConfig, statement string, mode domain.ExecutionMode) (domain.ExecResult, error) {
	database, err := db.NewDatabase(db.Config{URL: conn.URL, User: conn.User, Password: conn.Password})
	if err != nil {
		return domain.ExecResult{}, &domain.ExecutionError{Op: "resolve driver", Err: err}
	}

	if err := database.Connect(ctx); err != nil {
		return domain.ExecResult{}, &domain.ExecutionError{Op: "connect", Err: err}
	}
	defer func() {
		if closeErr := database.Close(); closeErr != nil {
			logger.Warn("Error closing connection to %s: %v", database.ConnectionString(), closeErr)
		}
	}()

	result := domain.ExecResult{Mode: mode}
	err = r.timer.Track(statement, func() error {
		return dbtools.WithTransaction(ctx, database, func(tx *sql.Tx) error {
			var txErr error
			switch mode {
			case domain.Write:
				result.RowsAffected, txErr = dbtools.ExecStatement(ctx, tx, statement)
			default:
				result.Rows, txErr = dbtools.QueryRows(ctx, tx, statement)
			}
			return txErr
		})
	})
	if err != nil {
		return domain.ExecResult{}, &domain.ExecutionError{Op: mode.String() + " statement", Err: err}
	}

	if mode == domain.Write {
		logger.Debug("Statement affected %d rows", result.RowsAffected)
	} else {
		logger.Debug("Query returned %d rows", len(result.Rows))
	}
	return result, nil
}
