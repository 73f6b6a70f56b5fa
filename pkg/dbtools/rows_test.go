package dbtools

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FreePeak/db-view-server/internal/domain"
	"github.com/FreePeak/db-view-server/pkg/db"
)

func openTestDatabase(t *testing.T) db.Database {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rows.db")
	database, err := db.NewDatabase(db.Config{URL: "sqlite:" + path})
	require.NoError(t, err)
	require.NoError(t, database.Connect(context.Background()))
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func TestQueryRowsRendersText(t *testing.T) {
	database := openTestDatabase(t)
	ctx := context.Background()

	err := WithTransaction(ctx, database, func(tx *sql.Tx) error {
		if _, err := ExecStatement(ctx, tx, "CREATE TABLE emp (id INTEGER, name TEXT, note TEXT)"); err != nil {
			return err
		}
		_, err := ExecStatement(ctx, tx, "INSERT INTO emp VALUES (1, 'tanaka', NULL), (2, 'yamada', 'x')")
		return err
	})
	require.NoError(t, err)

	var rows domain.ResultSet
	err = WithTransaction(ctx, database, func(tx *sql.Tx) error {
		var qErr error
		rows, qErr = QueryRows(ctx, tx, "SELECT id, name, note FROM emp ORDER BY id")
		return qErr
	})
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"id", "name", "note"}, rows[0].Columns())
	assert.Equal(t, map[string]string{"id": "1", "name": "tanaka", "note": ""}, rows[0].Map())
	assert.Equal(t, map[string]string{"id": "2", "name": "yamada", "note": "x"}, rows[1].Map())
}

func TestQueryRowsDuplicateColumnKeepsFirst(t *testing.T) {
	database := openTestDatabase(t)
	ctx := context.Background()

	var rows domain.ResultSet
	err := WithTransaction(ctx, database, func(tx *sql.Tx) error {
		var qErr error
		rows, qErr = QueryRows(ctx, tx, "SELECT 'a' AS v, 'b' AS v")
		return qErr
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.ResultRow{{Name: "v", Value: "a"}}, rows[0])
}

func TestQueryRowsEmpty(t *testing.T) {
	database := openTestDatabase(t)
	ctx := context.Background()

	var rows domain.ResultSet
	err := WithTransaction(ctx, database, func(tx *sql.Tx) error {
		var qErr error
		rows, qErr = QueryRows(ctx, tx, "SELECT 1 AS one WHERE 1 = 0")
		return qErr
	})
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestWithTransactionRollsBack(t *testing.T) {
	database := openTestDatabase(t)
	ctx := context.Background()

	require.NoError(t, WithTransaction(ctx, database, func(tx *sql.Tx) error {
		_, err := ExecStatement(ctx, tx, "CREATE TABLE t (v INTEGER)")
		return err
	}))

	boom := errors.New("boom")
	err := WithTransaction(ctx, database, func(tx *sql.Tx) error {
		if _, err := ExecStatement(ctx, tx, "INSERT INTO t VALUES (1)"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var rows domain.ResultSet
	require.NoError(t, WithTransaction(ctx, database, func(tx *sql.Tx) error {
		var qErr error
		rows, qErr = QueryRows(ctx, tx, "SELECT v FROM t")
		return qErr
	}))
	assert.Empty(t, rows)
}

func TestExecStatementReportsAffectedRows(t *testing.T) {
	database := openTestDatabase(t)
	ctx := context.Background()

	var affected int64
	require.NoError(t, WithTransaction(ctx, database, func(tx *sql.Tx) error {
		if _, err := ExecStatement(ctx, tx, "CREATE TABLE t (v INTEGER)"); err != nil {
			return err
		}
		var err error
		affected, err = ExecStatement(ctx, tx, "INSERT INTO t VALUES (1), (2), (3)")
		return err
	}))
	assert.Equal(t, int64(3), affected)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "", formatValue(nil))
	assert.Equal(t, "abc", formatValue([]byte("abc")))
	assert.Equal(t, "42", formatValue(int64(42)))
	assert.Equal(t, "1.5", formatValue(1.5))
	assert.Equal(t, "true", formatValue(true))
}
