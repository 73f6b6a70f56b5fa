package repository

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FreePeak/db-view-server/internal/domain"
)

func TestFileRepositoryExists(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "views/demo.view", "demo")
	repo := NewFileRepository()

	assert.True(t, repo.Exists(path))
	assert.True(t, repo.Exists(dir))
	assert.False(t, repo.Exists(filepath.Join(dir, "missing.view")))
	assert.False(t, repo.Exists(""))
}

func TestFileRepositoryReadFileVerbatim(t *testing.T) {
	content := "SELECT *\n  FROM Employee\n WHERE id = {{id}}\n"
	path := writeFile(t, t.TempDir(), "select.sql", content)

	got, err := NewFileRepository().ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	_, err = NewFileRepository().ReadFile(filepath.Join(t.TempDir(), "absent.sql"))
	assert.Error(t, err)
}

func TestFileRepositoryReadConnection(t *testing.T) {
	path := writeFile(t, t.TempDir(), "db.properties",
		"url=jdbc:postgresql://localhost:5432/postgres\nuser=postgres\npassword=pass\n")

	conn, err := NewFileRepository().ReadConnection(path)
	require.NoError(t, err)
	assert.Equal(t, domain.ConnectionConfig{
		URL:      "jdbc:postgresql://localhost:5432/postgres",
		User:     "postgres",
		Password: "pass",
	}, conn)

	_, err = NewFileRepository().ReadConnection(filepath.Join(t.TempDir(), "absent.properties"))
	assert.Error(t, err)
}
