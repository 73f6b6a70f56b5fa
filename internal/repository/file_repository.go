package repository

import (
	"fmt"
	"os"

	"github.com/FreePeak/db-view-server/internal/domain"
	"github.com/FreePeak/db-view-server/pkg/db"
)

// FileRepository implements domain.FileRepository on the local filesystem
type FileRepository struct{}

// NewFileRepository creates a new file repository
func NewFileRepository() *FileRepository {
	return &FileRepository{}
}

// Exists reports whether path names an existing file or directory.
// The empty path never exists.
func (r *FileRepository) Exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// ReadFile returns the whole content of path, unmodified
func (r *FileRepository) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// ReadConnection loads the url, user and password properties from path
func (r *FileRepository) ReadConnection(path string) (domain.ConnectionConfig, error) {
	cfg, err := db.LoadProperties(path)
	if err != nil {
		return domain.ConnectionConfig{}, err
	}
	return domain.ConnectionConfig{
		URL:      cfg.URL,
		User:     cfg.User,
		Password: cfg.Password,
	}, nil
}
