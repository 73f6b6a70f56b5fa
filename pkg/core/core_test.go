package core

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentity(t *testing.T) {
	assert.Equal(t, "db-view-server", Name())
	assert.NotEmpty(t, Version())
}

func TestGetLogWriter(t *testing.T) {
	t.Setenv("DISABLE_LOGGING", "true")
	assert.True(t, IsLoggingDisabled())
	assert.Equal(t, io.Discard, GetLogWriter())

	t.Setenv("DISABLE_LOGGING", "1")
	assert.True(t, IsLoggingDisabled())

	t.Setenv("DISABLE_LOGGING", "")
	assert.False(t, IsLoggingDisabled())
	assert.Equal(t, os.Stderr, GetLogWriter())
}
