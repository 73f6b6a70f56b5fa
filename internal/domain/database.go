package domain

import (
	"context"
)

// ConfigRepository looks up configuration entries in a configuration document
type ConfigRepository interface {
	// Lookup returns the entry for identifier. found is false when no group
	// matches; that is not an error.
	Lookup(ctx context.Context, document, identifier string) (entry ConfigEntry, found bool, err error)
}

// FileRepository gives the pipeline access to files referenced by an entry
type FileRepository interface {
	Exists(path string) bool
	ReadFile(path string) (string, error)
	ReadConnection(path string) (ConnectionConfig, error)
}

// SQLExecutor runs one statement in its own transaction on its own connection
type SQLExecutor interface {
	Execute(ctx context.Context, conn ConnectionConfig, statement string, mode ExecutionMode) (ExecResult, error)
}

// Resolver turns a request into an outcome
type Resolver interface {
	Resolve(ctx context.Context, req Request) Outcome
}
