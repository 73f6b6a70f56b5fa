// Package core provides process-wide identity and logging switches of the view server.
package core

// Version returns the current version of the view server.
func Version() string {
	return "1.0.0"
}

// Name returns the name of the package.
func Name() string {
	return "db-view-server"
}
