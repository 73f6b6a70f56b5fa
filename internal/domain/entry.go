package domain

import (
	"fmt"
	"strings"
)

// Fixed field names of a configuration group
const (
	FieldIdentifier = "identifier"
	FieldView       = "view"
	FieldSQL        = "sql"
	FieldErrorView  = "errorview"
)

// DefaultIdentifier names the entry used when a requested identifier is absent
const DefaultIdentifier = "default"

// ConfigEntry is the (view, sql, error view) triple bound to one identifier
type ConfigEntry struct {
	Identifier    string `json:"identifier"`
	ViewPath      string `json:"view"`
	SQLPath       string `json:"sql,omitempty"`
	ErrorViewPath string `json:"errorview"`
}

// HasSQL reports whether the entry carries a SQL step
func (e ConfigEntry) HasSQL() bool {
	return e.SQLPath != ""
}

// EntryFromFields builds an entry from the raw fields of one configuration group.
// Unknown field names are ignored.
func EntryFromFields(fields map[string]string) ConfigEntry {
	return ConfigEntry{
		Identifier:    fields[FieldIdentifier],
		ViewPath:      fields[FieldView],
		SQLPath:       fields[FieldSQL],
		ErrorViewPath: fields[FieldErrorView],
	}
}

// ParameterMap holds caller-supplied values keyed by placeholder name
type ParameterMap map[string]string

// ExecutionMode selects between the query and the statement path
type ExecutionMode int

const (
	// Read runs a query and returns rows
	Read ExecutionMode = iota
	// Write runs a statement for effect
	Write
)

// String returns the lower-case name of the mode
func (m ExecutionMode) String() string {
	switch m {
	case Read:
		return "read"
	case Write:
		return "write"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Description returns the log label of the view transition pattern
func (m ExecutionMode) Description() string {
	if m == Write {
		return "store data and transition view"
	}
	return "fetch data and transition view"
}

// ParseExecutionMode converts a mode name or HTTP method into an ExecutionMode
func ParseExecutionMode(s string) (ExecutionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "read", "get", "":
		return Read, nil
	case "write", "post":
		return Write, nil
	default:
		return Read, fmt.Errorf("unknown execution mode: %s", s)
	}
}

// ConnectionConfig holds the contents of the connection parameters file
type ConnectionConfig struct {
	URL      string
	User     string
	Password string
}

// Request is the input of one resolution
type Request struct {
	Identifier string
	Params     ParameterMap
	Mode       ExecutionMode
}
