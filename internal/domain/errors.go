package domain

import (
	"errors"
	"fmt"
)

// Error categories, matched with errors.Is
var (
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrExecution     = errors.New("execution error")
	ErrSystem        = errors.New("system error")
)

var validationMessages = map[string]string{
	FieldView:      "view file path not found",
	FieldSQL:       "SQL file path not found",
	FieldErrorView: "error view file path not found",
}

// ValidationError reports a configuration-referenced path that does not exist
type ValidationError struct {
	Field string
	Path  string
}

func (e *ValidationError) Error() string {
	msg, ok := validationMessages[e.Field]
	if !ok {
		msg = e.Field + " file path not found"
	}
	return fmt.Sprintf("%s: %q", msg, e.Path)
}

// Is matches ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ConfigurationError reports an unreadable or malformed configuration document,
// or a missing default entry. It belongs to the validation category.
type ConfigurationError struct {
	Document string
	Msg      string
	Err      error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%s): %v", e.Msg, e.Document, e.Err)
	}
	return fmt.Sprintf("%s (%s)", e.Msg, e.Document)
}

// Is matches ErrConfiguration and ErrValidation
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration || target == ErrValidation
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ExecutionError reports a failure while running the SQL step
type ExecutionError struct {
	Op  string
	Err error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Is matches ErrExecution
func (e *ExecutionError) Is(target error) bool {
	return target == ErrExecution
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// SystemError wraps anything the pipeline did not anticipate
type SystemError struct {
	Err error
}

func (e *SystemError) Error() string {
	return fmt.Sprintf("unexpected error occurred: %v", e.Err)
}

// Is matches ErrSystem
func (e *SystemError) Is(target error) bool {
	return target == ErrSystem
}

func (e *SystemError) Unwrap() error {
	return e.Err
}
