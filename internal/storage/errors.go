package storage

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	ErrMissingField      = errors.New("missing required field")
	ErrInvalidFieldValue = errors.New("invalid field value")
	ErrInvalidID         = errors.New("invalid record id")
	ErrConnectionFailed  = errors.New("database connection failed")
	ErrCreateFailed      = errors.New("create failed")
)

// Error provides detailed error information for a storage operation.
type Error struct {
	Op    string // Operation that failed
	Table string // Table involved
	Field string // Field involved (if applicable)
	Err   error  // Underlying error
}

func (e *Error) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("storage: %s", e.Op))

	if e.Table != "" {
		parts = append(parts, fmt.Sprintf("table=%s", e.Table))
	}

	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}

	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for Error type
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return errors.Is(e.Err, target)
	}

	if t.Op != "" && e.Op == t.Op {
		return true
	}

	return errors.Is(e.Err, t.Err)
}
