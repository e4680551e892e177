package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound marks a referenced book or session id with no record.
	// Fatal to the triggering operation, never retried.
	ErrNotFound = errors.New("not found")

	// ErrNoActiveSession means a book has no session with an unset end time.
	ErrNoActiveSession = errors.New("no active session")

	// ErrSessionClosed marks an attempt to complete or discard a session
	// that already has an end time. Completed is a terminal state.
	ErrSessionClosed = errors.New("session already completed")
)

// ValidationError aggregates every rule violation found in one pass, so a
// caller can surface all problems at once instead of fixing them one by one.
// Nothing is persisted when validation fails.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Reasons, "; ")
}

// Validation wraps a non-empty reason list; it returns nil when the list is
// empty so call sites can pass validator output through directly.
func Validation(reasons []string) error {
	if len(reasons) == 0 {
		return nil
	}
	return &ValidationError{Reasons: reasons}
}

// IsValidation reports whether err carries an aggregated validation failure.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// ConsistencyError marks a broken cross-record invariant, such as a session
// whose book has been deleted. It should not occur while cascade deletes are
// honored and is treated as fatal.
type ConsistencyError struct {
	Detail string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("consistency violation: %s", e.Detail)
}
