package services

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors raised by the lifecycle services. Controllers translate
// these into stable error codes with errors.Is; none of them may be
// downgraded to a generic failure.
var (
	// ErrInvalidToken means the identity oracle rejected the credential
	// (expired, malformed, signature mismatch).
	ErrInvalidToken = errors.New("invalid token")

	// ErrOracleUnavailable means the call to the identity oracle itself could
	// not complete. Kept distinct from ErrInvalidToken so "bad token" and
	// "verifier down" surface as different HTTP statuses.
	ErrOracleUnavailable = errors.New("identity provider unavailable")

	// ErrAlreadyRegistered means a user already exists for the subject or email.
	ErrAlreadyRegistered = errors.New("user already registered")

	// ErrNotRegistered means no user record exists for the verified subject.
	ErrNotRegistered = errors.New("user not registered")

	// ErrAccountNotActive means the account exists but its status is not active.
	ErrAccountNotActive = errors.New("user account is not active")

	// ErrUserNotFound means a profile lookup found no user for the subject.
	ErrUserNotFound = errors.New("user not found")

	// ErrNotFound means the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidSchedule means the appointment time is not strictly in the future.
	ErrInvalidSchedule = errors.New("scheduled time must be in the future")

	// ErrInvalidTransition means the requested status change is outside the
	// appointment transition table.
	ErrInvalidTransition = errors.New("status transition not allowed")

	// ErrValidation means a field-level constraint was violated.
	ErrValidation = errors.New("validation failed")
)

// ValidationError wraps ErrValidation with a field-level message
func ValidationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// IsUniqueViolation reports whether err is a unique-constraint failure from
// the underlying database. Matched by substring so it works with both
// PostgreSQL and SQLite.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique")
}
