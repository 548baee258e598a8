package app

import (
	"errors"
	"fmt"
)

// OpError represents a precondition failure of a state-transition
// operation: bad credentials, duplicate username, missing target,
// insufficient permission, malformed input.
//
// Precondition failures are values, not faults: an operation returning
// an OpError has mutated nothing. Infrastructure faults (a failing
// persistence write) are returned as ordinary wrapped errors instead.
type OpError struct {
	// Code identifies the failure category.
	Code OpErrorCode

	// Message is a human-readable description.
	Message string

	// Subject identifies the entity involved, when there is one
	// (a username, post id, message id, or calendar date).
	Subject string
}

// OpErrorCode categorizes precondition failures.
type OpErrorCode string

const (
	// ErrCodeNotAuthenticated indicates an operation requiring a session
	// subject was invoked while logged out.
	ErrCodeNotAuthenticated OpErrorCode = "NOT_AUTHENTICATED"

	// ErrCodeForbidden indicates the session subject lacks the role or
	// ownership the operation requires.
	ErrCodeForbidden OpErrorCode = "FORBIDDEN"

	// ErrCodeNotFound indicates the operation's target does not exist.
	ErrCodeNotFound OpErrorCode = "NOT_FOUND"

	// ErrCodeUsernameTaken indicates a signup with an existing username.
	ErrCodeUsernameTaken OpErrorCode = "USERNAME_TAKEN"

	// ErrCodeBadCredentials indicates a login with wrong username or
	// password.
	ErrCodeBadCredentials OpErrorCode = "BAD_CREDENTIALS"

	// ErrCodeSelfTarget indicates an operation aimed at the session
	// subject itself where that is not allowed (friend requests, role
	// changes).
	ErrCodeSelfTarget OpErrorCode = "SELF_TARGET"

	// ErrCodeDuplicate indicates the relationship already exists
	// (already friends, request already pending).
	ErrCodeDuplicate OpErrorCode = "DUPLICATE"

	// ErrCodeInvalidInput indicates malformed arguments (empty username,
	// bad calendar date, unknown role).
	ErrCodeInvalidInput OpErrorCode = "INVALID_INPUT"
)

// Error implements the error interface.
func (e *OpError) Error() string {
	if e.Subject != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Subject)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CodeOf extracts the OpErrorCode from an error.
// Returns the empty code if the error is not an OpError.
// Uses errors.As to handle wrapped errors.
func CodeOf(err error) OpErrorCode {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Code
	}
	return ""
}

// IsNotAuthenticated reports whether err is a missing-session failure.
func IsNotAuthenticated(err error) bool { return CodeOf(err) == ErrCodeNotAuthenticated }

// IsForbidden reports whether err is a permission failure.
func IsForbidden(err error) bool { return CodeOf(err) == ErrCodeForbidden }

// IsNotFound reports whether err is a missing-target failure.
func IsNotFound(err error) bool { return CodeOf(err) == ErrCodeNotFound }

func errNotAuthenticated() *OpError {
	return &OpError{Code: ErrCodeNotAuthenticated, Message: "no active session"}
}

func errForbidden(message string) *OpError {
	return &OpError{Code: ErrCodeForbidden, Message: message}
}

func errNotFound(kind, subject string) *OpError {
	return &OpError{Code: ErrCodeNotFound, Message: kind + " not found", Subject: subject}
}

func errInvalidInput(message string) *OpError {
	return &OpError{Code: ErrCodeInvalidInput, Message: message}
}
