package app

import (
	"errors"
	"fmt"
)

// Error is a user-facing application failure: bad input, bad credentials
// or a missing entity. Store-level failures pass through untouched so
// callers can still match on docstore codes.
type Error struct {
	Code    ErrorCode
	Message string
}

// ErrorCode categorizes application errors.
type ErrorCode string

const (
	// ErrCodeValidation indicates missing or malformed input.
	ErrCodeValidation ErrorCode = "VALIDATION"

	// ErrCodeInvalidCredentials indicates a failed login. Deliberately
	// silent about whether the email or the password was wrong.
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"

	// ErrCodeNotLoggedIn indicates an operation that needs an acting
	// account was called without one.
	ErrCodeNotLoggedIn ErrorCode = "NOT_LOGGED_IN"

	// ErrCodeNotFound indicates the referenced entity does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsValidation returns true if the error is a validation error.
func IsValidation(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Code == ErrCodeValidation
}

// IsInvalidCredentials returns true if the error is a failed login.
func IsInvalidCredentials(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Code == ErrCodeInvalidCredentials
}

// IsNotFound returns true if the error is a missing-entity error.
func IsNotFound(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Code == ErrCodeNotFound
}

func validationf(format string, args ...any) *Error {
	return &Error{Code: ErrCodeValidation, Message: fmt.Sprintf(format, args...)}
}

func notFoundf(format string, args ...any) *Error {
	return &Error{Code: ErrCodeNotFound, Message: fmt.Sprintf(format, args...)}
}

var errInvalidCredentials = &Error{
	Code:    ErrCodeInvalidCredentials,
	Message: "email or password is incorrect",
}

var errNotLoggedIn = &Error{
	Code:    ErrCodeNotLoggedIn,
	Message: "no account is logged in",
}
