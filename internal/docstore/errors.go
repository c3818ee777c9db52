package docstore

import (
	"errors"
	"fmt"
)

// StoreError represents a failure detected in the persistence layer.
//
// Store errors include:
//   - Key unavailable: protected key storage could not be reached
//   - Decryption failure: wrong key or corrupted ciphertext
//   - Serialization failure: decrypted payload is not a valid record array
//   - Identity violation: a unique key (e.g. account email) already exists
//
// Decryption and serialization failures are recovered inside the store by
// quarantining the file; they appear here only in logs. Key unavailability
// and identity violations propagate to callers.
type StoreError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Path is the collection file involved, when known.
	Path string

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// ErrorCode categorizes store errors.
type ErrorCode string

const (
	// ErrCodeKeyUnavailable indicates protected key storage is inaccessible.
	// Fatal to the calling operation; never masked by minting a new key.
	ErrCodeKeyUnavailable ErrorCode = "KEY_UNAVAILABLE"

	// ErrCodeDecryptionFailure indicates a wrong key or corrupt ciphertext.
	ErrCodeDecryptionFailure ErrorCode = "DECRYPTION_FAILURE"

	// ErrCodeSerializationFailure indicates a malformed decrypted payload.
	ErrCodeSerializationFailure ErrorCode = "SERIALIZATION_FAILURE"

	// ErrCodeIdentityViolation indicates a duplicate unique key on add or
	// update.
	ErrCodeIdentityViolation ErrorCode = "IDENTITY_VIOLATION"
)

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s (path=%s)", e.Code, e.Message, e.Path)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsKeyUnavailable returns true if the error is a key-unavailable error.
// Uses errors.As to handle wrapped errors.
func IsKeyUnavailable(err error) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Code == ErrCodeKeyUnavailable
}

// IsIdentityViolation returns true if the error is an identity violation.
// Uses errors.As to handle wrapped errors.
func IsIdentityViolation(err error) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Code == ErrCodeIdentityViolation
}

// NewKeyUnavailable creates a StoreError for inaccessible key storage.
func NewKeyUnavailable(path string, err error) *StoreError {
	return &StoreError{
		Code:    ErrCodeKeyUnavailable,
		Path:    path,
		Message: "protected key storage unavailable",
		Err:     err,
	}
}

// NewIdentityViolation creates a StoreError for a duplicate unique key.
func NewIdentityViolation(message string) *StoreError {
	return &StoreError{
		Code:    ErrCodeIdentityViolation,
		Message: message,
	}
}
