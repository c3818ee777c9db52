package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/haulory/haulory/internal/app"
	"github.com/haulory/haulory/internal/docstore"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // successful execution
	ExitFailure      = 1 // domain failure (bad input, bad credentials, missing entity)
	ExitCommandError = 2 // command error (bad flags, unreadable files, store unavailable)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// GetExitCode extracts the exit code from an error. Application errors map
// to ExitFailure, store and infrastructure errors to ExitCommandError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	var appErr *app.Error
	if errors.As(err, &appErr) {
		return ExitFailure
	}
	if docstore.IsIdentityViolation(err) {
		return ExitFailure
	}
	return ExitCommandError
}

// errorCode extracts the stable code string from an error for JSON output.
func errorCode(err error) string {
	var appErr *app.Error
	if errors.As(err, &appErr) {
		return string(appErr.Code)
	}
	var storeErr *docstore.StoreError
	if errors.As(err, &storeErr) {
		return string(storeErr.Code)
	}
	return "ERROR"
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// response is the JSON envelope for every command result.
type response struct {
	Status string         `json:"status"` // "ok" or "error"
	Data   any            `json:"data,omitempty"`
	Error  *responseError `json:"error,omitempty"`
}

type responseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success outputs a successful result in the configured format. text is
// the human-readable rendering used when the format is not JSON.
func (f *OutputFormatter) Success(data any, text string) error {
	if f.Format == "json" {
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(response{Status: "ok", Data: data})
	}
	if text != "" {
		fmt.Fprintln(f.Writer, text)
	}
	return nil
}

// Error outputs a command failure in the configured format and returns an
// ExitError carrying the right exit code.
func (f *OutputFormatter) Error(err error) error {
	if f.Format == "json" {
		_ = json.NewEncoder(f.Writer).Encode(response{
			Status: "error",
			Error:  &responseError{Code: errorCode(err), Message: err.Error()},
		})
	} else {
		fmt.Fprintf(f.Writer, "Error: %s\n", err.Error())
	}
	return &ExitError{Code: GetExitCode(err), Message: err.Error(), Err: err}
}
