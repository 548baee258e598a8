package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aeterist/aeterist/internal/app"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Precondition failure (bad credentials, forbidden, ...)
	ExitCommandError = 2 // Command error (invalid flags, unreadable database, ...)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
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

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// wrapOpError maps a state-store error to an ExitError: precondition
// failures exit 1, infrastructure faults exit 2.
func wrapOpError(err error) error {
	if err == nil {
		return nil
	}
	if app.CodeOf(err) != "" {
		return &ExitError{Code: ExitFailure, Message: err.Error(), Err: err}
	}
	return &ExitError{Code: ExitCommandError, Message: "command failed", Err: err}
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string `json:"status"`         // "ok"
	Data   any    `json:"data,omitempty"` // success payload
}

// Success outputs a successful result. In text mode textFn renders the
// human-readable form; in JSON mode data is wrapped in a CLIResponse.
func (f *OutputFormatter) Success(data any, textFn func(w io.Writer)) error {
	if f.Format == "json" {
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(CLIResponse{Status: "ok", Data: data})
	}
	if textFn != nil {
		textFn(f.Writer)
	}
	return nil
}

// newFormatter builds the formatter for a command invocation.
func newFormatter(opts *RootOptions, w io.Writer) *OutputFormatter {
	return &OutputFormatter{Format: opts.Format, Writer: w}
}
