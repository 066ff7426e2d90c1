package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/jcheck/internal/harness"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // All scenarios passed
	ExitFailure      = 1 // One or more scenarios failed
	ExitCommandError = 2 // Command error (bad flag, journal unavailable, suite invalid)
)

// Error codes in JSON responses.
const (
	ErrCodeScenarioFailed = "E_SCENARIO_FAILED"
	ErrCodeSuite          = "E_SUITE"
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
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

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode maps an error returned by Execute to a process exit code.
// nil is ExitSuccess; errors other than ExitError are ExitCommandError,
// since cobra returns plain errors for bad flags and arguments.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status  string      `json:"status"`             // "ok" or "error"
	Data    interface{} `json:"data,omitempty"`     // success payload
	Error   *CLIError   `json:"error,omitempty"`    // error details
	TraceID string      `json:"trace_id,omitempty"` // run id of a check run
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		return f.encode(CLIResponse{Status: "ok", Data: data})
	}
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.Format == "json" {
		return f.encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message, Details: details},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Report writes the run summary and returns an ExitFailure error when any
// scenario failed.
func (f *OutputFormatter) Report(r *harness.Report) error {
	var failure error
	if !r.Pass {
		failure = NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", r.Failed))
	}

	if f.Format == "json" {
		resp := CLIResponse{Status: "ok", Data: r, TraceID: r.RunID}
		if !r.Pass {
			resp.Status = "error"
			resp.Error = &CLIError{
				Code:    ErrCodeScenarioFailed,
				Message: failure.Error(),
			}
		}
		if err := f.encode(resp); err != nil {
			return err
		}
		return failure
	}

	w := f.Writer
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Summary: %d passed, %d failed, %d total\n", r.Passed, r.Failed, r.Total())
	for _, res := range r.Results {
		if res.Pass {
			continue
		}
		fmt.Fprintf(w, "  %s", res.Name)
		if res.ErrorKind != harness.KindNone {
			fmt.Fprintf(w, " [%s]", res.ErrorKind)
		}
		fmt.Fprintln(w)
		for _, msg := range res.Errors {
			fmt.Fprintf(w, "    %s\n", msg)
		}
	}
	f.VerboseLog("run id: %s", r.RunID)

	if failure == nil {
		fmt.Fprintln(w, "All scenarios passed")
	}
	return failure
}

func (f *OutputFormatter) encode(resp CLIResponse) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// VerboseLog outputs a message only if verbose mode is enabled.
// When format is JSON, verbose logs go to ErrWriter to avoid corrupting JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.errWriter(), format+"\n", args...)
}

func (f *OutputFormatter) errWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}
