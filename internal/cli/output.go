package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // validation rejected the input
	ExitCommandError = 2 // bad arguments, config or I/O
)

// ExitError carries the process exit code for a failed command.
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

func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from err, ExitFailure for plain errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter writes command results as text lines or JSON objects.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// Result writes value under key: the bare value in text mode, {"key": value}
// in JSON mode.
func (f *OutputFormatter) Result(key string, value any) error {
	if f.Format == "json" {
		enc := json.NewEncoder(f.Writer)
		return enc.Encode(map[string]any{key: value})
	}
	_, err := fmt.Fprintln(f.Writer, value)
	return err
}
