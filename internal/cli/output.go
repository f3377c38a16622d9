package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/GuotongWu/CookNote/internal/analyzer"
	"github.com/GuotongWu/CookNote/internal/journal"
	"github.com/GuotongWu/CookNote/internal/models"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Rejected input or remote failure
	ExitCommandError = 2 // Command error (bad flags, unreadable files, storage)
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

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
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

// serviceError turns journal and analyzer failures into user-facing errors.
func serviceError(err error) error {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		return WrapExitError(ExitFailure, "rejected", err)
	case errors.Is(err, journal.ErrNotFound):
		return WrapExitError(ExitFailure, "not found", err)
	case errors.Is(err, analyzer.ErrImageCount),
		errors.Is(err, analyzer.ErrNetwork),
		errors.Is(err, analyzer.ErrMalformed):
		return WrapExitError(ExitFailure, analyzer.UserMessage(err), err)
	}
	return err
}

// printer writes results in the selected format. Text output is produced
// by a per-command function.
type printer struct {
	format string
	w      io.Writer
}

func newPrinter(opts *RootOptions, cmd *cobra.Command) *printer {
	return &printer{format: opts.Format, w: cmd.OutOrStdout()}
}

func (p *printer) print(v any, text func(w io.Writer)) error {
	switch p.format {
	case "json":
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		text(p.w)
		return nil
	}
}
