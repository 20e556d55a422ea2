package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/grovetools/ccsessions/errors"
	"github.com/grovetools/ccsessions/tui/theme"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		Out:     os.Stderr,
	}
}

// Handle prints a message for err based on its code and returns err.
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}
	t := theme.DefaultTheme
	cross := t.Error.Render("✗")

	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(h.Out, "%s Configuration file not found: %v\n", cross, detail(err, "path"))

	case errors.ErrCodeConfigInvalid:
		fmt.Fprintf(h.Out, "%s %s\n", cross, message(err))
		fmt.Fprintln(h.Out, t.Muted.Render("Fix the config file or pass --config with another one."))

	case errors.ErrCodeTerminalUnavailable:
		fmt.Fprintf(h.Out, "%s %s\n", cross, message(err))
		fmt.Fprintln(h.Out, t.Muted.Render("Run ccsessions in an interactive terminal, or use 'ccsessions list'."))

	case errors.ErrCodeCommandNotFound:
		fmt.Fprintf(h.Out, "%s %s\n", cross, message(err))
		fmt.Fprintln(h.Out, t.Muted.Render("Install the claude CLI (or specstory) and make sure it is on PATH."))

	case errors.ErrCodeResumeFailed:
		fmt.Fprintf(h.Out, "%s Could not resume the session: %v\n", cross, detail(err, "command"))
		if code := detail(err, "exitCode"); code != nil {
			fmt.Fprintf(h.Out, "%s\n", t.Muted.Render(fmt.Sprintf("The command exited with status %v.", code)))
		}

	case errors.ErrCodeLabelsCorrupt:
		fmt.Fprintf(h.Out, "%s %s\n", cross, message(err))
		fmt.Fprintln(h.Out, t.Muted.Render("The file will be moved aside on the next label change."))

	case errors.ErrCodeLabelsUnreadable:
		fmt.Fprintf(h.Out, "%s %s\n", cross, message(err))
		fmt.Fprintln(h.Out, t.Muted.Render("Labels are read-only until the file can be read again."))

	default:
		fmt.Fprintf(h.Out, "%s Error: %v\n", cross, err)
	}

	if h.Verbose {
		if e, ok := err.(*errors.Error); ok {
			fmt.Fprintf(h.Out, "\nError details:\n%s\n", e.ToJSON())
		}
	}
	return err
}

// message is the error's message followed by its cause, without the code.
func message(err error) string {
	e, ok := err.(*errors.Error)
	if !ok {
		return err.Error()
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func detail(err error, key string) interface{} {
	if e, ok := err.(*errors.Error); ok {
		return e.Details[key]
	}
	return nil
}
