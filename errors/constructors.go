package errors

import (
	"fmt"
	"os/exec"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *Error {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *Error {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// LabelsCorrupt reports a label store file that could not be decoded.
func LabelsCorrupt(path string, err error) *Error {
	return Wrap(err, ErrCodeLabelsCorrupt, fmt.Sprintf("label file is not valid JSON: %s", path)).
		WithDetail("path", path)
}

// LabelsUnreadable reports a label store file that exists but could not be read.
func LabelsUnreadable(path string, err error) *Error {
	return Wrap(err, ErrCodeLabelsUnreadable, fmt.Sprintf("label file could not be read: %s", path)).
		WithDetail("path", path)
}

// LabelsWrite reports a failed label store write.
func LabelsWrite(path string, err error) *Error {
	return Wrap(err, ErrCodeLabelsWrite, "failed to save labels").
		WithDetail("path", path)
}

// TitleWrite reports a failed custom-title append.
func TitleWrite(path string, err error) *Error {
	return Wrap(err, ErrCodeTitleWrite, "failed to write session title").
		WithDetail("path", path)
}

// SessionMissing reports an operation on a session that is not loaded.
func SessionMissing(id string) *Error {
	return New(ErrCodeSessionMissing, fmt.Sprintf("session '%s' not found", id)).
		WithDetail("session", id)
}

// ResumeFailed creates a resume launch failure error
func ResumeFailed(cmd string, err error) *Error {
	e := Wrap(err, ErrCodeResumeFailed, fmt.Sprintf("resume failed: %s", cmd)).
		WithDetail("command", cmd)

	// Extract exit code if available
	if exitErr, ok := err.(*exec.ExitError); ok {
		e = e.WithDetail("exitCode", exitErr.ExitCode())
	}

	return e
}

// TerminalUnavailable reports that stdin/stdout is not an interactive terminal.
func TerminalUnavailable(reason string) *Error {
	return New(ErrCodeTerminalUnavailable, fmt.Sprintf("interactive terminal required: %s", reason))
}

// InvalidInput creates an invalid input error
func InvalidInput(reason string) *Error {
	return New(ErrCodeInvalidInput, reason)
}
