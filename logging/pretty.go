package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/grovetools/ccsessions/tui/theme"
)

// PrettyLogger writes short styled messages for people reading the
// terminal, alongside the structured log.
type PrettyLogger struct {
	writer io.Writer
	theme  *theme.Theme
}

// NewPrettyLogger creates a pretty logger writing to stderr.
func NewPrettyLogger() *PrettyLogger {
	return &PrettyLogger{
		writer: os.Stderr,
		theme:  theme.DefaultTheme,
	}
}

// WithWriter sets a custom writer for pretty output
func (p *PrettyLogger) WithWriter(w io.Writer) *PrettyLogger {
	p.writer = w
	return p
}

// Success prints message with a checkmark.
func (p *PrettyLogger) Success(message string) {
	fmt.Fprintf(p.writer, "%s %s\n", p.theme.Success.Render("✓"), message)
}

// Info prints message in the info color.
func (p *PrettyLogger) Info(message string) {
	fmt.Fprintln(p.writer, p.theme.Info.Render(message))
}

// Warn prints message with a warning sign.
func (p *PrettyLogger) Warn(message string) {
	fmt.Fprintf(p.writer, "%s %s\n", p.theme.Warning.Render("⚠"), message)
}

// Error prints message and err with a cross.
func (p *PrettyLogger) Error(message string, err error) {
	fmt.Fprintf(p.writer, "%s %s", p.theme.Error.Render("✗"), p.theme.Error.Render(message))
	if err != nil {
		fmt.Fprintf(p.writer, ": %s", err.Error())
	}
	fmt.Fprintln(p.writer)
}

// Field prints a key-value pair.
func (p *PrettyLogger) Field(key string, value interface{}) {
	fmt.Fprintf(p.writer, "  %s %s\n", p.theme.Muted.Render(key+":"), p.theme.Bold.Render(fmt.Sprint(value)))
}

// Command prints a shell command line the user can copy.
func (p *PrettyLogger) Command(line string) {
	fmt.Fprintf(p.writer, "  %s %s\n", p.theme.Muted.Render("$"), p.theme.Accent.Render(line))
}
