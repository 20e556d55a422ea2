// Package resume hands a chosen session back to the coding assistant.
package resume

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/grovetools/ccsessions/errors"
	"github.com/grovetools/ccsessions/logging"
	"github.com/grovetools/ccsessions/pkg/models"
)

// Launcher resumes a session. Implementations block until the resumed
// program exits.
type Launcher interface {
	Resume(ctx context.Context, s *models.Session) error
	// CommandLine is the shell-equivalent command, shown before launching.
	CommandLine(s *models.Session) string
}

// Program names, in preference order.
const (
	ProgramSpecstory = "specstory"
	ProgramClaude    = "claude"
)

// ExecLauncher runs the resume command as a child process attached to the
// terminal.
type ExecLauncher struct {
	// Program is the executable name or path.
	Program string
	// Name is the program's short name, used to pick arguments.
	Name string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Detect picks the resume program once: specstory when it is on PATH,
// otherwise claude. lookPath is usually exec.LookPath.
func Detect(lookPath func(string) (string, error)) *ExecLauncher {
	l := &ExecLauncher{
		Program: ProgramClaude,
		Name:    ProgramClaude,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
	if path, err := lookPath(ProgramSpecstory); err == nil {
		l.Program, l.Name = path, ProgramSpecstory
	} else if path, err := lookPath(ProgramClaude); err == nil {
		l.Program = path
	}
	logging.NewLogger("resume").WithField("program", l.Program).Debug("Selected resume program")
	return l
}

// Args returns the arguments that resume id.
func (l *ExecLauncher) Args(id string) []string {
	if l.Name == ProgramSpecstory {
		return []string{"run", "--resume", id, "--no-cloud-sync"}
	}
	return []string{"--resume", id}
}

// Dir returns the directory the command runs in: the session's project
// directory when it still exists, otherwise the current directory.
func (l *ExecLauncher) Dir(s *models.Session) string {
	if s.ProjectPath == "" {
		return ""
	}
	if info, err := os.Stat(s.ProjectPath); err == nil && info.IsDir() {
		return s.ProjectPath
	}
	return ""
}

// CommandLine implements Launcher.
func (l *ExecLauncher) CommandLine(s *models.Session) string {
	line := strings.Join(append([]string{l.Name}, l.Args(s.ID)...), " ")
	if dir := l.Dir(s); dir != "" {
		return fmt.Sprintf("cd %s && %s", dir, line)
	}
	return line
}

// Resume implements Launcher.
func (l *ExecLauncher) Resume(ctx context.Context, s *models.Session) error {
	if s == nil {
		return errors.InvalidInput("no session selected")
	}

	cmd := exec.CommandContext(ctx, l.Program, l.Args(s.ID)...)
	cmd.Dir = l.Dir(s)
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr

	logging.NewLogger("resume").WithField("session", s.ID).WithField("dir", cmd.Dir).Info("Resuming session")

	release := holdInterrupts()
	err := cmd.Run()
	release()
	if err != nil {
		if stderrors.Is(err, exec.ErrNotFound) {
			return errors.Wrap(err, errors.ErrCodeCommandNotFound, fmt.Sprintf("%s is not installed", l.Name)).
				WithDetail("program", l.Program)
		}
		return errors.ResumeFailed(l.CommandLine(s), err).WithDetail("session", s.ID)
	}
	return nil
}

// holdInterrupts keeps terminal interrupts from killing this process while
// the resumed program owns the terminal. The foreground process group gets
// every Ctrl+C; the child handles it, we discard it. Notify is used rather
// than Ignore because ignored dispositions survive exec into the child.
func holdInterrupts() (release func()) {
	sigs := make(chan os.Signal, 8)
	signal.Notify(sigs, os.Interrupt, syscall.SIGQUIT)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-sigs:
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

// Recorder is a Launcher that only records what it was asked to resume.
type Recorder struct {
	mu      sync.Mutex
	Resumed []string
	// Err, when set, is returned from every Resume call.
	Err error
}

// Resume implements Launcher.
func (r *Recorder) Resume(_ context.Context, s *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s != nil {
		r.Resumed = append(r.Resumed, s.ID)
	}
	return r.Err
}

// CommandLine implements Launcher.
func (r *Recorder) CommandLine(s *models.Session) string {
	return "resume " + s.ID
}
