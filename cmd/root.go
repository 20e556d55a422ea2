package cmd

import (
	"context"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/ccsessions/cli"
	"github.com/grovetools/ccsessions/errors"
	"github.com/grovetools/ccsessions/logging"
	"github.com/grovetools/ccsessions/pkg/demo"
	"github.com/grovetools/ccsessions/pkg/models"
	"github.com/grovetools/ccsessions/tui"
	"github.com/grovetools/ccsessions/tui/browser"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// isTerminal reports whether stdin and stdout are both terminals.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// NewRootCmd creates the ccsessions command tree.
func NewRootCmd() *cobra.Command {
	cmd := cli.NewStandardCommand(
		"ccsessions",
		"Browse, label and resume Claude Code sessions",
	)
	cmd.Long = `Lists the sessions recorded under ~/.claude/projects with their repository,
title, summary, branch and labels. Sessions can be searched, sorted, grouped by
label, renamed and labeled. Enter resumes the selected session.

Examples:
  # Browse sessions active in the last 48 hours
  ccsessions

  # Start with every session
  ccsessions --all

  # Try the browser on built-in data
  ccsessions --demo-labels`

	flags := cmd.PersistentFlags()
	flags.String("projects-dir", "", "Directory holding one folder of session logs per project")
	flags.Bool("all", false, "Load every session instead of the last 48 hours")
	flags.Bool("demo", false, "Use built-in demo sessions instead of real logs")
	for _, v := range demo.Variants() {
		if v != demo.VariantDefault {
			flags.Bool("demo-"+v, false, "Use the "+v+" demo fixture")
		}
	}

	cmd.RunE = runBrowse

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newPathsCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(cli.NewVersionCommand("ccsessions"))

	cli.ApplyStyledHelpRecursive(cmd)
	return cmd
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	if !isTerminal() {
		return errors.TerminalUnavailable("stdin and stdout must be a terminal")
	}

	env, err := newEnvironment(cmd, time.Now)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)

	tui.InitializeTUI()
	model := browser.New(browser.Deps{
		Loader:  env.loader,
		Labels:  env.labels,
		Renamer: env.renamer,
		Now:     time.Now,
		Context: ctx,
	}, browser.Options{
		Window: env.window,
		Sort:   env.sort,
		Keys:   env.keys,
	})

	final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeTerminalUnavailable, "failed to run the session browser")
	}

	m, ok := final.(*browser.Model)
	if !ok || m.Result() == nil {
		env.log.Debug("Browser closed without a selection")
		return nil
	}
	return resumeSession(ctx, env, m.Result())
}

// resumeSession shows the command line and hands the terminal over to it.
func resumeSession(ctx context.Context, env *environment, s *models.Session) error {
	pretty := logging.NewPrettyLogger()
	pretty.Info("Resuming " + s.DisplayTitle())
	pretty.Command(env.launcher.CommandLine(s))

	if env.demo != "" {
		pretty.Warn("Demo mode: not launching")
	}
	if err := env.launcher.Resume(ctx, s); err != nil {
		env.log.WithError(err).WithField("session", s.ID).Error("Resume failed")
		return err
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
