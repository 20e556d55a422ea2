package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/grovetools/ccsessions/errors"
	"github.com/grovetools/ccsessions/logging"
	"github.com/grovetools/ccsessions/pkg/index"
	"github.com/grovetools/ccsessions/pkg/labels"
	"github.com/grovetools/ccsessions/pkg/models"
	"github.com/grovetools/ccsessions/tui/theme"
	"github.com/spf13/cobra"
)

// listNow is the clock used by list; replaced in tests.
var listNow = time.Now

func newListCmd() *cobra.Command {
	var (
		jsonOutput bool
		query      string
		sortBy     string
		grouped    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print sessions without starting the browser",
		Long: `Loads sessions the same way the browser does and prints them as a table,
or as JSON with --json.

Examples:
  ccsessions list --all --sort messages
  ccsessions list --query auth --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment(cmd, listNow)
			if err != nil {
				return err
			}

			params := index.Params{Query: query, Sort: env.sort, Grouped: grouped}
			if sortBy != "" {
				key, ok := index.ParseSortKey(sortBy)
				if !ok {
					return errors.InvalidInput(fmt.Sprintf("unknown sort %q: use recency or messages", sortBy))
				}
				params.Sort = key
			}

			res := env.loader.Load(commandContext(cmd), env.window)
			pretty := logging.NewPrettyLogger().WithWriter(cmd.ErrOrStderr())
			for _, note := range res.Notes {
				pretty.Warn(note)
			}
			tags, err := env.labels.Load()
			if err != nil {
				pretty.Warn(err.Error())
			}
			labels.Merge(res.Sessions, tags)

			view := index.Build(res.Sessions, params)
			if jsonOutput {
				data, err := json.MarshalIndent(view.Sessions, "", "  ")
				if err != nil {
					return errors.Wrap(err, errors.ErrCodeInternal, "failed to encode sessions")
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			if view.Len() == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sessions found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderSessionTable(view.Sessions, listNow()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output sessions as JSON")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Only show sessions matching this text")
	cmd.Flags().StringVar(&sortBy, "sort", "", "Sort order: recency or messages (default from config)")
	cmd.Flags().BoolVarP(&grouped, "group", "g", false, "Group sessions by first label")
	return cmd
}

func renderSessionTable(ss []*models.Session, now time.Time) string {
	t := theme.DefaultTheme
	rows := make([][]string, 0, len(ss))
	for _, s := range ss {
		rows = append(rows, []string{
			s.ShortID(),
			s.RepoName,
			s.DisplayTitle(),
			strconv.Itoa(s.MessageCount),
			s.LastActiveAt.In(now.Location()).Format("2006-01-02 15:04"),
			strings.Join(s.Labels, ", "),
		})
	}

	return ltable.New().
		Border(lipgloss.HiddenBorder()).
		Headers("ID", "REPO", "TITLE", "MSGS", "LAST ACTIVE", "LABELS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == ltable.HeaderRow:
				return style.Inherit(t.Muted).Bold(true)
			case col == 1:
				return style.Inherit(t.Repo)
			case col == 5:
				return style.Inherit(t.Accent)
			}
			return style
		}).
		String()
}
