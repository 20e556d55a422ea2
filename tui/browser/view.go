package browser

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/ccsessions/pkg/index"
	"github.com/grovetools/ccsessions/pkg/models"
	"github.com/grovetools/ccsessions/pkg/sessions"
	"github.com/grovetools/ccsessions/tui/theme"
	"github.com/mattn/go-runewidth"
)

const (
	defaultWidth = 95
	minWidth     = 60
	maxWidth     = 140
	repoWidth    = 16
	// msgs(4) + " │ " + age(8) + " │ " + id(8)
	rightWidth = 4 + 3 + 8 + 3 + 8
	// cursor(1) + space + recency(1) + space + repo + space
	leftWidth = 4 + repoWidth + 1
)

// recencyBounds are the upper bounds of the recency levels; anything older
// falls into the last level.
var recencyBounds = []time.Duration{
	time.Hour,
	6 * time.Hour,
	12 * time.Hour,
	24 * time.Hour,
}

var legendLabels = []string{"<1h", "<6h", "<12h", "<24h", "old"}

// View renders the browser.
func (m *Model) View() string {
	if m.help.ShowAll {
		return m.help.View()
	}

	t := theme.DefaultTheme
	w := m.layoutWidth()
	now := m.deps.Now()

	lines := []string{
		m.viewHeader(t, w),
		m.viewHints(t, w),
		m.rule(t, w),
		m.viewColumns(t, w),
		m.rule(t, w),
	}
	lines = append(lines, m.viewRows(t, w, now)...)
	lines = append(lines, m.rule(t, w))

	if m.state.Status != "" {
		lines = append(lines, " "+t.Success.Render(theme.Icons.Message+" ")+t.Normal.Render(truncate(m.state.Status, w-4)))
	}
	lines = append(lines, m.viewFooter(t, w))

	if m.state.Mode != ModeBrowse {
		lines = append(lines, "")
		lines = append(lines, m.viewPrompt(t, w)...)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) layoutWidth() int {
	if m.width == 0 {
		return defaultWidth
	}
	w := m.width - 2
	if w < minWidth {
		w = minWidth
	}
	if w > maxWidth {
		w = maxWidth
	}
	return w
}

func (m *Model) viewHeader(t *theme.Theme, w int) string {
	title := t.Title.Render("CLAUDE SESSIONS")
	meta := t.Muted.Render(fmt.Sprintf("%s · %d sessions · sorted by %s",
		windowLabel(m.state.Window), len(m.all), m.state.Params.Sort))
	if m.state.Params.Grouped {
		meta += t.Muted.Render(" · grouped")
	}
	if q := m.state.Params.Query; q != "" {
		meta += t.Highlight.Render(fmt.Sprintf(" · /%s", q))
	}
	return t.Header.Width(w - 2).Render(title + "  " + meta)
}

func (m *Model) viewHints(t *theme.Theme, w int) string {
	var parts []string
	for _, b := range m.keys.ShortHelp() {
		if !b.Enabled() {
			continue
		}
		parts = append(parts, hint(t, b))
	}
	line := " " + strings.Join(parts, " ")
	if lipgloss.Width(line) > w {
		// Drop hints from the end until the line fits.
		for len(parts) > 1 && lipgloss.Width(line) > w {
			parts = parts[:len(parts)-1]
			line = " " + strings.Join(parts, " ")
		}
	}
	return line
}

func hint(t *theme.Theme, b key.Binding) string {
	h := b.Help()
	return t.KeyBadge.Render(h.Key) + " " + t.KeyLabel.Render(h.Desc)
}

func (m *Model) rule(t *theme.Theme, w int) string {
	return " " + t.Rule.Render(strings.Repeat(theme.Icons.RuleChar, w-1))
}

func (m *Model) viewColumns(t *theme.Theme, w int) string {
	titleW := titleWidth(w)
	sep := " " + theme.Icons.Separator + " "
	head := "    " + pad("repo", repoWidth) + " " + pad("session", titleW) + " " +
		fmt.Sprintf("%4s", "msgs") + sep + fmt.Sprintf("%8s", "active") + sep + pad("id", 8)
	return t.Muted.Render(head)
}

func (m *Model) viewRows(t *theme.Theme, w int, now time.Time) []string {
	page := m.view.Page(m.state.Page)
	if len(page) == 0 {
		msg := "No sessions in the last 48h. Press a to show all."
		switch {
		case m.state.Params.Query != "":
			msg = fmt.Sprintf("No sessions match %q. Press / then esc to clear.", m.state.Params.Query)
		case m.state.Window == sessions.WindowAll:
			msg = "No sessions found."
		}
		return []string{"", "  " + t.Muted.Render(msg), ""}
	}

	var lines []string
	start := m.state.Page * index.PageSize
	var prev *index.Group
	for i, s := range page {
		if m.state.Params.Grouped {
			if g := m.view.GroupOf(start + i); g != nil && g != prev {
				lines = append(lines, groupHeader(t, w, g))
				prev = g
			}
		}
		selected := i == m.state.Cursor
		lines = append(lines, m.viewRow(t, w, now, s, selected))
		if selected {
			lines = append(lines, m.viewDetails(t, w, s)...)
		}
	}
	return lines
}

func groupHeader(t *theme.Theme, w int, g *index.Group) string {
	name := g.Label
	style := t.GroupHeader
	if name == "" {
		name = "(unlabeled)"
		style = t.Muted
	}
	text := fmt.Sprintf(" %s (%d) ", name, len(g.Sessions))
	rest := w - 4 - runewidth.StringWidth(text)
	if rest < 0 {
		rest = 0
	}
	return "  " + t.Rule.Render(strings.Repeat(theme.Icons.RuleChar, 2)) +
		style.Render(text) +
		t.Rule.Render(strings.Repeat(theme.Icons.RuleChar, rest))
}

func (m *Model) viewRow(t *theme.Theme, w int, now time.Time, s *models.Session, selected bool) string {
	titleW := titleWidth(w)
	level := recencyLevel(now.Sub(activity(s)))
	block := t.Recency[level].Render(theme.Icons.Recency)
	repo := t.Repo.Render(pad(s.RepoName, repoWidth))
	sep := t.Rule.Render(" " + theme.Icons.Separator + " ")
	msgs := fmt.Sprintf("%4d", s.MessageCount)
	age := fmt.Sprintf("%8s", formatAge(now, activity(s)))

	name := pad(s.DisplayTitle(), titleW)
	if selected {
		return t.SelectedBar.Render(theme.Icons.Cursor) + " " + block + " " + repo + " " +
			t.Title.Render(name) + " " + t.Bold.Render(msgs) + sep + t.Bold.Render(age) + sep +
			t.Accent.Render(s.ShortID())
	}
	return "  " + block + " " + repo + " " + t.Muted.Render(name) + " " +
		t.Muted.Render(msgs) + sep + t.Muted.Render(age) + sep + t.Rule.Render(s.ShortID())
}

func (m *Model) viewDetails(t *theme.Theme, w int, s *models.Session) []string {
	bar := t.SelectedBar.Render(theme.Icons.Separator)
	indent := bar + "     "
	inner := w - 8

	intent := s.Intent()
	if intent == "" {
		intent = "(no summary)"
	}
	lines := []string{
		bar + "  " + t.Rule.Render(theme.Icons.Tree) + " " + t.Intent.Render(truncate(intent, inner)),
	}
	if files := s.FilesTouched(); len(files) > 0 {
		lines = append(lines, indent+t.Files.Render(truncate(strings.Join(files, ", "), inner)))
	}

	var meta []string
	if b := s.BranchName(); b != "" {
		meta = append(meta, t.Branch.Render(theme.Icons.Branch+" "+truncate(b, 30)))
	}
	if len(s.Labels) > 0 {
		meta = append(meta, labelBadges(t, s.Labels, inner-30))
	}
	if len(meta) > 0 {
		lines = append(lines, indent+strings.Join(meta, "  "))
	}
	return append(lines, t.SelectedBar.Render("╵"))
}

func labelBadges(t *theme.Theme, tags []string, width int) string {
	var out []string
	used := 0
	for i, tag := range tags {
		badge := t.LabelStyle(i).Render(tag)
		bw := lipgloss.Width(badge) + 1
		if used+bw > width && len(out) > 0 {
			out = append(out, t.Muted.Render(fmt.Sprintf("+%d", len(tags)-i)))
			break
		}
		out = append(out, badge)
		used += bw
	}
	return strings.Join(out, " ")
}

func (m *Model) viewFooter(t *theme.Theme, w int) string {
	left := t.Muted.Render(fmt.Sprintf("%d sessions", m.view.Len()))
	if m.view.Len() != len(m.all) {
		left += t.Muted.Render(fmt.Sprintf(" of %d", len(m.all)))
	}
	if pc := m.view.PageCount(); pc > 1 {
		left += "  " + t.Accent.Render(fmt.Sprintf("Page %d/%d", m.state.Page+1, pc))
	}

	var legend []string
	for i, label := range legendLabels {
		legend = append(legend, t.Recency[i].Render(theme.Icons.Recency)+t.Muted.Render(label))
	}
	right := strings.Join(legend, " ")

	gap := w - 1 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	return " " + left + strings.Repeat(" ", gap) + right
}

func (m *Model) viewPrompt(t *theme.Theme, w int) []string {
	var lines []string
	switch m.state.Mode {
	case ModeSearch:
		lines = append(lines, " "+t.Muted.Render("Type to filter · ⏎ keep · esc clear"))
	case ModeRename:
		if m.target != nil {
			lines = append(lines, " "+t.Muted.Render("Rename "+m.target.ShortID()+" · ⏎ save · esc cancel"))
		}
	case ModeLabelEdit:
		lines = append(lines, " "+t.Muted.Render("Comma-separated tags, empty clears · ⏎ save · esc cancel"))
		if len(m.suggestions) > 0 {
			lines = append(lines, " "+t.Muted.Render("Used: ")+labelBadges(t, m.suggestions, w-8))
		}
	}
	lines = append(lines, " "+m.input.View())
	if m.state.InlineErr != "" {
		lines = append(lines, " "+t.Error.Render("✗ "+truncate(m.state.InlineErr, w-4)))
	}
	return lines
}

func titleWidth(w int) int {
	tw := w - leftWidth - rightWidth - 2
	if tw < 10 {
		tw = 10
	}
	return tw
}

// activity is the time that drives recency: last activity, else file mtime.
func activity(s *models.Session) time.Time {
	if !s.LastActiveAt.IsZero() {
		return s.LastActiveAt
	}
	return s.ModTime
}

// recencyLevel maps an age to 0 (<1h) through 4 (a day or older).
func recencyLevel(age time.Duration) int {
	for i, bound := range recencyBounds {
		if age < bound {
			return i
		}
	}
	return len(recencyBounds)
}

// formatAge renders elapsed time as "12m ago", "5h ago", "3d ago" within a
// week and as MM/DD beyond that.
func formatAge(now, then time.Time) string {
	d := now.Sub(then)
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return then.Local().Format("01/02")
	}
}

func windowLabel(w sessions.Window) string {
	if w == sessions.WindowAll {
		return "all time"
	}
	return "last 48h"
}

func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return runewidth.Truncate(s, w, theme.Icons.Ellipsis)
}

func pad(s string, w int) string {
	return runewidth.FillRight(truncate(s, w), w)
}
