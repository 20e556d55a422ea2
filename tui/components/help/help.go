package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/grovetools/ccsessions/tui/theme"
)

// KeyMap is implemented by every keymap that can describe itself.
type KeyMap interface {
	ShortHelp() []key.Binding
	FullHelp() [][]key.Binding
}

// Model is an embeddable help overlay: a one-line hint when collapsed and a
// centered key table when expanded.
type Model struct {
	Keys    KeyMap
	ShowAll bool
	Width   int
	Height  int
	Theme   *theme.Theme
	Title   string
}

// New creates a collapsed help model.
func New(keys KeyMap) Model {
	return Model{
		Keys:  keys,
		Theme: theme.DefaultTheme,
		Title: "Keys",
	}
}

// Toggle switches between the short and full views.
func (m *Model) Toggle() {
	m.ShowAll = !m.ShowAll
}

// SetSize records the terminal size used to center the full view.
func (m *Model) SetSize(width, height int) {
	m.Width = width
	m.Height = height
}

// Update closes the full view on ?, q or esc. Other keys are swallowed while
// it is open.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if m.ShowAll {
			switch msg.String() {
			case "?", "q", "esc":
				m.ShowAll = false
			}
		}
	}
	return m, nil
}

// View renders the current help view.
func (m Model) View() string {
	if m.Theme == nil {
		m.Theme = theme.DefaultTheme
	}
	if m.Keys == nil {
		return ""
	}
	if !m.ShowAll {
		return m.viewShort(m.Keys.ShortHelp())
	}

	var columns []string
	for _, group := range m.Keys.FullHelp() {
		if block := m.renderGroup(group); block != "" {
			columns = append(columns, block)
		}
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, interleave(columns, "    ")...)
	content := m.Theme.Box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.Theme.Title.Render(m.Title),
			"",
			body,
			"",
			m.Theme.Muted.Render("? / esc to close"),
		),
	)
	if m.Width == 0 || m.Height == 0 {
		return content
	}
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) viewShort(group []key.Binding) string {
	var pairs []string
	for _, binding := range group {
		if !binding.Enabled() {
			continue
		}
		h := binding.Help()
		if h.Key == "" || h.Desc == "" {
			continue
		}
		pairs = append(pairs, m.Theme.Highlight.Render(h.Key)+" "+m.Theme.Muted.Render(h.Desc))
	}
	return strings.Join(pairs, m.Theme.Muted.Render(" • "))
}

func (m Model) renderGroup(group []key.Binding) string {
	var rows [][]string
	for _, binding := range group {
		if !binding.Enabled() {
			continue
		}
		h := binding.Help()
		if h.Key == "" {
			continue
		}
		rows = append(rows, []string{h.Key, h.Desc})
	}
	if len(rows) == 0 {
		return ""
	}

	t := ltable.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return m.Theme.Highlight.PaddingRight(2)
			}
			return m.Theme.Muted
		})
	return t.String()
}

func interleave(items []string, sep string) []string {
	out := make([]string, 0, len(items)*2)
	for i, item := range items {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, item)
	}
	return out
}
