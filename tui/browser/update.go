package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/ccsessions/errors"
	"github.com/grovetools/ccsessions/pkg/index"
	"github.com/grovetools/ccsessions/pkg/labels"
	"github.com/sirupsen/logrus"
)

const suggestionLimit = 5

// handlers dispatches key presses by mode.
var handlers = map[Mode]func(*Model, tea.KeyMsg) tea.Cmd{
	ModeBrowse:    (*Model).updateBrowse,
	ModeSearch:    (*Model).updateSearch,
	ModeRename:    (*Model).updateRename,
	ModeLabelEdit: (*Model).updateLabelEdit,
}

// Update handles messages and updates the model accordingly.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.SetSize(m.width, m.height)
		m.input.Width = max(m.width-20, 20)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.help.ShowAll {
			m.help, _ = m.help.Update(msg)
			return m, nil
		}
		if h, ok := handlers[m.state.Mode]; ok {
			return m, h(m, msg)
		}

	default:
		if m.state.Mode != ModeBrowse {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *Model) updateBrowse(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.Toggle()

	case key.Matches(msg, m.keys.Confirm):
		if s := m.Selected(); s != nil {
			m.result = s
			m.log.WithField("session", s.ID).Info("Resume requested")
			return tea.Quit
		}

	case key.Matches(msg, m.keys.Search):
		return m.enterInput(ModeSearch, "/ ", m.state.Params.Query)

	case key.Matches(msg, m.keys.Rename):
		s := m.Selected()
		if s == nil {
			m.state.Status = "No session selected"
			return nil
		}
		m.target = s
		title := ""
		if s.HasTitle() {
			title = *s.Title
		}
		return m.enterInput(ModeRename, "Name: ", title)

	case key.Matches(msg, m.keys.LabelEdit):
		s := m.Selected()
		if s == nil {
			m.state.Status = "No session selected"
			return nil
		}
		m.target = s
		m.suggestions = labels.Suggest(m.deps.Labels.Used(), s.Labels, suggestionLimit)
		return m.enterInput(ModeLabelEdit, "Tags: ", labels.Format(s.Labels))

	case key.Matches(msg, m.keys.Up):
		if m.state.Cursor > 0 {
			m.state.Cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.state.Cursor < len(m.view.Page(m.state.Page))-1 {
			m.state.Cursor++
		}

	case key.Matches(msg, m.keys.Left):
		if m.state.Page > 0 {
			m.state.Page--
			m.state.Cursor = 0
		}

	case key.Matches(msg, m.keys.Right):
		if m.state.Page < m.view.PageCount()-1 {
			m.state.Page++
			m.state.Cursor = 0
		}

	case key.Matches(msg, m.keys.SortRecency):
		m.setSort(index.SortRecency, "Sorted by recency")

	case key.Matches(msg, m.keys.SortMessages):
		m.setSort(index.SortMessages, "Sorted by message count")

	case key.Matches(msg, m.keys.Group):
		m.state.Params.Grouped = !m.state.Params.Grouped
		m.resetPosition()
		m.rebuild("")
		if m.state.Params.Grouped {
			m.state.Status = "Grouped by label"
		} else {
			m.state.Status = "Grouping off"
		}

	case key.Matches(msg, m.keys.ToggleWindow):
		m.state.Window = m.state.Window.Toggle()
		m.reload()

	case key.Matches(msg, m.keys.Refresh):
		m.reload()
	}
	return nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.leaveInput()
		m.state.Params.Query = ""
		m.resetPosition()
		m.rebuild("")
		m.state.Status = ""
		return nil

	case key.Matches(msg, m.keys.Confirm):
		m.leaveInput()
		if q := m.state.Params.Query; q != "" && m.view.Len() == 0 {
			m.state.Status = fmt.Sprintf("No matches for %q", q)
		}
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.state.Params.Query = m.input.Value()
	m.resetPosition()
	m.rebuild("")
	return cmd
}

func (m *Model) updateRename(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.leaveInput()
		return nil
	case key.Matches(msg, m.keys.Confirm):
		m.commitRename()
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) updateLabelEdit(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.leaveInput()
		return nil
	case key.Matches(msg, m.keys.Confirm):
		m.commitLabels()
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) commitRename() {
	s := m.target
	title := strings.TrimSpace(m.input.Value())
	if err := m.deps.Renamer.Rename(s.Path, s.ID, title); err != nil {
		m.log.WithError(err).WithField("session", s.ID).Warn("Rename failed")
		m.state.InlineErr = errorText(err)
		return
	}
	s.SetTitle(title)
	m.leaveInput()
	m.rebuild(s.ID)
	m.state.Status = fmt.Sprintf("Renamed to %q", title)
}

func (m *Model) commitLabels() {
	s := m.target
	tags := labels.ParseInput(m.input.Value())
	if err := m.deps.Labels.Set(s.ID, tags); err != nil {
		m.log.WithError(err).WithField("session", s.ID).Warn("Saving labels failed")
		m.state.InlineErr = errorText(err)
		return
	}
	s.SetLabels(tags)
	m.leaveInput()
	m.rebuild(s.ID)
	if len(tags) == 0 {
		m.state.Status = "Tags cleared"
	} else {
		m.state.Status = "Tags: " + labels.Format(tags)
	}
}

func (m *Model) enterInput(mode Mode, prompt, value string) tea.Cmd {
	m.state.Mode = mode
	m.state.InlineErr = ""
	m.input.Prompt = prompt
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) leaveInput() {
	m.state.Mode = ModeBrowse
	m.state.InlineErr = ""
	m.input.Blur()
	m.input.Reset()
	m.target = nil
	m.suggestions = nil
}

func (m *Model) setSort(k index.SortKey, status string) {
	m.state.Params.Sort = k
	m.resetPosition()
	m.rebuild("")
	m.state.Status = status
}

func (m *Model) resetPosition() {
	m.state.Page = 0
	m.state.Cursor = 0
}

// reload re-reads sessions and labels for the current window, keeping the
// selected session selected when it is still visible.
func (m *Model) reload() {
	keep := m.selectedID()
	res := m.deps.Loader.Load(m.deps.Context, m.state.Window)

	tags, err := m.deps.Labels.Load()
	labels.Merge(res.Sessions, tags)

	m.all = res.Sessions
	m.notes = res.Notes
	m.rebuild(keep)

	m.log.WithFields(logrus.Fields{
		"window":   m.state.Window.String(),
		"sessions": len(m.all),
		"notes":    len(m.notes),
	}).Debug("Reloaded sessions")

	status := fmt.Sprintf("Loaded %d sessions (%s)", len(m.all), windowLabel(m.state.Window))
	if len(res.Notes) > 0 {
		status += " · " + res.Notes[0]
		if len(res.Notes) > 1 {
			status += fmt.Sprintf(" (+%d more)", len(res.Notes)-1)
		}
	}
	if err != nil {
		status += " · " + errorText(err)
	}
	m.state.Status = status
}

// rebuild recomputes the view. When keepID is visible the selection moves
// to it; otherwise page and cursor are clamped.
func (m *Model) rebuild(keepID string) {
	m.view = index.Build(m.all, m.state.Params)

	if keepID != "" {
		if i := m.view.IndexOf(keepID); i >= 0 {
			m.state.Page = i / index.PageSize
			m.state.Cursor = i % index.PageSize
			return
		}
	}

	if last := m.view.PageCount() - 1; m.state.Page > last {
		m.state.Page = last
	}
	if m.state.Page < 0 {
		m.state.Page = 0
	}
	n := len(m.view.Page(m.state.Page))
	if m.state.Cursor >= n {
		m.state.Cursor = n - 1
	}
	if m.state.Cursor < 0 {
		m.state.Cursor = 0
	}
}

func errorText(err error) string {
	if e, ok := err.(*errors.Error); ok {
		return e.Message
	}
	return err.Error()
}
