package browser

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/ccsessions/errors"
	"github.com/grovetools/ccsessions/pkg/labels"
	"github.com/grovetools/ccsessions/pkg/models"
	"github.com/grovetools/ccsessions/pkg/sessions"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type fakeLoader struct {
	byWindow map[sessions.Window][]*models.Session
	notes    []string
	calls    []sessions.Window
}

func (f *fakeLoader) Load(_ context.Context, w sessions.Window) sessions.LoadResult {
	f.calls = append(f.calls, w)
	return sessions.LoadResult{Sessions: f.byWindow[w], Notes: f.notes}
}

type fakeLabels struct {
	tags    labels.Labels
	loadErr error
	setErr  error
	sets    int
}

func (f *fakeLabels) Load() (labels.Labels, error) {
	if f.loadErr != nil {
		return labels.Labels{}, f.loadErr
	}
	out := labels.Labels{}
	for id, t := range f.tags {
		out[id] = append([]string(nil), t...)
	}
	return out, nil
}

func (f *fakeLabels) Set(id string, tags []string) error {
	f.sets++
	if f.setErr != nil {
		return f.setErr
	}
	if len(tags) == 0 {
		delete(f.tags, id)
		return nil
	}
	f.tags[id] = append([]string(nil), tags...)
	return nil
}

func (f *fakeLabels) Used() []string {
	return []string{"auth", "bug", "infra"}
}

type fakeRenamer struct {
	err    error
	titles map[string]string
}

func (f *fakeRenamer) Rename(_, id, title string) error {
	if f.err != nil {
		return f.err
	}
	if title == "" {
		return errors.InvalidInput("title must not be empty")
	}
	f.titles[id] = title
	return nil
}

// makeSessions returns n sessions where sess-00 is the most recent and
// sess-<n-1> has the most messages.
func makeSessions(n int) []*models.Session {
	out := make([]*models.Session, n)
	for i := range out {
		repo := "api"
		if i%2 == 1 {
			repo = "web"
		}
		out[i] = &models.Session{
			ID:           fmt.Sprintf("sess-%02d", i),
			Path:         fmt.Sprintf("/logs/sess-%02d.jsonl", i),
			RepoName:     repo,
			LastActiveAt: testNow.Add(-time.Duration(i) * time.Hour),
			MessageCount: i + 1,
			FirstPrompt:  fmt.Sprintf("task number %d", i),
			Labels:       []string{},
		}
	}
	return out
}

type fixture struct {
	loader  *fakeLoader
	labels  *fakeLabels
	renamer *fakeRenamer
	model   *Model
}

func newFixture(t *testing.T, recent, all []*models.Session) *fixture {
	t.Helper()
	f := &fixture{
		loader: &fakeLoader{byWindow: map[sessions.Window][]*models.Session{
			sessions.WindowRecent: recent,
			sessions.WindowAll:    all,
		}},
		labels:  &fakeLabels{tags: labels.Labels{}},
		renamer: &fakeRenamer{titles: map[string]string{}},
	}
	f.model = New(Deps{
		Loader:  f.loader,
		Labels:  f.labels,
		Renamer: f.renamer,
		Now:     func() time.Time { return testNow },
		Context: t.Context(),
	}, Options{Window: sessions.WindowRecent})
	return f
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// press sends each key and returns the command of the last one.
func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(keyMsg(k))
	}
	return cmd
}

// typeText sends s one rune at a time.
func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func visibleIDs(m *Model) []string {
	var out []string
	for _, s := range m.Visible() {
		out = append(out, s.ID)
	}
	return out
}
