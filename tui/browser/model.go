package browser

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/ccsessions/logging"
	"github.com/grovetools/ccsessions/pkg/index"
	"github.com/grovetools/ccsessions/pkg/labels"
	"github.com/grovetools/ccsessions/pkg/models"
	"github.com/grovetools/ccsessions/pkg/sessions"
	"github.com/grovetools/ccsessions/tui/components/help"
	"github.com/grovetools/ccsessions/tui/keymap"
	"github.com/sirupsen/logrus"
)

// Mode is the interaction mode of the browser.
type Mode int

const (
	ModeBrowse Mode = iota
	ModeSearch
	ModeRename
	ModeLabelEdit
)

func (m Mode) String() string {
	switch m {
	case ModeSearch:
		return "search"
	case ModeRename:
		return "rename"
	case ModeLabelEdit:
		return "label"
	default:
		return "browse"
	}
}

// State is everything the user controls. Page and Cursor always address an
// existing row of the current view, or are 0 when the view is empty.
type State struct {
	Mode   Mode
	Page   int
	Cursor int
	Params index.Params
	Window sessions.Window

	// Status is the one-line message shown under the list.
	Status string
	// InlineErr is a persistence failure shown next to the edit prompt.
	InlineErr string
}

// Loader reads sessions for a window.
type Loader interface {
	Load(ctx context.Context, window sessions.Window) sessions.LoadResult
}

// LabelStore persists labels.
type LabelStore interface {
	Load() (labels.Labels, error)
	Set(id string, tags []string) error
	Used() []string
}

// Renamer persists custom titles.
type Renamer interface {
	Rename(path, id, title string) error
}

// Deps are the collaborators of the browser.
type Deps struct {
	Loader  Loader
	Labels  LabelStore
	Renamer Renamer
	Now     func() time.Time
	Context context.Context
}

// Options are the initial view settings.
type Options struct {
	Window  sessions.Window
	Sort    index.SortKey
	Grouped bool
	Keys    keymap.Overrides
}

// Model is the session browser.
type Model struct {
	state State
	deps  Deps
	keys  KeyMap
	help  help.Model
	input textinput.Model

	all         []*models.Session
	view        index.View
	notes       []string
	suggestions []string
	target      *models.Session

	width  int
	height int

	result *models.Session
	log    *logrus.Entry
}

// New creates the browser and performs the initial load.
func New(deps Deps, opts Options) *Model {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Context == nil {
		deps.Context = context.Background()
	}

	keys := DefaultKeyMap(opts.Keys)
	input := textinput.New()
	input.CharLimit = 200

	m := &Model{
		state: State{
			Window: opts.Window,
			Params: index.Params{Sort: opts.Sort, Grouped: opts.Grouped},
		},
		deps:  deps,
		keys:  keys,
		help:  help.New(keys),
		input: input,
		log:   logging.NewLogger("browser"),
	}
	m.reload()
	return m
}

// Init is the first command that will be executed.
func (m *Model) Init() tea.Cmd {
	return nil
}

// State returns a copy of the current state.
func (m *Model) State() State {
	return m.state
}

// Visible returns the sessions of the current view in display order.
func (m *Model) Visible() []*models.Session {
	return m.view.Sessions
}

// Selected returns the session under the cursor, or nil.
func (m *Model) Selected() *models.Session {
	return m.view.At(m.state.Page, m.state.Cursor)
}

// Result returns the session chosen for resume, or nil when the user quit.
func (m *Model) Result() *models.Session {
	return m.result
}

func (m *Model) selectedID() string {
	if s := m.Selected(); s != nil {
		return s.ID
	}
	return ""
}
