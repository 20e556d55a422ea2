package sessions

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/grovetools/ccsessions/logging"
	"github.com/grovetools/ccsessions/pkg/models"
	"github.com/moby/patternmatcher"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Window selects which logs are ingested.
type Window int

const (
	// WindowRecent loads sessions active in the last RecentWindow.
	WindowRecent Window = iota
	// WindowAll loads every session.
	WindowAll
)

// RecentWindow is the lookback of WindowRecent.
const RecentWindow = 48 * time.Hour

const defaultWorkers = 8

func (w Window) String() string {
	if w == WindowAll {
		return "all"
	}
	return "48h"
}

// Toggle switches between the two windows.
func (w Window) Toggle() Window {
	if w == WindowAll {
		return WindowRecent
	}
	return WindowAll
}

// ParseWindow accepts the config spellings "48h" and "all".
func ParseWindow(s string) (Window, error) {
	switch s {
	case "", "48h", "recent":
		return WindowRecent, nil
	case "all":
		return WindowAll, nil
	}
	return WindowRecent, fmt.Errorf("unknown window %q", s)
}

// LoadResult is the outcome of one ingestion pass.
type LoadResult struct {
	Sessions []*models.Session
	// Notes are non-fatal problems worth showing in the status line.
	Notes []string
}

type loadOptions struct {
	now     func() time.Time
	workers int
	exclude []string
	logger  *logrus.Entry
}

// LoadOption configures Load.
type LoadOption func(*loadOptions)

// WithNow sets the clock used for the recent-window cutoff.
func WithNow(now func() time.Time) LoadOption {
	return func(o *loadOptions) { o.now = now }
}

// WithWorkers bounds how many logs are parsed at once.
func WithWorkers(n int) LoadOption {
	return func(o *loadOptions) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithExclude skips project directories matching any of the patterns.
func WithExclude(patterns []string) LoadOption {
	return func(o *loadOptions) { o.exclude = patterns }
}

// WithLogger overrides the component logger.
func WithLogger(l *logrus.Entry) LoadOption {
	return func(o *loadOptions) { o.logger = l }
}

// Load scans root and parses every session log in the window. It never fails
// as a whole: unreadable files and directories are skipped and reported in
// Notes, malformed lines are skipped silently. Sessions are sorted by id.
func Load(ctx context.Context, root string, window Window, opts ...LoadOption) LoadResult {
	o := loadOptions{now: time.Now, workers: defaultWorkers}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger
	if log == nil {
		log = logging.NewLogger("sessions")
	}

	var (
		notes   []string
		exclude *patternmatcher.PatternMatcher
	)
	if len(o.exclude) > 0 {
		pm, err := patternmatcher.New(o.exclude)
		if err != nil {
			notes = append(notes, fmt.Sprintf("ignoring exclude patterns: %v", err))
		} else {
			exclude = pm
		}
	}

	var cutoff time.Time
	if window == WindowRecent {
		cutoff = o.now().Add(-RecentWindow)
	}

	candidates, discoverNotes := discover(root, cutoff, exclude)
	notes = append(notes, discoverNotes...)

	parsed := make([]*models.Session, len(candidates))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, c := range candidates {
		i, c := i, c
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s, skipped, err := parseFile(c.path, c.info)
			if skipped > 0 {
				log.WithField("path", c.path).WithField("lines", skipped).Debug("Skipped malformed log lines")
			}
			if err != nil {
				log.WithError(err).WithField("path", c.path).Warn("Skipping unreadable session log")
				mu.Lock()
				notes = append(notes, fmt.Sprintf("skipped %s: %v", c.path, err))
				mu.Unlock()
				return nil
			}
			parsed[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		notes = append(notes, fmt.Sprintf("load interrupted: %v", err))
	}

	sessions := dedupe(parsed)
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].ID < sessions[j].ID })
	sort.Strings(notes)

	log.WithFields(logrus.Fields{
		"root":     root,
		"window":   window.String(),
		"files":    len(candidates),
		"sessions": len(sessions),
	}).Debug("Loaded sessions")

	return LoadResult{Sessions: sessions, Notes: notes}
}

// dedupe drops nil entries and keeps the most recently active session when
// the same id appears in more than one project directory.
func dedupe(parsed []*models.Session) []*models.Session {
	byID := make(map[string]*models.Session, len(parsed))
	for _, s := range parsed {
		if s == nil {
			continue
		}
		if prev, ok := byID[s.ID]; ok && !s.LastActiveAt.After(prev.LastActiveAt) {
			continue
		}
		byID[s.ID] = s
	}
	out := make([]*models.Session, 0, len(byID))
	for _, s := range byID {
		out = append(out, s)
	}
	return out
}

// DirLoader loads sessions from a fixed projects directory.
type DirLoader struct {
	Root    string
	Options []LoadOption
}

// Load implements the browser's Loader.
func (l *DirLoader) Load(ctx context.Context, window Window) LoadResult {
	return Load(ctx, l.Root, window, l.Options...)
}
