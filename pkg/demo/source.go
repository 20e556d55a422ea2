package demo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/grovetools/ccsessions/errors"
	"github.com/grovetools/ccsessions/pkg/labels"
	"github.com/grovetools/ccsessions/pkg/models"
	"github.com/grovetools/ccsessions/pkg/sessions"
)

// Source serves a fixture as if it were real logs. Renames and label edits
// are kept in memory so reloads reflect them.
type Source struct {
	mu       sync.Mutex
	now      func() time.Time
	sessions []*models.Session
	labels   labels.Labels
}

// NewSource builds a Source for variant.
func NewSource(variant string, now func() time.Time) (*Source, error) {
	if now == nil {
		now = time.Now
	}
	ss, tags, err := Build(variant, now())
	if err != nil {
		return nil, errors.InvalidInput(err.Error())
	}
	return &Source{now: now, sessions: ss, labels: tags}, nil
}

// Load returns copies of the fixture sessions inside window.
func (s *Source) Load(_ context.Context, window sessions.Window) sessions.LoadResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-sessions.RecentWindow)
	var out []*models.Session
	for _, sess := range s.sessions {
		if window == sessions.WindowRecent && sess.ModTime.Before(cutoff) {
			continue
		}
		cp := *sess
		cp.Labels = []string{}
		out = append(out, &cp)
	}
	return sessions.LoadResult{Sessions: out}
}

// Rename records a title for id.
func (s *Source) Rename(_, id, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sess := range s.sessions {
		if sess.ID == id {
			sess.SetTitle(title)
			return nil
		}
	}
	return errors.SessionMissing(id)
}

// LabelStore returns an in-memory label store seeded with the fixture labels.
func (s *Source) LabelStore() *MemoryLabels {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := &MemoryLabels{labels: labels.Labels{}}
	for id, tags := range s.labels {
		m.labels[id] = append([]string(nil), tags...)
	}
	return m
}

// MemoryLabels is a label store that never touches disk.
type MemoryLabels struct {
	mu     sync.Mutex
	labels labels.Labels
}

// Load returns a copy of the labels.
func (m *MemoryLabels) Load() (labels.Labels, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := labels.Labels{}
	for id, tags := range m.labels {
		out[id] = append([]string(nil), tags...)
	}
	return out, nil
}

// Set replaces the tags of id; empty tags delete the entry.
func (m *MemoryLabels) Set(id string, tags []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(tags) == 0 {
		delete(m.labels, id)
		return nil
	}
	m.labels[id] = append([]string(nil), tags...)
	return nil
}

// Used returns every tag in use, sorted and unique.
func (m *MemoryLabels) Used() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := map[string]bool{}
	var out []string
	for _, tags := range m.labels {
		for _, t := range tags {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	sort.Strings(out)
	return out
}
