// Package labels persists user-assigned session labels in a single JSON file
// mapping session id to an ordered list of tags.
package labels

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/grovetools/ccsessions/errors"
	"github.com/grovetools/ccsessions/logging"
	"github.com/grovetools/ccsessions/pkg/models"
	"github.com/sirupsen/logrus"
)

// Labels maps session id to tags in insertion order.
type Labels map[string][]string

// Store reads and writes the label file. Every write replaces the whole file
// atomically.
type Store struct {
	path string

	mu     sync.Mutex
	labels Labels
	// corrupt is set when the file on disk could not be decoded; the first
	// write moves it aside instead of overwriting it.
	corrupt bool
	// unreadable holds the read error of the last Load. Writes are refused
	// while it is set, since the in-memory mapping does not reflect the file.
	unreadable error

	log *logrus.Entry
}

// NewStore returns a store backed by path. Nothing is read until Load.
func NewStore(path string) *Store {
	return &Store{
		path:   path,
		labels: Labels{},
		log:    logging.NewLogger("labels"),
	}
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Load reads the label file. A missing file yields an empty mapping. A file
// that is not a JSON object of string lists yields an empty mapping and a
// LABELS_CORRUPT error. A file that exists but cannot be read yields
// LABELS_UNREADABLE, and Set refuses to write until a later Load succeeds.
func (s *Store) Load() (Labels, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.labels = Labels{}
	s.corrupt = false
	s.unreadable = nil

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Labels{}, nil
		}
		s.unreadable = err
		s.log.WithError(err).WithField("path", s.path).Warn("Label file is unreadable, labels are read-only")
		return Labels{}, errors.LabelsUnreadable(s.path, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return Labels{}, nil
	}

	var raw Labels
	if err := json.Unmarshal(data, &raw); err != nil {
		s.corrupt = true
		s.log.WithError(err).WithField("path", s.path).Warn("Label file is corrupt, starting empty")
		return Labels{}, errors.LabelsCorrupt(s.path, err)
	}

	for id, tags := range raw {
		if clean := normalize(tags); len(clean) > 0 {
			s.labels[id] = clean
		}
	}
	return s.labels.clone(), nil
}

// Set replaces the tags of one session and persists the whole mapping. Empty
// tags remove the session's entry. On failure the in-memory mapping is left
// unchanged.
func (s *Store) Set(id string, tags []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.unreadable != nil {
		return errors.LabelsWrite(s.path, fmt.Errorf("label file could not be read, not overwriting it: %w", s.unreadable))
	}

	next := s.labels.clone()
	if clean := normalize(tags); len(clean) > 0 {
		next[id] = clean
	} else {
		delete(next, id)
	}

	if s.corrupt {
		aside := s.path + ".corrupt"
		if err := os.Rename(s.path, aside); err != nil && !os.IsNotExist(err) {
			return errors.LabelsWrite(s.path, fmt.Errorf("moving corrupt file aside: %w", err))
		}
		s.log.WithField("path", aside).Info("Moved corrupt label file aside")
		s.corrupt = false
	}

	if err := writeAtomic(s.path, next); err != nil {
		return errors.LabelsWrite(s.path, err)
	}
	s.labels = next
	s.log.WithFields(logrus.Fields{"session": id, "tags": len(next[id])}).Debug("Saved labels")
	return nil
}

// All returns a copy of the current mapping.
func (s *Store) All() Labels {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.labels.clone()
}

// Used returns every tag in use, sorted and unique.
func (s *Store) Used() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	var out []string
	for _, tags := range s.labels {
		for _, tag := range tags {
			if !seen[tag] {
				seen[tag] = true
				out = append(out, tag)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Merge sets each session's Labels from the mapping. Sessions without an
// entry get an empty slice.
func Merge(sessions []*models.Session, labels Labels) {
	for _, s := range sessions {
		s.SetLabels(labels[s.ID])
	}
}

// ParseInput splits comma-separated user input into tags: trimmed, empties
// dropped, duplicates removed keeping the first occurrence.
func ParseInput(input string) []string {
	return normalize(strings.Split(input, ","))
}

// Format renders tags the way ParseInput reads them.
func Format(tags []string) string {
	return strings.Join(tags, ", ")
}

// Suggest returns up to limit used tags not already in current.
func Suggest(used, current []string, limit int) []string {
	have := make(map[string]bool, len(current))
	for _, tag := range current {
		have[tag] = true
	}
	var out []string
	for _, tag := range used {
		if len(out) == limit {
			break
		}
		if !have[tag] {
			out = append(out, tag)
		}
	}
	return out
}

func normalize(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

func (l Labels) clone() Labels {
	out := make(Labels, len(l))
	for id, tags := range l {
		out[id] = append([]string(nil), tags...)
	}
	return out
}

func writeAtomic(path string, labels Labels) error {
	data, err := json.MarshalIndent(labels, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling labels: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating label directory: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, ".session-tags-*.json.tmp")
	if err != nil {
		return fmt.Errorf("creating temp label file: %w", err)
	}

	successful := false
	defer func() {
		if !successful {
			os.Remove(tempFile.Name())
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("writing temp label file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("closing temp label file: %w", err)
	}
	if err := os.Rename(tempFile.Name(), path); err != nil {
		return fmt.Errorf("replacing label file: %w", err)
	}

	successful = true
	return nil
}
