// Package index derives the visible session list from the loaded sessions:
// search filter, sort order, label grouping and pagination. It performs no
// I/O and never mutates its input.
package index

import (
	"sort"
	"strings"

	"github.com/grovetools/ccsessions/pkg/models"
)

// PageSize is the number of sessions shown per page.
const PageSize = 15

// SortKey selects the ordering of the visible list.
type SortKey int

const (
	// SortRecency orders by last activity, newest first.
	SortRecency SortKey = iota
	// SortMessages orders by message count, largest first.
	SortMessages
)

func (k SortKey) String() string {
	if k == SortMessages {
		return "messages"
	}
	return "recency"
}

// ParseSortKey accepts "recency" and "messages".
func ParseSortKey(s string) (SortKey, bool) {
	switch s {
	case "", "recency", "time":
		return SortRecency, true
	case "messages", "msgs":
		return SortMessages, true
	}
	return SortRecency, false
}

// Filter returns the sessions matching query, in input order. A session
// matches when query is a case-insensitive substring of its title, intent,
// any touched file, repo name, branch or any label. Only the empty query
// matches everything; whitespace is part of the substring.
func Filter(sessions []*models.Session, query string) []*models.Session {
	q := strings.ToLower(query)
	out := make([]*models.Session, 0, len(sessions))
	for _, s := range sessions {
		if q == "" || matches(s, q) {
			out = append(out, s)
		}
	}
	return out
}

func matches(s *models.Session, q string) bool {
	fields := []string{s.Intent(), s.RepoName, s.BranchName()}
	if s.HasTitle() {
		fields = append(fields, *s.Title)
	}
	if s.Summary != nil {
		fields = append(fields, s.Summary.Intent)
		fields = append(fields, s.Summary.FilesTouched...)
	}
	fields = append(fields, s.EditedFiles...)
	fields = append(fields, s.Labels...)

	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// Sort returns a sorted copy. Ties are broken by id ascending so the order
// is total.
func Sort(sessions []*models.Session, key SortKey) []*models.Session {
	out := append([]*models.Session(nil), sessions...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch key {
		case SortMessages:
			if a.MessageCount != b.MessageCount {
				return a.MessageCount > b.MessageCount
			}
		default:
			if !a.LastActiveAt.Equal(b.LastActiveAt) {
				return a.LastActiveAt.After(b.LastActiveAt)
			}
		}
		return a.ID < b.ID
	})
	return out
}

// Group is a run of sessions sharing the same first label. The unlabeled
// group has an empty Label.
type Group struct {
	Label    string
	Sessions []*models.Session
}

// GroupByLabel buckets sessions by first label. Buckets appear in order of first
// occurrence and keep the input order inside.
func GroupByLabel(sessions []*models.Session) []Group {
	var groups []Group
	pos := make(map[string]int)
	for _, s := range sessions {
		label := s.FirstLabel()
		i, ok := pos[label]
		if !ok {
			i = len(groups)
			pos[label] = i
			groups = append(groups, Group{Label: label})
		}
		groups[i].Sessions = append(groups[i].Sessions, s)
	}
	return groups
}

// Flatten concatenates groups in order.
func Flatten(groups []Group) []*models.Session {
	var out []*models.Session
	for _, g := range groups {
		out = append(out, g.Sessions...)
	}
	return out
}

// PageCount returns the number of pages for n sessions, at least 1.
func PageCount(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + PageSize - 1) / PageSize
}

// Page returns the k-th page (0-based) of seq, empty when out of range.
func Page(seq []*models.Session, k int) []*models.Session {
	start := k * PageSize
	if k < 0 || start >= len(seq) {
		return nil
	}
	end := start + PageSize
	if end > len(seq) {
		end = len(seq)
	}
	return seq[start:end]
}
