package sessions

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/grovetools/ccsessions/pkg/models"
	"github.com/grovetools/ccsessions/pkg/paths"
)

const (
	scanBufferInitial = 256 * 1024
	scanBufferMax     = 64 * 1024 * 1024
)

// extraction accumulates session fields while scanning a log.
type extraction struct {
	first, last  time.Time
	messages     int
	title        *string
	summary      *models.Summary
	branch       string
	cwd          string
	slug         string
	prompts      []string
	edited       []string
	editedSeen   map[string]bool
	skippedLines int
}

func newExtraction() *extraction {
	return &extraction{editedSeen: make(map[string]bool)}
}

func (x *extraction) observe(r *record) {
	if t, ok := r.time(); ok {
		if x.first.IsZero() || t.Before(x.first) {
			x.first = t
		}
		if x.last.IsZero() || t.After(x.last) {
			x.last = t
		}
	}
	if x.branch == "" && r.GitBranch != "" {
		x.branch = r.GitBranch
	}
	if x.cwd == "" && r.Cwd != "" {
		x.cwd = r.Cwd
	}
	if x.slug == "" && r.Slug != "" {
		x.slug = r.Slug
	}

	switch r.Type {
	case recordUser:
		x.messages++
		if m := r.message(); m != nil && !r.IsMeta && len(x.prompts) < 5 {
			if text := m.text(); isPromptCandidate(text) {
				x.prompts = append(x.prompts, truncateBytes(text, promptSampleLen))
			}
		}
	case recordAssistant:
		if m := r.message(); m != nil {
			x.observeTools(m)
		}
	case recordCustomTitle:
		if title := strings.TrimSpace(r.CustomTitle); title != "" {
			x.title = &title
		}
	case recordSummary:
		intent, files := r.summary()
		if intent != "" || len(files) > 0 {
			x.summary = &models.Summary{Intent: strings.TrimSpace(intent), FilesTouched: files}
		}
	}
}

func (x *extraction) observeTools(m *message) {
	for _, b := range m.blocks() {
		if b.Type != "tool_use" || !editTools[b.Name] {
			continue
		}
		path := b.Input.FilePath
		if path == "" {
			path = b.Input.NotebookPath
		}
		if path == "" {
			continue
		}
		name := filepath.Base(path)
		if !x.editedSeen[name] {
			x.editedSeen[name] = true
			x.edited = append(x.edited, name)
		}
	}
}

// parseFile reads one session log. Malformed lines are skipped and counted.
// It returns nil when the log holds no user messages.
func parseFile(path string, info os.FileInfo) (*models.Session, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	x, err := scan(f)
	if err != nil {
		return nil, x.skippedLines, fmt.Errorf("reading %s: %w", path, err)
	}
	if x.messages == 0 {
		return nil, x.skippedLines, nil
	}

	projectDir := filepath.Dir(path)
	s := &models.Session{
		ID:           strings.TrimSuffix(filepath.Base(path), logExt),
		Path:         path,
		ProjectPath:  x.cwd,
		RepoName:     paths.RepoName(projectDir, x.cwd),
		Branch:       models.StringPtr(x.branch),
		StartedAt:    x.first,
		LastActiveAt: x.last,
		MessageCount: x.messages,
		Title:        x.title,
		Summary:      x.summary,
		Labels:       []string{},
		Slug:         x.slug,
		FirstPrompt:  firstIntent(x.prompts),
		EditedFiles:  x.edited,
	}
	if info != nil {
		s.SizeBytes = info.Size()
		s.ModTime = info.ModTime()
	}
	if s.LastActiveAt.IsZero() {
		s.LastActiveAt = s.ModTime
	}
	if s.StartedAt.IsZero() {
		s.StartedAt = s.LastActiveAt
	}
	return s, x.skippedLines, nil
}

func scan(f *os.File) (*extraction, error) {
	x := newExtraction()
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, scanBufferInitial), scanBufferMax)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var r record
		if err := json.Unmarshal(line, &r); err != nil {
			x.skippedLines++
			continue
		}
		x.observe(&r)
	}
	return x, scanner.Err()
}

func truncateBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	// Back off to a rune boundary.
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
