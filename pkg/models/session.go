package models

import (
	"strings"
	"time"
)

// Session is the metadata extracted from one recorded conversation log.
// Optional fields are pointers; nil means the log did not carry them.
type Session struct {
	ID           string    `json:"id"`
	Path         string    `json:"path"`
	ProjectPath  string    `json:"project_path"`
	RepoName     string    `json:"repo_name"`
	Branch       *string   `json:"branch,omitempty"`
	StartedAt    time.Time `json:"started_at"`
	LastActiveAt time.Time `json:"last_active_at"`
	MessageCount int       `json:"message_count"`
	Title        *string   `json:"title,omitempty"`
	Summary      *Summary  `json:"summary,omitempty"`
	Labels       []string  `json:"labels"`

	// Slug is the upstream tool's generated session nickname, used as a
	// title fallback.
	Slug string `json:"slug,omitempty"`

	// FirstPrompt is the first substantive user message, cleaned. It stands
	// in for the intent when the log has no summary record.
	FirstPrompt string `json:"first_prompt,omitempty"`
	// EditedFiles lists base names of files written by Edit/Write tool calls.
	EditedFiles []string `json:"edited_files,omitempty"`

	SizeBytes int64     `json:"size_bytes"`
	ModTime   time.Time `json:"mod_time"`
}

// Summary describes what a session was about.
type Summary struct {
	Intent       string   `json:"intent"`
	FilesTouched []string `json:"files_touched"`
}

const (
	shortIDLen     = 8
	titleIntentLen = 60
)

// ShortID returns the first eight characters of the session id.
func (s *Session) ShortID() string {
	if len(s.ID) <= shortIDLen {
		return s.ID
	}
	return s.ID[:shortIDLen]
}

// HasTitle reports whether an explicit custom title is set.
func (s *Session) HasTitle() bool {
	return s.Title != nil && strings.TrimSpace(*s.Title) != ""
}

// DisplayTitle returns the name shown in listings. An explicit custom title
// always wins; the summary never overrides it. Fallbacks: slug, truncated
// intent, short id.
func (s *Session) DisplayTitle() string {
	if s.HasTitle() {
		return *s.Title
	}
	if s.Slug != "" {
		return s.Slug
	}
	if intent := s.Intent(); intent != "" {
		intent := []rune(intent)
		if len(intent) > titleIntentLen {
			return string(intent[:titleIntentLen-1]) + "…"
		}
		return string(intent)
	}
	return s.ShortID()
}

// BranchName returns the git branch or "" when none was recorded.
func (s *Session) BranchName() string {
	if s.Branch == nil {
		return ""
	}
	return *s.Branch
}

// Intent returns the summary intent, falling back to the first prompt.
func (s *Session) Intent() string {
	if s.Summary != nil && s.Summary.Intent != "" {
		return s.Summary.Intent
	}
	return s.FirstPrompt
}

// FilesTouched returns the summary's file list, falling back to the files
// edited during the session.
func (s *Session) FilesTouched() []string {
	if s.Summary != nil && len(s.Summary.FilesTouched) > 0 {
		return s.Summary.FilesTouched
	}
	return s.EditedFiles
}

// FirstLabel returns the first label in insertion order, or "".
func (s *Session) FirstLabel() string {
	if len(s.Labels) == 0 {
		return ""
	}
	return s.Labels[0]
}

// SetTitle replaces the in-memory title.
func (s *Session) SetTitle(title string) {
	s.Title = &title
}

// SetLabels replaces the in-memory labels with a copy of tags.
func (s *Session) SetLabels(tags []string) {
	s.Labels = append([]string{}, tags...)
}

// StringPtr returns a pointer to v, or nil for the empty string.
func StringPtr(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
