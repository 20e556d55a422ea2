package sessions

import (
	"encoding/json"
	"strings"
	"time"
)

// Record types the ingester understands. Everything else is only scanned for
// timestamps and session-level fields.
const (
	recordUser        = "user"
	recordAssistant   = "assistant"
	recordCustomTitle = "custom-title"
	recordSummary     = "summary"
)

// record is one line of a session log. Unknown fields are ignored.
type record struct {
	Type        string          `json:"type"`
	Timestamp   string          `json:"timestamp"`
	SessionID   string          `json:"sessionId"`
	Cwd         string          `json:"cwd"`
	GitBranch   string          `json:"gitBranch"`
	Slug        string          `json:"slug"`
	IsMeta      bool            `json:"isMeta"`
	CustomTitle string          `json:"customTitle"`
	Message     json.RawMessage `json:"message"`

	// Summary records carry either a plain string or an object with intent
	// and files_touched; some writers put those keys at the top level.
	Summary      json.RawMessage `json:"summary"`
	Intent       string          `json:"intent"`
	FilesTouched []string        `json:"files_touched"`
}

type message struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

type contentBlock struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Name  string `json:"name"`
	Input struct {
		FilePath     string `json:"file_path"`
		NotebookPath string `json:"notebook_path"`
	} `json:"input"`
}

type summaryBody struct {
	Intent       string   `json:"intent"`
	FilesTouched []string `json:"files_touched"`
}

// editTools are the tool_use names whose file argument counts as an edit.
var editTools = map[string]bool{
	"Edit":         true,
	"Write":        true,
	"MultiEdit":    true,
	"NotebookEdit": true,
}

func (r *record) time() (time.Time, bool) {
	if r.Timestamp == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, r.Timestamp)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (r *record) message() *message {
	if len(r.Message) == 0 {
		return nil
	}
	var m message
	if err := json.Unmarshal(r.Message, &m); err != nil {
		return nil
	}
	return &m
}

// summary returns the intent and files carried by a summary record.
func (r *record) summary() (string, []string) {
	intent, files := r.Intent, r.FilesTouched
	if len(r.Summary) == 0 {
		return intent, files
	}

	var text string
	if err := json.Unmarshal(r.Summary, &text); err == nil {
		if intent == "" {
			intent = text
		}
		return intent, files
	}

	var body summaryBody
	if err := json.Unmarshal(r.Summary, &body); err == nil {
		if body.Intent != "" {
			intent = body.Intent
		}
		if len(body.FilesTouched) > 0 {
			files = body.FilesTouched
		}
	}
	return intent, files
}

// blocks decodes message content, which is either a string or a list of
// typed blocks.
func (m *message) blocks() []contentBlock {
	if len(m.Content) == 0 {
		return nil
	}
	var text string
	if err := json.Unmarshal(m.Content, &text); err == nil {
		return []contentBlock{{Type: "text", Text: text}}
	}
	var blocks []contentBlock
	if err := json.Unmarshal(m.Content, &blocks); err != nil {
		return nil
	}
	return blocks
}

// text joins the text blocks of a message.
func (m *message) text() string {
	var parts []string
	for _, b := range m.blocks() {
		if b.Type == "text" && b.Text != "" {
			parts = append(parts, b.Text)
		}
	}
	return strings.Join(parts, " ")
}
