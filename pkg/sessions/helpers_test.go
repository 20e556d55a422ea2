package sessions

import (
	"testing"
	"time"

	"github.com/grovetools/ccsessions/testutil"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

func ts(d time.Duration) string {
	return testNow.Add(-d).Format(time.RFC3339Nano)
}

func userLine(t *testing.T, when, text string) string {
	t.Helper()
	return mustJSON(t, map[string]interface{}{
		"type":      "user",
		"timestamp": when,
		"message":   map[string]interface{}{"role": "user", "content": text},
	})
}

func assistantEditLine(t *testing.T, when string, tool, path string) string {
	t.Helper()
	return mustJSON(t, map[string]interface{}{
		"type":      "assistant",
		"timestamp": when,
		"message": map[string]interface{}{
			"role": "assistant",
			"content": []map[string]interface{}{
				{"type": "text", "text": "Applying the change now."},
				{"type": "tool_use", "name": tool, "input": map[string]interface{}{"file_path": path}},
			},
		},
	})
}

func titleLine(t *testing.T, title string) string {
	return testutil.TitleRecord(t, title)
}

func mustJSON(t *testing.T, v interface{}) string {
	return testutil.MustJSON(t, v)
}

// writeLog writes a session log under root/project and sets its mtime.
func writeLog(t *testing.T, root, project, id string, mtime time.Time, lines ...string) string {
	return testutil.WriteSessionLog(t, root, project, id, mtime, lines...)
}

func loadAll(t *testing.T, root string, opts ...LoadOption) LoadResult {
	t.Helper()
	opts = append([]LoadOption{WithNow(fixedNow)}, opts...)
	return Load(t.Context(), root, WindowAll, opts...)
}

func ids(res LoadResult) []string {
	out := make([]string, 0, len(res.Sessions))
	for _, s := range res.Sessions {
		out = append(out, s.ID)
	}
	return out
}
