// Package testutil holds helpers shared by package tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// RunIsolated runs the tests of a package with CCSESSIONS_HOME pointing at a
// fresh directory, so logs and config never touch the real home. Call it
// from TestMain:
//
//	func TestMain(m *testing.M) { os.Exit(testutil.RunIsolated(m)) }
func RunIsolated(m *testing.M) int {
	home, err := os.MkdirTemp("", "ccsessions-test-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(home)

	os.Setenv("CCSESSIONS_HOME", home)
	return m.Run()
}

// WriteSessionLog writes a JSONL log at root/project/id.jsonl with the given
// records, one per line, and sets its mtime.
func WriteSessionLog(t *testing.T, root, project, id string, mtime time.Time, records ...string) string {
	t.Helper()

	dir := filepath.Join(root, project)
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, id+".jsonl")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(records, "\n")+"\n"), 0644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

// UserRecord returns a user message record.
func UserRecord(t *testing.T, when time.Time, cwd, text string) string {
	t.Helper()
	rec := map[string]interface{}{
		"type":      "user",
		"timestamp": when.UTC().Format(time.RFC3339Nano),
		"message":   map[string]interface{}{"role": "user", "content": text},
	}
	if cwd != "" {
		rec["cwd"] = cwd
	}
	return MustJSON(t, rec)
}

// TitleRecord returns a custom-title record.
func TitleRecord(t *testing.T, title string) string {
	t.Helper()
	return MustJSON(t, map[string]interface{}{"type": "custom-title", "customTitle": title})
}

// MustJSON encodes v or fails the test.
func MustJSON(t *testing.T, v interface{}) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}
