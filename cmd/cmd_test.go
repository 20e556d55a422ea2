package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/grovetools/ccsessions/errors"
	"github.com/grovetools/ccsessions/logging"
	"github.com/grovetools/ccsessions/pkg/demo"
	"github.com/grovetools/ccsessions/pkg/models"
	"github.com/grovetools/ccsessions/pkg/resume"
	"github.com/grovetools/ccsessions/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(t.Context())
	return out.String(), errOut.String(), err
}

func decodeSessions(t *testing.T, out string) []models.Session {
	t.Helper()
	var ss []models.Session
	require.NoError(t, json.Unmarshal([]byte(out), &ss))
	return ss
}

func TestListDemoJSON(t *testing.T) {
	out, _, err := run(t, "list", "--demo", "--json")
	require.NoError(t, err)
	assert.Len(t, decodeSessions(t, out), 6, "the default window hides sessions older than 48h")

	out, _, err = run(t, "list", "--demo", "--all", "--json")
	require.NoError(t, err)
	ss := decodeSessions(t, out)
	require.Len(t, ss, 8)
	assert.Equal(t, "3f2a9c1e-7b44-4a51-9d0e-1c2b3a4d5e6f", ss[0].ID, "newest first")
}

func TestListQueryAndSort(t *testing.T) {
	out, _, err := run(t, "list", "--demo", "--all", "--json", "--sort", "messages", "-q", "shop-api")
	require.NoError(t, err)
	ss := decodeSessions(t, out)
	require.Len(t, ss, 3)
	assert.Equal(t, 112, ss[0].MessageCount)
	assert.Equal(t, 42, ss[1].MessageCount)
}

func TestListTable(t *testing.T) {
	out, _, err := run(t, "list", "--demo-labels")
	require.NoError(t, err)
	assert.Contains(t, out, "LABELS")
	assert.Contains(t, out, "Fix login bug")
	assert.Contains(t, out, "bug, auth")
	assert.Contains(t, out, "3f2a9c1e")
}

func TestListInvalidSort(t *testing.T) {
	_, _, err := run(t, "list", "--demo", "--sort", "size")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestListRealLogs(t *testing.T) {
	root := t.TempDir()
	now := time.Now()
	testutil.WriteSessionLog(t, root, "-work-api", "abc123", now,
		testutil.UserRecord(t, now.Add(-time.Minute), "/work/api", "Add retries to the HTTP client"),
		testutil.TitleRecord(t, "HTTP retries"),
	)

	out, _, err := run(t, "list", "--projects-dir", root, "--json")
	require.NoError(t, err)
	ss := decodeSessions(t, out)
	require.Len(t, ss, 1)
	assert.Equal(t, "abc123", ss[0].ID)
	assert.Equal(t, 1, ss[0].MessageCount)
	assert.Equal(t, "HTTP retries", ss[0].DisplayTitle())
}

func TestListMissingProjectsDirWarns(t *testing.T) {
	out, errOut, err := run(t, "list", "--projects-dir", filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions found.")
	assert.Contains(t, errOut, "no session logs at")
}

func TestDemoVariantsAreExclusive(t *testing.T) {
	_, _, err := run(t, "list", "--demo", "--demo-large")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestBrowseRequiresTerminal(t *testing.T) {
	orig := isTerminal
	isTerminal = func() bool { return false }
	t.Cleanup(func() { isTerminal = orig })

	_, _, err := run(t, "--demo")
	assert.True(t, errors.Is(err, errors.ErrCodeTerminalUnavailable))
}

func TestPathsCommand(t *testing.T) {
	out, _, err := run(t, "paths", "--projects-dir", "/data/claude/projects")
	require.NoError(t, err)

	var p PathsOutput
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, "/data/claude/projects", p.ProjectsDir)
	assert.Equal(t, "session-tags.json", filepath.Base(p.LabelsFile))
	assert.Equal(t, filepath.Join(p.StateDir, "logs"), p.LogDir)
}

func TestConfigCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("sort: messages\nkeys:\n  rename: [n]\n"), 0644))

	out, _, err := run(t, "config", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "sort: messages")
	assert.Contains(t, out, "window: 48h")
	assert.Contains(t, out, "rename:")
}

func TestConfigCommandRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("window: 7d\n"), 0644))

	_, _, err := run(t, "config", "--config", path)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigInvalid))
}

func TestVersionJSON(t *testing.T) {
	out, _, err := run(t, "version", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"version"`)
	assert.Contains(t, out, `"goVersion"`)
}

func TestResumeSessionUsesLauncher(t *testing.T) {
	rec := &resume.Recorder{}
	env := &environment{launcher: rec, demo: demo.VariantDefault, log: logging.NewLogger("test")}
	s := &models.Session{ID: "3f2a9c1e"}

	require.NoError(t, resumeSession(t.Context(), env, s))
	assert.Equal(t, []string{"3f2a9c1e"}, rec.Resumed)

	rec.Err = errors.ResumeFailed("claude --resume 3f2a9c1e", fmt.Errorf("exit status 1"))
	err := resumeSession(t.Context(), env, s)
	assert.True(t, errors.Is(err, errors.ErrCodeResumeFailed))
}

func TestHelpIsStyled(t *testing.T) {
	out, _, err := run(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "CCSESSIONS")
	assert.Contains(t, out, "COMMANDS")
	assert.Contains(t, out, "--demo-labels")
	assert.True(t, strings.Contains(out, "EXAMPLES"))
}
