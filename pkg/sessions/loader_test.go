package sessions

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTitleWithoutSummaryOrBranch(t *testing.T) {
	root := t.TempDir()
	writeLog(t, root, "-home-dev-shop", "s1", testNow,
		userLine(t, ts(3*time.Hour), "the login form rejects valid passwords"),
		userLine(t, ts(2*time.Hour), "still failing"),
		titleLine(t, "Fix login bug"),
		userLine(t, ts(time.Hour), "thanks"),
	)

	res := loadAll(t, root)
	require.Len(t, res.Sessions, 1)

	s := res.Sessions[0]
	assert.Equal(t, "s1", s.ID)
	assert.Equal(t, 3, s.MessageCount)
	require.NotNil(t, s.Title)
	assert.Equal(t, "Fix login bug", *s.Title)
	assert.Nil(t, s.Summary)
	assert.Nil(t, s.Branch)
	assert.Equal(t, []string{}, s.Labels)
}

func TestLoadExtractsFields(t *testing.T) {
	root := t.TempDir()
	writeLog(t, root, "-home-dev-shop", "s1", testNow,
		mustJSON(t, map[string]interface{}{
			"type": "user", "timestamp": ts(5 * time.Hour), "cwd": "/home/dev/shop",
			"gitBranch": "feature/cart", "slug": "brave-otter",
			"message": map[string]interface{}{"role": "user", "content": "continue"},
		}),
		userLine(t, ts(4*time.Hour), "Add a **discount code** field to the checkout page"),
		assistantEditLine(t, ts(3*time.Hour), "Edit", "/home/dev/shop/cart.go"),
		assistantEditLine(t, ts(2*time.Hour), "Write", "/home/dev/shop/cart_test.go"),
		assistantEditLine(t, ts(90*time.Minute), "Edit", "/home/dev/shop/cart.go"),
		assistantEditLine(t, ts(80*time.Minute), "Read", "/home/dev/shop/main.go"),
		mustJSON(t, map[string]interface{}{"type": "user", "timestamp": ts(time.Hour), "gitBranch": "main",
			"message": map[string]interface{}{"role": "user", "content": "ok"}}),
	)

	res := loadAll(t, root)
	require.Len(t, res.Sessions, 1)
	s := res.Sessions[0]

	assert.Equal(t, 3, s.MessageCount)
	assert.Equal(t, "feature/cart", s.BranchName(), "branch recorded at session start")
	assert.Equal(t, "/home/dev/shop", s.ProjectPath)
	assert.Equal(t, "shop", s.RepoName)
	assert.Equal(t, "brave-otter", s.Slug)
	assert.Equal(t, "Add a discount code field to the checkout page", s.FirstPrompt)
	assert.Equal(t, []string{"cart.go", "cart_test.go"}, s.EditedFiles)
	assert.Equal(t, testNow.Add(-5*time.Hour), s.StartedAt)
	assert.Equal(t, testNow.Add(-time.Hour), s.LastActiveAt)
	assert.Nil(t, s.Summary)
}

func TestLoadLastRecordWins(t *testing.T) {
	root := t.TempDir()
	writeLog(t, root, "-p", "s1", testNow,
		userLine(t, ts(3*time.Hour), "hello there, first message"),
		titleLine(t, "First name"),
		mustJSON(t, map[string]interface{}{"type": "summary", "summary": "Early summary"}),
		titleLine(t, "Second name"),
		mustJSON(t, map[string]interface{}{"type": "summary", "summary": map[string]interface{}{
			"intent": "Refactor auth", "files_touched": []string{"auth.go", "session.go"},
		}}),
	)

	s := loadAll(t, root).Sessions[0]
	assert.Equal(t, "Second name", *s.Title)
	require.NotNil(t, s.Summary)
	assert.Equal(t, "Refactor auth", s.Summary.Intent)
	assert.Equal(t, []string{"auth.go", "session.go"}, s.Summary.FilesTouched)
	assert.Equal(t, "Second name", s.DisplayTitle(), "summary never overrides a custom title")
}

func TestLoadTimestampsOutOfOrder(t *testing.T) {
	root := t.TempDir()
	writeLog(t, root, "-p", "s1", testNow,
		userLine(t, ts(2*time.Hour), "middle message here"),
		userLine(t, ts(5*time.Hour), "earliest message here"),
		userLine(t, ts(30*time.Minute), "latest message here"),
	)

	s := loadAll(t, root).Sessions[0]
	assert.Equal(t, testNow.Add(-5*time.Hour), s.StartedAt)
	assert.Equal(t, testNow.Add(-30*time.Minute), s.LastActiveAt)
	assert.False(t, s.LastActiveAt.Before(s.StartedAt))
}

func TestLoadSkipsCorruptLines(t *testing.T) {
	root := t.TempDir()
	writeLog(t, root, "-p", "clean", testNow,
		userLine(t, ts(2*time.Hour), "first real message"),
		userLine(t, ts(time.Hour), "second real message"),
	)
	writeLog(t, root, "-p", "dirty", testNow,
		userLine(t, ts(2*time.Hour), "first real message"),
		`{"type": "user", "timestamp": `,
		`not json at all`,
		userLine(t, ts(time.Hour), "second real message"),
	)

	res := loadAll(t, root)
	require.Len(t, res.Sessions, 2)
	assert.Empty(t, res.Notes, "malformed lines are never surfaced")

	dirty, cleanS := res.Sessions[1], res.Sessions[0]
	assert.Equal(t, "dirty", dirty.ID)
	assert.Equal(t, cleanS.MessageCount, dirty.MessageCount)
	assert.Equal(t, cleanS.StartedAt, dirty.StartedAt)
	assert.Equal(t, cleanS.LastActiveAt, dirty.LastActiveAt)
}

func TestLoadRecentWindowSkipsOldFiles(t *testing.T) {
	root := t.TempDir()
	writeLog(t, root, "-p", "fresh", testNow.Add(-time.Hour),
		userLine(t, ts(time.Hour), "recent work on things"))
	writeLog(t, root, "-p", "stale", testNow.Add(-72*time.Hour),
		userLine(t, ts(72*time.Hour), "old work on things"))

	recent := Load(t.Context(), root, WindowRecent, WithNow(fixedNow))
	assert.Equal(t, []string{"fresh"}, ids(recent))

	all := Load(t.Context(), root, WindowAll, WithNow(fixedNow))
	assert.Equal(t, []string{"fresh", "stale"}, ids(all))
}

func TestLoadDropsEmptyAndAgentLogs(t *testing.T) {
	root := t.TempDir()
	writeLog(t, root, "-p", "real", testNow, userLine(t, ts(time.Hour), "a real prompt here"))
	writeLog(t, root, "-p", "snapshot", testNow, `{"type":"file-history-snapshot"}`)
	writeLog(t, root, "-p", "agent-1234", testNow, userLine(t, ts(time.Hour), "subagent prompt"))
	writeLog(t, filepath.Join(root, "-p"), "subagents", "nested", testNow, userLine(t, ts(time.Hour), "nested prompt"))
	require.NoError(t, os.WriteFile(filepath.Join(root, "-p", "notes.txt"), []byte("x"), 0644))

	assert.Equal(t, []string{"real"}, ids(loadAll(t, root)))
}

func TestLoadExcludePatterns(t *testing.T) {
	root := t.TempDir()
	writeLog(t, root, "-home-dev-shop", "keep", testNow, userLine(t, ts(time.Hour), "keep this session"))
	writeLog(t, root, "-tmp-scratch", "drop", testNow, userLine(t, ts(time.Hour), "drop this session"))

	res := loadAll(t, root, WithExclude([]string{"-tmp-*"}))
	assert.Equal(t, []string{"keep"}, ids(res))

	bad := loadAll(t, root, WithExclude([]string{"["}))
	assert.Len(t, bad.Sessions, 2)
	require.Len(t, bad.Notes, 1)
	assert.Contains(t, bad.Notes[0], "exclude")
}

func TestLoadIsDeterministic(t *testing.T) {
	root := t.TempDir()
	for _, id := range []string{"c", "a", "e", "b", "d"} {
		writeLog(t, root, "-proj-"+id, id, testNow, userLine(t, ts(time.Hour), "message for "+id))
	}

	first := loadAll(t, root, WithWorkers(4))
	second := loadAll(t, root, WithWorkers(1))
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids(first))
	assert.Equal(t, first, second)
}

func TestLoadDuplicateIDsKeepLatest(t *testing.T) {
	root := t.TempDir()
	writeLog(t, root, "-one", "dup", testNow, userLine(t, ts(5*time.Hour), "older copy of session"))
	writeLog(t, root, "-two", "dup", testNow, userLine(t, ts(time.Hour), "newer copy of session"))

	res := loadAll(t, root)
	require.Len(t, res.Sessions, 1)
	assert.Equal(t, testNow.Add(-time.Hour), res.Sessions[0].LastActiveAt)
}

func TestLoadMissingRootIsANote(t *testing.T) {
	res := loadAll(t, filepath.Join(t.TempDir(), "missing"))
	assert.Empty(t, res.Sessions)
	require.Len(t, res.Notes, 1)
}

func TestLoadUnreadableProjectIsANote(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	root := t.TempDir()
	writeLog(t, root, "-ok", "s1", testNow, userLine(t, ts(time.Hour), "readable session"))
	writeLog(t, root, "-locked", "s2", testNow, userLine(t, ts(time.Hour), "locked session"))
	locked := filepath.Join(root, "-locked")
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	res := loadAll(t, root)
	assert.Equal(t, []string{"s1"}, ids(res))
	require.Len(t, res.Notes, 1)
	assert.Contains(t, res.Notes[0], "-locked")
}

func TestWindow(t *testing.T) {
	w, err := ParseWindow("all")
	require.NoError(t, err)
	assert.Equal(t, WindowAll, w)
	assert.Equal(t, WindowRecent, w.Toggle())
	assert.Equal(t, "48h", WindowRecent.String())

	_, err = ParseWindow("7d")
	assert.Error(t, err)
}

func TestDirLoader(t *testing.T) {
	root := t.TempDir()
	writeLog(t, root, "-p", "s1", testNow, userLine(t, ts(time.Hour), "message for loader"))

	l := &DirLoader{Root: root, Options: []LoadOption{WithNow(fixedNow)}}
	assert.Equal(t, []string{"s1"}, ids(l.Load(t.Context(), WindowRecent)))
}
