package labels

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/grovetools/ccsessions/errors"
	"github.com/grovetools/ccsessions/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "session-tags.json"))
}

func TestLoadMissingFile(t *testing.T) {
	store := newTestStore(t)

	labels, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, labels)
	assert.Empty(t, store.Used())
}

func TestSetThenLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("s1", []string{"auth", "bug"}))
	require.NoError(t, store.Set("s2", []string{"docs"}))

	reopened := NewStore(store.Path())
	labels, err := reopened.Load()
	require.NoError(t, err)
	assert.Equal(t, Labels{"s1": {"auth", "bug"}, "s2": {"docs"}}, labels)
	assert.Equal(t, []string{"auth", "bug", "docs"}, reopened.Used())
}

func TestSetEmptyRemovesKey(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("s1", []string{"auth"}))
	require.NoError(t, store.Set("s1", []string{" ", ""}))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
	assert.Empty(t, store.All())
}

func TestSetNormalizesTags(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("s1", []string{" auth", "bug ", "auth"}))
	assert.Equal(t, []string{"auth", "bug"}, store.All()["s1"])
}

func TestSetLeavesNoTempFiles(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("s1", []string{"a"}))
	require.NoError(t, store.Set("s2", []string{"b"}))

	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "session-tags.json", entries[0].Name())
}

func TestSetFailureKeepsPreviousState(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	store := newTestStore(t)
	require.NoError(t, store.Set("s1", []string{"a"}))

	dir := filepath.Dir(store.Path())
	require.NoError(t, os.Chmod(dir, 0500))
	t.Cleanup(func() { os.Chmod(dir, 0755) })

	err := store.Set("s1", []string{"b"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeLabelsWrite, errors.GetCode(err))
	assert.Equal(t, []string{"a"}, store.All()["s1"])

	data, readErr := os.ReadFile(store.Path())
	require.NoError(t, readErr)
	assert.JSONEq(t, `{"s1": ["a"]}`, string(data))
}

func TestUnreadableFileIsNeverOverwritten(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte(`{"keep-me": ["important"]}`), 0644))
	require.NoError(t, os.Chmod(store.Path(), 0000))
	t.Cleanup(func() { os.Chmod(store.Path(), 0644) })

	labels, err := store.Load()
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeLabelsUnreadable, errors.GetCode(err))
	assert.Empty(t, labels)

	err = store.Set("other", []string{"x"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeLabelsWrite, errors.GetCode(err))
	assert.Empty(t, store.All())

	require.NoError(t, os.Chmod(store.Path(), 0644))
	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.JSONEq(t, `{"keep-me": ["important"]}`, string(data))

	// Once the file reads again, writes resume and keep existing entries.
	_, err = store.Load()
	require.NoError(t, err)
	require.NoError(t, store.Set("other", []string{"x"}))
	assert.Equal(t, Labels{"keep-me": {"important"}, "other": {"x"}}, store.All())
}

func TestLoadDirectoryIsUnreadable(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.Mkdir(store.Path(), 0755))

	_, err := store.Load()
	assert.Equal(t, errors.ErrCodeLabelsUnreadable, errors.GetCode(err))
	assert.Equal(t, errors.ErrCodeLabelsWrite, errors.GetCode(store.Set("s1", []string{"a"})))
}

func TestLoadCorruptFile(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte(`{"s1": ["a"`), 0644))

	labels, err := store.Load()
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeLabelsCorrupt, errors.GetCode(err))
	assert.Empty(t, labels)

	// The first write preserves the unreadable file next to the new one.
	require.NoError(t, store.Set("s2", []string{"b"}))
	aside, err := os.ReadFile(store.Path() + ".corrupt")
	require.NoError(t, err)
	assert.Equal(t, `{"s1": ["a"`, string(aside))
}

func TestLoadWrongShapeIsCorrupt(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte(`["not", "an", "object"]`), 0644))

	_, err := store.Load()
	assert.True(t, errors.Is(err, errors.ErrCodeLabelsCorrupt))
}

func TestMerge(t *testing.T) {
	sessions := []*models.Session{{ID: "s1"}, {ID: "s2"}}
	labels := Labels{"s1": {"auth", "bug"}}

	Merge(sessions, labels)
	assert.Equal(t, []string{"auth", "bug"}, sessions[0].Labels)
	assert.Equal(t, []string{}, sessions[1].Labels)

	labels["s1"][0] = "mutated"
	assert.Equal(t, "auth", sessions[0].Labels[0], "merge copies tags")
}

func TestParseInput(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"auth, bug", []string{"auth", "bug"}},
		{" auth ,, bug , auth ", []string{"auth", "bug"}},
		{"", []string{}},
		{" , ", []string{}},
		{"single", []string{"single"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseInput(tt.in))
		})
	}

	assert.Equal(t, "auth, bug", Format(ParseInput("auth,bug")))
}

func TestSuggest(t *testing.T) {
	used := []string{"a", "b", "c", "d", "e", "f", "g"}
	assert.Equal(t, []string{"a", "c", "e", "f", "g"}, Suggest(used, []string{"b", "d"}, 5))
	assert.Empty(t, Suggest(used, used, 5))
}
