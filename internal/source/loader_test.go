package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lipsanen/tmemo/internal/deck"
	"github.com/lipsanen/tmemo/internal/model"
	"github.com/lipsanen/tmemo/internal/store"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func newCache(t *testing.T) *store.SQLiteCache {
	t.Helper()
	c, err := store.NewSQLiteCache(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "")
	writeFile(t, filepath.Join(dir, "notes.txt"), "")
	writeFile(t, filepath.Join(dir, ".hidden.md"), "")
	writeFile(t, filepath.Join(dir, ".git", "x.md"), "")
	writeFile(t, filepath.Join(dir, "sub", "b.md"), "")

	files, err := Files(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(dir, "a.md"), files[0].Path)
	assert.Equal(t, "a.md", files[0].Name)
	assert.Equal(t, filepath.Join(dir, "sub", "b.md"), files[1].Path)
	assert.Equal(t, "b.md", files[1].Name)
	assert.False(t, files[0].ModTime.IsZero())
}

func TestFilesMissingRoot(t *testing.T) {
	_, err := Files(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestLoadWithoutCache(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "go.md"), "# Basics\nq:: a\nc:: {{{x}}} and {{{y}}}\n")

	l := &Loader{Root: dir}
	c, st, err := l.Load(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, LoadStats{Files: 1, Parsed: 1}, st)
	require.Len(t, c.BaseCards, 1)
	require.Len(t, c.Cards, 3)
	assert.Equal(t, "go.md > Basics", c.Cards[0].Content.Prefix)
}

func TestLoadUsesCache(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "go.md")
	writeFile(t, path, "q:: a\n")
	stamp := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, stamp, stamp))

	l := &Loader{Root: dir, Cache: newCache(t)}
	_, st, err := l.Load(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Parsed)

	// Same mtime: the stale cached parse is returned.
	writeFile(t, path, "q:: changed\n")
	require.NoError(t, os.Chtimes(path, stamp, stamp))
	c, st, err := l.Load(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Cached)
	assert.Equal(t, "a", c.Cards[0].Content.Back)

	later := stamp.Add(time.Hour)
	require.NoError(t, os.Chtimes(path, later, later))
	c, st, err = l.Load(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Parsed)
	assert.Equal(t, "changed", c.Cards[0].Content.Back)
}

func TestLoadPrunesRemovedFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "q:: a\n")
	writeFile(t, filepath.Join(dir, "b.md"), "r:: b\n")

	cache := newCache(t)
	l := &Loader{Root: dir, Cache: cache}
	_, _, err := l.Load(ctx, day)
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(dir, "b.md")))
	c, st, err := l.Load(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Pruned)
	assert.Len(t, c.Cards, 1)

	entries, err := cache.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Join(dir, "a.md"), entries[0].Path)
	assert.Equal(t, deck.ParsingVersion, entries[0].ParsingVersion)
}

func TestLoadReportsBadMetadata(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "<!-- tmemo: {card_type: [ -->\nq:: a\n")

	_, _, err := (&Loader{Root: dir}).Load(context.Background(), day)
	assert.ErrorIs(t, err, ErrInvalidMetadata)
}

func TestLoadUnsupportedCardType(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "<!-- tmemo: {card_type: quote} -->\nq:: a\n")

	_, _, err := (&Loader{Root: dir}).Load(context.Background(), day)
	assert.ErrorIs(t, err, model.ErrUnsupportedCardType)
}

func TestApplyEdits(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "notes.md")
	writeFile(t, path, "# Go\nq:: a\n:::\nf\n:::\nb\n:::\n")
	other := filepath.Join(dir, "other.md")
	writeFile(t, other, "# Go\nq:: a\n")

	edits := []deck.Edit{
		{
			Old: model.Content{Prefix: "notes.md > Go", Front: "q", Back: "a"},
			New: model.Content{Prefix: "notes.md > Go", Front: "q", Back: "b"},
		},
		{
			Old: model.Content{Prefix: "notes.md > Go", Front: "f\n", Back: "b\n"},
			New: model.Content{Prefix: "notes.md > Go", Front: "f\n", Back: "c\n"},
		},
		{
			Old: model.Content{Prefix: "notes.md > Go", Front: "gone", Back: "x"},
			New: model.Content{Prefix: "notes.md > Go", Front: "gone", Back: "y"},
		},
	}
	n, err := ApplyEdits(dir, edits)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "# Go\nq:: b\n:::\nf\n:::\nc\n:::\n", readFile(t, path))
	assert.Equal(t, "# Go\nq:: a\n", readFile(t, other))
}

func TestApplyEditsNone(t *testing.T) {
	n, err := ApplyEdits(filepath.Join(t.TempDir(), "missing"), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}
