//go:build !windows && !darwin

package trash_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babarot/trash"
)

func newTrash(t *testing.T) *trash.Trash {
	t.Helper()
	tr, err := trash.New(&trash.Config{
		HomeTrashDir:       filepath.Join(t.TempDir(), "Trash"),
		EnableHomeFallback: true,
		SkipMountPointFind: true,
	})
	require.NoError(t, err)
	return tr
}

func tempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func find(items []trash.Item, path string) []trash.Item {
	var found []trash.Item
	for _, item := range items {
		if item.OriginalPath() == path {
			found = append(found, item)
		}
	}
	return found
}

func ids(items []trash.Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	tr := newTrash(t)
	path := filepath.Join(tempDir(t), "round trip.txt")
	writeFile(t, path, "data")

	require.NoError(t, tr.Remove(path))

	items, err := tr.List()
	require.NoError(t, err)
	found := find(items, path)
	require.Len(t, found, 1)
	assert.Equal(t, "round trip.txt", found[0].Name)
}

func TestPurgeRemovesFromListing(t *testing.T) {
	tr := newTrash(t)
	dir := tempDir(t)
	paths := []string{filepath.Join(dir, "a"), filepath.Join(dir, "b")}
	for _, p := range paths {
		writeFile(t, p, p)
	}
	require.NoError(t, tr.RemoveAll(paths))

	items, err := tr.List()
	require.NoError(t, err)
	purged := ids(items)
	require.NoError(t, tr.PurgeAll(items))

	after, err := tr.List()
	require.NoError(t, err)
	for _, id := range ids(after) {
		assert.NotContains(t, purged, id)
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	tr := newTrash(t)
	path := filepath.Join(tempDir(t), "restore.txt")
	writeFile(t, path, "restore me")
	require.NoError(t, tr.Remove(path))
	require.NoFileExists(t, path)

	items, err := tr.List()
	require.NoError(t, err)
	require.NoError(t, tr.RestoreAll(find(items, path)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "restore me", string(data))

	items, err = tr.List()
	require.NoError(t, err)
	assert.Empty(t, find(items, path))
}

func TestRestoreTwins(t *testing.T) {
	tr := newTrash(t)
	path := filepath.Join(tempDir(t), "twin.txt")

	writeFile(t, path, "first")
	require.NoError(t, tr.Remove(path))
	writeFile(t, path, "second")
	require.NoError(t, tr.Remove(path))

	items, err := tr.List()
	require.NoError(t, err)
	twins := find(items, path)
	require.Len(t, twins, 2)
	batch := []trash.Item{twins[1], twins[0]}

	err = tr.RestoreAll(batch)
	require.Error(t, err)
	assert.ErrorIs(t, err, trash.ErrRestoreTwins)

	info, ok := trash.AsRestoreTwins(err)
	require.True(t, ok)
	assert.Equal(t, path, info.Path)
	assert.Equal(t, batch, info.Items)

	// nothing was touched
	assert.NoFileExists(t, path)
	items, err = tr.List()
	require.NoError(t, err)
	assert.Len(t, find(items, path), 2)
}

func TestRestoreCollision(t *testing.T) {
	tr := newTrash(t)
	path := filepath.Join(tempDir(t), "collide.txt")
	writeFile(t, path, "trashed")
	require.NoError(t, tr.Remove(path))
	writeFile(t, path, "recreated")

	items, err := tr.List()
	require.NoError(t, err)
	batch := find(items, path)
	require.Len(t, batch, 1)

	err = tr.RestoreAll(batch)
	require.Error(t, err)

	var e *trash.Error
	require.True(t, errors.As(err, &e))
	collision, ok := e.Kind.(trash.RestoreCollision)
	require.True(t, ok, "unexpected kind %T", e.Kind)
	assert.Equal(t, path, collision.Path)
	assert.Equal(t, batch, collision.RemainingItems)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "recreated", string(data))

	items, err = tr.List()
	require.NoError(t, err)
	assert.Equal(t, ids(batch), ids(find(items, path)))
}

func TestItemEquality(t *testing.T) {
	a := trash.Item{ID: "same", Name: "a", OriginalParent: "/x", TimeDeleted: 1}
	b := trash.Item{ID: "same", Name: "b", OriginalParent: "/y", TimeDeleted: 2}
	c := trash.Item{ID: "other", Name: "a", OriginalParent: "/x", TimeDeleted: 1}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestListIdempotent(t *testing.T) {
	tr := newTrash(t)
	dir := tempDir(t)
	for _, name := range []string{"x", "y", "z"} {
		path := filepath.Join(dir, name)
		writeFile(t, path, name)
		require.NoError(t, tr.Remove(path))
	}

	first, err := tr.List()
	require.NoError(t, err)
	second, err := tr.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, ids(first), ids(second))
}

func TestEmptyInputIsNoop(t *testing.T) {
	tr := newTrash(t)
	assert.NoError(t, tr.RemoveAll(nil))
	assert.NoError(t, tr.PurgeAll(nil))
	assert.NoError(t, tr.RestoreAll([]trash.Item{}))

	_, err := os.Stat(tr.Info().Root)
	assert.True(t, os.IsNotExist(err))
}

func TestRemoveMissing(t *testing.T) {
	tr := newTrash(t)
	err := tr.Remove(filepath.Join(tempDir(t), "missing"))
	assert.ErrorIs(t, err, trash.ErrCanonicalizePath)
}

func TestOrphans(t *testing.T) {
	tr := newTrash(t)
	path := filepath.Join(tempDir(t), "orphan")
	writeFile(t, path, "x")
	require.NoError(t, tr.Remove(path))
	require.NoError(t, os.Remove(filepath.Join(tr.Info().Root, "files", "orphan")))

	orphans, err := tr.Orphans()
	require.NoError(t, err)
	require.Len(t, orphans, 1)
	require.NoError(t, tr.PurgeAll(orphans))

	orphans, err = tr.Orphans()
	require.NoError(t, err)
	assert.Empty(t, orphans)
}

func TestNewRejectsRelativeTrashDir(t *testing.T) {
	_, err := trash.New(&trash.Config{HomeTrashDir: "Trash"})
	assert.Error(t, err)
}
