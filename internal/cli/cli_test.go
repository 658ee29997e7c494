//go:build !windows && !darwin

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/babarot/trash"
	"github.com/babarot/trash/internal/config"
	"github.com/babarot/trash/internal/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCLI struct {
	CLI
	out   *bytes.Buffer
	asked []string
}

func newTestCLI(t *testing.T, opt Option, answer bool) *testCLI {
	t.Helper()
	tr, err := trash.New(&trash.Config{
		HomeTrashDir:       filepath.Join(t.TempDir(), "Trash"),
		EnableHomeFallback: true,
		SkipMountPointFind: true,
	})
	require.NoError(t, err)

	tc := &testCLI{out: &bytes.Buffer{}}
	tc.CLI = CLI{
		option: opt,
		config: config.Default(),
		trash:  tr,
		stdout: tc.out,
		now:    time.Now,
		confirm: func(question string, _ bool) (bool, error) {
			tc.asked = append(tc.asked, question)
			return answer, nil
		},
	}
	return tc
}

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(name), 0644))
	return path
}

func listed(t *testing.T, c *testCLI) []trash.Item {
	t.Helper()
	items, err := c.trash.List()
	require.NoError(t, err)
	return items
}

func TestPutVerbose(t *testing.T) {
	c := newTestCLI(t, Option{Rm: RmOption{Verbose: true}}, true)
	dir := t.TempDir()
	file := touch(t, dir, "a.txt")
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0755))

	require.NoError(t, c.Run([]string{file, sub}))

	assert.NoFileExists(t, file)
	assert.NoDirExists(t, sub)
	assert.Contains(t, c.out.String(), "removed '"+file+"'")
	assert.Contains(t, c.out.String(), "removed directory '"+sub+"'")
	assert.Len(t, listed(t, c), 2)
}

func TestPutMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	c := newTestCLI(t, Option{}, true)
	assert.Error(t, c.Run([]string{missing}))

	c = newTestCLI(t, Option{Rm: RmOption{Force: true}}, true)
	assert.NoError(t, c.Run([]string{missing}))
}

func TestPutNoArgs(t *testing.T) {
	c := newTestCLI(t, Option{}, true)
	assert.Error(t, c.Run(nil))
}

func TestList(t *testing.T) {
	c := newTestCLI(t, Option{List: true}, true)
	require.NoError(t, c.Run(nil))
	assert.Contains(t, c.out.String(), "The trash is empty.")

	dir := t.TempDir()
	require.NoError(t, c.Put([]string{touch(t, dir, "listed.txt"), touch(t, dir, ".DS_Store")}))

	c.out.Reset()
	require.NoError(t, c.Run(nil))
	assert.Contains(t, c.out.String(), "listed.txt")
	assert.NotContains(t, c.out.String(), ".DS_Store")
}

func TestRestoreMatch(t *testing.T) {
	c := newTestCLI(t, Option{}, true)
	dir := t.TempDir()
	keep := touch(t, dir, "keep.log")
	back := touch(t, dir, "back.txt")
	require.NoError(t, c.Put([]string{keep, back}))

	c.option = Option{Restore: true, Match: []string{"*.txt"}}
	require.NoError(t, c.Run(nil))

	assert.FileExists(t, back)
	assert.NoFileExists(t, keep)
	assert.Contains(t, c.out.String(), "restored 'back.txt'")
}

func TestRestoreLatestOnly(t *testing.T) {
	c := newTestCLI(t, Option{}, true)
	dir := t.TempDir()
	require.NoError(t, c.Put([]string{touch(t, dir, "one"), touch(t, dir, "two")}))

	c.option = Option{Restore: true}
	require.NoError(t, c.Run(nil))
	assert.Len(t, listed(t, c), 1)
}

func TestRestoreSkipsOlderTwins(t *testing.T) {
	c := newTestCLI(t, Option{}, true)
	dir := t.TempDir()
	path := touch(t, dir, "twin")
	require.NoError(t, c.Put([]string{path}))
	touch(t, dir, "twin")
	require.NoError(t, c.Put([]string{path}))

	c.option = Option{Restore: true}
	require.NoError(t, c.Restore([]string{"twin"}))

	assert.FileExists(t, path)
	assert.Len(t, listed(t, c), 1)
	assert.Contains(t, c.out.String(), "1 older item(s)")
}

func TestRestoreCollision(t *testing.T) {
	c := newTestCLI(t, Option{}, true)
	dir := t.TempDir()
	path := touch(t, dir, "taken")
	require.NoError(t, c.Put([]string{path}))
	touch(t, dir, "taken")

	c.option = Option{Restore: true}
	err := c.Run(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "destination already exists")
	assert.Len(t, listed(t, c), 1)
}

func TestRestoreNothingSelected(t *testing.T) {
	c := newTestCLI(t, Option{Restore: true}, true)
	assert.Error(t, c.Run(nil))
}

func TestPurge(t *testing.T) {
	c := newTestCLI(t, Option{}, false)
	dir := t.TempDir()
	require.NoError(t, c.Put([]string{touch(t, dir, "a"), touch(t, dir, "b.tmp")}))

	c.option = Option{Purge: true, Match: []string{"*.tmp"}}
	require.NoError(t, c.Run(nil))
	assert.Contains(t, c.out.String(), "Purge canceled.")
	assert.Len(t, listed(t, c), 2)

	c.confirm = func(string, bool) (bool, error) { return true, nil }
	require.NoError(t, c.Run(nil))
	items := listed(t, c)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].Name)
}

func TestPurgeEverythingAsksStrictly(t *testing.T) {
	c := newTestCLI(t, Option{}, true)
	require.NoError(t, c.Put([]string{touch(t, t.TempDir(), "a")}))

	var strict bool
	c.confirm = func(_ string, s bool) (bool, error) {
		strict = s
		return true, nil
	}
	c.option = Option{Purge: true}
	require.NoError(t, c.Run(nil))
	assert.True(t, strict)
	assert.Empty(t, listed(t, c))
}

func TestPruneOlderThan(t *testing.T) {
	c := newTestCLI(t, Option{}, true)
	require.NoError(t, c.Put([]string{touch(t, t.TempDir(), "a")}))

	c.option = Option{Prune: []string{"1d"}}
	require.NoError(t, c.Run(nil))
	assert.Len(t, listed(t, c), 1)

	c.now = func() time.Time { return time.Now().Add(48 * time.Hour) }
	c.option = Option{Prune: []string{"1d", "1w"}, Rm: RmOption{Force: true}}
	require.NoError(t, c.Run(nil))
	assert.Empty(t, listed(t, c))
}

func TestPruneOrphans(t *testing.T) {
	c := newTestCLI(t, Option{}, true)
	path := touch(t, t.TempDir(), "orphan")
	require.NoError(t, c.Put([]string{path}))
	require.NoError(t, os.Remove(filepath.Join(c.trash.Info().Root, "files", "orphan")))

	require.NoError(t, c.Prune([]string{"orphans"}))
	assert.Len(t, c.asked, 1)

	orphans, err := c.trash.Orphans()
	require.NoError(t, err)
	assert.Empty(t, orphans)
}

func TestPruneInvalidArgument(t *testing.T) {
	c := newTestCLI(t, Option{}, true)
	assert.ErrorIs(t, c.Prune([]string{""}), ErrInvalidArgument)
	assert.Error(t, c.Prune([]string{"soon"}))
}

func TestAskWithoutTerminal(t *testing.T) {
	c := newTestCLI(t, Option{}, true)
	c.confirm = func(string, bool) (bool, error) { return false, prompt.ErrNotTerminal }

	_, err := c.ask("sure?", false)
	assert.ErrorIs(t, err, prompt.ErrNotTerminal)

	c.option.Rm.Force = true
	ok, err := c.ask("sure?", false)
	require.NoError(t, err)
	assert.True(t, ok)
}
