package log

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(UseOutput(&buf), UseLevel(DebugLevel), UseFormatter(LogfmtFormatter), UseFields("run_id", "abc"))

	logger.Debug("trashed", "path", "/tmp/a")

	out := buf.String()
	assert.Contains(t, out, "trashed")
	assert.Contains(t, out, "path=/tmp/a")
	assert.Contains(t, out, "run_id=abc")
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(UseOutput(&buf), UseLevel(WarnLevel))

	logger.Info("hidden")
	assert.Empty(t, buf.String())
}

func TestParseLevel(t *testing.T) {
	for name, want := range map[string]Level{
		"debug": DebugLevel,
		"info":  InfoLevel,
		"warn":  WarnLevel,
		"error": ErrorLevel,
	} {
		got, err := ParseLevel(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func backups(t *testing.T, path string) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), filepath.Base(path)+".") {
			names = append(names, e.Name())
		}
	}
	return names
}

func TestRotateWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "debug.log")
	w, err := NewRotateWriter(path, "10B", 2)
	require.NoError(t, err)
	defer w.Close()

	for range 5 {
		_, err := w.Write([]byte("12345678\n"))
		require.NoError(t, err)
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "12345678\n", string(data))
	assert.Len(t, backups(t, path), 2)
}

func TestRotateWriterAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0644))

	w, err := NewRotateWriter(path, "1MB", 3)
	require.NoError(t, err)
	_, err = w.Write([]byte("new\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old\nnew\n", string(data))
	assert.Empty(t, backups(t, path))
}

func TestRotateWriterInvalidSize(t *testing.T) {
	_, err := NewRotateWriter(filepath.Join(t.TempDir(), "debug.log"), "huge", 1)
	assert.Error(t, err)
}
