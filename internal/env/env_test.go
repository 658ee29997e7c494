package env

import (
	"path/filepath"
	"testing"
)

func TestResolve(t *testing.T) {
	t.Run("override wins", func(t *testing.T) {
		t.Setenv("TRASH_TEST_PATH", "/custom/config.yaml")
		t.Setenv("XDG_CONFIG_HOME", "/xdg")
		got := resolve("TRASH_TEST_PATH", "XDG_CONFIG_HOME", defaultXDGConfigDirname, "config.yaml")
		if got != "/custom/config.yaml" {
			t.Errorf("resolve() = %q", got)
		}
	})

	t.Run("xdg base dir", func(t *testing.T) {
		t.Setenv("TRASH_TEST_PATH", "")
		t.Setenv("XDG_DATA_HOME", "/xdg/data")
		got := resolve("TRASH_TEST_PATH", "XDG_DATA_HOME", defaultXDGDataDirname, "debug.log")
		if want := filepath.Join("/xdg/data", "trash", "debug.log"); got != want {
			t.Errorf("resolve() = %q, want %q", got, want)
		}
	})

	t.Run("home fallback", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("USERPROFILE", home)
		t.Setenv("TRASH_TEST_PATH", "")
		t.Setenv("XDG_CONFIG_HOME", "")
		got := resolve("TRASH_TEST_PATH", "XDG_CONFIG_HOME", defaultXDGConfigDirname, "config.yaml")
		if want := filepath.Join(home, ".config", "trash", "config.yaml"); got != want {
			t.Errorf("resolve() = %q, want %q", got, want)
		}
	})
}
