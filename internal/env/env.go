package env

import (
	"os"
	"path/filepath"
)

const (
	appName = "trash"

	defaultXDGConfigDirname = ".config"
	defaultXDGDataDirname   = ".local/share"
)

var (
	// TRASH_CONFIG_PATH is the config file, $XDG_CONFIG_HOME/trash/config.yaml
	// unless the variable of the same name is set
	TRASH_CONFIG_PATH string

	// TRASH_LOG_PATH is the debug log, $XDG_DATA_HOME/trash/debug.log unless
	// the variable of the same name is set
	TRASH_LOG_PATH string
)

func init() {
	// https://github.com/charmbracelet/log/issues/35
	os.Setenv("CLICOLOR_FORCE", "1")

	TRASH_CONFIG_PATH = resolve("TRASH_CONFIG_PATH", "XDG_CONFIG_HOME", defaultXDGConfigDirname, "config.yaml")
	TRASH_LOG_PATH = resolve("TRASH_LOG_PATH", "XDG_DATA_HOME", defaultXDGDataDirname, "debug.log")
}

// resolve follows https://specifications.freedesktop.org/basedir-spec/latest/
func resolve(override, xdgVar, fallback, file string) string {
	if e := os.Getenv(override); e != "" {
		return e
	}
	dir := os.Getenv(xdgVar)
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			panic(err)
		}
		dir = filepath.Join(homeDir, fallback)
	}
	return filepath.Join(dir, appName, file)
}
