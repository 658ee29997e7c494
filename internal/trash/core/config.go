package core

import (
	"fmt"
	"path/filepath"
)

// Config holds the configuration shared by all trash storages
type Config struct {
	// HomeTrashDir overrides the home trash location.
	// Defaults to $XDG_DATA_HOME/Trash.
	HomeTrashDir string

	// EnableHomeFallback moves files into the home trash, copying across
	// devices, when no trash directory can be used on the file's device
	EnableHomeFallback bool

	// ForceHomeTrash uses the home trash even for files on other devices
	ForceHomeTrash bool

	// SkipMountPointFind disables the scan for $topdir trash directories
	SkipMountPointFind bool
}

// NewDefaultConfig creates a new Config with default values
func NewDefaultConfig() *Config {
	return &Config{
		EnableHomeFallback: true,
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.HomeTrashDir != "" {
		if !filepath.IsAbs(c.HomeTrashDir) {
			return fmt.Errorf("home trash directory must be an absolute path: %s", c.HomeTrashDir)
		}
	}
	return nil
}
