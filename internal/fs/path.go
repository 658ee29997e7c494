package fs

import (
	"path/filepath"
	"strings"
)

// IsUnsafePath checks if the given path is unsafe to remove
func IsUnsafePath(path string) (bool, error) {
	// First check the original path before any normalization
	// This preserves the original input like "." or ".."
	originalBase := filepath.Base(path)
	if originalBase == "." || originalBase == ".." {
		return true, nil
	}

	cleaned := filepath.Clean(path)
	if cleaned == "/" {
		return true, nil
	}

	// Check double slashes and similar patterns
	if strings.HasPrefix(path, "//") {
		return true, nil
	}

	return false, nil
}

// IsProtectedPath reports whether abs is a system directory that must never be trashed
func IsProtectedPath(abs string) bool {
	switch filepath.Clean(abs) {
	case "/", "/home", "/usr", "/etc", "/var", "/tmp":
		return true
	}
	return false
}
