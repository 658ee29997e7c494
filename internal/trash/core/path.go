package core

import (
	"os"
	"path/filepath"
)

// Canonicalize resolves path to an absolute path with its parent directory
// free of symlinks. The last element is kept as is so that a symlink is
// trashed itself rather than its target. The path must exist.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", NewError(CanonicalizePath{Original: path}, err)
	}
	if _, err := os.Lstat(abs); err != nil {
		return "", NewError(CanonicalizePath{Original: path}, err)
	}

	parent, base := filepath.Split(abs)
	if base == "" {
		// abs is a root (e.g. "/")
		return abs, nil
	}
	realParent, err := filepath.EvalSymlinks(parent)
	if err != nil {
		return "", NewError(CanonicalizePath{Original: path}, err)
	}
	return filepath.Join(realParent, base), nil
}

// CanonicalizeAll canonicalizes every path and stops at the first failure
func CanonicalizeAll(paths []string) ([]string, error) {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		c, err := Canonicalize(p)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
