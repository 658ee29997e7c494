package fs

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	cp "github.com/otiai10/copy"
)

// MoveOptions specifies options for move operations
type MoveOptions struct {
	AllowCrossDev bool // Fall back to copy and delete across devices
	Force         bool // Overwrite an existing destination
}

// CreateExclusive creates a new file with O_EXCL flag to ensure atomic creation.
// Returns error if the file already exists.
func CreateExclusive(path string, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
}

// Exists reports whether anything, including a dangling symlink, is at path
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// Move moves a file or directory from src to dst. The parent of dst must
// exist. When src and dst are on different devices and AllowCrossDev is
// set, src is copied next to dst under a temporary name, renamed into
// place and then removed.
func Move(src, dst string, opts MoveOptions) error {
	if src == "" || dst == "" {
		return ErrInvalidPath
	}
	if _, err := os.Lstat(src); err != nil {
		if os.IsNotExist(err) {
			return moveError("stat", src, dst, ErrSourceNotFound)
		}
		return moveError("stat", src, dst, err)
	}

	if !opts.Force && Exists(dst) {
		return moveError("check", src, dst, ErrDestinationExists)
	}

	renameErr := os.Rename(src, dst)
	if renameErr == nil {
		return nil
	}

	sameDevice, err := isSamePartition(src, dst)
	if err != nil {
		slog.Debug("could not compare partitions", "src", src, "dst", dst, "error", err)
	}
	if sameDevice {
		return moveError("rename", src, dst, renameErr)
	}
	if !opts.AllowCrossDev {
		return moveError("rename", src, dst, ErrCrossDeviceMove)
	}

	slog.Debug("rename failed, falling back to copy", "src", src, "dst", dst, "error", renameErr)
	return copyAndDelete(src, dst)
}

// copyAndDelete copies src to a temporary sibling of dst, renames it into
// place and removes src
func copyAndDelete(src, dst string) error {
	tmp := filepath.Join(filepath.Dir(dst), fmt.Sprintf(".%s.%s.tmp", filepath.Base(dst), uuid.New().String()))

	opts := cp.Options{
		OnSymlink: func(string) cp.SymlinkAction {
			return cp.Shallow // trash the link, not its target
		},
		PreserveTimes: true,
		Sync:          true,
	}
	if err := cp.Copy(src, tmp, opts); err != nil {
		_ = os.RemoveAll(tmp)
		return moveError("copy", src, dst, err)
	}

	if err := os.Rename(tmp, dst); err != nil {
		_ = os.RemoveAll(tmp)
		return moveError("commit", src, dst, err)
	}

	if err := os.RemoveAll(src); err != nil {
		// Try to clean up destination on failure
		if rmErr := os.RemoveAll(dst); rmErr != nil {
			return moveError("cleanup", src, dst,
				fmt.Errorf("failed to remove both source and destination: %v, %v", err, rmErr))
		}
		return moveError("remove_source", src, dst, err)
	}

	return nil
}

// RemoveAll removes path and any children it contains. Directories without
// write permission are made writable and the removal is retried once.
func RemoveAll(path string) error {
	err := os.RemoveAll(path)
	if err == nil || !os.IsPermission(err) {
		return err
	}

	slog.Debug("retrying removal after fixing permissions", "path", path, "error", err)
	_ = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err == nil && d.IsDir() {
			_ = os.Chmod(p, 0700)
		}
		return nil
	})
	return os.RemoveAll(path)
}
