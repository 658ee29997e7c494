//go:build !windows

package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// isSamePartition checks if src and the parent directory of dst reside on
// the same filesystem partition
func isSamePartition(src, dst string) (bool, error) {
	srcDev, err := deviceOf(src, os.Lstat)
	if err != nil {
		return false, fmt.Errorf("failed to get source file stats: %w", err)
	}
	dstDev, err := deviceOf(filepath.Dir(dst), os.Stat)
	if err != nil {
		return false, fmt.Errorf("failed to get destination parent directory stats: %w", err)
	}
	return srcDev == dstDev, nil
}

// SameDevice reports whether both paths are on the same device. A symlink
// at path1 is not followed.
func SameDevice(path1, path2 string) (bool, error) {
	dev1, err := deviceOf(path1, os.Lstat)
	if err != nil {
		return false, err
	}
	dev2, err := deviceOf(path2, os.Stat)
	if err != nil {
		return false, err
	}
	return dev1 == dev2, nil
}

func deviceOf(path string, stat func(string) (os.FileInfo, error)) (uint64, error) {
	info, err := stat(path)
	if err != nil {
		return 0, err
	}
	sys, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, fmt.Errorf("failed to get system info for %s", path)
	}
	return uint64(sys.Dev), nil
}
