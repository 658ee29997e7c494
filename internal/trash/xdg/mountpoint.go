//go:build !windows

package xdg

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/moby/sys/mountinfo"
	"github.com/samber/lo"
)

// pseudoFS lists kernel filesystems that never hold user files
var pseudoFS = []string{
	"autofs", "binfmt_misc", "bpf", "cgroup", "cgroup2", "configfs",
	"debugfs", "devpts", "devtmpfs", "efivarfs", "fusectl", "hugetlbfs",
	"mqueue", "nsfs", "proc", "pstore", "securityfs", "sysfs", "tracefs",
}

// getMounts is replaced in tests
var getMounts = mountinfo.GetMounts

func writableRealFS(m *mountinfo.Info) (skip, stop bool) {
	if slices.Contains(pseudoFS, m.FSType) {
		return true, false
	}
	if slices.Contains(strings.Split(m.Options, ","), "ro") {
		slog.Debug("skip read-only mount", "mountpoint", m.Mountpoint)
		return true, false
	}
	return false, false
}

// getMountPoints returns every mount point that may carry a topdir trash.
// "/" is always part of the result.
func getMountPoints() ([]string, error) {
	mounts, err := getMounts(writableRealFS)
	if err != nil {
		return nil, fmt.Errorf("read mountinfo: %w", err)
	}
	points := lo.Map(mounts, func(m *mountinfo.Info, _ int) string {
		return m.Mountpoint
	})
	return lo.Uniq(append(points, "/")), nil
}

// getMountPoint returns the topdir of the filesystem holding path
func getMountPoint(path string) (string, error) {
	mounts, err := getMounts(mountinfo.ParentsFilter(path))
	if err != nil {
		return "", fmt.Errorf("read mountinfo: %w", err)
	}
	topdir := "/"
	for _, m := range mounts {
		// ParentsFilter is a plain prefix match, so /mnt/a also passes for /mnt/ab
		if len(m.Mountpoint) > len(topdir) && isWithin(path, m.Mountpoint) {
			topdir = m.Mountpoint
		}
	}
	slog.Debug("resolved topdir", "path", path, "topdir", topdir)
	return topdir, nil
}

// isWithin reports whether path is dir or below it
func isWithin(path, dir string) bool {
	if dir == "/" || path == dir {
		return true
	}
	rel, ok := strings.CutPrefix(path, strings.TrimSuffix(dir, "/"))
	return ok && strings.HasPrefix(rel, "/")
}

// topdirTrashes returns $topdir/.Trash/$uid and $topdir/.Trash-$uid
func topdirTrashes(topdir string, uid int) (shared, private string) {
	id := strconv.Itoa(uid)
	return filepath.Join(topdir, ".Trash", id), filepath.Join(topdir, ".Trash-"+id)
}

// isValidSharedTrash reports whether $topdir/.Trash may be used: an
// administrator-created directory, not a symlink, with the sticky bit set.
func isValidSharedTrash(topdir string) bool {
	dir := filepath.Join(topdir, ".Trash")
	fi, err := os.Lstat(dir)
	switch {
	case err != nil:
		return false
	case fi.Mode()&os.ModeSymlink != 0:
		slog.Warn("shared trash is a symlink, ignored", "path", dir)
		return false
	case !fi.IsDir():
		slog.Debug("shared trash is not a directory, ignored", "path", dir)
		return false
	case fi.Mode()&os.ModeSticky == 0:
		slog.Warn("shared trash has no sticky bit, ignored", "path", dir)
		return false
	}
	return true
}

func isValidTrashDir(path string) bool {
	fi, err := os.Lstat(path)
	return err == nil && fi.Mode().IsDir()
}

// createTrashDir makes root with its files and info subdirectories, mode 0700
func createTrashDir(root string) error {
	for _, sub := range []string{"files", "info"} {
		if err := os.MkdirAll(filepath.Join(root, sub), 0700); err != nil {
			return fmt.Errorf("create trash directory: %w", err)
		}
	}
	slog.Debug("trash directory ready", "path", root)
	return nil
}
