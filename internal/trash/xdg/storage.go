//go:build !windows

// Package xdg implements the freedesktop.org Trash specification 1.0
package xdg

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/babarot/trash/internal/fs"
	"github.com/babarot/trash/internal/trash/core"
	"golang.org/x/sync/errgroup"
)

// Storage implements the core.Storage interface for XDG trash specification
type Storage struct {
	// Home trash location (~/.local/share/Trash)
	homeTrash *trashLocation

	uid    int
	config core.Config
	now    func() time.Time
}

// trashLocation represents a single trash directory
type trashLocation struct {
	// Root directory (e.g., ~/.local/share/Trash or /media/disk/.Trash-1000)
	root string

	// Files directory (root/files)
	filesDir string

	// Info directory (root/info)
	infoDir string

	// topdir of the mount holding an external trash; empty for the home trash
	topdir string
}

func newLocation(root, topdir string) *trashLocation {
	return &trashLocation{
		root:     root,
		filesDir: filepath.Join(root, "files"),
		infoDir:  filepath.Join(root, "info"),
		topdir:   topdir,
	}
}

func (l *trashLocation) isHome() bool {
	return l.topdir == ""
}

// NewStorage creates a new XDG-compliant trash storage. No directory is
// created until something is trashed.
func NewStorage(cfg core.Config) (*Storage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	root := cfg.HomeTrashDir
	if root == "" {
		dataDir := os.Getenv("XDG_DATA_HOME")
		if dataDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("failed to get home directory: %w", err)
			}
			dataDir = filepath.Join(home, ".local", "share")
		}
		root = filepath.Join(dataDir, "Trash")
	}
	slog.Debug("initialize xdg storage", "root", root)

	return &Storage{
		homeTrash: newLocation(root, ""),
		uid:       os.Getuid(),
		config:    cfg,
		now:       time.Now,
	}, nil
}

func (s *Storage) Info() *core.StorageInfo {
	return &core.StorageInfo{
		Location:   core.LocationHome,
		Root:       s.homeTrash.root,
		Available:  true,
		Enumerable: true,
		Type:       core.StorageTypeXDG,
	}
}

// RemoveAll moves every path to the trash directory of its device. Paths are
// processed in order; paths trashed before a failure stay trashed.
func (s *Storage) RemoveAll(paths []string) error {
	canonical, err := core.CanonicalizeAll(paths)
	if err != nil {
		return err
	}
	for _, path := range canonical {
		if err := s.put(path); err != nil {
			return err
		}
	}
	return nil
}

func (s *Storage) put(path string) error {
	loc, err := s.selectTrashLocation(path)
	if err != nil {
		return core.NewFilesystemError(path, err)
	}

	rec := &Record{
		Path:         path,
		DeletionDate: s.now(),
		Topdir:       loc.topdir,
	}

	// Write the .trashinfo first; its O_EXCL creation reserves the name
	baseName := filepath.Base(path)
	trashName := baseName
	var infoPath string
	for counter := 2; ; counter++ {
		infoPath = filepath.Join(loc.infoDir, trashName+trashInfoExt)
		if !fs.Exists(filepath.Join(loc.filesDir, trashName)) {
			err := rec.Save(infoPath)
			if err == nil {
				break
			}
			if !errors.Is(err, os.ErrExist) {
				return core.NewFilesystemError(infoPath, err)
			}
		}
		trashName = fmt.Sprintf("%s_%d", baseName, counter)
	}

	dst := filepath.Join(loc.filesDir, trashName)
	err = fs.Move(path, dst, fs.MoveOptions{
		AllowCrossDev: loc.isHome() && s.config.EnableHomeFallback,
	})
	if err != nil {
		// If move fails, clean up the .trashinfo file
		os.Remove(infoPath)
		return core.NewFilesystemError(path, err)
	}

	slog.Debug("moved to trash", "path", path, "trash", dst)
	return nil
}

// List returns the items of the home trash and of every $topdir trash,
// reading the trash directories concurrently. Records without a matching
// entry in files/ are skipped.
func (s *Storage) List() ([]core.Item, error) {
	locs := append([]*trashLocation{s.homeTrash}, s.externalTrashes()...)
	results := make([][]core.Item, len(locs))

	var g errgroup.Group
	for i, loc := range locs {
		g.Go(func() error {
			items, err := s.listLocation(loc)
			if err != nil {
				if loc.isHome() {
					return err
				}
				// home trash is still usable
				slog.Warn("failed to list external trash", "root", loc.root, "error", err)
				return nil
			}
			results[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return slices.Concat(results...), nil
}

// Orphans returns the records in info/ that have no entry in files/.
// Purging them removes the stale records.
func (s *Storage) Orphans() ([]core.Item, error) {
	var orphans []core.Item
	for _, loc := range append([]*trashLocation{s.homeTrash}, s.externalTrashes()...) {
		err := s.walkInfo(loc, func(item core.Item, dataPath string) error {
			if !fs.Exists(dataPath) {
				orphans = append(orphans, item)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return orphans, nil
}

// PurgeAll deletes the data and the record of every item in order. It stops
// at the first failure; items before it are already gone.
func (s *Storage) PurgeAll(items []core.Item) error {
	for _, item := range items {
		dataPath, err := dataPathOf(item)
		if err != nil {
			return err
		}
		if err := fs.RemoveAll(dataPath); err != nil {
			return core.NewFilesystemError(dataPath, err)
		}
		if err := os.Remove(item.ID); err != nil && !os.IsNotExist(err) {
			return core.NewFilesystemError(item.ID, err)
		}
		slog.Debug("purged", "name", item.Name, "trash", dataPath)
	}
	return nil
}

// RestoreAll moves every item back to its original path.
//
// The existence check and the move are not atomic. A file created at the
// destination by another process between the two may be overwritten, and a
// directory created there makes the move fail with a Filesystem error.
func (s *Storage) RestoreAll(items []core.Item) error {
	for i, item := range items {
		dst := item.OriginalPath()
		if fs.Exists(dst) {
			return core.KindOnly(core.RestoreCollision{
				Path:           dst,
				RemainingItems: core.Remaining(items, i),
			})
		}

		dataPath, err := dataPathOf(item)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(item.OriginalParent, 0755); err != nil {
			return core.NewFilesystemError(item.OriginalParent, err)
		}

		err = fs.Move(dataPath, dst, fs.MoveOptions{AllowCrossDev: true})
		if fs.IsDestinationExists(err) {
			return core.NewError(core.RestoreCollision{
				Path:           dst,
				RemainingItems: core.Remaining(items, i),
			}, err)
		}
		if err != nil {
			return core.NewFilesystemError(dst, err)
		}

		if err := os.Remove(item.ID); err != nil && !os.IsNotExist(err) {
			return core.NewFilesystemError(item.ID, err)
		}
		slog.Debug("restored", "name", item.Name, "path", dst)
	}
	return nil
}

// dataPathOf maps the .trashinfo path stored in the item ID to the
// matching entry in files/
func dataPathOf(item core.Item) (string, error) {
	infoDir, infoName := filepath.Split(item.ID)
	if !filepath.IsAbs(item.ID) ||
		filepath.Base(infoDir) != "info" ||
		!strings.HasSuffix(infoName, trashInfoExt) {
		return "", core.NewFilesystemError(item.ID, fmt.Errorf("%w: not a trash info path", core.ErrInvalidTrashInfo))
	}
	root := filepath.Dir(filepath.Clean(infoDir))
	return filepath.Join(root, "files", strings.TrimSuffix(infoName, trashInfoExt)), nil
}

// listLocation returns the items of loc. Names are kept as raw bytes, so a
// file name that is not valid UTF-8 lists and restores like any other.
func (s *Storage) listLocation(loc *trashLocation) ([]core.Item, error) {
	var items []core.Item
	err := s.walkInfo(loc, func(item core.Item, dataPath string) error {
		if !fs.Exists(dataPath) {
			slog.Debug("skipping orphaned trash info", "info", item.ID)
			return nil
		}
		items = append(items, item)
		return nil
	})
	return items, err
}

// walkInfo parses every .trashinfo file of loc and calls fn with the item
// and the path of its data entry. Unparsable records are skipped.
func (s *Storage) walkInfo(loc *trashLocation, fn func(core.Item, string) error) error {
	entries, err := os.ReadDir(loc.infoDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return core.NewFilesystemError(loc.infoDir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, trashInfoExt) {
			continue
		}
		if strings.HasPrefix(name, "._") {
			// exclude mac resource fork
			continue
		}

		infoPath := filepath.Join(loc.infoDir, name)
		rec, err := readRecord(infoPath, loc.topdir)
		if err != nil {
			slog.Debug("skipping unreadable trash info", "info", infoPath, "error", err)
			continue
		}

		original := rec.OriginalPath()
		item := core.Item{
			ID:             infoPath,
			Name:           filepath.Base(original),
			OriginalParent: filepath.Dir(original),
			TimeDeleted:    rec.DeletionDate.Unix(),
		}
		dataPath := filepath.Join(loc.filesDir, strings.TrimSuffix(name, trashInfoExt))
		if err := fn(item, dataPath); err != nil {
			return err
		}
	}
	return nil
}

// externalTrashes returns the existing trash directories on every mount point
func (s *Storage) externalTrashes() []*trashLocation {
	if s.config.SkipMountPointFind {
		return nil
	}

	mounts, err := getMountPoints()
	if err != nil {
		slog.Warn("failed to scan external trashes", "error", err)
		return nil
	}

	home := filepath.Clean(s.homeTrash.root)
	var locs []*trashLocation
	for _, topdir := range mounts {
		shared, private := topdirTrashes(topdir, s.uid)
		if isValidSharedTrash(topdir) && isValidTrashDir(shared) && shared != home {
			locs = append(locs, newLocation(shared, topdir))
		}
		if isValidTrashDir(private) && private != home {
			locs = append(locs, newLocation(private, topdir))
		}
	}
	return locs
}

func (s *Storage) selectTrashLocation(path string) (*trashLocation, error) {
	if err := createTrashDir(s.homeTrash.root); err != nil {
		return nil, err
	}

	if s.config.ForceHomeTrash {
		return s.homeTrash, nil
	}

	// Check if file is on the same device as home trash
	sameDevice, err := fs.SameDevice(path, s.homeTrash.root)
	if err == nil && sameDevice {
		return s.homeTrash, nil
	}

	if !s.config.SkipMountPointFind {
		loc, err := s.topdirTrash(path)
		if err == nil {
			return loc, nil
		}
		slog.Debug("no usable topdir trash", "path", path, "error", err)
	}

	if s.config.EnableHomeFallback {
		return s.homeTrash, nil
	}

	return nil, core.ErrCrossDevice
}

// topdirTrash picks $topdir/.Trash/$uid when the shared trash is valid and
// falls back to $topdir/.Trash-$uid, creating either on demand
func (s *Storage) topdirTrash(path string) (*trashLocation, error) {
	topdir, err := getMountPoint(path)
	if err != nil {
		return nil, err
	}
	shared, private := topdirTrashes(topdir, s.uid)

	if isValidSharedTrash(topdir) {
		err := createTrashDir(shared)
		if err == nil {
			return newLocation(shared, topdir), nil
		}
		slog.Debug("cannot use shared trash", "path", shared, "error", err)
	}

	if err := createTrashDir(private); err != nil {
		return nil, err
	}
	if !isValidTrashDir(private) {
		return nil, fmt.Errorf("invalid trash directory: %s", private)
	}
	return newLocation(private, topdir), nil
}
