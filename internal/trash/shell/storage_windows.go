//go:build windows

package shell

import (
	"log/slog"

	"github.com/babarot/trash/internal/trash/core"
)

// Storage implements core.Storage on top of the Windows Recycle Bin
type Storage struct {
	config core.Config
}

// NewStorage creates the Recycle Bin storage. Only the shell decides where
// items go, so the directory related options of cfg are ignored.
func NewStorage(cfg core.Config) (*Storage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Storage{config: cfg}, nil
}

func (s *Storage) Info() *core.StorageInfo {
	return &core.StorageInfo{
		Location:   core.LocationSystem,
		Available:  true,
		Enumerable: true,
		Type:       core.StorageTypeShell,
	}
}

// RemoveAll moves paths to the Recycle Bin in one shell operation
func (s *Storage) RemoveAll(paths []string) error {
	canonical, err := core.CanonicalizeAll(paths)
	if err != nil {
		return err
	}

	return withCOM(func() error {
		op, err := newFileOperation(removeOperationFlags)
		if err != nil {
			return err
		}
		defer op.Release()

		for _, path := range canonical {
			if err := registerDelete(op, path); err != nil {
				return err
			}
		}
		if err := op.perform(); err != nil {
			return err
		}
		slog.Debug("moved to recycle bin", "count", len(canonical))
		return nil
	})
}

func registerDelete(op *fileOperation, path string) error {
	item, err := shellItemFromPath(path)
	if err != nil {
		return err
	}
	defer item.Release()
	return op.deleteItem(item)
}

// List enumerates the Recycle Bin
func (s *Storage) List() ([]core.Item, error) {
	var items []core.Item
	err := withCOM(func() error {
		bin, err := bindRecycleBin()
		if err != nil {
			return err
		}
		defer bin.Release()

		enum, err := bin.enumObjects()
		if err != nil || enum == nil {
			return err
		}
		defer enum.Release()

		for {
			pidl, err := enum.next()
			if err != nil {
				return err
			}
			if pidl == nil {
				return nil
			}
			item, err := bin.item(pidl)
			pidl.Release()
			if err != nil {
				return err
			}
			items = append(items, item)
		}
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// PurgeAll permanently deletes items in one shell operation. The items must
// not be used after the call.
func (s *Storage) PurgeAll(items []core.Item) error {
	return withCOM(func() error {
		bin, err := bindRecycleBin()
		if err != nil {
			return err
		}
		defer bin.Release()

		op, err := newFileOperation(purgeOperationFlags)
		if err != nil {
			return err
		}
		defer op.Release()

		for _, item := range items {
			if err := registerPurge(op, bin, item); err != nil {
				return err
			}
		}
		return op.perform()
	})
}

func registerPurge(op *fileOperation, bin *shellFolder, item core.Item) error {
	si, err := bin.shellItemFromID(item.ID)
	if err != nil {
		return err
	}
	defer si.Release()
	return op.deleteItem(si)
}

// RestoreAll moves items back to their original location in one shell
// operation. Every destination is checked before anything is moved: on a
// collision nothing is restored and the error carries the whole batch. The
// check races with other processes; a destination created after it makes
// the shell operation fail. The items must not be used after the call.
func (s *Storage) RestoreAll(items []core.Item) error {
	if err := checkDestinations(items); err != nil {
		return err
	}

	return withCOM(func() error {
		bin, err := bindRecycleBin()
		if err != nil {
			return err
		}
		defer bin.Release()

		op, err := newFileOperation(restoreOperationFlags)
		if err != nil {
			return err
		}
		defer op.Release()

		// resolve everything first so a bad ID leaves no directories behind
		trashed := make([]*shellItem, 0, len(items))
		defer func() {
			for _, si := range trashed {
				si.Release()
			}
		}()
		for _, item := range items {
			si, err := bin.shellItemFromID(item.ID)
			if err != nil {
				return err
			}
			trashed = append(trashed, si)
		}

		if err := createParents(items); err != nil {
			return err
		}
		for i, item := range items {
			if err := registerRestore(op, trashed[i], item); err != nil {
				return err
			}
		}
		return op.perform()
	})
}

func registerRestore(op *fileOperation, si *shellItem, item core.Item) error {
	folder, err := shellItemFromPath(item.OriginalParent)
	if err != nil {
		return err
	}
	defer folder.Release()

	return op.moveItem(si, folder, item.Name)
}
