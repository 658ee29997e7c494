// Package trash moves files and directories to the trash of the operating
// system, lists what the trash holds, and purges or restores its items.
//
// On Windows the Recycle Bin is driven through the shell. On macOS files are
// trashed by Finder, which cannot enumerate its trash. Other systems use the
// freedesktop.org Trash specification.
package trash

import (
	"log/slog"
	"sync"

	"github.com/babarot/trash/internal/trash/core"
)

// Item is one entry of the trash. Items are only created by List.
type Item = core.Item

// Config configures a Trash
type Config = core.Config

// Storage is a trash backend
type Storage = core.Storage

// StorageInfo describes a trash backend
type StorageInfo = core.StorageInfo

// NewDefaultConfig returns the configuration used by the package level functions
func NewDefaultConfig() *Config {
	return core.NewDefaultConfig()
}

// Trash is a handle on the trash of the current platform. It holds no
// mutable state and is safe for concurrent use.
type Trash struct {
	storage Storage
}

// New creates a Trash. A nil cfg means NewDefaultConfig.
func New(cfg *Config) (*Trash, error) {
	if cfg == nil {
		cfg = NewDefaultConfig()
	}
	storage, err := newStorage(*cfg)
	if err != nil {
		return nil, err
	}
	slog.Debug("trash storage ready", "type", storage.Info().Type)
	return &Trash{storage: storage}, nil
}

// Info describes the backend of t
func (t *Trash) Info() *StorageInfo {
	return t.storage.Info()
}

// Remove moves path to the trash
func (t *Trash) Remove(path string) error {
	return t.RemoveAll([]string{path})
}

// RemoveAll moves every path to the trash. Whether a failure leaves earlier
// paths trashed depends on the platform: the Windows shell runs all of them
// as one operation, other backends process them in order.
func (t *Trash) RemoveAll(paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	return t.storage.RemoveAll(paths)
}

// List returns every item in the trash, in no particular order
func (t *Trash) List() ([]Item, error) {
	return t.storage.List()
}

// PurgeAll permanently deletes items. The items must not be used after the call.
func (t *Trash) PurgeAll(items []Item) error {
	if len(items) == 0 {
		return nil
	}
	return t.storage.PurgeAll(items)
}

// RestoreAll moves items back to their original location. The items must
// not be used after the call.
//
// Nothing is restored when two items share an original path: the call fails
// with RestoreTwins carrying the whole batch. When a destination is occupied
// the call fails with RestoreCollision whose RemainingItems holds every item
// that was not restored. The XDG store restores items in order, so those are
// the colliding item and every item after it. The Windows store checks all
// destinations before moving anything, so it returns the whole batch.
func (t *Trash) RestoreAll(items []Item) error {
	if len(items) == 0 {
		return nil
	}
	if err := core.CheckTwins(items); err != nil {
		return err
	}
	return t.storage.RestoreAll(items)
}

// orphanLister is implemented by backends that can find records whose data
// is gone
type orphanLister interface {
	Orphans() ([]Item, error)
}

// Orphans returns the records left without data, which List hides. They can
// be passed to PurgeAll. Backends without such records return nothing.
func (t *Trash) Orphans() ([]Item, error) {
	if o, ok := t.storage.(orphanLister); ok {
		return o.Orphans()
	}
	return nil, nil
}

var defaultTrash = sync.OnceValues(func() (*Trash, error) {
	return New(nil)
})

// Remove moves path to the trash
func Remove(path string) error {
	t, err := defaultTrash()
	if err != nil {
		return err
	}
	return t.Remove(path)
}

// RemoveAll moves every path to the trash
func RemoveAll(paths []string) error {
	t, err := defaultTrash()
	if err != nil {
		return err
	}
	return t.RemoveAll(paths)
}

// List returns every item in the trash
func List() ([]Item, error) {
	t, err := defaultTrash()
	if err != nil {
		return nil, err
	}
	return t.List()
}

// PurgeAll permanently deletes items. The items must not be used after the call.
func PurgeAll(items []Item) error {
	t, err := defaultTrash()
	if err != nil {
		return err
	}
	return t.PurgeAll(items)
}

// RestoreAll moves items back to their original location. The items must
// not be used after the call.
func RestoreAll(items []Item) error {
	t, err := defaultTrash()
	if err != nil {
		return err
	}
	return t.RestoreAll(items)
}
