package core

import (
	"path/filepath"
	"time"
)

// Item represents a single entry in a trash store
type Item struct {
	// ID is the backend specific identifier of the item.
	//
	// On Windows it is the parsing name of the item inside the Recycle Bin.
	// With the XDG storage it is the absolute path of the .trashinfo file.
	ID string

	// Name is the base name the item had before it was trashed
	Name string

	// OriginalParent is the directory that contained the item before deletion
	OriginalParent string

	// TimeDeleted is when the item was trashed, in Unix epoch seconds
	TimeDeleted int64
}

// OriginalPath joins OriginalParent and Name. The result is a reconstruction
// and may no longer be a valid destination.
func (i Item) OriginalPath() string {
	return filepath.Join(i.OriginalParent, i.Name)
}

// Equal reports whether both items refer to the same trash record.
// Only the ID is compared.
func (i Item) Equal(other Item) bool {
	return i.ID == other.ID
}

// DeletedAt returns TimeDeleted as a time.Time
func (i Item) DeletedAt() time.Time {
	return time.Unix(i.TimeDeleted, 0)
}

// GetName, GetPath and GetDeletedAt let items be filtered by the CLI
// (cli.Filterable).

// GetName returns Name
func (i Item) GetName() string { return i.Name }

// GetPath returns OriginalPath
func (i Item) GetPath() string { return i.OriginalPath() }

// GetDeletedAt returns DeletedAt
func (i Item) GetDeletedAt() time.Time { return i.DeletedAt() }

// cloneItems returns a copy of items that does not share the backing array
func cloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
