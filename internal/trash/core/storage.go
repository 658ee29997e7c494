package core

// Storage defines the interface every trash backend implements
type Storage interface {
	// RemoveAll moves the files or directories at paths to the trash.
	// Paths are canonicalized by the storage before use.
	RemoveAll(paths []string) error

	// List returns every item currently in the trash, in no particular order
	List() ([]Item, error)

	// PurgeAll permanently deletes items from the trash.
	// The items must not be used after the call.
	PurgeAll(items []Item) error

	// RestoreAll moves items back to their original location.
	// It stops at the first item whose destination is occupied and reports
	// a RestoreCollision. The items must not be used after the call.
	RestoreAll(items []Item) error

	// Info returns detailed information about the storage
	Info() *StorageInfo
}

// StorageType represents the type of trash storage
type StorageType int

const (
	// StorageTypeXDG represents freedesktop.org trash storage
	StorageTypeXDG StorageType = iota

	// StorageTypeShell represents the Windows Recycle Bin driven through the shell
	StorageTypeShell

	// StorageTypeFinder represents the macOS trash driven through Finder
	StorageTypeFinder
)

func (t StorageType) String() string {
	switch t {
	case StorageTypeXDG:
		return "xdg"
	case StorageTypeShell:
		return "shell"
	case StorageTypeFinder:
		return "finder"
	}
	return "unknown"
}

// StorageLocation represents where the trash storage is located
type StorageLocation int

const (
	LocationHome StorageLocation = iota
	LocationExternal
	LocationSystem
)

// StorageInfo provides information about a trash storage
type StorageInfo struct {
	// Location indicates whether this is a home, external or system storage
	Location StorageLocation

	// Root is the root directory of this storage (e.g., ~/.local/share/Trash).
	// Empty for stores that are not plain directories.
	Root string

	// Available indicates whether this storage is currently available
	Available bool

	// Enumerable reports whether List, PurgeAll and RestoreAll are supported
	Enumerable bool

	Type StorageType
}
