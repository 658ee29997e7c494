package shell

import (
	"os"

	"github.com/babarot/trash/internal/fs"
	"github.com/babarot/trash/internal/trash/core"
)

// checkDestinations fails with RestoreCollision on the first item whose
// original path is occupied. It runs before any move, so the error carries
// the whole batch: none of it has been restored.
func checkDestinations(items []core.Item) error {
	for _, item := range items {
		if dst := item.OriginalPath(); fs.Exists(dst) {
			return core.KindOnly(core.RestoreCollision{
				Path:           dst,
				RemainingItems: core.Remaining(items, 0),
			})
		}
	}
	return nil
}

// createParents makes the original parent directory of every item
func createParents(items []core.Item) error {
	for _, item := range items {
		if err := os.MkdirAll(item.OriginalParent, 0755); err != nil {
			return core.NewFilesystemError(item.OriginalParent, err)
		}
	}
	return nil
}
