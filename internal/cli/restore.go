package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/babarot/trash"
	"github.com/babarot/trash/internal/log"
	"github.com/samber/lo"
)

// Restore moves the selected items back. Without --match or patterns only
// the most recently trashed item is restored. When several selected items
// share an original path only the newest of them is restored.
func (c CLI) Restore(patterns []string) error {
	slog.Debug("cli.restore started")
	defer slog.Debug("cli.restore finished")

	items, err := c.selectItems(patterns)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return errors.New("no items match the filter criteria")
	}
	if len(c.option.Match) == 0 && len(patterns) == 0 {
		items = items[:1]
	}

	// items are sorted newest first, so UniqBy keeps the newest twin
	unique := lo.UniqBy(items, trash.Item.OriginalPath)
	if skipped := len(items) - len(unique); skipped > 0 {
		slog.Info("skipping older items sharing an original path", "count", skipped)
		fmt.Fprintf(c.stdout, "%d older item(s) with the same original path left in the trash\n", skipped)
	}

	if err := c.trash.RestoreAll(unique); err != nil {
		return restoreError(err)
	}

	if c.config.Core.Restore.Verbose {
		for _, item := range unique {
			fmt.Fprintf(c.stdout, "restored '%s' to %s\n", item.Name, item.OriginalParent)
		}
	}
	return nil
}

func restoreError(err error) error {
	if collision, ok := trash.AsRestoreCollision(err); ok {
		return fmt.Errorf("cannot restore to %s: destination already exists (%d item(s) not restored)",
			log.Highlight(collision.Path), len(collision.RemainingItems))
	}
	if twins, ok := trash.AsRestoreTwins(err); ok {
		return fmt.Errorf("%d selected items were trashed from %s: narrow the selection with --match or --within",
			len(twins.Items), log.Highlight(twins.Path))
	}
	return fmt.Errorf("failed to restore: %w", err)
}
