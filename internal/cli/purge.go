package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/babarot/trash"
	"github.com/babarot/trash/internal/duration"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/samber/lo"
)

var ErrInvalidArgument = errors.New("prune requires an argument (e.g., 30d or orphans)")

// Purge permanently deletes the selected items, every item when nothing
// narrows the selection
func (c CLI) Purge(patterns []string) error {
	slog.Debug("cli.purge started")
	defer slog.Debug("cli.purge finished")

	items, err := c.selectItems(patterns)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(c.stdout, "No items to purge.")
		return nil
	}

	renderItems(c.stdout, items)
	everything := len(c.option.Match) == 0 && len(patterns) == 0 && c.option.Within == ""
	question := fmt.Sprintf("Permanently delete %d item(s)?", len(items))
	if everything {
		question = fmt.Sprintf("Permanently delete ALL %d item(s) in the trash?", len(items))
	}
	return c.purgeItems(items, question, everything)
}

// Prune handles --prune. Each argument is a duration or "orphans"; with
// several durations the shortest one wins.
func (c CLI) Prune(args []string) error {
	slog.Debug("pruning trash contents started")
	defer slog.Debug("pruning trash contents finished")

	var (
		durations []time.Duration
		orphans   bool
	)
	for _, arg := range args {
		switch arg {
		case "":
			return ErrInvalidArgument
		case "orphans":
			orphans = true
		default:
			d, err := duration.Parse(arg)
			if err != nil {
				return fmt.Errorf("unknown prune argument %q: %w", arg, err)
			}
			slog.Debug("parse duration", "duration", d, "arg", arg)
			durations = append(durations, d)
		}
	}

	if orphans {
		if err := c.pruneOrphans(); err != nil {
			return err
		}
	}
	if len(durations) > 0 {
		return c.pruneOlderThan(lo.Min(durations))
	}
	return nil
}

func (c CLI) pruneOlderThan(d time.Duration) error {
	items, err := c.trash.List()
	if err != nil {
		return fmt.Errorf("failed to list trash: %w", err)
	}
	items = olderThan(items, d, c.now())
	if len(items) == 0 {
		fmt.Fprintf(c.stdout, "No items trashed more than %s ago.\n", d)
		return nil
	}

	sortNewestFirst(items)
	renderItems(c.stdout, items)
	question := fmt.Sprintf("Permanently delete %d item(s) trashed more than %s ago?", len(items), d)
	return c.purgeItems(items, question, false)
}

// pruneOrphans purges records whose data is gone
func (c CLI) pruneOrphans() error {
	orphans, err := c.trash.Orphans()
	if err != nil {
		return fmt.Errorf("failed to find orphaned records: %w", err)
	}
	if len(orphans) == 0 {
		fmt.Fprintln(c.stdout, "No orphaned metadata files found.")
		return nil
	}

	printOrphans(c.stdout, orphans)
	question := fmt.Sprintf("Are you sure you want to remove %d orphaned metadata files?", len(orphans))
	return c.purgeItems(orphans, question, false)
}

func (c CLI) purgeItems(items []trash.Item, question string, strict bool) error {
	ok, err := c.ask(question, strict)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(c.stdout, "Purge canceled.")
		return nil
	}

	if err := c.trash.PurgeAll(items); err != nil {
		return fmt.Errorf("failed to purge: %w", err)
	}
	fmt.Fprintf(c.stdout, "Successfully purged %d item(s).\n", len(items))
	return nil
}

func printOrphans(w io.Writer, items []trash.Item) {
	green := color.New(color.FgHiGreen).SprintfFunc()
	white := color.New(color.FgWhite).SprintfFunc()

	fmt.Fprintf(w, "%s %s\n",
		green("%-20s", "Deleted"),
		green("%-30s", "Original Path"),
	)
	for _, item := range items {
		fmt.Fprintf(w, "%s %s\n",
			white("%-20s", humanize.Time(item.DeletedAt())),
			white("%-30s", item.OriginalPath()),
		)
	}
	fmt.Fprintln(w)
}
