package cli

import (
	"cmp"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/babarot/trash"
	"github.com/babarot/trash/internal/duration"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

const maxPathWidth = 60

func (c CLI) List() error {
	slog.Debug("cli.list started")
	defer slog.Debug("cli.list finished")

	items, err := c.selectItems(nil)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(c.stdout, "The trash is empty.")
		return nil
	}
	renderItems(c.stdout, items)
	return nil
}

// selectItems lists the trash and keeps the items chosen by the config
// filters, --within and the --match globs plus patterns. The newest item
// comes first.
func (c CLI) selectItems(patterns []string) ([]trash.Item, error) {
	items, err := c.trash.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list trash: %w", err)
	}

	opts := FilterOptions{
		Exclude: c.config.List.Exclude,
		Period:  c.config.List.Period,
		Match:   append(slices.Clone(c.option.Match), patterns...),
	}
	if c.option.Within != "" {
		d, err := duration.Parse(c.option.Within)
		if err != nil {
			return nil, fmt.Errorf("invalid --within: %w", err)
		}
		opts.Within = d
	}

	items, err = Filter(items, opts, c.now())
	if err != nil {
		return nil, err
	}
	sortNewestFirst(items)
	slog.Debug("selected items", "count", len(items))
	return items, nil
}

func sortNewestFirst(items []trash.Item) {
	slices.SortStableFunc(items, func(a, b trash.Item) int {
		return cmp.Compare(b.TimeDeleted, a.TimeDeleted)
	})
}

func renderItems(w io.Writer, items []trash.Item) {
	gray := color.New(color.FgHiBlack).SprintFunc()

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Name", "Original Path", "Deleted"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	for _, item := range items {
		table.Append([]string{
			item.Name,
			ansi.Truncate(item.OriginalParent, maxPathWidth, "…"),
			gray(humanize.Time(item.DeletedAt())),
		})
	}
	table.Render()
}
