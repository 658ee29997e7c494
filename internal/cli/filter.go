package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"slices"
	"time"

	"github.com/babarot/trash/internal/config"
	"github.com/gobwas/glob"
	"github.com/k1LoW/duration"
	"github.com/samber/lo"
)

// Filterable defines what an item must expose to be filtered
type Filterable interface {
	// GetName returns the name the item had before it was trashed
	GetName() string
	// GetPath returns the original path of the item
	GetPath() string
	// GetDeletedAt returns when the item was trashed
	GetDeletedAt() time.Time
}

// FilterOptions holds the rules narrowing a listing
type FilterOptions struct {
	// Exclude comes from the config file
	Exclude config.Exclude
	// Period keeps items deleted within that many days, 0 keeps all
	Period int

	// Match keeps items whose name or original path matches one of the globs
	Match []string
	// Within keeps items deleted within the duration, 0 keeps all
	Within time.Duration
}

// Filter applies the filter rules to items, keeping their order
func Filter[T Filterable](items []T, opts FilterOptions, now time.Time) ([]T, error) {
	matchers, err := compileGlobs(opts.Match)
	if err != nil {
		return nil, err
	}

	items = rejectByNames(items, opts.Exclude.Files)
	items = rejectByPatterns(items, opts.Exclude.Patterns)
	items = rejectByGlobs(items, opts.Exclude.Globs)
	items = filterByPeriod(items, opts.Period, now)
	items = filterByMatch(items, matchers)
	items = filterWithin(items, opts.Within, now)
	return items, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, filepath.Separator)
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func rejectByNames[T Filterable](items []T, names []string) []T {
	if len(names) == 0 {
		return items
	}
	return lo.Reject(items, func(item T, _ int) bool {
		return slices.Contains(names, item.GetName())
	})
}

func rejectByPatterns[T Filterable](items []T, patterns []string) []T {
	if len(patterns) == 0 {
		return items
	}
	res := lo.FilterMap(patterns, func(p string, _ int) (*regexp.Regexp, bool) {
		re, err := regexp.Compile(p)
		if err != nil {
			slog.Warn("skipping invalid exclude pattern", "pattern", p, "error", err)
		}
		return re, err == nil
	})
	return lo.Reject(items, func(item T, _ int) bool {
		return lo.SomeBy(res, func(re *regexp.Regexp) bool {
			return re.MatchString(item.GetName())
		})
	})
}

func rejectByGlobs[T Filterable](items []T, patterns []string) []T {
	if len(patterns) == 0 {
		return items
	}
	globs := lo.FilterMap(patterns, func(p string, _ int) (glob.Glob, bool) {
		g, err := glob.Compile(p)
		if err != nil {
			slog.Warn("skipping invalid exclude glob", "glob", p, "error", err)
		}
		return g, err == nil
	})
	return lo.Reject(items, func(item T, _ int) bool {
		return lo.SomeBy(globs, func(g glob.Glob) bool {
			return g.Match(item.GetName())
		})
	})
}

func filterByPeriod[T Filterable](items []T, period int, now time.Time) []T {
	if period <= 0 {
		return items
	}

	d, err := duration.Parse(fmt.Sprintf("%d days", period))
	if err != nil {
		slog.Error("failed to parse duration", "error", err)
		return items
	}
	return filterWithin(items, d, now)
}

func filterByMatch[T Filterable](items []T, globs []glob.Glob) []T {
	if len(globs) == 0 {
		return items
	}
	return lo.Filter(items, func(item T, _ int) bool {
		return lo.SomeBy(globs, func(g glob.Glob) bool {
			return g.Match(item.GetName()) || g.Match(item.GetPath())
		})
	})
}

func filterWithin[T Filterable](items []T, d time.Duration, now time.Time) []T {
	if d <= 0 {
		return items
	}
	return lo.Filter(items, func(item T, _ int) bool {
		return now.Sub(item.GetDeletedAt()) < d
	})
}

// olderThan keeps items deleted at least d before now
func olderThan[T Filterable](items []T, d time.Duration, now time.Time) []T {
	return lo.Filter(items, func(item T, _ int) bool {
		return now.Sub(item.GetDeletedAt()) >= d
	})
}
