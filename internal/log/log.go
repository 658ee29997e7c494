// Package log builds slog loggers backed by charmbracelet/log.
package log

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	charmlog "github.com/charmbracelet/log"
)

var defaultStyles = sync.OnceValue(func() *Styles {
	styles := charmlog.DefaultStyles()
	for _, ls := range levelStyles {
		levelStr := strings.ToUpper(ls.level.String())
		if len(levelStr) < ls.maxWidth {
			levelStr += strings.Repeat(" ", ls.maxWidth-len(levelStr))
		}
		styles.Levels[ls.level] = ls.style.SetString(levelStr)
	}
	return styles
})

// DefaultStyles returns the level styles shared by every logger
func DefaultStyles() *Styles {
	return defaultStyles()
}

// New creates a new logger with the given options
func New(opts ...Option) *slog.Logger {
	o := newOptions(opts)
	handler := charmlog.NewWithOptions(o.Writer, o.Options)
	handler.SetStyles(o.Styles)
	if len(o.Fields) > 0 {
		handler = handler.With(o.Fields...)
	}

	logger := slog.New(handler)
	if o.Default {
		charmlog.SetDefault(handler)
		slog.SetDefault(logger)
	}
	return logger
}

// Discard returns a logger that drops everything
func Discard() *slog.Logger {
	return New(UseOutput(io.Discard), UseLevel(FatalLevel))
}

// ParseLevel converts a config level name into a Level
func ParseLevel(level string) (Level, error) {
	return charmlog.ParseLevel(level)
}
