package log

import (
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
)

// Options configures New. The embedded charmbracelet options carry level,
// caller, timestamp and formatter settings.
type Options struct {
	charmlog.Options
	Writer  io.Writer
	Styles  *Styles
	Fields  []any
	Default bool
}

type Option func(*Options)

func newOptions(opts []Option) *Options {
	o := &Options{
		Options: charmlog.Options{Level: InfoLevel},
		Writer:  os.Stderr,
		Styles:  DefaultStyles(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func UseLevel(l Level) Option { return func(o *Options) { o.Level = l } }

func UseOutput(w io.Writer) Option { return func(o *Options) { o.Writer = w } }

func UseReportCaller(b bool) Option { return func(o *Options) { o.ReportCaller = b } }

func UseReportTimestamp(b bool) Option { return func(o *Options) { o.ReportTimestamp = b } }

func UseTimeFormat(layout string) Option { return func(o *Options) { o.TimeFormat = layout } }

func UseFormatter(f Formatter) Option { return func(o *Options) { o.Formatter = f } }

// UseFields attaches key value pairs to every record
func UseFields(keyvals ...any) Option {
	return func(o *Options) { o.Fields = append(o.Fields, keyvals...) }
}

// AsDefault makes New install the logger for slog and charmbracelet/log
func AsDefault() Option { return func(o *Options) { o.Default = true } }
