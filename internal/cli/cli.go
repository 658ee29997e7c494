package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/babarot/trash"
	"github.com/babarot/trash/internal/config"
	"github.com/babarot/trash/internal/debug"
	"github.com/babarot/trash/internal/env"
	"github.com/babarot/trash/internal/log"
	"github.com/babarot/trash/internal/prompt"
	"github.com/jessevdk/go-flags"
	"github.com/rs/xid"
)

type Option struct {
	List    bool     `short:"l" long:"list" description:"List trashed items"`
	Restore bool     `short:"b" long:"restore" description:"Restore trashed items (the latest one without --match)"`
	Purge   bool     `long:"purge" description:"Permanently delete trashed items (all of them without --match)"`
	Prune   []string `long:"prune" description:"Purge items trashed longer ago than a duration (e.g. 30d), or \"orphans\""`
	Match   []string `short:"m" long:"match" description:"Select items whose name or original path matches the glob"`
	Within  string   `long:"within" description:"Select items trashed within the duration (e.g. 2w)"`
	Config  string   `long:"config" description:"Path to config file" default:""`

	Meta MetaOption `group:"Meta Options"`
	Rm   RmOption   `group:"Compatible (rm) Options"`
}

type MetaOption struct {
	Version bool   `short:"V" long:"version" description:"Show version"`
	Debug   string `long:"debug" description:"View debug logs (default: \"full\")" optional-value:"full" optional:"yes" choice:"full" choice:"live"`
}

// RmOption provides compatibility with rm command options
type RmOption struct {
	Interactive bool `short:"i" description:"(dummy) prompt before every removal"`
	Recursive   bool `short:"r" long:"recursive" description:"(dummy) remove directories and their contents recursively"`
	Recursive2  bool `short:"R" description:"(dummy) same as -r"`
	Force       bool `short:"f" long:"force" description:"ignore nonexistent files, never prompt"`
	Directory   bool `short:"d" long:"dir" description:"(dummy) remove empty directories"`
	Verbose     bool `short:"v" long:"verbose" description:"explain what is being done"`
}

type CLI struct {
	version Version
	option  Option
	config  config.Config
	trash   *trash.Trash

	stdout  io.Writer
	now     func() time.Time
	confirm func(prompt string, strict bool) (bool, error)
}

var runID = sync.OnceValue(func() string {
	return xid.New().String()
})

func Run(v Version) error {
	var opt Option
	parser := flags.NewParser(&opt, flags.Default)
	parser.Name = v.AppName
	parser.Usage = "[OPTIONS] [files...]"
	args, err := parser.Parse()
	if err != nil {
		if flags.WroteHelp(err) {
			return nil
		}
		return err
	}

	if opt.Meta.Version {
		fmt.Fprint(os.Stdout, v.Print())
		return nil
	}

	cfg, err := config.Parse(opt.Config)
	if err != nil {
		return err
	}

	if opt.Meta.Debug != "" {
		return debug.Logs(os.Stdout, env.TRASH_LOG_PATH, cfg.Logging.Enabled, opt.Meta.Debug == "live")
	}

	closeLog, err := setupLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer closeLog()

	defer slog.Debug("main function finished")
	slog.Debug("main function started", "version", v.Version, "revision", v.Revision, "buildDate", v.BuildDate)

	trashConfig, err := cfg.TrashConfig()
	if err != nil {
		return fmt.Errorf("invalid core config: %w", err)
	}
	t, err := trash.New(trashConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize trash: %w", err)
	}

	c := CLI{
		version: v,
		option:  opt,
		config:  cfg,
		trash:   t,
		stdout:  os.Stdout,
		now:     time.Now,
		confirm: askUser,
	}

	if err := c.Run(args); err != nil {
		slog.Error("exit", "error", fmt.Errorf("cli.run failed: %w", err))
		return err
	}
	return nil
}

// setupLogger installs the default slog logger. Records go to the rotated
// log file when logging is enabled and are dropped otherwise.
func setupLogger(cfg config.Logging) (func(), error) {
	if !cfg.Enabled {
		slog.SetDefault(log.Discard())
		return func() {}, nil
	}

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	w, err := log.NewRotateWriter(env.TRASH_LOG_PATH, cfg.Rotation.MaxSize, cfg.Rotation.MaxFiles)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	log.New(
		log.UseOutput(w),
		log.UseLevel(level),
		log.UseReportCaller(true),
		log.UseReportTimestamp(true),
		log.UseTimeFormat(time.DateTime),
		log.UseFields("run_id", runID()),
		log.AsDefault(),
	)
	return func() { w.Close() }, nil
}

func askUser(question string, strict bool) (bool, error) {
	if strict {
		return prompt.ConfirmYes(question)
	}
	return prompt.Confirm(question)
}

func (c CLI) Run(args []string) error {
	switch {
	case c.option.List:
		return c.List()
	case c.option.Restore:
		return c.Restore(args)
	case c.option.Purge:
		return c.Purge(args)
	case len(c.option.Prune) > 0:
		return c.Prune(c.option.Prune)
	default:
		return c.Put(args)
	}
}

// ask confirms a destructive operation unless -f was given
func (c CLI) ask(question string, strict bool) (bool, error) {
	if c.option.Rm.Force {
		return true, nil
	}
	ok, err := c.confirm(question, strict)
	if errors.Is(err, prompt.ErrNotTerminal) {
		return false, fmt.Errorf("%w: pass -f to skip confirmation", err)
	}
	return ok, err
}
