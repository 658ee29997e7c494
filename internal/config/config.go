package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/babarot/trash/internal/env"
	"github.com/babarot/trash/internal/trash/core"
	"github.com/go-playground/validator/v10"
	"github.com/muesli/reflow/indent"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Core    Core    `yaml:"core"`
	List    List    `yaml:"list"`
	Logging Logging `yaml:"logging"`
}

type Core struct {
	HomeTrashDir       string  `yaml:"home_trash_dir" validate:"trashDir"`
	HomeFallback       bool    `yaml:"home_fallback"`
	ForceHomeTrash     bool    `yaml:"force_home_trash"`
	SkipMountPointFind bool    `yaml:"skip_mount_point_find"`
	Restore            Restore `yaml:"restore"`
}

type Restore struct {
	Verbose bool `yaml:"verbose"`
}

// List narrows what --list, --restore and --purge operate on
type List struct {
	Exclude Exclude `yaml:"exclude"`
	Period  int     `yaml:"within_days" validate:"gte=0"`
}

type Exclude struct {
	Files    []string `yaml:"files"`
	Globs    []string `yaml:"globs" validate:"dive,validGlob"`
	Patterns []string `yaml:"patterns" validate:"dive,validRegex"`
}

type Logging struct {
	Enabled  bool     `yaml:"enabled"`
	Level    string   `yaml:"level" validate:"required,oneof=debug info warn error"`
	Rotation Rotation `yaml:"rotation"`
}

type Rotation struct {
	MaxSize  string `yaml:"max_size" validate:"required,validSize"`
	MaxFiles int    `yaml:"max_files" validate:"gte=0"`
}

// TrashConfig converts the core section into the library configuration
func (c Config) TrashConfig() (*core.Config, error) {
	cfg := core.NewDefaultConfig()
	if c.Core.HomeTrashDir != "" {
		dir, err := expandPath(c.Core.HomeTrashDir)
		if err != nil {
			return nil, fmt.Errorf("home_trash_dir: %w", err)
		}
		cfg.HomeTrashDir = dir
	}
	cfg.EnableHomeFallback = c.Core.HomeFallback
	cfg.ForceHomeTrash = c.Core.ForceHomeTrash
	cfg.SkipMountPointFind = c.Core.SkipMountPointFind
	return cfg, cfg.Validate()
}

// configError explains how to fix an unreadable config file
type configError struct {
	path string
	err  error
}

func (e configError) Error() string {
	return heredoc.Docf(`
		Couldn't read the "%s" config file.
		Please try again after fixing it or specifying a valid config path.
		The recommended config path is %s (default).
		Example YAML file contents:
		---
		%s
		---
		Original error:
		%s
		`,
		e.path,
		env.TRASH_CONFIG_PATH,
		defaultContents(),
		indent.String(e.err.Error(), 2),
	)
}

func (e configError) Unwrap() error { return e.err }

type parsingError struct {
	err error
}

func (e parsingError) Error() string {
	return fmt.Sprintf("failed to parse config: %v", e.err)
}

func (e parsingError) Unwrap() error { return e.err }

func defaultContents() string {
	out, _ := yaml.Marshal(Default())
	return string(out)
}

// writeDefault creates path with the default contents unless something is
// already there
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0666)
	if errors.Is(err, os.ErrExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	slog.Warn("created default config file", "config-file", path)
	_, err = f.WriteString(defaultContents())
	return err
}

var validate = sync.OnceValue(func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	for tag, fn := range map[string]validator.Func{
		"validSize":  validateSize,
		"validGlob":  validateGlob,
		"validRegex": validateRegex,
		"trashDir":   validateTrashDir,
	} {
		_ = v.RegisterValidation(tag, fn)
	}
	return v
})

func load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, configError{path: path, err: err}
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	var verrs validator.ValidationErrors
	switch err := validate().Struct(cfg); {
	case errors.As(err, &verrs) && len(verrs) > 0:
		return cfg, fmt.Errorf("validation error: Field %s, %q is invalid", verrs[0].Namespace(), verrs[0].Value())
	case err != nil:
		return cfg, err
	}
	return cfg, nil
}

// Parse reads the config file at path. An empty path means the default
// location, where a config file with default contents is created if missing.
func Parse(path string) (Config, error) {
	if path == "" {
		path = env.TRASH_CONFIG_PATH
		if err := writeDefault(path); err != nil {
			return Config{}, parsingError{configError{path: path, err: err}}
		}
	}
	slog.Debug("reading config", "config-file", path)

	cfg, err := load(path)
	if err != nil {
		return cfg, parsingError{err}
	}
	return cfg, nil
}
