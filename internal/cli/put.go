package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/babarot/trash/internal/fs"
)

func (c CLI) Put(args []string) error {
	slog.Debug("cli.put started")
	defer slog.Debug("cli.put finished")

	if len(args) == 0 {
		return errors.New("too few arguments")
	}

	var (
		paths []string
		dirs  = map[string]bool{}
	)
	for _, arg := range args {
		info, err := os.Lstat(arg)
		if err != nil {
			if os.IsNotExist(err) {
				if c.option.Rm.Force {
					continue
				}
				return fmt.Errorf("%s: no such file or directory", arg)
			}
			return err
		}
		if err := validatePath(arg); err != nil {
			return err
		}
		paths = append(paths, arg)
		dirs[arg] = info.IsDir()
	}

	if len(paths) == 0 {
		return nil
	}
	if err := c.trash.RemoveAll(paths); err != nil {
		return fmt.Errorf("failed to move to trash: %w", err)
	}

	if c.option.Rm.Verbose {
		for _, path := range paths {
			if dirs[path] {
				fmt.Fprintf(c.stdout, "removed directory '%s'\n", path)
			} else {
				fmt.Fprintf(c.stdout, "removed '%s'\n", path)
			}
		}
	}
	return nil
}

// validatePath checks if path is valid for trashing
func validatePath(path string) error {
	if unsafe, err := fs.IsUnsafePath(path); err != nil {
		return err
	} else if unsafe {
		return fmt.Errorf("refusing to remove '.' or '..' directory: skipping '%s'", path)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if fs.IsProtectedPath(absPath) {
		return fmt.Errorf("cannot trash protected path: %s", path)
	}
	return nil
}
