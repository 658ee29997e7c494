//go:build darwin

// Package finder moves files to the macOS trash by scripting Finder.
// Finder gives no way to enumerate or restore what it trashed, so only
// removal is supported.
package finder

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"al.essio.dev/pkg/shellescape"

	"github.com/babarot/trash/internal/trash/core"
)

const script = `
on run argv
  tell application "Finder"
    repeat with f in argv
      move (f as POSIX file) to trash
    end repeat
  end tell
end run
`

// Storage implements core.Storage with osascript
type Storage struct {
	root string
}

func NewStorage(cfg core.Config) (*Storage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return &Storage{root: filepath.Join(home, ".Trash")}, nil
}

func (s *Storage) Info() *core.StorageInfo {
	return &core.StorageInfo{
		Location:   core.LocationHome,
		Root:       s.root,
		Available:  true,
		Enumerable: false,
		Type:       core.StorageTypeFinder,
	}
}

// RemoveAll asks Finder to trash every path with a single osascript run
func (s *Storage) RemoveAll(paths []string) error {
	canonical, err := core.CanonicalizeAll(paths)
	if err != nil {
		return err
	}
	if len(canonical) == 0 {
		return nil
	}

	bin, err := exec.LookPath("osascript")
	if err != nil {
		return core.NewError(core.PlatformAPI{FunctionName: "osascript"}, err)
	}

	args := append([]string{"-e", script}, canonical...)
	cmd := exec.Command(bin, args...)
	slog.Debug("run osascript", "command", shellescape.QuoteCommand(append([]string{bin}, canonical...)))

	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := int32(exitErr.ExitCode())
			slog.Debug("osascript failed", "output", string(out))
			return core.NewError(core.PlatformAPI{FunctionName: "osascript", Code: &code}, err)
		}
		return core.NewError(core.PlatformAPI{FunctionName: "osascript"}, err)
	}
	return nil
}

func (s *Storage) List() ([]core.Item, error) {
	return nil, unsupported("List")
}

func (s *Storage) PurgeAll([]core.Item) error {
	return unsupported("PurgeAll")
}

func (s *Storage) RestoreAll([]core.Item) error {
	return unsupported("RestoreAll")
}

func unsupported(op string) error {
	return core.NewError(core.PlatformAPI{FunctionName: op}, errors.ErrUnsupported)
}
