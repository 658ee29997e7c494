package log

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/docker/go-units"
)

const backupSuffix = "20060102-150405.000000000"

// RotateWriter appends to a log file. Before a write would push the file
// past its limit, the file is moved to "<path>.<timestamp>" and a fresh one
// is started; only the newest maxFiles of those backups survive.
type RotateWriter struct {
	path     string
	limit    int64
	maxFiles int

	mu      sync.Mutex
	f       *os.File
	written int64
}

// NewRotateWriter opens path for appending. maxSize is a human size such as "10MB".
func NewRotateWriter(path, maxSize string, maxFiles int) (*RotateWriter, error) {
	limit, err := units.FromHumanSize(maxSize)
	if err != nil {
		return nil, fmt.Errorf("log rotation size %q: %w", maxSize, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	w := &RotateWriter{path: path, limit: limit, maxFiles: maxFiles}
	return w, w.open()
}

func (w *RotateWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.f == nil {
		return 0, os.ErrClosed
	}
	if w.written > 0 && w.written+int64(len(p)) > w.limit {
		if err := w.rotate(); err != nil {
			return 0, fmt.Errorf("rotate %s: %w", w.path, err)
		}
	}
	n, err := w.f.Write(p)
	w.written += int64(n)
	return n, err
}

func (w *RotateWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.f == nil {
		return nil
	}
	err := w.f.Close()
	w.f = nil
	return err
}

func (w *RotateWriter) open() error {
	f, err := os.OpenFile(w.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return err
	}
	w.f, w.written = f, fi.Size()
	return nil
}

// rotate runs with mu held
func (w *RotateWriter) rotate() error {
	_ = w.f.Close()
	w.f = nil

	backup := w.path + "." + time.Now().Format(backupSuffix)
	if err := os.Rename(w.path, backup); err != nil && !os.IsNotExist(err) {
		return err
	}
	if err := w.prune(); err != nil {
		return err
	}
	return w.open()
}

// prune drops the oldest backups beyond maxFiles. The timestamp suffix
// sorts lexically in creation order.
func (w *RotateWriter) prune() error {
	if w.maxFiles <= 0 {
		return nil
	}
	matches, err := filepath.Glob(w.path + ".*")
	if err != nil {
		return err
	}
	if len(matches) <= w.maxFiles {
		return nil
	}
	slices.Sort(matches)
	for _, old := range matches[:len(matches)-w.maxFiles] {
		if err := os.Remove(old); err != nil {
			return err
		}
	}
	return nil
}
