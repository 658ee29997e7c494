//go:build !windows

package xdg

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/babarot/trash/internal/fs"
	"github.com/babarot/trash/internal/trash/core"
)

const (
	trashInfoGroup = "[Trash Info]"
	trashInfoExt   = ".trashinfo"
	deletionLayout = "2006-01-02T15:04:05"
)

// Record is the content of one .trashinfo file
type Record struct {
	// Path is the original path as stored: absolute in the home trash,
	// relative to Topdir in a $topdir trash when the file was below it
	Path string

	// DeletionDate is local time without a zone, as the format requires
	DeletionDate time.Time

	// Topdir is the mount the trash directory belongs to, empty for the home trash
	Topdir string
}

// ParseRecord reads a .trashinfo file. Only the first Path and DeletionDate
// keys of the [Trash Info] group are used; other groups are ignored.
func ParseRecord(r io.Reader) (*Record, error) {
	var (
		rec     Record
		inGroup bool
		seen    = map[string]bool{}
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "", strings.HasPrefix(line, "#"):
			continue
		case strings.HasPrefix(line, "["):
			inGroup = line == trashInfoGroup
			continue
		case !inGroup:
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !ok || seen[key] {
			continue
		}
		seen[key] = true

		if err := rec.set(key, strings.TrimSpace(value)); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading info file: %w", err)
	}

	switch {
	case rec.Path == "":
		return nil, fmt.Errorf("%w: missing Path field", core.ErrInvalidTrashInfo)
	case rec.DeletionDate.IsZero():
		return nil, fmt.Errorf("%w: missing DeletionDate field", core.ErrInvalidTrashInfo)
	}
	return &rec, nil
}

func (r *Record) set(key, value string) error {
	switch key {
	case "Path":
		path, err := url.PathUnescape(value)
		if err != nil {
			return fmt.Errorf("%w: invalid Path encoding: %v", core.ErrInvalidTrashInfo, err)
		}
		r.Path = path
	case "DeletionDate":
		date, err := time.ParseInLocation(deletionLayout, value, time.Local)
		if err != nil {
			return fmt.Errorf("%w: invalid DeletionDate format: %v", core.ErrInvalidTrashInfo, err)
		}
		r.DeletionDate = date
	}
	return nil
}

// OriginalPath resolves Path against Topdir
func (r *Record) OriginalPath() string {
	if filepath.IsAbs(r.Path) || r.Topdir == "" {
		return r.Path
	}
	return filepath.Join(r.Topdir, r.Path)
}

// storedPath is the form of Path written to disk: relative to Topdir when
// the file lives below it, absolute otherwise
func (r *Record) storedPath() string {
	if r.Topdir == "" || !filepath.IsAbs(r.Path) {
		return r.Path
	}
	rel, err := filepath.Rel(r.Topdir, r.Path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return r.Path
	}
	return rel
}

// Marshal renders the record in .trashinfo format
func (r *Record) Marshal() []byte {
	var b bytes.Buffer
	b.WriteString(trashInfoGroup + "\n")
	b.WriteString("Path=" + encodeTrashPath(r.storedPath()) + "\n")
	b.WriteString("DeletionDate=" + r.DeletionDate.Format(deletionLayout) + "\n")
	return b.Bytes()
}

// Save writes the record to a new file at path. An existing file makes it
// fail with an error wrapping os.ErrExist, so a successful Save reserves
// the name in the trash.
func (r *Record) Save(path string) (err error) {
	f, err := fs.CreateExclusive(path, 0600)
	if err != nil {
		return fmt.Errorf("failed to create info file: %w", err)
	}
	defer func() {
		if err != nil {
			os.Remove(path)
		}
	}()

	if _, err := f.Write(r.Marshal()); err != nil {
		f.Close()
		return fmt.Errorf("failed to write info file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close info file: %w", err)
	}
	return nil
}

// encodeTrashPath percent-encodes each path segment, keeping the slashes
func encodeTrashPath(path string) string {
	parts := strings.Split(path, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}

func readRecord(path, topdir string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open info file: %w", err)
	}
	defer f.Close()

	rec, err := ParseRecord(f)
	if err != nil {
		return nil, err
	}
	rec.Topdir = topdir
	return rec, nil
}
