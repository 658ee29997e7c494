package fs

import (
	"errors"
	"fmt"
)

// Causes wrapped by MoveError
var (
	ErrDestinationExists = errors.New("destination already exists")
	ErrSourceNotFound    = errors.New("source file not found")
	ErrCrossDeviceMove   = errors.New("cross-device move operation")
	ErrInvalidPath       = errors.New("invalid path specified")
)

// MoveError records which step of Move failed
type MoveError struct {
	Op       string
	Src, Dst string
	Err      error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("move %q to %q: %s: %v", e.Src, e.Dst, e.Op, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

func moveError(op, src, dst string, err error) error {
	return &MoveError{Op: op, Src: src, Dst: dst, Err: err}
}

// IsDestinationExists reports whether Move refused to replace dst
func IsDestinationExists(err error) bool {
	return errors.Is(err, ErrDestinationExists)
}
