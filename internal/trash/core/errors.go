package core

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels matched by Error.Is, one per Kind
var (
	ErrPlatformAPI      = errors.New("platform api call failed")
	ErrCanonicalizePath = errors.New("failed to canonicalize path")
	ErrConvertOsString  = errors.New("failed to convert os string")
	ErrFilesystem       = errors.New("filesystem operation failed")
	ErrRestoreCollision = errors.New("restore destination already exists")
	ErrRestoreTwins     = errors.New("multiple items share the same original path")
)

// Causes wrapped inside an Error for finer detail
var (
	// ErrCrossDevice is returned when no trash directory exists on the
	// device of a path and home fallback is disabled
	ErrCrossDevice = errors.New("cross-device operation not supported")

	// ErrInvalidTrashInfo is returned when a .trashinfo record cannot be parsed
	ErrInvalidTrashInfo = errors.New("invalid trash info")
)

// Kind describes why an operation failed. The set of kinds is closed:
// PlatformAPI, CanonicalizePath, ConvertOsString, Filesystem,
// RestoreCollision and RestoreTwins.
type Kind interface {
	sentinel() error
	describe() string
}

// PlatformAPI is returned when a native call fails.
// Code holds the HRESULT (or exit status) when one is available.
type PlatformAPI struct {
	FunctionName string
	Code         *int32
}

// CanonicalizePath is returned when a path could not be resolved to its
// absolute form. The cause is the underlying *fs.PathError.
type CanonicalizePath struct {
	Original string
}

// ConvertOsString is returned when a name from the platform is not valid text
type ConvertOsString struct {
	Original string
}

// Filesystem is returned when an operation on Path failed
type Filesystem struct {
	Path string
}

// RestoreCollision is returned when the original location of an item is
// occupied. RemainingItems holds every item that was not restored, in the
// order supplied, starting with the one that collided. Items restored
// before the collision stay restored.
type RestoreCollision struct {
	Path           string
	RemainingItems []Item
}

// RestoreTwins is returned when two or more items requested for restoration
// share the same original path. Items is the complete batch as supplied;
// nothing has been restored.
type RestoreTwins struct {
	Path  string
	Items []Item
}

func (PlatformAPI) sentinel() error      { return ErrPlatformAPI }
func (CanonicalizePath) sentinel() error { return ErrCanonicalizePath }
func (ConvertOsString) sentinel() error  { return ErrConvertOsString }
func (Filesystem) sentinel() error       { return ErrFilesystem }
func (RestoreCollision) sentinel() error { return ErrRestoreCollision }
func (RestoreTwins) sentinel() error     { return ErrRestoreTwins }

func (k PlatformAPI) describe() string {
	if k.Code == nil {
		return fmt.Sprintf("%s failed", k.FunctionName)
	}
	return fmt.Sprintf("%s failed with code 0x%08X", k.FunctionName, uint32(*k.Code))
}

func (k CanonicalizePath) describe() string {
	return fmt.Sprintf("canonicalize %q", k.Original)
}

func (k ConvertOsString) describe() string {
	return fmt.Sprintf("convert %q to string", k.Original)
}

func (k Filesystem) describe() string {
	return fmt.Sprintf("filesystem error at %s", k.Path)
}

func (k RestoreCollision) describe() string {
	return fmt.Sprintf("restore collision at %s (%d items not restored)", k.Path, len(k.RemainingItems))
}

func (k RestoreTwins) describe() string {
	return fmt.Sprintf("restore twins at %s (%d items requested)", k.Path, len(k.Items))
}

// Error is the error type returned by every trash operation
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	var s strings.Builder
	s.WriteString("trash: ")
	s.WriteString(e.Kind.describe())
	if e.Err != nil {
		s.WriteString(": ")
		s.WriteString(e.Err.Error())
	}
	return s.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's kind
func (e *Error) Is(target error) bool {
	return e.Kind != nil && e.Kind.sentinel() == target
}

// NewError creates an Error with a cause
func NewError(kind Kind, err error) error {
	return &Error{Kind: kind, Err: err}
}

// KindOnly creates an Error without a cause
func KindOnly(kind Kind) error {
	return &Error{Kind: kind}
}

// NewPlatformError builds a PlatformAPI error for a failed native call
func NewPlatformError(function string, code int32) error {
	return KindOnly(PlatformAPI{FunctionName: function, Code: &code})
}

// NewFilesystemError builds a Filesystem error for path
func NewFilesystemError(path string, err error) error {
	return NewError(Filesystem{Path: path}, err)
}

// KindOf returns the Kind of err, or nil if err is not an *Error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return nil
}

// AsRestoreCollision extracts the RestoreCollision kind from err
func AsRestoreCollision(err error) (RestoreCollision, bool) {
	k, ok := KindOf(err).(RestoreCollision)
	return k, ok
}

// AsRestoreTwins extracts the RestoreTwins kind from err
func AsRestoreTwins(err error) (RestoreTwins, bool) {
	k, ok := KindOf(err).(RestoreTwins)
	return k, ok
}
