package trash

import "github.com/babarot/trash/internal/trash/core"

// Error is returned by every operation. Its Kind tells what failed; use
// errors.As and a type switch on Kind to read the details.
type Error = core.Error

// Kind is the closed set of failure kinds
type Kind = core.Kind

type (
	// PlatformAPI reports a failed native call
	PlatformAPI = core.PlatformAPI
	// CanonicalizePath reports a path that could not be resolved
	CanonicalizePath = core.CanonicalizePath
	// ConvertOsString reports a native string that is not valid text
	ConvertOsString = core.ConvertOsString
	// Filesystem reports a failed filesystem operation on Path
	Filesystem = core.Filesystem
	// RestoreCollision reports an occupied restore destination
	RestoreCollision = core.RestoreCollision
	// RestoreTwins reports items sharing one original path
	RestoreTwins = core.RestoreTwins
)

// Sentinels matched by errors.Is, one per kind
var (
	ErrPlatformAPI      = core.ErrPlatformAPI
	ErrCanonicalizePath = core.ErrCanonicalizePath
	ErrConvertOsString  = core.ErrConvertOsString
	ErrFilesystem       = core.ErrFilesystem
	ErrRestoreCollision = core.ErrRestoreCollision
	ErrRestoreTwins     = core.ErrRestoreTwins
)

// ErrCrossDevice is wrapped in a Filesystem error when a path has no trash
// on its device and the home trash fallback is disabled
var ErrCrossDevice = core.ErrCrossDevice

// AsRestoreCollision extracts the RestoreCollision details from err
func AsRestoreCollision(err error) (RestoreCollision, bool) {
	return core.AsRestoreCollision(err)
}

// AsRestoreTwins extracts the RestoreTwins details from err
func AsRestoreTwins(err error) (RestoreTwins, bool) {
	return core.AsRestoreTwins(err)
}
