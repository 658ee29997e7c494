// Package shell implements the trash on top of the Windows Recycle Bin,
// driven through the shell namespace and IFileOperation.
package shell

import (
	"strings"
	"unicode/utf16"

	"github.com/babarot/trash/internal/trash/core"
)

const (
	windowsTick        = 10_000_000
	secondsToUnixEpoch = 11_644_473_600

	extendedLengthPrefix = `\\?\`
)

// windowsTicksToUnixSeconds converts a FILETIME value, in 100ns ticks since
// 1601-01-01, to whole seconds since the Unix epoch
func windowsTicksToUnixSeconds(ticks uint64) int64 {
	return int64(ticks/windowsTick) - secondsToUnixEpoch
}

// fileTimeToUnix joins the two halves of a FILETIME
func fileTimeToUnix(low, high uint32) int64 {
	return windowsTicksToUnixSeconds(uint64(high)<<32 | uint64(low))
}

// decodeUTF16 converts a native string to UTF-8. Unpaired surrogates cannot
// be represented and fail with ConvertOsString.
func decodeUTF16(s []uint16) (string, error) {
	for i := 0; i < len(s); i++ {
		if !utf16.IsSurrogate(rune(s[i])) {
			continue
		}
		// a high surrogate must be followed by a low one
		if s[i] >= 0xdc00 || i+1 >= len(s) || s[i+1] < 0xdc00 || s[i+1] > 0xdfff {
			return "", core.KindOnly(core.ConvertOsString{Original: string(utf16.Decode(s))})
		}
		i++
	}
	return string(utf16.Decode(s)), nil
}

// stripExtendedPrefix removes the \\?\ prefix the shell parser rejects
func stripExtendedPrefix(path string) string {
	if rest, ok := strings.CutPrefix(path, extendedLengthPrefix); ok {
		if unc, ok := strings.CutPrefix(rest, `UNC\`); ok {
			return `\\` + unc
		}
		return rest
	}
	return path
}
