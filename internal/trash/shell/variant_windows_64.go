//go:build windows && (amd64 || arm64)

package shell

import (
	"math"
	"unsafe"

	"golang.org/x/sys/windows"
)

// variantTimeToSystemTime passes the date in a single register sized word
func variantTimeToSystemTime(date float64, st *windows.Systemtime) bool {
	ok, _, _ := procVariantTimeToSystemTime.Call(uintptr(math.Float64bits(date)), uintptr(unsafe.Pointer(st)))
	return ok != 0
}
