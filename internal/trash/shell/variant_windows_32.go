//go:build windows && (386 || arm)

package shell

import (
	"math"
	"unsafe"

	"golang.org/x/sys/windows"
)

// variantTimeToSystemTime pushes the date as two stack words, low half first
func variantTimeToSystemTime(date float64, st *windows.Systemtime) bool {
	bits := math.Float64bits(date)
	ok, _, _ := procVariantTimeToSystemTime.Call(uintptr(uint32(bits)), uintptr(uint32(bits>>32)), uintptr(unsafe.Pointer(st)))
	return ok != 0
}
