//go:build windows

package shell

import (
	"errors"
	"log/slog"
	"runtime"
	"syscall"
	"unsafe"

	"github.com/go-ole/go-ole"
	"golang.org/x/sys/windows"

	"github.com/babarot/trash/internal/trash/core"
)

const (
	sOK             = 0x0
	sFalse          = 0x1
	eFail           = -0x7fffbffb // 0x80004005
	rpcEChangedMode = -0x7ffefefa // 0x80010106
)

var (
	shell32  = windows.NewLazySystemDLL("shell32.dll")
	shlwapi  = windows.NewLazySystemDLL("shlwapi.dll")
	oleaut32 = windows.NewLazySystemDLL("oleaut32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procSHGetSpecialFolderLocation  = shell32.NewProc("SHGetSpecialFolderLocation")
	procSHGetDesktopFolder          = shell32.NewProc("SHGetDesktopFolder")
	procSHCreateItemWithParent      = shell32.NewProc("SHCreateItemWithParent")
	procSHCreateItemFromParsingName = shell32.NewProc("SHCreateItemFromParsingName")
	procStrRetToStrW                = shlwapi.NewProc("StrRetToStrW")
	procVariantChangeType           = oleaut32.NewProc("VariantChangeType")
	procVariantTimeToSystemTime     = oleaut32.NewProc("VariantTimeToSystemTime")
	procSystemTimeToFileTime        = kernel32.NewProc("SystemTimeToFileTime")
)

var (
	iidIShellFolder2    = ole.NewGUID("{93F2F68C-1D1B-11D3-A30E-00C04F79ABD1}")
	iidIShellItem       = ole.NewGUID("{43826D1E-E718-42EE-BC55-A1E261C37BFE}")
	iidIFileOperation   = ole.NewGUID("{947AAB5F-0A5C-4C13-B4D6-4BF7836FC9F8}")
	clsidFileOperation  = ole.NewGUID("{3AD05575-8857-4850-9277-11B85BDB8E09}")
	psguidDisplaced     = ole.NewGUID("{9B174B33-40FF-11D2-A27E-00C04FC30871}")
)

// withCOM runs fn on a locked OS thread with a single-threaded apartment.
// The apartment lives for the duration of fn only: goroutines move between
// threads, so there is no thread to tie a longer lived binding to.
func withCOM(fn func() error) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED|ole.COINIT_DISABLE_OLE1DDE)
	switch code := hresultOf(err); code {
	case sOK, sFalse:
		defer ole.CoUninitialize()
	case rpcEChangedMode:
		// the thread already joined the multithreaded apartment
		slog.Debug("com already initialized with another concurrency model")
	default:
		return core.NewError(core.PlatformAPI{FunctionName: "CoInitializeEx", Code: &code}, err)
	}

	return fn()
}

// hresultOf extracts the HRESULT carried by an error from go-ole
func hresultOf(err error) int32 {
	if err == nil {
		return sOK
	}
	var oleErr *ole.OleError
	if errors.As(err, &oleErr) {
		return int32(oleErr.Code())
	}
	return eFail
}

func failed(hr int32) bool {
	return hr < 0
}

// checkHR converts a failing HRESULT to a PlatformAPI error
func checkHR(function string, hr int32) error {
	if failed(hr) {
		return core.NewPlatformError(function, hr)
	}
	return nil
}

// callProc invokes a flat API exported by a system DLL and returns its HRESULT
//
//go:uintptrescapes
func callProc(proc *windows.LazyProc, args ...uintptr) int32 {
	hr, _, _ := proc.Call(args...)
	return int32(hr)
}

// vtableCall invokes the method at index of the COM interface obj
//
//go:uintptrescapes
func vtableCall(obj *ole.IUnknown, index int, args ...uintptr) int32 {
	vtbl := (*[32]uintptr)(unsafe.Pointer(obj.RawVTable))
	hr, _, _ := syscall.SyscallN(vtbl[index], append([]uintptr{uintptr(unsafe.Pointer(obj))}, args...)...)
	return int32(hr)
}

// queryInterface asks obj for another interface. The result must be released.
func queryInterface(obj *ole.IUnknown, iid *ole.GUID) (*ole.IUnknown, error) {
	var out *ole.IUnknown
	hr := vtableCall(obj, 0, uintptr(unsafe.Pointer(iid)), uintptr(unsafe.Pointer(&out)))
	if err := checkHR("QueryInterface", hr); err != nil {
		return nil, err
	}
	return out, nil
}

// coTaskMem is memory allocated by the shell with CoTaskMemAlloc, such as
// item ID lists and returned strings
type coTaskMem struct {
	ptr uintptr
}

func (m *coTaskMem) Release() {
	if m.ptr != 0 {
		ole.CoTaskMemFree(m.ptr)
		m.ptr = 0
	}
}

// isEmptyIDList reports whether the ID list has no items, which is how the
// desktop folder itself is identified
func (m *coTaskMem) isEmptyIDList() bool {
	return *nativePtr[uint16](m.ptr) == 0
}

// nativePtr turns an address returned by a native call into a pointer. It
// is only used for memory owned by the shell or OLE allocators, never for
// Go memory, so the collector cannot move what it points at.
func nativePtr[T any](addr uintptr) *T {
	return (*T)(unsafe.Pointer(addr)) //nolint:govet // native memory, see above
}

// utf16At reads the NUL terminated string at p
func utf16At(p uintptr) []uint16 {
	if p == 0 {
		return nil
	}
	ptr := nativePtr[uint16](p)
	n := 0
	for *(*uint16)(unsafe.Add(unsafe.Pointer(ptr), n*2)) != 0 {
		n++
	}
	return unsafe.Slice(ptr, n)
}
