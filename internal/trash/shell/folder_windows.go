//go:build windows

package shell

import (
	"errors"
	"math"
	"runtime"
	"syscall"
	"unsafe"

	"github.com/go-ole/go-ole"
	"golang.org/x/sys/windows"

	"github.com/babarot/trash/internal/trash/core"
)

const (
	csidlBitBucket = 0x000a

	shgdnInFolder   = 0x0001
	shgdnForParsing = 0x8000

	shcontfFolders    = 0x0020
	shcontfNonFolders = 0x0040

	pidDisplacedFrom = 2
	pidDisplacedDate = 3
)

// IShellFolder and IShellFolder2 vtable indices
const (
	methodParseDisplayName = 3
	methodEnumObjects      = 4
	methodBindToObject     = 5
	methodGetDisplayNameOf = 11
	methodGetDetailsEx     = 17
)

// IEnumIDList vtable indices
const (
	methodNext = 3
)

// strRet mirrors STRRET: a type tag followed by a union whose largest
// member is a MAX_PATH byte buffer, aligned like a pointer
type strRet struct {
	uType uint32
	_     [unsafe.Sizeof(uintptr(0)) - 4]byte
	data  [264]byte
}

// shColumnID mirrors SHCOLUMNID
type shColumnID struct {
	fmtid ole.GUID
	pid   uint32
}

var (
	scidOriginalLocation = shColumnID{fmtid: *psguidDisplaced, pid: pidDisplacedFrom}
	scidDateDeleted      = shColumnID{fmtid: *psguidDisplaced, pid: pidDisplacedDate}
)

// shellFolder wraps an IShellFolder2
type shellFolder struct {
	unk *ole.IUnknown
}

func (f *shellFolder) Release() {
	if f.unk != nil {
		f.unk.Release()
		f.unk = nil
	}
}

// bindRecycleBin returns the shell folder of the Recycle Bin
func bindRecycleBin() (*shellFolder, error) {
	pidl := &coTaskMem{}
	hr := callProc(procSHGetSpecialFolderLocation, 0, csidlBitBucket, uintptr(unsafe.Pointer(&pidl.ptr)))
	if err := checkHR("SHGetSpecialFolderLocation", hr); err != nil {
		return nil, err
	}
	defer pidl.Release()

	desktop := &shellFolder{}
	hr = callProc(procSHGetDesktopFolder, uintptr(unsafe.Pointer(&desktop.unk)))
	if err := checkHR("SHGetDesktopFolder", hr); err != nil {
		return nil, err
	}
	defer desktop.Release()

	if pidl.isEmptyIDList() {
		unk, err := queryInterface(desktop.unk, iidIShellFolder2)
		if err != nil {
			return nil, err
		}
		return &shellFolder{unk: unk}, nil
	}

	bin := &shellFolder{}
	hr = vtableCall(desktop.unk, methodBindToObject,
		pidl.ptr, 0, uintptr(unsafe.Pointer(iidIShellFolder2)), uintptr(unsafe.Pointer(&bin.unk)))
	if err := checkHR("BindToObject", hr); err != nil {
		return nil, err
	}
	return bin, nil
}

// parseDisplayName resolves the parsing name of a child back to its ID list
func (f *shellFolder) parseDisplayName(name string) (*coTaskMem, error) {
	ptr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, core.NewError(core.ConvertOsString{Original: name}, err)
	}
	pidl := &coTaskMem{}
	hr := vtableCall(f.unk, methodParseDisplayName,
		0, 0, uintptr(unsafe.Pointer(ptr)), 0, uintptr(unsafe.Pointer(&pidl.ptr)), 0)
	runtime.KeepAlive(ptr)
	if err := checkHR("ParseDisplayName", hr); err != nil {
		return nil, err
	}
	return pidl, nil
}

// enumObjects lists the children of the folder. A nil enumerator means the
// folder is empty.
func (f *shellFolder) enumObjects() (*idEnumerator, error) {
	enum := &idEnumerator{}
	hr := vtableCall(f.unk, methodEnumObjects,
		0, shcontfFolders|shcontfNonFolders, uintptr(unsafe.Pointer(&enum.unk)))
	if err := checkHR("EnumObjects", hr); err != nil {
		return nil, err
	}
	if hr == sFalse || enum.unk == nil {
		return nil, nil
	}
	return enum, nil
}

// displayName returns the name of the child pidl in the form given by flags
func (f *shellFolder) displayName(pidl *coTaskMem, flags uint32) (string, error) {
	var sr strRet
	hr := vtableCall(f.unk, methodGetDisplayNameOf, pidl.ptr, uintptr(flags), uintptr(unsafe.Pointer(&sr)))
	if err := checkHR("GetDisplayNameOf", hr); err != nil {
		return "", err
	}

	str := &coTaskMem{}
	hr = callProc(procStrRetToStrW, uintptr(unsafe.Pointer(&sr)), pidl.ptr, uintptr(unsafe.Pointer(&str.ptr)))
	if err := checkHR("StrRetToStrW", hr); err != nil {
		return "", err
	}
	defer str.Release()

	return decodeUTF16(utf16At(str.ptr))
}

// detail queries a column of the child pidl and coerces it to vt.
// The returned variant must be cleared.
func (f *shellFolder) detail(pidl *coTaskMem, scid *shColumnID, vt ole.VT) (*ole.VARIANT, error) {
	v := new(ole.VARIANT)
	ole.VariantInit(v)
	hr := vtableCall(f.unk, methodGetDetailsEx, pidl.ptr, uintptr(unsafe.Pointer(scid)), uintptr(unsafe.Pointer(v)))
	if err := checkHR("GetDetailsEx", hr); err != nil {
		return nil, err
	}

	hr = callProc(procVariantChangeType, uintptr(unsafe.Pointer(v)), uintptr(unsafe.Pointer(v)), 0, uintptr(vt))
	if err := checkHR("VariantChangeType", hr); err != nil {
		ole.VariantClear(v)
		return nil, err
	}
	return v, nil
}

// detailString reads a column as a string
func (f *shellFolder) detailString(pidl *coTaskMem, scid *shColumnID) (string, error) {
	v, err := f.detail(pidl, scid, ole.VT_BSTR)
	if err != nil {
		return "", err
	}
	defer ole.VariantClear(v)

	bstr := nativePtr[uint16](uintptr(v.Val))
	if bstr == nil {
		return "", nil
	}
	n := ole.SysStringLen((*int16)(unsafe.Pointer(bstr)))
	return decodeUTF16(unsafe.Slice(bstr, n))
}

// detailUnixTime reads a date column as Unix epoch seconds
func (f *shellFolder) detailUnixTime(pidl *coTaskMem, scid *shColumnID) (int64, error) {
	v, err := f.detail(pidl, scid, ole.VT_DATE)
	if err != nil {
		return 0, err
	}
	defer ole.VariantClear(v)

	date := math.Float64frombits(uint64(v.Val))
	return variantTimeToUnix(date)
}

// variantTimeToUnix converts an automation date to Unix epoch seconds
func variantTimeToUnix(date float64) (int64, error) {
	var st windows.Systemtime
	if !variantTimeToSystemTime(date, &st) {
		return 0, core.KindOnly(core.PlatformAPI{FunctionName: "VariantTimeToSystemTime"})
	}

	var ft windows.Filetime
	if ok, _, errno := procSystemTimeToFileTime.Call(uintptr(unsafe.Pointer(&st)), uintptr(unsafe.Pointer(&ft))); ok == 0 {
		code := hresultFromWin32(errno)
		return 0, core.NewError(core.PlatformAPI{FunctionName: "SystemTimeToFileTime", Code: &code}, errno)
	}
	return fileTimeToUnix(ft.LowDateTime, ft.HighDateTime), nil
}

func hresultFromWin32(err error) int32 {
	var errno syscall.Errno
	if !errors.As(err, &errno) || errno == 0 {
		return eFail
	}
	return int32(uint32(errno)&0xffff | 0x80070000)
}

// item builds the trash item for a child of the Recycle Bin
func (f *shellFolder) item(pidl *coTaskMem) (core.Item, error) {
	id, err := f.displayName(pidl, shgdnForParsing)
	if err != nil {
		return core.Item{}, err
	}
	name, err := f.displayName(pidl, shgdnInFolder)
	if err != nil {
		return core.Item{}, err
	}
	parent, err := f.detailString(pidl, &scidOriginalLocation)
	if err != nil {
		return core.Item{}, err
	}
	deleted, err := f.detailUnixTime(pidl, &scidDateDeleted)
	if err != nil {
		return core.Item{}, err
	}
	return core.Item{
		ID:             id,
		Name:           name,
		OriginalParent: parent,
		TimeDeleted:    deleted,
	}, nil
}

// idEnumerator wraps an IEnumIDList
type idEnumerator struct {
	unk *ole.IUnknown
}

func (e *idEnumerator) Release() {
	if e.unk != nil {
		e.unk.Release()
		e.unk = nil
	}
}

// next returns the next child ID list, or nil when the enumeration is done
func (e *idEnumerator) next() (*coTaskMem, error) {
	pidl := &coTaskMem{}
	var fetched uint32
	hr := vtableCall(e.unk, methodNext, 1, uintptr(unsafe.Pointer(&pidl.ptr)), uintptr(unsafe.Pointer(&fetched)))
	if err := checkHR("Next", hr); err != nil {
		return nil, err
	}
	if hr == sFalse || fetched == 0 {
		return nil, nil
	}
	return pidl, nil
}
