//go:build windows

package shell

import (
	"errors"
	"runtime"
	"unsafe"

	"github.com/go-ole/go-ole"
	"golang.org/x/sys/windows"

	"github.com/babarot/trash/internal/trash/core"
)

// Operation flags for IFileOperation::SetOperationFlags
const (
	fofSilent             = 0x0004
	fofNoConfirmation     = 0x0010
	fofAllowUndo          = 0x0040
	fofNoConfirmMkdir     = 0x0200
	fofNoErrorUI          = 0x0400
	fofWantNukeWarning    = 0x4000
	fofxEarlyFailure      = 0x00100000
	fofNoUI               = fofSilent | fofNoConfirmation | fofNoErrorUI | fofNoConfirmMkdir
	removeOperationFlags  = fofNoUI | fofAllowUndo | fofWantNukeWarning
	purgeOperationFlags   = fofNoUI
	restoreOperationFlags = fofNoUI | fofxEarlyFailure
)

// IFileOperation vtable indices
const (
	methodSetOperationFlags       = 5
	methodMoveItem                = 14
	methodDeleteItem              = 18
	methodPerformOperations       = 21
	methodGetAnyOperationsAborted = 22
)

var errOperationsAborted = errors.New("some operations were aborted")

// fileOperation wraps an IFileOperation. Every mutation of the Recycle Bin
// registers its items on one instance and runs them with a single perform.
type fileOperation struct {
	unk     *ole.IUnknown
	pending int
}

func newFileOperation(flags uint32) (*fileOperation, error) {
	unk, err := ole.CreateInstance(clsidFileOperation, iidIFileOperation)
	if err != nil {
		code := hresultOf(err)
		return nil, core.NewError(core.PlatformAPI{FunctionName: "CoCreateInstance", Code: &code}, err)
	}
	op := &fileOperation{unk: unk}

	hr := vtableCall(op.unk, methodSetOperationFlags, uintptr(flags))
	if err := checkHR("SetOperationFlags", hr); err != nil {
		op.Release()
		return nil, err
	}
	return op, nil
}

func (op *fileOperation) Release() {
	if op.unk != nil {
		op.unk.Release()
		op.unk = nil
	}
}

// deleteItem registers item for deletion
func (op *fileOperation) deleteItem(item *shellItem) error {
	hr := vtableCall(op.unk, methodDeleteItem, uintptr(unsafe.Pointer(item.unk)), 0)
	if err := checkHR("DeleteItem", hr); err != nil {
		return err
	}
	op.pending++
	return nil
}

// moveItem registers a move of item into folder under name
func (op *fileOperation) moveItem(item, folder *shellItem, name string) error {
	ptr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return core.NewError(core.ConvertOsString{Original: name}, err)
	}
	hr := vtableCall(op.unk, methodMoveItem,
		uintptr(unsafe.Pointer(item.unk)), uintptr(unsafe.Pointer(folder.unk)), uintptr(unsafe.Pointer(ptr)), 0)
	runtime.KeepAlive(ptr)
	if err := checkHR("MoveItem", hr); err != nil {
		return err
	}
	op.pending++
	return nil
}

// perform runs every registered operation. Nothing is done when no item
// was registered.
func (op *fileOperation) perform() error {
	if op.pending == 0 {
		return nil
	}
	hr := vtableCall(op.unk, methodPerformOperations)
	if err := checkHR("PerformOperations", hr); err != nil {
		return err
	}

	var aborted int32
	hr = vtableCall(op.unk, methodGetAnyOperationsAborted, uintptr(unsafe.Pointer(&aborted)))
	if err := checkHR("GetAnyOperationsAborted", hr); err != nil {
		return err
	}
	if aborted != 0 {
		return core.NewError(core.PlatformAPI{FunctionName: "PerformOperations"}, errOperationsAborted)
	}
	return nil
}

// shellItem wraps an IShellItem
type shellItem struct {
	unk *ole.IUnknown
}

func (i *shellItem) Release() {
	if i.unk != nil {
		i.unk.Release()
		i.unk = nil
	}
}

// shellItemFromPath creates a shell item for a filesystem path
func shellItemFromPath(path string) (*shellItem, error) {
	path = stripExtendedPrefix(path)
	ptr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, core.NewError(core.ConvertOsString{Original: path}, err)
	}
	item := &shellItem{}
	hr := callProc(procSHCreateItemFromParsingName,
		uintptr(unsafe.Pointer(ptr)), 0, uintptr(unsafe.Pointer(iidIShellItem)), uintptr(unsafe.Pointer(&item.unk)))
	runtime.KeepAlive(ptr)
	if err := checkHR("SHCreateItemFromParsingName", hr); err != nil {
		return nil, err
	}
	return item, nil
}

// shellItemFromID resolves a Recycle Bin item ID to a shell item
func (f *shellFolder) shellItemFromID(id string) (*shellItem, error) {
	pidl, err := f.parseDisplayName(id)
	if err != nil {
		return nil, err
	}
	defer pidl.Release()

	item := &shellItem{}
	hr := callProc(procSHCreateItemWithParent,
		0, uintptr(unsafe.Pointer(f.unk)), pidl.ptr, uintptr(unsafe.Pointer(iidIShellItem)), uintptr(unsafe.Pointer(&item.unk)))
	if err := checkHR("SHCreateItemWithParent", hr); err != nil {
		return nil, err
	}
	return item, nil
}
