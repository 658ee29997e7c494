//go:build windows

package fs

import (
	"fmt"
	"path/filepath"

	"golang.org/x/sys/windows"
)

// isSamePartition compares the volume serial numbers of src and dst
func isSamePartition(src, dst string) (bool, error) {
	srcSerial, err := volumeSerial(src)
	if err != nil {
		return false, err
	}
	dstSerial, err := volumeSerial(dst)
	if err != nil {
		return false, err
	}
	return srcSerial == dstSerial, nil
}

func volumeSerial(path string) (uint32, error) {
	volume := filepath.VolumeName(path)
	if volume == "" {
		return 0, fmt.Errorf("no volume name in %q", path)
	}
	root, err := windows.UTF16PtrFromString(volume + `\`)
	if err != nil {
		return 0, err
	}
	var serial uint32
	if err := windows.GetVolumeInformation(root, nil, 0, &serial, nil, nil, nil, 0); err != nil {
		return 0, fmt.Errorf("failed to get volume information of %s: %w", volume, err)
	}
	return serial, nil
}
