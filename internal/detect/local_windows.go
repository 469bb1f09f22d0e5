// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package detect

import (
	"path/filepath"
	"unsafe"

	"golang.org/x/sys/windows"
)

// freeDiskBytes returns the available disk space on the volume that would
// hold the given path.
func freeDiskBytes(path string) (uint64, error) {
	root := filepath.VolumeName(path)
	if root == "" {
		root = `C:`
	}
	root += `\`

	var freeBytes, totalBytes, totalFreeBytes uint64
	rootPtr, err := windows.UTF16PtrFromString(root)
	if err != nil {
		return 0, err
	}
	if err := windows.GetDiskFreeSpaceEx(rootPtr, &freeBytes, &totalBytes, &totalFreeBytes); err != nil {
		return 0, err
	}
	return freeBytes, nil
}

// totalMemoryBytes returns the total physical memory via the Win32 API.
func totalMemoryBytes() (uint64, error) {
	var status memoryStatusEx
	status.Length = uint32(unsafe.Sizeof(status))

	kernel32 := windows.NewLazySystemDLL("kernel32.dll")
	proc := kernel32.NewProc("GlobalMemoryStatusEx")
	ret, _, err := proc.Call(uintptr(unsafe.Pointer(&status)))
	if ret == 0 {
		return 0, err
	}
	return status.TotalPhys, nil
}

type memoryStatusEx struct {
	Length               uint32
	MemoryLoad           uint32
	TotalPhys            uint64
	AvailPhys            uint64
	TotalPageFile        uint64
	AvailPageFile        uint64
	TotalVirtual         uint64
	AvailVirtual         uint64
	AvailExtendedVirtual uint64
}
