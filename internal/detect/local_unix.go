// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !windows

package detect

import (
	"path/filepath"

	"golang.org/x/sys/unix"
)

// freeDiskBytes returns the available disk space on the filesystem that
// would hold the given path. The path itself need not exist; the nearest
// existing ancestor is measured.
func freeDiskBytes(path string) (uint64, error) {
	var stat unix.Statfs_t
	probe := path
	for {
		if err := unix.Statfs(probe, &stat); err == nil {
			break
		}
		parent := filepath.Dir(probe)
		if parent == probe {
			if err := unix.Statfs("/", &stat); err != nil {
				return 0, err
			}
			break
		}
		probe = parent
	}
	return stat.Bavail * uint64(stat.Bsize), nil
}
