// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package detect

import "golang.org/x/sys/unix"

// totalMemoryBytes returns the total physical memory via sysctl.
func totalMemoryBytes() (uint64, error) {
	return unix.SysctlUint64("hw.memsize")
}
