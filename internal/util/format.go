// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the VoxStudio installer.
package util

import (
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

// FormatBytes renders a byte count in binary units (KiB, MiB, GiB).
func FormatBytes(n uint64) string {
	if n == 0 {
		return "unknown"
	}
	return humanize.IBytes(n)
}

// FormatPercent renders a 0-100 percentage for display.
func FormatPercent(p int) string {
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	return strconv.Itoa(p) + "%"
}

// TruncateWidth truncates a string to a maximum display width, accounting
// for double-width characters (CJK) that take 2 columns. If the string is
// truncated, "..." is appended.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}
