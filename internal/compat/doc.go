// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package compat evaluates whether a machine is suitable for installing
VoxStudio.

Evaluation is a pure function over a MachineProfile snapshot: it performs no
I/O, mutates nothing, and always returns the same verdict for the same
profile. Four requirement checks run in a fixed order (memory, disk, Python,
Git) and each failing check contributes one diagnostic. The diagnostic count
maps to a rating:

	0 findings      RatingGood
	1-2 findings    RatingWarning  (install allowed, user is warned)
	3+ findings     RatingError    (install blocked)

A nil profile yields RatingUnknown with no diagnostics.
*/
package compat
