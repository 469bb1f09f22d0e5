// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package compat

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/jeranaias/voxstudio-installer/internal/host"
)

// Minimum requirements. Memory below the minimum is a finding; disk below the
// minimum is a finding. Both use binary (GiB) thresholds.
const (
	// MinMemoryBytes is the minimum total physical memory (8 GiB)
	MinMemoryBytes uint64 = 8 << 30
	// MinDiskBytes is the minimum available disk space (10 GiB)
	MinDiskBytes uint64 = 10 << 30
)

// =============================================================================
// RATING
// =============================================================================

// Rating is the tri-state suitability verdict for a machine.
type Rating int

const (
	// RatingUnknown means no profile was available to evaluate
	RatingUnknown Rating = iota
	// RatingGood means the machine meets all requirements
	RatingGood
	// RatingWarning means minor shortfalls; installation may proceed
	RatingWarning
	// RatingError means the machine is unsuitable; installation is blocked
	RatingError
)

// String returns the string representation of the rating.
func (r Rating) String() string {
	switch r {
	case RatingGood:
		return "good"
	case RatingWarning:
		return "warning"
	case RatingError:
		return "error"
	default:
		return "unknown"
	}
}

// =============================================================================
// VERDICT
// =============================================================================

// Verdict is the result of a compatibility evaluation: the overall rating
// plus one diagnostic per failed check, in check order.
type Verdict struct {
	Rating      Rating
	Diagnostics []string
}

// Blocking reports whether the verdict forbids starting an installation.
func (v Verdict) Blocking() bool {
	return v.Rating == RatingError
}

// =============================================================================
// EVALUATION
// =============================================================================

// Evaluate runs the requirement checks against the given machine profile and
// returns the verdict. A nil profile cannot be evaluated and yields
// RatingUnknown.
func Evaluate(profile *host.MachineProfile) Verdict {
	if profile == nil {
		return Verdict{Rating: RatingUnknown}
	}

	var diagnostics []string

	if profile.TotalMemory < MinMemoryBytes {
		diagnostics = append(diagnostics, fmt.Sprintf(
			"Insufficient memory: %s installed, %s required",
			humanize.IBytes(profile.TotalMemory), humanize.IBytes(MinMemoryBytes)))
	}
	if profile.AvailableDiskSpace < MinDiskBytes {
		diagnostics = append(diagnostics, fmt.Sprintf(
			"Insufficient disk space: %s free, %s required",
			humanize.IBytes(profile.AvailableDiskSpace), humanize.IBytes(MinDiskBytes)))
	}
	if profile.PythonVersion == "" {
		diagnostics = append(diagnostics, "Python not found: required to run the voice engine")
	}
	if profile.GitVersion == "" {
		diagnostics = append(diagnostics, "Git not found: required to fetch application sources")
	}

	return Verdict{Rating: rate(len(diagnostics)), Diagnostics: diagnostics}
}

// rate maps a diagnostic count to the overall rating.
func rate(findings int) Rating {
	switch {
	case findings == 0:
		return RatingGood
	case findings <= 2:
		return RatingWarning
	default:
		return RatingError
	}
}
