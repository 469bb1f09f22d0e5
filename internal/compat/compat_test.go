// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package compat

import (
	"strings"
	"testing"

	"github.com/jeranaias/voxstudio-installer/internal/host"
)

// goodProfile returns a profile that passes every check.
func goodProfile() *host.MachineProfile {
	return &host.MachineProfile{
		OS:                 "Ubuntu",
		TotalMemory:        16 << 30,
		AvailableDiskSpace: 100 << 30,
		PythonVersion:      "Python 3.11.4",
		GitVersion:         "git version 2.43.0",
	}
}

func TestEvaluateNilProfile(t *testing.T) {
	verdict := Evaluate(nil)
	if verdict.Rating != RatingUnknown {
		t.Errorf("Rating = %v, want RatingUnknown", verdict.Rating)
	}
	if len(verdict.Diagnostics) != 0 {
		t.Errorf("Diagnostics = %v, want none", verdict.Diagnostics)
	}
}

func TestEvaluateAllChecksPass(t *testing.T) {
	verdict := Evaluate(goodProfile())
	if verdict.Rating != RatingGood {
		t.Errorf("Rating = %v, want RatingGood", verdict.Rating)
	}
	if len(verdict.Diagnostics) != 0 {
		t.Errorf("Diagnostics = %v, want none", verdict.Diagnostics)
	}
	if verdict.Blocking() {
		t.Error("Blocking() = true for a good verdict")
	}
}

func TestEvaluateFindings(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*host.MachineProfile)
		wantRating Rating
		wantCount  int
	}{
		{
			name:       "low memory only",
			mutate:     func(p *host.MachineProfile) { p.TotalMemory = 4 << 30 },
			wantRating: RatingWarning,
			wantCount:  1,
		},
		{
			name:       "low disk only",
			mutate:     func(p *host.MachineProfile) { p.AvailableDiskSpace = 5 << 30 },
			wantRating: RatingWarning,
			wantCount:  1,
		},
		{
			name:       "python missing only",
			mutate:     func(p *host.MachineProfile) { p.PythonVersion = "" },
			wantRating: RatingWarning,
			wantCount:  1,
		},
		{
			name:       "git missing only",
			mutate:     func(p *host.MachineProfile) { p.GitVersion = "" },
			wantRating: RatingWarning,
			wantCount:  1,
		},
		{
			name: "two findings still warning",
			mutate: func(p *host.MachineProfile) {
				p.TotalMemory = 4 << 30
				p.GitVersion = ""
			},
			wantRating: RatingWarning,
			wantCount:  2,
		},
		{
			name: "three findings blocks",
			mutate: func(p *host.MachineProfile) {
				p.TotalMemory = 4 << 30
				p.AvailableDiskSpace = 5 << 30
				p.PythonVersion = ""
			},
			wantRating: RatingError,
			wantCount:  3,
		},
		{
			name: "four findings blocks",
			mutate: func(p *host.MachineProfile) {
				p.TotalMemory = 0
				p.AvailableDiskSpace = 0
				p.PythonVersion = ""
				p.GitVersion = ""
			},
			wantRating: RatingError,
			wantCount:  4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := goodProfile()
			tt.mutate(profile)

			verdict := Evaluate(profile)
			if verdict.Rating != tt.wantRating {
				t.Errorf("Rating = %v, want %v", verdict.Rating, tt.wantRating)
			}
			if len(verdict.Diagnostics) != tt.wantCount {
				t.Errorf("got %d diagnostics, want %d: %v",
					len(verdict.Diagnostics), tt.wantCount, verdict.Diagnostics)
			}
		})
	}
}

func TestEvaluateThresholdBoundaries(t *testing.T) {
	// Exactly the minimum passes; one byte under fails.
	profile := goodProfile()
	profile.TotalMemory = MinMemoryBytes
	profile.AvailableDiskSpace = MinDiskBytes
	if verdict := Evaluate(profile); verdict.Rating != RatingGood {
		t.Errorf("Rating at exact thresholds = %v, want RatingGood", verdict.Rating)
	}

	profile.TotalMemory = MinMemoryBytes - 1
	profile.AvailableDiskSpace = MinDiskBytes - 1
	verdict := Evaluate(profile)
	if verdict.Rating != RatingWarning {
		t.Errorf("Rating one byte under thresholds = %v, want RatingWarning", verdict.Rating)
	}
	if len(verdict.Diagnostics) != 2 {
		t.Errorf("got %d diagnostics, want 2", len(verdict.Diagnostics))
	}
}

func TestEvaluateDiagnosticOrder(t *testing.T) {
	profile := goodProfile()
	profile.TotalMemory = 0
	profile.AvailableDiskSpace = 0
	profile.PythonVersion = ""
	profile.GitVersion = ""

	verdict := Evaluate(profile)
	if len(verdict.Diagnostics) != 4 {
		t.Fatalf("got %d diagnostics, want 4", len(verdict.Diagnostics))
	}

	wantPrefixes := []string{
		"Insufficient memory",
		"Insufficient disk space",
		"Python not found",
		"Git not found",
	}
	for i, prefix := range wantPrefixes {
		if !strings.HasPrefix(verdict.Diagnostics[i], prefix) {
			t.Errorf("diagnostic[%d] = %q, want prefix %q", i, verdict.Diagnostics[i], prefix)
		}
	}
}

func TestEvaluateIsPure(t *testing.T) {
	profile := goodProfile()
	profile.PythonVersion = ""

	first := Evaluate(profile)
	second := Evaluate(profile)

	if first.Rating != second.Rating || len(first.Diagnostics) != len(second.Diagnostics) {
		t.Error("repeated evaluation of the same profile differed")
	}
	// The input snapshot must be untouched.
	if profile.TotalMemory != 16<<30 || profile.GitVersion == "" {
		t.Error("Evaluate mutated the input profile")
	}
}

func TestRatingString(t *testing.T) {
	tests := []struct {
		rating Rating
		want   string
	}{
		{RatingUnknown, "unknown"},
		{RatingGood, "good"},
		{RatingWarning, "warning"},
		{RatingError, "error"},
	}
	for _, tt := range tests {
		if got := tt.rating.String(); got != tt.want {
			t.Errorf("Rating(%d).String() = %q, want %q", tt.rating, got, tt.want)
		}
	}
}
