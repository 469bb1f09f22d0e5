// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package install

import (
	"testing"

	"github.com/jeranaias/voxstudio-installer/internal/host"
)

func TestPhaseSequence(t *testing.T) {
	if len(Phases) != 5 {
		t.Fatalf("len(Phases) = %d, want 5", len(Phases))
	}
	wantOrder := []string{"preparing", "downloading", "models", "dependencies", "finalizing"}
	for i, id := range wantOrder {
		if Phases[i].ID != id {
			t.Errorf("Phases[%d].ID = %q, want %q", i, Phases[i].ID, id)
		}
		if Phases[i].Label == "" {
			t.Errorf("Phases[%d] has empty label", i)
		}
	}
}

func TestPhaseStatesActiveMatchesStep(t *testing.T) {
	report := host.ProgressReport{Step: "models", Percent: 50}
	states := PhaseStates(report)

	for i, s := range states {
		wantActive := s.ID == "models"
		if s.Active != wantActive {
			t.Errorf("phase %d (%s) Active = %v, want %v", i, s.ID, s.Active, wantActive)
		}
	}
}

func TestPhaseStatesCompletionBoundaries(t *testing.T) {
	tests := []struct {
		percent      int
		wantComplete []bool
	}{
		{0, []bool{false, false, false, false, false}},
		{1, []bool{true, false, false, false, false}},
		{20, []bool{true, false, false, false, false}},
		{21, []bool{true, true, false, false, false}},
		{50, []bool{true, true, true, false, false}},
		{80, []bool{true, true, true, true, false}},
		{81, []bool{true, true, true, true, true}},
		{100, []bool{true, true, true, true, true}},
	}

	for _, tt := range tests {
		states := PhaseStates(host.ProgressReport{Percent: tt.percent})
		for i, want := range tt.wantComplete {
			if states[i].Complete != want {
				t.Errorf("percent %d: phase %d Complete = %v, want %v",
					tt.percent, i, states[i].Complete, want)
			}
		}
	}
}

func TestPhaseStatesTolerateInconsistentReport(t *testing.T) {
	// Step names the first phase while the percentage says it is long past.
	// Both flags are shown as reported; no reconciliation.
	report := host.ProgressReport{Step: "preparing", Percent: 90}
	states := PhaseStates(report)

	if !states[0].Active {
		t.Error("reported step not marked active")
	}
	if !states[0].Complete {
		t.Error("phase below the percentage boundary not marked complete")
	}
}

func TestPhaseStatesUnknownStep(t *testing.T) {
	// A step identifier outside the display sequence leaves no phase active.
	states := PhaseStates(host.ProgressReport{Step: "verifying", Percent: 10})
	for i, s := range states {
		if s.Active {
			t.Errorf("phase %d active for unknown step", i)
		}
	}
}
