// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package install

import "github.com/jeranaias/voxstudio-installer/internal/host"

// Phase is one of the fixed stages shown on the progress screen. The daemon
// reports a step identifier in each progress payload; phases are matched to
// it by ID.
type Phase struct {
	// ID matches the daemon's step identifier
	ID string
	// Label is the human-readable stage name
	Label string
}

// Phases is the ordered display sequence. It is a presentation concern only:
// the controller's transitions never depend on which phase is active.
var Phases = []Phase{
	{ID: "preparing", Label: "Preparing environment"},
	{ID: "downloading", Label: "Downloading application sources"},
	{ID: "models", Label: "Installing voice models"},
	{ID: "dependencies", Label: "Configuring dependencies"},
	{ID: "finalizing", Label: "Finalizing configuration"},
}

// PhaseState is the display state of one phase for a given progress report.
// Active and Complete are computed independently: Active matches the
// reported step identifier, Complete is derived purely from the overall
// percentage. A daemon report whose percentage and step disagree can mark a
// phase both active and complete; that inconsistency is shown as-is.
type PhaseState struct {
	Phase
	Active   bool
	Complete bool
}

// PhaseStates maps a progress report onto the display sequence. A phase is
// complete when the overall percentage strictly exceeds its starting
// boundary (index/count of 100).
func PhaseStates(report host.ProgressReport) []PhaseState {
	states := make([]PhaseState, len(Phases))
	for i, phase := range Phases {
		states[i] = PhaseState{
			Phase:    phase,
			Active:   report.Step == phase.ID,
			Complete: report.Percent > i*100/len(Phases),
		}
	}
	return states
}
