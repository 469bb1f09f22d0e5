// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package setup

import (
	"fmt"
	"strings"

	"github.com/jeranaias/voxstudio-installer/internal/detect"
	"github.com/jeranaias/voxstudio-installer/internal/host"
	"github.com/jeranaias/voxstudio-installer/internal/install"
	"github.com/jeranaias/voxstudio-installer/internal/util"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the wizard.
func (w *Wizard) View() string {
	switch w.screen {
	case ScreenWelcome:
		return w.viewWelcome()
	case ScreenRequirements:
		return w.viewRequirements()
	case ScreenOptions:
		return w.viewOptions()
	case ScreenInstalling:
		return w.viewInstalling()
	case ScreenComplete:
		return w.viewComplete()
	case ScreenFailed:
		return w.viewFailed()
	}
	return ""
}

func (w *Wizard) viewWelcome() string {
	var s strings.Builder

	// Logo with typing effect
	if w.typingTarget == logo {
		s.WriteString(titleStyle.Render(w.typingText))
	} else {
		s.WriteString(titleStyle.Render(logo))
	}

	s.WriteString("\n")
	s.WriteString(subtitleStyle.Render("    " + tagline))
	s.WriteString("\n\n")

	welcomeText := `
Welcome to the VoxStudio installer!

This installer will:

  * Check that installation is possible here
  * Review your machine against the requirements
  * Download the VoxStudio voice engine and models
  * Get you synthesizing in minutes

`
	s.WriteString(boxStyle.Render(welcomeText))
	s.WriteString("\n\n")

	s.WriteString(highlightStyle.Render("  Press ENTER to begin"))
	s.WriteString(dimStyle.Render("  |  Press Q to quit"))

	return w.center(s.String())
}

func (w *Wizard) viewRequirements() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("  System Requirements Check"))
	s.WriteString("\n\n")

	if !w.probeDone {
		s.WriteString(fmt.Sprintf("  %s Checking this environment...\n", w.spinner.View()))
		return w.center(s.String())
	}

	if w.session.Environment() == detect.EnvRestricted {
		s.WriteString(errorStyle.Render("  [FAIL] Environment check"))
		s.WriteString("\n\n")
		s.WriteString(boxStyle.Render(detect.RestrictedMessage))
		s.WriteString("\n\n")
		s.WriteString(dimStyle.Render("  Press Q to quit"))
		return w.center(s.String())
	}

	s.WriteString(successStyle.Render("  [OK] Helper service reachable"))
	s.WriteString("\n\n")

	profile := w.session.Profile()
	if profile == nil {
		if msg := w.session.ProfileError(); msg != "" {
			s.WriteString(warningStyle.Render("  [!!] " + msg))
			s.WriteString("\n")
		}
		// Best-effort local snapshot so the screen is not empty.
		s.WriteString(dimStyle.Render("  Showing locally detected values instead:\n\n"))
		w.writeProfile(&s, detect.FallbackProfile())
		s.WriteString("\n")
		s.WriteString(highlightStyle.Render("  Press R to retry"))
		s.WriteString(dimStyle.Render("  |  Press Q to quit"))
		return w.center(s.String())
	}

	w.writeProfile(&s, profile)
	s.WriteString("\n")

	switch {
	case w.verdict.Blocking():
		for _, d := range w.verdict.Diagnostics {
			s.WriteString(errorStyle.Render("  [FAIL] ") + d + "\n")
		}
		s.WriteString("\n")
		s.WriteString(errorStyle.Render("  This machine does not meet the requirements."))
		s.WriteString("\n\n")
		s.WriteString(dimStyle.Render("  Press R to re-check  |  Press Q to quit"))

	case len(w.verdict.Diagnostics) > 0:
		for _, d := range w.verdict.Diagnostics {
			s.WriteString(warningStyle.Render("  [!!] ") + d + "\n")
		}
		s.WriteString("\n")
		s.WriteString(warningStyle.Render("  Some requirements need attention"))
		s.WriteString("\n\n")
		s.WriteString(highlightStyle.Render("  Press ENTER to continue anyway"))

	default:
		s.WriteString(successStyle.Render("  All checks passed!"))
		s.WriteString("\n\n")
		s.WriteString(highlightStyle.Render("  Press ENTER to continue"))
	}

	return w.center(s.String())
}

// writeProfile renders the machine snapshot lines.
func (w *Wizard) writeProfile(s *strings.Builder, p *host.MachineProfile) {
	row := func(label, value string) {
		s.WriteString(fmt.Sprintf("  %-18s %s\n", label, dimStyle.Render(value)))
	}

	osLine := p.OS
	if p.OSVersion != "" {
		osLine += " " + p.OSVersion
	}
	row("Operating system", osLine)
	if p.CPUName != "" {
		row("Processor", fmt.Sprintf("%s (%d cores)", p.CPUName, p.CPUCores))
	} else {
		row("Processor", fmt.Sprintf("%d cores", p.CPUCores))
	}
	row("Memory", util.FormatBytes(p.TotalMemory))
	row("Free disk space", util.FormatBytes(p.AvailableDiskSpace))
	row("Graphics", p.PrimaryGPU())
	if p.CUDAAvailable {
		row("Acceleration", "CUDA available")
	}
	if p.PythonVersion != "" {
		row("Python", p.PythonVersion)
	}
	if p.GitVersion != "" {
		row("Git", p.GitVersion)
	}
}

func (w *Wizard) viewOptions() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("  Installation Options"))
	s.WriteString("\n\n")

	if failure := w.controller.Failure(); failure != "" {
		s.WriteString(errorStyle.Render("  Could not start: ") + failure)
		s.WriteString("\n\n")
	}

	s.WriteString(dimStyle.Render(fmt.Sprintf("  Install location: %s", w.installRequest().InstallPath)))
	s.WriteString("\n\n")

	rows := []struct {
		label string
		value string
	}{
		{"Voice model bundle", variantLabel(w.variant)},
		{"GPU acceleration", boolLabel(w.useGPU)},
		{"Start installation", ""},
	}

	for idx, row := range rows {
		cursor := "  "
		style := unselectedStyle
		if idx == w.cursor {
			cursor = "> "
			style = selectedStyle
		}
		line := row.label
		if row.value != "" {
			line = fmt.Sprintf("%-22s < %s >", row.label, row.value)
		}
		s.WriteString(style.Render(fmt.Sprintf("  %s%s", cursor, line)))
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(dimStyle.Render("  Up/Down to select, Left/Right to change, ENTER to confirm"))

	return w.center(s.String())
}

func variantLabel(v host.ModelVariant) string {
	switch v {
	case host.VariantLarge:
		return "Large (best quality)"
	case host.VariantSmall:
		return "Small (low resource)"
	default:
		return "Standard (recommended)"
	}
}

func boolLabel(b bool) string {
	if b {
		return "Enabled"
	}
	return "Disabled"
}

func (w *Wizard) viewInstalling() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("  Installing VoxStudio"))
	s.WriteString("\n\n")

	report := w.controller.Report()
	for _, phase := range install.PhaseStates(report) {
		var icon string
		style := dimStyle
		switch {
		case phase.Complete:
			icon = "[OK]"
			style = successStyle
		case phase.Active:
			icon = w.spinner.View()
			style = highlightStyle
		default:
			icon = "[ ]"
		}
		s.WriteString(fmt.Sprintf("  %s %s\n", style.Render(icon), phase.Label))
	}

	s.WriteString("\n")
	s.WriteString("  " + w.progress.ViewAs(float64(report.Percent)/100))
	s.WriteString("\n\n")

	if report.Message != "" {
		s.WriteString(dimStyle.Render("  " + util.TruncateWidth(report.Message, 70)))
		s.WriteString("\n")
	}

	return w.center(s.String())
}

func (w *Wizard) viewComplete() string {
	var s strings.Builder

	successArt := `
    +------------------------------------------+
    |                                          |
    |      *** Installation Complete! ***      |
    |                                          |
    +------------------------------------------+
`
	s.WriteString(successStyle.Render(successArt))
	s.WriteString("\n")

	s.WriteString(dimStyle.Render(fmt.Sprintf("  Installed to: %s", w.controller.Request().InstallPath)))
	s.WriteString("\n\n")

	s.WriteString("  Choose your next step:\n\n")

	launch := "  Launch VoxStudio now"
	if w.launchSelected {
		s.WriteString(selectedStyle.Render("  > " + launch))
	} else {
		s.WriteString(unselectedStyle.Render("    " + launch))
	}
	s.WriteString("\n\n")

	closeText := "  Close installer"
	if !w.launchSelected {
		s.WriteString(selectedStyle.Render("  > " + closeText))
	} else {
		s.WriteString(unselectedStyle.Render("    " + closeText))
	}
	s.WriteString("\n\n")

	s.WriteString(dimStyle.Render("  Up/Down or Tab to select  |  Enter to confirm  |  O to open folder"))

	if w.statusLine != "" {
		s.WriteString("\n\n  " + w.statusLine)
	}

	return w.center(s.String())
}

func (w *Wizard) viewFailed() string {
	var s strings.Builder

	s.WriteString(errorStyle.Render("  Installation Failed"))
	s.WriteString("\n\n")

	failure := w.controller.Failure()
	if failure == "" {
		failure = "The installation stopped unexpectedly."
	}
	s.WriteString(boxStyle.Render(failure))
	s.WriteString("\n\n")

	s.WriteString(highlightStyle.Render("  Press ENTER to go back and try again"))
	s.WriteString(dimStyle.Render("  |  Press Q to quit"))

	return w.center(s.String())
}

// center centers content on screen
func (w *Wizard) center(content string) string {
	if w.width == 0 || w.height == 0 {
		return content
	}

	lines := strings.Split(content, "\n")
	height := len(lines)

	topPadding := (w.height - height) / 3
	if topPadding < 0 {
		topPadding = 0
	}

	var s strings.Builder
	for j := 0; j < topPadding; j++ {
		s.WriteString("\n")
	}
	s.WriteString(content)

	return s.String()
}
