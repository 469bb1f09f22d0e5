// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package main provides the VoxStudio installer - a guided setup experience
// for the local voice synthesis studio.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/jeranaias/voxstudio-installer/internal/compat"
	"github.com/jeranaias/voxstudio-installer/internal/config"
	"github.com/jeranaias/voxstudio-installer/internal/detect"
	"github.com/jeranaias/voxstudio-installer/internal/host"
	"github.com/jeranaias/voxstudio-installer/internal/install"
	"github.com/jeranaias/voxstudio-installer/internal/ui/setup"
	"github.com/jeranaias/voxstudio-installer/internal/util"
)

const version = "1.0.0"

func main() {
	textMode := false
	for _, arg := range os.Args[1:] {
		switch arg {
		case "--text", "-t", "--simple":
			textMode = true
		case "--help", "-h":
			printHelp()
			return
		case "--version", "-v":
			fmt.Printf("voxstudio installer v%s\n", version)
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	client := host.NewClientWithConfig(cfg.ClientConfig())
	session := detect.NewSession(client)
	controller := install.NewController(client)

	if textMode || cfg.UI.PlainOutput {
		runTextInstaller(cfg, client, session)
		return
	}

	if !isTerminal() {
		fmt.Println("The VoxStudio installer requires an interactive terminal.")
		fmt.Println("Run with --text for a simple text-based install.")
		os.Exit(1)
	}

	if cfg.UI.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	// Mouse capture disabled to allow terminal text selection/copy
	p := tea.NewProgram(
		setup.NewWizard(cfg, session, controller),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running installer: %v\n", err)
		os.Exit(1)
	}
}

// printHelp shows usage information
func printHelp() {
	fmt.Println(`voxstudio installer v` + version + `

Usage: voxstudio-installer [OPTIONS]

Options:
  --text, -t     Run in text mode (copy/paste friendly)
  --help, -h     Show this help
  --version, -v  Show version

The default mode is an interactive TUI installer.
Use --text for a simple text-based installer that's easy to copy/paste.`)
}

// isTerminal checks if we're running in an interactive terminal
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// =============================================================================
// TEXT MODE INSTALLER (Copy/Paste Friendly)
// =============================================================================

func runTextInstaller(cfg *config.Config, client *host.Client, session *detect.Session) {
	reader := bufio.NewReader(os.Stdin)
	ctx := context.Background()

	fmt.Println()
	fmt.Println("================================================================================")
	fmt.Println("                            VOXSTUDIO INSTALLER")
	fmt.Println("             Studio-quality voice synthesis on your own machine")
	fmt.Println("================================================================================")
	fmt.Println()

	// Environment check
	if session.Probe(ctx) != detect.EnvPrivileged {
		fmt.Println(detect.RestrictedMessage)
		os.Exit(1)
	}
	fmt.Println("  [OK] Helper service reachable")
	fmt.Println()

	// Requirements
	fmt.Println("--------------------------------------------------------------------------------")
	fmt.Println("                           SYSTEM REQUIREMENTS CHECK")
	fmt.Println("--------------------------------------------------------------------------------")
	fmt.Println()

	profile := session.Profile()
	if profile == nil {
		fmt.Printf("  [!!] %s\n", session.ProfileError())
	} else {
		fmt.Printf("  Operating system:  %s %s\n", profile.OS, profile.OSVersion)
		fmt.Printf("  Memory:            %s\n", util.FormatBytes(profile.TotalMemory))
		fmt.Printf("  Free disk space:   %s\n", util.FormatBytes(profile.AvailableDiskSpace))
		fmt.Printf("  Graphics:          %s\n", profile.PrimaryGPU())
	}
	fmt.Println()

	verdict := compat.Evaluate(profile)
	for _, d := range verdict.Diagnostics {
		fmt.Printf("  [!!] %s\n", d)
	}
	if verdict.Blocking() {
		fmt.Println()
		fmt.Println("This machine does not meet the requirements. Installation cancelled.")
		os.Exit(1)
	}
	if len(verdict.Diagnostics) == 0 {
		fmt.Println("  [OK] All checks passed")
	}
	fmt.Println()

	// Confirm
	installPath := cfg.Install.Path
	if installPath == "" {
		installPath = session.InstallPath()
	}
	fmt.Printf("Install location: %s\n", installPath)
	fmt.Print("Press Enter to install (or 'q' to quit): ")
	input, _ := reader.ReadString('\n')
	if strings.TrimSpace(input) == "q" {
		fmt.Println("Installation cancelled.")
		return
	}

	// Install
	req := host.InstallRequest{
		InstallPath: installPath,
		ModelType:   host.ModelVariant(cfg.Install.ModelVariant),
		UseGPU:      cfg.Install.UseGPU,
	}
	if _, err := client.StartInstall(ctx, req); err != nil {
		fmt.Printf("\nInstallation failed to start: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	lastMessage := ""
	for {
		time.Sleep(install.PollInterval)

		report, err := client.Progress(ctx)
		if err != nil {
			fmt.Printf("\nInstallation failed: %v\n", err)
			os.Exit(1)
		}
		if report.Message != "" && report.Message != lastMessage {
			fmt.Printf("  [%3s] %s\n", util.FormatPercent(report.Percent), report.Message)
			lastMessage = report.Message
		}
		if report.Failed {
			fmt.Printf("\nInstallation failed: %s\n", report.Message)
			os.Exit(1)
		}
		if report.Complete {
			break
		}
	}

	fmt.Println()
	fmt.Println("================================================================================")
	fmt.Println("                         INSTALLATION COMPLETE!")
	fmt.Println("================================================================================")
	fmt.Println()
	fmt.Print("Press Enter to exit (or 'l' to launch VoxStudio now): ")
	input, _ = reader.ReadString('\n')
	if strings.TrimSpace(input) == "l" {
		if _, err := client.LaunchApp(ctx, installPath); err != nil {
			fmt.Printf("Launch failed: %v\n", err)
		} else {
			fmt.Println("Launching VoxStudio...")
		}
	}
}
