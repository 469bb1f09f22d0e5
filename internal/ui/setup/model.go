// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package setup

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/voxstudio-installer/internal/compat"
	"github.com/jeranaias/voxstudio-installer/internal/config"
	"github.com/jeranaias/voxstudio-installer/internal/detect"
	"github.com/jeranaias/voxstudio-installer/internal/host"
	"github.com/jeranaias/voxstudio-installer/internal/install"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	// Colors
	brandPrimary   = lipgloss.Color("#8B5CF6") // Violet
	brandSecondary = lipgloss.Color("#06B6D4") // Cyan
	brandAccent    = lipgloss.Color("#10B981") // Emerald
	brandWarning   = lipgloss.Color("#F59E0B") // Amber
	brandError     = lipgloss.Color("#EF4444") // Red
	textMuted      = lipgloss.Color("#6B7280") // Gray

	// Styles
	titleStyle = lipgloss.NewStyle().
			Foreground(brandPrimary).
			Bold(true).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(textMuted).
			Italic(true)

	successStyle = lipgloss.NewStyle().
			Foreground(brandAccent).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(brandError).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(brandWarning)

	highlightStyle = lipgloss.NewStyle().
			Foreground(brandSecondary).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(textMuted)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(brandPrimary).
			Padding(1, 2)

	selectedStyle = lipgloss.NewStyle().
			Foreground(brandPrimary).
			Bold(true)

	unselectedStyle = lipgloss.NewStyle().
			Foreground(textMuted)
)

// =============================================================================
// ASCII ART
// =============================================================================

const logo = `
    ██╗   ██╗ ██████╗ ██╗  ██╗███████╗████████╗██╗   ██╗██████╗ ██╗ ██████╗
    ██║   ██║██╔═══██╗╚██╗██╔╝██╔════╝╚══██╔══╝██║   ██║██╔══██╗██║██╔═══██╗
    ██║   ██║██║   ██║ ╚███╔╝ ███████╗   ██║   ██║   ██║██║  ██║██║██║   ██║
    ╚██╗ ██╔╝██║   ██║ ██╔██╗ ╚════██║   ██║   ██║   ██║██║  ██║██║██║   ██║
     ╚████╔╝ ╚██████╔╝██╔╝ ██╗███████║   ██║   ╚██████╔╝██████╔╝██║╚██████╔╝
      ╚═══╝   ╚═════╝ ╚═╝  ╚═╝╚══════╝   ╚═╝    ╚═════╝ ╚═════╝ ╚═╝ ╚═════╝
`

const tagline = "Studio-quality voice synthesis on your own machine"

// =============================================================================
// WIZARD MODEL
// =============================================================================

// Screen represents the current wizard screen
type Screen int

const (
	ScreenWelcome Screen = iota
	ScreenRequirements
	ScreenOptions
	ScreenInstalling
	ScreenComplete
	ScreenFailed
)

// Option rows on the options screen.
const (
	optVariant = iota
	optGPU
	optStart
	optionCount
)

// Wizard is the main installer wizard model.
type Wizard struct {
	screen Screen
	width  int
	height int

	spinner  spinner.Model
	progress progress.Model

	session    *detect.Session
	controller *install.Controller
	cfg        *config.Config

	probeDone bool
	verdict   compat.Verdict

	// Options screen state
	cursor  int
	variant host.ModelVariant
	useGPU  bool

	// Completion screen
	launchSelected bool
	statusLine     string

	// Animation state
	typingText   string
	typingTarget string
	typingIndex  int
}

// NewWizard creates the wizard in its welcome screen.
func NewWizard(cfg *config.Config, session *detect.Session, controller *install.Controller) *Wizard {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(brandPrimary)

	p := progress.New(progress.WithDefaultGradient())

	return &Wizard{
		screen:         ScreenWelcome,
		spinner:        s,
		progress:       p,
		session:        session,
		controller:     controller,
		cfg:            cfg,
		variant:        host.ModelVariant(cfg.Install.ModelVariant),
		useGPU:         cfg.Install.UseGPU,
		launchSelected: true,
	}
}

// Init starts the logo animation and the one-shot environment probe.
func (w *Wizard) Init() tea.Cmd {
	return tea.Batch(
		w.spinner.Tick,
		w.typeWriter(logo, 5*time.Millisecond),
		w.probeCmd(),
	)
}

// =============================================================================
// MESSAGES
// =============================================================================

// typeWriterMsg updates the typing animation
type typeWriterMsg struct {
	target string
	index  int
}

// probeDoneMsg signals the startup detection finished
type probeDoneMsg struct {
	env detect.Environment
}

// profileRefreshedMsg signals an explicit profile re-fetch finished
type profileRefreshedMsg struct{}

// =============================================================================
// COMMANDS
// =============================================================================

func (w *Wizard) probeCmd() tea.Cmd {
	session := w.session
	return func() tea.Msg {
		return probeDoneMsg{env: session.Probe(context.Background())}
	}
}

func (w *Wizard) refreshProfileCmd() tea.Cmd {
	session := w.session
	return func() tea.Msg {
		session.RefreshProfile(context.Background())
		return profileRefreshedMsg{}
	}
}

// typeWriter starts a typing animation
func (w *Wizard) typeWriter(text string, delay time.Duration) tea.Cmd {
	w.typingTarget = text
	w.typingIndex = 0
	w.typingText = ""
	return w.typeWriterTick(text, 1, delay)
}

// typeWriterTick sends the next typewriter tick
func (w *Wizard) typeWriterTick(target string, index int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return typeWriterMsg{target: target, index: index}
	})
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages.
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return w.handleKey(msg)

	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
		progressWidth := msg.Width - 20
		if progressWidth < 20 {
			progressWidth = 20
		}
		if progressWidth > 100 {
			progressWidth = 100
		}
		w.progress.Width = progressWidth
		return w, w.spinner.Tick

	case spinner.TickMsg:
		var cmd tea.Cmd
		w.spinner, cmd = w.spinner.Update(msg)
		return w, cmd

	case typeWriterMsg:
		if msg.target == w.typingTarget && msg.index <= len(msg.target) {
			w.typingText = msg.target[:msg.index]
			w.typingIndex = msg.index
			if msg.index < len(msg.target) {
				return w, w.typeWriterTick(msg.target, msg.index+1, 5*time.Millisecond)
			}
		}
		return w, nil

	case probeDoneMsg:
		w.probeDone = true
		w.verdict = compat.Evaluate(w.session.Profile())
		return w, nil

	case profileRefreshedMsg:
		w.verdict = compat.Evaluate(w.session.Profile())
		return w, nil

	case install.LaunchDoneMsg:
		if msg.Err != nil {
			w.statusLine = errorStyle.Render("Launch failed: " + msg.Err.Error())
			return w, nil
		}
		return w, tea.Quit

	case install.OpenDirDoneMsg:
		if msg.Err != nil {
			w.statusLine = errorStyle.Render("Could not open folder: " + msg.Err.Error())
		} else {
			w.statusLine = dimStyle.Render("Opened the installation folder.")
		}
		return w, nil
	}

	// Everything else may belong to the installation controller.
	cmd := w.controller.Update(msg)
	w.syncScreen()
	return w, cmd
}

// syncScreen follows the controller out of the installing screen.
func (w *Wizard) syncScreen() {
	if w.screen != ScreenInstalling {
		return
	}
	switch w.controller.State() {
	case install.StateCompleted:
		w.screen = ScreenComplete
	case install.StateFailed:
		w.screen = ScreenFailed
	case install.StateIdle:
		// Start was rejected; the options screen shows the message and the
		// user can retry immediately.
		w.screen = ScreenOptions
	}
}

// handleKey processes key presses
func (w *Wizard) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return w, tea.Quit

	case "enter", " ":
		return w.handleSelect()

	case "up", "k":
		if w.screen == ScreenOptions && w.cursor > 0 {
			w.cursor--
		}
		if w.screen == ScreenComplete {
			w.launchSelected = true
		}
		return w, nil

	case "down", "j":
		if w.screen == ScreenOptions && w.cursor < optionCount-1 {
			w.cursor++
		}
		if w.screen == ScreenComplete {
			w.launchSelected = false
		}
		return w, nil

	case "left", "h", "right", "l":
		if w.screen == ScreenOptions {
			w.cycleOption(msg.String() == "right" || msg.String() == "l")
		}
		return w, nil

	case "tab":
		if w.screen == ScreenComplete {
			w.launchSelected = !w.launchSelected
		}
		return w, nil

	case "r":
		if w.screen == ScreenRequirements && w.probeDone {
			return w, w.refreshProfileCmd()
		}
		return w, nil

	case "o":
		if w.screen == ScreenComplete {
			return w, w.controller.OpenDir()
		}
		return w, nil
	}

	return w, nil
}

// cycleOption changes the value under the cursor on the options screen.
func (w *Wizard) cycleOption(forward bool) {
	switch w.cursor {
	case optVariant:
		order := []host.ModelVariant{host.VariantStandard, host.VariantLarge, host.VariantSmall}
		idx := 0
		for i, v := range order {
			if v == w.variant {
				idx = i
				break
			}
		}
		if forward {
			idx = (idx + 1) % len(order)
		} else {
			idx = (idx + len(order) - 1) % len(order)
		}
		w.variant = order[idx]
	case optGPU:
		w.useGPU = !w.useGPU
	}
}

// handleSelect processes selection/enter
func (w *Wizard) handleSelect() (tea.Model, tea.Cmd) {
	switch w.screen {
	case ScreenWelcome:
		w.screen = ScreenRequirements
		return w, nil

	case ScreenRequirements:
		if !w.probeDone {
			return w, nil
		}
		if !w.session.Capable() || w.verdict.Blocking() {
			// Nothing to continue to; the screen explains why.
			return w, nil
		}
		w.screen = ScreenOptions
		return w, nil

	case ScreenOptions:
		if w.cursor != optStart {
			return w, nil
		}
		if !w.controller.CanStart(w.session.Environment(), w.verdict) {
			return w, nil
		}
		req := w.installRequest()
		cmd := w.controller.Start(req)
		if cmd == nil {
			return w, nil
		}
		w.screen = ScreenInstalling
		return w, cmd

	case ScreenComplete:
		if w.launchSelected {
			return w, w.controller.Launch()
		}
		return w, tea.Quit

	case ScreenFailed:
		if w.controller.Reset() {
			w.screen = ScreenOptions
		}
		return w, nil
	}

	return w, nil
}

// installRequest assembles the request from the collected options.
func (w *Wizard) installRequest() host.InstallRequest {
	path := w.cfg.Install.Path
	if path == "" {
		path = w.session.InstallPath()
	}
	return host.InstallRequest{
		InstallPath: path,
		ModelType:   w.variant,
		UseGPU:      w.useGPU,
	}
}
