// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package install

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jeranaias/voxstudio-installer/internal/compat"
	"github.com/jeranaias/voxstudio-installer/internal/detect"
	"github.com/jeranaias/voxstudio-installer/internal/host"
)

// PollInterval is the fixed delay between a handled progress response and
// the next poll.
const PollInterval = 1000 * time.Millisecond

// =============================================================================
// STATES
// =============================================================================

// State is the lifecycle state of the controller.
type State int

const (
	// StateIdle - no installation in flight; the only state Start accepts
	StateIdle State = iota
	// StateStarting - start request submitted, acknowledgement pending
	StateStarting
	// StateRunning - installation accepted, progress polling active
	StateRunning
	// StateCompleted - terminal success
	StateCompleted
	// StateFailed - terminal failure; Reset returns to idle
	StateFailed
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "invalid"
	}
}

// validTransitions defines the allowed state machine edges. A rejected start
// aborts back to idle rather than failing; only a running installation can
// fail.
var validTransitions = map[State][]State{
	StateIdle:      {StateStarting},
	StateStarting:  {StateRunning, StateIdle},
	StateRunning:   {StateCompleted, StateFailed},
	StateCompleted: {},
	StateFailed:    {StateIdle},
}

// CanTransitionTo checks if transitioning to the target state is allowed.
func (s State) CanTransitionTo(target State) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// =============================================================================
// MESSAGES
// =============================================================================

// Internal messages carry the run ID they were issued under so results from
// a superseded run are recognizably stale.

type startResultMsg struct {
	runID string
	ack   *host.StartAck
	err   error
}

type pollTickMsg struct {
	runID string
}

type progressMsg struct {
	runID  string
	report *host.ProgressReport
	err    error
}

// LaunchDoneMsg reports the outcome of launching the installed application.
type LaunchDoneMsg struct {
	Message string
	Err     error
}

// OpenDirDoneMsg reports the outcome of opening the install directory.
type OpenDirDoneMsg struct {
	Err error
}

// =============================================================================
// BACKEND INTERFACE
// =============================================================================

// Backend is the subset of the daemon client the controller needs.
// *host.Client satisfies it; tests substitute a fake.
type Backend interface {
	StartInstall(ctx context.Context, req host.InstallRequest) (*host.StartAck, error)
	Progress(ctx context.Context) (*host.ProgressReport, error)
	LaunchApp(ctx context.Context, installPath string) (*host.LaunchResult, error)
	OpenInstallDir(ctx context.Context, installPath string) error
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller is the installation state machine. It is driven from the
// bubbletea event loop: commands it returns perform the daemon calls and
// feed their results back through Update. All reads are synchronous.
type Controller struct {
	backend Backend

	state   State
	runID   string
	request host.InstallRequest
	report  host.ProgressReport
	failure string
}

// NewController creates an idle controller backed by the given daemon client.
func NewController(backend Backend) *Controller {
	return &Controller{
		backend: backend,
		state:   StateIdle,
		report:  host.EmptyReport(),
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() State { return c.state }

// Report returns the most recent progress report. Before any installation
// and after a reset it is the empty idle report.
func (c *Controller) Report() host.ProgressReport { return c.report }

// Failure returns the most recent failure message, verbatim as reported by
// the daemon or transport. It is set when an installation fails or a start
// request is rejected, and cleared by Start and Reset.
func (c *Controller) Failure() string { return c.failure }

// Request returns the install request of the current or last run.
func (c *Controller) Request() host.InstallRequest { return c.request }

// CanStart reports whether a new installation may begin: the controller must
// be idle, the environment privileged, and the compatibility verdict
// non-blocking.
func (c *Controller) CanStart(env detect.Environment, verdict compat.Verdict) bool {
	return c.state == StateIdle && env == detect.EnvPrivileged && !verdict.Blocking()
}

// transition moves to the target state if the edge is valid. Invalid edges
// are ignored; callers guard them, this is the backstop.
func (c *Controller) transition(target State) bool {
	if !c.state.CanTransitionTo(target) {
		return false
	}
	c.state = target
	return true
}

// =============================================================================
// STARTING
// =============================================================================

// Start submits an installation request. It is a no-op returning nil unless
// the controller is idle. The returned command performs the daemon call; the
// result re-enters through Update.
func (c *Controller) Start(req host.InstallRequest) tea.Cmd {
	if c.state != StateIdle {
		return nil
	}
	c.transition(StateStarting)
	c.runID = uuid.New().String()
	c.request = req
	c.failure = ""
	c.report = host.ProgressReport{Step: "preparing", Message: "Contacting helper service..."}

	runID := c.runID
	backend := c.backend
	return func() tea.Msg {
		ack, err := backend.StartInstall(context.Background(), req)
		return startResultMsg{runID: runID, ack: ack, err: err}
	}
}

// =============================================================================
// MESSAGE HANDLING
// =============================================================================

// Update routes controller messages. Messages it does not own return nil.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case startResultMsg:
		return c.handleStartResult(msg)
	case pollTickMsg:
		return c.handlePollTick(msg)
	case progressMsg:
		return c.handleProgress(msg)
	}
	return nil
}

func (c *Controller) handleStartResult(msg startResultMsg) tea.Cmd {
	if msg.runID != c.runID || c.state != StateStarting {
		return nil
	}
	if msg.err != nil {
		// A rejected start aborts the attempt: back to idle with the
		// message surfaced verbatim, fully retryable without a reset.
		c.failure = msg.err.Error()
		c.report = host.EmptyReport()
		c.transition(StateIdle)
		return nil
	}
	c.transition(StateRunning)
	return c.scheduleTick()
}

// scheduleTick arms the next poll timer, stamped with the current run.
func (c *Controller) scheduleTick() tea.Cmd {
	runID := c.runID
	return tea.Tick(PollInterval, func(time.Time) tea.Msg {
		return pollTickMsg{runID: runID}
	})
}

func (c *Controller) handlePollTick(msg pollTickMsg) tea.Cmd {
	if msg.runID != c.runID || c.state != StateRunning {
		return nil
	}
	runID := c.runID
	backend := c.backend
	return func() tea.Msg {
		report, err := backend.Progress(context.Background())
		return progressMsg{runID: runID, report: report, err: err}
	}
}

func (c *Controller) handleProgress(msg progressMsg) tea.Cmd {
	if msg.runID != c.runID || c.state != StateRunning {
		return nil
	}
	if msg.err != nil {
		// A poll that cannot reach the daemon is indistinguishable from a
		// dead installation; surface the transport error verbatim.
		c.fail(msg.err.Error())
		return nil
	}

	c.report = *msg.report
	switch {
	case msg.report.Failed:
		c.failure = msg.report.Message
		c.transition(StateFailed)
		return nil
	case msg.report.Complete:
		c.transition(StateCompleted)
		return nil
	}
	return c.scheduleTick()
}

// fail records the failure message and moves to StateFailed.
func (c *Controller) fail(message string) {
	c.failure = message
	c.report = host.ProgressReport{Step: "error", Message: message, Failed: true}
	c.transition(StateFailed)
}

// =============================================================================
// RESET
// =============================================================================

// Reset returns a failed controller to idle, restoring the empty report and
// invalidating any in-flight results. Reset from any other state is
// rejected.
func (c *Controller) Reset() bool {
	if c.state != StateFailed {
		return false
	}
	c.transition(StateIdle)
	c.runID = uuid.New().String()
	c.report = host.EmptyReport()
	c.failure = ""
	return true
}

// =============================================================================
// POST-COMPLETION
// =============================================================================

// Launch asks the daemon to start the installed application. Only valid
// once the installation completed.
func (c *Controller) Launch() tea.Cmd {
	if c.state != StateCompleted {
		return nil
	}
	backend := c.backend
	path := c.request.InstallPath
	return func() tea.Msg {
		result, err := backend.LaunchApp(context.Background(), path)
		msg := LaunchDoneMsg{Err: err}
		if result != nil {
			msg.Message = result.Message
		}
		return msg
	}
}

// OpenDir asks the daemon to open the install directory in the file
// manager. Only valid once the installation completed.
func (c *Controller) OpenDir() tea.Cmd {
	if c.state != StateCompleted {
		return nil
	}
	backend := c.backend
	path := c.request.InstallPath
	return func() tea.Msg {
		return OpenDirDoneMsg{Err: backend.OpenInstallDir(context.Background(), path)}
	}
}
