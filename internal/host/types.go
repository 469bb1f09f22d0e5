// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package host

import "fmt"

// =============================================================================
// MACHINE PROFILE
// =============================================================================

// MachineProfile is an immutable snapshot of the host machine's capabilities,
// as reported by the helper daemon. It is replaced wholesale on re-detection,
// never updated incrementally.
type MachineProfile struct {
	// OS is the operating system name (e.g., "macOS", "Ubuntu")
	OS string `json:"os"`
	// OSVersion is the operating system version string
	OSVersion string `json:"os_version"`
	// CPUName is the processor model name
	CPUName string `json:"cpu_name"`
	// CPUCores is the number of logical cores
	CPUCores int `json:"cpu_cores"`
	// TotalMemory is the total physical memory in bytes
	TotalMemory uint64 `json:"total_memory"`
	// AvailableMemory is the currently available memory in bytes
	AvailableMemory uint64 `json:"available_memory"`
	// TotalDiskSpace is the total storage in bytes
	TotalDiskSpace uint64 `json:"total_disk_space"`
	// AvailableDiskSpace is the free storage in bytes
	AvailableDiskSpace uint64 `json:"available_disk_space"`
	// GPUInfo lists graphics adapter descriptions, in detection order
	GPUInfo []string `json:"gpu_info"`
	// PythonVersion is the detected Python version string, empty if absent
	PythonVersion string `json:"python_version,omitempty"`
	// GitVersion is the detected Git version string, empty if absent
	GitVersion string `json:"git_version,omitempty"`
	// CUDAAvailable reports whether hardware acceleration is available
	CUDAAvailable bool `json:"cuda_available"`
}

// PrimaryGPU returns the first reported graphics adapter, or a placeholder
// when the daemon reported none.
func (p *MachineProfile) PrimaryGPU() string {
	if len(p.GPUInfo) == 0 {
		return "Unknown GPU"
	}
	return p.GPUInfo[0]
}

// =============================================================================
// INSTALL REQUEST
// =============================================================================

// ModelVariant selects which voice-model bundle to install.
type ModelVariant string

const (
	// VariantStandard is the default, balanced model bundle
	VariantStandard ModelVariant = "standard"
	// VariantLarge is the highest-quality bundle (larger download)
	VariantLarge ModelVariant = "large"
	// VariantSmall is the reduced bundle for constrained machines
	VariantSmall ModelVariant = "small"
)

// Valid reports whether the variant is one of the known bundle selectors.
func (v ModelVariant) Valid() bool {
	switch v {
	case VariantStandard, VariantLarge, VariantSmall:
		return true
	}
	return false
}

// InstallRequest describes one installation to submit to the helper daemon.
// It is mutable while the wizard collects options and frozen by the
// controller for the duration of an in-flight installation.
type InstallRequest struct {
	// InstallPath is the target installation directory (must be non-empty)
	InstallPath string `json:"install_path"`
	// ModelType selects the voice-model bundle
	ModelType ModelVariant `json:"model_type"`
	// UseGPU requests hardware-accelerated inference setup
	UseGPU bool `json:"use_gpu"`
}

// Validate checks the request before submission. Path semantics (existence,
// permissions) are the daemon's concern and deliberately not checked here.
func (r *InstallRequest) Validate() error {
	if r.InstallPath == "" {
		return fmt.Errorf("install path must not be empty")
	}
	if !r.ModelType.Valid() {
		return fmt.Errorf("unknown model variant %q", r.ModelType)
	}
	return nil
}

// =============================================================================
// PROGRESS REPORT
// =============================================================================

// ProgressReport is the daemon's view of the running installation. Each poll
// replaces the previous report wholesale. At most one of Complete and Failed
// is true; both false means the installation is still running.
type ProgressReport struct {
	// Step is the identifier of the phase currently executing
	Step string `json:"step"`
	// Percent is the overall completion percentage (0-100). The daemon
	// promises it is non-decreasing; the controller does not verify that.
	Percent int `json:"progress"`
	// Message is a human-readable status line
	Message string `json:"message"`
	// Complete is true once the installation finished successfully
	Complete bool `json:"is_complete"`
	// Failed is true once the installation failed
	Failed bool `json:"has_error"`
}

// EmptyReport returns the initial report used before any installation has
// started and after a reset.
func EmptyReport() ProgressReport {
	return ProgressReport{Step: "idle", Percent: 0, Message: ""}
}

// Running reports whether the installation is still in flight.
func (r ProgressReport) Running() bool {
	return !r.Complete && !r.Failed
}

// =============================================================================
// ACKNOWLEDGEMENTS
// =============================================================================

// StartAck is the daemon's acknowledgement of an accepted install request.
type StartAck struct {
	// RequestID echoes the client-assigned request identifier
	RequestID string `json:"request_id"`
	// Message is a human-readable acceptance note
	Message string `json:"message"`
}

// LaunchResult is returned when the installed application is launched.
type LaunchResult struct {
	// Message describes the launch outcome
	Message string `json:"message"`
}
