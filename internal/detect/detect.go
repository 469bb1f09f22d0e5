// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package detect

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/jeranaias/voxstudio-installer/internal/host"
)

// RestrictedMessage is the fixed explanation shown when the environment
// cannot reach the helper daemon. The wording is stable so the UI can rely
// on it.
const RestrictedMessage = "Installation is unavailable: the VoxStudio helper service could not be reached. " +
	"This usually means the installer is running in a sandboxed or unsupported environment."

// fallbackDirName is the directory under $HOME used when the daemon cannot
// supply a default install path.
const fallbackDirName = "VoxStudio"

// =============================================================================
// ENVIRONMENT
// =============================================================================

// Environment classifies the runtime context of the installer.
type Environment int

const (
	// EnvUnknown means the probe has not run yet
	EnvUnknown Environment = iota
	// EnvPrivileged means the helper daemon answered the probe; installation is possible
	EnvPrivileged
	// EnvRestricted means the probe failed; installation is unavailable this session
	EnvRestricted
)

// String returns the string representation of the environment.
func (e Environment) String() string {
	switch e {
	case EnvPrivileged:
		return "privileged"
	case EnvRestricted:
		return "restricted"
	default:
		return "unknown"
	}
}

// =============================================================================
// BACKEND INTERFACE
// =============================================================================

// Backend is the subset of the helper daemon client the detector needs.
// *host.Client satisfies it; tests substitute a fake.
type Backend interface {
	Probe(ctx context.Context) error
	DefaultInstallPath(ctx context.Context) (string, error)
	FetchMachineProfile(ctx context.Context) (*host.MachineProfile, error)
}

// =============================================================================
// SESSION
// =============================================================================

// Session holds the per-process detection state: the capability flag, the
// current machine profile, and the resolved install path. A Session is safe
// for concurrent use, though the installer drives it from a single loop.
type Session struct {
	backend Backend

	mu          sync.Mutex
	env         Environment
	profile     *host.MachineProfile
	profileErr  string
	installPath string
}

// NewSession creates a detection session backed by the given daemon client.
// The install path starts at the home-directory fallback until the daemon
// supplies a better one.
func NewSession(backend Backend) *Session {
	return &Session{
		backend:     backend,
		env:         EnvUnknown,
		installPath: fallbackInstallPath(),
	}
}

// fallbackInstallPath returns $HOME/VoxStudio, or a shared location when the
// home directory cannot be resolved.
func fallbackInstallPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		if runtime.GOOS == "windows" {
			return filepath.Join(`C:\`, fallbackDirName)
		}
		return filepath.Join("/Users/Shared", fallbackDirName)
	}
	return filepath.Join(home, fallbackDirName)
}

// Probe performs the one-shot startup detection. The first call probes the
// daemon; on success it also fetches the default install path and a machine
// profile. Every later call returns the stored result without touching the
// daemon again - a restricted verdict is final for the session.
func (s *Session) Probe(ctx context.Context) Environment {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.env != EnvUnknown {
		return s.env
	}

	if err := s.backend.Probe(ctx); err != nil {
		s.env = EnvRestricted
		return s.env
	}
	s.env = EnvPrivileged

	// Default path: keep the fallback on error.
	if path, err := s.backend.DefaultInstallPath(ctx); err == nil && path != "" {
		s.installPath = path
	}

	// Profile: surface the message, leave the profile unset on error.
	s.fetchProfileLocked(ctx)

	return s.env
}

// fetchProfileLocked refreshes the machine profile. Caller holds s.mu.
func (s *Session) fetchProfileLocked(ctx context.Context) {
	profile, err := s.backend.FetchMachineProfile(ctx)
	if err != nil {
		s.profileErr = fmt.Sprintf("Could not read system information: %v", err)
		return
	}
	s.profile = profile
	s.profileErr = ""
}

// RefreshProfile re-fetches the machine profile on explicit user request.
// It is a no-op in a restricted environment. The previous profile is kept
// when the fetch fails.
func (s *Session) RefreshProfile(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.env != EnvPrivileged {
		return
	}
	s.fetchProfileLocked(ctx)
}

// Environment returns the probe result, EnvUnknown before the probe ran.
func (s *Session) Environment() Environment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.env
}

// Capable reports whether installation actions may be offered at all.
func (s *Session) Capable() bool {
	return s.Environment() == EnvPrivileged
}

// Profile returns the current machine profile, nil when none was fetched.
func (s *Session) Profile() *host.MachineProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// ProfileError returns the message from the last failed profile fetch, empty
// when the last fetch succeeded or none was attempted.
func (s *Session) ProfileError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profileErr
}

// InstallPath returns the current default install path.
func (s *Session) InstallPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.installPath
}

// =============================================================================
// LOCAL FALLBACK SNAPSHOT
// =============================================================================

// FallbackProfile builds a best-effort machine snapshot from local
// observations. It exists purely so the requirements screen has something to
// show while the daemon profile is unavailable; it is never fed to the
// compatibility gate in place of a daemon profile.
func FallbackProfile() *host.MachineProfile {
	profile := &host.MachineProfile{
		OS:       runtime.GOOS,
		CPUCores: runtime.NumCPU(),
		GPUInfo:  []string{"Unknown GPU"},
	}

	if free, err := freeDiskBytes(fallbackInstallPath()); err == nil {
		profile.AvailableDiskSpace = free
	}
	if total, err := totalMemoryBytes(); err == nil {
		profile.TotalMemory = total
	}

	return profile
}
