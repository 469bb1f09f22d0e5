// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package host provides the HTTP client for communicating with the VoxStudio
helper daemon.

The helper daemon is the privileged backend that performs the actual
installation work (source download, dependency setup, model placement). The
installer never does that work itself; every interaction goes through this
client as an asynchronous request/response call:

  - Probe              - capability check; failure means a restricted environment
  - DefaultInstallPath - suggested installation directory
  - FetchMachineProfile - snapshot of host machine capabilities
  - StartInstall       - submit an installation request
  - Progress           - poll the current installation progress
  - LaunchApp          - launch the installed application
  - OpenInstallDir     - open the installation directory in the file manager

Progress is polled, never pushed; there is no streaming interface.
*/
package host
