// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package detect determines whether the current environment can install
VoxStudio, and gathers the machine snapshot used for suitability checks.

The environment probe runs exactly once per session, at startup, before any
other action. A successful probe of the helper daemon's command interface
marks the environment as privileged; any failure marks it restricted for the
remainder of the session and suppresses further automatic attempts. Every
gated action in the installer consults this session-wide flag.

On a privileged result the session also fetches the default install path
(keeping a home-directory fallback if the daemon cannot supply one) and a
MachineProfile snapshot. Profile fetch failures are recoverable: the user can
explicitly retry via RefreshProfile.
*/
package detect
