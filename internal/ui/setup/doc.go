// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package setup implements the interactive VoxStudio installer wizard.

The wizard is a bubbletea model that walks the user through six screens:
welcome, system requirements, installation options, installation progress,
completion, and failure. It renders state and collects input only; every
installation decision (gating, polling, transitions) lives in the install
controller, every suitability judgement in the compat evaluator.
*/
package setup
