// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package install drives a VoxStudio installation through the helper daemon.

The Controller is a small state machine:

	idle -> starting -> running -> completed
	     ^           \          \-> failed
	      \-----------/  (rejected start aborts back to idle)

Once running, the controller polls the daemon for progress at a fixed one
second cadence. Polling is strictly sequential: the next poll is scheduled
only after the previous response has been handled, so responses can never
interleave. Every asynchronous result carries the run identifier it was
issued under; results from a superseded run are dropped without effect.

Polling halts when a report arrives with its completed or failed flag set,
or when a poll itself fails (treated as an installation failure with the
transport error surfaced verbatim). A failed installation can be reset back
to idle; completed and running installations cannot.

The controller owns all installation decisions. The presentation layer feeds
it messages and renders its synchronously readable state, nothing more.
*/
package install
