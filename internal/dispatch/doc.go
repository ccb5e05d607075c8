// SPDX-License-Identifier: MPL-2.0

// Package dispatch turns a process invocation into an applet run.
//
// A run moves through a fixed sequence: the invocation name is parsed from
// argv, resolved against the registry, the applet's set-uid policy is
// enforced, and the entry point is called with a synthesized argv whose
// first element is the applet name. Every failure before the entry point is
// reported with a fixed message and a reserved exit status (see
// types.ExitNotFound, types.ExitDenied and types.ExitFatal).
package dispatch
