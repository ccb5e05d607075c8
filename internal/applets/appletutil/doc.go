// SPDX-License-Identifier: MPL-2.0

// Package appletutil holds the plumbing shared by applet implementations:
// turning a body's error into an exit status and diagnostic, flag parsing
// with POSIX combined short options, the files-or-stdin loop, and adapters
// for u-root pkg/core commands.
//
// Diagnostics follow the busybox form "name: message" on the invocation's
// stderr. A body reports a specific exit status with Status or Statusf and
// asks for the usage text with ErrUsage or a *UsageError.
package appletutil
