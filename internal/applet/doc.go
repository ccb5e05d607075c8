// SPDX-License-Identifier: MPL-2.0

// Package applet defines the static description of one applet of the
// multi-call binary and the per-invocation context applets run in.
//
// A Descriptor is an immutable record: the name users type, the canonical
// implementation id it shares with its aliases, the entry point, the
// canonical install location and the set-uid policy the dispatcher enforces
// before control reaches the entry point.
//
// # Entry points
//
// Applets use one of two calling conventions, modelled as the sealed
// Entrypoint sum type:
//
//   - Main receives argv (argv[0] is the applet name) and returns the exit
//     status.
//   - NoReturn receives the argument list and terminates through Exit. It
//     never returns to its caller.
//
// # Invocation context
//
// Standard streams, the working directory, the exit hook and the running
// descriptor travel in the context.Context handed to the entry point, so the
// same applet body runs unchanged under the process boundary, inside the
// shell applet and in tests.
package applet
