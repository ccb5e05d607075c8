// SPDX-License-Identifier: MPL-2.0

// Package privilege enforces an applet's set-uid policy before its entry
// point runs.
//
// The process credential state is global. Dropping privilege is a one-way
// transition: real ids are copied into the effective and saved slots and
// there is no function that restores them. A failed drop is fatal to the
// invocation; callers must never go on to run applet code.
package privilege
