// SPDX-License-Identifier: MPL-2.0

// Package coreutils implements the file, text and identity applets.
//
// The file utilities (cat, cp, mv, rm, mkdir, ls, touch, chmod, mktemp,
// base64 and the sha*sum family) wrap u-root's pkg/core commands. The text
// utilities are implemented here on top of appletutil and stream their
// input, so memory use does not grow with file size except where the
// operation needs all input (sort, tail).
package coreutils
