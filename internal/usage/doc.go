// SPDX-License-Identifier: MPL-2.0

// Package usage formats applet help text and the applet listings printed by
// the management CLI (--help, --list, --list-full, --docs).
package usage
