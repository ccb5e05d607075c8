// SPDX-License-Identifier: MPL-2.0

// Package networking implements ifup and ifdown.
//
// Both names share one implementation that reads the Debian-style
// /etc/network/interfaces file, expands the method templates of each
// interface into ip(8) commands and runs them through the shell applet.
// The set of configured interfaces is kept in /var/run/ifstate.
package networking
