// SPDX-License-Identifier: MPL-2.0

// Package registry holds the applet table of the build.
//
// The table is an ordered, immutable sequence of applet descriptors sorted by
// name in strict ascending byte order. The ordering is checked once when the
// registry is built; a table that violates it is a configuration error and
// the process refuses to run. Resolution is a binary search over the same
// ordering, so it is exact-match only and allocation-free.
//
// Which applets exist is decided at build time: table_gen.go is produced by
// tools/appletgen from the CUE applet manifest and a feature profile. Nothing
// outside that file knows about feature selection.
package registry
