// SPDX-License-Identifier: MPL-2.0

// Package cueutil compiles CUE files against an embedded schema definition
// and reports failures with JSON-path style locations
// ("install.symlinks: conflicting values true and 1").
package cueutil
