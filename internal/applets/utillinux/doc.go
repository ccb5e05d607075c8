// SPDX-License-Identifier: MPL-2.0

// Package utillinux implements script.
package utillinux
