// SPDX-License-Identifier: MPL-2.0

// Package findutils implements find and the grep family.
package findutils
