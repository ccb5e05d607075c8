// SPDX-License-Identifier: MPL-2.0

// Package archival implements gzip, gunzip, zcat and tar.
package archival
