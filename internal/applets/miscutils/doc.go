// SPDX-License-Identifier: MPL-2.0

// Package miscutils implements crontab and ttysize.
package miscutils
