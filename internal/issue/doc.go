// SPDX-License-Identifier: MPL-2.0

// Package issue provides errors with remediation hints for the management
// CLI.
//
// ActionableError carries the failed operation, the resource involved and
// suggestions. Issue is a catalog of longer Markdown explanations rendered
// with glamour when the CLI runs on a terminal.
package issue
