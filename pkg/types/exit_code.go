// SPDX-License-Identifier: MPL-2.0

package types

import "strconv"

// Statuses reserved by the dispatcher. They follow the shell convention for
// "command not found" and "not executable" so scripts can tell a dispatch
// failure from an applet's own status.
const (
	// ExitSuccess is the status of a successful invocation.
	ExitSuccess ExitCode = 0
	// ExitFailure is the generic failure status applets use.
	ExitFailure ExitCode = 1
	// ExitFatal reports a core failure: a privilege drop that did not take
	// or an entry point that broke its calling convention.
	ExitFatal ExitCode = 125
	// ExitDenied reports a privileged applet run without root.
	ExitDenied ExitCode = 126
	// ExitNotFound reports an unknown applet name.
	ExitNotFound ExitCode = 127
)

// ExitCode is a process exit status as the parent sees it, 0 through 255.
type ExitCode int

// FromStatus converts an applet's return value into the status the kernel
// will report, which keeps only the low eight bits.
func FromStatus(status int) ExitCode { return ExitCode(status & 0xff) }

// IsDispatchFailure reports whether c is one of the statuses the dispatcher
// reserves for its own failures.
func (c ExitCode) IsDispatchFailure() bool {
	return c == ExitFatal || c == ExitDenied || c == ExitNotFound
}

func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
