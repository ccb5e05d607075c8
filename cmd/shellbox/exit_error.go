// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/shellbox/shellbox/pkg/types"
)

// ExitError carries a management command's status out of cobra. The command
// has already printed its diagnostics when it returns one, so manage only
// turns Code into the process status.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return "exit status " + e.Code.String()
	}
	return fmt.Sprintf("%v (exit status %s)", e.Err, e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }
