// SPDX-License-Identifier: MPL-2.0

package appletutil

import (
	"errors"
	"io"

	"github.com/spf13/pflag"
)

// NewFlagSet returns a flag set that parses busybox-style options:
// combined short flags ("-sf"), values attached or separate ("-n5",
// "-n 5"), and "--" ending option processing. Errors are returned, never
// printed.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	fs.Usage = func() {}
	return fs
}

// Parse parses args into fs. Parse failures become a *UsageError; -h and
// --help come back as pflag.ErrHelp.
func Parse(fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return err
		}
		return &UsageError{Err: err}
	}
	return nil
}
