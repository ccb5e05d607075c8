// SPDX-License-Identifier: MPL-2.0

package appletutil

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/shellbox/shellbox/internal/applet"
)

// FileProcessor processes a single input.
// Parameters:
//   - r: the input stream to process
//   - filename: the original filename argument (or "-" for stdin)
//   - index: 0-based index of current file (0 for stdin)
//   - total: total number of files being processed (0 for stdin)
type FileProcessor func(r io.Reader, filename string, index, total int) error

// ProcessFilesOrStdin runs processor over each named file, or over stdin
// when files is empty. A "-" operand also means stdin. Files that cannot be
// opened are reported as "name: file: error" and skipped; the remaining
// files are still processed and the result is Status(1). An error from
// processor stops the loop and is returned as is.
func ProcessFilesOrStdin(ctx context.Context, name string, files []string, processor FileProcessor) error {
	stdio := applet.IOFrom(ctx)
	if len(files) == 0 {
		return processor(stdio.Stdin, "-", 0, 0)
	}

	failed := false
	total := len(files)
	for i, file := range files {
		if file == "-" {
			if err := processor(stdio.Stdin, file, i, total); err != nil {
				return err
			}
			continue
		}

		f, err := os.Open(applet.Path(ctx, file))
		if err != nil {
			applet.Errorf(ctx, name, "%s: %v", file, Cause(err))
			failed = true
			continue
		}
		if err := processFile(f, func(r io.Reader) error {
			return processor(r, file, i, total)
		}); err != nil {
			return err
		}
	}

	if failed {
		return Status(1)
	}
	return nil
}

// processFile calls processor on f and closes it, aggregating the close
// error via the named return.
func processFile(f *os.File, processor func(r io.Reader) error) (err error) {
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return processor(f)
}

// Cause strips the operation and path from an *os.PathError or
// *os.LinkError, leaving the message busybox prints after the file name.
func Cause(err error) error {
	var pe *os.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	var le *os.LinkError
	if errors.As(err, &le) {
		return le.Err
	}
	return err
}
