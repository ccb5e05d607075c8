// SPDX-License-Identifier: MPL-2.0

package archival

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/u-root/u-root/pkg/tarutil"

	"github.com/shellbox/shellbox/internal/applet"
	"github.com/shellbox/shellbox/internal/applets/appletutil"
)

type tarOptions struct {
	create, extract, list bool
	verbose, gzip         bool
	file, dir             string
	operands              []string
}

// Tar creates, extracts or lists archives. The first argument may omit its
// leading dash ("tar czf out.tgz dir"). Member paths are relative to -C DIR
// or the working directory.
func Tar(ctx context.Context, argv []string) int {
	return appletutil.Run(ctx, argv, func(ctx context.Context, stdio *applet.IO, args []string) error {
		opts, err := parseTar(applet.Name(ctx, argv[0]), args)
		if err != nil {
			return err
		}

		base := stdio.Dir
		if opts.dir != "" {
			base = applet.Path(ctx, opts.dir)
		}
		if base == "" {
			if base, err = os.Getwd(); err != nil {
				return err
			}
		}

		tu := &tarutil.Opts{ChangeDirectory: base}
		if opts.verbose {
			// Listing goes to stderr when the archive itself is on stdout.
			w := stdio.Stdout
			if opts.create && opts.file == "-" {
				w = stdio.Stderr
			}
			tu.Filters = []tarutil.Filter{func(hdr *tar.Header) bool {
				fmt.Fprintln(w, hdr.Name)
				return true
			}}
		}

		if opts.create {
			return withArchive(ctx, stdio, opts.file, true, func(rw io.ReadWriter) error {
				if !opts.gzip {
					return tarutil.CreateTar(rw, opts.operands, tu)
				}
				zw := gzip.NewWriter(rw)
				if err := tarutil.CreateTar(zw, opts.operands, tu); err != nil {
					_ = zw.Close()
					return err
				}
				return zw.Close()
			})
		}

		return withArchive(ctx, stdio, opts.file, false, func(rw io.ReadWriter) error {
			var r io.Reader = rw
			if opts.gzip {
				zr, err := gzip.NewReader(rw)
				if err != nil {
					return errNotCompressed
				}
				defer zr.Close()
				r = zr
			}
			if opts.list {
				return listTar(stdio.Stdout, r)
			}
			return tarutil.ExtractDir(r, base, tu)
		})
	})
}

func parseTar(name string, args []string) (tarOptions, error) {
	var opts tarOptions
	if len(args) > 0 && args[0] != "" && !strings.HasPrefix(args[0], "-") {
		args = append([]string{"-" + args[0]}, args[1:]...)
	}

	fs := appletutil.NewFlagSet(name)
	fs.BoolVarP(&opts.create, "create", "c", false, "create")
	fs.BoolVarP(&opts.extract, "extract", "x", false, "extract")
	fs.BoolVarP(&opts.list, "list", "t", false, "list")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose")
	fs.BoolVarP(&opts.gzip, "gzip", "z", false, "gzip")
	fs.StringVarP(&opts.file, "file", "f", "-", "archive")
	fs.StringVarP(&opts.dir, "directory", "C", "", "change to DIR")
	if err := appletutil.Parse(fs, args); err != nil {
		return opts, err
	}
	opts.operands = fs.Args()

	modes := 0
	for _, set := range []bool{opts.create, opts.extract, opts.list} {
		if set {
			modes++
		}
	}
	if modes != 1 {
		return opts, &appletutil.UsageError{Err: errors.New("exactly one of 'c', 'x' or 't' must be given")}
	}
	if opts.create && len(opts.operands) == 0 {
		return opts, appletutil.Statusf(1, "empty archive")
	}
	return opts, nil
}

// listTar prints member names, one per line.
func listTar(w io.Writer, r io.Reader) error {
	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, hdr.Name); err != nil {
			return err
		}
	}
}

// withArchive opens the archive operand for writing or reading, using the
// invocation's stdout or stdin for "-".
func withArchive(ctx context.Context, stdio *applet.IO, file string, write bool, fn func(io.ReadWriter) error) (err error) {
	if file == "-" {
		return fn(struct {
			io.Reader
			io.Writer
		}{stdio.Stdin, stdio.Stdout})
	}

	var f *os.File
	if write {
		f, err = os.Create(applet.Path(ctx, file))
	} else {
		f, err = os.Open(applet.Path(ctx, file))
	}
	if err != nil {
		return fmt.Errorf("%s: %w", file, appletutil.Cause(err))
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return fn(f)
}
