// SPDX-License-Identifier: MPL-2.0

package archival

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/term"

	"github.com/shellbox/shellbox/internal/applet"
	"github.com/shellbox/shellbox/internal/applets/appletutil"
)

type (
	gzipMode int

	gzipOptions struct {
		mode   gzipMode
		stdout bool
		force  bool
		keep   bool
		level  int
	}
)

const (
	modeCompress gzipMode = iota
	modeDecompress
	modeTest
)

// errNotCompressed marks input that is not gzip data.
var errNotCompressed = errors.New("invalid magic")

// Gzip compresses files, or decompresses them with -d.
func Gzip(ctx context.Context, argv []string) int {
	return runGzip(ctx, argv, modeCompress)
}

// Gunzip decompresses files. Invoked as zcat it writes to stdout.
func Gunzip(ctx context.Context, argv []string) int {
	return runGzip(ctx, argv, modeDecompress)
}

func runGzip(ctx context.Context, argv []string, mode gzipMode) int {
	return appletutil.Run(ctx, argv, func(ctx context.Context, stdio *applet.IO, args []string) error {
		name := applet.Name(ctx, argv[0])
		opts, files, err := parseGzip(name, mode, args)
		if err != nil {
			return err
		}

		if len(files) == 0 {
			files = []string{"-"}
		}
		failed := false
		for _, file := range files {
			if err := gzipOne(ctx, stdio, opts, file); err != nil {
				var se *appletutil.StatusError
				if errors.As(err, &se) {
					return err
				}
				applet.Errorf(ctx, name, "%v", err)
				failed = true
			}
		}
		if failed {
			return appletutil.Status(1)
		}
		return nil
	})
}

func parseGzip(name string, mode gzipMode, args []string) (gzipOptions, []string, error) {
	opts := gzipOptions{mode: mode, level: gzip.DefaultCompression}
	if filepath.Base(name) == "zcat" {
		opts.stdout = true
	}

	fs := appletutil.NewFlagSet(name)
	stdout := fs.BoolP("stdout", "c", false, "write to stdout")
	force := fs.BoolP("force", "f", false, "force")
	keep := fs.BoolP("keep", "k", false, "keep input files")
	decompress := fs.BoolP("decompress", "d", false, "decompress")
	test := fs.BoolP("test", "t", false, "test file integrity")
	var levels [10]*bool
	for i := 1; i <= 9; i++ {
		s := strconv.Itoa(i)
		levels[i] = fs.BoolP(s, s, false, "compression level")
	}
	if err := appletutil.Parse(fs, args); err != nil {
		return opts, nil, err
	}

	opts.stdout = opts.stdout || *stdout
	opts.force = *force
	opts.keep = *keep
	if *decompress {
		opts.mode = modeDecompress
	}
	if *test {
		opts.mode = modeTest
	}
	for i := 9; i >= 1; i-- {
		if *levels[i] {
			opts.level = i
			break
		}
	}
	return opts, fs.Args(), nil
}

// gzipOne processes one operand. Errors are printed by the caller and do
// not stop the remaining operands, except for *appletutil.StatusError.
func gzipOne(ctx context.Context, stdio *applet.IO, opts gzipOptions, file string) error {
	if file == "-" {
		if opts.mode == modeCompress && !opts.force && isTerminal(stdio.Stdout) {
			return appletutil.Statusf(1, "compressed data not written to a terminal. Use -f to force compression.")
		}
		return transform(opts, stdio.Stdout, stdio.Stdin)
	}

	src := applet.Path(ctx, file)
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("%s: %w", file, appletutil.Cause(err))
	}
	if info.IsDir() {
		return fmt.Errorf("%s: is a directory", file)
	}

	if opts.mode == modeTest || opts.stdout {
		in, err := os.Open(src)
		if err != nil {
			return fmt.Errorf("%s: %w", file, appletutil.Cause(err))
		}
		defer in.Close()
		if err := transform(opts, stdio.Stdout, in); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		return nil
	}

	dstName, err := outputName(opts.mode, file)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	if err := convertFile(opts, file, src, dstName, applet.Path(ctx, dstName), info); err != nil {
		return err
	}
	if opts.keep {
		return nil
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("%s: %w", file, appletutil.Cause(err))
	}
	return nil
}

// convertFile writes the transformed src to dst with the mode and
// modification time of src. A partial dst is removed on failure. file and
// dstName are the operand spellings used in messages.
func convertFile(opts gzipOptions, file, src, dstName, dst string, info os.FileInfo) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("%s: %w", file, appletutil.Cause(err))
	}
	defer in.Close()

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if opts.force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	out, err := os.OpenFile(dst, flags, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("can't open '%s': %w", dstName, appletutil.Cause(err))
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		if err != nil {
			_ = os.Remove(dst)
			return
		}
		_ = os.Chtimes(dst, info.ModTime(), info.ModTime())
	}()

	if err := transform(opts, out, in); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	return nil
}

func transform(opts gzipOptions, w io.Writer, r io.Reader) error {
	switch opts.mode {
	case modeCompress:
		return compress(w, r, opts.level)
	case modeTest:
		return decompress(io.Discard, r)
	default:
		return decompress(w, r)
	}
}

func compress(w io.Writer, r io.Reader, level int) error {
	zw, err := gzip.NewWriterLevel(w, level)
	if err != nil {
		return err
	}
	if _, err := io.Copy(zw, r); err != nil {
		_ = zw.Close()
		return err
	}
	return zw.Close()
}

// decompress copies every gzip member of r to w.
func decompress(w io.Writer, r io.Reader) error {
	zr, err := gzip.NewReader(r)
	if err != nil {
		if errors.Is(err, gzip.ErrHeader) || errors.Is(err, io.EOF) {
			return errNotCompressed
		}
		return err
	}
	defer zr.Close()
	_, err = io.Copy(w, zr)
	return err
}

// outputName derives the file written for src.
func outputName(mode gzipMode, src string) (string, error) {
	if mode == modeCompress {
		if strings.HasSuffix(src, ".gz") {
			return "", errors.New("already has .gz suffix -- unchanged")
		}
		return src + ".gz", nil
	}
	switch {
	case strings.HasSuffix(src, ".tgz"):
		return strings.TrimSuffix(src, ".tgz") + ".tar", nil
	case strings.HasSuffix(src, ".gz"):
		return strings.TrimSuffix(src, ".gz"), nil
	case strings.HasSuffix(src, ".z"):
		return strings.TrimSuffix(src, ".z"), nil
	}
	return "", errors.New("unknown suffix - ignored")
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
