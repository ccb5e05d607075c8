// SPDX-License-Identifier: MPL-2.0

package install

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/shellbox/shellbox/internal/applet"
	"github.com/shellbox/shellbox/internal/issue"
)

// Symlink is the zero Mode: symbolic links in the canonical directories.
const Symlink Mode = 0

// Mode flags, combined with |.
const (
	// Hardlink creates hard links instead of symbolic links.
	Hardlink Mode = 1 << iota
	// Flat puts every link directly in the prefix directory, the layout
	// of "busybox --install DIR".
	Flat
)

type (
	// Mode selects the link kind and layout.
	Mode uint8

	// Lister enumerates applets. *registry.Registry satisfies it.
	Lister interface {
		All() []applet.Descriptor
	}

	// Link is one planned applet link.
	Link struct {
		// Name is the applet name.
		Name string
		// Path is where the link is created.
		Path string
		// Target is the binary the link points to.
		Target string
		// Location is the applet's canonical directory.
		Location applet.Location
		// Hard selects a hard link.
		Hard bool
	}

	// Option configures Apply.
	Option func(*applyOptions)

	applyOptions struct {
		force bool
	}

	// Result counts what Apply did.
	Result struct {
		Created  int
		Current  int
		Skipped  []string
		Replaced int
	}
)

// WithForce replaces files that already exist at a link path.
func WithForce(force bool) Option {
	return func(o *applyOptions) { o.force = force }
}

// Plan lists the links for every applet in l pointing at target. Without
// Flat each link goes to its canonical location joined under prefix.
func Plan(l Lister, target, prefix string, mode Mode) []Link {
	if prefix == "" {
		prefix = "/"
	}
	descs := l.All()
	links := make([]Link, 0, len(descs))
	for _, d := range descs {
		dir := filepath.Join(prefix, filepath.FromSlash(d.Location.String()))
		if mode&Flat != 0 {
			dir = prefix
		}
		links = append(links, Link{
			Name:     d.Name,
			Path:     filepath.Join(dir, d.Name),
			Target:   target,
			Location: d.Location,
			Hard:     mode&Hardlink != 0,
		})
	}
	return links
}

// Apply creates links in order. Existing files are skipped unless
// WithForce is given; a link that already points at its target is left
// alone. Every failure is returned, joined.
func Apply(ctx context.Context, links []Link, logger *log.Logger, opts ...Option) (Result, error) {
	var o applyOptions
	for _, opt := range opts {
		opt(&o)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var (
		res  Result
		errs []error
	)
	for _, link := range links {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		l := logger.With("applet", link.Name, "path", link.Path)

		if current(link) {
			l.Debug("up to date")
			res.Current++
			continue
		}
		if _, err := os.Lstat(link.Path); err == nil {
			if !o.force {
				l.Info("exists, skipping")
				res.Skipped = append(res.Skipped, link.Path)
				continue
			}
			if err := os.Remove(link.Path); err != nil {
				errs = append(errs, linkError(link, err))
				continue
			}
			res.Replaced++
		}

		if err := create(link); err != nil {
			l.Error("link failed", "err", err)
			errs = append(errs, linkError(link, err))
			continue
		}
		l.Debug("linked", "target", link.Target, "hard", link.Hard)
		res.Created++
	}
	return res, errors.Join(errs...)
}

func create(link Link) error {
	if err := os.MkdirAll(filepath.Dir(link.Path), 0o755); err != nil {
		return err
	}
	if link.Hard {
		return os.Link(link.Target, link.Path)
	}
	return os.Symlink(link.Target, link.Path)
}

// current reports whether link.Path already is the requested link.
func current(link Link) bool {
	if link.Hard {
		have, err := os.Lstat(link.Path)
		if err != nil {
			return false
		}
		want, err := os.Stat(link.Target)
		return err == nil && os.SameFile(have, want)
	}
	dest, err := os.Readlink(link.Path)
	return err == nil && dest == link.Target
}

func linkError(link Link, err error) error {
	ctx := issue.NewErrorContext().
		WithOperation("install " + link.Name).
		WithResource(link.Path).
		Wrap(err)
	switch {
	case errors.Is(err, fs.ErrPermission):
		ctx.WithIssue(issue.InstallPermissionId).
			WithSuggestion("Run as root or pick a writable directory with --install DIR")
	case errors.Is(err, fs.ErrExist):
		ctx.WithIssue(issue.InstallConflictId).
			WithSuggestion("Re-run with --force to replace existing files")
	case errors.Is(err, syscall.EXDEV):
		ctx.WithSuggestion("Hard links cannot cross file systems; use symbolic links (-s)")
	}
	return ctx.BuildError()
}

// String describes the mode, e.g. "symlink" or "hardlink,flat".
func (m Mode) String() string {
	kind := "symlink"
	if m&Hardlink != 0 {
		kind = "hardlink"
	}
	if m&Flat != 0 {
		return kind + ",flat"
	}
	return kind
}
