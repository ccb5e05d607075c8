// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/shellbox/shellbox/internal/applet"
	"github.com/shellbox/shellbox/internal/config"
	"github.com/shellbox/shellbox/internal/install"
	"github.com/shellbox/shellbox/internal/issue"
	"github.com/shellbox/shellbox/internal/usage"
	"github.com/shellbox/shellbox/pkg/types"
)

// managementFlags holds the parsed management options.
type managementFlags struct {
	list       bool
	listFull   bool
	install    bool
	symlinks   bool
	force      bool
	manifest   string
	docs       bool
	showConfig bool
	cfgFile    string
}

// manage is the dispatcher hook for "shellbox --flag ...". "--help APPLET"
// is answered here so it never reaches cobra's own help flag.
func (a *app) manage(ctx context.Context, argv []string) int {
	stdio := applet.IOFrom(ctx)
	args := argv[1:]

	if len(args) == 2 && args[0] == "--help" {
		if err := usage.WriteHelp(stdio.Stdout, a.reg, args[1]); err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return int(types.ExitNotFound)
		}
		if d, ok := a.reg.Resolve(args[1]); ok && d.SUID == applet.SUIDRequire {
			fmt.Fprintln(stdio.Stdout)
			if err := markdown(stdio.Stdout, issue.Get(issue.SetuidRequiredId).Markdown(), a.cfg.UI.Color); err != nil {
				return int(types.ExitFailure)
			}
		}
		return int(types.ExitSuccess)
	}

	root := a.newRootCommand(stdio)
	root.SetArgs(args)
	root.SetIn(stdio.Stdin)
	root.SetOut(stdio.Stdout)
	root.SetErr(stdio.Stderr)

	err := fang.Execute(ctx, root,
		fang.WithVersion(versionString()),
		fang.WithNotifySignal(os.Interrupt),
	)
	if err == nil {
		return int(types.ExitSuccess)
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return int(exitErr.Code)
	}
	return int(types.ExitFailure)
}

func (a *app) newRootCommand(stdio *applet.IO) *cobra.Command {
	var f managementFlags
	st := newStyles(stdio.Stdout, a.cfg.UI.Color)

	root := &cobra.Command{
		Use:   "shellbox [--list | --list-full | --install [-s] [DIR] | --manifest FORMAT | --docs | --show-config]",
		Short: "Multi-call binary of common Unix utilities",
		Long: st.Title.Render("shellbox") + st.Subtitle.Render(" - many common Unix utilities in one executable") + `

Run an applet through a link named after it, or as the first argument:

  shellbox echo hello
  ln -s /bin/shellbox /usr/local/bin/tar && tar -tf archive.tar

` + st.Subtitle.Render("Help for one applet:") + `
  shellbox --help APPLET`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && !f.install {
				return fmt.Errorf("unexpected argument %q", args[0])
			}
			return a.runManagement(cmd, st, f, args)
		},
	}

	flags := root.Flags()
	flags.BoolVar(&f.list, "list", false, "list applet names")
	flags.BoolVar(&f.listFull, "list-full", false, "list applets with their install paths")
	flags.BoolVar(&f.install, "install", false, "create applet links under DIR (flat) or the configured prefix")
	flags.BoolVarP(&f.symlinks, "symlinks", "s", false, "with --install, create symbolic links instead of hard links")
	flags.BoolVar(&f.force, "force", false, "with --install, replace existing files")
	flags.StringVar(&f.manifest, "manifest", "", "print installer metadata as json, yaml or toml")
	flags.BoolVar(&f.docs, "docs", false, "show the applet reference")
	flags.BoolVar(&f.showConfig, "show-config", false, "print the effective configuration")
	flags.StringVar(&f.cfgFile, "config", "", "configuration file (default "+config.SystemPath+")")
	root.MarkFlagsMutuallyExclusive("list", "list-full", "install", "manifest", "docs", "show-config")
	return root
}

func (a *app) runManagement(cmd *cobra.Command, st styles, f managementFlags, args []string) error {
	out := cmd.OutOrStdout()

	cfg := a.cfg
	if f.cfgFile != "" {
		if a.setID {
			a.logger.Warn("ignoring --config in a set-id process", "file", f.cfgFile)
		} else {
			opts := a.loadOpts
			opts.ConfigFilePath = f.cfgFile
			loaded, err := a.provider.Load(cmd.Context(), opts)
			if err != nil {
				return a.fail(cmd, st, err)
			}
			cfg = loaded
		}
	}

	switch {
	case f.list, f.listFull:
		return usage.WriteList(out, a.reg, f.listFull)
	case f.install:
		return a.install(cmd, st, cfg, f, args)
	case f.manifest != "":
		data, err := install.Manifest(a.reg, f.manifest)
		if err != nil {
			return a.fail(cmd, st, err)
		}
		_, err = out.Write(data)
		return err
	case f.docs:
		return markdown(out, usage.Markdown(a.reg), cfg.UI.Color)
	case f.showConfig:
		_, err := io.WriteString(out, config.GenerateCUE(cfg))
		return err
	default:
		return usage.WriteOverview(out, a.reg, width(out))
	}
}

func (a *app) install(cmd *cobra.Command, st styles, cfg *config.Config, f managementFlags, args []string) error {
	target, err := os.Executable()
	if err == nil {
		target, err = filepath.EvalSymlinks(target)
	}
	if err != nil {
		return a.fail(cmd, st, fmt.Errorf("locate shellbox binary: %w", err))
	}

	mode := install.Hardlink
	if f.symlinks || cfg.Install.Symlinks {
		mode = install.Symlink
	}
	prefix := cfg.Install.Prefix
	if len(args) == 1 {
		prefix = args[0]
		mode |= install.Flat
	}

	links := install.Plan(a.reg, target, prefix, mode)
	a.logger.Debug("installing", "links", len(links), "prefix", prefix, "mode", mode)
	res, err := install.Apply(cmd.Context(), links, a.logger, install.WithForce(f.force))
	fmt.Fprintf(cmd.OutOrStdout(), "%s %d created, %d up to date, %d skipped\n",
		st.Success.Render("installed:"), res.Created+res.Replaced, res.Current, len(res.Skipped))
	if err != nil {
		return a.fail(cmd, st, err)
	}
	return nil
}

// markdown writes md raw when colour is off or out is not a terminal, and
// rendered with glamour otherwise.
func markdown(out io.Writer, md string, color config.ColorMode) error {
	var style string
	switch color {
	case config.ColorNever:
		_, err := io.WriteString(out, md)
		return err
	case config.ColorAlways:
		style = "dark"
	default:
		if !isTerminal(out) {
			_, err := io.WriteString(out, md)
			return err
		}
	}
	rendered, err := usage.Render(md, style, width(out))
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, rendered)
	return err
}

// fail prints err in the management style and returns an ExitError so
// fang does not print it again.
func (a *app) fail(cmd *cobra.Command, st styles, err error) error {
	cmd.SilenceErrors = true
	verbose := a.cfg.Log.Level == config.LogLevelDebug
	for _, e := range unjoin(err) {
		fmt.Fprintln(cmd.ErrOrStderr(), st.Error.Render("Error: ")+formatErrorForDisplay(e, verbose))
	}
	return &ExitError{Code: types.ExitFailure}
}

// unjoin splits an errors.Join result into its parts.
func unjoin(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// width is the terminal width of w, or 80.
func width(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			return cols
		}
	}
	return 80
}
