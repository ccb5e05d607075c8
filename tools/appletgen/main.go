// SPDX-License-Identifier: MPL-2.0

// appletgen generates the applet table of a shellbox build.
//
// It reads the CUE applet manifest, applies a build profile plus optional
// --enable/--disable lists, and writes a Go source file with the selected
// descriptors in name order. Feature selection happens here and nowhere else.
//
// Usage:
//
//	appletgen --manifest applets.cue [--profile profiles/default.cue] [--enable a,b] [--disable c] -o table_gen.go
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
)

const defaultModule = "github.com/shellbox/shellbox"

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "appletgen"})

	flagSet := pflag.NewFlagSet("appletgen", pflag.ExitOnError)
	var (
		manifestPath = flagSet.String("manifest", "applets.cue", "applet manifest")
		profilePath  = flagSet.String("profile", "", "build profile (default: every implemented applet)")
		enable       = flagSet.String("enable", "", "comma separated applets to add to the profile")
		disable      = flagSet.String("disable", "", "comma separated applets to remove from the profile")
		output       = flagSet.StringP("output", "o", "table_gen.go", "output file")
		pkg          = flagSet.String("pkg", "registry", "package name of the generated file")
		module       = flagSet.String("module", defaultModule, "module path")
	)
	_ = flagSet.Parse(os.Args[1:])

	if err := run(*manifestPath, *profilePath, *enable, *disable, *output, *pkg, *module, logger); err != nil {
		logger.Error("generation failed", "err", err)
		os.Exit(1)
	}
}

func run(manifestPath, profilePath, enable, disable, output, pkg, module string, logger *log.Logger) error {
	m, err := loadManifest(manifestPath)
	if err != nil {
		return err
	}

	var p *profile
	source := filepath.Base(manifestPath)
	if profilePath != "" {
		if p, err = loadProfile(profilePath); err != nil {
			return err
		}
		source += " (profile " + filepath.Base(profilePath) + ")"
	}

	applets, err := selectApplets(m, p, splitList(enable), splitList(disable))
	if err != nil {
		return err
	}

	src, err := render(pkg, module, source, applets)
	if err != nil {
		return err
	}
	if err := os.WriteFile(output, src, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	logger.Info("wrote applet table", "file", output, "applets", len(applets), "known", len(m.Applets))
	return nil
}
