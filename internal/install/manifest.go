// SPDX-License-Identifier: MPL-2.0

package install

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/shellbox/shellbox/internal/issue"
)

// Formats lists the formats Manifest accepts.
var Formats = []string{"json", "yaml", "toml"}

type (
	// ManifestEntry describes one applet for packaging tools.
	ManifestEntry struct {
		Name     string `json:"name" yaml:"name" toml:"name"`
		Impl     string `json:"impl" yaml:"impl" toml:"impl"`
		Path     string `json:"path" yaml:"path" toml:"path"`
		Location string `json:"location" yaml:"location" toml:"location"`
		SUID     string `json:"suid" yaml:"suid" toml:"suid"`
	}

	// manifestDoc is the document root; TOML needs a table at the top.
	manifestDoc struct {
		Applets []ManifestEntry `json:"applets" yaml:"applets" toml:"applets"`
	}
)

// Entries returns the manifest entries of l in name order.
func Entries(l Lister) []ManifestEntry {
	descs := l.All()
	out := make([]ManifestEntry, len(descs))
	for i, d := range descs {
		out[i] = ManifestEntry{
			Name:     d.Name,
			Impl:     d.Impl,
			Path:     d.InstallPath(),
			Location: d.Location.String(),
			SUID:     d.SUID.String(),
		}
	}
	return out
}

// Manifest encodes the applets of l in format ("json", "yaml" or "toml").
func Manifest(l Lister, format string) ([]byte, error) {
	doc := manifestDoc{Applets: Entries(l)}

	var buf bytes.Buffer
	var err error
	switch format {
	case "json":
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		err = enc.Encode(doc)
	case "yaml":
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		err = enc.Encode(doc)
		if err == nil {
			err = enc.Close()
		}
	case "toml":
		err = toml.NewEncoder(&buf).Encode(doc)
	default:
		return nil, issue.NewErrorContext().
			WithOperation("write manifest").
			WithIssue(issue.ManifestFormatId).
			WithSuggestion("Use one of: json, yaml, toml").
			Wrap(fmt.Errorf("unknown format %q", format)).
			BuildError()
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s manifest: %w", format, err)
	}
	return buf.Bytes(), nil
}
