// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	// ConfigLoadFailedId is a configuration file that cannot be read or
	// does not match the schema.
	ConfigLoadFailedId Id = iota + 1
	// InstallConflictId is an install target that already exists.
	InstallConflictId
	// InstallPermissionId is an install directory that cannot be written.
	InstallPermissionId
	// ManifestFormatId is an unknown --manifest format.
	ManifestFormatId
	// SetuidRequiredId is a REQUIRE applet run without the set-uid bit.
	SetuidRequiredId
)

type (
	// Id identifies a catalog entry.
	Id int

	// MarkdownMsg is the Markdown body of an entry.
	MarkdownMsg string

	// Issue is a catalog entry.
	Issue struct {
		id    Id
		mdMsg MarkdownMsg
		links []string
	}
)

// Id returns the catalog id.
func (i *Issue) Id() Id { return i.id }

// MarkdownMsg returns the Markdown body.
func (i *Issue) MarkdownMsg() MarkdownMsg { return i.mdMsg }

// Links returns the "see also" references.
func (i *Issue) Links() []string { return slices.Clone(i.links) }

// Markdown returns the body followed by its references.
func (i *Issue) Markdown() string {
	md := string(i.mdMsg)
	if len(i.links) > 0 {
		md += "\n\n## See also\n"
		for _, l := range i.links {
			md += "- " + l + "\n"
		}
	}
	return md
}

// Render renders the entry for a terminal with the given glamour style
// ("dark", "light", "notty", ...).
func (i *Issue) Render(style string) (string, error) {
	return render(i.Markdown(), style)
}

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Configuration could not be loaded

shellbox reads its settings from a CUE file checked against a built-in schema.

## Things you can try
- Print the effective configuration and compare:
~~~
$ shellbox --show-config
~~~
- Remove keys the schema does not know; only ` + "`log`, `install`, `shell` and `ui`" + ` are accepted.
- When running set-uid, SHELLBOX_CONFIG and --config are ignored; edit /etc/shellbox/config.cue instead.`,
		links: []string{"cuelang.org/docs"},
	}

	installConflictIssue = &Issue{
		id: InstallConflictId,
		mdMsg: `
# Install target already exists

A file with the applet's name is already present where the link would go.

## Things you can try
- Re-run with ` + "`--force`" + ` to replace existing files.
- Install into an empty prefix and copy the links you need:
~~~
$ shellbox --install -s /tmp/shellbox-root
~~~`,
	}

	installPermissionIssue = &Issue{
		id: InstallPermissionId,
		mdMsg: `
# Install directory is not writable

Creating applet links needs write access to the target directories.

## Things you can try
- Run the installer as root, or choose a prefix you own with ` + "`--install DIR`" + `.`,
	}

	manifestFormatIssue = &Issue{
		id: ManifestFormatId,
		mdMsg: `
# Unknown manifest format

## Supported formats
- json
- yaml
- toml`,
	}

	setuidRequiredIssue = &Issue{
		id: SetuidRequiredId,
		mdMsg: `
# Applet must be set-uid

Some applets, such as crontab, only work when the binary is owned by root and
has the set-uid bit.

## Things you can try
~~~
# chown root:root /bin/shellbox
# chmod 4755 /bin/shellbox
~~~`,
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.Id():  configLoadFailedIssue,
		installConflictIssue.Id():   installConflictIssue,
		installPermissionIssue.Id(): installPermissionIssue,
		manifestFormatIssue.Id():    manifestFormatIssue,
		setuidRequiredIssue.Id():    setuidRequiredIssue,
	}
)

// Values returns every catalog entry ordered by id.
func Values() []*Issue {
	out := maps.Values(issues)
	slices.SortFunc(out, func(a, b *Issue) int { return int(a.id - b.id) })
	return out
}

// Get returns the entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
