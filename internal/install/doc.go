// SPDX-License-Identifier: MPL-2.0

// Package install creates the applet links of a shellbox binary and
// describes them for external packaging.
//
// Plan turns the registry's install locations into a list of links, Apply
// creates them, and Manifest emits the same metadata as JSON, YAML or TOML.
package install
