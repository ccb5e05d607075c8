// SPDX-License-Identifier: MPL-2.0

// Package config loads shellbox settings with Viper from a CUE file.
//
// The file is validated against the embedded config_schema.cue before its
// values are merged over the defaults. The system file is
// /etc/shellbox/config.cue; a file given with --config or SHELLBOX_CONFIG
// and SHELLBOX_* environment overrides are honored only when the process
// is not running set-uid or set-gid.
//
// Applets read the effective configuration from their context with
// FromContext.
package config
