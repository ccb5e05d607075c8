// SPDX-License-Identifier: MPL-2.0

package registry

//go:generate go run ../../tools/appletgen --manifest ../../tools/appletgen/applets.cue --profile ../../tools/appletgen/profiles/default.cue -o table_gen.go
