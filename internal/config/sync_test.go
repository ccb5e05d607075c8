// SPDX-License-Identifier: MPL-2.0

package config

import (
	"reflect"
	"slices"
	"strings"
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// These tests keep the Go struct JSON tags and the CUE schema in sync.

func cueFields(t *testing.T, def string) []string {
	t.Helper()

	schema := cuecontext.New().CompileString(configSchema)
	if schema.Err() != nil {
		t.Fatalf("failed to compile CUE schema: %v", schema.Err())
	}
	v := schema.LookupPath(cue.ParsePath(def))
	if !v.Exists() {
		t.Fatalf("definition %s not found", def)
	}
	iter, err := v.Fields(cue.Optional(true))
	if err != nil {
		t.Fatalf("fields of %s: %v", def, err)
	}
	var out []string
	for iter.Next() {
		out = append(out, iter.Selector().Unquoted())
	}
	slices.Sort(out)
	return out
}

func jsonFields(typ reflect.Type) []string {
	var out []string
	for i := range typ.NumField() {
		name, _, _ := strings.Cut(typ.Field(i).Tag.Get("json"), ",")
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

func TestSchemaSync(t *testing.T) {
	t.Parallel()

	tests := []struct {
		def string
		typ reflect.Type
	}{
		{"#Config", reflect.TypeFor[Config]()},
		{"#LogConfig", reflect.TypeFor[LogConfig]()},
		{"#InstallConfig", reflect.TypeFor[InstallConfig]()},
		{"#ShellConfig", reflect.TypeFor[ShellConfig]()},
		{"#UIConfig", reflect.TypeFor[UIConfig]()},
	}
	for _, tt := range tests {
		t.Run(tt.def, func(t *testing.T) {
			t.Parallel()

			schemaFields, goFields := cueFields(t, tt.def), jsonFields(tt.typ)
			if !slices.Equal(schemaFields, goFields) {
				t.Errorf("%s fields %v, Go %s tags %v", tt.def, schemaFields, tt.typ.Name(), goFields)
			}
		})
	}
}
