// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"
)

const testSchema = `
#Entry: {
	name:   string & =~"^[a-z]+$"
	count?: int & >=0
}
#List: {
	entries: [...#Entry]
}
`

func TestCompile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		def     string
		wantErr string
	}{
		{name: "valid", data: `name: "ok"`, def: "#Entry"},
		{name: "optional field set", data: `name: "ok", count: 2`, def: "#Entry"},
		{name: "closed struct", data: `name: "ok", extra: 1`, def: "#Entry", wantErr: "test.cue: extra: field not allowed"},
		{name: "constraint", data: `name: "OK"`, def: "#Entry", wantErr: "test.cue: name:"},
		{name: "list index in path", data: `entries: [{name: "a"}, {name: 1}]`, def: "#List", wantErr: "entries[1].name:"},
		{name: "syntax", data: `name: `, def: "#Entry", wantErr: "test.cue"},
		{name: "missing definition", data: `name: "x"`, def: "#Nope", wantErr: "internal error: schema has no #Nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Compile(testSchema, []byte(tt.data), "test.cue", tt.def)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Compile() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Compile() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestCompile_Concrete(t *testing.T) {
	t.Parallel()

	if _, err := Compile(testSchema, []byte(`count: 1`), "c.cue", "#Entry"); err != nil {
		t.Errorf("non-concrete compile failed: %v", err)
	}
	if _, err := Compile(testSchema, []byte(`count: 1`), "c.cue", "#Entry", WithConcrete(true)); err == nil {
		t.Error("concrete compile should fail without name")
	}
}

func TestDecode(t *testing.T) {
	t.Parallel()

	type entry struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	got, err := Decode[entry](testSchema, []byte(`name: "abc", count: 3`), "d.cue", "#Entry")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "abc" || got.Count != 3 {
		t.Errorf("Decode() = %+v", got)
	}
}

func TestCompile_FileSize(t *testing.T) {
	t.Parallel()

	_, err := Compile(testSchema, []byte(`name: "abcdef"`), "big.cue", "#Entry", WithMaxFileSize(4))
	if err == nil || !strings.Contains(err.Error(), "exceeds maximum 4 bytes") {
		t.Errorf("error = %v", err)
	}
}

func TestFormatError_NonCUE(t *testing.T) {
	t.Parallel()

	if FormatError(nil, "x") != nil {
		t.Error("FormatError(nil) should be nil")
	}
	base := errors.New("boom")
	err := FormatError(base, "f.cue")
	if err.Error() != "f.cue: boom" || !errors.Is(err, base) {
		t.Errorf("FormatError() = %v", err)
	}
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := map[string][]string{
		"":                nil,
		"log":             {"log"},
		"install.prefix":  {"install", "prefix"},
		"applets[0].name": {"applets", "0", "name"},
		"a[1][2]":         {"a", "1", "2"},
		"impls.sh.fn":     {"impls", "sh", "fn"},
	}
	for want, path := range tests {
		if got := formatPath(path); got != want {
			t.Errorf("formatPath(%v) = %q, want %q", path, got, want)
		}
	}
}
