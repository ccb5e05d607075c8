// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Compile unifies data with the definition def (such as "#Config") of
// schema and validates the result. filename is used in error messages.
func Compile(schema string, data []byte, filename, def string, opts ...Option) (cue.Value, error) {
	o := compileOptions{maxFileSize: DefaultMaxFileSize}
	for _, opt := range opts {
		opt(&o)
	}
	if err := CheckFileSize(data, o.maxFileSize, filename); err != nil {
		return cue.Value{}, err
	}

	ctx := cuecontext.New()
	schemaValue := ctx.CompileString(schema)
	if schemaValue.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: compile schema: %w", schemaValue.Err())
	}
	root := schemaValue.LookupPath(cue.ParsePath(def))
	if !root.Exists() {
		return cue.Value{}, fmt.Errorf("internal error: schema has no %s", def)
	}

	user := ctx.CompileBytes(data, cue.Filename(filename))
	if user.Err() != nil {
		return cue.Value{}, FormatError(user.Err(), filename)
	}

	unified := root.Unify(user)
	if err := unified.Validate(cue.Concrete(o.concrete)); err != nil {
		return cue.Value{}, FormatError(err, filename)
	}
	return unified, nil
}

// Decode is Compile followed by decoding into a T.
func Decode[T any](schema string, data []byte, filename, def string, opts ...Option) (*T, error) {
	v, err := Compile(schema, data, filename, def, opts...)
	if err != nil {
		return nil, err
	}
	var out T
	if err := v.Decode(&out); err != nil {
		return nil, FormatError(err, filename)
	}
	return &out, nil
}
