// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize bounds the size of a file handed to Compile (1MB).
const DefaultMaxFileSize int64 = 1 << 20

type (
	compileOptions struct {
		maxFileSize int64
		concrete    bool
	}

	// Option configures Compile.
	Option func(*compileOptions)
)

// WithMaxFileSize overrides DefaultMaxFileSize.
func WithMaxFileSize(size int64) Option {
	return func(o *compileOptions) { o.maxFileSize = size }
}

// WithConcrete requires every field to be concrete after unification.
// Files with optional fields leave it off.
func WithConcrete(concrete bool) Option {
	return func(o *compileOptions) { o.concrete = concrete }
}
