// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/shellbox/shellbox/internal/applet"
)

// ErrInvalidTable is the sentinel error wrapped by every table validation error.
var ErrInvalidTable = errors.New("invalid applet table")

// maxSuggestDistance bounds the edit distance of "did you mean" candidates.
const maxSuggestDistance = 2

type (
	// Registry is an immutable, name-ordered set of applet descriptors.
	// It is safe for concurrent use because it is never modified after New.
	Registry struct {
		applets []applet.Descriptor
	}

	// OrderError reports two neighbouring descriptors that are not in strict
	// ascending order. Equal names are duplicates.
	OrderError struct {
		Index int
		Prev  string
		Name  string
	}

	// DescriptorError reports a descriptor that is malformed on its own.
	DescriptorError struct {
		Index  int
		Name   string
		Reason string
	}
)

var defaultRegistry = sync.OnceValue(func() *Registry {
	return MustNew(table())
})

// Default returns the registry of this build. It is built on first use and
// panics if the generated table is invalid.
func Default() *Registry {
	return defaultRegistry()
}

// New validates descs and returns a registry over them. The slice is copied.
func New(descs []applet.Descriptor) (*Registry, error) {
	for i, d := range descs {
		if err := validateDescriptor(i, d); err != nil {
			return nil, err
		}
		if i > 0 && descs[i-1].Name >= d.Name {
			return nil, &OrderError{Index: i, Prev: descs[i-1].Name, Name: d.Name}
		}
	}

	applets := make([]applet.Descriptor, len(descs))
	copy(applets, descs)
	return &Registry{applets: applets}, nil
}

// MustNew is New that panics on an invalid table.
func MustNew(descs []applet.Descriptor) *Registry {
	r, err := New(descs)
	if err != nil {
		panic(fmt.Sprintf("registry: %v", err))
	}
	return r
}

func validateDescriptor(i int, d applet.Descriptor) error {
	switch {
	case d.Name == "":
		return &DescriptorError{Index: i, Reason: "empty name"}
	case d.Impl == "":
		return &DescriptorError{Index: i, Name: d.Name, Reason: "empty implementation id"}
	case !d.Location.Valid():
		return &DescriptorError{Index: i, Name: d.Name, Reason: "unknown install location " + d.Location.String()}
	case !d.SUID.Valid():
		return &DescriptorError{Index: i, Name: d.Name, Reason: "unknown suid policy " + d.SUID.String()}
	}

	switch e := d.Entry.(type) {
	case applet.Main:
		if e == nil {
			return &DescriptorError{Index: i, Name: d.Name, Reason: "nil entry point"}
		}
	case applet.NoReturn:
		if e == nil {
			return &DescriptorError{Index: i, Name: d.Name, Reason: "nil entry point"}
		}
	default:
		return &DescriptorError{Index: i, Name: d.Name, Reason: "missing entry point"}
	}
	return nil
}

// Resolve returns the descriptor whose name is exactly name.
func (r *Registry) Resolve(name string) (applet.Descriptor, bool) {
	i := r.search(name)
	if i < len(r.applets) && r.applets[i].Name == name {
		return r.applets[i], true
	}
	return applet.Descriptor{}, false
}

// search is sort.Search over the name ordering, spelled out so the hot path
// does not allocate a closure.
func (r *Registry) search(name string) int {
	lo, hi := 0, len(r.applets)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if r.applets[mid].Name < name {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// Usage returns the usage text of the named applet.
func (r *Registry) Usage(name string) (string, bool) {
	d, ok := r.Resolve(name)
	if !ok {
		return "", false
	}
	return d.Usage, true
}

// All returns the descriptors in name order. The slice is a copy.
func (r *Registry) All() []applet.Descriptor {
	out := make([]applet.Descriptor, len(r.applets))
	copy(out, r.applets)
	return out
}

// Len returns the number of applets.
func (r *Registry) Len() int { return len(r.applets) }

// Names returns the applet names in order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.applets))
	for i, d := range r.applets {
		names[i] = d.Name
	}
	return names
}

// Aliases returns every name whose implementation id is impl, in order.
func (r *Registry) Aliases(impl string) []string {
	var names []string
	for _, d := range r.applets {
		if d.Impl == impl {
			names = append(names, d.Name)
		}
	}
	return names
}

// Suggest returns known names within a small edit distance of name, closest
// first. It is only meant for hints after a failed Resolve.
func (r *Registry) Suggest(name string) []string {
	type candidate struct {
		name string
		dist int
	}

	var found []candidate
	for _, d := range r.applets {
		dist := levenshtein.ComputeDistance(name, d.Name)
		if dist <= maxSuggestDistance && dist < len(d.Name) {
			found = append(found, candidate{name: d.Name, dist: dist})
		}
	}
	sort.SliceStable(found, func(i, j int) bool { return found[i].dist < found[j].dist })

	out := make([]string, len(found))
	for i, c := range found {
		out[i] = c.name
	}
	return out
}

// Error implements the error interface.
func (e *OrderError) Error() string {
	if e.Prev == e.Name {
		return fmt.Sprintf("duplicate applet %q at index %d", e.Name, e.Index)
	}
	return fmt.Sprintf("applet %q at index %d sorts before its predecessor %q", e.Name, e.Index, e.Prev)
}

// Unwrap returns ErrInvalidTable for errors.Is.
func (e *OrderError) Unwrap() error { return ErrInvalidTable }

// Error implements the error interface.
func (e *DescriptorError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("applet at index %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("applet %q at index %d: %s", e.Name, e.Index, e.Reason)
}

// Unwrap returns ErrInvalidTable for errors.Is.
func (e *DescriptorError) Unwrap() error { return ErrInvalidTable }
