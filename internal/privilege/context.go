// SPDX-License-Identifier: MPL-2.0

package privilege

import "context"

type processKey struct{}

// WithProcess records the process whose credentials applets should consult.
// The dispatcher stores the Process it enforced the policy on.
func WithProcess(ctx context.Context, p Process) context.Context {
	return context.WithValue(ctx, processKey{}, p)
}

// FromContext returns the Process stored by WithProcess, or Current().
func FromContext(ctx context.Context) Process {
	if p, ok := ctx.Value(processKey{}).(Process); ok && p != nil {
		return p
	}
	return Current()
}
