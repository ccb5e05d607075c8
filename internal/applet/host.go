// SPDX-License-Identifier: MPL-2.0

package applet

import "context"

type (
	// Host runs applets on behalf of another applet, such as the shell
	// running a pipeline stage in-process. The dispatcher stores itself in
	// the context of every invocation it starts.
	Host interface {
		// Resolve finds the applet registered under name.
		Resolve(name string) (Descriptor, bool)
		// Invoke runs d under its privilege policy with args, which exclude
		// the applet name, and returns its exit status.
		Invoke(ctx context.Context, d Descriptor, args []string) int
	}

	hostKey struct{}
)

// WithHost stores h in the context.
func WithHost(ctx context.Context, h Host) context.Context {
	return context.WithValue(ctx, hostKey{}, h)
}

// HostFrom returns the Host stored in ctx, if any.
func HostFrom(ctx context.Context) (Host, bool) {
	h, ok := ctx.Value(hostKey{}).(Host)
	return h, ok && h != nil
}
