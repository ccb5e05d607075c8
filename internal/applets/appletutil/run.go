// SPDX-License-Identifier: MPL-2.0

package appletutil

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/shellbox/shellbox/internal/applet"
)

// ErrUsage asks Report to print the applet's usage text.
var ErrUsage = errors.New("usage")

type (
	// Body is the shape of most applet implementations. args exclude the
	// applet name.
	Body func(ctx context.Context, stdio *applet.IO, args []string) error

	// StatusError ends an applet with Code. Err, when set, is printed first.
	StatusError struct {
		Code int
		Err  error
	}

	// UsageError reports bad arguments. Err, when set, is printed before the
	// usage text.
	UsageError struct {
		Err error
	}
)

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *StatusError) Unwrap() error { return e.Err }

// Error implements the error interface.
func (e *UsageError) Error() string {
	if e.Err == nil {
		return ErrUsage.Error()
	}
	return e.Err.Error()
}

// Unwrap returns ErrUsage so callers can use errors.Is.
func (e *UsageError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUsage}
	}
	return []error{ErrUsage, e.Err}
}

// Status returns an error that ends the applet with code and no message.
func Status(code int) error { return &StatusError{Code: code} }

// Statusf returns an error that prints a message and ends with code.
func Statusf(code int, format string, args ...any) error {
	return &StatusError{Code: code, Err: fmt.Errorf(format, args...)}
}

// Run calls body with the invocation IO and argv[1:] and converts the
// result with Report.
func Run(ctx context.Context, argv []string, body Body) int {
	name := applet.Name(ctx, argv[0])
	return Report(ctx, name, body(ctx, applet.IOFrom(ctx), argv[1:]))
}

// Report prints err the way busybox applets do and returns the exit
// status: 0 for nil, the usage text and 1 for usage errors, the code of a
// *StatusError, 1 otherwise.
func Report(ctx context.Context, name string, err error) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, pflag.ErrHelp) {
		applet.ShowUsage(ctx)
		return 0
	}

	var se *StatusError
	if errors.As(err, &se) {
		if se.Err != nil {
			applet.Errorf(ctx, name, "%v", se.Err)
		}
		return se.Code
	}

	if errors.Is(err, ErrUsage) {
		var ue *UsageError
		if errors.As(err, &ue) && ue.Err != nil {
			applet.Errorf(ctx, name, "%v", ue.Err)
		}
		return applet.ShowUsage(ctx)
	}

	applet.Errorf(ctx, name, "%v", err)
	return 1
}
