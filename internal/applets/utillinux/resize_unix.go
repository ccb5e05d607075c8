// SPDX-License-Identifier: MPL-2.0

//go:build unix

package utillinux

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/creack/pty"
)

// watchResize copies the size of tty to ptmx on every SIGWINCH until the
// returned function is called.
func watchResize(tty, ptmx *os.File) (stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGWINCH)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ch:
				_ = pty.InheritSize(tty, ptmx)
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(ch)
		close(done)
	}
}
