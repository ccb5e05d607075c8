// SPDX-License-Identifier: MPL-2.0

package types

import "testing"

func TestFromStatus(t *testing.T) {
	t.Parallel()

	tests := map[int]ExitCode{
		0:    ExitSuccess,
		1:    ExitFailure,
		127:  ExitNotFound,
		255:  255,
		256:  0,
		257:  1,
		-1:   255,
		-129: 127,
	}
	for status, want := range tests {
		if got := FromStatus(status); got != want {
			t.Errorf("FromStatus(%d) = %d, want %d", status, got, want)
		}
	}
}

func TestIsDispatchFailure(t *testing.T) {
	t.Parallel()

	for code := ExitCode(0); code <= 255; code++ {
		want := code == 125 || code == 126 || code == 127
		if got := code.IsDispatchFailure(); got != want {
			t.Errorf("ExitCode(%d).IsDispatchFailure() = %v", code, got)
		}
	}
}

func TestExitCodeString(t *testing.T) {
	t.Parallel()

	if got := ExitNotFound.String(); got != "127" {
		t.Errorf("String() = %q, want 127", got)
	}
}
