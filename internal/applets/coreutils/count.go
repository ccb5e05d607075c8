// SPDX-License-Identifier: MPL-2.0

package coreutils

import (
	"fmt"
	"strconv"
	"strings"
)

// countSuffixes are the multipliers busybox accepts after a count.
var countSuffixes = map[byte]int64{
	'b': 512,
	'k': 1024,
	'm': 1024 * 1024,
}

// parseCount parses "N", "N[bkm]" and, when allowSign is set, a leading
// "+" (reported as fromStart) or "-".
func parseCount(s string, allowSign bool) (n int64, fromStart bool, err error) {
	orig := s
	if allowSign && s != "" {
		switch s[0] {
		case '+':
			fromStart = true
			s = s[1:]
		case '-':
			s = s[1:]
		}
	}

	mult := int64(1)
	if s != "" {
		if m, ok := countSuffixes[s[len(s)-1]]; ok {
			mult = m
			s = s[:len(s)-1]
		}
	}

	n, err = strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 0 {
		return 0, false, fmt.Errorf("invalid number '%s'", orig)
	}
	return n * mult, fromStart, nil
}
