// SPDX-License-Identifier: MPL-2.0

package networking

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

type (
	stateEntry struct {
		iface   string
		logical string
	}

	// ifState is the content of the state file: one "iface=logical" line
	// per configured interface, in the order they were brought up.
	ifState []stateEntry
)

func (s ifState) find(iface string) (stateEntry, bool) {
	for _, e := range s {
		if e.iface == iface {
			return e, true
		}
	}
	return stateEntry{}, false
}

func (s ifState) set(iface, logical string) ifState {
	out := s.remove(iface)
	return append(out, stateEntry{iface: iface, logical: logical})
}

func (s ifState) remove(iface string) ifState {
	out := make(ifState, 0, len(s))
	for _, e := range s {
		if e.iface != iface {
			out = append(out, e)
		}
	}
	return out
}

// loadState reads path. A missing file is an empty state.
func loadState(path string) (ifState, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading state: %w", err)
	}
	defer f.Close()

	var s ifState
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		iface, logical, ok := strings.Cut(line, "=")
		if !ok {
			logical = iface
		}
		s = append(s, stateEntry{iface: iface, logical: logical})
	}
	return s, sc.Err()
}

// saveState replaces path atomically.
func saveState(path string, s ifState) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".ifstate-*")
	if err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	for _, e := range s {
		fmt.Fprintf(w, "%s=%s\n", e.iface, e.logical)
	}
	if err := w.Flush(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}
