// Package autoupdate selects which external signals trigger automatic
// window updates.
package autoupdate

import (
	"fmt"
	"strings"
)

// Mode is the automatic update mode.
type Mode uint8

const (
	// Manual only updates on explicit requests and collection or
	// configuration changes.
	Manual Mode = iota

	// ViewportResize also updates when the viewport element resizes.
	ViewportResize

	// Auto also updates on global scroll and resize events.
	Auto
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Manual:
		return "manual"
	case ViewportResize:
		return "viewport-resize"
	case Auto:
		return "auto"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode name. The empty string is manual.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "manual":
		return Manual, nil
	case "viewport-resize":
		return ViewportResize, nil
	case "auto":
		return Auto, nil
	default:
		return Manual, fmt.Errorf("invalid auto update mode %q", s)
	}
}

// observesViewport returns true if the mode watches the viewport size.
func (m Mode) observesViewport() bool {
	return m == ViewportResize || m == Auto
}

// listensGlobally returns true if the mode registers scroll and resize
// listeners.
func (m Mode) listensGlobally() bool {
	return m == Auto
}
