// Package term hosts a virtualizing stack in a terminal using tcell.
//
// The screen plays the part of the host element: its rows above the status
// line are the viewport, and the list content scrolls beneath it. Surface
// answers geometry queries in the same units as the configured item span,
// so one item always occupies one row.
//
// Everything except the event pump runs on the loop thread.
package term
