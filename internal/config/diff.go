package config

import (
	"slices"
	"strings"
)

// Effect is a set of recomputations required by a configuration change.
type Effect uint8

const (
	// EffectReset rebuilds the rendered slice from scratch.
	EffectReset Effect = 1 << iota

	// EffectViewport re-resolves the viewport element.
	EffectViewport

	// EffectDimensions recomputes total span and requests an update.
	EffectDimensions

	// EffectAutoUpdate transitions the auto update mode.
	EffectAutoUpdate

	// EffectNone means nothing needs recomputing.
	EffectNone Effect = 0
)

// Has returns true if every bit of other is set in e.
func (e Effect) Has(other Effect) bool {
	return e&other == other && other != 0
}

// String returns the effect names joined by "|".
func (e Effect) String() string {
	if e == EffectNone {
		return "none"
	}
	var parts []string
	if e.Has(EffectReset) {
		parts = append(parts, "reset")
	}
	if e.Has(EffectViewport) {
		parts = append(parts, "viewport")
	}
	if e.Has(EffectDimensions) {
		parts = append(parts, "dimensions")
	}
	if e.Has(EffectAutoUpdate) {
		parts = append(parts, "auto-update")
	}
	return strings.Join(parts, "|")
}

// Diff reports what must be recomputed when old is replaced by next.
// Buffer and delay changes need nothing: they are read at use.
func Diff(old, next Config) Effect {
	var e Effect
	if old.Virtualize != next.Virtualize {
		e |= EffectReset
	}
	if old.Viewport != next.Viewport {
		e |= EffectViewport
	}
	if old.ItemSpan != next.ItemSpan ||
		old.Orientation != next.Orientation ||
		old.StartRegionSpan != next.StartRegionSpan ||
		old.EndRegionSpan != next.EndRegionSpan ||
		!slices.Equal(old.SpanMap, next.SpanMap) ||
		(old.SpanMap == nil) != (next.SpanMap == nil) {
		e |= EffectDimensions
	}
	if old.AutoUpdateMode != next.AutoUpdateMode {
		e |= EffectAutoUpdate
	}
	return e
}
