// Package window computes which slice of a uniformly sized collection
// intersects a viewport.
//
// Calculate is pure: identical inputs always produce identical results, and
// nothing outside the arguments is read.
package window

import (
	"math"

	"github.com/dshills/vstack/internal/geom"
)

// Input holds everything the calculation needs.
type Input struct {
	// Length is the number of items in the collection.
	Length int

	// ItemSpan is the uniform size of one item along the orientation axis.
	ItemSpan float64

	// StartRegionSpan and EndRegionSpan are fixed areas reserved before and
	// after the virtualized items.
	StartRegionSpan float64
	EndRegionSpan   float64

	// Buffer is the extra distance rendered beyond each viewport edge.
	Buffer float64

	Orientation geom.Orientation

	// Container and Viewport are the most recently resolved rectangles.
	// Either being nil yields an empty window.
	Container *geom.Rect
	Viewport  *geom.Rect

	// SpanMap holds per-item spans. Variable spans are not windowed yet:
	// a non-nil map yields an empty window.
	SpanMap []float64
}

// Result is the computed window.
type Result struct {
	// First and Last are the inclusive rendered indices, both -1 when
	// nothing is rendered.
	First int
	Last  int

	// StartSpacer and EndSpacer represent the unrendered mass before and
	// after the window.
	StartSpacer float64
	EndSpacer   float64

	// RangeStart and RangeEnd are the visible pixel range relative to the
	// container start, after buffering and clamping.
	RangeStart float64
	RangeEnd   float64
}

// EmptyResult is the neutral window.
var EmptyResult = Result{First: -1, Last: -1}

// Empty returns true if no items are rendered.
func (r Result) Empty() bool {
	return r.First < 0 || r.Last < 0
}

// Count returns the number of rendered items.
func (r Result) Count() int {
	if r.Empty() {
		return 0
	}
	return r.Last - r.First + 1
}

// Calculate computes the rendered window for the given input.
func Calculate(in Input) Result {
	if in.Length <= 0 || in.Container == nil || in.Viewport == nil {
		return EmptyResult
	}
	if in.SpanMap != nil || in.ItemSpan <= 0 || isBad(in.ItemSpan) {
		return EmptyResult
	}

	viewport := in.Viewport.Axis(in.Orientation)
	container := in.Container.Axis(in.Orientation)

	containerStart := container.Start + in.StartRegionSpan
	containerEnd := container.End - in.EndRegionSpan
	containerSpan := in.Container.Extent(in.Orientation)

	var rangeStart, rangeEnd float64
	switch {
	case viewport.Start >= containerEnd:
		// Viewport is past the far edge
		rangeStart = containerSpan
		rangeEnd = containerSpan
	case viewport.End <= containerStart:
		// Viewport is before the near edge
		rangeStart = 0
		rangeEnd = 0
	default:
		rangeStart = viewport.Start - containerStart - in.Buffer
		rangeEnd = containerSpan - (containerEnd - (viewport.End + in.Buffer))
		rangeStart = clamp(rangeStart, 0, containerSpan)
		rangeEnd = clamp(rangeEnd, 0, containerSpan)
	}
	if rangeEnd < rangeStart {
		rangeEnd = rangeStart
	}

	// Quotients are clamped as floats; a tiny item span can push them
	// past the int range.
	maxIndex := float64(in.Length - 1)
	firstF := math.Floor(rangeStart / in.ItemSpan)
	lastF := clamp(firstF+math.Ceil((rangeEnd-rangeStart)/in.ItemSpan), 0, maxIndex)
	firstF = clamp(firstF, 0, maxIndex)
	if lastF < firstF {
		lastF = firstF
	}
	first, last := int(firstF), int(lastF)

	return Result{
		First:       first,
		Last:        last,
		StartSpacer: float64(first) * in.ItemSpan,
		EndSpacer:   float64(in.Length-last-1) * in.ItemSpan,
		RangeStart:  rangeStart,
		RangeEnd:    rangeEnd,
	}
}

// TotalSpan returns the span of the whole stack: every item plus the start
// and end regions. With a span map the item mass is not computed.
func TotalSpan(length int, itemSpan float64, spanMap []float64, startRegion, endRegion float64) float64 {
	var items float64
	if spanMap == nil && length > 0 && !isBad(itemSpan) {
		items = float64(length) * itemSpan
	}
	return items + startRegion + endRegion
}

// ItemPosition returns the offset of an item in the full, non-windowed
// stack. Out of range indices and span maps return 0.
func ItemPosition(index, length int, itemSpan float64, spanMap []float64, startRegion float64) float64 {
	if index < 0 || index >= length {
		return 0
	}
	if spanMap != nil || isBad(itemSpan) {
		return 0
	}
	return startRegion + float64(index)*itemSpan
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func isBad(f float64) bool {
	return math.IsNaN(f) || math.IsInf(f, 0)
}
