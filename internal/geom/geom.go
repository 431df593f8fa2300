// Package geom provides the geometry primitives shared by the windowing
// engine: rectangles, axis spans, orientation and element identity.
package geom

import (
	"fmt"
	"strings"
)

// Orientation selects the axis along which items are stacked.
type Orientation uint8

const (
	// Vertical stacks items top to bottom.
	Vertical Orientation = iota

	// Horizontal stacks items left to right.
	Horizontal
)

// String returns the orientation name.
func (o Orientation) String() string {
	switch o {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	default:
		return "unknown"
	}
}

// ParseOrientation parses an orientation name. The empty string is vertical.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "vertical":
		return Vertical, nil
	case "horizontal":
		return Horizontal, nil
	default:
		return Vertical, fmt.Errorf("invalid orientation %q", s)
	}
}

// Element identifies a measurable element. Identity is by value.
type Element string

// Document is the root scroller. Its bounding rectangle does not include the
// current scroll offset, so trackers compensate for it.
const Document Element = ":root"

// None is the zero element.
const None Element = ""

// Valid returns true if the element is set.
func (e Element) Valid() bool {
	return e != None
}

// Span is a start/end pair along one axis.
type Span struct {
	Start float64
	End   float64
}

// Size returns the span length.
func (s Span) Size() float64 {
	return s.End - s.Start
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// NewRect creates a rectangle from its edges.
func NewRect(left, top, right, bottom float64) Rect {
	return Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
}

// Left returns the left edge.
func (r Rect) Left() float64 { return r.X }

// Top returns the top edge.
func (r Rect) Top() float64 { return r.Y }

// Right returns the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Offset returns the rectangle translated by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Axis reduces the rectangle to its start/end pair along the orientation
// axis: top/bottom for vertical, left/right for horizontal.
func (r Rect) Axis(o Orientation) Span {
	if o == Horizontal {
		return Span{Start: r.Left(), End: r.Right()}
	}
	return Span{Start: r.Top(), End: r.Bottom()}
}

// Extent returns the rectangle size along the orientation axis.
func (r Rect) Extent(o Orientation) float64 {
	if o == Horizontal {
		return r.Width
	}
	return r.Height
}

// String returns a compact representation.
func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.X, r.Y, r.Width, r.Height)
}
