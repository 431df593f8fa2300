// Package layout describes how a rendering sink should lay out the
// materialized window: start region, start spacer, one slot per rendered
// item, end spacer, end region.
package layout

import (
	"strconv"
	"strings"

	"github.com/dshills/vstack/internal/geom"
)

// SlotOffset is the track number of the first item slot when tracks are
// numbered from 1: the start region and the start spacer come first.
const SlotOffset = 3

// Descriptor is the ordered span layout of a stack.
type Descriptor struct {
	Orientation geom.Orientation

	StartRegion float64
	StartSpacer float64
	ItemSpan    float64
	ItemCount   int
	EndSpacer   float64
	EndRegion   float64
}

// Spans returns the span sizes in order: start region, start spacer, each
// item slot, end spacer, end region.
func (d Descriptor) Spans() []float64 {
	count := d.ItemCount
	if count < 0 {
		count = 0
	}

	spans := make([]float64, 0, count+4)
	spans = append(spans, d.StartRegion, d.StartSpacer)
	for i := 0; i < count; i++ {
		spans = append(spans, d.ItemSpan)
	}
	return append(spans, d.EndSpacer, d.EndRegion)
}

// Total returns the sum of every span.
func (d Descriptor) Total() float64 {
	count := d.ItemCount
	if count < 0 {
		count = 0
	}
	return d.StartRegion + d.StartSpacer + float64(count)*d.ItemSpan + d.EndSpacer + d.EndRegion
}

// ItemOffset returns the offset of the k-th materialized item from the
// start of the stack.
func (d Descriptor) ItemOffset(k int) float64 {
	return d.StartRegion + d.StartSpacer + float64(k)*d.ItemSpan
}

// Slot returns the 1-based track number of the k-th materialized item.
func (d Descriptor) Slot(k int) int {
	return k + SlotOffset
}

// Template renders the descriptor as a grid track list, e.g.
// "[start]0px 1900px repeat(15, 50px) 47350px [end]0px".
func (d Descriptor) Template() string {
	count := d.ItemCount
	if count < 0 {
		count = 0
	}

	var b strings.Builder
	b.WriteString("[start]")
	b.WriteString(px(d.StartRegion))
	b.WriteByte(' ')
	b.WriteString(px(d.StartSpacer))
	b.WriteString(" repeat(")
	b.WriteString(strconv.Itoa(count))
	b.WriteString(", ")
	b.WriteString(px(d.ItemSpan))
	b.WriteString(") ")
	b.WriteString(px(d.EndSpacer))
	b.WriteString(" [end]")
	b.WriteString(px(d.EndRegion))
	return b.String()
}

// Property returns the grid property the template applies to.
func (d Descriptor) Property() string {
	if d.Orientation == geom.Horizontal {
		return "grid-template-columns"
	}
	return "grid-template-rows"
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
