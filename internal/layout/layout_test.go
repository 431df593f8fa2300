package layout

import (
	"testing"

	"github.com/dshills/vstack/internal/geom"
)

func scenario() Descriptor {
	return Descriptor{
		StartSpacer: 1900,
		ItemSpan:    50,
		ItemCount:   15,
		EndSpacer:   47350,
	}
}

func TestDescriptorSpans(t *testing.T) {
	d := scenario()
	d.StartRegion = 10
	d.EndRegion = 20

	spans := d.Spans()
	if len(spans) != 19 {
		t.Fatalf("expected 19 spans, got %d", len(spans))
	}
	if spans[0] != 10 || spans[1] != 1900 || spans[2] != 50 || spans[16] != 50 {
		t.Errorf("unexpected leading spans %v", spans[:3])
	}
	if spans[17] != 47350 || spans[18] != 20 {
		t.Errorf("unexpected trailing spans %v", spans[17:])
	}
}

func TestDescriptorTotal(t *testing.T) {
	d := scenario()
	if d.Total() != 50000 {
		t.Errorf("expected 50000, got %g", d.Total())
	}

	d.StartRegion = 100
	d.EndRegion = 100
	if d.Total() != 50200 {
		t.Errorf("expected 50200, got %g", d.Total())
	}
}

func TestDescriptorItemOffset(t *testing.T) {
	d := scenario()
	d.StartRegion = 100

	if got := d.ItemOffset(0); got != 2000 {
		t.Errorf("expected 2000, got %g", got)
	}
	if got := d.ItemOffset(2); got != 2100 {
		t.Errorf("expected 2100, got %g", got)
	}
	if got := d.Slot(0); got != 3 {
		t.Errorf("expected slot 3, got %d", got)
	}
}

func TestDescriptorTemplate(t *testing.T) {
	want := "[start]0px 1900px repeat(15, 50px) 47350px [end]0px"
	if got := scenario().Template(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	d := Descriptor{ItemSpan: 12.5, ItemCount: -1}
	if got := d.Template(); got != "[start]0px 0px repeat(0, 12.5px) 0px [end]0px" {
		t.Errorf("unexpected template %q", got)
	}
}

func TestDescriptorProperty(t *testing.T) {
	if got := (Descriptor{}).Property(); got != "grid-template-rows" {
		t.Errorf("expected rows, got %s", got)
	}
	if got := (Descriptor{Orientation: geom.Horizontal}).Property(); got != "grid-template-columns" {
		t.Errorf("expected columns, got %s", got)
	}
}
