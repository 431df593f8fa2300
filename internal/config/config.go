package config

import (
	"slices"
	"time"

	"github.com/dshills/vstack/internal/autoupdate"
	"github.com/dshills/vstack/internal/geom"
)

// Default values.
const (
	DefaultItemSpan       = 50
	DefaultViewportBuffer = 100
	DefaultLogLevel       = "info"
)

// Config holds every setting recognized by the engine.
type Config struct {
	// Virtualize enables windowing. When false the whole collection renders.
	Virtualize bool

	// Viewport names the scrolling element visibility is measured
	// against. Empty means the host itself.
	Viewport string

	// ItemSpan is the uniform item size along the orientation axis.
	ItemSpan float64

	// ViewportBuffer is rendered beyond the viewport on each side.
	ViewportBuffer float64

	// LayoutUpdateDelay debounces recomputes after geometry resolves.
	LayoutUpdateDelay time.Duration

	// AllowLayoutUpdateDelay gates LayoutUpdateDelay.
	AllowLayoutUpdateDelay bool

	Orientation    geom.Orientation
	AutoUpdateMode autoupdate.Mode

	StartRegionSpan float64
	EndRegionSpan   float64

	// SpanMap holds per-item spans. Windowing over a span map is not
	// implemented; a non-nil map yields an empty window.
	SpanMap []float64

	Logging LoggingConfig
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Virtualize:             true,
		ItemSpan:               DefaultItemSpan,
		ViewportBuffer:         DefaultViewportBuffer,
		AllowLayoutUpdateDelay: true,
		Orientation:            geom.Vertical,
		AutoUpdateMode:         autoupdate.Manual,
		Logging:                LoggingConfig{Level: DefaultLogLevel},
	}
}

// Normalize clamps negative spans, buffer and delay to zero.
func (c Config) Normalize() Config {
	c.ItemSpan = max(c.ItemSpan, 0)
	c.ViewportBuffer = max(c.ViewportBuffer, 0)
	c.StartRegionSpan = max(c.StartRegionSpan, 0)
	c.EndRegionSpan = max(c.EndRegionSpan, 0)
	c.LayoutUpdateDelay = max(c.LayoutUpdateDelay, 0)
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	return c
}

// Clone returns a copy that shares no memory with c.
func (c Config) Clone() Config {
	c.SpanMap = slices.Clone(c.SpanMap)
	return c
}

// ViewportElement returns the viewport element, or host when unset.
func (c Config) ViewportElement(host geom.Element) geom.Element {
	if c.Viewport == "" {
		return host
	}
	return geom.Element(c.Viewport)
}
