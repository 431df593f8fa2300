package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/vstack/internal/layout"
	"github.com/dshills/vstack/internal/logging"
	"github.com/dshills/vstack/internal/stack"
	"github.com/dshills/vstack/internal/template"
)

// Styles used by the sink.
var (
	styleItem   = tcell.StyleDefault
	styleRegion = tcell.StyleDefault.Dim(true)
	styleStatus = tcell.StyleDefault.Reverse(true)
	styleError  = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// Status describes the status line.
type Status struct {
	Total int
	Mode  string
}

// Sink draws frames onto a Surface.
type Sink[T any] struct {
	surface  *Surface
	template template.Template
	status   func() Status
	log      *logging.Logger

	frames int
	last   stack.Frame[T]
}

// NewSink creates a sink rendering items with tmpl. status may be nil.
func NewSink[T any](surface *Surface, tmpl template.Template, status func() Status, log *logging.Logger) *Sink[T] {
	if tmpl == nil {
		tmpl = template.Default()
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Sink[T]{surface: surface, template: tmpl, status: status, log: log}
}

// Frames returns the number of frames rendered.
func (s *Sink[T]) Frames() int {
	return s.frames
}

// Render implements stack.Sink.
func (s *Sink[T]) Render(f stack.Frame[T]) {
	s.frames++
	s.last = f
	s.Redraw()
}

// Redraw repaints the last frame, e.g. after the surface scrolled.
func (s *Sink[T]) Redraw() {
	screen := s.surface.Screen()
	screen.Clear()

	f := s.last
	s.drawRegions(f.Layout)
	for k, item := range f.Items {
		row := s.surface.Row(f.Layout.ItemOffset(k))
		if row < 0 || row >= s.surface.ViewRows() {
			continue
		}
		index := f.First + k
		text, err := s.template.Render(item, index)
		style := styleItem
		if err != nil {
			s.log.Warn("render item %d: %v", index, err)
			text, style = err.Error(), styleError
		}
		s.drawText(0, row, text, style)
	}
	s.drawStatus(f)
	screen.Show()
}

// drawRegions marks the fixed start and end regions.
func (s *Sink[T]) drawRegions(d layout.Descriptor) {
	if d.StartRegion > 0 {
		s.fillRows(0, d.StartRegion, "header")
	}
	if d.EndRegion > 0 {
		s.fillRows(d.Total()-d.EndRegion, d.Total(), "footer")
	}
}

func (s *Sink[T]) fillRows(from, to float64, label string) {
	first := s.surface.Row(from)
	last := s.surface.Row(to - s.surface.RowSpan())
	for row := max(first, 0); row <= last && row < s.surface.ViewRows(); row++ {
		s.drawText(0, row, fmt.Sprintf("[%s]", label), styleRegion)
	}
}

func (s *Sink[T]) drawStatus(f stack.Frame[T]) {
	var st Status
	if s.status != nil {
		st = s.status()
	}

	text := fmt.Sprintf(" %d..%d of %d  %s  scroll %.0f ", f.First, f.Last, st.Total, st.Mode, s.surface.Scroll())
	row := s.surface.ViewRows()
	width := s.surface.Width()
	for x := 0; x < width; x++ {
		s.surface.Screen().SetContent(x, row, ' ', nil, styleStatus)
	}
	s.drawText(0, row, text, styleStatus)
}

// drawText draws text on one row, truncated to the screen width.
func (s *Sink[T]) drawText(x, y int, text string, style tcell.Style) {
	width := s.surface.Width()
	text = runewidth.Truncate(text, width-x, "…")
	for _, r := range text {
		if x >= width {
			return
		}
		s.surface.Screen().SetContent(x, y, r, nil, style)
		x += max(runewidth.RuneWidth(r), 1)
	}
}
