package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/vstack/internal/config"
	"github.com/dshills/vstack/internal/geom"
	"github.com/dshills/vstack/internal/layout"
	"github.com/dshills/vstack/internal/window"
)

type calcOptions struct {
	length      int
	itemSpan    float64
	buffer      float64
	container   string
	viewport    string
	startRegion float64
	endRegion   float64
	orientation string
}

func calcCmd() *cobra.Command {
	var o calcOptions

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute the rendered window for a geometry",
		Long: `calc runs the window calculation for one container and viewport and
prints the rendered range, the spacers and the resulting track list.
Spans are given as start:end along the stacking axis.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, d, err := o.calculate()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "first         %d\n", res.First)
			fmt.Fprintf(out, "last          %d\n", res.Last)
			fmt.Fprintf(out, "start spacer  %s\n", formatSpan(res.StartSpacer))
			fmt.Fprintf(out, "end spacer    %s\n", formatSpan(res.EndSpacer))
			fmt.Fprintf(out, "range         %s..%s\n", formatSpan(res.RangeStart), formatSpan(res.RangeEnd))
			fmt.Fprintf(out, "total         %s\n", formatSpan(d.Total()))
			fmt.Fprintf(out, "%s: %s\n", d.Property(), d.Template())
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&o.length, "length", 0, "Number of items")
	f.Float64Var(&o.itemSpan, "item-span", config.DefaultItemSpan, "Span of one item")
	f.Float64Var(&o.buffer, "buffer", config.DefaultViewportBuffer, "Extra span rendered beyond each viewport edge")
	f.StringVar(&o.container, "container", "", "Container span as start:end")
	f.StringVar(&o.viewport, "viewport", "", "Viewport span as start:end")
	f.Float64Var(&o.startRegion, "start-region", 0, "Span of the fixed start region")
	f.Float64Var(&o.endRegion, "end-region", 0, "Span of the fixed end region")
	f.StringVar(&o.orientation, "orientation", "vertical", "Stacking axis (vertical, horizontal)")
	_ = cmd.MarkFlagRequired("container")
	_ = cmd.MarkFlagRequired("viewport")
	return cmd
}

func (o calcOptions) calculate() (window.Result, layout.Descriptor, error) {
	orientation, err := geom.ParseOrientation(o.orientation)
	if err != nil {
		return window.Result{}, layout.Descriptor{}, err
	}
	container, err := parseSpan(o.container, orientation)
	if err != nil {
		return window.Result{}, layout.Descriptor{}, fmt.Errorf("--container: %w", err)
	}
	viewport, err := parseSpan(o.viewport, orientation)
	if err != nil {
		return window.Result{}, layout.Descriptor{}, fmt.Errorf("--viewport: %w", err)
	}
	if o.length < 0 {
		return window.Result{}, layout.Descriptor{}, fmt.Errorf("--length must not be negative, got %d", o.length)
	}

	res := window.Calculate(window.Input{
		Length:          o.length,
		ItemSpan:        o.itemSpan,
		StartRegionSpan: o.startRegion,
		EndRegionSpan:   o.endRegion,
		Buffer:          o.buffer,
		Orientation:     orientation,
		Container:       &container,
		Viewport:        &viewport,
	})

	d := layout.Descriptor{
		Orientation: orientation,
		StartRegion: o.startRegion,
		StartSpacer: res.StartSpacer,
		ItemSpan:    o.itemSpan,
		ItemCount:   res.Count(),
		EndSpacer:   res.EndSpacer,
		EndRegion:   o.endRegion,
	}
	return res, d, nil
}

// parseSpan parses "start:end" into a rectangle spanning that range along
// the orientation's axis.
func parseSpan(s string, o geom.Orientation) (geom.Rect, error) {
	from, to, ok := strings.Cut(s, ":")
	if !ok {
		return geom.Rect{}, fmt.Errorf("invalid span %q, want start:end", s)
	}
	start, err := strconv.ParseFloat(strings.TrimSpace(from), 64)
	if err != nil {
		return geom.Rect{}, fmt.Errorf("invalid span start %q: %w", from, err)
	}
	end, err := strconv.ParseFloat(strings.TrimSpace(to), 64)
	if err != nil {
		return geom.Rect{}, fmt.Errorf("invalid span end %q: %w", to, err)
	}
	if end < start {
		return geom.Rect{}, fmt.Errorf("invalid span %q, end before start", s)
	}
	if o == geom.Horizontal {
		return geom.NewRect(start, 0, end, 0), nil
	}
	return geom.NewRect(0, start, 0, end), nil
}

func formatSpan(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
