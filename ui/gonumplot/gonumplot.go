// Copyright 2025-2026 The fnplot Authors. SPDX-License-Identifier: Apache-2.0

// Package gonumplot renders line charts as PNG images with gonum/plot (https://gonum.org/v1/plot).
//
// The plot and its line are kept in the handle: updates replace the line data in place, recompute the
// axis ranges and redraw the image. Non-finite values split the line into separate segments.
package gonumplot

import (
	"bytes"
	"encoding/base64"
	"image/color"
	"math"

	"github.com/google/uuid"
	"github.com/jorgemunozl/fnplot/pkg/chart"
	"github.com/jorgemunozl/fnplot/pkg/expr"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	// DefaultWidth and DefaultHeight of the images, in pixels.
	DefaultWidth, DefaultHeight = 800, 400

	// dpi used to convert pixels to vg.Length.
	dpi = 96
)

// LineColor of the plotted function.
var LineColor color.Color = color.RGBA{B: 255, A: 255}

// Renderer implements chart.Renderer with gonum/plot.
type Renderer struct{}

var _ chart.Renderer = (*Renderer)(nil)

// New creates a gonum/plot renderer.
func New() *Renderer { return &Renderer{} }

// Name implements chart.Renderer.
func (r *Renderer) Name() string { return "gonumplot" }

// Plot is the handle of one PNG chart.
type Plot struct {
	Id     string
	Config chart.Config

	plot    *plot.Plot
	line    *SegmentedLine
	surface chart.Surface
}

var (
	_ chart.Handle  = (*Plot)(nil)
	_ chart.Labeler = (*Plot)(nil)
)

// Create implements chart.Renderer.
func (r *Renderer) Create(surface chart.Surface, cfg chart.Config) (chart.Handle, error) {
	p := &Plot{
		Id:      uuid.NewString(),
		Config:  cfg.WithSize(DefaultWidth, DefaultHeight),
		plot:    plot.New(),
		line:    NewSegmentedLine(cfg.Series.Clone()),
		surface: surface,
	}
	p.Config.Series = p.line.Series
	p.plot.X.Label.Text = cfg.XTitle
	p.plot.Y.Label.Text = cfg.YTitle
	p.plot.Add(plotter.NewGrid(), p.line)
	if err := p.display(); err != nil {
		return nil, err
	}
	return p, nil
}

// SetLabel implements chart.Labeler.
func (p *Plot) SetLabel(label string) {
	p.Config.Label = label
}

// Update implements chart.Handle. If the new series can't be drawn, the plot keeps its previous data.
func (p *Plot) Update(series expr.SampleSeries) error {
	previous := p.line.Series
	p.line.Series = series.Clone()
	if err := p.display(); err != nil {
		p.line.Series = previous
		return err
	}
	p.Config.Series = p.line.Series
	return nil
}

func (p *Plot) display() error {
	png, err := p.PNG()
	if err != nil {
		return err
	}
	err = p.surface.Display(chart.Frame{
		ChartID: p.Id,
		Kind:    chart.KindPNG,
		Content: base64.StdEncoding.EncodeToString(png),
	})
	if err != nil {
		return errors.WithMessagef(err, "failed to display gonum plot %q", p.Config.Label)
	}
	return nil
}

// PNG draws the chart with its current data.
func (p *Plot) PNG() ([]byte, error) {
	p.plot.Legend = plot.NewLegend()
	p.plot.Legend.Top = true
	p.plot.Legend.Left = true
	if p.Config.Label != "" {
		p.plot.Legend.Add(p.Config.Label, p.line)
	}

	// Ranges are only computed by plot.Add, so they are reset for the current data.
	p.plot.X.Min, p.plot.X.Max, p.plot.Y.Min, p.plot.Y.Max = p.line.DataRange()
	if span := p.plot.Y.Max - p.plot.Y.Min; math.IsInf(span, 0) {
		// Axis ticks can't be computed for a span that overflows float64.
		return nil, errors.Errorf("y range [%g, %g] of %q is too large to plot", p.plot.Y.Min, p.plot.Y.Max, p.Config.Label)
	}
	if len(p.Config.Labels) > 0 {
		p.plot.X.Min, p.plot.X.Max = p.Config.Labels[0], p.Config.Labels[len(p.Config.Labels)-1]
	}

	width := vg.Length(p.Config.Width) * vg.Inch / dpi
	height := vg.Length(p.Config.Height) * vg.Inch / dpi
	writerTo, err := p.plot.WriterTo(width, height, "png")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create PNG canvas for %q", p.Config.Label)
	}
	buf := &bytes.Buffer{}
	if _, err = writerTo.WriteTo(buf); err != nil {
		return nil, errors.Wrapf(err, "failed to render PNG for %q", p.Config.Label)
	}
	return buf.Bytes(), nil
}

// SegmentedLine is a plot.Plotter that draws a SampleSeries as a line with markers. Non-finite values
// break the line: each run of finite values is drawn as its own segment.
type SegmentedLine struct {
	Series expr.SampleSeries
	draw.LineStyle
	draw.GlyphStyle
}

var (
	_ plot.Plotter     = (*SegmentedLine)(nil)
	_ plot.DataRanger  = (*SegmentedLine)(nil)
	_ plot.Thumbnailer = (*SegmentedLine)(nil)
)

// NewSegmentedLine creates a SegmentedLine with the default styles and LineColor.
func NewSegmentedLine(series expr.SampleSeries) *SegmentedLine {
	l := &SegmentedLine{
		Series:     series,
		LineStyle:  plotter.DefaultLineStyle,
		GlyphStyle: plotter.DefaultGlyphStyle,
	}
	l.LineStyle.Color = LineColor
	l.LineStyle.Width = vg.Points(2)
	l.GlyphStyle.Color = LineColor
	l.GlyphStyle.Shape = draw.BoxGlyph{}
	return l
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Segments returns the runs of consecutive finite samples.
func (l *SegmentedLine) Segments() []plotter.XYs {
	var segments []plotter.XYs
	var current plotter.XYs
	for _, sample := range l.Series {
		if !isFinite(sample.X) || !isFinite(sample.Y) {
			if len(current) > 0 {
				segments = append(segments, current)
				current = nil
			}
			continue
		}
		current = append(current, plotter.XY{X: sample.X, Y: sample.Y})
	}
	if len(current) > 0 {
		segments = append(segments, current)
	}
	return segments
}

// Plot implements plot.Plotter.
func (l *SegmentedLine) Plot(c draw.Canvas, plt *plot.Plot) {
	for _, segment := range l.Segments() {
		line := &plotter.Line{XYs: segment, LineStyle: l.LineStyle}
		line.Plot(c, plt)
		scatter := &plotter.Scatter{XYs: segment, GlyphStyle: l.GlyphStyle}
		scatter.Plot(c, plt)
	}
}

// DataRange implements plot.DataRanger, considering only the finite samples.
// If there are none the y range is [-1, 1]. If all y values are the same, the y range is widened
// by 10% of their magnitude (at least 1) on each side, within the float64 range.
func (l *SegmentedLine) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for _, segment := range l.Segments() {
		for _, xy := range segment {
			xmin, xmax = math.Min(xmin, xy.X), math.Max(xmax, xy.X)
			ymin, ymax = math.Min(ymin, xy.Y), math.Max(ymax, xy.Y)
		}
	}
	if math.IsInf(xmin, 1) {
		return expr.DomainMin, expr.DomainMax, -1, 1
	}
	if ymin == ymax {
		d := math.Max(1, math.Abs(ymin)*0.1)
		ymin = math.Max(ymin-d, -math.MaxFloat64)
		ymax = math.Min(ymax+d, math.MaxFloat64)
	}
	return
}

// Thumbnail implements plot.Thumbnailer, for the legend.
func (l *SegmentedLine) Thumbnail(c *draw.Canvas) {
	line := &plotter.Line{LineStyle: l.LineStyle}
	line.Thumbnail(c)
}
