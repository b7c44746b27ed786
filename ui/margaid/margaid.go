// Copyright 2025-2026 The fnplot Authors. SPDX-License-Identifier: Apache-2.0

// Package margaid renders line charts as SVG using the Margaid library (https://github.com/erkkah/margaid/).
//
// SVG is static, so every update redraws the whole chart and displays it with the same chart id,
// replacing the previous drawing. Non-finite values (NaN, ±Inf) can't be drawn, and are left as gaps.
package margaid

import (
	"bytes"
	"fmt"
	"html"
	"math"

	mg "github.com/erkkah/margaid"
	"github.com/google/uuid"
	"github.com/jorgemunozl/fnplot/pkg/chart"
	"github.com/jorgemunozl/fnplot/pkg/expr"
	"github.com/pkg/errors"
)

const (
	// DefaultWidth and DefaultHeight of the charts, in pixels.
	DefaultWidth, DefaultHeight = 1024, 400
)

// Renderer implements chart.Renderer with Margaid.
type Renderer struct {
	// BackgroundColor of the chart.
	BackgroundColor string

	// ColorScheme is the hue (0-360) of the first line.
	ColorScheme int
}

var _ chart.Renderer = (*Renderer)(nil)

// New creates a Margaid renderer with the default settings.
func New() *Renderer {
	return &Renderer{BackgroundColor: "#f8f8f8", ColorScheme: 90}
}

// Name implements chart.Renderer.
func (r *Renderer) Name() string { return "margaid" }

// Plot is the handle of one SVG chart.
type Plot struct {
	Id       string
	Config   chart.Config
	renderer *Renderer
	surface  chart.Surface
}

var (
	_ chart.Handle  = (*Plot)(nil)
	_ chart.Labeler = (*Plot)(nil)
)

// Create implements chart.Renderer.
func (r *Renderer) Create(surface chart.Surface, cfg chart.Config) (chart.Handle, error) {
	p := &Plot{
		Id:       uuid.NewString(),
		Config:   cfg.WithSize(DefaultWidth, DefaultHeight),
		renderer: r,
		surface:  surface,
	}
	p.Config.Series = cfg.Series.Clone()
	if err := p.display(); err != nil {
		return nil, err
	}
	return p, nil
}

// SetLabel implements chart.Labeler.
func (p *Plot) SetLabel(label string) {
	p.Config.Label = label
}

// Update implements chart.Handle: the chart is redrawn with the new series.
func (p *Plot) Update(series expr.SampleSeries) error {
	p.Config.Series = series.Clone()
	return p.display()
}

func (p *Plot) display() error {
	svg, err := p.SVG()
	if err != nil {
		return err
	}
	err = p.surface.Display(chart.Frame{ChartID: p.Id, Kind: chart.KindSVG, Content: svg})
	if err != nil {
		return errors.WithMessagef(err, "failed to display margaid plot %q", p.Config.Label)
	}
	return nil
}

// finiteSeries converts the finite samples of series to a Margaid series, and returns their y range.
func finiteSeries(title string, series expr.SampleSeries) (s *mg.Series, minY, maxY float64) {
	s = mg.NewSeries(mg.Titled(title))
	minY, maxY = math.Inf(1), math.Inf(-1)
	for _, sample := range series {
		if math.IsNaN(sample.Y) || math.IsInf(sample.Y, 0) {
			continue
		}
		s.Add(mg.MakeValue(sample.X, sample.Y))
		minY = math.Min(minY, sample.Y)
		maxY = math.Max(maxY, sample.Y)
	}
	return
}

// SVG renders the chart with its current data.
func (p *Plot) SVG() (string, error) {
	cfg := p.Config
	s, minY, maxY := finiteSeries(cfg.Label, cfg.Series)
	if s.Size() == 0 {
		return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`+
			`<text x="50%%" y="50%%" text-anchor="middle">%s: no finite values to plot</text></svg>`,
			cfg.Width, cfg.Height, html.EscapeString(cfg.Label)), nil
	}
	if minY == maxY {
		// A constant function: give the y-axis some room.
		minY, maxY = minY-1, maxY+1
	}
	minX, maxX := float64(expr.DomainMin), float64(expr.DomainMax)
	if len(cfg.Labels) > 0 {
		minX, maxX = cfg.Labels[0], cfg.Labels[len(cfg.Labels)-1]
	}

	diagram := mg.New(cfg.Width, cfg.Height,
		mg.WithRange(mg.XAxis, minX, maxX),
		mg.WithProjection(mg.XAxis, mg.Lin),
		mg.WithRange(mg.YAxis, minY, maxY),
		mg.WithProjection(mg.YAxis, mg.Lin),
		mg.WithInset(70),
		mg.WithPadding(2),
		mg.WithColorScheme(p.renderer.ColorScheme),
		mg.WithBackgroundColor(p.renderer.BackgroundColor),
	)
	diagram.Line(s, mg.UsingAxes(mg.XAxis, mg.YAxis), mg.UsingMarker("square"), mg.UsingStrokeWidth(2))
	diagram.Axis(s, mg.XAxis, diagram.ValueTicker('f', 0, 10), false, cfg.XTitle)
	diagram.Axis(s, mg.YAxis, diagram.ValueTicker('f', 2, 10), true, cfg.YTitle)
	diagram.Frame()
	if cfg.Label != "" {
		diagram.Legend(mg.BottomLeft)
	}
	buf := bytes.NewBuffer(nil)
	err := diagram.Render(buf)
	if err != nil {
		return "", errors.Wrapf(err, "failed to render plot for %q", cfg.Label)
	}
	return buf.String(), nil
}
