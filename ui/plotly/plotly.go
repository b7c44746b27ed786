// Copyright 2025-2026 The fnplot Authors. SPDX-License-Identifier: Apache-2.0

// Package plotly renders interactive line charts with Plotly (https://plotly.com/javascript/), using the
// figure definitions of go-plotly.
//
// The advantage of `plotly` over `margaid` plots is that it uses JavaScript to make the plot interactive (it
// displays information on mouse hover, and allows zooming).
// The figure is created once with `Plotly.newPlot`, and afterwards updated with `Plotly.react`, which
// keeps the zoom state of the chart.
package plotly

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	grob "github.com/MetalBlueberry/go-plotly/generated/v2.34.0/graph_objects"
	ptypes "github.com/MetalBlueberry/go-plotly/pkg/types"
	"github.com/google/uuid"
	"github.com/jorgemunozl/fnplot/pkg/chart"
	"github.com/jorgemunozl/fnplot/pkg/expr"
	"github.com/pkg/errors"
)

// SrcUrl of the Plotly library, matching the version of the go-plotly figure definitions.
var SrcUrl = "https://cdn.plot.ly/plotly-2.34.0.min.js"

// Renderer implements chart.Renderer with Plotly.
type Renderer struct {
	// PlotlyUrl is where the library is loaded from. Defaults to SrcUrl.
	PlotlyUrl string
}

var _ chart.Renderer = (*Renderer)(nil)

// New creates a Plotly renderer.
func New() *Renderer { return &Renderer{PlotlyUrl: SrcUrl} }

// Name implements chart.Renderer.
func (r *Renderer) Name() string { return "plotly" }

// Plot is the handle of one Plotly figure.
type Plot struct {
	Id     string
	DivId  string
	Config chart.Config
	Fig    *grob.Fig

	plotlyUrl string
	surface   chart.Surface
}

var (
	_ chart.Handle  = (*Plot)(nil)
	_ chart.Labeler = (*Plot)(nil)
)

// Create implements chart.Renderer.
func (r *Renderer) Create(surface chart.Surface, cfg chart.Config) (chart.Handle, error) {
	id := uuid.NewString()
	p := &Plot{
		Id:        id,
		DivId:     "plotly_" + strings.ReplaceAll(id, "-", ""),
		Config:    cfg,
		plotlyUrl: r.PlotlyUrl,
		surface:   surface,
	}
	if p.plotlyUrl == "" {
		p.plotlyUrl = SrcUrl
	}
	p.Config.Series = cfg.Series.Clone()
	p.Fig = &grob.Fig{
		Layout: &grob.Layout{
			Xaxis: &grob.LayoutXaxis{
				Showgrid: ptypes.B(true),
				Title:    &grob.LayoutXaxisTitle{Text: ptypes.S(cfg.XTitle)},
			},
			Yaxis: &grob.LayoutYaxis{
				Showgrid: ptypes.B(true),
				Title:    &grob.LayoutYaxisTitle{Text: ptypes.S(cfg.YTitle)},
			},
			Showlegend: ptypes.B(true),
		},
	}
	p.Fig.Data = append(p.Fig.Data, p.trace())

	figJSON, err := p.FigJSON()
	if err != nil {
		return nil, err
	}
	html := fmt.Sprintf(createTemplate, p.DivId, p.plotlyUrl, p.DivId, figJSON)
	err = surface.Display(chart.Frame{ChartID: p.Id, Kind: chart.KindHTML, Content: html})
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to display Plotly figure")
	}
	return p, nil
}

// createTemplate takes the div id, the Plotly url, the div id again and the figure JSON.
const createTemplate = `<div id=%q></div>
<script type="text/javascript">
(function() {
	let url = %q;
	let divId = %q;
	let fig = %s;
	let draw = () => Plotly.newPlot(divId, fig);
	if (typeof Plotly === 'object') {
		draw();
		return;
	}
	let s = document.createElement("script");
	s.src = url;
	s.type = "text/javascript";
	s.addEventListener("load", draw);
	document.head.appendChild(s);
})();
</script>
`

// trace returns the scatter trace of the current series. Non-finite values become nulls, which
// Plotly draws as gaps.
func (p *Plot) trace() *grob.Scatter {
	series := p.Config.Series
	xs := make([]any, len(series))
	ys := make([]any, len(series))
	for ii, sample := range series {
		xs[ii] = sample.X
		if !math.IsNaN(sample.Y) && !math.IsInf(sample.Y, 0) {
			ys[ii] = sample.Y
		}
	}
	return &grob.Scatter{
		Name: ptypes.S(p.Config.Label),
		Line: &grob.ScatterLine{
			Shape: grob.ScatterLineShapeLinear,
		},
		Mode: "lines+markers",
		X:    ptypes.DataArray(xs),
		Y:    ptypes.DataArray(ys),
	}
}

// FigJSON returns the figure encoded as JSON.
func (p *Plot) FigJSON() (string, error) {
	blob, err := json.Marshal(p.Fig)
	if err != nil {
		return "", errors.Wrapf(err, "failed to encode Plotly figure for %q", p.Config.Label)
	}
	return string(blob), nil
}

// SetLabel implements chart.Labeler.
func (p *Plot) SetLabel(label string) {
	p.Config.Label = label
}

// Update implements chart.Handle: it replaces the trace and calls `Plotly.react` on the existing figure.
func (p *Plot) Update(series expr.SampleSeries) error {
	p.Config.Series = series.Clone()
	p.Fig.Data = append(p.Fig.Data[:0], p.trace())
	figJSON, err := p.FigJSON()
	if err != nil {
		return err
	}
	script := fmt.Sprintf("if (typeof Plotly === 'object') { Plotly.react(%q, %s); }\n", p.DivId, figJSON)
	err = p.surface.Display(chart.Frame{ChartID: p.Id, Kind: chart.KindScript, Content: script})
	if err != nil {
		return errors.WithMessagef(err, "failed to update Plotly figure %q", p.DivId)
	}
	return nil
}
