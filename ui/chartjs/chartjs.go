// Copyright 2025-2026 The fnplot Authors. SPDX-License-Identifier: Apache-2.0

// Package chartjs renders line charts with Chart.js (https://www.chartjs.org/).
//
// The chart is created once, as an HTML frame holding a canvas and the script that creates the
// Chart.js object. Updates are sent as JavaScript frames that replace the dataset of the existing
// object and call its `update()` method, so the chart keeps any state the library holds.
package chartjs

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"text/template"

	"github.com/google/uuid"
	"github.com/jorgemunozl/fnplot/pkg/chart"
	"github.com/jorgemunozl/fnplot/pkg/expr"
	"github.com/pkg/errors"
)

// SrcUrl is the default URL for the Chart.js library. It can be changed to
// reflect where the page will pull it from.
var SrcUrl = "https://cdn.jsdelivr.net/npm/chart.js@4.4.1/dist/chart.umd.min.js"

// DefaultBorderColor of the line.
var DefaultBorderColor = "blue"

// Renderer implements chart.Renderer with Chart.js.
type Renderer struct {
	// ChartJSUrl is where the library is loaded from. Defaults to SrcUrl.
	ChartJSUrl string

	// DivStyle is inlined in the enclosing `div` html tag.
	DivStyle string

	// BorderColor of the line. Defaults to DefaultBorderColor.
	BorderColor string
}

var _ chart.Renderer = (*Renderer)(nil)

// New creates a Chart.js renderer with the default settings.
func New() *Renderer {
	return &Renderer{
		ChartJSUrl:  SrcUrl,
		DivStyle:    "width: 80%;",
		BorderColor: DefaultBorderColor,
	}
}

// Name implements chart.Renderer.
func (r *Renderer) Name() string { return "chartjs" }

// LinePlot is the handle of one Chart.js line chart.
type LinePlot struct {
	Id string

	ChartVar        string
	DivId, CanvasId string

	// ChartJSUrl is set with Renderer.ChartJSUrl.
	ChartJSUrl string

	// DivStyle is inlined in the enclosing `div` html tag.
	DivStyle string

	BorderColor string

	Config chart.Config

	surface chart.Surface
}

var (
	_ chart.Handle  = (*LinePlot)(nil)
	_ chart.Labeler = (*LinePlot)(nil)
)

// Create implements chart.Renderer: it displays the HTML that creates the chart.
func (r *Renderer) Create(surface chart.Surface, cfg chart.Config) (chart.Handle, error) {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	p := &LinePlot{
		Id:          id,
		ChartVar:    "linePlot_" + id,
		CanvasId:    "line_plot_canvas_" + id,
		DivId:       "line_plot_div_" + id,
		ChartJSUrl:  r.ChartJSUrl,
		DivStyle:    r.DivStyle,
		BorderColor: r.BorderColor,
		Config:      cfg,
		surface:     surface,
	}
	if p.ChartJSUrl == "" {
		p.ChartJSUrl = SrcUrl
	}
	if p.BorderColor == "" {
		p.BorderColor = DefaultBorderColor
	}
	p.Config.Series = cfg.Series.Clone()
	html, err := p.HTML()
	if err != nil {
		return nil, err
	}
	err = surface.Display(chart.Frame{ChartID: p.Id, Kind: chart.KindHTML, Content: html})
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to display Chart.js line plot")
	}
	return p, nil
}

// SetLabel implements chart.Labeler.
func (p *LinePlot) SetLabel(label string) {
	p.Config.Label = label
}

// Update implements chart.Handle: it replaces the dataset of the existing chart and redraws it.
func (p *LinePlot) Update(series expr.SampleSeries) error {
	script, err := p.UpdateScript(series)
	if err != nil {
		return err
	}
	p.Config.Series = series.Clone()
	err = p.surface.Display(chart.Frame{ChartID: p.Id, Kind: chart.KindScript, Content: script})
	if err != nil {
		return errors.WithMessagef(err, "failed to update Chart.js line plot %s", p.ChartVar)
	}
	return nil
}

// UpdateScript returns the JavaScript that sets the chart data to series.
func (p *LinePlot) UpdateScript(series expr.SampleSeries) (string, error) {
	label, err := jsString(p.Config.Label)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("if (typeof %[1]s !== 'undefined' && %[1]s) {\n"+
		"\t%[1]s.data.datasets[0].label = %[2]s;\n"+
		"\t%[1]s.data.datasets[0].data = %[3]s;\n"+
		"\t%[1]s.update();\n"+
		"}\n", p.ChartVar, label, jsArray(series.Ys())), nil
}

// HTML returns the body of the plot in HTML, with its current data.
func (p *LinePlot) HTML() (string, error) {
	builder := &strings.Builder{}
	err := linePlotScriptTemplate.Execute(builder, p)
	if err != nil {
		return "", errors.Wrapf(err, "failed to run LinePlot template")
	}
	return builder.String(), nil
}

// jsNumber formats v as a JavaScript number literal, including NaN and ±Infinity.
func jsNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func jsArray(values []float64) string {
	parts := make([]string, len(values))
	for ii, v := range values {
		parts[ii] = jsNumber(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// jsString quotes s as a JavaScript string literal. HTML special characters are escaped, so it is
// safe inside a <script> tag.
func jsString(s string) (string, error) {
	blob, err := json.Marshal(s)
	if err != nil {
		return "", errors.Wrapf(err, "failed to quote %q", s)
	}
	return string(blob), nil
}

func mustJSString(s string) string {
	quoted, err := jsString(s)
	if err != nil {
		panic(err)
	}
	return quoted
}

func mustParse(t *template.Template, text string) *template.Template {
	var err error
	t, err = t.Parse(text)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse template: %v", err))
	}
	return t
}

var templateFuncs = template.FuncMap{
	"js":      mustJSString,
	"jsArray": jsArray,
}

var linePlotScriptTemplate = mustParse(template.New("linePlotScriptTemplate").Funcs(templateFuncs), `
<div id="{{.DivId}}" style="{{.DivStyle}}">
<canvas id="{{.CanvasId}}"></canvas>
<script type="text/javascript">
var {{.ChartVar}};

function Create{{.ChartVar}}(Chart) {
	let canvas = document.getElementById('{{.CanvasId}}');
	return new Chart(canvas, {
		type: 'line',
		data: {
{{with .Config}}
			labels: {{jsArray .Labels}},
			datasets: [{
				label: {{js .Label}},
				data: {{jsArray .Series.Ys}},
				borderColor: '{{$.BorderColor}}',
				fill: false,
				tension: 0,
			}],
		},
		options: {
			responsive: true,
			scales: {
				x: {
{{if .XTitle}}
					title: { display: true, text: {{js .XTitle}} },
{{end}}
				},
				y: {
{{if .YTitle}}
					title: { display: true, text: {{js .YTitle}} },
{{end}}
				},
			},
		},
{{end}}
	});
}

if (typeof require === 'function') {
	// When the page uses require.js, it conflicts with a direct import of chart.js.
	require(["{{.ChartJSUrl}}"], (Chart) => {
		{{.ChartVar}} = Create{{.ChartVar}}(Chart);
	});
} else if (typeof Chart === 'function') {
	{{.ChartVar}} = Create{{.ChartVar}}(Chart);
} else {
	let s = document.createElement("script");
	s.src = "{{.ChartJSUrl}}";
	s.type = "text/javascript";
	s.addEventListener("error", (ev) => {
		console.log("Error loading {{.ChartVar}}:", ev);
	});
	s.addEventListener("load", () => {
		{{.ChartVar}} = Create{{.ChartVar}}(Chart);
	});
	document.head.appendChild(s);
}
</script>
</div>
`)
