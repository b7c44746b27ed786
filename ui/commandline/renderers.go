// Copyright 2025-2026 The fnplot Authors. SPDX-License-Identifier: Apache-2.0

package commandline

import (
	"io"

	"github.com/pkg/errors"

	"github.com/jorgemunozl/fnplot/pkg/chart"
	"github.com/jorgemunozl/fnplot/pkg/typeset"
	"github.com/jorgemunozl/fnplot/ui/chartjs"
	"github.com/jorgemunozl/fnplot/ui/gonumplot"
	"github.com/jorgemunozl/fnplot/ui/margaid"
	"github.com/jorgemunozl/fnplot/ui/plotly"
	"github.com/jorgemunozl/fnplot/ui/terminal"
)

// ChartNames lists the chart renderers that can be selected with the "chart" setting.
var ChartNames = []string{"chartjs", "margaid", "gonumplot", "plotly", "terminal"}

// TypesetNames lists the typesetters that can be selected with the "typeset" setting.
var TypesetNames = []string{"mathml", "markdown"}

// NewChartRenderer returns the chart renderer selected by s.Chart.
// The "terminal" renderer adapts its styles to w.
func NewChartRenderer(s *Settings, w io.Writer) (chart.Renderer, error) {
	switch s.Chart {
	case "chartjs":
		return chartjs.New(), nil
	case "margaid":
		return margaid.New(), nil
	case "gonumplot":
		return gonumplot.New(), nil
	case "plotly":
		return plotly.New(), nil
	case "terminal":
		return terminal.New(w), nil
	}
	return nil, errors.Errorf("unknown chart renderer %q, valid values are %q", s.Chart, ChartNames)
}

// NewTypesetter returns the typesetting renderer selected by s.Typeset, configured with s.TypesetOptions.
func NewTypesetter(s *Settings) (typeset.Renderer, error) {
	switch s.Typeset {
	case "mathml":
		return typeset.NewMathML(s.TypesetOptions()), nil
	case "markdown":
		return typeset.NewMarkdown(s.TypesetOptions()), nil
	}
	return nil, errors.Errorf("unknown typesetter %q, valid values are %q", s.Typeset, TypesetNames)
}
