// Copyright 2025-2026 The fnplot Authors. SPDX-License-Identifier: Apache-2.0

package plotly

import (
	"encoding/json"
	"testing"

	"github.com/jorgemunozl/fnplot/pkg/chart"
	"github.com/jorgemunozl/fnplot/pkg/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func config(t *testing.T, text string) chart.Config {
	series, err := expr.Evaluate(text, expr.StandardDomain())
	require.NoError(t, err)
	return chart.Config{Label: "y = " + text, XTitle: "x", YTitle: "y", Labels: expr.StandardDomain(), Series: series}
}

// decodedFig decodes the figure JSON into generic maps.
func decodedFig(t *testing.T, p *Plot) map[string]any {
	figJSON, err := p.FigJSON()
	require.NoError(t, err)
	var fig map[string]any
	require.NoError(t, json.Unmarshal([]byte(figJSON), &fig))
	return fig
}

func TestCreateAndUpdate(t *testing.T) {
	r := New()
	assert.Equal(t, "plotly", r.Name())
	surface := chart.NewRecorder()
	handle, err := r.Create(surface, config(t, "2*x + 1"))
	require.NoError(t, err)
	plot := handle.(*Plot)

	created, _ := surface.Last()
	assert.Equal(t, chart.KindHTML, created.Kind)
	assert.Contains(t, created.Content, "Plotly.newPlot")
	assert.Contains(t, created.Content, plot.DivId)

	fig := decodedFig(t, plot)
	data := fig["data"].([]any)
	require.Len(t, data, 1)
	trace := data[0].(map[string]any)
	assert.Equal(t, "y = 2*x + 1", trace["name"])
	assert.Len(t, trace["y"], 21)
	assert.Equal(t, -19.0, trace["y"].([]any)[0])

	plot.SetLabel("y = 1/x")
	series, err := expr.Evaluate("1/x", expr.StandardDomain())
	require.NoError(t, err)
	require.NoError(t, handle.Update(series))
	updated, _ := surface.Last()
	assert.Equal(t, chart.KindScript, updated.Kind)
	assert.Contains(t, updated.Content, "Plotly.react")

	// +Inf at x=0 becomes null.
	trace = decodedFig(t, plot)["data"].([]any)[0].(map[string]any)
	assert.Equal(t, "y = 1/x", trace["name"])
	assert.Nil(t, trace["y"].([]any)[10])
	assert.Equal(t, 2, surface.Len())
}
