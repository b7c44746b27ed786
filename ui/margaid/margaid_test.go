// Copyright 2025-2026 The fnplot Authors. SPDX-License-Identifier: Apache-2.0

package margaid

import (
	"math"
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

func TestCreateAndUpdate(t *testing.T) {
	r := New()
	assert.Equal(t, "margaid", r.Name())
	surface := chart.NewRecorder()
	handle, err := r.Create(surface, config(t, "2*x + 1"))
	require.NoError(t, err)
	plot := handle.(*Plot)
	assert.Equal(t, DefaultWidth, plot.Config.Width)

	created, found := surface.Last()
	require.True(t, found)
	assert.Equal(t, chart.KindSVG, created.Kind)
	assert.Equal(t, plot.Id, created.ChartID)
	assert.Contains(t, created.Content, "<svg")

	plot.SetLabel("y = x^2")
	series, err := expr.Evaluate("x^2", expr.StandardDomain())
	require.NoError(t, err)
	require.NoError(t, handle.Update(series))
	require.Equal(t, 2, surface.Len())
	updated, _ := surface.Last()
	assert.Equal(t, plot.Id, updated.ChartID)
	assert.NotEqual(t, created.Content, updated.Content)
	assert.Len(t, surface.Current(), 1)
}

func TestNonFinite(t *testing.T) {
	series := expr.SampleSeries{{X: -1, Y: 2}, {X: 0, Y: math.Inf(1)}, {X: 1, Y: math.NaN()}, {X: 2, Y: -3}}
	s, minY, maxY := finiteSeries("y", series)
	assert.Equal(t, 2, s.Size())
	assert.Equal(t, -3.0, minY)
	assert.Equal(t, 2.0, maxY)

	// Nothing to plot.
	surface := chart.NewRecorder()
	_, err := New().Create(surface, config(t, "0/0"))
	require.NoError(t, err)
	created, _ := surface.Last()
	assert.Contains(t, created.Content, "no finite values")

	// Constant functions and functions with poles are drawn.
	_, err = New().Create(surface, config(t, "3"))
	require.NoError(t, err)
	_, err = New().Create(surface, config(t, "1/x"))
	require.NoError(t, err)
	assert.Equal(t, 3, surface.Len())
}
