// Copyright 2025-2026 The fnplot Authors. SPDX-License-Identifier: Apache-2.0

package gonumplot

import (
	"bytes"
	"encoding/base64"
	"image/png"
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

func decodeFrame(t *testing.T, frame chart.Frame) (width, height int) {
	require.Equal(t, chart.KindPNG, frame.Kind)
	blob, err := base64.StdEncoding.DecodeString(frame.Content)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(blob))
	require.NoError(t, err)
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestCreateAndUpdate(t *testing.T) {
	r := New()
	assert.Equal(t, "gonumplot", r.Name())
	surface := chart.NewRecorder()
	cfg := config(t, "2*x + 1")
	cfg.Width, cfg.Height = 320, 200
	handle, err := r.Create(surface, cfg)
	require.NoError(t, err)
	plot := handle.(*Plot)

	created, _ := surface.Last()
	assert.Equal(t, plot.Id, created.ChartID)
	width, height := decodeFrame(t, created)
	assert.Equal(t, 320, width)
	assert.Equal(t, 200, height)

	// Same plot, updated in place.
	internal := plot.plot
	plot.SetLabel("y = x^2")
	series, err := expr.Evaluate("x^2", expr.StandardDomain())
	require.NoError(t, err)
	require.NoError(t, handle.Update(series))
	assert.Same(t, internal, plot.plot)
	assert.Equal(t, 100.0, plot.plot.Y.Max)
	assert.Equal(t, 0.0, plot.plot.Y.Min)
	updated, _ := surface.Last()
	assert.Equal(t, plot.Id, updated.ChartID)
	decodeFrame(t, updated)
}

func TestSegments(t *testing.T) {
	line := NewSegmentedLine(expr.SampleSeries{
		{X: -2, Y: 1}, {X: -1, Y: 2}, {X: 0, Y: math.Inf(1)}, {X: 1, Y: 3}, {X: 2, Y: math.NaN()}, {X: 3, Y: 4}, {X: 4, Y: 5},
	})
	segments := line.Segments()
	require.Len(t, segments, 3)
	assert.Len(t, segments[0], 2)
	assert.Len(t, segments[1], 1)
	assert.Len(t, segments[2], 2)

	xmin, xmax, ymin, ymax := line.DataRange()
	assert.Equal(t, []float64{-2, 4, 1, 5}, []float64{xmin, xmax, ymin, ymax})

	line.Series = expr.SampleSeries{{X: 0, Y: math.NaN()}}
	xmin, xmax, ymin, ymax = line.DataRange()
	assert.Equal(t, []float64{expr.DomainMin, expr.DomainMax, -1, 1}, []float64{xmin, xmax, ymin, ymax})
}

func TestNonFinite(t *testing.T) {
	surface := chart.NewRecorder()
	for _, text := range []string{"1/x", "0/0", "5", "log(x)"} {
		_, err := New().Create(surface, config(t, text))
		require.NoError(t, err, "text=%q", text)
	}
	assert.Equal(t, 4, surface.Len())
}

func TestLargeValues(t *testing.T) {
	testCases := []struct {
		text    string
		wantErr bool
	}{
		{"1e20", false},
		{"-1e308", false},
		{"1.7e308", false},
		{"1e308*x", true},
	}
	for _, tc := range testCases {
		t.Run(tc.text, func(t *testing.T) {
			surface := chart.NewRecorder()
			_, err := New().Create(surface, config(t, tc.text))
			if tc.wantErr {
				require.Error(t, err)
				assert.Equal(t, 0, surface.Len())
			} else {
				require.NoError(t, err)
				require.Equal(t, 1, surface.Len())
			}

			handle, err := New().Create(surface, config(t, "x"))
			require.NoError(t, err)
			plot := handle.(*Plot)
			n := surface.Len()
			series, err := expr.Evaluate(tc.text, expr.StandardDomain())
			require.NoError(t, err)
			err = handle.Update(series)
			if tc.wantErr {
				require.Error(t, err)
				assert.Equal(t, n, surface.Len())
				assert.Equal(t, 10.0, plot.line.Series[20].Y, "plot keeps its previous data")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, n+1, surface.Len())
			assert.Less(t, plot.plot.Y.Min, plot.plot.Y.Max)
			assert.False(t, math.IsInf(plot.plot.Y.Max-plot.plot.Y.Min, 0))
		})
	}
}

func TestConstantRange(t *testing.T) {
	line := NewSegmentedLine(expr.SampleSeries{{X: 0, Y: 1e20}, {X: 1, Y: 1e20}})
	_, _, ymin, ymax := line.DataRange()
	assert.InDelta(t, 0.9e20, ymin, 1e6)
	assert.InDelta(t, 1.1e20, ymax, 1e6)

	line.Series = expr.SampleSeries{{X: 0, Y: 0}}
	_, _, ymin, ymax = line.DataRange()
	assert.Equal(t, []float64{-1, 1}, []float64{ymin, ymax})

	line.Series = expr.SampleSeries{{X: 0, Y: math.MaxFloat64}}
	_, _, ymin, ymax = line.DataRange()
	assert.Equal(t, math.MaxFloat64, ymax)
	assert.Less(t, ymin, ymax)
}
