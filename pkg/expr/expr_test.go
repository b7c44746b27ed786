// Copyright 2025-2026 The fnplot Authors. SPDX-License-Identifier: Apache-2.0

package expr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardDomain(t *testing.T) {
	domain := StandardDomain()
	require.Len(t, domain, 21)
	assert.Equal(t, -10.0, domain[0])
	assert.Equal(t, 0.0, domain[10])
	assert.Equal(t, 10.0, domain[20])

	// Changing a returned domain doesn't affect the next one.
	domain[0] = 1000
	assert.Equal(t, -10.0, StandardDomain()[0])

	assert.Empty(t, IntegerDomain(3, 2))
}

func TestEvaluate(t *testing.T) {
	testCases := []struct {
		text string
		fn   func(x float64) float64
	}{
		{"2*x + 1", func(x float64) float64 { return 2*x + 1 }},
		{"x^2", func(x float64) float64 { return x * x }},
		{"x**3 - x", func(x float64) float64 { return x*x*x - x }},
		{"Math.sin(x) * Math.PI", func(x float64) float64 { return math.Sin(x) * math.Pi }},
		{"sin(pi*x/10) + cos(x)", func(x float64) float64 { return math.Sin(math.Pi*x/10) + math.Cos(x) }},
		{"-x^2", func(x float64) float64 { return -(x * x) }},
		{"x % 3", func(x float64) float64 { return math.Mod(x, 3) }},
		{"x > 0 ? x : -x", math.Abs},
		{"max(x, 0, -3)", func(x float64) float64 { return math.Max(x, 0) }},
		{"hypot(x, 3)", func(x float64) float64 { return math.Hypot(x, 3) }},
		{"2^3^2 + 0*x", func(float64) float64 { return 512 }},
		{"0x10 + 1e1 + x", func(x float64) float64 { return 26 + x }},
		{"08 + 010 + x", func(x float64) float64 { return 16 + x }},
		{"0x10000000000000000 + 99999999999999999999 + x", func(x float64) float64 { return 0x1p64 + 1e20 + x }},
		{"round(x / 4)", func(x float64) float64 { return math.Floor(x/4 + 0.5) }},
		{"sign(x) * sqrt(abs(x))", func(x float64) float64 {
			if x == 0 {
				return 0
			}
			return math.Copysign(math.Sqrt(math.Abs(x)), x)
		}},
	}
	domain := StandardDomain()
	for _, tc := range testCases {
		t.Run(tc.text, func(t *testing.T) {
			series, err := Evaluate(tc.text, domain)
			require.NoError(t, err)
			require.Len(t, series, len(domain))
			for ii, sample := range series {
				assert.Equal(t, domain[ii], sample.X)
				assert.InDelta(t, tc.fn(domain[ii]), sample.Y, 1e-9, "x=%g", domain[ii])
			}
		})
	}
}

func TestEvaluateDefaultExpression(t *testing.T) {
	series, err := Evaluate("2*x + 1", StandardDomain())
	require.NoError(t, err)
	assert.Equal(t, Sample{X: 0, Y: 1}, series[10])
	assert.Equal(t, Sample{X: 10, Y: 21}, series[20])
}

func TestEvaluateIdempotent(t *testing.T) {
	first, err := Evaluate("x^2 / (x - 3)", StandardDomain())
	require.NoError(t, err)
	second, err := Evaluate("x^2 / (x - 3)", StandardDomain())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNonFinite(t *testing.T) {
	series, err := Evaluate("1/0", StandardDomain())
	require.NoError(t, err)
	require.Len(t, series, 21)
	for _, sample := range series {
		assert.True(t, math.IsInf(sample.Y, 1), "x=%g: want +Inf, got %g", sample.X, sample.Y)
	}

	series, err = Evaluate("x/x", StandardDomain())
	require.NoError(t, err)
	assert.True(t, math.IsNaN(series[10].Y))
	assert.Equal(t, 1.0, series[0].Y)

	series, err = Evaluate("log(x)", StandardDomain())
	require.NoError(t, err)
	assert.True(t, math.IsNaN(series[0].Y))
	assert.True(t, math.IsInf(series[10].Y, -1))

	// Literals too large become +Inf.
	series, err = Evaluate("1e999", StandardDomain())
	require.NoError(t, err)
	assert.True(t, math.IsInf(series[0].Y, 1))
}

func TestEmptyExpression(t *testing.T) {
	series, err := Evaluate("   ", StandardDomain())
	require.NoError(t, err)
	require.Len(t, series, 21)
	for _, sample := range series {
		assert.True(t, math.IsNaN(sample.Y))
	}
}

func TestCompileErrors(t *testing.T) {
	for _, text := range []string{
		"x +", "2x", "(x", "x)", "x ? 1", "sin(x", "x = 3", "Math", "Math.", "(x)(2)", "x & 1", "`x`", "'a'",
	} {
		t.Run(text, func(t *testing.T) {
			_, err := Evaluate(text, StandardDomain())
			require.Error(t, err)
			require.True(t, IsEvaluationError(err))
			var evalErr *EvaluationError
			require.ErrorAs(t, err, &evalErr)
			assert.Equal(t, StageCompile, evalErr.Stage)
			assert.Equal(t, text, evalErr.Expression)
			assert.GreaterOrEqual(t, evalErr.Pos, 0)
		})
	}
}

func TestCallErrors(t *testing.T) {
	testCases := []struct {
		text, msg string
	}{
		{"y + 1", "y is not defined"},
		{"foo(x)", "foo is not defined"},
		{"sin + 1", "sin is a function"},
		{"x(2)", "x is not a function"},
		{"pi(2)", "pi is not a function"},
		{"sin(x, 2)", "sin expects 1 argument(s), got 2"},
		{"alert(1)", "alert is not defined"},
	}
	for _, tc := range testCases {
		t.Run(tc.text, func(t *testing.T) {
			fn, err := Compile(tc.text)
			require.NoError(t, err, "unknown names are only reported when called")
			_, err = fn.Call(1)
			require.Error(t, err)
			var evalErr *EvaluationError
			require.ErrorAs(t, err, &evalErr)
			assert.Equal(t, StageCall, evalErr.Stage)
			assert.Equal(t, 1.0, evalErr.X)
			assert.ErrorContains(t, err, tc.msg)

			series, err := fn.Sample(StandardDomain())
			require.Error(t, err)
			assert.Nil(t, series)
		})
	}
}

func TestTree(t *testing.T) {
	testCases := map[string]string{
		"2*x + 1":           "((2 * x) + 1)",
		"-2^2":              "(-(2 ^ 2))",
		"2^-x":              "(2 ^ (-x))",
		"a ? b : c ? d : e": "(a ? b : (c ? d : e))",
		"1 - 2 - 3":         "((1 - 2) - 3)",
		"Math.max(1, x)":    "max(1, x)",
		"x < 1 == 0":        "((x < 1) == 0)",
	}
	for text, want := range testCases {
		assert.Equal(t, want, MustCompile(text).Tree(), "text=%q", text)
	}
}

func TestAllowList(t *testing.T) {
	functions := Functions()
	assert.Contains(t, functions, "sin")
	assert.Contains(t, functions, "exp")
	assert.IsIncreasing(t, functions)
	constants := Constants()
	assert.Contains(t, constants, "pi")
	assert.Contains(t, constants, "PI")
}

func TestSampleSeries(t *testing.T) {
	series := SampleSeries{{X: 1, Y: 2}, {X: 3, Y: 4}}
	assert.Equal(t, 2, series.Len())
	x, y := series.XY(1)
	assert.Equal(t, 3.0, x)
	assert.Equal(t, 4.0, y)
	assert.Equal(t, []float64{1, 3}, series.Xs())
	assert.Equal(t, []float64{2, 4}, series.Ys())
	clone := series.Clone()
	clone[0].Y = 100
	assert.Equal(t, 2.0, series[0].Y)
}
