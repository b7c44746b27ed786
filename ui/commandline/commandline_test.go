// Copyright 2025-2026 The fnplot Authors. SPDX-License-Identifier: Apache-2.0

package commandline

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSettings(t *testing.T) {
	s := DefaultSettings()
	keysSet, err := ParseSettings(s, "chart=margaid;width=1_024;height=300;report_errors=true;default_expression=x == 0 ? 1 : 0;")
	require.NoError(t, err)
	require.Equal(t, []string{"chart", "width", "height", "report_errors", "default_expression"}, keysSet)
	assert.Equal(t, "margaid", s.Chart)
	assert.Equal(t, "mathml", s.Typeset)
	assert.Equal(t, 1024, s.Width)
	assert.Equal(t, 300, s.Height)
	assert.True(t, s.ReportErrors)
	assert.Equal(t, "x == 0 ? 1 : 0", s.DefaultExpression)

	cfg := s.CoordinatorConfig()
	assert.Equal(t, 1024, cfg.Width)
	assert.True(t, cfg.ReportEvalErrors)
	assert.Equal(t, "x == 0 ? 1 : 0", cfg.DefaultExpression)

	// Unknown setting.
	_, err = ParseSettings(s, "q=3")
	require.Error(t, err)

	// Wrong type of value.
	_, err = ParseSettings(s, "width=3.14")
	require.Error(t, err)
	_, err = ParseSettings(s, "display_mode=yes")
	require.Error(t, err)

	// Missing "=".
	_, err = ParseSettings(s, "chart")
	require.Error(t, err)
}

func TestParseSettingsFile(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "settings.txt")
	contents := "# Renderers.\nchart=plotly;typeset=markdown\n\nthrow_on_error=true\ndisplay_mode=true\n"
	require.NoError(t, os.WriteFile(filePath, []byte(contents), 0o644))

	s := DefaultSettings()
	keysSet, err := ParseSettings(s, "width=10;file:"+filePath)
	require.NoError(t, err)
	assert.Equal(t, []string{"width", "chart", "typeset", "throw_on_error", "display_mode"}, keysSet)
	assert.Equal(t, "plotly", s.Chart)
	assert.Equal(t, "markdown", s.Typeset)
	opts := s.TypesetOptions()
	assert.True(t, opts.ThrowOnError)
	assert.True(t, opts.DisplayMode)

	_, err = ParseSettings(s, "file:"+filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}

func TestSprintSettings(t *testing.T) {
	s := DefaultSettings()
	printed := SprintSettings(s)
	assert.Contains(t, printed, `"chart": (string) chartjs`)
	assert.Contains(t, printed, `"width": (int) 0`)
	assert.Contains(t, printed, `"report_errors": (bool) false`)

	keysSet, err := ParseSettings(s, "height=7;height=8")
	require.NoError(t, err)
	assert.Equal(t, "\t\"height\": (int) 8", SprintModifiedSettings(s, keysSet))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1.23ms", FormatDuration(1234567*time.Nanosecond))
	assert.Equal(t, "2s", FormatDuration(2*time.Second))
	assert.Equal(t, "1m30s", FormatDuration(90*time.Second))
}

func TestRenderers(t *testing.T) {
	s := DefaultSettings()
	for _, name := range ChartNames {
		s.Chart = name
		r, err := NewChartRenderer(s, os.Stdout)
		require.NoError(t, err)
		assert.Equal(t, name, r.Name())
	}
	s.Chart = "gnuplot"
	_, err := NewChartRenderer(s, os.Stdout)
	require.Error(t, err)

	for _, name := range TypesetNames {
		s.Typeset = name
		r, err := NewTypesetter(s)
		require.NoError(t, err)
		assert.Equal(t, name, r.Name())
	}
	s.Typeset = "katex"
	_, err = NewTypesetter(s)
	require.Error(t, err)
}
