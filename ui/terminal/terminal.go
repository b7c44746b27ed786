// Copyright 2025-2026 The fnplot Authors. SPDX-License-Identifier: Apache-2.0

// Package terminal implements fnplot for the terminal: a chart renderer that draws the samples as a
// table with bars, a Surface that prints text frames, and a REPL that reads one expression per line.
package terminal

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/jorgemunozl/fnplot/pkg/chart"
	"github.com/jorgemunozl/fnplot/pkg/expr"
)

// DefaultBarWidth is the width, in characters, of the bars column if chart.Config.Width is not set.
const DefaultBarWidth = 40

// Renderer implements chart.Renderer with a lipgloss table: one row per sample, with a bar
// proportional to the y value. Rows with non-finite values are highlighted.
type Renderer struct {
	styles styles
}

var _ chart.Renderer = (*Renderer)(nil)

// New creates a terminal chart renderer whose styles adapt to the color profile of w.
func New(w io.Writer) *Renderer {
	return NewWithLipgloss(lipgloss.NewRenderer(w))
}

// NewWithLipgloss creates a terminal chart renderer using the given lipgloss renderer for the styles.
func NewWithLipgloss(lg *lipgloss.Renderer) *Renderer {
	return &Renderer{styles: newStyles(lg)}
}

// Name implements chart.Renderer.
func (r *Renderer) Name() string { return "terminal" }

// Create implements chart.Renderer: it displays the table as a text frame.
func (r *Renderer) Create(surface chart.Surface, cfg chart.Config) (chart.Handle, error) {
	t := &Table{
		Id:      "table_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		Config:  cfg,
		styles:  r.styles,
		surface: surface,
	}
	t.Config.Series = cfg.Series.Clone()
	if err := t.display(); err != nil {
		return nil, errors.WithMessagef(err, "failed to display terminal table")
	}
	return t, nil
}

// Table is the handle of a chart drawn as text.
type Table struct {
	Id     string
	Config chart.Config

	styles  styles
	surface chart.Surface
}

var (
	_ chart.Handle  = (*Table)(nil)
	_ chart.Labeler = (*Table)(nil)
)

// SetLabel implements chart.Labeler.
func (t *Table) SetLabel(label string) { t.Config.Label = label }

// Update implements chart.Handle: it displays the table again with the new series.
func (t *Table) Update(series expr.SampleSeries) error {
	t.Config.Series = series.Clone()
	if err := t.display(); err != nil {
		return errors.WithMessagef(err, "failed to update terminal table %s", t.Id)
	}
	return nil
}

func (t *Table) display() error {
	return t.surface.Display(chart.Frame{ChartID: t.Id, Kind: chart.KindText, Content: t.String()})
}

// String renders the title and the table with the current series.
func (t *Table) String() string {
	cfg := t.Config.WithSize(DefaultBarWidth, 0)
	redRows := make(map[int]bool)
	table := newTable(t.styles, redRows, lipgloss.Right, lipgloss.Right, lipgloss.Left)
	table.Headers(cfg.XTitle, cfg.YTitle, "")

	scale := maxAbs(cfg.Series)
	for ii, sample := range cfg.Series {
		if math.IsNaN(sample.Y) || math.IsInf(sample.Y, 0) {
			redRows[ii] = true
		}
		table.Row(formatValue(sample.X), formatValue(sample.Y), Bar(sample.Y, scale, cfg.Width))
	}
	return t.styles.title.Render(cfg.Label) + "\n" + table.Render()
}

type styles struct {
	title, header, odd, even, red, border lipgloss.Style
}

func newStyles(lg *lipgloss.Renderer) styles {
	return styles{
		title:  lg.NewStyle().Bold(true).PaddingLeft(2),
		header: lg.NewStyle().Reverse(true).Padding(0, 2, 0, 2).Align(lipgloss.Center),
		odd:    lg.NewStyle().Faint(false).PaddingLeft(1).PaddingRight(1),
		even:   lg.NewStyle().Faint(true).PaddingLeft(1).PaddingRight(1),
		red: lg.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "9", Dark: "9"}).
			Bold(true).
			PaddingLeft(1).PaddingRight(1),
		border: lg.NewStyle().Foreground(lipgloss.Color("99")),
	}
}

// newTable with alternating row styles, where rows listed in redRows are highlighted.
func newTable(s styles, redRows map[int]bool, alignments ...lipgloss.Position) *lgtable.Table {
	return lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.border).
		StyleFunc(func(row, col int) (style lipgloss.Style) {
			if row < 0 {
				return s.header
			}
			switch {
			case redRows[row]:
				style = s.red
			case row%2 == 0:
				style = s.odd
			default:
				style = s.even
			}
			alignment := lipgloss.Left
			if col < len(alignments) {
				alignment = alignments[col]
			}
			return style.Align(alignment)
		})
}

// formatValue formats numbers with at most 6 significant digits, and non-finite values as "NaN",
// "+Inf" or "-Inf".
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// maxAbs returns the largest absolute value of the finite y values of the series, or 0.
func maxAbs(series expr.SampleSeries) float64 {
	var result float64
	for _, sample := range series {
		if math.IsNaN(sample.Y) || math.IsInf(sample.Y, 0) {
			continue
		}
		result = math.Max(result, math.Abs(sample.Y))
	}
	return result
}

// Bar draws v as a bar of up to width characters, centered on an axis: negative values grow to the
// left, positive values to the right. scale is the value of a full half bar.
// Non-finite values draw only the axis.
func Bar(v, scale float64, width int) string {
	half := max(width/2, 1)
	var n int
	if scale > 0 && !math.IsNaN(v) && !math.IsInf(v, 0) {
		n = int(math.Round(math.Abs(v) / scale * float64(half)))
	}
	if v < 0 {
		return strings.Repeat(" ", half-n) + strings.Repeat("█", n) + "│"
	}
	return strings.Repeat(" ", half) + "│" + strings.Repeat("█", n)
}
