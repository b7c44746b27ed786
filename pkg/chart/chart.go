// Copyright 2025-2026 The fnplot Authors. SPDX-License-Identifier: Apache-2.0

// Package chart defines the contract between the presentation coordinator and the chart renderers.
//
// A Renderer creates a chart once, bound to a Surface, and returns a Handle. From then on the chart is
// only mutated through Handle.Update, which redraws it in place.
//
// Renderers produce Frames (HTML, SVG, PNG, JavaScript or plain text) and send them to the Surface, which
// decides how to show them: a notebook cell, a web page, a terminal, or a Recorder in tests.
package chart

import (
	"fmt"
	"html"
	"slices"

	"github.com/pkg/errors"

	"github.com/jorgemunozl/fnplot/pkg/expr"
)

// Config used to create a chart.
type Config struct {
	// Label of the plotted series, usually "y = <expression>".
	Label string

	// XTitle and YTitle are the axis titles.
	XTitle, YTitle string

	// Labels are the values shown along the x-axis: the elements of the domain.
	Labels []float64

	// Series is the initial data of the chart.
	Series expr.SampleSeries

	// Width and Height of the chart, in pixels for graphical renderers or in characters for text renderers.
	// If 0, renderers use their own defaults.
	Width, Height int
}

// WithSize returns a copy of the config with Width and Height set to the given defaults, if they are not set.
func (c Config) WithSize(width, height int) Config {
	if c.Width <= 0 {
		c.Width = width
	}
	if c.Height <= 0 {
		c.Height = height
	}
	return c
}

// Renderer creates charts.
type Renderer interface {
	// Name of the renderer, as used in the command line settings.
	Name() string

	// Create draws a new chart on the surface and returns the handle that updates it.
	Create(surface Surface, cfg Config) (Handle, error)
}

// Handle to a chart created by a Renderer.
type Handle interface {
	// Update replaces the data of the chart with series and redraws it in place.
	// The series has the same domain the chart was created with.
	Update(series expr.SampleSeries) error
}

// Labeler is optionally implemented by a Handle whose series label can be changed.
// The new label is only drawn on the next Update.
type Labeler interface {
	SetLabel(label string)
}

// Kind of the content of a Frame.
type Kind int

const (
	// KindHTML is an HTML fragment.
	KindHTML Kind = iota

	// KindSVG is a standalone SVG image.
	KindSVG

	// KindPNG is a PNG image, base64 encoded.
	KindPNG

	// KindScript is JavaScript to be executed against a previously displayed HTML frame of the same chart.
	KindScript

	// KindText is plain (possibly ANSI styled) text, for terminals.
	KindText
)

var kindNames = []string{"html", "svg", "png", "script", "text"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText implements encoding.TextMarshaler, so frames are readable in JSON.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	idx := slices.Index(kindNames, string(text))
	if idx == -1 {
		return errors.Errorf("unknown chart frame kind %q", text)
	}
	*k = Kind(idx)
	return nil
}

// Frame is one unit of content sent to a Surface.
type Frame struct {
	// ChartID identifies the chart that produced the frame. Frames with the same ChartID
	// replace (or, for KindScript, update) the previous content of that chart.
	ChartID string `json:"chart_id"`

	Kind    Kind   `json:"kind"`
	Content string `json:"content"`
}

// HTML returns the content of the frame as an HTML fragment: images are inlined, text is escaped and
// scripts are wrapped in a `<script>` tag.
func (f Frame) HTML() string {
	switch f.Kind {
	case KindPNG:
		return fmt.Sprintf("<img src=\"data:image/png;base64,%s\"/>", f.Content)
	case KindText:
		return "<pre>" + html.EscapeString(f.Content) + "</pre>"
	case KindScript:
		return "<script type=\"text/javascript\">\n" + f.Content + "\n</script>"
	}
	return f.Content
}

// Surface where charts are displayed.
type Surface interface {
	Display(frame Frame) error
}

// SurfaceFunc adapts a function to a Surface.
type SurfaceFunc func(frame Frame) error

// Display implements Surface.
func (fn SurfaceFunc) Display(frame Frame) error { return fn(frame) }
