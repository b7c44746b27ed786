// Copyright 2025-2026 The fnplot Authors. SPDX-License-Identifier: Apache-2.0

// Package coordinator holds the current expression and drives the two presentation paths of fnplot:
// the evaluated samples go to a chart, and the raw text goes to a typesetter.
//
// The chart is created on the first successful evaluation and only updated in place afterwards.
// A failed evaluation never touches the chart: the previous rendering is kept.
package coordinator

import (
	"sync"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/jorgemunozl/fnplot/pkg/chart"
	"github.com/jorgemunozl/fnplot/pkg/expr"
	"github.com/jorgemunozl/fnplot/pkg/typeset"
)

// DefaultExpression evaluated by Start, if Config.DefaultExpression is not set.
const DefaultExpression = "2*x + 1"

// State of the coordinator, after (or during) the handling of an expression change.
type State int

//go:generate enumer -type=State -trimprefix=State -transform=snake -values -text -json coordinator.go

const (
	// StateIdle is the state before the first expression is handled.
	StateIdle State = iota

	// StateEvaluating while the expression is evaluated and the chart is rendered.
	StateEvaluating

	// StateRenderedOK after the chart was created or updated with the new samples.
	StateRenderedOK

	// StateRenderFailed after the expression failed to evaluate or the chart failed to render.
	// The chart still shows the last successful rendering.
	StateRenderFailed
)

// Config of a Coordinator.
type Config struct {
	// DefaultExpression handled by Start. If empty, DefaultExpression is used.
	DefaultExpression string

	// ReportEvalErrors includes the message of evaluation errors in Update.Error.
	// Otherwise they are only logged.
	ReportEvalErrors bool

	// Width and Height of the chart, passed to the chart renderer. 0 means the renderer default.
	Width, Height int
}

// Update describes the outcome of handling one expression change.
type Update struct {
	Expression string
	State      State

	// Series evaluated from Expression, or nil if the evaluation failed.
	Series expr.SampleSeries

	// Created is set if the chart was created by this update, Updated if an existing chart was updated.
	// Both are false if the chart was left untouched.
	Created, Updated bool

	// Error message, only set for chart failures or, if Config.ReportEvalErrors, evaluation errors.
	Error string

	// Markup of the expression returned by the typesetter, or typeset.FallbackMarkup.
	Markup string
}

// Coordinator owns the current expression and the chart handle.
//
// Its methods can be called concurrently, but events are handled one at a time, each to completion.
type Coordinator struct {
	cfg        Config
	charts     chart.Renderer
	surface    chart.Surface
	typesetter typeset.Renderer
	domain     expr.Domain

	mu         sync.Mutex
	expression string
	state      State
	series     expr.SampleSeries
	lastErr    error
	handle     chart.Handle

	// rendered is the expression drawn in the chart.
	rendered string
}

// New creates a Coordinator that creates its chart with charts, on surface, and typesets expressions
// with typesetter.
//
// Nothing is rendered until Start or OnExpressionChanged is called.
func New(cfg Config, charts chart.Renderer, surface chart.Surface, typesetter typeset.Renderer) *Coordinator {
	if cfg.DefaultExpression == "" {
		cfg.DefaultExpression = DefaultExpression
	}
	return &Coordinator{
		cfg:        cfg,
		charts:     charts,
		surface:    surface,
		typesetter: typesetter,
		domain:     expr.StandardDomain(),
		state:      StateIdle,
	}
}

// Start handles the configured default expression, producing the first rendering.
func (c *Coordinator) Start() Update {
	return c.OnExpressionChanged(c.cfg.DefaultExpression)
}

// Label used for the series of the chart for the given expression text.
func Label(text string) string {
	return "y = " + text
}

// OnExpressionChanged replaces the current expression with text, evaluates it, and creates or updates
// the chart with the result. The typeset markup of text is included in the returned Update.
func (c *Coordinator) OnExpressionChanged(text string) Update {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.expression = text
	c.state = StateEvaluating
	update := Update{Expression: text}

	series, err := expr.Evaluate(text, c.domain)
	if err != nil {
		klog.V(1).Infof("expression %q not plotted: %v", text, err)
		c.fail(err)
		if c.cfg.ReportEvalErrors {
			update.Error = err.Error()
		}
	} else if err = c.render(text, series, &update); err != nil {
		klog.Errorf("failed to render %q: %+v", text, err)
		c.fail(err)
		update.Error = err.Error()
	} else {
		c.series = series
		c.lastErr = nil
		c.state = StateRenderedOK
		update.Series = series
	}
	update.State = c.state
	update.Markup = c.RenderTypeset(text)
	return update
}

func (c *Coordinator) fail(err error) {
	c.lastErr = err
	c.state = StateRenderFailed
}

// render creates the chart on the first call, and updates it afterwards.
// A panic of the chart renderer is returned as an error, and the chart is left as it was.
func (c *Coordinator) render(text string, series expr.SampleSeries, update *Update) error {
	var err error
	exception := exceptions.Try(func() {
		if c.handle == nil {
			err = c.create(text, series, update)
		} else {
			err = c.update(text, series, update)
		}
	})
	if exception != nil {
		err = errors.Errorf("%s chart panicked: %v", c.charts.Name(), exception)
	}
	if err != nil {
		if c.handle != nil && !update.Created {
			// Label of the expression still drawn.
			c.setLabel(c.rendered)
		}
		return err
	}
	c.rendered = text
	return nil
}

func (c *Coordinator) create(text string, series expr.SampleSeries, update *Update) error {
	handle, err := c.charts.Create(c.surface, chart.Config{
		Label:  Label(text),
		XTitle: "x",
		YTitle: "y",
		Labels: c.domain,
		Series: series,
		Width:  c.cfg.Width,
		Height: c.cfg.Height,
	})
	if err != nil {
		return errors.WithMessagef(err, "creating %s chart", c.charts.Name())
	}
	c.handle = handle
	update.Created = true
	return nil
}

func (c *Coordinator) update(text string, series expr.SampleSeries, update *Update) error {
	c.setLabel(text)
	if err := c.handle.Update(series); err != nil {
		return errors.WithMessagef(err, "updating %s chart", c.charts.Name())
	}
	update.Updated = true
	return nil
}

func (c *Coordinator) setLabel(text string) {
	if labeler, ok := c.handle.(chart.Labeler); ok {
		labeler.SetLabel(Label(text))
	}
}

// RenderTypeset returns the markup of text, or typeset.FallbackMarkup if it is not valid LaTeX.
// It doesn't evaluate text nor change the state of the coordinator.
func (c *Coordinator) RenderTypeset(text string) string {
	return typeset.Render(c.typesetter, text)
}

// Expression returns the current expression.
func (c *Coordinator) Expression() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expression
}

// State returns the state after the last handled expression.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Series returns the samples currently shown in the chart, or nil if no chart was rendered yet.
func (c *Coordinator) Series() expr.SampleSeries {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.series.Clone()
}

// LastError returns the error of the last handled expression, or nil if it rendered fine.
func (c *Coordinator) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// HasChart returns whether the chart was already created.
func (c *Coordinator) HasChart() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handle != nil
}
