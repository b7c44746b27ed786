// Copyright 2025-2026 The fnplot Authors. SPDX-License-Identifier: Apache-2.0

// Package typeset renders text as LaTeX math markup.
//
// A Renderer converts text to markup (MathML), and reports malformed input as a *SyntaxError. Render wraps
// any Renderer so that it never fails: errors (and panics of the underlying parsers) are replaced by
// FallbackMarkup.
//
// Two renderers are provided: NewMathML, which parses the LaTeX with go-latex and emits MathML itself,
// and NewMarkdown, which converts it with goldmark and the treeblood MathML extension.
package typeset

import (
	"fmt"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// FallbackMarkup is shown instead of the rendering of malformed input.
const FallbackMarkup = "Invalid LaTeX"

// Options for the renderers.
type Options struct {
	// ThrowOnError makes Renderer.Render return a *SyntaxError for malformed input. If false, the renderer
	// returns FallbackMarkup itself, with no error.
	ThrowOnError bool

	// DisplayMode renders the math in display (block) style, instead of inline.
	DisplayMode bool
}

// Renderer converts raw text, interpreted as LaTeX math, to markup.
type Renderer interface {
	// Name of the renderer, as used in the command line settings.
	Name() string

	// Render returns the markup for text.
	Render(text string) (string, error)
}

// SyntaxError is returned for malformed LaTeX.
type SyntaxError struct {
	// Text being rendered.
	Text string

	// Pos is the byte offset in Text related to the error, or -1 if not known.
	Pos int

	Msg string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("invalid LaTeX %q at offset %d: %s", e.Text, e.Pos, e.Msg)
	}
	return fmt.Sprintf("invalid LaTeX %q: %s", e.Text, e.Msg)
}

// IsSyntaxError returns whether err is (or wraps) a *SyntaxError.
func IsSyntaxError(err error) bool {
	var syntaxErr *SyntaxError
	return errors.As(err, &syntaxErr)
}

// Render text with r, returning FallbackMarkup if r fails or panics. It never fails.
func Render(r Renderer, text string) string {
	var (
		markup string
		err    error
	)
	exception := exceptions.Try(func() {
		markup, err = r.Render(text)
	})
	if exception != nil {
		klog.V(1).Infof("typeset: %s panicked for %q: %v", r.Name(), text, exception)
		return FallbackMarkup
	}
	if err != nil {
		klog.V(1).Infof("typeset: %s failed for %q: %v", r.Name(), text, err)
		return FallbackMarkup
	}
	return markup
}

// finish applies the ThrowOnError option to the result of a renderer.
func finish(opts Options, markup string, err error) (string, error) {
	if err == nil {
		return markup, nil
	}
	if opts.ThrowOnError {
		return "", err
	}
	return FallbackMarkup, nil
}

// parseException converts a panic of a parser to a *SyntaxError.
func parseException(text string, exception any) *SyntaxError {
	switch e := exception.(type) {
	case *SyntaxError:
		return e
	case error:
		return &SyntaxError{Text: text, Pos: -1, Msg: e.Error()}
	default:
		return &SyntaxError{Text: text, Pos: -1, Msg: fmt.Sprint(e)}
	}
}
