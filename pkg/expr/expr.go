// Copyright 2025-2026 The fnplot Authors. SPDX-License-Identifier: Apache-2.0

// Package expr compiles JavaScript-style single variable expressions, like "2*x + 1" or
// "Math.sin(x) / x", and samples them over a Domain.
//
// Expressions are parsed by a small recursive-descent parser into a tree evaluated with float64
// arithmetic: no code is ever executed, only the operators of the grammar and an allow-list of
// functions (see Functions) and constants (see Constants).
//
// Results are never filtered: division by zero yields ±Inf and invalid operations yield NaN, exactly
// like IEEE 754 (and JavaScript) arithmetic.
//
// Example:
//
//	series, err := expr.Evaluate("x^2 - 1", expr.StandardDomain())
//	if err != nil {
//		// err is an *expr.EvaluationError.
//	}
package expr

import (
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// Function is a compiled expression of the Variable `x`. Create it with Compile.
//
// A Function has no state, and it is safe to call concurrently.
type Function struct {
	text string
	root node
}

// Compile parses text into a Function. It returns an *EvaluationError (with Stage == StageCompile)
// if text is not a valid expression.
//
// Unknown identifiers are not reported here, but when the function is called, as in JavaScript.
// An empty text compiles to a function that always returns NaN.
func Compile(text string) (*Function, error) {
	var fn *Function
	err := exceptions.TryCatch[error](func() {
		p := &parser{tokens: tokenize(text)}
		fn = &Function{text: text, root: p.parse()}
	})
	if err != nil {
		return nil, newEvaluationError(text, StageCompile, 0, err)
	}
	return fn, nil
}

// MustCompile is like Compile, but panics on errors.
func MustCompile(text string) *Function {
	fn, err := Compile(text)
	if err != nil {
		panic(err)
	}
	return fn
}

func newEvaluationError(text string, stage Stage, x float64, err error) *EvaluationError {
	evalErr := &EvaluationError{Expression: text, Stage: stage, Pos: -1, X: x, Err: err}
	var posErr *positionedError
	if errors.As(err, &posErr) {
		evalErr.Pos = posErr.pos
		evalErr.Err = posErr.err
	}
	return evalErr
}

// String returns the original text of the expression.
func (f *Function) String() string { return f.text }

// Tree returns the parsed expression fully parenthesized, e.g.: "((2 * x) + 1)".
func (f *Function) Tree() string { return f.root.String() }

// Call evaluates the function for the given x. It returns an *EvaluationError (with Stage == StageCall)
// if the expression can't be evaluated, e.g. if it references an unknown identifier.
func (f *Function) Call(x float64) (float64, error) {
	var y float64
	err := exceptions.TryCatch[error](func() {
		y = f.root.eval(x)
	})
	if err != nil {
		return 0, newEvaluationError(f.text, StageCall, x, err)
	}
	return y, nil
}

// Sample calls the function for every x in domain, in order.
//
// It returns a series with exactly one sample per element of the domain, or an error and no
// series at all if any of the calls fail.
func (f *Function) Sample(domain Domain) (SampleSeries, error) {
	series := make(SampleSeries, len(domain))
	for ii, x := range domain {
		y, err := f.Call(x)
		if err != nil {
			return nil, err
		}
		series[ii] = Sample{X: x, Y: y}
	}
	return series, nil
}

// Evaluate compiles text once and samples it over the domain.
//
// It returns either a series with one sample per element of the domain, or an *EvaluationError.
func Evaluate(text string, domain Domain) (SampleSeries, error) {
	fn, err := Compile(text)
	if err != nil {
		return nil, err
	}
	return fn.Sample(domain)
}
