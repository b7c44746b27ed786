// Copyright 2025-2026 The fnplot Authors. SPDX-License-Identifier: Apache-2.0

package expr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Stage of the evaluation where an EvaluationError happened.
type Stage int

const (
	// StageCompile errors: the text is not a valid expression.
	StageCompile Stage = iota

	// StageCall errors: the expression compiled, but applying it to some x failed
	// (e.g.: an unknown identifier, or calling something that is not a function).
	StageCall
)

func (s Stage) String() string {
	switch s {
	case StageCompile:
		return "compile"
	case StageCall:
		return "call"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// EvaluationError is returned by Compile, Function.Call and Evaluate.
type EvaluationError struct {
	// Expression is the text being evaluated.
	Expression string

	// Stage where it failed.
	Stage Stage

	// Pos is the byte offset in Expression related to the error, or -1 if not known.
	Pos int

	// X is the value being evaluated when Stage == StageCall.
	X float64

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *EvaluationError) Error() string {
	if e.Stage == StageCompile {
		if e.Pos >= 0 {
			return fmt.Sprintf("invalid expression %q at offset %d: %v", e.Expression, e.Pos, e.Err)
		}
		return fmt.Sprintf("invalid expression %q: %v", e.Expression, e.Err)
	}
	return fmt.Sprintf("failed to evaluate %q for x=%g: %v", e.Expression, e.X, e.Err)
}

// Unwrap returns the underlying error.
func (e *EvaluationError) Unwrap() error { return e.Err }

// Cause returns the underlying error, for `errors.Cause` of github.com/pkg/errors.
func (e *EvaluationError) Cause() error { return e.Err }

// IsEvaluationError returns whether err is (or wraps) an *EvaluationError.
func IsEvaluationError(err error) bool {
	var evalErr *EvaluationError
	return errors.As(err, &evalErr)
}

// positionedError is thrown (as a panic) by the parser, and converted to an EvaluationError by Compile.
type positionedError struct {
	pos int
	err error
}

func (e *positionedError) Error() string { return e.err.Error() }

func throwAt(pos int, format string, args ...any) {
	panic(&positionedError{pos: pos, err: errors.Errorf(format, args...)})
}
