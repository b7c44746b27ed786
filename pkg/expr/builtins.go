// Copyright 2025-2026 The fnplot Authors. SPDX-License-Identifier: Apache-2.0

package expr

import (
	"maps"
	"math"
	"slices"
)

// Variable is the name of the single free variable of an expression.
const Variable = "x"

// MathPrefix can optionally prefix constants and functions, as in JavaScript: `Math.sin(Math.PI*x)`.
const MathPrefix = "Math"

type builtin struct {
	// arity is the number of arguments, or -1 for variadic functions.
	arity int
	fn    func(args ...float64) float64
}

func unary(fn func(float64) float64) builtin {
	return builtin{arity: 1, fn: func(args ...float64) float64 { return fn(args[0]) }}
}

func binary(fn func(float64, float64) float64) builtin {
	return builtin{arity: 2, fn: func(args ...float64) float64 { return fn(args[0], args[1]) }}
}

// jsRound rounds half-way values towards +Inf, like JavaScript's Math.round.
func jsRound(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return math.Floor(v + 0.5)
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return v // 0, -0 or NaN.
}

func variadicMax(args ...float64) float64 {
	result := math.Inf(-1)
	for _, v := range args {
		if math.IsNaN(v) {
			return v
		}
		result = math.Max(result, v)
	}
	return result
}

func variadicMin(args ...float64) float64 {
	result := math.Inf(1)
	for _, v := range args {
		if math.IsNaN(v) {
			return v
		}
		result = math.Min(result, v)
	}
	return result
}

func variadicHypot(args ...float64) float64 {
	var result float64
	for _, v := range args {
		result = math.Hypot(result, v)
	}
	return result
}

// builtins is the allow-list of functions. Anything else is rejected.
var builtins = map[string]builtin{
	"abs":   unary(math.Abs),
	"acos":  unary(math.Acos),
	"acosh": unary(math.Acosh),
	"asin":  unary(math.Asin),
	"asinh": unary(math.Asinh),
	"atan":  unary(math.Atan),
	"atan2": binary(math.Atan2),
	"atanh": unary(math.Atanh),
	"cbrt":  unary(math.Cbrt),
	"ceil":  unary(math.Ceil),
	"cos":   unary(math.Cos),
	"cosh":  unary(math.Cosh),
	"exp":   unary(math.Exp),
	"expm1": unary(math.Expm1),
	"floor": unary(math.Floor),
	"hypot": {arity: -1, fn: variadicHypot},
	"log":   unary(math.Log),
	"log10": unary(math.Log10),
	"log1p": unary(math.Log1p),
	"log2":  unary(math.Log2),
	"max":   {arity: -1, fn: variadicMax},
	"min":   {arity: -1, fn: variadicMin},
	"pow":   binary(math.Pow),
	"round": unary(jsRound),
	"sign":  unary(sign),
	"sin":   unary(math.Sin),
	"sinh":  unary(math.Sinh),
	"sqrt":  unary(math.Sqrt),
	"tan":   unary(math.Tan),
	"tanh":  unary(math.Tanh),
	"trunc": unary(math.Trunc),
}

// constants is the allow-list of named numbers, with both the short and the JavaScript names.
var constants = map[string]float64{
	"pi":       math.Pi,
	"π":        math.Pi,
	"e":        math.E,
	"PI":       math.Pi,
	"E":        math.E,
	"LN2":      math.Ln2,
	"LN10":     math.Ln10,
	"LOG2E":    math.Log2E,
	"LOG10E":   math.Log10E,
	"SQRT2":    math.Sqrt2,
	"SQRT1_2":  1 / math.Sqrt2,
	"Infinity": math.Inf(1),
	"NaN":      math.NaN(),
}

// Functions returns the sorted names of the functions that can be used in an expression.
func Functions() []string {
	return slices.Sorted(maps.Keys(builtins))
}

// Constants returns the sorted names of the constants that can be used in an expression.
func Constants() []string {
	return slices.Sorted(maps.Keys(constants))
}
