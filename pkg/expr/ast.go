// Copyright 2025-2026 The fnplot Authors. SPDX-License-Identifier: Apache-2.0

package expr

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// node of the expression tree. Evaluation errors are thrown as *positionedError panics.
type node interface {
	eval(x float64) float64
	String() string
}

type numberNode struct {
	value float64
}

func (n *numberNode) eval(float64) float64 { return n.value }
func (n *numberNode) String() string      { return strconv.FormatFloat(n.value, 'g', -1, 64) }

// identNode is resolved at call time: `x`, or one of the constants.
type identNode struct {
	name string
	pos  int
}

func (n *identNode) eval(x float64) float64 {
	if n.name == Variable {
		return x
	}
	if v, found := constants[n.name]; found {
		return v
	}
	if _, found := builtins[n.name]; found {
		throwAt(n.pos, "%s is a function, not a number", n.name)
	}
	throwAt(n.pos, "%s is not defined", n.name)
	return 0
}

func (n *identNode) String() string { return n.name }

type unaryNode struct {
	op      string
	operand node
}

func (n *unaryNode) eval(x float64) float64 {
	v := n.operand.eval(x)
	if n.op == "-" {
		return -v
	}
	return v
}

func (n *unaryNode) String() string { return fmt.Sprintf("(%s%s)", n.op, n.operand) }

type binaryNode struct {
	op          string
	pos         int
	left, right node
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func (n *binaryNode) eval(x float64) float64 {
	a, b := n.left.eval(x), n.right.eval(x)
	switch n.op {
	case "+":
		return a + b
	case "-":
		return a - b
	case "*":
		return a * b
	case "/":
		return a / b
	case "%":
		return math.Mod(a, b)
	case "^", "**":
		return math.Pow(a, b)
	case "<":
		return boolToFloat(a < b)
	case "<=":
		return boolToFloat(a <= b)
	case ">":
		return boolToFloat(a > b)
	case ">=":
		return boolToFloat(a >= b)
	case "==", "===":
		return boolToFloat(a == b)
	case "!=", "!==":
		return boolToFloat(a != b)
	}
	throwAt(n.pos, "unknown operator %q", n.op)
	return 0
}

func (n *binaryNode) String() string { return fmt.Sprintf("(%s %s %s)", n.left, n.op, n.right) }

// conditionalNode is `cond ? then : otherwise`. Zero and NaN are false, as in JavaScript.
type conditionalNode struct {
	cond, then, otherwise node
}

func (n *conditionalNode) eval(x float64) float64 {
	c := n.cond.eval(x)
	if c != 0 && !math.IsNaN(c) {
		return n.then.eval(x)
	}
	return n.otherwise.eval(x)
}

func (n *conditionalNode) String() string {
	return fmt.Sprintf("(%s ? %s : %s)", n.cond, n.then, n.otherwise)
}

// callNode calls one of the builtins. The function is resolved at call time.
type callNode struct {
	name string
	pos  int
	args []node
}

func (n *callNode) eval(x float64) float64 {
	fn, found := builtins[n.name]
	if !found {
		if n.name == Variable {
			throwAt(n.pos, "%s is not a function", n.name)
		}
		if _, isConst := constants[n.name]; isConst {
			throwAt(n.pos, "%s is not a function", n.name)
		}
		throwAt(n.pos, "%s is not defined", n.name)
	}
	if fn.arity >= 0 && len(n.args) != fn.arity {
		throwAt(n.pos, "%s expects %d argument(s), got %d", n.name, fn.arity, len(n.args))
	}
	values := make([]float64, len(n.args))
	for ii, arg := range n.args {
		values[ii] = arg.eval(x)
	}
	return fn.fn(values...)
}

func (n *callNode) String() string {
	parts := make([]string, len(n.args))
	for ii, arg := range n.args {
		parts[ii] = arg.String()
	}
	return fmt.Sprintf("%s(%s)", n.name, strings.Join(parts, ", "))
}

// nanNode is the body of an empty expression: like a JavaScript function returning undefined,
// it yields NaN for every x.
type nanNode struct{}

func (nanNode) eval(float64) float64 { return math.NaN() }
func (nanNode) String() string      { return "NaN" }
