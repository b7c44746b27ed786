// Copyright 2025-2026 The fnplot Authors. SPDX-License-Identifier: Apache-2.0

package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/jorgemunozl/fnplot/pkg/coordinator"
	"github.com/jorgemunozl/fnplot/pkg/expr"
)

// DefaultPrompt of the REPL.
const DefaultPrompt = "y = "

// REPL reads expressions, one per line, and hands them to a Coordinator.
//
// The chart frames are printed by the chart.Surface the Coordinator was created with (usually a Surface
// on the same writer), and the REPL prints the typeset markup and, if reported, errors.
//
// Lines starting with ":" are commands: ":q" (or ":quit") ends the REPL, ":help" lists the available
// functions and constants, ":clear" clears the screen.
type REPL struct {
	Prompt string

	coordinator *coordinator.Coordinator
	in          io.Reader
	out         *termenv.Output
}

// NewREPL creates a REPL reading from in and writing to out.
func NewREPL(c *coordinator.Coordinator, in io.Reader, out io.Writer) *REPL {
	return &REPL{
		Prompt:      DefaultPrompt,
		coordinator: c,
		in:          in,
		out:         termenv.NewOutput(out),
	}
}

// Run starts the coordinator, plotting the default expression, and then handles the lines read until
// the input ends, ":q" is read or ctx is done.
func (r *REPL) Run(ctx context.Context) error {
	_, _ = fmt.Fprintln(r.out, r.out.String("Type an expression of x, \":help\" for help or \":q\" to quit.").Faint())
	r.report(r.coordinator.Start())

	scanner := bufio.NewScanner(r.in)
	for {
		_, _ = fmt.Fprint(r.out, r.out.String(r.Prompt).Bold())
		if !scanner.Scan() {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case ":q", ":quit":
			return nil
		case ":help":
			r.help()
			continue
		case ":clear":
			r.out.ClearScreen()
			continue
		}
		klog.V(1).Infof("repl: expression %q", line)
		r.report(r.coordinator.OnExpressionChanged(line))
	}
	_, _ = fmt.Fprintln(r.out)
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "failed to read expressions")
	}
	return nil
}

func (r *REPL) report(update coordinator.Update) {
	_, _ = fmt.Fprintf(r.out, "%s %s\n", r.out.String("latex:").Faint(), update.Markup)
	if update.Error != "" {
		_, _ = fmt.Fprintln(r.out, r.out.String("error: "+update.Error).Foreground(r.out.Color("9")))
	}
}

func (r *REPL) help() {
	_, _ = fmt.Fprintf(r.out, "Expressions of %q use the operators + - * / %% ^ ** ( ), comparisons and `c ? a : b`.\n",
		expr.Variable)
	_, _ = fmt.Fprintf(r.out, "Functions: %s\n", strings.Join(expr.Functions(), ", "))
	_, _ = fmt.Fprintf(r.out, "Constants: %s\n", strings.Join(expr.Constants(), ", "))
	_, _ = fmt.Fprintf(r.out, "Functions and constants can be prefixed with %q, e.g.: Math.sin(Math.PI * x / 10).\n",
		expr.MathPrefix+".")
	_, _ = fmt.Fprintln(r.out, "Commands: :help, :clear, :q")
}
