// Copyright 2025-2026 The fnplot Authors. SPDX-License-Identifier: Apache-2.0

package typeset

import (
	"html"
	"regexp"
	"strings"

	"codeberg.org/go-latex/latex"
	"codeberg.org/go-latex/latex/ast"
	"github.com/gomlx/exceptions"
)

// MathML renders LaTeX math to MathML: the text is parsed with go-latex, and the syntax tree converted
// to MathML elements.
type MathML struct {
	opts Options
}

var _ Renderer = (*MathML)(nil)

// NewMathML creates a MathML renderer.
func NewMathML(opts Options) *MathML {
	return &MathML{opts: opts}
}

// Name implements Renderer.
func (m *MathML) Name() string { return "mathml" }

// Render implements Renderer.
func (m *MathML) Render(text string) (string, error) {
	markup, err := m.render(text)
	return finish(m.opts, markup, err)
}

var (
	// `\left` and `\right` only size the delimiters that follow them. `\left.` is an invisible delimiter.
	leftRightStripRegexp = regexp.MustCompile(`\\(?:left|right)\b(?:\s*\.)?`)

	// Characters that go-latex doesn't tokenize, and their equivalent.
	sourceReplacer = strings.NewReplacer("|", `\vert `, "~", " ")
)

func (m *MathML) render(text string) (markup string, err error) {
	if err = CheckBalanced(text); err != nil {
		return
	}
	source := "$" + sourceReplacer.Replace(leftRightStripRegexp.ReplaceAllString(text, "")) + "$"
	exception := exceptions.Try(func() {
		var root ast.Node
		root, err = latex.ParseExpr(source)
		if err != nil {
			err = &SyntaxError{Text: text, Pos: -1, Msg: err.Error()}
			return
		}
		w := &mathMLWriter{text: text}
		markup = w.document(root, m.opts.DisplayMode)
	})
	if exception != nil {
		err = parseException(text, exception)
	}
	return
}

// mathMLWriter converts a go-latex syntax tree to MathML. Unsupported nodes panic with a *SyntaxError.
type mathMLWriter struct {
	text string
}

func (w *mathMLWriter) fail(msg string) {
	panic(&SyntaxError{Text: w.text, Pos: -1, Msg: msg})
}

func (w *mathMLWriter) document(root ast.Node, displayMode bool) string {
	var b strings.Builder
	b.WriteString(`<math xmlns="http://www.w3.org/1998/Math/MathML"`)
	if displayMode {
		b.WriteString(` display="block"`)
	}
	b.WriteString("><semantics><mrow>")
	list, ok := root.(ast.List)
	if !ok || len(list) != 1 {
		w.fail("expected a single math expression")
	}
	mathExpr, ok := list[0].(*ast.MathExpr)
	if !ok {
		w.fail("expected a single math expression")
	}
	for _, elem := range w.list(mathExpr.List) {
		b.WriteString(elem)
	}
	b.WriteString(`</mrow><annotation encoding="application/x-tex">`)
	b.WriteString(html.EscapeString(w.text))
	b.WriteString("</annotation></semantics></math>")
	return b.String()
}

// list converts a sequence of nodes. Superscripts and subscripts apply to the element before them.
func (w *mathMLWriter) list(list ast.List) []string {
	var elems []string
	popBase := func() string {
		if len(elems) == 0 {
			return "<mrow></mrow>"
		}
		base := elems[len(elems)-1]
		elems = elems[:len(elems)-1]
		return base
	}
	for _, node := range list {
		switch n := node.(type) {
		case *ast.Sup:
			base := popBase()
			elems = append(elems, "<msup>"+base+w.group(n.Node)+"</msup>")
		case *ast.Sub:
			base := popBase()
			elems = append(elems, "<msub>"+base+w.group(n.Node)+"</msub>")
		default:
			elems = append(elems, w.node(node)...)
		}
	}
	return elems
}

// row converts a list of nodes to exactly one element.
func (w *mathMLWriter) row(list ast.List) string {
	elems := w.list(list)
	if len(elems) == 1 {
		return elems[0]
	}
	return "<mrow>" + strings.Join(elems, "") + "</mrow>"
}

// group converts one node to exactly one element.
func (w *mathMLWriter) group(node ast.Node) string {
	if node == nil {
		w.fail("missing superscript or subscript")
	}
	if list, ok := node.(ast.List); ok {
		return w.row(list)
	}
	elems := w.node(node)
	if len(elems) == 1 {
		return elems[0]
	}
	return "<mrow>" + strings.Join(elems, "") + "</mrow>"
}

func (w *mathMLWriter) node(node ast.Node) []string {
	switch n := node.(type) {
	case nil:
		return nil
	case ast.List:
		if len(n) == 0 {
			return nil
		}
		return []string{w.row(n)}
	case *ast.MathExpr:
		w.fail("unexpected math delimiter")
	case *ast.Word:
		elems := make([]string, 0, len(n.Text))
		for _, r := range n.Text {
			elems = append(elems, "<mi>"+html.EscapeString(string(r))+"</mi>")
		}
		return elems
	case *ast.Literal:
		return []string{"<mn>" + html.EscapeString(n.Text) + "</mn>"}
	case *ast.Symbol:
		return []string{w.symbol(n.Text)}
	case *ast.Macro:
		return w.macro(n)
	case *ast.Arg:
		return []string{w.row(n.List)}
	case *ast.OptArg:
		return []string{w.row(n.List)}
	case *ast.Sup, *ast.Sub:
		return w.list(ast.List{n})
	}
	w.fail("unsupported LaTeX construct")
	return nil
}

func (w *mathMLWriter) symbol(text string) string {
	if mapped, found := symbolOperators[text]; found {
		text = mapped
	}
	return "<mo>" + html.EscapeString(text) + "</mo>"
}

// macroArgs splits the arguments of a macro in the optional argument (or nil) and the required ones.
func macroArgs(n *ast.Macro) (opt *ast.OptArg, args []*ast.Arg) {
	for _, node := range n.Args {
		switch arg := node.(type) {
		case *ast.OptArg:
			opt = arg
		case *ast.Arg:
			args = append(args, arg)
		}
	}
	return
}

// plainText concatenates the text of the words, literals and symbols under node.
func plainText(node ast.Node) string {
	var b strings.Builder
	ast.Inspect(node, func(node ast.Node) bool {
		switch n := node.(type) {
		case *ast.Word:
			b.WriteString(n.Text)
		case *ast.Literal:
			b.WriteString(n.Text)
		case *ast.Symbol:
			b.WriteString(n.Text)
		}
		return true
	})
	return b.String()
}

func (w *mathMLWriter) macro(n *ast.Macro) []string {
	name := strings.TrimPrefix(n.Name.Name, `\`)
	opt, args := macroArgs(n)
	requireArgs := func(count int) {
		if len(args) != count {
			w.fail(`\` + name + " requires arguments")
		}
	}

	switch name {
	case "frac", "dfrac", "tfrac":
		requireArgs(2)
		return []string{"<mfrac>" + w.row(args[0].List) + w.row(args[1].List) + "</mfrac>"}
	case "binom":
		requireArgs(2)
		return []string{`<mrow><mo>(</mo><mfrac linethickness="0">` + w.row(args[0].List) + w.row(args[1].List) +
			"</mfrac><mo>)</mo></mrow>"}
	case "stackrel":
		requireArgs(2)
		return []string{"<mover>" + w.row(args[1].List) + w.row(args[0].List) + "</mover>"}
	case "sqrt":
		requireArgs(1)
		if opt != nil {
			return []string{"<mroot>" + w.row(args[0].List) + w.row(opt.List) + "</mroot>"}
		}
		return []string{"<msqrt>" + strings.Join(w.list(args[0].List), "") + "</msqrt>"}
	case "overline":
		requireArgs(1)
		return []string{`<mover accent="true">` + w.row(args[0].List) + `<mo stretchy="true">&#x203E;</mo></mover>`}
	case "operatorname":
		requireArgs(1)
		return []string{"<mi>" + html.EscapeString(plainText(args[0])) + "</mi>"}
	case "hspace":
		requireArgs(1)
		return []string{`<mspace width="` + html.EscapeString(plainText(args[0])) + `"/>`}
	}

	if variant, found := mathVariants[name]; found {
		requireArgs(1)
		return []string{`<mstyle mathvariant="` + variant + `">` + w.row(args[0].List) + "</mstyle>"}
	}
	if strings.HasPrefix(name, "text") {
		requireArgs(1)
		return []string{"<mtext>" + html.EscapeString(plainText(args[0])) + "</mtext>"}
	}
	if width, found := spaces[name]; found {
		return []string{`<mspace width="` + width + `"/>`}
	}
	if fontSwitches[name] {
		return nil
	}
	if functionNames[name] {
		elems := []string{"<mi>" + name + "</mi>"}
		for _, arg := range args {
			elems = append(elems, w.row(arg.List))
		}
		return elems
	}
	if symbol, found := macroIdentifiers[name]; found {
		return []string{"<mi>" + symbol + "</mi>"}
	}
	if symbol, found := macroOperators[name]; found {
		return []string{"<mo>" + html.EscapeString(symbol) + "</mo>"}
	}
	// Known to the parser, but without a specific rendering.
	return []string{`<mi mathvariant="normal">` + html.EscapeString(name) + "</mi>"}
}
