// Copyright 2025-2026 The fnplot Authors. SPDX-License-Identifier: Apache-2.0

package typeset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckBalanced(t *testing.T) {
	for _, text := range []string{"", "x^2", `\frac{1}{x}`, `\{ x \}`, `\left( x \right)`, `\left. x \right|`, `\leftarrow`} {
		assert.NoError(t, CheckBalanced(text), "text=%q", text)
	}
	for text, pos := range map[string]int{
		`\frac{1}{x`: 8,
		"}{":         0,
		"$x$":        0,
		`x \right)`:  2,
		`\left( x`:   -1,
	} {
		err := CheckBalanced(text)
		require.Error(t, err, "text=%q", text)
		var syntaxErr *SyntaxError
		require.ErrorAs(t, err, &syntaxErr)
		assert.Equal(t, pos, syntaxErr.Pos, "text=%q", text)
	}
}

func TestMathML(t *testing.T) {
	r := NewMathML(Options{ThrowOnError: true})
	assert.Equal(t, "mathml", r.Name())
	testCases := map[string]string{
		"x^2":               "<msup><mi>x</mi><mn>2</mn></msup>",
		"x_1^2":             "<msup><msub><mi>x</mi><mn>1</mn></msub><mn>2</mn></msup>",
		`\frac{1}{x}`:       "<mfrac><mn>1</mn><mi>x</mi></mfrac>",
		`\sqrt{x}`:          "<msqrt><mi>x</mi></msqrt>",
		`\sqrt[3]{x}`:       "<mroot><mi>x</mi><mn>3</mn></mroot>",
		`\alpha + \beta`:    "<mi>α</mi><mo>+</mo><mi>β</mi>",
		"2*x + 1":           "<mn>2</mn><mo>∗</mo><mi>x</mi><mo>+</mo><mn>1</mn>",
		`\sin(x)`:           "<mi>sin</mi><mo>(</mo><mi>x</mi><mo>)</mo>",
		`\left( x \right)`:  "<mo>(</mo><mi>x</mi><mo>)</mo>",
		"e^{x - 1}":         "<msup><mi>e</mi><mrow><mi>x</mi><mo>−</mo><mn>1</mn></mrow></msup>",
		`|x|`:               "<mo>|</mo><mi>x</mi><mo>|</mo>",
		`x \leq \infty`:     "<mi>x</mi><mo>≤</mo><mi>∞</mi>",
		`\mathbf{v}`:        `<mstyle mathvariant="bold"><mi>v</mi></mstyle>`,
		`\texttt{if} x > 0`: "<mtext>if</mtext><mi>x</mi><mo>&gt;</mo><mn>0</mn>",
	}
	for text, want := range testCases {
		markup, err := r.Render(text)
		require.NoError(t, err, "text=%q", text)
		assert.Contains(t, markup, want, "text=%q", text)
		assert.Contains(t, markup, `<math xmlns="http://www.w3.org/1998/Math/MathML">`)
		assert.NotEqual(t, FallbackMarkup, markup)
	}
}

func TestMathMLDisplayMode(t *testing.T) {
	markup, err := NewMathML(Options{DisplayMode: true}).Render("x")
	require.NoError(t, err)
	assert.Contains(t, markup, `display="block"`)
	assert.Contains(t, markup, `<annotation encoding="application/x-tex">x</annotation>`)
}

func TestMathMLErrors(t *testing.T) {
	throwing := NewMathML(Options{ThrowOnError: true})
	quiet := NewMathML(Options{})
	for _, text := range []string{
		`\frac{1}{x`, `\notamacro`, `\frac{1}`, "x & 1", "x^", `\left( x`, "a $ b", `"x"`,
	} {
		_, err := throwing.Render(text)
		require.Error(t, err, "text=%q", text)
		assert.True(t, IsSyntaxError(err), "text=%q: %v", text, err)

		markup, err := quiet.Render(text)
		require.NoError(t, err)
		assert.Equal(t, FallbackMarkup, markup, "text=%q", text)

		assert.Equal(t, FallbackMarkup, Render(throwing, text), "text=%q", text)
	}
}

func TestRender(t *testing.T) {
	r := NewMathML(Options{})
	assert.NotEqual(t, FallbackMarkup, Render(r, "x^2"))
	assert.Equal(t, FallbackMarkup, Render(r, `\frac{1}{x`))

	// Unparseable as an expression, but valid LaTeX, and the other way around.
	assert.NotEqual(t, FallbackMarkup, Render(r, `\alpha`))
	assert.Equal(t, FallbackMarkup, Render(r, `\frac{x}{2`))
	assert.Equal(t, FallbackMarkup, Render(panickingRenderer{}, "x"))
}

type panickingRenderer struct{}

func (panickingRenderer) Name() string                  { return "panic" }
func (panickingRenderer) Render(string) (string, error) { panic("boom") }

func TestMarkdown(t *testing.T) {
	r := NewMarkdown(Options{ThrowOnError: true})
	assert.Equal(t, "markdown", r.Name())
	markup, err := r.Render("x^2")
	require.NoError(t, err)
	assert.Contains(t, markup, "<math")
	assert.Contains(t, markup, "msup")

	_, err = r.Render(`\frac{1}{x`)
	require.Error(t, err)
	assert.True(t, IsSyntaxError(err))
	assert.Equal(t, FallbackMarkup, Render(NewMarkdown(Options{}), `\frac{1}{x`))

	markup, err = NewMarkdown(Options{DisplayMode: true}).Render("x")
	require.NoError(t, err)
	assert.Contains(t, markup, "<math")

	// Line breaks are only whitespace.
	want, err := r.Render("x + 1")
	require.NoError(t, err)
	markup, err = r.Render("x\n\n+ 1\n")
	require.NoError(t, err)
	assert.Equal(t, want, markup)
	assert.NotContains(t, markup, "$")
}
