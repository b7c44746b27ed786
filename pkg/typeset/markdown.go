// Copyright 2025-2026 The fnplot Authors. SPDX-License-Identifier: Apache-2.0

package typeset

import (
	"bytes"
	"strings"

	treeblood "github.com/wyatt915/goldmark-treeblood"
	"github.com/yuin/goldmark"
)

// Markdown renders LaTeX math by converting it, as a Markdown math block, with goldmark and the
// treeblood MathML extension.
type Markdown struct {
	opts Options
	md   goldmark.Markdown
}

var _ Renderer = (*Markdown)(nil)

// NewMarkdown creates a Markdown renderer.
func NewMarkdown(opts Options) *Markdown {
	return &Markdown{
		opts: opts,
		md: goldmark.New(
			goldmark.WithExtensions(
				treeblood.MathML(),
			),
		),
	}
}

// Name implements Renderer.
func (m *Markdown) Name() string { return "markdown" }

// Render implements Renderer.
func (m *Markdown) Render(text string) (string, error) {
	markup, err := m.render(text)
	return finish(m.opts, markup, err)
}

func (m *Markdown) render(text string) (string, error) {
	if err := CheckBalanced(text); err != nil {
		return "", err
	}
	// Blank lines would split the math into separate paragraphs.
	tex := strings.Join(strings.Fields(text), " ")
	if tex == "" {
		return "", nil
	}
	delimiter := "$"
	if m.opts.DisplayMode {
		delimiter = "$$"
	}
	source := delimiter + tex + delimiter

	var buf bytes.Buffer
	if err := m.md.Convert([]byte(source), &buf); err != nil {
		return "", &SyntaxError{Text: text, Pos: -1, Msg: err.Error()}
	}
	return strings.TrimSpace(buf.String()), nil
}
