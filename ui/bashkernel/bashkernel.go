// Copyright 2025-2026 The fnplot Authors. SPDX-License-Identifier: Apache-2.0

// Package bashkernel implements a chart.Surface that outputs rich content to a Jupyter notebook running
// the bash_kernel (https://github.com/takluyver/bash_kernel).
//
// The bash_kernel watches the output of the commands for lines with a special prefix followed by the
// name of a file with the content to display. Each chart gets its own display id, so the cell created
// when the chart is first displayed is updated in place afterwards.
package bashkernel

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/jorgemunozl/fnplot/pkg/chart"
	"github.com/pkg/errors"
)

// BashNotebookEnv is set by the bash_kernel for the commands it runs.
const BashNotebookEnv = "NOTEBOOK_BASH_KERNEL_CAPABILITIES"

// IsBashNotebook returns true if NOTEBOOK_BASH_KERNEL_CAPABILITIES is set, which indicates it is running
// from within a Notebook.
func IsBashNotebook() bool {
	_, found := os.LookupEnv(BashNotebookEnv)
	return found
}

// Prefix of the lines interpreted by the bash_kernel.
type Prefix string

const (
	// HTMLPrefix indicates the file that follows holds HTML content to be displayed.
	HTMLPrefix Prefix = "bash_kernel: saved html data to: "

	// JavascriptPrefix indicates the file that follows holds Javascript content to be executed.
	JavascriptPrefix Prefix = "bash_kernel: saved javascript data to: "
)

// Surface implements chart.Surface for the bash_kernel.
type Surface struct {
	mu sync.Mutex
	w  io.Writer

	// Dir where the content files are created. If empty, os.TempDir() is used.
	Dir string

	// Force output even if IsBashNotebook returns false.
	Force bool

	// sessionId makes display ids unique across runs: a cell re-run can't be updated anymore.
	sessionId string
}

var _ chart.Surface = (*Surface)(nil)

// New creates a Surface that writes the bash_kernel lines to w, usually os.Stdout.
func New(w io.Writer) *Surface {
	return &Surface{w: w, sessionId: uuid.NewString()[:8]}
}

// DisplayId returns the id used for the cell with the content of kind for the chart chartId.
// Display ids are not shared between HTML and JavaScript content.
func (s *Surface) DisplayId(chartId string, kind chart.Kind) string {
	if kind == chart.KindScript {
		return fmt.Sprintf("js_%s_%s", s.sessionId, chartId)
	}
	return fmt.Sprintf("html_%s_%s", s.sessionId, chartId)
}

// Display implements chart.Surface.
func (s *Surface) Display(frame chart.Frame) error {
	displayId := ""
	if frame.ChartID != "" {
		displayId = s.DisplayId(frame.ChartID, frame.Kind)
	}
	switch frame.Kind {
	case chart.KindHTML, chart.KindSVG, chart.KindPNG, chart.KindText:
		return s.OutputHTML(frame.HTML(), displayId)
	case chart.KindScript:
		return s.OutputJavascript(frame.Content, displayId)
	}
	return errors.Errorf("bashkernel: unknown frame kind %s", frame.Kind)
}

// OutputToPrefix saves the given content in a temporary file and outputs a prefixed line
// pointing to the file. If displayId != "", displays using that id.
func (s *Surface) OutputToPrefix(prefix Prefix, content string, displayId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.Force && !IsBashNotebook() {
		_, err := fmt.Fprintf(s.w, "[Not displaying content, since apparently not in a notebook -- %q env variable not set]\n",
			BashNotebookEnv)
		return errors.Wrap(err, "failed to write to bash_kernel output")
	}
	file, err := os.CreateTemp(s.Dir, "bash_kernel.fnplot.*")
	if err != nil {
		return errors.Wrap(err, "failed to create temporary file for bash_kernel output")
	}
	fileName := file.Name()
	_, err = fmt.Fprint(file, content)
	if err != nil {
		_ = file.Close()
		return errors.Wrapf(err, "failed to write to temporary file %q for bash_kernel output", fileName)
	}
	err = file.Close()
	if err != nil {
		return errors.Wrapf(err, "failed to close temporary file %q for bash_kernel output", fileName)
	}
	if displayId == "" {
		_, err = fmt.Fprintf(s.w, "%s%s\n", prefix, fileName)
	} else {
		_, err = fmt.Fprintf(s.w, "%s(%s) %s\n", prefix, displayId, fileName)
	}
	return errors.Wrap(err, "failed to write to bash_kernel output")
}

// OutputHTML outputs the html content such that it gets displayed on a Jupyter(Lab) Notebook.
//
// If displayId is set (displayId != ""), and a cell with the same displayId was created
// (and not deleted) earlier, it will update the contents of the same cell.
func (s *Surface) OutputHTML(html string, displayId string) error {
	return s.OutputToPrefix(HTMLPrefix, html, displayId)
}

// OutputJavascript sends the javascript content to be executed on a Jupyter(Lab) Notebook.
//
// If displayId is set (displayId != ""), and a cell with the same displayId was created
// (and not deleted) earlier, it will update the contents of the same cell.
func (s *Surface) OutputJavascript(javascript, displayId string) error {
	return s.OutputToPrefix(JavascriptPrefix, javascript, displayId)
}
