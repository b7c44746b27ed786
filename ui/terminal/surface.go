// Copyright 2025-2026 The fnplot Authors. SPDX-License-Identifier: Apache-2.0

package terminal

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/jorgemunozl/fnplot/pkg/chart"
)

// Surface implements chart.Surface by printing text frames to a writer.
// Frames of other kinds (HTML, images, scripts) can't be shown, and only a short note is printed.
type Surface struct {
	w io.Writer
}

var _ chart.Surface = (*Surface)(nil)

// NewSurface returns a Surface that prints to w.
func NewSurface(w io.Writer) *Surface {
	return &Surface{w: w}
}

// Display implements chart.Surface.
func (s *Surface) Display(frame chart.Frame) error {
	var err error
	if frame.Kind == chart.KindText {
		_, err = fmt.Fprintln(s.w, frame.Content)
	} else {
		_, err = fmt.Fprintf(s.w, "[%s frame for chart %s: %d bytes not shown in the terminal]\n",
			frame.Kind, frame.ChartID, len(frame.Content))
	}
	return errors.Wrapf(err, "failed to print %s frame", frame.Kind)
}
