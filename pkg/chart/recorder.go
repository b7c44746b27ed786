// Copyright 2025-2026 The fnplot Authors. SPDX-License-Identifier: Apache-2.0

package chart

import (
	"slices"
	"sync"
)

// Recorder is a Surface that keeps every frame displayed, in order. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	frames []Frame
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder { return &Recorder{} }

// Display implements Surface.
func (r *Recorder) Display(frame Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, frame)
	return nil
}

// Frames returns a copy of all frames displayed so far.
func (r *Recorder) Frames() []Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.frames)
}

// Len returns the number of frames displayed so far.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

// Since returns a copy of the frames displayed after the first n ones.
func (r *Recorder) Since(n int) []Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n >= len(r.frames) {
		return nil
	}
	return slices.Clone(r.frames[n:])
}

// Last returns the last frame displayed, and false if there was none.
func (r *Recorder) Last() (Frame, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.frames) == 0 {
		return Frame{}, false
	}
	return r.frames[len(r.frames)-1], true
}

// Current returns, for each chart, the frame that currently represents it: the last non-script frame.
// Charts are returned in the order they were first displayed.
func (r *Recorder) Current() []Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	var order []string
	current := make(map[string]Frame)
	for _, frame := range r.frames {
		if frame.Kind == KindScript {
			continue
		}
		if _, found := current[frame.ChartID]; !found {
			order = append(order, frame.ChartID)
		}
		current[frame.ChartID] = frame
	}
	result := make([]Frame, 0, len(order))
	for _, id := range order {
		result = append(result, current[id])
	}
	return result
}

// Replay returns the frames needed to show every chart as it is now on a new page: for each chart its
// current frame (see Current) followed by the last script frame displayed after it, if any.
func (r *Recorder) Replay() []Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.replayLocked()
}

// replayLocked implements Replay. It must be called with r.mu held.
func (r *Recorder) replayLocked() []Frame {
	var order []string
	type chartFrames struct {
		current, script *Frame
	}
	charts := make(map[string]*chartFrames)
	for ii := range r.frames {
		frame := &r.frames[ii]
		c, found := charts[frame.ChartID]
		if !found {
			c = &chartFrames{}
			charts[frame.ChartID] = c
			order = append(order, frame.ChartID)
		}
		if frame.Kind == KindScript {
			c.script = frame
		} else {
			c.current, c.script = frame, nil
		}
	}
	var result []Frame
	for _, id := range order {
		c := charts[id]
		if c.current != nil {
			result = append(result, *c.current)
		}
		if c.script != nil {
			result = append(result, *c.script)
		}
	}
	return result
}

// Compact discards the frames that are not needed to Replay the charts.
// Indices given to Since are not valid after a Compact.
func (r *Recorder) Compact() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = r.replayLocked()
}

// Reset discards all frames.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = nil
}
