// Copyright 2025-2026 The fnplot Authors. SPDX-License-Identifier: Apache-2.0

package chart

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigWithSize(t *testing.T) {
	cfg := Config{Width: 300}.WithSize(800, 400)
	assert.Equal(t, 300, cfg.Width)
	assert.Equal(t, 400, cfg.Height)
}

func TestKind(t *testing.T) {
	assert.Equal(t, "script", KindScript.String())
	assert.Equal(t, "Kind(17)", Kind(17).String())
	blob, err := json.Marshal(Frame{ChartID: "a", Kind: KindSVG, Content: "<svg/>"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"chart_id":"a","kind":"svg","content":"<svg/>"}`, string(blob))

	var frame Frame
	require.NoError(t, json.Unmarshal([]byte(`{"chart_id":"b","kind":"script","content":"f()"}`), &frame))
	assert.Equal(t, Frame{ChartID: "b", Kind: KindScript, Content: "f()"}, frame)
	require.Error(t, json.Unmarshal([]byte(`{"kind":"gif"}`), &frame))
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	_, found := r.Last()
	assert.False(t, found)

	var s Surface = r
	require.NoError(t, s.Display(Frame{ChartID: "a", Kind: KindHTML, Content: "create a"}))
	require.NoError(t, s.Display(Frame{ChartID: "b", Kind: KindText, Content: "create b"}))
	require.NoError(t, s.Display(Frame{ChartID: "a", Kind: KindScript, Content: "update a"}))
	require.NoError(t, s.Display(Frame{ChartID: "b", Kind: KindText, Content: "redraw b"}))
	assert.Equal(t, 4, r.Len())
	assert.Len(t, r.Since(2), 2)
	assert.Nil(t, r.Since(4))

	last, found := r.Last()
	require.True(t, found)
	assert.Equal(t, "redraw b", last.Content)

	current := r.Current()
	require.Len(t, current, 2)
	assert.Equal(t, "create a", current[0].Content)
	assert.Equal(t, "redraw b", current[1].Content)

	r.Reset()
	assert.Equal(t, 0, r.Len())
}

func TestSurfaceFunc(t *testing.T) {
	var got []Frame
	s := SurfaceFunc(func(frame Frame) error {
		got = append(got, frame)
		return nil
	})
	require.NoError(t, s.Display(Frame{Content: "x"}))
	assert.Len(t, got, 1)
}

func TestFrameHTML(t *testing.T) {
	assert.Equal(t, "<svg></svg>", Frame{Kind: KindSVG, Content: "<svg></svg>"}.HTML())
	assert.Equal(t, "<pre>a &lt; b</pre>", Frame{Kind: KindText, Content: "a < b"}.HTML())
	assert.Equal(t, `<img src="data:image/png;base64,AAAA"/>`, Frame{Kind: KindPNG, Content: "AAAA"}.HTML())
	assert.Equal(t, "<script type=\"text/javascript\">\nf();\n</script>", Frame{Kind: KindScript, Content: "f();"}.HTML())
}

func TestRecorderReplay(t *testing.T) {
	r := NewRecorder()
	assert.Empty(t, r.Replay())
	frames := []Frame{
		{ChartID: "a", Kind: KindHTML, Content: "create a"},
		{ChartID: "a", Kind: KindScript, Content: "update a 1"},
		{ChartID: "b", Kind: KindSVG, Content: "b 1"},
		{ChartID: "a", Kind: KindScript, Content: "update a 2"},
		{ChartID: "b", Kind: KindSVG, Content: "b 2"},
	}
	for _, frame := range frames {
		require.NoError(t, r.Display(frame))
	}
	assert.Equal(t, []Frame{frames[0], frames[3], frames[4]}, r.Replay())

	// A new create frame discards the previous updates.
	require.NoError(t, r.Display(Frame{ChartID: "a", Kind: KindHTML, Content: "create a again"}))
	replay := r.Replay()
	require.Len(t, replay, 2)
	assert.Equal(t, "create a again", replay[0].Content)

	r.Compact()
	assert.Equal(t, replay, r.Frames())
	assert.Equal(t, replay, r.Replay())
}

func TestRecorderCompactConcurrent(t *testing.T) {
	r := NewRecorder()
	const numCharts = 200
	var wg sync.WaitGroup
	for ii := range numCharts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, r.Display(Frame{ChartID: fmt.Sprintf("chart-%d", ii), Kind: KindSVG}))
			r.Compact()
		}()
	}
	wg.Wait()
	// Each chart has a single frame, so nothing can be compacted away.
	assert.Equal(t, numCharts, r.Len())
}
