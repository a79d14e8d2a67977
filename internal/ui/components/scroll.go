package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/gravitdam/gravitdam/internal/ui/theme"
)

// Window clips rendered content to a fixed number of lines. Offset is the
// first visible line; Render clamps it to the content it is given.
type Window struct {
	Offset int
}

// Follow scrolls the shortest distance that brings lines [top, bottom)
// into a window of the given height. A range taller than the window is
// shown from its top.
func (w *Window) Follow(top, bottom, height int) {
	body := height - 1 // room for the position line
	if body < 1 {
		return
	}
	if bottom > w.Offset+body {
		w.Offset = bottom - body
	}
	if top < w.Offset {
		w.Offset = top
	}
}

// Scroll moves the window by delta lines.
func (w *Window) Scroll(delta int) {
	w.Offset += delta
	if w.Offset < 0 {
		w.Offset = 0
	}
}

// Bottom moves the window to the end of the content.
func (w *Window) Bottom() {
	w.Offset = math.MaxInt32
}

// Render returns the visible part of content. Content that fits is returned
// unchanged; otherwise the last line reports the visible range.
func (w *Window) Render(content string, height int) string {
	lines := strings.Split(content, "\n")
	if height < 2 || len(lines) <= height {
		w.Offset = 0
		return content
	}

	body := height - 1
	if last := len(lines) - body; w.Offset > last {
		w.Offset = last
	}
	if w.Offset < 0 {
		w.Offset = 0
	}

	end := w.Offset + body
	pos := theme.Hint.Render(fmt.Sprintf("↑↓ lines %d-%d of %d", w.Offset+1, end, len(lines)))
	return strings.Join(lines[w.Offset:end], "\n") + "\n" + pos
}
