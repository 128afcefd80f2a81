package monitor

import "image/color"

type rectCall struct {
	X, Y, W, H float64
}

type recordingSurface struct {
	fills    []rectCall
	colors   []color.RGBA
	clears   []rectCall
	flushes  int
	released bool
}

func (r *recordingSurface) FillRect(x, y, w, h float64, c color.RGBA) {
	r.fills = append(r.fills, rectCall{x, y, w, h})
	r.colors = append(r.colors, c)
}

func (r *recordingSurface) ClearRect(x, y, w, h float64) {
	r.clears = append(r.clears, rectCall{x, y, w, h})
}

func (r *recordingSurface) Flush() error {
	r.flushes++
	return nil
}

func (r *recordingSurface) Release() { r.released = true }

func (r *recordingSurface) lastFills(n int) []rectCall {
	if len(r.fills) < n {
		return r.fills
	}
	return r.fills[len(r.fills)-n:]
}

func (r *recordingSurface) reset() {
	r.fills = nil
	r.colors = nil
	r.clears = nil
}
