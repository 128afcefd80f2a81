package monitor

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"wheelmon/hal"
)

// Surface is the passive drawing target a chart renders onto. Coordinates are
// in pixels relative to the chart's top-left corner; negative extents grow
// up or left from the anchor, as with a 2D canvas.
type Surface interface {
	FillRect(x, y, w, h float64, c color.RGBA)
	ClearRect(x, y, w, h float64)
	Flush() error
	// Release removes the surface from its display.
	Release()
}

var borderColor = color.RGBA{A: 0xff}

// Frame returns where a chart with settings s sits on the framebuffer: outer
// includes the border, inner is the drawable area.
func Frame(s Settings) (outer, inner image.Rectangle) {
	s = s.withDefaults()
	if !s.Styled() {
		r := image.Rect(0, 0, s.Width, s.Height)
		return r, r
	}
	inner = image.Rect(0, 0, s.Width, s.Height).Add(image.Pt(Inset+1, Inset+1))
	return inner.Inset(-1), inner
}

// OpenSurface claims the chart's area of the display's framebuffer and paints
// its border and background.
func OpenSurface(d hal.Display, s Settings) (Surface, error) {
	if d == nil {
		return nil, ErrSurfaceUnavailable
	}
	fb := d.Framebuffer()
	if fb == nil {
		return nil, ErrSurfaceUnavailable
	}
	if fb.Format() != hal.PixelFormatRGB565 {
		return nil, fmt.Errorf("pixel format %d: %w", fb.Format(), ErrSurfaceUnavailable)
	}
	s = s.withDefaults()
	if s.Width < 0 || s.Height < 0 {
		return nil, fmt.Errorf("size %dx%d: %w", s.Width, s.Height, ErrSurfaceUnavailable)
	}

	outerRect, innerRect := Frame(s)
	outer := hal.NewRegion(fb, outerRect)
	inner := hal.NewRegion(fb, innerRect)
	if outer == nil || inner == nil {
		return nil, fmt.Errorf("chart %v outside %dx%d framebuffer: %w", outerRect, fb.Width(), fb.Height(), ErrSurfaceUnavailable)
	}

	if s.Styled() {
		outer.Clear(borderColor)
	}
	inner.Clear(s.BackgroundColor)
	_ = inner.Display()

	return &fbSurface{outer: outer, inner: inner, bg: s.BackgroundColor}, nil
}

type fbSurface struct {
	outer *hal.Region
	inner *hal.Region
	bg    color.RGBA
}

func (f *fbSurface) FillRect(x, y, w, h float64, c color.RGBA) {
	r, ok := pixelRect(x, y, w, h)
	if !ok {
		return
	}
	f.inner.Fill(r, c)
}

// ClearRect paints the background; the chart has no transparency.
func (f *fbSurface) ClearRect(x, y, w, h float64) {
	r, ok := pixelRect(x, y, w, h)
	if !ok {
		return
	}
	f.inner.Fill(r, f.bg)
}

func (f *fbSurface) Flush() error {
	return f.inner.Display()
}

func (f *fbSurface) Release() {
	f.outer.Clear(color.RGBA{A: 0xff})
	_ = f.outer.Display()
}

// pixelRect snaps a canvas-style rectangle onto whole pixels. Columns cover
// every touched pixel, rows round to the nearest edge.
func pixelRect(x, y, w, h float64) (image.Rectangle, bool) {
	for _, v := range [...]float64{x, y, w, h} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return image.Rectangle{}, false
		}
	}
	x0, x1 := x, x+w
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	y0, y1 := y, y+h
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	r := image.Rect(
		clampCoord(math.Floor(x0)), clampCoord(math.Round(y0)),
		clampCoord(math.Ceil(x1)), clampCoord(math.Round(y1)),
	)
	return r, !r.Empty()
}

// clampCoord keeps huge deltas from overflowing int conversion.
func clampCoord(v float64) int {
	const limit = 1 << 20
	if v < -limit {
		return -limit
	}
	if v > limit {
		return limit
	}
	return int(v)
}
