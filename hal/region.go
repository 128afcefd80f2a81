package hal

import (
	"image"
	"image/color"

	"tinygo.org/x/drivers"
)

// Region is a rectangle of a framebuffer addressed in local coordinates.
//
// It implements drivers.Displayer so tinyfont and friends can draw into it.
// Writes outside the rectangle are dropped.
type Region struct {
	fb Framebuffer
	r  image.Rectangle
}

var _ drivers.Displayer = (*Region)(nil)

// NewRegion returns the part of fb covered by r. It returns nil if fb is nil,
// not RGB565, or r does not overlap it.
func NewRegion(fb Framebuffer, r image.Rectangle) *Region {
	if fb == nil || fb.Format() != PixelFormatRGB565 {
		return nil
	}
	r = r.Intersect(image.Rect(0, 0, fb.Width(), fb.Height()))
	if r.Empty() {
		return nil
	}
	return &Region{fb: fb, r: r}
}

// Bounds returns the region in framebuffer coordinates.
func (d *Region) Bounds() image.Rectangle { return d.r }

func (d *Region) Size() (x, y int16) {
	return int16(d.r.Dx()), int16(d.r.Dy())
}

func (d *Region) SetPixel(x, y int16, c color.RGBA) {
	ix := int(x)
	iy := int(y)
	if ix < 0 || ix >= d.r.Dx() || iy < 0 || iy >= d.r.Dy() {
		return
	}
	buf := d.fb.Buffer()
	pixel := rgb565(c.R, c.G, c.B)
	off := (d.r.Min.Y+iy)*d.fb.StrideBytes() + (d.r.Min.X+ix)*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d *Region) Display() error {
	return d.fb.Present()
}

// FillRectangle fills a local rectangle, clipped to the region.
func (d *Region) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	d.Fill(image.Rect(int(x), int(y), int(x)+int(width), int(y)+int(height)), c)
	return nil
}

// Fill fills the local rectangle r, clipped to the region.
func (d *Region) Fill(r image.Rectangle, c color.RGBA) {
	r = r.Canon().Add(d.r.Min).Intersect(d.r)
	if r.Empty() {
		return
	}

	buf := d.fb.Buffer()
	pixel := rgb565(c.R, c.G, c.B)
	lo := byte(pixel)
	hi := byte(pixel >> 8)

	stride := d.fb.StrideBytes()
	for py := r.Min.Y; py < r.Max.Y; py++ {
		row := py * stride
		for px := r.Min.X; px < r.Max.X; px++ {
			off := row + px*2
			if off < 0 || off+1 >= len(buf) {
				continue
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
}

// Clear fills the whole region with c.
func (d *Region) Clear(c color.RGBA) {
	d.Fill(image.Rect(0, 0, d.r.Dx(), d.r.Dy()), c)
}

// At returns the color stored at a local pixel, expanded to 8 bits per channel.
func (d *Region) At(x, y int) color.RGBA {
	if x < 0 || x >= d.r.Dx() || y < 0 || y >= d.r.Dy() {
		return color.RGBA{}
	}
	buf := d.fb.Buffer()
	off := (d.r.Min.Y+y)*d.fb.StrideBytes() + (d.r.Min.X+x)*2
	if off < 0 || off+1 >= len(buf) {
		return color.RGBA{}
	}
	r, g, b := rgb888From565(uint16(buf[off]) | uint16(buf[off+1])<<8)
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func (d *Region) SetRotation(rotation drivers.Rotation) error {
	_ = rotation
	return nil
}
