package hal

import "image"

func rgb565(r, g, b uint8) uint16 {
	rr := uint16(r>>3) & 0x1F
	gg := uint16(g>>2) & 0x3F
	bb := uint16(b>>3) & 0x1F
	return (rr << 11) | (gg << 5) | bb
}

func rgb888From565(p uint16) (r, g, b uint8) {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F

	r = uint8((rr * 255) / 31)
	g = uint8((gg * 255) / 63)
	b = uint8((bb * 255) / 31)
	return r, g, b
}

// Snapshot converts an RGB565 framebuffer into dst, reallocating it when the
// size differs. It returns nil for other formats.
func Snapshot(fb Framebuffer, dst *image.RGBA) *image.RGBA {
	if fb == nil || fb.Format() != PixelFormatRGB565 {
		return nil
	}
	w, h := fb.Width(), fb.Height()
	if dst == nil || dst.Bounds().Dx() != w || dst.Bounds().Dy() != h {
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
	}

	var src []byte
	if s, ok := fb.(interface{ snapshotRGB565([]byte) }); ok {
		src = make([]byte, len(fb.Buffer()))
		s.snapshotRGB565(src)
	} else {
		src = fb.Buffer()
	}

	stride := fb.StrideBytes()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*stride + x*2
			if i+1 >= len(src) {
				continue
			}
			r, g, b := rgb888From565(uint16(src[i]) | uint16(src[i+1])<<8)
			j := dst.PixOffset(x, y)
			dst.Pix[j+0] = r
			dst.Pix[j+1] = g
			dst.Pix[j+2] = b
			dst.Pix[j+3] = 0xFF
		}
	}
	return dst
}
