package hal

import "image/color"

// RGB565 is one 16bpp pixel, rrrrrggggggbbbbb. Framebuffers store it little-endian.
type RGB565 uint16

// PackRGB565 truncates 8-bit channels to 5/6/5 bits.
func PackRGB565(c color.RGBA) RGB565 {
	return RGB565(uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3))
}

// RGBA expands p by bit replication, so full-scale channels map back to 0xFF.
func (p RGB565) RGBA() color.RGBA {
	r := uint8(p>>11) & 0x1F
	g := uint8(p>>5) & 0x3F
	b := uint8(p) & 0x1F
	return color.RGBA{
		R: r<<3 | r>>2,
		G: g<<2 | g>>4,
		B: b<<3 | b>>2,
		A: 0xFF,
	}
}

// PixelAt reads the pixel at (x, y); out-of-range reads return 0.
func PixelAt(fb Framebuffer, x, y int) RGB565 {
	off := y*fb.StrideBytes() + x*2
	buf := fb.Buffer()
	if x < 0 || y < 0 || x >= fb.Width() || off+1 >= len(buf) {
		return 0
	}
	return RGB565(buf[off]) | RGB565(buf[off+1])<<8
}

func (p RGB565) put(buf []byte) {
	buf[0] = byte(p)
	buf[1] = byte(p >> 8)
}

// Fill paints every pixel of an RGB565 framebuffer.
func Fill(fb Framebuffer, c color.RGBA) {
	if fb.Format() != PixelFormatRGB565 {
		return
	}
	p := PackRGB565(c)
	buf := fb.Buffer()
	for i := 0; i+1 < len(buf); i += 2 {
		p.put(buf[i:])
	}
}
