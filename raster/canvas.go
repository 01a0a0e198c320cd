// Package raster draws plot.DrawList frames into an RGB565 hal.Framebuffer.
package raster

import (
	"image"
	"image/color"

	"graphvis/hal"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Canvas is a clipped, translated view of a framebuffer. It implements
// drivers.Displayer so tinyfont can draw into it.
type Canvas struct {
	fb     hal.Framebuffer
	origin image.Point
	clip   image.Rectangle
	font   tinyfont.Fonter
}

var _ drivers.Displayer = (*Canvas)(nil)

// New returns a canvas covering the whole framebuffer.
func New(fb hal.Framebuffer) *Canvas {
	return &Canvas{
		fb:   fb,
		clip: image.Rect(0, 0, fb.Width(), fb.Height()),
		font: &proggy.TinySZ8pt7b,
	}
}

// Sub returns a canvas whose (0,0) is r.Min and which never draws outside r.
func (c *Canvas) Sub(r image.Rectangle) *Canvas {
	r = r.Add(c.origin).Intersect(c.clip)
	return &Canvas{fb: c.fb, origin: r.Min, clip: r, font: c.font}
}

// Bounds returns the canvas area in its own coordinates.
func (c *Canvas) Bounds() image.Rectangle {
	return c.clip.Sub(c.origin)
}

// Size implements drivers.Displayer.
func (c *Canvas) Size() (x, y int16) {
	b := c.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

// SetPixel implements drivers.Displayer. Pixels outside the canvas are dropped.
func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	c.set(int(x), int(y), hal.PackRGB565(col))
}

// Display implements drivers.Displayer by presenting the framebuffer.
func (c *Canvas) Display() error {
	return c.fb.Present()
}

func (c *Canvas) set(x, y int, pixel hal.RGB565) {
	if c.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	px := x + c.origin.X
	py := y + c.origin.Y
	if !(image.Point{X: px, Y: py}).In(c.clip) {
		return
	}
	buf := c.fb.Buffer()
	off := py*c.fb.StrideBytes() + px*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

// FillRect fills r, given in canvas coordinates.
func (c *Canvas) FillRect(r image.Rectangle, col color.RGBA) {
	r = r.Add(c.origin).Intersect(c.clip)
	if r.Empty() || c.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	pixel := hal.PackRGB565(col)
	lo := byte(pixel)
	hi := byte(pixel >> 8)

	buf := c.fb.Buffer()
	stride := c.fb.StrideBytes()
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

// Fill fills the whole canvas.
func (c *Canvas) Fill(col color.RGBA) {
	c.FillRect(c.Bounds(), col)
}

// WriteText draws s with its baseline starting at (x, y).
func (c *Canvas) WriteText(x, y int, s string, col color.RGBA) {
	tinyfont.WriteLine(c, c.font, int16(clampInt(x, -1<<14, 1<<14)), int16(clampInt(y, -1<<14, 1<<14)), s, col)
}

// TextWidth returns the advance width of s in pixels.
func (c *Canvas) TextWidth(s string) int {
	_, outbox := tinyfont.LineWidth(c.font, s)
	return int(outbox)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
