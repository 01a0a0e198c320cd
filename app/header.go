package app

import (
	"image"
	"image/color"

	"graphvis/raster"
)

var (
	colorHeaderBG    = color.RGBA{R: 0xF3, G: 0xF4, B: 0xF6, A: 0xFF}
	colorFieldBG     = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	colorBorder      = color.RGBA{R: 0x9C, G: 0xA3, B: 0xAF, A: 0xFF}
	colorButtonBG    = color.RGBA{R: 0xE5, G: 0xE7, B: 0xEB, A: 0xFF}
	colorText        = color.RGBA{R: 0x11, G: 0x18, B: 0x27, A: 0xFF}
	colorPlaceholder = color.RGBA{R: 0x9C, G: 0xA3, B: 0xAF, A: 0xFF}
)

const (
	fieldLabel  = "f(x) ="
	placeholder = "e.g. sin(x), x^2, Math.sqrt(x)"

	buttonW   = 28
	buttonGap = 4
	pad       = 4
	baselineY = 16
)

// layout holds the header hit boxes in framebuffer coordinates.
type layout struct {
	labelX  int
	field   image.Rectangle
	zoomIn  image.Rectangle
	zoomOut image.Rectangle
	reset   image.Rectangle
}

func newLayout(c *raster.Canvas, width int) layout {
	var l layout
	l.labelX = pad + 2
	button := func(i int) image.Rectangle {
		x := width - pad - (3-i)*buttonW - (2-i)*buttonGap
		return image.Rect(x, pad, x+buttonW, HeaderHeight-pad)
	}
	l.zoomIn = button(0)
	l.zoomOut = button(1)
	l.reset = button(2)

	fieldX := l.labelX + c.TextWidth(fieldLabel) + 2*pad
	l.field = image.Rect(fieldX, 2, l.zoomIn.Min.X-2*pad, HeaderHeight-2)
	return l
}

func (l layout) textX() int { return l.field.Min.X + pad }

func (s *shell) drawHeader() {
	c := s.header
	if c == nil {
		return
	}
	c.Fill(colorHeaderBG)
	c.WriteText(s.layout.labelX, baselineY, fieldLabel, colorText)

	fr := s.layout.field
	c.FillRect(fr, colorFieldBG)
	strokeRect(c, fr, colorBorder)

	inner := fr.Dx() - 2*pad
	fc := c.Sub(fr.Inset(1))
	textX := s.layout.textX() - fr.Min.X - 1
	textY := baselineY - fr.Min.Y - 1
	caretX := textX
	if len(s.field.input) == 0 {
		fc.WriteText(textX, textY, placeholder, colorPlaceholder)
	} else {
		start := s.field.visibleFrom(c, inner)
		fc.WriteText(textX, textY, string(s.field.input[start:]), colorText)
		caretX += c.TextWidth(string(s.field.input[start:s.field.cursor]))
	}
	if s.caretOn {
		fc.FillRect(image.Rect(caretX, 2, caretX+1, fr.Dy()-4), colorText)
	}

	drawButton(c, s.layout.zoomIn, "+")
	drawButton(c, s.layout.zoomOut, "-")
	drawButton(c, s.layout.reset, "R")
}

func drawButton(c *raster.Canvas, r image.Rectangle, label string) {
	c.FillRect(r, colorButtonBG)
	strokeRect(c, r, colorBorder)
	x := r.Min.X + (r.Dx()-c.TextWidth(label))/2
	c.WriteText(x, baselineY-1, label, colorText)
}

func strokeRect(c *raster.Canvas, r image.Rectangle, col color.RGBA) {
	c.FillRect(image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), col)
	c.FillRect(image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), col)
	c.FillRect(image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), col)
	c.FillRect(image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), col)
}
