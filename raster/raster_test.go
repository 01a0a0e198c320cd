package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"graphvis/hal"
	"graphvis/plot"
)

var (
	white = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	black = color.RGBA{A: 0xFF}
	red   = color.RGBA{R: 0xFF, A: 0xFF}
)

func pixelAt(fb hal.Framebuffer, x, y int) hal.RGB565 {
	return hal.PixelAt(fb, x, y)
}

func TestClipSegment(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 float64
		want           [4]float64
		ok             bool
	}{
		{"inside", 1, 1, 5, 5, [4]float64{1, 1, 5, 5}, true},
		{"horizontal through", -10, 5, 20, 5, [4]float64{0, 5, 10, 5}, true},
		{"vertical through", 3, -1e9, 3, 1e9, [4]float64{3, 0, 3, 10}, true},
		{"horizontal far right", -1e12, 7, 1e12, 7, [4]float64{0, 7, 10, 7}, true},
		{"vertical reversed", 4, 1e9, 4, -1e9, [4]float64{4, 10, 4, 0}, true},
		{"outside left", -5, 0, -1, 10, [4]float64{}, false},
		{"outside above parallel", 0, -3, 10, -3, [4]float64{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x0, y0, x1, y1, ok := clipSegment(tt.x0, tt.y0, tt.x1, tt.y1, 0, 0, 10, 10)
			if ok != tt.ok {
				t.Fatalf("ok=%v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			got := [4]float64{x0, y0, x1, y1}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestDrawClearAndLine(t *testing.T) {
	fb := hal.NewFramebuffer(20, 10)
	c := New(fb)
	c.Draw(plot.DrawList{
		{Kind: plot.OpClear, Style: plot.Style{Color: white}},
		{Kind: plot.OpLine, Points: []plot.Point{{X: -5, Y: 4}, {X: 100, Y: 4}}, Style: plot.Style{Color: black, Width: 1}},
	})

	wantWhite := hal.PackRGB565(white)
	if got := pixelAt(fb, 0, 0); got != wantWhite {
		t.Fatalf("background=%#04x, want %#04x", got, wantWhite)
	}
	for x := 0; x < 20; x++ {
		if got := pixelAt(fb, x, 4); got != 0 {
			t.Fatalf("pixel (%d,4)=%#04x, want black", x, got)
		}
	}
	if got := pixelAt(fb, 5, 3); got != wantWhite {
		t.Fatalf("width 1 line bled into row 3")
	}
}

func TestThickLine(t *testing.T) {
	fb := hal.NewFramebuffer(10, 10)
	c := New(fb)
	c.Fill(white)
	c.Line(plot.Point{X: 5, Y: 0}, plot.Point{X: 5, Y: 9}, plot.Style{Color: black, Width: 2})

	for _, x := range []int{5, 6} {
		if got := pixelAt(fb, x, 5); got != 0 {
			t.Fatalf("column %d not stroked", x)
		}
	}
	if got := pixelAt(fb, 4, 5); got == 0 {
		t.Fatalf("column 4 unexpectedly stroked")
	}
}

func TestPolylineSkipsNonFinite(t *testing.T) {
	fb := hal.NewFramebuffer(10, 10)
	c := New(fb)
	c.Fill(white)
	c.Polyline([]plot.Point{
		{X: 0, Y: 2}, {X: 3, Y: 2},
		{X: math.NaN(), Y: math.NaN()},
		{X: 6, Y: 2}, {X: 9, Y: 2},
	}, plot.Style{Color: black, Width: 1})

	for x := 0; x <= 3; x++ {
		if pixelAt(fb, x, 2) != 0 {
			t.Fatalf("pixel %d missing", x)
		}
	}
	if pixelAt(fb, 4, 2) == 0 || pixelAt(fb, 5, 2) == 0 {
		t.Fatalf("segment across NaN was drawn")
	}
	if pixelAt(fb, 7, 2) != 0 {
		t.Fatalf("segment after NaN missing")
	}
}

func TestSubCanvasTranslatesAndClips(t *testing.T) {
	fb := hal.NewFramebuffer(10, 10)
	root := New(fb)
	root.Fill(white)

	sub := root.Sub(image.Rect(0, 5, 10, 10))
	if w, h := sub.Size(); w != 10 || h != 5 {
		t.Fatalf("Size()=(%d,%d), want (10,5)", w, h)
	}
	sub.Fill(red)

	wantRed := hal.PackRGB565(red)
	if pixelAt(fb, 0, 4) == wantRed {
		t.Fatalf("sub canvas painted outside its rectangle")
	}
	if pixelAt(fb, 0, 5) != wantRed || pixelAt(fb, 9, 9) != wantRed {
		t.Fatalf("sub canvas not filled")
	}

	sub.SetPixel(-1, -1, black)
	if pixelAt(fb, 0, 4) == 0 {
		t.Fatalf("SetPixel escaped the clip rectangle")
	}
}

func TestWriteTextDrawsGlyphs(t *testing.T) {
	fb := hal.NewFramebuffer(40, 20)
	c := New(fb)
	c.Fill(white)
	c.WriteText(2, 12, "10", black)

	inked := 0
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			if pixelAt(fb, x, y) == 0 {
				inked++
			}
		}
	}
	if inked == 0 {
		t.Fatalf("no glyph pixels drawn")
	}
	if w := c.TextWidth("10"); w <= 0 {
		t.Fatalf("TextWidth=%d", w)
	}
}

func TestWritePNGDefaultFrame(t *testing.T) {
	e := plot.New()
	var buf bytes.Buffer
	if err := WritePNG(&buf, e.RenderFrame()); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != plot.Width || b.Dy() != plot.Height {
		t.Fatalf("bounds=%v", b)
	}
	// The curve passes through the origin at the surface center.
	r, g, b, _ := img.At(plot.Width/2, plot.Height/2).RGBA()
	if r>>8 == 0xFF && g>>8 == 0xFF && b>>8 == 0xFF {
		t.Fatalf("center pixel is background")
	}
}
