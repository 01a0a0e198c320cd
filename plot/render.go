package plot

import (
	"math"
	"strconv"
)

// Tick labels are drawn for these integer world coordinates on both axes.
const (
	tickMin = -10
	tickMax = 10
)

// RenderFrame builds the frame for the current state and clears the dirty flag.
//
// The ops are, in order: background clear, grid, the two axes, x tick labels, y tick
// labels and the curve polyline.
func (e *Engine) RenderFrame() DrawList {
	v := e.view
	out := make(DrawList, 0, 64)
	out = append(out, Op{Kind: OpClear, Style: styleBackground})
	out = appendGrid(out, v)
	out = appendAxes(out, v)
	out = appendTickLabels(out, v)

	e.lastErr = nil
	pts := make([]Point, 0, Width)
	for s := range e.Curve() {
		if s.Err != nil && e.lastErr == nil {
			e.lastErr = s.Err
		}
		pts = append(pts, Point{X: s.PixelX, Y: s.PixelY})
	}
	out = append(out, Op{Kind: OpPolyline, Points: pts, Style: styleCurve})

	e.dirty = false
	return out
}

// appendGrid emits lines Scale pixels apart, phase-aligned with the pan offset. The first
// line may sit left of or above the surface when the offset is negative.
func appendGrid(out DrawList, v Viewport) DrawList {
	for x := math.Mod(v.OffsetX, v.Scale); x < Width; x += v.Scale {
		out = append(out, line(x, 0, x, Height, styleGrid))
	}
	for y := math.Mod(v.OffsetY, v.Scale); y < Height; y += v.Scale {
		out = append(out, line(0, y, Width, y, styleGrid))
	}
	return out
}

func appendAxes(out DrawList, v Viewport) DrawList {
	ox, oy := v.WorldToPixel(0, 0)
	out = append(out, line(0, oy, Width, oy, styleAxis))
	out = append(out, line(ox, 0, ox, Height, styleAxis))
	return out
}

func appendTickLabels(out DrawList, v Viewport) DrawList {
	ox, oy := v.WorldToPixel(0, 0)
	for i := tickMin; i <= tickMax; i++ {
		px, _ := v.WorldToPixel(float64(i), 0)
		out = append(out, text(px-6, oy+20, strconv.Itoa(i)))
	}
	for i := tickMin; i <= tickMax; i++ {
		_, py := v.WorldToPixel(0, float64(i))
		out = append(out, text(ox-20, py+4, strconv.Itoa(i)))
	}
	return out
}

func line(x0, y0, x1, y1 float64, s Style) Op {
	return Op{Kind: OpLine, Points: []Point{{X: x0, Y: y0}, {X: x1, Y: y1}}, Style: s}
}

func text(x, y float64, s string) Op {
	return Op{Kind: OpText, Points: []Point{{X: x, Y: y}}, Text: s, Style: styleLabel}
}
