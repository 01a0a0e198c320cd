package raster

import (
	"image/color"
	"math"

	"graphvis/plot"
)

// Draw rasterizes dl in order. Segments touching a non-finite point are skipped,
// which splits polylines around undefined samples.
func (c *Canvas) Draw(dl plot.DrawList) {
	for _, op := range dl {
		switch op.Kind {
		case plot.OpClear:
			c.Fill(op.Style.Color)
		case plot.OpLine:
			if len(op.Points) >= 2 {
				c.Line(op.Points[0], op.Points[1], op.Style)
			}
		case plot.OpPolyline:
			c.Polyline(op.Points, op.Style)
		case plot.OpText:
			if len(op.Points) == 0 || !finitePoint(op.Points[0]) {
				continue
			}
			p := op.Points[0]
			c.WriteText(int(math.Round(p.X)), int(math.Round(p.Y)), op.Text, op.Style.Color)
		}
	}
}

// Polyline strokes consecutive points.
func (c *Canvas) Polyline(pts []plot.Point, st plot.Style) {
	for i := 1; i < len(pts); i++ {
		c.Line(pts[i-1], pts[i], st)
	}
}

// Line strokes the segment a-b clipped to the canvas.
func (c *Canvas) Line(a, b plot.Point, st plot.Style) {
	if !finitePoint(a) || !finitePoint(b) {
		return
	}
	bounds := c.Bounds()
	pad := float64(st.Width)
	x0, y0, x1, y1, ok := clipSegment(a.X, a.Y, b.X, b.Y,
		float64(bounds.Min.X)-pad, float64(bounds.Min.Y)-pad,
		float64(bounds.Max.X-1)+pad, float64(bounds.Max.Y-1)+pad)
	if !ok {
		return
	}
	c.stroke(roundInt(x0), roundInt(y0), roundInt(x1), roundInt(y1), st.Color, st.Width)
}

func finitePoint(p plot.Point) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

func roundInt(v float64) int {
	return int(math.Round(v))
}

// clipSegment clips a segment to the closed rectangle [xmin,xmax]×[ymin,ymax]
// (Liang–Barsky). A clipped endpoint is placed exactly on the edge that cut it.
func clipSegment(x0, y0, x1, y1, xmin, ymin, xmax, ymax float64) (cx0, cy0, cx1, cy1 float64, ok bool) {
	dx := x1 - x0
	dy := y1 - y0
	t0, t1 := 0.0, 1.0
	in, out := -1, -1

	edges := [4]struct{ p, q, v float64 }{
		{-dx, x0 - xmin, xmin},
		{dx, xmax - x0, xmax},
		{-dy, y0 - ymin, ymin},
		{dy, ymax - y0, ymax},
	}
	for i, e := range edges {
		if e.p == 0 {
			if e.q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := e.q / e.p
		if e.p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			if r > t0 {
				t0, in = r, i
			}
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			if r < t1 {
				t1, out = r, i
			}
		}
	}

	edgeAt := func(i int) float64 {
		if i < 0 {
			return 0
		}
		return edges[i].v
	}
	cx0, cy0 = clipPoint(x0, y0, x1, y1, t0, in, edgeAt(in))
	cx1, cy1 = clipPoint(x0, y0, x1, y1, t1, out, edgeAt(out))
	cx0 = clampFloat(cx0, xmin, xmax)
	cy0 = clampFloat(cy0, ymin, ymax)
	cx1 = clampFloat(cx1, xmin, xmax)
	cy1 = clampFloat(cy1, ymin, ymax)
	return cx0, cy0, cx1, cy1, true
}

// clipPoint returns the point at parameter t. edge is the index of the cutting edge
// (x edges 0-1, y edges 2-3) or -1 when t was not clipped, with v its coordinate.
func clipPoint(x0, y0, x1, y1, t float64, edge int, v float64) (x, y float64) {
	switch {
	case edge < 0 && t == 0:
		return x0, y0
	case edge < 0:
		return x1, y1
	case edge < 2:
		return v, y0 + t*(y1-y0)
	default:
		return x0 + t*(x1-x0), v
	}
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// stroke draws a Bresenham line. Widths above one repeat the line shifted across
// its minor axis.
func (c *Canvas) stroke(x0, y0, x1, y1 int, col color.RGBA, width int) {
	if width < 1 {
		width = 1
	}
	steep := absInt(y1-y0) > absInt(x1-x0)
	lo := -(width - 1) / 2
	for k := lo; k < lo+width; k++ {
		if steep {
			c.bresenham(x0+k, y0, x1+k, y1, col)
		} else {
			c.bresenham(x0, y0+k, x1, y1+k, col)
		}
	}
}

func (c *Canvas) bresenham(x0, y0, x1, y1 int, col color.RGBA) {
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		c.SetPixel(int16(x0), int16(y0), col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
