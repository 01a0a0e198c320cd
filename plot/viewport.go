package plot

import "math"

// Surface size in logical pixels.
const (
	Width  = 800
	Height = 400
)

const (
	DefaultScale = 20.0
	MinScale     = 10.0
	MaxScale     = 100.0
	ZoomFactor   = 1.2
)

// Viewport maps world coordinates to surface pixels. Scale is in pixels per unit.
type Viewport struct {
	Scale   float64 `json:"scale"`
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
}

// DefaultViewport is the view restored by Reset.
func DefaultViewport() Viewport {
	return Viewport{Scale: DefaultScale}
}

// Clamped returns v with Scale forced into [MinScale, MaxScale]. A NaN scale becomes the
// default.
func (v Viewport) Clamped() Viewport {
	v.Scale = clampScale(v.Scale)
	return v
}

func clampScale(s float64) float64 {
	switch {
	case math.IsNaN(s):
		return DefaultScale
	case s < MinScale:
		return MinScale
	case s > MaxScale:
		return MaxScale
	default:
		return s
	}
}

func (v Viewport) zoomedIn() Viewport {
	v.Scale = clampScale(v.Scale * ZoomFactor)
	return v
}

func (v Viewport) zoomedOut() Viewport {
	v.Scale = clampScale(v.Scale / ZoomFactor)
	return v
}

// PixelToWorld maps a surface column to world x.
func (v Viewport) PixelToWorld(px float64) float64 {
	return (px - Width/2 - v.OffsetX) / v.Scale
}

// PixelToWorldY maps a surface row to world y.
func (v Viewport) PixelToWorldY(py float64) float64 {
	return (Height/2 + v.OffsetY - py) / v.Scale
}

// WorldToPixel maps a world point to surface coordinates. y grows upward in the world and
// downward on the surface.
func (v Viewport) WorldToPixel(x, y float64) (px, py float64) {
	px = Width/2 + x*v.Scale + v.OffsetX
	py = Height/2 - y*v.Scale + v.OffsetY
	return px, py
}

// Bounds returns the world rectangle currently visible on the surface.
func (v Viewport) Bounds() (xMin, xMax, yMin, yMax float64) {
	return v.PixelToWorld(0), v.PixelToWorld(Width), v.PixelToWorldY(Height), v.PixelToWorldY(0)
}
