package plot

import (
	"encoding/json"
	"fmt"
	"image/color"
	"math"
)

// OpKind identifies a drawing instruction.
type OpKind uint8

const (
	// OpClear fills the whole surface with Style.Color.
	OpClear OpKind = iota + 1
	// OpLine strokes the segment Points[0]-Points[1].
	OpLine
	// OpPolyline strokes consecutive Points as one connected path.
	OpPolyline
	// OpText draws Text with its baseline-left corner at Points[0].
	OpText
)

func (k OpKind) String() string {
	switch k {
	case OpClear:
		return "clear"
	case OpLine:
		return "line"
	case OpPolyline:
		return "polyline"
	case OpText:
		return "text"
	default:
		return fmt.Sprintf("OpKind(%d)", uint8(k))
	}
}

func (k OpKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *OpKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "clear":
		*k = OpClear
	case "line":
		*k = OpLine
	case "polyline":
		*k = OpPolyline
	case "text":
		*k = OpText
	default:
		return fmt.Errorf("plot: unknown op kind %q", b)
	}
	return nil
}

// Point is a surface position in pixels. Coordinates may be non-finite when a sample
// evaluated to NaN or Inf.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Style is the stroke or fill of an Op. Width is in pixels.
type Style struct {
	Color color.RGBA `json:"-"`
	Width int        `json:"width,omitempty"`
}

type styleJSON struct {
	Color string `json:"color"`
	Width int    `json:"width,omitempty"`
}

func (s Style) MarshalJSON() ([]byte, error) {
	return json.Marshal(styleJSON{Color: hexColor(s.Color), Width: s.Width})
}

func (s *Style) UnmarshalJSON(b []byte) error {
	var v styleJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	c, err := parseHexColor(v.Color)
	if err != nil {
		return err
	}
	s.Color = c
	s.Width = v.Width
	return nil
}

// Op is one drawing instruction.
type Op struct {
	Kind   OpKind  `json:"kind"`
	Points []Point `json:"points,omitempty"`
	Text   string  `json:"text,omitempty"`
	Style  Style   `json:"style"`
}

// DrawList is an ordered sequence of drawing instructions; later ops paint over earlier ones.
type DrawList []Op

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func parseHexColor(s string) (color.RGBA, error) {
	var c color.RGBA
	if len(s) != 7 || s[0] != '#' {
		return c, fmt.Errorf("plot: bad color %q", s)
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return c, fmt.Errorf("plot: bad color %q: %w", s, err)
	}
	c.A = 0xFF
	return c, nil
}

var (
	colorBackground = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	colorGrid       = color.RGBA{R: 0xE5, G: 0xE7, B: 0xEB, A: 0xFF}
	colorAxis       = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}
	colorCurve      = color.RGBA{R: 0x3B, G: 0x82, B: 0xF6, A: 0xFF}
)

var (
	styleBackground = Style{Color: colorBackground}
	styleGrid       = Style{Color: colorGrid, Width: 1}
	styleAxis       = Style{Color: colorAxis, Width: 2}
	styleLabel      = Style{Color: colorAxis}
	styleCurve      = Style{Color: colorCurve, Width: 2}
)

// CurveColor is the stroke color of the function curve.
func CurveColor() color.RGBA { return colorCurve }

type pointJSON struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

// MarshalJSON encodes non-finite coordinates as null.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(pointJSON{X: finiteOrNil(p.X), Y: finiteOrNil(p.Y)})
}

// UnmarshalJSON decodes null coordinates as NaN.
func (p *Point) UnmarshalJSON(b []byte) error {
	var v pointJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	p.X, p.Y = math.NaN(), math.NaN()
	if v.X != nil {
		p.X = *v.X
	}
	if v.Y != nil {
		p.Y = *v.Y
	}
	return nil
}

func finiteOrNil(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
