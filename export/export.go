// Package export writes the visible curve of an engine as a static chart using
// gonum.org/v1/plot. Unlike raster frames, the output has real axes and can be vector
// (SVG, PDF).
package export

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"path/filepath"
	"strings"

	"graphvis/plot"

	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var ErrFormat = errors.New("unsupported export format")

// Formats lists the accepted format names (file extensions without the dot).
var Formats = []string{"png", "svg", "pdf"}

type Options struct {
	// Title is drawn above the chart; empty uses "f(x) = <expression>".
	Title string
	// Width and Height default to 8in × 4in, the surface aspect ratio.
	Width, Height vg.Length
}

func (o Options) withDefaults(e *plot.Engine) Options {
	if o.Title == "" {
		o.Title = "f(x) = " + e.Expression()
	}
	if o.Width <= 0 {
		o.Width = 8 * vg.Inch
	}
	if o.Height <= 0 {
		o.Height = 4 * vg.Inch
	}
	return o
}

// FormatFromPath returns the format implied by the file extension of path.
func FormatFromPath(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	for _, f := range Formats {
		if ext == f {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrFormat, filepath.Ext(path))
}

// Export renders e into the file at path. The format follows the extension.
func Export(e *plot.Engine, path string, opt Options) error {
	if _, err := FormatFromPath(path); err != nil {
		return err
	}
	opt = opt.withDefaults(e)
	p, err := build(e, opt)
	if err != nil {
		return err
	}
	return p.Save(opt.Width, opt.Height, path)
}

// WriteTo renders e in the given format to w.
func WriteTo(w io.Writer, e *plot.Engine, format string, opt Options) error {
	format, err := FormatFromPath("." + format)
	if err != nil {
		return err
	}
	opt = opt.withDefaults(e)
	p, err := build(e, opt)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(opt.Width, opt.Height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

func build(e *plot.Engine, opt Options) (*gplot.Plot, error) {
	xMin, xMax, yMin, yMax := e.Viewport().Bounds()

	p := gplot.New()
	p.Title.Text = opt.Title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	grid := plotter.NewGrid()
	grid.Vertical.Color = gridColor
	grid.Horizontal.Color = gridColor
	p.Add(grid)

	axisX, err := segment(xMin, 0, xMax, 0)
	if err != nil {
		return nil, err
	}
	axisY, err := segment(0, yMin, 0, yMax)
	if err != nil {
		return nil, err
	}
	p.Add(axisX, axisY)

	for _, run := range finiteRuns(e) {
		l, err := plotter.NewLine(run)
		if err != nil {
			return nil, err
		}
		l.Color = plot.CurveColor()
		l.Width = vg.Points(1.5)
		p.Add(l)
	}

	// Add widens the axes to each plotter's data range; pin them to the view last.
	p.X.Min, p.X.Max = xMin, xMax
	p.Y.Min, p.Y.Max = yMin, yMax
	return p, nil
}

var gridColor = color.RGBA{R: 0xE5, G: 0xE7, B: 0xEB, A: 0xFF}

func segment(x0, y0, x1, y1 float64) (*plotter.Line, error) {
	l, err := plotter.NewLine(plotter.XYs{{X: x0, Y: y0}, {X: x1, Y: y1}})
	if err != nil {
		return nil, err
	}
	l.Color = color.Black
	l.Width = vg.Points(1)
	return l, nil
}

// finiteRuns splits the curve at non-finite samples; plotter rejects NaN and Inf.
func finiteRuns(e *plot.Engine) []plotter.XYs {
	var runs []plotter.XYs
	var cur plotter.XYs
	for s := range e.Curve() {
		if math.IsNaN(s.Y) || math.IsInf(s.Y, 0) {
			if len(cur) > 1 {
				runs = append(runs, cur)
			}
			cur = nil
			continue
		}
		cur = append(cur, plotter.XY{X: s.X, Y: s.Y})
	}
	if len(cur) > 1 {
		runs = append(runs, cur)
	}
	return runs
}
