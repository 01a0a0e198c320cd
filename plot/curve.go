package plot

import (
	"iter"

	"graphvis/expr"
)

// Sample is one evaluated column of the curve.
type Sample struct {
	// PixelX, PixelY is the surface position of the sample.
	PixelX, PixelY float64
	// X, Y is the world point; Y is 0 when evaluation failed.
	X, Y float64
	// Err is the evaluation failure that forced Y to 0, if any.
	Err error
}

// Curve returns the samples of the active expression, one per pixel column from 0 to
// Width-1. The sequence is computed lazily and recomputed on every range.
func (e *Engine) Curve() iter.Seq[Sample] {
	view := e.view
	src := e.src
	return func(yield func(Sample) bool) {
		f, compileErr := expr.Compile(expr.Normalize(src))
		for col := 0; col < Width; col++ {
			s := Sample{PixelX: float64(col), X: view.PixelToWorld(float64(col))}
			if compileErr != nil {
				s.Err = compileErr
			} else if y, err := f.Eval(s.X); err != nil {
				s.Err = err
			} else {
				s.Y = y
			}
			_, s.PixelY = view.WorldToPixel(s.X, s.Y)
			if !yield(s) {
				return
			}
		}
	}
}
