package plot

import (
	"math"

	"graphvis/expr"
)

// DefaultExpression is plotted until the user types something else.
const DefaultExpression = "x * x"

// State is the pointer state of an Engine.
type State uint8

const (
	StateIdle State = iota
	StateDragging
)

func (s State) String() string {
	if s == StateDragging {
		return "dragging"
	}
	return "idle"
}

// Engine owns the viewport and the active expression and turns both into frames.
type Engine struct {
	view Viewport
	src  string

	state   State
	anchorX float64
	anchorY float64

	dirty   bool
	lastErr error
}

// New returns an engine with the default viewport and expression. It starts dirty so
// the first host step draws a frame.
func New() *Engine {
	return &Engine{
		view:  DefaultViewport(),
		src:   DefaultExpression,
		dirty: true,
	}
}

// SetExpression replaces the plotted formula. It is not validated; text that does not
// evaluate plots as zero.
func (e *Engine) SetExpression(text string) {
	e.src = text
	e.dirty = true
}

// Expression returns the active formula as typed.
func (e *Engine) Expression() string { return e.src }

// NormalizeExpression applies the shorthand rewrites of expr.Normalize.
func (e *Engine) NormalizeExpression(text string) string { return expr.Normalize(text) }

// Viewport returns the current view.
func (e *Engine) Viewport() Viewport { return e.view }

// SetViewport replaces the view. The scale is clamped and non-finite offsets become 0.
func (e *Engine) SetViewport(v Viewport) {
	v = v.Clamped()
	if !isFinite(v.OffsetX) {
		v.OffsetX = 0
	}
	if !isFinite(v.OffsetY) {
		v.OffsetY = 0
	}
	e.view = v
	e.dirty = true
}

// State reports whether a drag is in progress.
func (e *Engine) State() State { return e.state }

// NeedsRedraw reports whether anything changed since the last RenderFrame.
func (e *Engine) NeedsRedraw() bool { return e.dirty }

// LastError returns the first evaluation failure of the most recent frame, or nil.
func (e *Engine) LastError() error { return e.lastErr }

func (e *Engine) compile() (*expr.Func, error) {
	return expr.Compile(expr.Normalize(e.src))
}

// TryEvaluate evaluates the active expression at x and reports failures.
func (e *Engine) TryEvaluate(x float64) (float64, error) {
	f, err := e.compile()
	if err != nil {
		return 0, err
	}
	return f.Eval(x)
}

// Evaluate evaluates the active expression at x. Any failure yields 0; NaN and Inf
// results are returned as they are.
func (e *Engine) Evaluate(x float64) float64 {
	y, err := e.TryEvaluate(x)
	if err != nil {
		return 0
	}
	return y
}

// PixelToWorld maps a surface column to world x under the current view.
func (e *Engine) PixelToWorld(px float64) float64 { return e.view.PixelToWorld(px) }

// WorldToPixel maps a world point to surface coordinates under the current view.
func (e *Engine) WorldToPixel(x, y float64) (px, py float64) { return e.view.WorldToPixel(x, y) }

// DragStart begins a pan gesture at surface position (px, py).
func (e *Engine) DragStart(px, py float64) {
	e.state = StateDragging
	e.anchorX = px - e.view.OffsetX
	e.anchorY = py - e.view.OffsetY
}

// DragMove repositions the view so the point grabbed at DragStart follows the pointer.
// The offset is absolute relative to the anchor, not accumulated per move.
func (e *Engine) DragMove(px, py float64) {
	if e.state != StateDragging {
		return
	}
	e.view.OffsetX = px - e.anchorX
	e.view.OffsetY = py - e.anchorY
	e.dirty = true
}

// DragEnd finishes a pan gesture.
func (e *Engine) DragEnd() { e.state = StateIdle }

// PointerLeave is called when the pointer leaves the surface; it ends any drag.
func (e *Engine) PointerLeave() { e.state = StateIdle }

func (e *Engine) ZoomIn() {
	e.view = e.view.zoomedIn()
	e.dirty = true
}

func (e *Engine) ZoomOut() {
	e.view = e.view.zoomedOut()
	e.dirty = true
}

// Wheel zooms one step per event: dy < 0 (wheel up) zooms in, dy > 0 zooms out.
func (e *Engine) Wheel(dy float64) {
	switch {
	case dy < 0:
		e.ZoomIn()
	case dy > 0:
		e.ZoomOut()
	}
}

// Reset restores the default viewport. The expression is kept.
func (e *Engine) Reset() {
	e.view = DefaultViewport()
	e.dirty = true
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
