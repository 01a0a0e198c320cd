// Package app is the interactive plotter shell: a one-line expression field and three
// viewport buttons above the plot surface.
package app

import (
	"image"

	"graphvis/hal"
	"graphvis/internal/logger"
	"graphvis/plot"
	"graphvis/raster"
)

// HeaderHeight is the height of the strip above the plot surface.
const HeaderHeight = 24

// caretBlinkTicks is the caret half-period in host ticks.
const caretBlinkTicks = 500

type Config struct {
	// Expression is the initial formula; empty means plot.DefaultExpression.
	Expression string

	// Logger receives expression and evaluation messages. Nil logs to the HAL logger
	// at info level.
	Logger *logger.Logger
}

type shell struct {
	h   hal.HAL
	log *logger.Logger

	engine *plot.Engine
	fb     hal.Framebuffer
	header *raster.Canvas
	plot   *raster.Canvas

	field  field
	layout layout

	now         uint64
	caretOn     bool
	headerDirty bool
	inPlot      bool
	lastErr     string
}

// New builds the shell and returns its step function. Each step drains pending input and
// redraws whatever changed.
func New(h hal.HAL, cfg Config) func() error {
	s := newShell(h, cfg)
	return s.step
}

func newShell(h hal.HAL, cfg Config) *shell {
	log := cfg.Logger
	if log == nil {
		log = logger.New(h.Logger(), logger.LevelInfo, "plot")
	}

	s := &shell{
		h:           h,
		log:         log,
		engine:      plot.New(),
		caretOn:     true,
		headerDirty: true,
	}
	if cfg.Expression != "" {
		s.engine.SetExpression(cfg.Expression)
	}
	s.field.set(s.engine.Expression())

	if d := h.Display(); d != nil {
		s.fb = d.Framebuffer()
	}
	if s.fb != nil {
		root := raster.New(s.fb)
		w := s.fb.Width()
		s.header = root.Sub(image.Rect(0, 0, w, HeaderHeight))
		s.plot = root.Sub(image.Rect(0, HeaderHeight, plot.Width, HeaderHeight+plot.Height))
		s.layout = newLayout(s.header, w)
	}
	s.log.Info("plotting %q", s.engine.Expression())
	return s
}

func (s *shell) step() error {
	s.drainTicks()
	s.drainKeys()
	s.drainPointer()
	return s.redraw()
}

func (s *shell) drainTicks() {
	t := s.h.Time()
	if t == nil {
		return
	}
	ch := t.Ticks()
	for {
		select {
		case seq := <-ch:
			s.now = seq
		default:
			on := (s.now/caretBlinkTicks)%2 == 0
			if on != s.caretOn {
				s.caretOn = on
				s.headerDirty = true
			}
			return
		}
	}
}

func (s *shell) drainKeys() {
	in := s.h.Input()
	if in == nil || in.Keyboard() == nil {
		return
	}
	ch := in.Keyboard().Events()
	for {
		select {
		case ev := <-ch:
			s.handleKey(ev)
		default:
			return
		}
	}
}

func (s *shell) drainPointer() {
	in := s.h.Input()
	if in == nil || in.Pointer() == nil {
		return
	}
	ch := in.Pointer().Events()
	for {
		select {
		case ev := <-ch:
			s.handlePointer(ev)
		default:
			return
		}
	}
}

func (s *shell) handleKey(ev hal.KeyEvent) {
	if !ev.Press {
		return
	}
	switch ev.Code {
	case hal.KeyF1:
		s.engine.ZoomIn()
		return
	case hal.KeyF2:
		s.engine.ZoomOut()
		return
	case hal.KeyF3:
		s.engine.Reset()
		return
	}
	if s.field.edit(ev) {
		s.headerDirty = true
		if text := s.field.String(); text != s.engine.Expression() {
			s.engine.SetExpression(text)
			s.log.Debug("expression %q", text)
		}
	}
}

func (s *shell) handlePointer(ev hal.PointerEvent) {
	inPlot := ev.Y >= HeaderHeight && ev.Kind != hal.PointerLeave
	if s.inPlot && !inPlot {
		s.engine.PointerLeave()
	}
	s.inPlot = inPlot

	if !inPlot {
		if ev.Kind == hal.PointerDown {
			s.clickHeader(ev.X, ev.Y)
		}
		return
	}

	px := float64(ev.X)
	py := float64(ev.Y - HeaderHeight)
	switch ev.Kind {
	case hal.PointerDown:
		s.engine.DragStart(px, py)
	case hal.PointerMove:
		s.engine.DragMove(px, py)
	case hal.PointerUp:
		s.engine.DragEnd()
	case hal.PointerWheel:
		s.engine.Wheel(ev.WheelY)
	}
}

func (s *shell) clickHeader(x, y int) {
	p := image.Pt(x, y)
	switch {
	case p.In(s.layout.zoomIn):
		s.engine.ZoomIn()
	case p.In(s.layout.zoomOut):
		s.engine.ZoomOut()
	case p.In(s.layout.reset):
		s.engine.Reset()
	case p.In(s.layout.field):
		if s.header != nil {
			s.field.cursor = s.field.caretAt(s.header, x-s.layout.textX())
			s.headerDirty = true
		}
	}
}

func (s *shell) redraw() error {
	if s.fb == nil {
		return nil
	}
	drawn := false
	if s.engine.NeedsRedraw() {
		s.plot.Draw(s.engine.RenderFrame())
		s.reportEvalError()
		drawn = true
	}
	if s.headerDirty {
		s.drawHeader()
		s.headerDirty = false
		drawn = true
	}
	if !drawn {
		return nil
	}
	return s.fb.Present()
}

// reportEvalError logs each distinct evaluation failure once.
func (s *shell) reportEvalError() {
	err := s.engine.LastError()
	if err == nil {
		s.lastErr = ""
		return
	}
	if msg := err.Error(); msg != s.lastErr {
		s.lastErr = msg
		s.log.Warn("evaluate %q: %v", s.engine.Expression(), err)
	}
}
