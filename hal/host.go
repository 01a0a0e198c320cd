package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Default host framebuffer size.
const (
	DefaultWidth  = 800
	DefaultHeight = 424
)

type hostHAL struct {
	logger  *hostLogger
	fb      *memFramebuffer
	kbd     *hostKeyboard
	pointer *hostPointer
	t       *hostTime
}

// New returns a host HAL with a width×height framebuffer. Non-positive sizes fall back to
// DefaultWidth×DefaultHeight.
func New(width, height int) HAL {
	return newHost(width, height, os.Stdout)
}

func newHost(width, height int, logOut io.Writer) *hostHAL {
	if width <= 0 || height <= 0 {
		width, height = DefaultWidth, DefaultHeight
	}
	return &hostHAL{
		logger:  &hostLogger{w: logOut},
		fb:      newMemFramebuffer(width, height),
		kbd:     newHostKeyboard(),
		pointer: newHostPointer(),
		t:       newHostTime(),
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd, pointer: h.pointer} }
func (h *hostHAL) Time() Time       { return h.t }

type hostDisplay struct {
	fb *memFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd     *hostKeyboard
	pointer *hostPointer
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }
func (in hostInput) Pointer() Pointer   { return in.pointer }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

func (k *hostKeyboard) emit(ev KeyEvent) {
	select {
	case k.ch <- ev:
	default:
	}
}

type hostPointer struct {
	ch chan PointerEvent

	inside bool
	down   bool
	lastX  int
	lastY  int
}

func newHostPointer() *hostPointer {
	return &hostPointer{ch: make(chan PointerEvent, 256)}
}

func (p *hostPointer) Events() <-chan PointerEvent { return p.ch }

func (p *hostPointer) emit(ev PointerEvent) {
	select {
	case p.ch <- ev:
	default:
	}
}

// track turns sampled pointer state into events. Moves are only reported when the
// position changes; leaving the w×h area reports PointerLeave once.
func (p *hostPointer) track(x, y, w, h int, pressed bool, wheelY float64) {
	inside := x >= 0 && y >= 0 && x < w && y < h
	if !inside {
		if p.inside {
			p.emit(PointerEvent{Kind: PointerLeave, X: x, Y: y})
		}
		p.inside = false
		p.down = false
		return
	}
	if !p.inside || x != p.lastX || y != p.lastY {
		p.emit(PointerEvent{Kind: PointerMove, X: x, Y: y})
	}
	p.inside = true
	p.lastX, p.lastY = x, y

	if pressed && !p.down {
		p.emit(PointerEvent{Kind: PointerDown, X: x, Y: y})
	}
	if !pressed && p.down {
		p.emit(PointerEvent{Kind: PointerUp, X: x, Y: y})
	}
	p.down = pressed

	if wheelY != 0 {
		p.emit(PointerEvent{Kind: PointerWheel, X: x, Y: y, WheelY: wheelY})
	}
}
