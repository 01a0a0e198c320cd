// Package hal is the boundary between the plotter and its host: a pixel buffer to draw
// into, pointer and keyboard events, and a tick clock. Host implementations live in the
// host_*.go files.
package hal

import "errors"

var ErrNotImplemented = errors.New("not implemented")

// Logger receives complete log lines without the trailing newline.
type Logger interface {
	WriteLineString(s string)
}

type PixelFormat uint8

const (
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is raw pixel memory. Present publishes the buffer to the host; callers draw
// first and present once per frame.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	Present() error
}

type Display interface {
	Framebuffer() Framebuffer
}

// KeyCode names the non-printing keys the shell reacts to.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
	KeyDelete
	KeyHome
	KeyEnd
	KeyF1
	KeyF2
	KeyF3
)

// KeyEvent is a key press or release. Typed text arrives as Code == KeyUnknown with Rune
// set and Press true.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

type Keyboard interface {
	Events() <-chan KeyEvent
}

type PointerKind uint8

const (
	PointerDown PointerKind = iota + 1
	PointerMove
	PointerUp
	// PointerLeave is sent once when the pointer exits the framebuffer.
	PointerLeave
	PointerWheel
)

// PointerEvent carries framebuffer pixel coordinates. WheelY is negative when the wheel
// turns away from the user, as in the DOM.
type PointerEvent struct {
	Kind   PointerKind
	X, Y   int
	WheelY float64
}

type Pointer interface {
	Events() <-chan PointerEvent
}

type Input interface {
	Keyboard() Keyboard
	Pointer() Pointer
}

// Time delivers a monotonically increasing tick sequence, one tick per TickDuration on
// the host. Slow consumers lose ticks, never order.
type Time interface {
	Ticks() <-chan uint64
}

// HAL bundles the host services. Any of them may be nil on a minimal host.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Time() Time
}
