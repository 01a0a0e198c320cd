package app

import (
	"unicode"

	"graphvis/hal"
	"graphvis/raster"
)

// field is a single-line text editor with a rune cursor.
type field struct {
	input  []rune
	cursor int
}

func (f *field) set(s string) {
	f.input = []rune(s)
	f.cursor = len(f.input)
}

func (f *field) String() string { return string(f.input) }

// edit applies ev and reports whether the text or cursor changed.
func (f *field) edit(ev hal.KeyEvent) bool {
	switch ev.Code {
	case hal.KeyBackspace:
		return f.backspace()
	case hal.KeyDelete:
		return f.deleteForward()
	case hal.KeyLeft:
		if f.cursor > 0 {
			f.cursor--
			return true
		}
	case hal.KeyRight:
		if f.cursor < len(f.input) {
			f.cursor++
			return true
		}
	case hal.KeyHome:
		if f.cursor != 0 {
			f.cursor = 0
			return true
		}
	case hal.KeyEnd:
		if f.cursor != len(f.input) {
			f.cursor = len(f.input)
			return true
		}
	case hal.KeyUnknown:
		if ev.Rune != 0 && unicode.IsPrint(ev.Rune) {
			return f.insert(ev.Rune)
		}
	}
	return false
}

func (f *field) insert(r rune) bool {
	f.input = append(f.input, 0)
	copy(f.input[f.cursor+1:], f.input[f.cursor:])
	f.input[f.cursor] = r
	f.cursor++
	return true
}

func (f *field) backspace() bool {
	if f.cursor <= 0 {
		return false
	}
	copy(f.input[f.cursor-1:], f.input[f.cursor:])
	f.input = f.input[:len(f.input)-1]
	f.cursor--
	return true
}

func (f *field) deleteForward() bool {
	if f.cursor >= len(f.input) {
		return false
	}
	copy(f.input[f.cursor:], f.input[f.cursor+1:])
	f.input = f.input[:len(f.input)-1]
	return true
}

// visibleFrom returns the first rune index to draw so that the cursor stays inside a
// field maxWidth pixels wide.
func (f *field) visibleFrom(c *raster.Canvas, maxWidth int) int {
	start := 0
	for start < f.cursor && c.TextWidth(string(f.input[start:f.cursor])) > maxWidth {
		start++
	}
	return start
}

// caretAt maps a pixel offset from the start of the text to a cursor position.
func (f *field) caretAt(c *raster.Canvas, x int) int {
	if x <= 0 {
		return 0
	}
	for i := 1; i <= len(f.input); i++ {
		w := c.TextWidth(string(f.input[:i]))
		prev := c.TextWidth(string(f.input[:i-1]))
		if x < (w+prev)/2 {
			return i - 1
		}
	}
	return len(f.input)
}
