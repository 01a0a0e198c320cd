//go:build cgo

package hal

import (
	"os"

	"graphvis/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	Width  int
	Height int
	// Zoom is the window size multiplier over the framebuffer size.
	Zoom  int
	Title string
}

// RunWindow opens a desktop window showing the framebuffer and forwards mouse and
// keyboard input. It blocks until the window closes or step fails.
func RunWindow(newApp func(HAL) func() error, cfg WindowConfig) error {
	if cfg.Zoom <= 0 {
		cfg.Zoom = 1
	}
	if cfg.Title == "" {
		cfg.Title = "graphvis"
	}
	h := newHost(cfg.Width, cfg.Height, os.Stdout)
	w := &window{h: h, step: newApp(h)}

	ebiten.SetWindowTitle(cfg.Title + " " + buildinfo.Short())
	ebiten.SetWindowSize(h.fb.width*cfg.Zoom, h.fb.height*cfg.Zoom)
	ebiten.SetTPS(60)
	return ebiten.RunGame(w)
}

// window implements ebiten.Game. The texture is refreshed only after the app
// presents a new frame.
type window struct {
	h    *hostHAL
	step func() error

	img      *ebiten.Image
	pix      []byte
	uploaded uint64
}

func (w *window) Update() error {
	fb := w.h.fb
	pollKeyboard(w.h.kbd)
	pollPointer(w.h.pointer, fb.width, fb.height)
	w.h.t.advance()
	if w.step == nil {
		return nil
	}
	return w.step()
}

func (w *window) Draw(screen *ebiten.Image) {
	fb := w.h.fb
	if w.img == nil {
		w.img = ebiten.NewImage(fb.width, fb.height)
		w.pix = make([]byte, fb.width*fb.height*4)
	}
	if n := fb.presented(); n != w.uploaded {
		fb.copyRGBA(w.pix)
		w.img.WritePixels(w.pix)
		w.uploaded = n
	}
	screen.DrawImage(w.img, nil)
}

func (w *window) Layout(_, _ int) (int, int) {
	return w.h.fb.width, w.h.fb.height
}
