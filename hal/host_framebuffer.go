package hal

import (
	"image"
	"sync"
)

// memFramebuffer is the host framebuffer. The mutex guards buf against the window
// thread copying it while a step draws.
type memFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	buf    []byte
	frames uint64
}

func newMemFramebuffer(width, height int) *memFramebuffer {
	return &memFramebuffer{
		width:  width,
		height: height,
		buf:    make([]byte, width*height*2),
	}
}

// NewFramebuffer returns an in-memory RGB565 framebuffer for offscreen rendering.
func NewFramebuffer(width, height int) Framebuffer {
	return newMemFramebuffer(width, height)
}

func (f *memFramebuffer) Width() int          { return f.width }
func (f *memFramebuffer) Height() int         { return f.height }
func (f *memFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *memFramebuffer) StrideBytes() int    { return f.width * 2 }
func (f *memFramebuffer) Buffer() []byte      { return f.buf }

func (f *memFramebuffer) Present() error {
	f.mu.Lock()
	f.frames++
	f.mu.Unlock()
	return nil
}

func (f *memFramebuffer) presented() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frames
}

// copyRGBA converts the buffer into dst, which must hold width*height*4 bytes.
func (f *memFramebuffer) copyRGBA(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	convertRGB565(dst, f.buf, f.width, f.height, f.width*2)
}

// RGBA converts an RGB565 framebuffer into an RGBA image. Other formats yield a
// transparent image of the same size.
func RGBA(fb Framebuffer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width(), fb.Height()))
	switch {
	case fb.Format() != PixelFormatRGB565:
	case isMem(fb):
		fb.(*memFramebuffer).copyRGBA(img.Pix)
	default:
		convertRGB565(img.Pix, fb.Buffer(), fb.Width(), fb.Height(), fb.StrideBytes())
	}
	return img
}

func isMem(fb Framebuffer) bool {
	_, ok := fb.(*memFramebuffer)
	return ok
}

func convertRGB565(dst, src []byte, w, h, stride int) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*stride + x*2
			if i+1 >= len(src) {
				return
			}
			c := (RGB565(src[i]) | RGB565(src[i+1])<<8).RGBA()
			j := (y*w + x) * 4
			dst[j], dst[j+1], dst[j+2], dst[j+3] = c.R, c.G, c.B, c.A
		}
	}
}
