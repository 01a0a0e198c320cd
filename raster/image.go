package raster

import (
	"image"
	"image/png"
	"io"

	"graphvis/hal"
	"graphvis/plot"
)

// Render rasterizes dl onto a fresh plot-sized framebuffer.
func Render(dl plot.DrawList) hal.Framebuffer {
	fb := hal.NewFramebuffer(plot.Width, plot.Height)
	New(fb).Draw(dl)
	return fb
}

// Image rasterizes dl and returns it as an RGBA image.
func Image(dl plot.DrawList) *image.RGBA {
	return hal.RGBA(Render(dl))
}

// WritePNG rasterizes dl and encodes it as PNG.
func WritePNG(w io.Writer, dl plot.DrawList) error {
	return png.Encode(w, Image(dl))
}
