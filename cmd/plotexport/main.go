package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"graphvis/export"
	"graphvis/plot"
	"graphvis/raster"
)

func main() {
	var (
		expression = flag.String("expr", plot.DefaultExpression, "Expression in x.")
		scale      = flag.Float64("scale", plot.DefaultScale, "Pixels per unit (clamped to 10..100).")
		ox         = flag.Float64("ox", 0, "Horizontal pan offset in pixels.")
		oy         = flag.Float64("oy", 0, "Vertical pan offset in pixels.")
		outPath    = flag.String("o", "plot.png", "Output file.")
		engine     = flag.String("engine", "raster", "raster|gonum.")
		title      = flag.String("title", "", "Chart title (gonum engine only).")
	)
	flag.Parse()

	e := plot.New()
	e.SetExpression(*expression)
	e.SetViewport(plot.Viewport{Scale: *scale, OffsetX: *ox, OffsetY: *oy})

	switch strings.ToLower(*engine) {
	case "raster":
		if err := writeRaster(e, *outPath); err != nil {
			fatalf("raster: %v", err)
		}
	case "gonum":
		if err := export.Export(e, *outPath, export.Options{Title: *title}); err != nil {
			fatalf("gonum: %v", err)
		}
	default:
		fatalf("unknown engine: %s", *engine)
	}

	if err := e.LastError(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
}

// writeRaster writes the exact surface frame as PNG.
func writeRaster(e *plot.Engine, path string) error {
	if f, err := export.FormatFromPath(path); err != nil || f != "png" {
		return fmt.Errorf("raster output must be .png: %s", path)
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(out)
	if err := raster.WritePNG(w, e.RenderFrame()); err != nil {
		out.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
