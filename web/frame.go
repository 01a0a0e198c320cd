package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"graphvis/export"
	"graphvis/expr"
	"graphvis/plot"
	"graphvis/raster"
)

var ErrBadQuery = errors.New("bad query")

// engineFromQuery builds a one-shot engine from expr, scale, ox and oy. Missing values
// keep the engine defaults; scale is clamped.
func engineFromQuery(q url.Values) (*plot.Engine, error) {
	e := plot.New()
	if q.Has("expr") {
		e.SetExpression(q.Get("expr"))
	}

	v := e.Viewport()
	for _, f := range []struct {
		key string
		dst *float64
	}{
		{"scale", &v.Scale},
		{"ox", &v.OffsetX},
		{"oy", &v.OffsetY},
	} {
		raw := q.Get(f.key)
		if raw == "" {
			continue
		}
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q", ErrBadQuery, f.key, raw)
		}
		*f.dst = n
	}
	e.SetViewport(v)
	return e, nil
}

func (s *Server) handleFramePNG(w http.ResponseWriter, r *http.Request) {
	e, err := engineFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := raster.WritePNG(&buf, e.RenderFrame()); err != nil {
		s.log.Error("encode frame: %v", err)
		http.Error(w, "encode failed", http.StatusInternalServerError)
		return
	}
	s.log.Debug("frame.png %q scale=%g", e.Expression(), e.Viewport().Scale)

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes())
}

func (s *Server) handleDrawList(w http.ResponseWriter, r *http.Request) {
	e, err := engineFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(e.RenderFrame()); err != nil {
		s.log.Warn("drawlist.json: %v", err)
	}
}

var exportTypes = map[string]string{
	"png": "image/png",
	"svg": "image/svg+xml",
	"pdf": "application/pdf",
}

// handleExport renders the query's view as a gonum chart, /export/{png,svg,pdf}.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := r.PathValue("format")
	ctype, ok := exportTypes[format]
	if !ok {
		http.Error(w, fmt.Sprintf("%v: %q", export.ErrFormat, format), http.StatusNotFound)
		return
	}
	e, err := engineFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteTo(&buf, e, format, export.Options{Title: r.URL.Query().Get("title")}); err != nil {
		s.log.Error("export %s: %v", format, err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", ctype)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes())
}

// handleFunctions lists the callable function names for the page hint.
func (s *Server) handleFunctions(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(expr.Functions()); err != nil {
		s.log.Warn("functions.json: %v", err)
	}
}
