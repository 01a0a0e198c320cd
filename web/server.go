// Package web serves the plotter to a browser. Each websocket connection drives its own
// plot.Engine; rendered frames travel back as PNG.
package web

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"net"
	"net/http"
	"time"

	"graphvis/internal/logger"
)

//go:embed static
var staticFiles embed.FS

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
	writeTimeout      = 5 * time.Second
)

type Config struct {
	// Addr is the listen address, ":8080" when empty.
	Addr string

	// OriginPatterns are passed to websocket.Accept. Empty allows any origin.
	OriginPatterns []string

	Logger *logger.Logger
}

// Server is the browser host.
type Server struct {
	cfg Config
	log *logger.Logger
	mux *http.ServeMux
}

func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if len(cfg.OriginPatterns) == 0 {
		cfg.OriginPatterns = []string{"*"}
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Discard()
	}

	s := &Server{cfg: cfg, log: log, mux: http.NewServeMux()}

	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	s.mux.Handle("GET /", http.FileServer(http.FS(static)))
	s.mux.HandleFunc("GET /ws", s.handleWebsocket)
	s.mux.HandleFunc("GET /frame.png", s.handleFramePNG)
	s.mux.HandleFunc("GET /drawlist.json", s.handleDrawList)
	s.mux.HandleFunc("GET /functions.json", s.handleFunctions)
	s.mux.HandleFunc("GET /export/{format}", s.handleExport)
	return s
}

// Handler returns the HTTP routes, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.mux }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully and returns
// ctx.Err().
func (s *Server) ListenAndServe(ctx context.Context) error {
	l, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, l)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening on http://%s", l.Addr())
		errCh <- srv.Serve(l)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.log.Warn("shutdown: %v", err)
	}
	return ctx.Err()
}
