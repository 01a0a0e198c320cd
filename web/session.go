package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"graphvis/plot"
	"graphvis/raster"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// Event types sent by the browser.
const (
	EventDown    = "down"
	EventMove    = "move"
	EventUp      = "up"
	EventLeave   = "leave"
	EventWheel   = "wheel"
	EventZoomIn  = "zoomIn"
	EventZoomOut = "zoomOut"
	EventReset   = "reset"
	EventExpr    = "expr"
)

// Event is one browser input message. X and Y are surface pixels.
type Event struct {
	Type string  `json:"type"`
	X    float64 `json:"x,omitempty"`
	Y    float64 `json:"y,omitempty"`
	DY   float64 `json:"dy,omitempty"`
	Text string  `json:"text,omitempty"`
}

// State precedes every binary PNG frame.
type State struct {
	Type       string        `json:"type"`
	Expression string        `json:"expression"`
	Viewport   plot.Viewport `json:"viewport"`
	Dragging   bool          `json:"dragging"`
	Error      string        `json:"error,omitempty"`
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.cfg.OriginPatterns,
	})
	if err != nil {
		s.log.Warn("websocket accept: %v", err)
		return
	}
	defer c.CloseNow()

	s.log.Info("session %s opened", r.RemoteAddr)
	err = s.serveSession(r.Context(), c)
	switch {
	case err == nil, errors.Is(err, context.Canceled),
		websocket.CloseStatus(err) == websocket.StatusNormalClosure,
		websocket.CloseStatus(err) == websocket.StatusGoingAway:
		s.log.Info("session %s closed", r.RemoteAddr)
		c.Close(websocket.StatusNormalClosure, "")
	default:
		s.log.Warn("session %s: %v", r.RemoteAddr, err)
		c.Close(websocket.StatusInternalError, "session failed")
	}
}

// errBadMessage marks a client message that is not a JSON event. The session drops it
// and keeps reading.
var errBadMessage = errors.New("bad message")

// serveSession owns one engine and applies events in arrival order. Events that change
// the picture produce a state message and a frame; events that only change the pointer
// state produce a state message.
func (s *Server) serveSession(ctx context.Context, c *websocket.Conn) error {
	e := plot.New()
	if err := s.sendFrame(ctx, c, e); err != nil {
		return err
	}
	for {
		ev, err := readEvent(ctx, c)
		if errors.Is(err, errBadMessage) {
			s.log.Debug("dropped message: %v", err)
			continue
		}
		if err != nil {
			return err
		}

		before := e.State()
		if !apply(e, ev) {
			s.log.Debug("ignored event %q", ev.Type)
			continue
		}
		switch {
		case e.NeedsRedraw():
			err = s.sendFrame(ctx, c, e)
		case e.State() != before:
			err = s.sendState(ctx, c, e)
		}
		if err != nil {
			return err
		}
	}
}

func readEvent(ctx context.Context, c *websocket.Conn) (Event, error) {
	var ev Event
	typ, data, err := c.Read(ctx)
	if err != nil {
		return ev, err
	}
	if typ != websocket.MessageText {
		return ev, fmt.Errorf("%w: binary message", errBadMessage)
	}
	if err := json.Unmarshal(data, &ev); err != nil {
		return ev, fmt.Errorf("%w: %w", errBadMessage, err)
	}
	return ev, nil
}

// apply feeds ev to e and reports whether the type was known.
func apply(e *plot.Engine, ev Event) bool {
	switch ev.Type {
	case EventDown:
		e.DragStart(ev.X, ev.Y)
	case EventMove:
		e.DragMove(ev.X, ev.Y)
	case EventUp:
		e.DragEnd()
	case EventLeave:
		e.PointerLeave()
	case EventWheel:
		e.Wheel(ev.DY)
	case EventZoomIn:
		e.ZoomIn()
	case EventZoomOut:
		e.ZoomOut()
	case EventReset:
		e.Reset()
	case EventExpr:
		e.SetExpression(ev.Text)
	default:
		return false
	}
	return true
}

func stateOf(e *plot.Engine) State {
	st := State{
		Type:       "state",
		Expression: e.Expression(),
		Viewport:   e.Viewport(),
		Dragging:   e.State() == plot.StateDragging,
	}
	if err := e.LastError(); err != nil {
		st.Error = err.Error()
	}
	return st
}

func (s *Server) sendState(ctx context.Context, c *websocket.Conn, e *plot.Engine) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(ctx, c, stateOf(e))
}

func (s *Server) sendFrame(ctx context.Context, c *websocket.Conn, e *plot.Engine) error {
	done := s.log.Step("render frame")
	var buf bytes.Buffer
	err := raster.WritePNG(&buf, e.RenderFrame())
	done()
	if err != nil {
		return err
	}

	if err := s.sendState(ctx, c, e); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return c.Write(ctx, websocket.MessageBinary, buf.Bytes())
}
