package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strings"
	"testing"
	"time"

	"graphvis/expr"
	"graphvis/plot"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/go-cmp/cmp"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(New(Config{}).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestIndexServed(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	if !strings.Contains(string(body), `new WebSocket`) {
		t.Fatalf("index page missing websocket client")
	}
}

func TestFramePNG(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/frame.png?expr=" + url.QueryEscape("sin(x)") + "&scale=40")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Fatalf("Content-Type=%q", ct)
	}
	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != plot.Width || b.Dy() != plot.Height {
		t.Fatalf("bounds=%v", b)
	}
}

func TestDrawListMatchesEngine(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/drawlist.json?expr=" + url.QueryEscape("x/2") + "&scale=1000&ox=15&oy=-5")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	var got plot.DrawList
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}

	e := plot.New()
	e.SetExpression("x/2")
	e.SetViewport(plot.Viewport{Scale: 1000, OffsetX: 15, OffsetY: -5})
	if e.Viewport().Scale != plot.MaxScale {
		t.Fatalf("scale not clamped: %v", e.Viewport().Scale)
	}
	want := e.RenderFrame()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("drawlist mismatch (-want +got):\n%s", diff)
	}
}

func TestBadQuery(t *testing.T) {
	ts := newTestServer(t)
	for _, path := range []string{"/frame.png?scale=big", "/drawlist.json?ox=1x"} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("GET %s status=%d, want 400", path, resp.StatusCode)
		}
	}
}

func TestEngineFromQueryError(t *testing.T) {
	_, err := engineFromQuery(url.Values{"scale": {"nope"}})
	if !errors.Is(err, ErrBadQuery) {
		t.Fatalf("err=%v, want ErrBadQuery", err)
	}
}

func TestExport(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		format string
		ctype  string
		magic  string
	}{
		{"svg", "image/svg+xml", "<svg"},
		{"png", "image/png", "\x89PNG"},
		{"pdf", "application/pdf", "%PDF"},
	}
	for _, tt := range tests {
		resp, err := http.Get(ts.URL + "/export/" + tt.format + "?expr=" + url.QueryEscape("sin(x)") + "&title=wave")
		if err != nil {
			t.Fatalf("GET %s: %v", tt.format, err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: status=%d body=%q", tt.format, resp.StatusCode, body)
		}
		if ct := resp.Header.Get("Content-Type"); ct != tt.ctype {
			t.Fatalf("%s: Content-Type=%q", tt.format, ct)
		}
		if !strings.Contains(string(body), tt.magic) {
			t.Fatalf("%s: body missing %q", tt.format, tt.magic)
		}
	}
}

func TestExportErrors(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		path   string
		status int
	}{
		{"/export/gif", http.StatusNotFound},
		{"/export/svg?scale=big", http.StatusBadRequest},
	}
	for _, tt := range tests {
		resp, err := http.Get(ts.URL + tt.path)
		if err != nil {
			t.Fatalf("GET %s: %v", tt.path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != tt.status {
			t.Fatalf("GET %s status=%d, want %d", tt.path, resp.StatusCode, tt.status)
		}
	}
}

func TestFunctionsList(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/functions.json")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	var got []string
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(expr.Functions(), got); diff != "" {
		t.Fatalf("functions mismatch (-want +got):\n%s", diff)
	}
	if !slices.Contains(got, "sin") {
		t.Fatalf("functions=%v, missing sin", got)
	}
}

type wsClient struct {
	t *testing.T
	c *websocket.Conn
}

func dial(t *testing.T, ts *httptest.Server) *wsClient {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	c.SetReadLimit(1 << 22)
	t.Cleanup(func() { c.Close(websocket.StatusNormalClosure, "") })
	return &wsClient{t: t, c: c}
}

func (w *wsClient) send(ev Event) {
	w.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := wsjson.Write(ctx, w.c, ev); err != nil {
		w.t.Fatalf("write: %v", err)
	}
}

// state reads one text state message.
func (w *wsClient) state() State {
	w.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	typ, data, err := w.c.Read(ctx)
	if err != nil {
		w.t.Fatalf("read state: %v", err)
	}
	if typ != websocket.MessageText {
		w.t.Fatalf("state type=%v, want text", typ)
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		w.t.Fatalf("decode state: %v", err)
	}
	if st.Type != "state" {
		w.t.Fatalf("message type=%q", st.Type)
	}
	return st
}

// frame reads one state message and the PNG that follows it.
func (w *wsClient) frame() State {
	w.t.Helper()
	st := w.state()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	typ, data, err := w.c.Read(ctx)
	if err != nil {
		w.t.Fatalf("read frame: %v", err)
	}
	if typ != websocket.MessageBinary {
		w.t.Fatalf("frame type=%v, want binary", typ)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		w.t.Fatalf("decode frame: %v", err)
	}
	return st
}

func (w *wsClient) sendRaw(typ websocket.MessageType, data []byte) {
	w.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := w.c.Write(ctx, typ, data); err != nil {
		w.t.Fatalf("write: %v", err)
	}
}

func TestSessionEvents(t *testing.T) {
	ts := newTestServer(t)
	ws := dial(t, ts)

	st := ws.frame()
	if st.Expression != plot.DefaultExpression || st.Viewport != plot.DefaultViewport() {
		t.Fatalf("initial state=%+v", st)
	}

	ws.send(Event{Type: EventZoomIn})
	if st = ws.frame(); st.Viewport.Scale != plot.DefaultScale*plot.ZoomFactor {
		t.Fatalf("scale after zoomIn=%v", st.Viewport.Scale)
	}

	// Down only arms the drag: a state message without a frame.
	ws.send(Event{Type: EventDown, X: 100, Y: 100})
	if st = ws.state(); !st.Dragging || st.Viewport.Scale != plot.DefaultScale*plot.ZoomFactor {
		t.Fatalf("state after down=%+v", st)
	}
	ws.send(Event{Type: EventMove, X: 150, Y: 130})
	st = ws.frame()
	if st.Viewport.OffsetX != 50 || st.Viewport.OffsetY != 30 || !st.Dragging {
		t.Fatalf("state after drag=%+v", st)
	}

	ws.send(Event{Type: EventLeave})
	if st = ws.state(); st.Dragging {
		t.Fatalf("still dragging after leave: %+v", st)
	}
	ws.send(Event{Type: EventMove, X: 300, Y: 300})
	ws.send(Event{Type: EventExpr, Text: "nope("})
	st = ws.frame()
	if st.Expression != "nope(" || st.Error == "" {
		t.Fatalf("state after expr=%+v", st)
	}
	if st.Viewport.OffsetX != 50 {
		t.Fatalf("move after leave panned: %+v", st.Viewport)
	}

	ws.send(Event{Type: "bogus"})
	ws.send(Event{Type: EventReset})
	if st = ws.frame(); st.Viewport != plot.DefaultViewport() {
		t.Fatalf("viewport after reset=%+v", st.Viewport)
	}
}

func TestSessionUpEndsDrag(t *testing.T) {
	ts := newTestServer(t)
	ws := dial(t, ts)
	ws.frame()

	ws.send(Event{Type: EventDown, X: 10, Y: 10})
	if st := ws.state(); !st.Dragging {
		t.Fatalf("state after down=%+v", st)
	}
	// A second down keeps the state unchanged and sends nothing.
	ws.send(Event{Type: EventDown, X: 20, Y: 20})
	ws.send(Event{Type: EventUp})
	if st := ws.state(); st.Dragging {
		t.Fatalf("state after up=%+v", st)
	}
	ws.send(Event{Type: EventZoomIn})
	if st := ws.frame(); st.Dragging || st.Viewport.OffsetX != 0 {
		t.Fatalf("state after zoomIn=%+v", st)
	}
}

func TestSessionSkipsMalformedMessages(t *testing.T) {
	ts := newTestServer(t)
	ws := dial(t, ts)
	ws.frame()

	ws.sendRaw(websocket.MessageText, []byte(`{bad`))
	ws.sendRaw(websocket.MessageText, []byte(`{"type":"wheel","dy":"up"}`))
	ws.sendRaw(websocket.MessageBinary, []byte{0x01, 0x02})
	ws.send(Event{Type: EventZoomIn})
	if st := ws.frame(); st.Viewport.Scale != plot.DefaultScale*plot.ZoomFactor {
		t.Fatalf("scale after zoomIn=%v", st.Viewport.Scale)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	ts := newTestServer(t)
	a := dial(t, ts)
	b := dial(t, ts)
	a.frame()
	b.frame()

	a.send(Event{Type: EventZoomOut})
	a.frame()

	b.send(Event{Type: EventExpr, Text: "x"})
	if st := b.frame(); st.Viewport.Scale != plot.DefaultScale {
		t.Fatalf("session b saw session a's zoom: %v", st.Viewport.Scale)
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(Config{}).Serve(ctx, l) }()

	resp, err := http.Get("http://" + l.Addr().String() + "/drawlist.json")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Serve returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Serve did not return after cancel")
	}
}
