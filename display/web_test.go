package display

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func newTestServer(t *testing.T, f Frame) *httptest.Server {
	t.Helper()
	h, err := Handler(f, true)
	require.NoError(t, err)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestHandler_Index(t *testing.T) {
	srv := newTestServer(t, solidFrame(8))

	resp, body := get(t, srv.URL+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(body), "/ws")

	resp, _ = get(t, srv.URL+"/missing")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandler_FramePNG(t *testing.T) {
	srv := newTestServer(t, renderFrame(t, 40))

	resp, body := get(t, srv.URL+"/frame.png")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	img, err := png.Decode(bytes.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
}

func TestHandler_Websocket(t *testing.T) {
	f := solidFrame(16)
	srv := newTestServer(t, f)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	c, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	defer func() { _ = c.CloseNow() }()

	var header FrameHeader
	require.NoError(t, wsjson.Read(ctx, c, &header))
	assert.Equal(t, FrameHeader{Caption: f.Caption, Width: 16, Height: 16}, header)

	typ, data, err := c.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, websocket.MessageBinary, typ)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dy())

	_, _, err = c.Read(ctx)
	assert.Equal(t, websocket.StatusNormalClosure, websocket.CloseStatus(err))
}

func TestHandler_NoImage(t *testing.T) {
	_, err := Handler(Frame{}, true)
	assert.ErrorIs(t, err, ErrNoImage)
}

func TestWebSink_Present(t *testing.T) {
	addrc := make(chan net.Addr, 1)
	sink := &WebSink{
		Addr:     "127.0.0.1:0",
		OnListen: func(a net.Addr) { addrc <- a },
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sink.Present(ctx, solidFrame(8)) }()

	var addr net.Addr
	select {
	case addr = <-addrc:
	case err := <-done:
		t.Fatalf("Present returned early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	resp, body := get(t, "http://"+addr.String()+"/frame.png")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Present did not return after cancel")
	}
}

func TestWebSink_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = ln.Close() }()

	sink := &WebSink{Addr: ln.Addr().String()}
	err = sink.Present(context.Background(), solidFrame(4))
	assert.Error(t, err)
}
