package display

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/gogpu/mandel"
	"github.com/gogpu/mandel/internal/imageio"
)

//go:embed static/index.html
var indexHTML []byte

// DefaultAddr is where WebSink listens when Addr is empty.
const DefaultAddr = "localhost:8080"

const shutdownTimeout = 5 * time.Second

// FrameHeader is the JSON text message sent on /ws ahead of the PNG.
type FrameHeader struct {
	Caption string `json:"caption"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

// WebSink serves the frame over HTTP until ctx is done.
//
//	/          viewer page
//	/frame.png the encoded frame
//	/ws        websocket: a FrameHeader text message, then the PNG as binary
type WebSink struct {
	Addr      string
	NoOverlay bool

	// OnListen, if set, is called with the bound address before serving.
	OnListen func(net.Addr)
}

// Present serves f and returns nil once ctx is done and the server has
// shut down.
func (s *WebSink) Present(ctx context.Context, f Frame) error {
	h, err := Handler(f, !s.NoOverlay)
	if err != nil {
		return err
	}

	addr := s.Addr
	if addr == "" {
		addr = DefaultAddr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("display: listen %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	mandel.Logger().Info("serving frame", "url", "http://"+ln.Addr().String())
	if s.OnListen != nil {
		s.OnListen(ln.Addr())
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("display: serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("display: shutdown: %w", err)
	}
	return nil
}

// Handler returns the HTTP handler serving f. The PNG is encoded once.
func Handler(f Frame, withCaption bool) (http.Handler, error) {
	img, err := f.Composite(withCaption)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := imageio.Encode(&buf, img, imageio.FormatPNG); err != nil {
		return nil, err
	}

	fh := &frameHandler{
		png: buf.Bytes(),
		header: FrameHeader{
			Caption: f.Caption,
			Width:   img.Bounds().Dx(),
			Height:  img.Bounds().Dy(),
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", fh.serveIndex)
	mux.HandleFunc("GET /frame.png", fh.servePNG)
	mux.HandleFunc("/ws", fh.serveWS)
	return mux, nil
}

type frameHandler struct {
	png    []byte
	header FrameHeader
}

func (h *frameHandler) serveIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

func (h *frameHandler) servePNG(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(h.png)))
	_, _ = w.Write(h.png)
}

func (h *frameHandler) serveWS(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, nil)
	if err != nil {
		mandel.Logger().Warn("websocket accept failed", "err", err)
		return
	}
	defer func() { _ = c.CloseNow() }()

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	if err := wsjson.Write(ctx, c, h.header); err != nil {
		mandel.Logger().Warn("websocket header write failed", "err", err)
		return
	}
	if err := c.Write(ctx, websocket.MessageBinary, h.png); err != nil {
		mandel.Logger().Warn("websocket frame write failed", "err", err)
		return
	}
	_ = c.Close(websocket.StatusNormalClosure, "frame sent")
}
