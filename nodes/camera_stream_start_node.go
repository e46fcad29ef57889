// camera_stream_start_node.go
// ----------------------------
// Stream start: tell the backend to begin streaming, then subscribe to the
// frame feed over a websocket. Frames arrive as small JSON events naming the
// image id the backend stored each frame under; one outbound message is
// emitted per frame, optionally capped to a maximum frame rate.
package nodes

import (
	"net/http"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	visionbridge "github.com/flowvision/vision-bridge"
)

type CameraStreamStartConfig struct {
	// MaxFPS caps emitted frames per second; 0 means unpaced. Frames over
	// the cap are dropped, not queued.
	MaxFPS float64
}

// streamFrame is one frame event on the websocket feed.
type streamFrame struct {
	ImageID         string `json:"image_id"`
	ThumbnailBase64 string `json:"thumbnail_base64"`
	FrameNumber     int    `json:"frame_number"`
}

// frameStream owns the websocket connection and its reader goroutine.
type frameStream struct {
	conn  *websocket.Conn
	pacer *rate.Limiter

	closeOnce sync.Once
	done      chan struct{}
}

func (fs *frameStream) stop() {
	fs.closeOnce.Do(func() {
		close(fs.done)
		fs.conn.Close()
	})
}

// CameraStreamStartNode proxies POST /api/camera/stream/start and then reads
// the frame feed until the stream is stopped.
type CameraStreamStartNode struct {
	ctx     NodeContext
	cfg     CameraStreamStartConfig
	session *CameraSession
}

func NewCameraStreamStartNode(ctx NodeContext, cfg CameraStreamStartConfig, session *CameraSession) *CameraStreamStartNode {
	return &CameraStreamStartNode{ctx: ctx, cfg: cfg, session: session}
}

func (n *CameraStreamStartNode) OnInput(msg *visionbridge.Message) error {
	if !n.session.Connected() {
		return n.ctx.rejectInput(errNotConnected, msg)
	}
	if err := n.session.begin(CamIdle, CamConnecting); err != nil {
		return n.ctx.rejectInput(err, msg)
	}

	body := map[string]interface{}{
		"camera_id": n.session.CameraID(),
	}
	_, err := n.ctx.dispatcher().Call(http.MethodPost, "/api/camera/stream/start", body)
	if err != nil {
		n.session.settle(CamIdle, true)
		return err
	}

	wsURL, err := streamSocketURL(n.ctx.Bridge.Config(), n.session.CameraID())
	if err != nil {
		n.rollbackStream()
		n.session.settle(CamIdle, true)
		return n.ctx.reportFailure(visionbridge.AsClassified(err), msg)
	}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		n.rollbackStream()
		n.session.settle(CamIdle, true)
		cerr := visionbridge.AsClassified(err)
		cerr.Kind = visionbridge.KindNetwork
		return n.ctx.reportFailure(cerr, msg)
	}

	fs := &frameStream{conn: conn, done: make(chan struct{})}
	if n.cfg.MaxFPS > 0 {
		fs.pacer = rate.NewLimiter(rate.Limit(n.cfg.MaxFPS), 1)
	}
	n.session.attachStream(fs)
	go n.readFrames(fs)

	n.ctx.setStatus(visionbridge.StatusFor(visionbridge.StatusProcessing, "streaming", 0))
	return nil
}

// rollbackStream tells the backend to stop the stream it just started when
// the local frame subscription could not be established. Best effort: a
// rollback failure is already reported through the dispatcher sinks.
func (n *CameraStreamStartNode) rollbackStream() {
	body := map[string]interface{}{
		"camera_id": n.session.CameraID(),
	}
	_, _ = n.ctx.dispatcher().Call(http.MethodPost, "/api/camera/stream/stop", body)
}

func (n *CameraStreamStartNode) readFrames(fs *frameStream) {
	for {
		select {
		case <-fs.done:
			return
		default:
		}
		var frame streamFrame
		if err := fs.conn.ReadJSON(&frame); err != nil {
			// Socket closed by stop/disconnect or dropped by the backend.
			return
		}
		if fs.pacer != nil && !fs.pacer.Allow() {
			continue
		}
		out := visionbridge.NewMessage()
		out.ImageID = frame.ImageID
		out.Payload = map[string]interface{}{
			"image_id":     frame.ImageID,
			"camera_id":    n.session.CameraID(),
			"thumbnail":    frame.ThumbnailBase64,
			"frame_number": frame.FrameNumber,
		}
		out.Success = true
		out.Source = n.ctx.Name
		n.ctx.emit(out)
	}
}

func (n *CameraStreamStartNode) Close() {
	if fs := n.session.detachStream(); fs != nil {
		fs.stop()
		n.session.settle(CamIdle, n.session.Connected())
	}
	n.ctx.clearStatus()
}

// streamSocketURL derives the websocket frame feed address from the resolved
// backend base URL.
func streamSocketURL(cfg *visionbridge.Config, cameraID string) (string, error) {
	settings, err := visionbridge.ResolveConnection(cfg)
	if err != nil {
		return "", err
	}
	u, err := url.Parse(settings.BaseURL)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = "/api/camera/stream/ws"
	u.RawQuery = url.Values{"camera_id": {cameraID}}.Encode()
	return u.String(), nil
}
