package nodes

import (
	"net/http"
	"time"

	visionbridge "github.com/flowvision/vision-bridge"
	"github.com/flowvision/vision-bridge/internal"
)

// A freshly deployed flow often beats the backend's camera discovery, so the
// connect is retried a bounded number of times with a fixed delay and gives
// up quietly after the last attempt.
const (
	connectAttempts          = 3
	defaultConnectRetryDelay = "2s"
)

type CameraConnectConfig struct {
	CameraID string

	// RetryDelay between bootstrap attempts, e.g. "2s"; empty means the
	// default.
	RetryDelay string
}

// CameraConnectNode proxies POST /api/camera/connect.
type CameraConnectNode struct {
	ctx     NodeContext
	cfg     CameraConnectConfig
	session *CameraSession
}

func NewCameraConnectNode(ctx NodeContext, cfg CameraConnectConfig, session *CameraSession) *CameraConnectNode {
	return &CameraConnectNode{ctx: ctx, cfg: cfg, session: session}
}

func (n *CameraConnectNode) OnInput(msg *visionbridge.Message) error {
	if err := n.session.begin(CamIdle, CamConnecting); err != nil {
		return n.ctx.rejectInput(err, msg)
	}

	delayMs := internal.ParseTimeStr(defaultConnectRetryDelay)
	if n.cfg.RetryDelay != "" {
		delayMs = internal.ParseTimeStr(n.cfg.RetryDelay)
	}
	body := map[string]interface{}{
		"camera_id": n.session.CameraID(),
	}

	var env *visionbridge.Envelope
	var err error
	for attempt := 0; attempt < connectAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
		}
		env, err = n.ctx.dispatcher().Call(http.MethodPost, "/api/camera/connect", body)
		if err == nil {
			break
		}
	}
	if err != nil {
		n.session.settle(CamIdle, false)
		return err
	}

	n.session.settle(CamIdle, true)

	out := visionbridge.NewMessage()
	out.Payload = map[string]interface{}{
		"camera_id": n.session.CameraID(),
		"connected": true,
		"metadata":  env.Metadata,
	}
	out.Success = true
	out.Source = n.ctx.Name
	n.ctx.emit(out)
	n.ctx.setStatus(visionbridge.StatusFor(visionbridge.StatusReady, "", 0))
	return nil
}

func (n *CameraConnectNode) Close() {
	n.ctx.clearStatus()
}
