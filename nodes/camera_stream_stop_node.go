package nodes

import (
	"net/http"

	visionbridge "github.com/flowvision/vision-bridge"
)

// CameraStreamStopNode proxies POST /api/camera/stream/stop. The local frame
// feed is torn down first so no frames are emitted after the stop request.
type CameraStreamStopNode struct {
	ctx     NodeContext
	session *CameraSession
}

func NewCameraStreamStopNode(ctx NodeContext, session *CameraSession) *CameraStreamStopNode {
	return &CameraStreamStopNode{ctx: ctx, session: session}
}

func (n *CameraStreamStopNode) OnInput(msg *visionbridge.Message) error {
	if err := n.session.begin(CamStreaming, CamStopping); err != nil {
		return n.ctx.rejectInput(err, msg)
	}
	if fs := n.session.detachStream(); fs != nil {
		fs.stop()
	}

	body := map[string]interface{}{
		"camera_id": n.session.CameraID(),
	}
	_, err := n.ctx.dispatcher().Call(http.MethodPost, "/api/camera/stream/stop", body)
	n.session.settle(CamIdle, true)
	if err != nil {
		return err
	}

	out := visionbridge.NewMessage()
	out.Payload = map[string]interface{}{
		"camera_id": n.session.CameraID(),
		"streaming": false,
	}
	out.Success = true
	out.Source = n.ctx.Name
	n.ctx.emit(out)
	n.ctx.setStatus(visionbridge.StatusFor(visionbridge.StatusReady, "", 0))
	return nil
}

func (n *CameraStreamStopNode) Close() {
	n.ctx.clearStatus()
}
