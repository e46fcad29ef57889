package nodes

import (
	"net/http"

	visionbridge "github.com/flowvision/vision-bridge"
)

// CameraDisconnectNode proxies POST /api/camera/disconnect. Disconnecting
// always tears down an active frame stream first and leaves the session
// idle, whatever state it was in.
type CameraDisconnectNode struct {
	ctx     NodeContext
	session *CameraSession
}

func NewCameraDisconnectNode(ctx NodeContext, session *CameraSession) *CameraDisconnectNode {
	return &CameraDisconnectNode{ctx: ctx, session: session}
}

func (n *CameraDisconnectNode) OnInput(msg *visionbridge.Message) error {
	if fs := n.session.detachStream(); fs != nil {
		fs.stop()
	}

	body := map[string]interface{}{
		"camera_id": n.session.CameraID(),
	}
	_, err := n.ctx.dispatcher().Call(http.MethodPost, "/api/camera/disconnect", body)
	n.session.settle(CamIdle, false)
	if err != nil {
		return err
	}

	out := visionbridge.NewMessage()
	out.Payload = map[string]interface{}{
		"camera_id": n.session.CameraID(),
		"connected": false,
	}
	out.Success = true
	out.Source = n.ctx.Name
	n.ctx.emit(out)
	n.ctx.setStatus(visionbridge.StatusFor(visionbridge.StatusReady, "", 0))
	return nil
}

func (n *CameraDisconnectNode) Close() {
	if fs := n.session.detachStream(); fs != nil {
		fs.stop()
	}
	n.ctx.clearStatus()
}
