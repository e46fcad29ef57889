package nodes

import (
	"errors"
	"net/http"
	"time"

	visionbridge "github.com/flowvision/vision-bridge"
)

var errNotConnected = errors.New("camera is not connected")

// CameraCaptureNode proxies POST /api/camera/capture. The backend replies
// with the enveloped contract; the captured image id is taken from the first
// object's properties, falling back to the envelope's top-level image_id for
// older backend revisions.
type CameraCaptureNode struct {
	ctx     NodeContext
	session *CameraSession
}

func NewCameraCaptureNode(ctx NodeContext, session *CameraSession) *CameraCaptureNode {
	return &CameraCaptureNode{ctx: ctx, session: session}
}

func (n *CameraCaptureNode) OnInput(msg *visionbridge.Message) error {
	if !n.session.Connected() {
		return n.ctx.rejectInput(errNotConnected, msg)
	}

	body := map[string]interface{}{
		"camera_id": n.session.CameraID(),
	}

	started := time.Now()
	env, err := n.ctx.dispatcher().Call(http.MethodPost, "/api/camera/capture", body)
	if err != nil {
		return err
	}

	imageID := env.ImageID
	if len(env.Objects) > 0 {
		if id, ok := env.Objects[0].Properties["image_id"].(string); ok && id != "" {
			imageID = id
		}
	}
	if imageID == "" {
		n.ctx.setStatus(visionbridge.StatusFor(visionbridge.StatusNoResults, "", time.Since(started)))
		return nil
	}

	out := visionbridge.NewMessage()
	out.ImageID = imageID
	out.Payload = map[string]interface{}{
		"image_id":  imageID,
		"camera_id": n.session.CameraID(),
		"thumbnail": env.ThumbnailBase64,
		"metadata":  env.Metadata,
	}
	out.Success = true
	out.ProcessingTimeMS = env.ProcessingTimeMS
	out.Source = n.ctx.Name
	n.ctx.emit(out)
	n.ctx.setStatus(visionbridge.StatusFor(visionbridge.StatusSuccess, "", time.Since(started)))
	return nil
}

func (n *CameraCaptureNode) Close() {
	n.ctx.clearStatus()
}
