package nodes

import (
	"errors"
	"net/http"
	"time"

	visionbridge "github.com/flowvision/vision-bridge"
)

var errEmptyImport = errors.New("inbound message has no base64 image payload")

// ImageImportNode proxies POST /api/image/import. The inbound payload is an
// opaque base64 image, either directly as a string or under an image_base64
// key; the backend replies with the id it stored the image under.
type ImageImportNode struct {
	ctx NodeContext
}

func NewImageImportNode(ctx NodeContext) *ImageImportNode {
	return &ImageImportNode{ctx: ctx}
}

func (n *ImageImportNode) OnInput(msg *visionbridge.Message) error {
	encoded := importPayload(msg)
	if encoded == "" {
		return n.ctx.rejectInput(errEmptyImport, msg)
	}

	body := map[string]interface{}{
		"image_base64": encoded,
	}

	started := time.Now()
	env, err := n.ctx.dispatcher().Call(http.MethodPost, "/api/image/import", body)
	if err != nil {
		return err
	}
	if env.ImageID == "" {
		n.ctx.setStatus(visionbridge.StatusFor(visionbridge.StatusNoResults, "", time.Since(started)))
		return nil
	}

	out := visionbridge.NewMessage()
	out.ImageID = env.ImageID
	out.Payload = map[string]interface{}{
		"image_id":  env.ImageID,
		"thumbnail": env.ThumbnailBase64,
	}
	out.Success = true
	out.ProcessingTimeMS = env.ProcessingTimeMS
	out.Source = n.ctx.Name
	n.ctx.emit(out)
	n.ctx.setStatus(visionbridge.StatusFor(visionbridge.StatusSuccess, "", time.Since(started)))
	return nil
}

func (n *ImageImportNode) Close() {
	n.ctx.clearStatus()
}

func importPayload(msg *visionbridge.Message) string {
	switch p := msg.Payload.(type) {
	case string:
		return p
	case map[string]interface{}:
		if s, ok := p["image_base64"].(string); ok {
			return s
		}
	}
	return ""
}
