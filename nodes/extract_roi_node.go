package nodes

import (
	"errors"
	"net/http"
	"time"

	visionbridge "github.com/flowvision/vision-bridge"
)

var errMissingROI = errors.New("no roi on the inbound message or node config")

type ExtractROIConfig struct {
	// ROI used when the inbound message carries none.
	ROI *visionbridge.ROI

	// FrameLimits optionally bounds the ROI to the frame size.
	FrameLimits *visionbridge.ROILimits
}

// ExtractROINode proxies POST /api/image/extract-roi: it cuts a region out
// of a stored image and emits the id of the new image.
type ExtractROINode struct {
	ctx NodeContext
	cfg ExtractROIConfig
}

func NewExtractROINode(ctx NodeContext, cfg ExtractROIConfig) *ExtractROINode {
	return &ExtractROINode{ctx: ctx, cfg: cfg}
}

func (n *ExtractROINode) OnInput(msg *visionbridge.Message) error {
	imageID, err := visionbridge.ValidateImageID(msg.ResolveImageID())
	if err != nil {
		return n.ctx.rejectInput(err, msg)
	}

	roi := msg.ResolveROI()
	if roi == nil {
		roi = n.cfg.ROI
	}
	if roi == nil {
		return n.ctx.rejectInput(errMissingROI, msg)
	}
	if err := visionbridge.ValidateROI(roi, n.cfg.FrameLimits); err != nil {
		return n.ctx.rejectInput(err, msg)
	}

	body := map[string]interface{}{
		"image_id": imageID,
		"roi":      roi,
	}

	started := time.Now()
	env, err := n.ctx.dispatcher().Call(http.MethodPost, "/api/image/extract-roi", body)
	if err != nil {
		return err
	}
	if env.ImageID == "" {
		n.ctx.setStatus(visionbridge.StatusFor(visionbridge.StatusNoResults, "", time.Since(started)))
		return nil
	}

	out := visionbridge.NewMessage()
	out.ImageID = env.ImageID
	out.ROI = roi
	out.Payload = map[string]interface{}{
		"image_id":  env.ImageID,
		"source_id": imageID,
		"thumbnail": env.ThumbnailBase64,
	}
	out.Success = true
	out.ProcessingTimeMS = env.ProcessingTimeMS
	out.Source = n.ctx.Name
	n.ctx.emit(out)
	n.ctx.setStatus(visionbridge.StatusFor(visionbridge.StatusSuccess, "", time.Since(started)))
	return nil
}

func (n *ExtractROINode) Close() {
	n.ctx.clearStatus()
}
