package nodes

import (
	"net/http"
	"time"

	visionbridge "github.com/flowvision/vision-bridge"
)

type EdgeDetectConfig struct {
	// Params holds sparse camelCase overrides merged into the backend's
	// defaults by visionbridge.BuildEdgeParams.
	Params map[string]interface{}

	// FrameLimits optionally bounds an upstream ROI to the frame size.
	FrameLimits *visionbridge.ROILimits
}

// EdgeDetectNode proxies POST /api/vision/edge-detect. An ROI carried by the
// inbound message restricts detection to that region.
type EdgeDetectNode struct {
	ctx NodeContext
	cfg EdgeDetectConfig
}

func NewEdgeDetectNode(ctx NodeContext, cfg EdgeDetectConfig) *EdgeDetectNode {
	return &EdgeDetectNode{ctx: ctx, cfg: cfg}
}

func (n *EdgeDetectNode) OnInput(msg *visionbridge.Message) error {
	imageID, err := visionbridge.ValidateImageID(msg.ResolveImageID())
	if err != nil {
		return n.ctx.rejectInput(err, msg)
	}

	body := map[string]interface{}{
		"image_id": imageID,
		"params":   visionbridge.BuildEdgeParams(n.cfg.Params),
	}
	if roi := msg.ResolveROI(); roi != nil {
		if err := visionbridge.ValidateROI(roi, n.cfg.FrameLimits); err != nil {
			return n.ctx.rejectInput(err, msg)
		}
		body["roi"] = roi
	}

	started := time.Now()
	env, err := n.ctx.dispatcher().Call(http.MethodPost, "/api/vision/edge-detect", body)
	if err != nil {
		return err
	}
	n.ctx.emitDetections(env, imageID, started)
	return nil
}

func (n *EdgeDetectNode) Close() {
	n.ctx.clearStatus()
}
