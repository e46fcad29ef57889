package nodes

import (
	"net/http"
	"time"

	visionbridge "github.com/flowvision/vision-bridge"
)

type RotationDetectConfig struct {
	// ReferenceAngle is the zero-rotation reference in degrees, [-360,360].
	ReferenceAngle float64
}

// RotationDetectNode proxies POST /api/vision/rotation-detect. Detections
// carry the measured rotation in the VisionObject rotation field.
type RotationDetectNode struct {
	ctx NodeContext
	cfg RotationDetectConfig
}

func NewRotationDetectNode(ctx NodeContext, cfg RotationDetectConfig) *RotationDetectNode {
	return &RotationDetectNode{ctx: ctx, cfg: cfg}
}

func (n *RotationDetectNode) OnInput(msg *visionbridge.Message) error {
	imageID, err := visionbridge.ValidateImageID(msg.ResolveImageID())
	if err != nil {
		return n.ctx.rejectInput(err, msg)
	}
	if err := visionbridge.ValidateNumericRange(n.cfg.ReferenceAngle, -360, 360, "reference angle"); err != nil {
		return n.ctx.rejectInput(err, msg)
	}

	body := map[string]interface{}{
		"image_id": imageID,
		"params": map[string]interface{}{
			"reference_angle": n.cfg.ReferenceAngle,
		},
	}

	started := time.Now()
	env, err := n.ctx.dispatcher().Call(http.MethodPost, "/api/vision/rotation-detect", body)
	if err != nil {
		return err
	}
	n.ctx.emitDetections(env, imageID, started)
	return nil
}

func (n *RotationDetectNode) Close() {
	n.ctx.clearStatus()
}
