package nodes

import (
	"net/http"
	"time"

	visionbridge "github.com/flowvision/vision-bridge"
)

const defaultColorTolerance = 0.1

type ColorDetectConfig struct {
	TargetColor string  // hex color, e.g. "#ff0000"
	Tolerance   float64 // color distance tolerance in [0,1]; 0 means the default
	MinArea     int     // minimum blob area in pixels
}

// ColorDetectNode proxies POST /api/vision/color-detect.
type ColorDetectNode struct {
	ctx NodeContext
	cfg ColorDetectConfig
}

func NewColorDetectNode(ctx NodeContext, cfg ColorDetectConfig) *ColorDetectNode {
	if cfg.Tolerance == 0 {
		cfg.Tolerance = defaultColorTolerance
	}
	return &ColorDetectNode{ctx: ctx, cfg: cfg}
}

func (n *ColorDetectNode) OnInput(msg *visionbridge.Message) error {
	imageID, err := visionbridge.ValidateImageID(msg.ResolveImageID())
	if err != nil {
		return n.ctx.rejectInput(err, msg)
	}
	if err := visionbridge.ValidateNumericRange(n.cfg.Tolerance, 0, 1, "tolerance"); err != nil {
		return n.ctx.rejectInput(err, msg)
	}

	params := map[string]interface{}{
		"target_color": n.cfg.TargetColor,
		"tolerance":    n.cfg.Tolerance,
	}
	if n.cfg.MinArea > 0 {
		params["min_area"] = n.cfg.MinArea
	}
	body := map[string]interface{}{
		"image_id": imageID,
		"params":   params,
	}

	started := time.Now()
	env, err := n.ctx.dispatcher().Call(http.MethodPost, "/api/vision/color-detect", body)
	if err != nil {
		return err
	}
	n.ctx.emitDetections(env, imageID, started)
	return nil
}

func (n *ColorDetectNode) Close() {
	n.ctx.clearStatus()
}
