package nodes

import (
	"net/http"
	"time"

	visionbridge "github.com/flowvision/vision-bridge"
)

const defaultArucoDictionary = "DICT_4X4_50"

type ArucoDetectConfig struct {
	Dictionary   string // ArUco dictionary name; empty means the default
	MarkerLength float64
}

// ArucoDetectNode proxies POST /api/vision/aruco-detect. One outbound
// message is emitted per detected marker, in backend order.
type ArucoDetectNode struct {
	ctx NodeContext
	cfg ArucoDetectConfig
}

func NewArucoDetectNode(ctx NodeContext, cfg ArucoDetectConfig) *ArucoDetectNode {
	if cfg.Dictionary == "" {
		cfg.Dictionary = defaultArucoDictionary
	}
	return &ArucoDetectNode{ctx: ctx, cfg: cfg}
}

func (n *ArucoDetectNode) OnInput(msg *visionbridge.Message) error {
	imageID, err := visionbridge.ValidateImageID(msg.ResolveImageID())
	if err != nil {
		return n.ctx.rejectInput(err, msg)
	}

	params := map[string]interface{}{
		"dictionary": n.cfg.Dictionary,
	}
	if n.cfg.MarkerLength > 0 {
		params["marker_length"] = n.cfg.MarkerLength
	}
	body := map[string]interface{}{
		"image_id": imageID,
		"params":   params,
	}

	started := time.Now()
	env, err := n.ctx.dispatcher().Call(http.MethodPost, "/api/vision/aruco-detect", body)
	if err != nil {
		return err
	}
	n.ctx.emitDetections(env, imageID, started)
	return nil
}

func (n *ArucoDetectNode) Close() {
	n.ctx.clearStatus()
}
