package nodes

import (
	"net/http"
	"time"

	visionbridge "github.com/flowvision/vision-bridge"
)

const defaultMatchThreshold = 0.8

type TemplateMatchConfig struct {
	TemplateID string
	Threshold  float64 // match confidence in [0,1]; 0 means the default
}

// TemplateMatchNode proxies POST /api/vision/template-match. A 404 from the
// backend means the template has not been learned yet; it surfaces as a
// classified not-found error like any other expected absence.
type TemplateMatchNode struct {
	ctx NodeContext
	cfg TemplateMatchConfig
}

func NewTemplateMatchNode(ctx NodeContext, cfg TemplateMatchConfig) *TemplateMatchNode {
	if cfg.Threshold == 0 {
		cfg.Threshold = defaultMatchThreshold
	}
	return &TemplateMatchNode{ctx: ctx, cfg: cfg}
}

func (n *TemplateMatchNode) OnInput(msg *visionbridge.Message) error {
	imageID, err := visionbridge.ValidateImageID(msg.ResolveImageID())
	if err != nil {
		return n.ctx.rejectInput(err, msg)
	}
	if err := visionbridge.ValidateThreshold(n.cfg.Threshold); err != nil {
		return n.ctx.rejectInput(err, msg)
	}

	params := map[string]interface{}{
		"threshold": n.cfg.Threshold,
	}
	if n.cfg.TemplateID != "" {
		params["template_id"] = n.cfg.TemplateID
	}
	body := map[string]interface{}{
		"image_id": imageID,
		"params":   params,
	}

	started := time.Now()
	env, err := n.ctx.dispatcher().Call(http.MethodPost, "/api/vision/template-match", body)
	if err != nil {
		return err
	}
	n.ctx.emitDetections(env, imageID, started)
	return nil
}

func (n *TemplateMatchNode) Close() {
	n.ctx.clearStatus()
}
