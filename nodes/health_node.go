package nodes

import (
	"net/http"
	"time"

	visionbridge "github.com/flowvision/vision-bridge"
)

// HealthNode proxies GET /api/system/health. It is typically triggered by an
// inject-style event to verify the backend is reachable before a flow runs.
type HealthNode struct {
	ctx NodeContext
}

func NewHealthNode(ctx NodeContext) *HealthNode {
	return &HealthNode{ctx: ctx}
}

func (n *HealthNode) OnInput(msg *visionbridge.Message) error {
	started := time.Now()
	env, err := n.ctx.dispatcher().Call(http.MethodGet, "/api/system/health", nil)
	if err != nil {
		return err
	}

	healthy := env.Success == nil || *env.Success
	out := visionbridge.NewMessage()
	out.Payload = map[string]interface{}{
		"healthy": healthy,
		"detail":  env.Detail,
	}
	out.Success = healthy
	out.Source = n.ctx.Name
	n.ctx.emit(out)
	if healthy {
		n.ctx.setStatus(visionbridge.StatusFor(visionbridge.StatusSuccess, "healthy", time.Since(started)))
	} else {
		n.ctx.setStatus(visionbridge.StatusFor(visionbridge.StatusError, "unhealthy", 0))
	}
	return nil
}

func (n *HealthNode) Close() {
	n.ctx.clearStatus()
}
