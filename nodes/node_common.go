// Package nodes contains the vision node wrappers: one thin type per backend
// operation, all built on the shared visionbridge layer. Each node validates
// its input, builds the request, calls the dispatcher, and reshapes the
// response into outbound VisionObject messages.
package nodes

import (
	"time"

	visionbridge "github.com/flowvision/vision-bridge"
	"github.com/flowvision/vision-bridge/internal"
)

// NodeContext wires a node into the host flow runtime: the shared bridge,
// the node's label, and the runtime-provided sinks. It replaces the source's
// duck-typed config-node lookup with explicit construction-time injection.
type NodeContext struct {
	Bridge *visionbridge.VisionBridge
	Name   string
	Status visionbridge.StatusSink
	Errors visionbridge.ErrorSink
	Emit   func(*visionbridge.Message)
}

func (c NodeContext) dispatcher() *visionbridge.Dispatcher {
	return c.Bridge.Dispatcher(c.Name, c.Status, c.Errors)
}

func (c NodeContext) setStatus(s visionbridge.Status) {
	if c.Status != nil {
		c.Status.SetStatus(s)
	}
}

func (c NodeContext) clearStatus() {
	c.setStatus(visionbridge.StatusFor(visionbridge.StatusClear, "", 0))
}

func (c NodeContext) emit(msg *visionbridge.Message) {
	if c.Emit != nil {
		c.Emit(msg)
	}
}

// rejectInput reports a validation failure through the status and error
// sinks and hands the error back for the caller's flow control.
func (c NodeContext) rejectInput(err error, msg *visionbridge.Message) error {
	c.setStatus(visionbridge.StatusFor(visionbridge.StatusError, "invalid input", 0))
	if c.Errors != nil {
		c.Errors.ReportError(err, msg)
	}
	return err
}

// reportFailure mirrors the dispatcher's failure reporting for errors that
// happen outside a dispatch, such as the stream socket dial.
func (c NodeContext) reportFailure(cerr *visionbridge.ClassifiedError, msg *visionbridge.Message) error {
	c.setStatus(visionbridge.StatusFor(visionbridge.StatusError, cerr.Kind.Label(), 0))
	if c.Errors != nil {
		c.Errors.ReportError(cerr, msg)
	}
	return cerr
}

// emitDetections produces one outbound message per backend detection, in
// backend array order; no reordering, deduplication or re-ranking. Zero
// detections emit nothing and show "no results". Returns the emission count.
func (c NodeContext) emitDetections(env *visionbridge.Envelope, imageID string, started time.Time) int {
	elapsed := time.Since(started)
	if len(env.Objects) == 0 {
		c.setStatus(visionbridge.StatusFor(visionbridge.StatusNoResults, "", elapsed))
		return 0
	}

	timestamp := internal.NowISO8601()
	for _, raw := range env.Objects {
		obj := visionbridge.NewVisionObject(raw, imageID, timestamp, env.ThumbnailBase64)
		out := visionbridge.NewMessage()
		out.ImageID = imageID
		out.Payload = &obj
		out.Success = true
		out.ProcessingTimeMS = env.ProcessingTimeMS
		out.Source = c.Name
		c.emit(out)
	}
	c.setStatus(visionbridge.StatusFor(visionbridge.StatusSuccess, "", elapsed))
	return len(env.Objects)
}
