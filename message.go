package visionbridge

import "github.com/google/uuid"

// Message is one flow event exchanged with the surrounding runtime. Inbound
// messages carry an image identifier at the top level or nested in a map
// payload, plus optional ROI/contour context from upstream detections.
// Outbound messages carry a VisionObject payload and root-level metadata.
type Message struct {
	ID      string
	ImageID string
	ROI     *ROI
	Contour []Point
	Payload interface{}

	// Root-level metadata stamped onto outbound messages.
	Success          bool
	ProcessingTimeMS float64
	Source           string
}

// NewMessage returns a message with a fresh id.
func NewMessage() *Message {
	return &Message{ID: uuid.NewString()}
}

// ResolveImageID returns the image identifier carried by the message: the
// top-level field first, then an image_id key inside a map payload, then the
// image id of a VisionObject payload.
func (m *Message) ResolveImageID() string {
	if m == nil {
		return ""
	}
	if m.ImageID != "" {
		return m.ImageID
	}
	switch p := m.Payload.(type) {
	case map[string]interface{}:
		if id, ok := p["image_id"].(string); ok {
			return id
		}
	case *VisionObject:
		return p.ImageID
	case VisionObject:
		return p.ImageID
	}
	return ""
}

// ResolveROI returns the region of interest for this message: the top-level
// field first, then the bounding box of a VisionObject payload.
func (m *Message) ResolveROI() *ROI {
	if m == nil {
		return nil
	}
	if m.ROI != nil {
		return m.ROI
	}
	if vo, ok := m.Payload.(*VisionObject); ok {
		bb := vo.BoundingBox
		if bb.Width > 0 && bb.Height > 0 {
			return &ROI{X: bb.X, Y: bb.Y, Width: bb.Width, Height: bb.Height}
		}
	}
	return nil
}
