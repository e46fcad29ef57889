// vision_object.go
// -----------------
// The canonical VisionObject record emitted by every vision node, and the
// normalizer that maps a raw backend detection into it.
package visionbridge

// VisionObject is the canonical detection record attached to outbound
// messages. Optional fields use pointers with omitempty so that a field the
// backend never sent stays absent downstream instead of becoming a null or a
// zero value.
type VisionObject struct {
	ObjectID    string                 `json:"object_id,omitempty"`
	ObjectType  string                 `json:"object_type"`
	ImageID     string                 `json:"image_id"`
	Timestamp   string                 `json:"timestamp"`
	BoundingBox BoundingBox            `json:"bounding_box"`
	Center      Point                  `json:"center"`
	Confidence  float64                `json:"confidence"`
	Thumbnail   string                 `json:"thumbnail,omitempty"`
	Properties  map[string]interface{} `json:"properties"`
	Area        *float64               `json:"area,omitempty"`
	Perimeter   *float64               `json:"perimeter,omitempty"`
	Rotation    *float64               `json:"rotation,omitempty"`
	Contour     []Point                `json:"contour,omitempty"`
}

// NewVisionObject maps one backend detection into the canonical record.
// imageID, timestamp and thumbnail come from the caller's context: the
// backend does not echo them. Area, perimeter, rotation and contour are
// copied only when the backend sent them.
func NewVisionObject(raw RawObject, imageID, timestamp, thumbnail string) VisionObject {
	vo := VisionObject{
		ObjectID:    raw.ObjectID,
		ObjectType:  raw.ObjectType,
		ImageID:     imageID,
		Timestamp:   timestamp,
		BoundingBox: raw.BoundingBox,
		Center:      raw.Center,
		Confidence:  raw.Confidence,
		Thumbnail:   thumbnail,
		Properties:  raw.Properties,
		Area:        raw.Area,
		Perimeter:   raw.Perimeter,
		Rotation:    raw.Rotation,
		Contour:     raw.Contour,
	}
	if vo.ObjectID == "" {
		vo.ObjectID = synthesizeObjectID(imageID)
	}
	if vo.Properties == nil {
		vo.Properties = make(map[string]interface{})
	}
	return vo
}

// synthesizeObjectID derives a stable fallback id from the first characters
// of the image id when the backend did not assign one.
func synthesizeObjectID(imageID string) string {
	id := imageID
	if len(id) > 8 {
		id = id[:8]
	}
	return "obj_" + id
}
