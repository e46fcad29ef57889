package visionbridge

// ROI is a rectangular region of interest in pixel coordinates.
type ROI struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type BoundingBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// RawObject is one detection exactly as the backend encodes it. Optional
// fields are pointers so that an absent field stays distinguishable from a
// zero value.
type RawObject struct {
	ObjectID    string                 `json:"object_id"`
	ObjectType  string                 `json:"object_type"`
	BoundingBox BoundingBox            `json:"bounding_box"`
	Center      Point                  `json:"center"`
	Confidence  float64                `json:"confidence"`
	Properties  map[string]interface{} `json:"properties"`
	Area        *float64               `json:"area"`
	Perimeter   *float64               `json:"perimeter"`
	Rotation    *float64               `json:"rotation"`
	Contour     []Point                `json:"contour"`
}

// Envelope is the backend's response body shape shared by every endpoint.
type Envelope struct {
	Success          *bool       `json:"success"`
	Detail           string      `json:"detail"`
	Objects          []RawObject `json:"objects"`
	ThumbnailBase64  string      `json:"thumbnail_base64"`
	ProcessingTimeMS float64     `json:"processing_time_ms"`

	// Flat camera-capture fields still emitted by older backend revisions.
	ImageID  string                 `json:"image_id"`
	Metadata map[string]interface{} `json:"metadata"`
}
