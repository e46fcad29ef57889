package visionbridge

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewVisionObjectOptionalFields(t *testing.T) {
	rotation := 12.5
	raw := RawObject{
		ObjectID:    "edge_1",
		ObjectType:  "contour",
		BoundingBox: BoundingBox{X: 10, Y: 20, Width: 30, Height: 40},
		Center:      Point{X: 25, Y: 40},
		Confidence:  0.92,
		Rotation:    &rotation,
		// Area, Perimeter and Contour deliberately absent.
	}

	vo := NewVisionObject(raw, "img_0001", "2026-08-27T10:00:00Z", "dGh1bWI=")

	if vo.Area != nil {
		t.Errorf("area should be absent, got %v", *vo.Area)
	}
	if vo.Rotation == nil || *vo.Rotation != 12.5 {
		t.Errorf("rotation = %v, want 12.5", vo.Rotation)
	}
	if vo.ImageID != "img_0001" || vo.Timestamp != "2026-08-27T10:00:00Z" || vo.Thumbnail != "dGh1bWI=" {
		t.Errorf("caller context not injected: %+v", vo)
	}
	if vo.Properties == nil || len(vo.Properties) != 0 {
		t.Errorf("properties should default to an empty map, got %v", vo.Properties)
	}

	// Absence must survive encoding: no "area" key at all downstream.
	data, err := json.Marshal(vo)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), `"area"`) {
		t.Errorf("encoded object leaks an area key: %s", data)
	}
	if !strings.Contains(string(data), `"rotation":12.5`) {
		t.Errorf("encoded object lost rotation: %s", data)
	}
}

func TestNewVisionObjectSynthesizesID(t *testing.T) {
	raw := RawObject{ObjectType: "match"}
	vo := NewVisionObject(raw, "img_0001_abcdef", "2026-08-27T10:00:00Z", "")
	if vo.ObjectID != "obj_img_0001" {
		t.Errorf("ObjectID = %q, want obj_img_0001", vo.ObjectID)
	}

	short := NewVisionObject(raw, "abc", "2026-08-27T10:00:00Z", "")
	if short.ObjectID != "obj_abc" {
		t.Errorf("ObjectID = %q, want obj_abc", short.ObjectID)
	}
}

func TestMessageResolveImageID(t *testing.T) {
	msg := &Message{ImageID: "top_level"}
	if got := msg.ResolveImageID(); got != "top_level" {
		t.Errorf("got %q", got)
	}

	msg = &Message{Payload: map[string]interface{}{"image_id": "nested"}}
	if got := msg.ResolveImageID(); got != "nested" {
		t.Errorf("got %q", got)
	}

	msg = &Message{Payload: &VisionObject{ImageID: "from_object"}}
	if got := msg.ResolveImageID(); got != "from_object" {
		t.Errorf("got %q", got)
	}

	if got := (&Message{}).ResolveImageID(); got != "" {
		t.Errorf("empty message resolved to %q", got)
	}
}

func TestMessageResolveROI(t *testing.T) {
	msg := &Message{Payload: &VisionObject{BoundingBox: BoundingBox{X: 1, Y: 2, Width: 3, Height: 4}}}
	roi := msg.ResolveROI()
	if roi == nil || roi.X != 1 || roi.Height != 4 {
		t.Fatalf("roi = %+v", roi)
	}

	explicit := &ROI{X: 9, Y: 9, Width: 9, Height: 9}
	msg.ROI = explicit
	if got := msg.ResolveROI(); got != explicit {
		t.Fatal("top-level roi should win")
	}
}
