package nodes

import (
	"testing"

	visionbridge "github.com/flowvision/vision-bridge"
	"github.com/flowvision/vision-bridge/mock"
)

type testHarness struct {
	backend *mock.Backend
	status  *mock.StatusRecorder
	errors  *mock.ErrorRecorder
	emitted *mock.EmitRecorder
	ctx     NodeContext
}

func newHarness(t *testing.T, name string) *testHarness {
	return newHarnessAt(t, name, "http://backend.test")
}

// newHarnessAt points the bridge at a specific base URL; stream tests use it
// with a live httptest server so the websocket dial has somewhere to land.
func newHarnessAt(t *testing.T, name, baseURL string) *testHarness {
	t.Helper()
	h := &testHarness{
		backend: mock.NewBackend(),
		status:  &mock.StatusRecorder{},
		errors:  &mock.ErrorRecorder{},
		emitted: &mock.EmitRecorder{},
	}
	bridge := visionbridge.New(&visionbridge.Config{
		BaseURL:   baseURL,
		TimeoutMs: 1000,
		Transport: h.backend,
	})
	h.ctx = NodeContext{
		Bridge: bridge,
		Name:   name,
		Status: h.status,
		Errors: h.errors,
		Emit:   h.emitted.Emit,
	}
	return h
}

func TestEdgeDetectEmitsPerDetectionInOrder(t *testing.T) {
	h := newHarness(t, "edge-1")
	h.backend.Handle("POST", "/api/vision/edge-detect", 200, map[string]interface{}{
		"objects": []map[string]interface{}{
			{
				"object_id":    "edge_1",
				"object_type":  "contour",
				"bounding_box": map[string]int{"x": 0, "y": 0, "width": 10, "height": 10},
				"center":       map[string]int{"x": 5, "y": 5},
				"confidence":   0.9,
				"area":         55.5,
			},
			{
				"object_id":    "edge_2",
				"object_type":  "contour",
				"bounding_box": map[string]int{"x": 20, "y": 20, "width": 8, "height": 8},
				"center":       map[string]int{"x": 24, "y": 24},
				"confidence":   0.7,
			},
		},
		"thumbnail_base64":   "dGh1bWI=",
		"processing_time_ms": 42.0,
	})
	node := NewEdgeDetectNode(h.ctx, EdgeDetectConfig{})

	msg := visionbridge.NewMessage()
	msg.ImageID = "img_0001"
	if err := node.OnInput(msg); err != nil {
		t.Fatal(err)
	}

	if h.emitted.Count() != 2 {
		t.Fatalf("emitted %d messages, want 2", h.emitted.Count())
	}
	first, ok := h.emitted.Messages[0].Payload.(*visionbridge.VisionObject)
	if !ok {
		t.Fatalf("payload type %T", h.emitted.Messages[0].Payload)
	}
	second := h.emitted.Messages[1].Payload.(*visionbridge.VisionObject)
	if first.ObjectID != "edge_1" || second.ObjectID != "edge_2" {
		t.Fatalf("emission order broken: %q then %q", first.ObjectID, second.ObjectID)
	}
	if first.Area == nil || *first.Area != 55.5 {
		t.Errorf("first area = %v, want 55.5", first.Area)
	}
	if second.Area != nil {
		t.Errorf("second area should be absent, got %v", *second.Area)
	}
	for i, out := range h.emitted.Messages {
		if !out.Success || out.Source != "edge-1" || out.ProcessingTimeMS != 42 {
			t.Errorf("message %d metadata = %+v", i, out)
		}
		if out.ImageID != "img_0001" {
			t.Errorf("message %d image id = %q", i, out.ImageID)
		}
	}
	if h.status.Last().Fill != "green" {
		t.Errorf("final status = %+v, want success", h.status.Last())
	}
}

func TestEdgeDetectZeroDetectionsEmitsNothing(t *testing.T) {
	h := newHarness(t, "edge-1")
	h.backend.Handle("POST", "/api/vision/edge-detect", 200, map[string]interface{}{
		"objects":            []map[string]interface{}{},
		"processing_time_ms": 5.0,
	})
	node := NewEdgeDetectNode(h.ctx, EdgeDetectConfig{})

	msg := visionbridge.NewMessage()
	msg.ImageID = "img_0001"
	if err := node.OnInput(msg); err != nil {
		t.Fatal(err)
	}

	if h.emitted.Count() != 0 {
		t.Fatalf("emitted %d messages, want 0", h.emitted.Count())
	}
	if h.errors.Count() != 0 {
		t.Fatalf("zero detections is not an error, got %d reports", h.errors.Count())
	}
	last := h.status.Last()
	if last.Fill != "yellow" {
		t.Fatalf("status = %+v, want no-results yellow", last)
	}
}

func TestEdgeDetectRejectsBadImageID(t *testing.T) {
	h := newHarness(t, "edge-1")
	node := NewEdgeDetectNode(h.ctx, EdgeDetectConfig{})

	msg := visionbridge.NewMessage()
	msg.ImageID = "../secret"
	if err := node.OnInput(msg); err == nil {
		t.Fatal("expected validation error")
	}
	if h.backend.Requests() != 0 {
		t.Fatalf("backend saw %d requests, validation must happen first", h.backend.Requests())
	}
	if h.errors.Count() != 1 {
		t.Fatalf("error sink received %d reports, want 1", h.errors.Count())
	}
}

func TestEdgeDetectRejectsBadROI(t *testing.T) {
	h := newHarness(t, "edge-1")
	node := NewEdgeDetectNode(h.ctx, EdgeDetectConfig{})

	msg := visionbridge.NewMessage()
	msg.ImageID = "img_0001"
	msg.ROI = &visionbridge.ROI{X: -1, Y: 0, Width: 10, Height: 10}
	if err := node.OnInput(msg); err == nil {
		t.Fatal("expected roi validation error")
	}
	if h.backend.Requests() != 0 {
		t.Fatalf("backend saw %d requests", h.backend.Requests())
	}
}
