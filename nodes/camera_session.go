// camera_session.go
// ------------------
// Explicit state machine shared by the camera nodes. The source of this
// behavior was a set of node-local flags mutated across async callbacks;
// here transitions happen only when the in-flight operation completes, so
// overlapping connect/start/stop requests are rejected instead of racing.
package nodes

import (
	"fmt"
	"sync"
)

type CameraState int

const (
	CamIdle CameraState = iota
	CamConnecting
	CamStreaming
	CamStopping
)

func (s CameraState) String() string {
	switch s {
	case CamIdle:
		return "idle"
	case CamConnecting:
		return "connecting"
	case CamStreaming:
		return "streaming"
	case CamStopping:
		return "stopping"
	default:
		return "unknown"
	}
}

// CameraSession tracks one camera's lifecycle across the connect, capture,
// disconnect and stream nodes that share it.
type CameraSession struct {
	mu        sync.Mutex
	state     CameraState
	cameraID  string
	connected bool
	stream    *frameStream
}

func NewCameraSession(cameraID string) *CameraSession {
	return &CameraSession{cameraID: cameraID}
}

func (s *CameraSession) CameraID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cameraID
}

func (s *CameraSession) State() CameraState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *CameraSession) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// begin transitions from exactly the given state into an in-flight state,
// rejecting overlapping operations.
func (s *CameraSession) begin(from, to CameraState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != from {
		return fmt.Errorf("camera %s is %s, operation requires %s", s.cameraID, s.state, from)
	}
	s.state = to
	return nil
}

// settle records the outcome of the in-flight operation.
func (s *CameraSession) settle(state CameraState, connected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.connected = connected
}

// attachStream records the active frame stream and enters the streaming
// state in one step.
func (s *CameraSession) attachStream(fs *frameStream) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stream = fs
	s.state = CamStreaming
}

// detachStream removes and returns the active frame stream, if any.
func (s *CameraSession) detachStream() *frameStream {
	s.mu.Lock()
	defer s.mu.Unlock()
	fs := s.stream
	s.stream = nil
	return fs
}
