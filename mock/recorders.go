package mock

import (
	"sync"

	visionbridge "github.com/flowvision/vision-bridge"
)

// StatusRecorder captures every status a node sets.
type StatusRecorder struct {
	mu       sync.Mutex
	Statuses []visionbridge.Status
}

func (r *StatusRecorder) SetStatus(s visionbridge.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Statuses = append(r.Statuses, s)
}

// Last returns the most recent status, or the zero Status.
func (r *StatusRecorder) Last() visionbridge.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Statuses) == 0 {
		return visionbridge.Status{}
	}
	return r.Statuses[len(r.Statuses)-1]
}

// ErrorRecorder captures every error a node reports.
type ErrorRecorder struct {
	mu     sync.Mutex
	Errors []error
}

func (r *ErrorRecorder) ReportError(err error, msg *visionbridge.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, err)
}

// Count returns how many errors were reported.
func (r *ErrorRecorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Errors)
}

// EmitRecorder captures every outbound message, in emission order.
type EmitRecorder struct {
	mu       sync.Mutex
	Messages []*visionbridge.Message
}

func (r *EmitRecorder) Emit(msg *visionbridge.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Messages = append(r.Messages, msg)
}

// Count returns how many messages were emitted.
func (r *EmitRecorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Messages)
}
