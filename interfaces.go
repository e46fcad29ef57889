package visionbridge

// StatusSink receives status updates for a single node instance.
type StatusSink interface {
	SetStatus(Status)
}

// ErrorSink receives the full text of classified failures. The message is the
// inbound event being processed when the failure happened, if any.
type ErrorSink interface {
	ReportError(err error, msg *Message)
}

// Node is implemented by every vision node wrapper.
type Node interface {
	// OnInput handles one inbound flow event.
	OnInput(msg *Message) error

	// Close releases the node's resources and clears its status.
	Close()
}
