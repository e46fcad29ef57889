package visionbridge

import (
	"time"

	"github.com/flowvision/vision-bridge/internal"
)

// StatusKind enumerates the lifecycle states a node can display.
type StatusKind int

const (
	StatusClear StatusKind = iota
	StatusReady
	StatusProcessing
	StatusSuccess
	StatusError
	StatusNoResults
)

// Status is the visual tuple shown on a node: fill color, indicator shape,
// label text. The zero Status means "no status shown".
type Status struct {
	Fill  string
	Shape string
	Text  string
}

// StatusFor maps a status kind plus optional text and elapsed time to the
// visual tuple. Elapsed time is appended to success and no-results labels.
func StatusFor(kind StatusKind, text string, elapsed time.Duration) Status {
	switch kind {
	case StatusReady:
		return Status{Fill: "grey", Shape: "dot", Text: "ready"}
	case StatusProcessing:
		if text == "" {
			text = "processing"
		}
		return Status{Fill: "blue", Shape: "dot", Text: text}
	case StatusSuccess:
		label := "success"
		if text != "" {
			label = text
		}
		if elapsed > 0 {
			label += " (" + internal.FormatMs(elapsed) + ")"
		}
		return Status{Fill: "green", Shape: "dot", Text: label}
	case StatusError:
		if text == "" {
			text = "error"
		}
		return Status{Fill: "red", Shape: "ring", Text: text}
	case StatusNoResults:
		label := "no results"
		if text != "" {
			label = text
		}
		if elapsed > 0 {
			label += " (" + internal.FormatMs(elapsed) + ")"
		}
		return Status{Fill: "yellow", Shape: "ring", Text: label}
	default:
		return Status{}
	}
}
