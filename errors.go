// errors.go
// ----------
// Classified errors returned by the request dispatcher. Every failure a node
// can observe carries one of a fixed set of kinds; the kind drives the short
// status label shown on the node while the detail text goes to the node's
// error sink.
package visionbridge

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotFound
	KindInvalidRequest
	KindAuth
	KindServer
	KindNetwork
	KindTimeout
	KindConfig
	KindRateLimited
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidRequest:
		return "invalid_request"
	case KindAuth:
		return "auth_error"
	case KindServer:
		return "server_error"
	case KindNetwork:
		return "network_error"
	case KindTimeout:
		return "timeout"
	case KindConfig:
		return "config_error"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "unknown"
	}
}

// Label returns the short status text a node shows for this kind.
func (k ErrorKind) Label() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalidRequest:
		return "invalid request"
	case KindAuth:
		return "unauthorized"
	case KindServer:
		return "server error"
	case KindNetwork:
		return "no connection"
	case KindTimeout:
		return "timeout"
	case KindConfig:
		return "no config"
	case KindRateLimited:
		return "rate limited"
	default:
		return "error"
	}
}

// ClassifiedError tags a dispatch failure with its category and carries the
// full human-readable detail.
type ClassifiedError struct {
	Kind   ErrorKind
	Detail string
}

func (e *ClassifiedError) Error() string {
	return e.Detail
}

func newClassified(kind ErrorKind, format string, args ...interface{}) *ClassifiedError {
	return &ClassifiedError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// AsClassified returns err as a ClassifiedError, wrapping anything
// unclassified under KindUnknown.
func AsClassified(err error) *ClassifiedError {
	var cerr *ClassifiedError
	if errors.As(err, &cerr) {
		return cerr
	}
	return &ClassifiedError{Kind: KindUnknown, Detail: err.Error()}
}

// classifyStatusCode maps a non-2xx HTTP status code to an error kind.
func classifyStatusCode(code int) ErrorKind {
	switch {
	case code == 404:
		return KindNotFound
	case code == 400:
		return KindInvalidRequest
	case code == 401 || code == 403:
		return KindAuth
	case code >= 500:
		return KindServer
	default:
		return KindUnknown
	}
}
