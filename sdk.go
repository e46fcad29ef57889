// sdk.go
// ------
// The sdk.go file contains the core VisionBridge struct and its methods.
// This is the main entry point of the package for users.
//
// Key functionalities include:
// - Initializing the bridge with New()
// - Handing out per-node request dispatchers with Dispatcher()
// - Registering node instances so Close() can tear them down
// - Owning the process-wide rate limiter and the logger
//
// The VisionBridge relies on a Limiter and per-node Dispatchers to keep
// behavior consistent across all vision nodes.
package visionbridge

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Defensive per-node dispatch limits applied when no override is given.
const (
	DefaultMaxRequestsPerWindow = 20
	DefaultRateWindow           = time.Second
)

type VisionBridge struct {
	mu        sync.Mutex
	config    *Config
	limiter   *Limiter
	logger    *zap.Logger
	loggerSet bool
	nodes     map[string]Node

	maxRequests int
	window      time.Duration

	Debug bool // If true and no logger was supplied, use a development logger
}

type Option func(*VisionBridge)

// WithLogger sets the bridge logger. The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(vb *VisionBridge) {
		vb.logger = logger
		vb.loggerSet = true
	}
}

// WithRateLimit overrides the defensive per-node dispatch limit.
func WithRateLimit(maxRequests int, window time.Duration) Option {
	return func(vb *VisionBridge) {
		vb.maxRequests = maxRequests
		vb.window = window
	}
}

func New(config *Config, opts ...Option) *VisionBridge {
	vb := &VisionBridge{
		config:      config,
		limiter:     NewLimiter(),
		logger:      zap.NewNop(),
		nodes:       make(map[string]Node),
		maxRequests: DefaultMaxRequestsPerWindow,
		window:      DefaultRateWindow,
	}
	for _, opt := range opts {
		opt(vb)
	}
	return vb
}

// SetDebug enables or disables debug logging. When enabled without an
// explicit logger, a development logger is swapped in.
func (vb *VisionBridge) SetDebug(enabled bool) {
	vb.mu.Lock()
	defer vb.mu.Unlock()
	vb.Debug = enabled
	if enabled && !vb.loggerSet {
		if logger, err := zap.NewDevelopment(); err == nil {
			vb.logger = logger
			vb.loggerSet = true
		}
	}
}

// Config returns the backend configuration the bridge was built with.
func (vb *VisionBridge) Config() *Config {
	vb.mu.Lock()
	defer vb.mu.Unlock()
	return vb.config
}

// Limiter returns the bridge's rate limiter, e.g. to Clear a node's window
// when the node is redeployed.
func (vb *VisionBridge) Limiter() *Limiter {
	return vb.limiter
}

// Dispatcher returns a request dispatcher bound to the given node id and
// sinks, wired to the bridge's config, limiter and logger.
func (vb *VisionBridge) Dispatcher(nodeID string, status StatusSink, errs ErrorSink) *Dispatcher {
	vb.mu.Lock()
	defer vb.mu.Unlock()
	return &Dispatcher{
		cfg:         vb.config,
		limiter:     vb.limiter,
		key:         nodeID,
		maxRequests: vb.maxRequests,
		window:      vb.window,
		status:      status,
		errors:      errs,
		logger:      vb.logger.Named(nodeID),
	}
}

// RegisterNode associates a node instance with an id so Close can tear it
// down. Registering the same id again replaces the previous instance.
func (vb *VisionBridge) RegisterNode(id string, node Node) {
	vb.mu.Lock()
	defer vb.mu.Unlock()
	vb.nodes[id] = node
	vb.logger.Debug("registered node", zap.String("node", id))
}

// Close tears down every registered node. Each node clears its own status on
// Close so no stale UI state leaks past shutdown.
func (vb *VisionBridge) Close() {
	vb.mu.Lock()
	nodes := vb.nodes
	vb.nodes = make(map[string]Node)
	vb.mu.Unlock()

	for id, node := range nodes {
		node.Close()
		vb.limiter.Clear(id)
	}
}
