// config.go
// ----------
// This file defines the per-node backend Config and its resolution into
// concrete ConnectionSettings (URL, timeout, headers).
//
// Resolution order for the base URL: explicit Config.BaseURL, then the
// VISION_API_URL environment variable (legacy fallback), then the documented
// default. A nil Config is a configuration error and fails the dispatch
// before any network attempt.
package visionbridge

import (
	"crypto/tls"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const (
	DefaultBaseURL   = "http://localhost:8000"
	DefaultTimeoutMs = 30000

	// EnvBaseURL names the backend base URL when no per-node config sets one.
	EnvBaseURL = "VISION_API_URL"
)

// Credentials holds the optional static credentials for the backend.
type Credentials struct {
	APIKey   string // sent as X-API-Key
	APIToken string // sent as Authorization: Bearer
}

// Config is the per-node backend configuration.
type Config struct {
	BaseURL     string
	TimeoutMs   int
	Credentials *Credentials

	// TokenSource, if set, mints a bearer token per dispatch. The utils
	// package provides a client-credentials implementation.
	TokenSource oauth2.TokenSource

	// ClientCert enables mutual TLS to the backend. See utils.LoadClientCert.
	ClientCert *tls.Certificate

	// Transport overrides the HTTP transport. Used by tests and the mock
	// backend; leave nil in production.
	Transport http.RoundTripper
}

// ConnectionSettings is the resolved form a dispatch actually uses.
type ConnectionSettings struct {
	BaseURL string
	Timeout time.Duration
	Headers map[string]string
}

// ResolveConnection turns a node Config into connection settings, applying
// defaults and credential headers.
func ResolveConnection(cfg *Config) (*ConnectionSettings, error) {
	if cfg == nil {
		return nil, newClassified(KindConfig, "Missing API configuration")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = os.Getenv(EnvBaseURL)
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeoutMs := cfg.TimeoutMs
	if timeoutMs <= 0 {
		timeoutMs = DefaultTimeoutMs
	}

	headers := map[string]string{
		"Content-Type": "application/json",
	}
	if cfg.Credentials != nil {
		if cfg.Credentials.APIKey != "" {
			headers["X-API-Key"] = cfg.Credentials.APIKey
		}
		if cfg.Credentials.APIToken != "" {
			headers["Authorization"] = "Bearer " + cfg.Credentials.APIToken
		}
	}

	return &ConnectionSettings{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Timeout: time.Duration(timeoutMs) * time.Millisecond,
		Headers: headers,
	}, nil
}
