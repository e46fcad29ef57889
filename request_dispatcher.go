package visionbridge

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Dispatcher issues one request/response cycle against the backend on behalf
// of a single node: resolve the configuration, gate on the rate limiter,
// report status, call, classify failures, decode the envelope.
type Dispatcher struct {
	cfg         *Config
	limiter     *Limiter
	key         string
	maxRequests int
	window      time.Duration
	status      StatusSink
	errors      ErrorSink
	logger      *zap.Logger
}

// Call performs the HTTP call and returns the decoded response envelope.
// A nil body sends no request body (the usual case for GET). Every failure
// path reports a short status label and forwards the full detail to the
// node's error sink before the classified error is returned.
func (d *Dispatcher) Call(method, endpoint string, body interface{}) (*Envelope, error) {
	settings, err := ResolveConnection(d.cfg)
	if err != nil {
		return nil, d.fail(err)
	}

	if d.limiter != nil && !d.limiter.Allow(d.key, d.maxRequests, d.window) {
		return nil, d.fail(newClassified(KindRateLimited,
			"rate limit of %d requests per %v reached for %s", d.maxRequests, d.window, d.key))
	}

	d.setStatus(StatusFor(StatusProcessing, "", 0))

	var reader io.Reader
	if body != nil {
		buf, merr := json.Marshal(body)
		if merr != nil {
			return nil, d.fail(newClassified(KindInvalidRequest, "encode request body: %v", merr))
		}
		reader = bytes.NewReader(buf)
	}

	fullURL := settings.BaseURL + endpoint
	req, err := http.NewRequest(method, fullURL, reader)
	if err != nil {
		return nil, d.fail(newClassified(KindInvalidRequest, "build request for %s: %v", fullURL, err))
	}
	for k, v := range settings.Headers {
		req.Header.Set(k, v)
	}
	if d.cfg.TokenSource != nil {
		tok, terr := d.cfg.TokenSource.Token()
		if terr != nil {
			return nil, d.fail(newClassified(KindAuth, "acquire bearer token: %v", terr))
		}
		tok.SetAuthHeader(req)
	}

	resp, err := d.httpClient(settings).Do(req)
	if err != nil {
		var nerr net.Error
		if errors.As(err, &nerr) && nerr.Timeout() {
			return nil, d.fail(newClassified(KindTimeout,
				"request to %s took longer than %dms", fullURL, settings.Timeout.Milliseconds()))
		}
		return nil, d.fail(newClassified(KindNetwork, "no response from backend at %s: %v", fullURL, err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, d.fail(newClassified(KindNetwork, "read response from %s: %v", fullURL, err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		kind := classifyStatusCode(resp.StatusCode)
		detail := responseDetail(data)
		if detail == "" {
			detail = http.StatusText(resp.StatusCode)
		}
		if kind == KindUnknown {
			return nil, d.fail(newClassified(kind, "unexpected status %d from backend: %s", resp.StatusCode, detail))
		}
		return nil, d.fail(newClassified(kind, "%s (HTTP %d)", detail, resp.StatusCode))
	}

	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, d.fail(newClassified(KindUnknown, "decode response from %s: %v", fullURL, err))
	}
	d.logger.Debug("dispatch succeeded",
		zap.String("endpoint", endpoint),
		zap.Int("objects", len(env.Objects)),
		zap.Float64("processing_time_ms", env.ProcessingTimeMS))
	return &env, nil
}

func (d *Dispatcher) httpClient(settings *ConnectionSettings) *http.Client {
	client := &http.Client{Timeout: settings.Timeout}
	if d.cfg.Transport != nil {
		client.Transport = d.cfg.Transport
	} else if d.cfg.ClientCert != nil {
		client.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{Certificates: []tls.Certificate{*d.cfg.ClientCert}},
		}
	}
	return client
}

// fail reports the status label and error sink for a classified failure,
// then returns it for the caller's flow control.
func (d *Dispatcher) fail(err error) error {
	cerr := AsClassified(err)
	d.setStatus(StatusFor(StatusError, cerr.Kind.Label(), 0))
	if d.errors != nil {
		d.errors.ReportError(cerr, nil)
	}
	d.logger.Debug("dispatch failed",
		zap.String("kind", cerr.Kind.String()),
		zap.String("detail", cerr.Detail))
	return cerr
}

func (d *Dispatcher) setStatus(s Status) {
	if d.status != nil {
		d.status.SetStatus(s)
	}
}

// responseDetail extracts the backend-provided detail field from an error
// body, if present.
func responseDetail(data []byte) string {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	return body.Detail
}
