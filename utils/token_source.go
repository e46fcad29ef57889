// Package utils provides credential helpers for connecting to a vision
// backend: an OAuth2 client-credentials token source for backends fronted by
// an auth service, and a PKCS#12 client certificate loader for mutual TLS.
package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/oauth2"

	"github.com/flowvision/vision-bridge/internal"
)

// Refresh this long before the token actually expires.
const tokenExpiryMargin = 30 * time.Second

// ClientCredentialsConfig holds what the backend's token endpoint needs.
type ClientCredentialsConfig struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scope        string
}

// ClientCredentialsSource acquires and silently refreshes bearer tokens. It
// implements oauth2.TokenSource, so it plugs straight into
// visionbridge.Config.TokenSource.
type ClientCredentialsSource struct {
	cfg    ClientCredentialsConfig
	client *http.Client

	mu    sync.Mutex
	token *oauth2.Token
}

func NewClientCredentialsSource(cfg ClientCredentialsConfig) (*ClientCredentialsSource, error) {
	if cfg.TokenURL == "" {
		return nil, fmt.Errorf("token URL is required")
	}
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("client id is required")
	}
	return &ClientCredentialsSource{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Token returns the cached token while it is still valid and acquires a new
// one otherwise.
func (s *ClientCredentialsSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != nil && tokenStillValid(s.token) {
		return s.token, nil
	}
	tok, err := s.acquire(context.Background())
	if err != nil {
		return nil, err
	}
	s.token = tok
	return tok, nil
}

func (s *ClientCredentialsSource) acquire(ctx context.Context) (*oauth2.Token, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", s.cfg.ClientID)
	form.Set("client_secret", s.cfg.ClientSecret)
	if s.cfg.Scope != "" {
		form.Set("scope", s.cfg.Scope)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var body struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	if body.AccessToken == "" {
		return nil, fmt.Errorf("token endpoint returned no access token")
	}

	tok := &oauth2.Token{
		AccessToken: body.AccessToken,
		TokenType:   body.TokenType,
	}
	if body.ExpiresIn > 0 {
		tok.Expiry = time.Now().Add(time.Duration(body.ExpiresIn) * time.Second)
	}
	return tok, nil
}

// tokenStillValid prefers the exp claim inside a JWT access token when
// present, falling back to the expiry reported by the token endpoint.
func tokenStillValid(tok *oauth2.Token) bool {
	if expMs, ok := jwtExpiryMs(tok.AccessToken); ok {
		return internal.IsInFuture(expMs - tokenExpiryMargin.Milliseconds())
	}
	if tok.Expiry.IsZero() {
		return true
	}
	return time.Until(tok.Expiry) > tokenExpiryMargin
}

// jwtExpiryMs extracts the exp claim from a JWT without verifying the
// signature; the backend verifies, we only schedule refreshes.
func jwtExpiryMs(raw string) (int64, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return 0, false
	}
	switch exp := claims["exp"].(type) {
	case float64:
		return internal.UnixToMs(int64(exp)), true
	case json.Number:
		if n, err := exp.Int64(); err == nil {
			return internal.UnixToMs(n), true
		}
	}
	return 0, false
}
