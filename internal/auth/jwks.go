package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"
)

type jwk struct {
	Kty string `json:"kty"`
	Use string `json:"use,omitempty"`
	Alg string `json:"alg,omitempty"`
	Kid string `json:"kid,omitempty"`
	N   string `json:"n,omitempty"`
	E   string `json:"e,omitempty"`
}

type jwks struct {
	Keys []jwk `json:"keys"`
}

// JWKSProvider fetches and caches the RSA public keys published at the
// identity provider's JWKS endpoint. Keys are looked up by kid; a miss can be
// resolved with Refresh, which tolerates key rotation.
type JWKSProvider struct {
	URL string

	client *http.Client

	mu      sync.RWMutex
	keys    map[string]*rsa.PublicKey
	etag    string
	lastErr error
}

// NewJWKSProvider creates a provider for the given JWKS URL.
func NewJWKSProvider(url string) *JWKSProvider {
	return &JWKSProvider{
		URL:    url,
		client: &http.Client{Timeout: 5 * time.Second},
		keys:   make(map[string]*rsa.PublicKey),
	}
}

// Start performs an initial fetch and refreshes the key set on the given
// interval until ctx is cancelled.
func (p *JWKSProvider) Start(ctx context.Context, every time.Duration) {
	_ = p.Refresh(ctx)
	t := time.NewTicker(every)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				_ = p.Refresh(ctx)
			}
		}
	}()
}

// Refresh fetches the key set, honoring ETag revalidation.
func (p *JWKSProvider) Refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return p.fail(err)
	}
	p.mu.RLock()
	if p.etag != "" {
		req.Header.Set("If-None-Match", p.etag)
	}
	p.mu.RUnlock()

	resp, err := p.client.Do(req)
	if err != nil {
		return p.fail(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified {
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		return p.fail(fmt.Errorf("jwks http %d", resp.StatusCode))
	}

	var set jwks
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return p.fail(err)
	}

	parsed := make(map[string]*rsa.PublicKey, len(set.Keys))
	for _, k := range set.Keys {
		if k.Kty != "RSA" || k.Kid == "" {
			continue
		}
		pub, err := parseRSAPublic(k.N, k.E)
		if err != nil {
			continue
		}
		parsed[k.Kid] = pub
	}
	if len(parsed) == 0 {
		return p.fail(errors.New("no usable keys in jwks"))
	}

	p.mu.Lock()
	p.keys = parsed
	if et := resp.Header.Get("ETag"); et != "" {
		p.etag = et
	}
	p.lastErr = nil
	p.mu.Unlock()
	return nil
}

func (p *JWKSProvider) fail(err error) error {
	p.mu.Lock()
	p.lastErr = err
	p.mu.Unlock()
	return err
}

// Get returns the cached public key for kid, if present.
func (p *JWKSProvider) Get(kid string) (*rsa.PublicKey, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	pub, ok := p.keys[kid]
	return pub, ok
}

// LastError reports the most recent fetch failure, for health checks.
func (p *JWKSProvider) LastError() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastErr
}

// parseRSAPublic builds an RSA public key from base64url-encoded N and E.
func parseRSAPublic(nB64, eB64 string) (*rsa.PublicKey, error) {
	nb, err := base64.RawURLEncoding.DecodeString(nB64)
	if err != nil {
		return nil, fmt.Errorf("rsa N decode: %w", err)
	}
	eb, err := base64.RawURLEncoding.DecodeString(eB64)
	if err != nil {
		return nil, fmt.Errorf("rsa E decode: %w", err)
	}
	if len(eb) == 0 {
		return nil, errors.New("rsa E empty")
	}
	// E is a big-endian integer, e.g. "AQAB" -> 65537.
	e := 0
	for _, b := range eb {
		e = (e << 8) | int(b)
	}
	if e <= 1 {
		return nil, fmt.Errorf("rsa E invalid: %d", e)
	}
	return &rsa.PublicKey{N: new(big.Int).SetBytes(nb), E: e}, nil
}
