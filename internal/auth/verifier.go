package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Options configures token validation.
type Options struct {
	Issuer   string
	Audience string
	Leeway   time.Duration
}

// Verifier validates a bearer token and returns its claims.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}

// RS256Verifier verifies RS256 tokens against a JWKS key set.
type RS256Verifier struct {
	jwks *JWKSProvider
	opts Options
}

// NewRS256Verifier creates a verifier backed by the given key provider.
func NewRS256Verifier(jwks *JWKSProvider, opts Options) *RS256Verifier {
	return &RS256Verifier{jwks: jwks, opts: opts}
}

// Verify parses the token, resolves its kid against the JWKS set and checks
// the signature, issuer, audience and expiry. An unknown kid triggers a
// single refetch so a freshly rotated key is picked up.
func (v *RS256Verifier) Verify(ctx context.Context, token string) (*Claims, error) {
	claims, err := v.parse(ctx, token, false)
	if err != nil {
		var ae *Error
		if errors.As(err, &ae) && ae.Code == "invalid_header" {
			// kid may belong to a rotated key the cache has not seen yet
			if refreshErr := v.jwks.Refresh(ctx); refreshErr == nil {
				return v.parse(ctx, token, true)
			}
		}
		return nil, err
	}
	return claims, nil
}

var errUnknownKid = errors.New("kid not found")

func (v *RS256Verifier) parse(_ context.Context, token string, refreshed bool) (*Claims, error) {
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.opts.Leeway),
	}
	if v.opts.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(v.opts.Issuer))
	}
	if v.opts.Audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(v.opts.Audience))
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("missing kid")
		}
		pub, ok := v.jwks.Get(kid)
		if !ok {
			return nil, errUnknownKid
		}
		return pub, nil
	}, parserOpts...)

	if err != nil {
		return nil, mapJWTError(err, refreshed)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errInvalidHeader("Unable to parse authentication token.", http.StatusBadRequest)
	}
	return claims, nil
}

func mapJWTError(err error, refreshed bool) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return errTokenExpired()
	case errors.Is(err, jwt.ErrTokenInvalidIssuer), errors.Is(err, jwt.ErrTokenInvalidAudience):
		return errInvalidClaims("Incorrect claims. Please check the audience and issuer.", http.StatusUnauthorized)
	case errors.Is(err, errUnknownKid):
		status := http.StatusBadRequest
		description := "Unable to find the appropriate key."
		if !refreshed {
			// reported as invalid_header so Verify retries after a refetch
			description = "Unable to find the appropriate key yet."
		}
		return errInvalidHeader(description, status)
	default:
		return errInvalidHeader("Unable to parse authentication token.", http.StatusBadRequest)
	}
}
