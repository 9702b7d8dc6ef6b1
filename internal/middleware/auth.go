// Package middleware provides HTTP middleware shared by the services.
package middleware

import (
	"context"
	"net/http"

	"github.com/fullstacklab/appsuite/internal/auth"
	"github.com/fullstacklab/appsuite/internal/httputil"
	"github.com/fullstacklab/appsuite/internal/logging"
)

type claimsKey struct{}

// Authenticator guards routes with bearer-token verification and RBAC
// permission checks.
type Authenticator struct {
	verifier auth.Verifier
	logger   *logging.Logger
}

// NewAuthenticator creates an Authenticator around the given verifier.
func NewAuthenticator(verifier auth.Verifier, logger *logging.Logger) *Authenticator {
	return &Authenticator{verifier: verifier, logger: logger}
}

// RequirePermission wraps a handler so it only runs when the request carries
// a valid bearer token granting the permission. Verified claims are stored in
// the request context.
func (a *Authenticator) RequirePermission(permission string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := auth.TokenFromHeader(r)
		if err != nil {
			a.respondAuthError(w, err)
			return
		}

		claims, err := a.verifier.Verify(r.Context(), token)
		if err != nil {
			a.logger.WithContext(r.Context()).WithError(err).Warn("token verification failed")
			a.respondAuthError(w, err)
			return
		}

		if err := auth.CheckPermission(claims, permission); err != nil {
			a.logger.WithContext(r.Context()).WithFields(map[string]interface{}{
				"permission": permission,
				"subject":    claims.Subject,
			}).Warn("permission denied")
			a.respondAuthError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		ctx = logging.WithUserID(ctx, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func (a *Authenticator) respondAuthError(w http.ResponseWriter, err error) {
	authErr, ok := err.(*auth.Error)
	if !ok {
		httputil.Unauthorized(w, "")
		return
	}
	httputil.WriteJSON(w, authErr.Status, map[string]interface{}{
		"success": false,
		"error":   authErr.Status,
		"message": map[string]string{
			"code":        authErr.Code,
			"description": authErr.Description,
		},
	})
}

// ClaimsFromContext returns the verified claims stored by RequirePermission.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims, ok
}
