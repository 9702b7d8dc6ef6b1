package auth

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the verified token claims the services care about. Permissions
// holds the RBAC permission strings granted by the identity provider.
type Claims struct {
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

// HasPermission reports whether the claims grant the given permission string.
func (c *Claims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// CheckPermission validates that the claims include the permissions array and
// that the requested permission is granted.
func CheckPermission(claims *Claims, permission string) error {
	if claims.Permissions == nil {
		return errInvalidClaims("Permissions not included in JWT.", http.StatusBadRequest)
	}
	if !claims.HasPermission(permission) {
		return errNotAuthorized()
	}
	return nil
}

// TokenFromHeader extracts the bearer token from an Authorization header.
func TokenFromHeader(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errHeaderMissing()
	}
	parts := strings.Fields(header)
	switch {
	case !strings.EqualFold(parts[0], "bearer"):
		return "", errInvalidHeader(`Authorization header must start with "Bearer".`, http.StatusUnauthorized)
	case len(parts) == 1:
		return "", errInvalidHeader("Token not found.", http.StatusUnauthorized)
	case len(parts) > 2:
		return "", errInvalidHeader("Authorization header must be bearer token.", http.StatusUnauthorized)
	}
	return parts[1], nil
}
