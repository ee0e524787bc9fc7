package httpapi

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/tasktrail/tasktrail/internal/platform/errors"
)

// Role names an access level carried in a token's role claim.
type Role string

// RoleManager grants access to the performance report.
const RoleManager Role = "manager"

// Authenticator verifies HS256 bearer tokens. An Authenticator built without
// a key leaves token-optional routes open; role-gated routes always require
// a verifiable token.
type Authenticator struct {
	key []byte
}

// NewAuthenticator builds an Authenticator from the shared HMAC key. An
// empty key disables verification on token-optional routes.
func NewAuthenticator(key string) *Authenticator {
	key = strings.TrimSpace(key)
	if key == "" {
		return &Authenticator{}
	}
	return &Authenticator{key: []byte(key)}
}

// Enabled reports whether the authenticator holds a verification key.
func (a *Authenticator) Enabled() bool {
	return a != nil && len(a.key) > 0
}

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// RequireToken rejects requests without a valid bearer token. When no key is
// configured the handler is passed through unprotected.
func (a *Authenticator) RequireToken(next http.Handler) http.Handler {
	if !a.Enabled() {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := a.verify(r); err != nil {
			writeError(w, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects requests whose token is missing, invalid, or lacking
// the given role. Role-gated routes stay closed even when no key is
// configured, since no token can be verified.
func (a *Authenticator) RequireRole(role Role, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.Enabled() {
			writeError(w, apperrors.New(apperrors.CodeAuthTokenInvalid, "token verification is not configured"))
			return
		}
		claims, err := a.verify(r)
		if err != nil {
			writeError(w, err)
			return
		}
		if claims.Role != string(role) {
			writeError(w, apperrors.WithMetadata(
				apperrors.CodeAuthRoleDenied,
				"insufficient role",
				map[string]string{"required": string(role)},
			))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *Authenticator) verify(r *http.Request) (*tokenClaims, error) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return nil, apperrors.New(apperrors.CodeAuthTokenInvalid, "missing bearer token")
	}

	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(strings.TrimSpace(token), claims, func(*jwt.Token) (any, error) {
		return a.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeAuthTokenInvalid, "invalid token", err)
	}
	if !parsed.Valid {
		return nil, apperrors.New(apperrors.CodeAuthTokenInvalid, "invalid token")
	}
	return claims, nil
}
