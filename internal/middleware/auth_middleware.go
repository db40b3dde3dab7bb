package middleware

import (
	"net/http"
	"strings"

	"github.com/dinepoll/server/internal/models"
	"github.com/dinepoll/server/internal/respond"
	"github.com/dinepoll/server/internal/security"
	"github.com/dinepoll/server/pkg/errors"
	"github.com/gin-gonic/gin"
)

const (
	identityKey = "identity"
	claimsKey   = "claims"
)

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	ID      uint
	Manager bool
}

// Authenticate verifies the bearer token and attaches the identity derived
// from the scope claim. Absence or invalidity is fatal to the request.
func Authenticate(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			respond.Fail(c, http.StatusUnauthorized, errors.ErrCodeInvalidCredentials, "token")
			return
		}

		claims, err := security.ValidateJWT(token, jwtSecret)
		if err != nil {
			respond.Fail(c, http.StatusUnauthorized, errors.ErrCodeInvalidCredentials, "token")
			return
		}

		c.Set(identityKey, Identity{ID: claims.UserID, Manager: claims.Scope == models.ScopeManager})
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireManager gates manager-only routes. Must run after Authenticate.
func RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok || !identity.Manager {
			respond.Fail(c, http.StatusUnauthorized, errors.ErrCodeAccessDenied, "unauthorized")
			return
		}
		c.Next()
	}
}

// GetIdentity returns the identity set by Authenticate.
func GetIdentity(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	identity, ok := v.(Identity)
	return identity, ok
}

// GetClaims returns the raw token claims set by Authenticate.
func GetClaims(c *gin.Context) (*security.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*security.Claims)
	return claims, ok
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
