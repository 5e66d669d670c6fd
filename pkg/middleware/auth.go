package middleware

import (
	"context"
	"net/http"
	"strings"

	"photo-share/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID         = "user_id"
	ContextUserRole       = "user_role"
	ContextTokenID        = "token_id"
	ContextTokenExpiresAt = "token_expires_at"
)

// RevocationChecker reports whether a token ID was revoked (e.g. on logout).
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthMiddleware rejects requests without a valid bearer token.
func AuthMiddleware(jwtService *jwt.Service, revoked ...RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := authenticate(c, jwtService, revoked)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware identifies the user when a valid token is present and
// lets anonymous requests through otherwise.
func OptionalAuthMiddleware(jwtService *jwt.Service, revoked ...RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			if claims, err := authenticate(c, jwtService, revoked); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

type authError string

func (e authError) Error() string { return string(e) }

const (
	errMissingHeader = authError("Authorization header required")
	errBadFormat     = authError("Invalid authorization format")
	errInvalidToken  = authError("Invalid token")
	errRevokedToken  = authError("Token has been revoked")
)

func authenticate(c *gin.Context, jwtService *jwt.Service, revoked []RevocationChecker) (*jwt.Claims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, errMissingHeader
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, errBadFormat
	}

	claims, err := jwtService.ValidateToken(parts[1])
	if err != nil {
		return nil, errInvalidToken
	}

	for _, checker := range revoked {
		if checker == nil {
			continue
		}
		isRevoked, err := checker.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil || isRevoked {
			return nil, errRevokedToken
		}
	}

	return claims, nil
}

func setClaims(c *gin.Context, claims *jwt.Claims) {
	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextUserRole, claims.Role)
	c.Set(ContextTokenID, claims.ID)
	if claims.ExpiresAt != nil {
		c.Set(ContextTokenExpiresAt, claims.ExpiresAt.Time)
	}
}
