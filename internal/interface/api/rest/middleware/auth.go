package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"share-ledger-api/internal/application/ports"
	"share-ledger-api/internal/infrastructure/jwt"
)

const (
	CtxUserRole    = "userRole"
	CtxUserID      = "userID"
	CtxTokenID     = "tokenID"
	CtxTokenExpiry = "tokenExpiry"
)

// AuthMiddleware validates the bearer token and rejects revoked sessions
// before any handler runs. Tokens with missing identity claims are invalid
// regardless of signature.
func AuthMiddleware(jwtService *jwt.Service, revoked ports.RevocationStore, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "missing Authorization header"},
			)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token format"},
			)
			return
		}

		claims, err := jwtService.ValidateToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token"},
			)
			return
		}

		isRevoked, err := revoked.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			logger.Error("revocation check failed", zap.Error(err))
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "could not verify session"},
			)
			return
		}
		if isRevoked {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "token revoked"},
			)
			return
		}

		var expiry time.Time
		if claims.ExpiresAt != nil {
			expiry = claims.ExpiresAt.Time
		}

		c.Set(CtxUserRole, claims.Role)
		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxTokenID, claims.ID)
		c.Set(CtxTokenExpiry, expiry)

		c.Next()
	}
}

// RequireAdmin runs after AuthMiddleware and gates admin-only routes.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxUserRole) != "admin" {
			c.AbortWithStatusJSON(
				http.StatusForbidden,
				gin.H{"error": "admin only"},
			)
			return
		}

		c.Next()
	}
}
