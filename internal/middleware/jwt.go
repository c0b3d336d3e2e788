package middleware

import (
	"context"  // Context for revocation lookups
	"net/http" // HTTP status codes
	"strings"  // String manipulation
	"time"     // Token expiry

	"hbnb/internal/facade" // Actor type
	"hbnb/internal/utils"  // JWT utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging
)

// Context keys set by JWTAuthMiddleware
const (
	ContextUserID      = "userID"
	ContextIsAdmin     = "isAdmin"
	ContextTokenID     = "tokenID"
	ContextTokenExpiry = "tokenExpiry"
)

// RevocationChecker reports whether a token id has been revoked
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// JWTAuthMiddleware validates bearer tokens and stores the caller identity.
// revoked may be nil, in which case revocation is not checked.
func JWTAuthMiddleware(secret string, revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
		claims, err := utils.ParseJWT(tokenStr, secret)       // Parse the JWT token
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		if revoked != nil && claims.ID != "" {
			isRevoked, err := revoked.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				logrus.WithError(err).Error("Token revocation check failed")
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Authentication temporarily unavailable"})
				return
			}
			if isRevoked {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has been revoked"})
				return
			}
		}
		c.Set(ContextUserID, claims.UserID)   // Caller identity
		c.Set(ContextIsAdmin, claims.IsAdmin) // Admin claim
		c.Set(ContextTokenID, claims.ID)      // Token id for logout
		if claims.ExpiresAt != nil {
			c.Set(ContextTokenExpiry, claims.ExpiresAt.Time)
		}
		c.Next() // Proceed to the next handler
	}
}

// CurrentActor returns the authenticated caller, if any
func CurrentActor(c *gin.Context) (facade.Actor, bool) {
	userID := c.GetString(ContextUserID)
	if userID == "" {
		return facade.Actor{}, false
	}
	return facade.Actor{UserID: userID, IsAdmin: c.GetBool(ContextIsAdmin)}, true
}

// TokenExpiry returns the expiry of the token used for this request
func TokenExpiry(c *gin.Context) time.Time {
	return c.GetTime(ContextTokenExpiry)
}
