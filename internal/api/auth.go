package api

import (
	"context"  // Context for revocation
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"time"     // Token lifetimes

	"hbnb/internal/domain"     // Domain models
	"hbnb/internal/facade"     // Business facade
	"hbnb/internal/middleware" // Token context helpers
	"hbnb/internal/utils"      // JWT helpers

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging
)

// TokenDenylist revokes tokens on logout and answers revocation checks
type TokenDenylist interface {
	middleware.RevocationChecker
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}

// Request and Response structs
type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required"` // First name must be provided
	LastName  string `json:"last_name" binding:"required"`  // Last name must be provided
	Email     string `json:"email" binding:"required"`      // Email must be provided
	Password  string `json:"password" binding:"required"`   // Password must be provided
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Response struct for authentication
type AuthResponse struct {
	Token string `json:"token"` // JWT token
}

// RegisterHandler creates a regular (non-admin) account
func RegisterHandler(f *facade.Facade) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := f.CreateUser(c.Request.Context(), domain.UserParams{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Password:  req.Password,
		})
		if err != nil {
			respondError(c, err, "Failed to register user")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,
			"type":    "register",
		}).Info("User registered")
		c.JSON(http.StatusCreated, gin.H{"id": user.ID, "message": "User registered successfully"})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(f *facade.Facade, jwtSecret string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := f.Authenticate(c.Request.Context(), req.Email, req.Password)
		if errors.Is(err, facade.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		if err != nil {
			respondError(c, err, "Failed to log in")
			return
		}
		// Generate JWT token carrying the admin claim
		token, err := utils.GenerateJWT(user.ID, user.IsAdmin, jwtSecret, ttl)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, AuthResponse{Token: token})
	}
}

// LogoutHandler revokes the presented token until it would have expired.
// Without a denylist the token simply lives until expiry.
func LogoutHandler(denylist TokenDenylist) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := requireActor(c)
		if !ok {
			return
		}
		if denylist != nil {
			tokenID := c.GetString(middleware.ContextTokenID)
			ttl := time.Until(middleware.TokenExpiry(c))
			if err := denylist.Revoke(c.Request.Context(), tokenID, ttl); err != nil {
				logrus.WithFields(logrus.Fields{
					"user_id": actor.UserID,
					"error":   err.Error(),
				}).Error("Failed to revoke token")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log out"})
				return
			}
		}
		logrus.WithField("user_id", actor.UserID).Info("User logged out")
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}
