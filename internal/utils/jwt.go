package utils

import (
	"errors" // Error values
	"time"   // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
	"github.com/google/uuid"       // Token ids
)

// JWT Claims
type Claims struct {
	UserID               string `json:"user_id"`  // Caller identity
	IsAdmin              bool   `json:"is_admin"` // Admin claim
	jwt.RegisteredClaims        // Standard JWT claims (jti, iat, exp)
}

// ErrInvalidToken is returned for tokens that fail parsing or validation
var ErrInvalidToken = errors.New("invalid or expired token")

// GenerateJWT creates a signed token for a user, valid for ttl
func GenerateJWT(userID string, isAdmin bool, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	// Set token claims
	claims := Claims{
		UserID:  userID,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),                 // Token id, used for revocation
			Subject:   userID,                           // Subject mirrors the user id
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)), // Expiry
			IssuedAt:  jwt.NewNumericDate(now),          // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseJWT parses and validates a JWT token string
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	// Validate token and extract claims
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
