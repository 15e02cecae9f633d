package jwtutil

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"propertyhub-api/pkg/config"
)

var (
	secret = []byte("your-secret-key")
	expiry = 7 * 24 * time.Hour
)

// Initialize configures the signing key and token lifetime from config.
// Called once at startup before any token is issued or verified.
func Initialize(cfg *config.JWTConfig) {
	secret = []byte(cfg.SigningKey)
	expiry = time.Duration(cfg.ExpirationDays) * 24 * time.Hour
}

// UserClaims represents the JWT claims for user authentication
type UserClaims struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	UserType string `json:"userType"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed, time-bound JWT carrying the user's identity
func GenerateToken(userID, email, userType string) (string, error) {
	claims := UserClaims{
		UserID:   userID,
		Email:    email,
		UserType: userType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken validates and parses the JWT token
func ValidateToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}
