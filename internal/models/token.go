package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims identifies the acting user for audit attribution. Token issuance
// and account management live in the identity service; this engine only
// parses and verifies.
type JWTClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
