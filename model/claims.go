package model

import "github.com/golang-jwt/jwt/v5"

// AppClaims is the payload embedded in both access and refresh tokens.
// Both issuance paths mint the same shape.
type AppClaims struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}
