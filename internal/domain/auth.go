package domain

import "github.com/golang-jwt/jwt/v5"

// Claims transportadas no token JWT emitido pela API
type Claims struct {
	Username string
	jwt.RegisteredClaims
}
