// Package auth verifies admin bearer tokens. Token issuance is handled by
// an external identity provider sharing ADMIN_JWT_SECRET; this service only
// validates.
package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims holds the typed JWT payload for admin tokens.
type Claims struct {
	Subject string `json:"sub_name,omitempty"`
	Role    string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// ValidateToken parses and validates a JWT string against secret.
func ValidateToken(t, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(t, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}
