// Package auth issues and verifies the bearer tokens that guard the
// housekeeping endpoint.
package auth

import (
	"time"

	"github.com/Alok0227/rallly/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// ScopeHousekeeping is the scope claim required to trigger a sweep.
const ScopeHousekeeping = "housekeeping"

// Claims carries the registered claims plus the scope granted to the caller.
type Claims struct {
	jwt.RegisteredClaims
	Scope string
}

// GenerateToken signs an HS256 token granting the given scope for
// validityDuration.
func GenerateToken(scope string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		Scope: scope,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetScopeFromToken parses and verifies tokenString and returns its scope.
// Expired, malformed or wrongly-signed tokens yield an error.
func GetScopeFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return "", err
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.Scope, nil
}
