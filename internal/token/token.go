// Package token inspects stored access tokens without verifying them.
// The backend owns token validity; the client only peeks at the expiry
// claim to skip a doomed validation round trip during bootstrap.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Expired reports whether tokenString carries an exp claim in the past.
// Malformed tokens and tokens without an exp claim report false: the client
// treats the token as opaque and lets the backend decide. The signature is
// deliberately not checked; the client has no key material.
func Expired(tokenString string, now time.Time) bool {
	parser := jwt.NewParser()

	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(now)
}
