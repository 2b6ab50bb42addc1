package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ExpiresAt reads the exp claim when the opaque token happens to be a JWT.
// The signature is not checked; this is for display only.
func (s *Session) ExpiresAt() (time.Time, bool) {
	return TokenExpiry(s.Token())
}

func TokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
