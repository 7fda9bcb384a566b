package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims carries the server-side session id in the standard jti claim.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// SignSessionToken produces the cookie value for sessionID.
func SignSessionToken(sessionID string, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifySessionToken validates the signature and expiry and returns the
// session id.
func VerifySessionToken(tokenStr string, secret []byte) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.ID == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return claims.ID, nil
}

var errEmptyToken = errors.New("empty session token")

// SessionIDFromCookie is VerifySessionToken with an explicit error for a
// missing cookie value.
func SessionIDFromCookie(value string, secret []byte) (string, error) {
	if value == "" {
		return "", errEmptyToken
	}
	return VerifySessionToken(value, secret)
}
