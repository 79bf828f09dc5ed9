// Package auth implements the stateless pieces of authentication: the signed
// token codec and the password hasher/verifier.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/growject/growject/internal/common"
)

// Claims is the identity assertion embedded in a token. Subject carries the
// user's email; Extra holds optional additional claims.
type Claims struct {
	jwt.RegisteredClaims
	Extra map[string]any `json:"extra,omitempty"`
}

// GenerateToken issues an HS256-signed token for the given subject (email).
// Claims: sub=subject, iat=now, exp=now+ttl, plus any extra claims.
// It fails only when signing itself fails, which indicates a broken secret
// key, not bad request input.
func GenerateToken(subject string, extra map[string]any, secretKey []byte, now time.Time, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Extra: extra,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies the signature and structure of tokenString and returns
// its claims. Expiry is deliberately NOT checked here; callers decide what an
// expired-but-genuine token means via IsExpired. Any signature or structure
// failure comes back as common.ErrorInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return nil, common.ErrorInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrorInvalidToken
	}

	return claims, nil
}

// IsExpired reports whether the claims' expiry has passed at the given time.
// Claims without an expiry are treated as expired.
func IsExpired(claims *Claims, now time.Time) bool {
	if claims.ExpiresAt == nil {
		return true
	}
	return !now.Before(claims.ExpiresAt.Time)
}
