package utils

import (
	"errors"
	"time"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the claims carried by both admin access tokens and staff session tokens.
// Subject is the identity ID. Role is empty until the identity has a role.
type Claims struct {
	Kind domain.IdentityKind `json:"knd"`
	Role string              `json:"rol,omitempty"`
	jwt.RegisteredClaims
}

// RoleOrNil returns the role claim, or nil when absent or outside the closed set.
func (c *Claims) RoleOrNil() *domain.Role {
	role, err := domain.ParseRole(c.Role)
	if err != nil {
		return nil
	}
	return &role
}

// GenerateJWT signs a token for subject that expires after expiryDuration from now.
func GenerateJWT(subject string, kind domain.IdentityKind, role *domain.Role, secret string, expiryDuration time.Duration, issuer string, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(expiryDuration)
	claims := Claims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	if role != nil {
		claims.Role = role.String()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseAndValidateJWT parses a token string, validates its signature and standard claims.
func ParseAndValidateJWT(tokenString string, secretKey string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.Subject == "" {
		return nil, errors.New("token subject missing")
	}
	if claims.Kind != domain.KindAdmin && claims.Kind != domain.KindStaff {
		return nil, errors.New("token kind missing")
	}

	return claims, nil
}
