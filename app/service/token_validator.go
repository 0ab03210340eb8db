package service

import (
	"errors"
	"fmt"

	"github.com/notewell/ms-notes-auth/config"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// TokenValidator verifies access tokens issued by TokenGenerator. Tokens
// signed with a different secret, issuer or audience are rejected.
type TokenValidator struct {
	cfg *config.Config
}

func NewTokenValidator(cfg *config.Config) *TokenValidator {
	return &TokenValidator{cfg: cfg}
}

func (v *TokenValidator) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(v.cfg.JWT.Secret), nil
	},
		jwt.WithIssuer(v.cfg.JWT.Issuer),
		jwt.WithAudience(v.cfg.JWT.Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
