package service

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"time"

	"github.com/notewell/ms-notes-auth/app/entity"
	"github.com/notewell/ms-notes-auth/config"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// RefreshTokenLength is the length of the plaintext refresh-token value. The
// value always contains at least one digit and one special character.
const RefreshTokenLength = 50

const (
	letterChars  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars   = "0123456789"
	specialChars = "!#$%&*+-=?@_~"
)

// Claims is the access-token claims set: display name plus user id as the
// subject, on top of the registered issuer/audience/expiry claims.
type Claims struct {
	Name   string `json:"name"`
	UserID uint64 `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenGenerator produces signed access tokens and opaque refresh-token
// values. It holds no state beyond immutable configuration.
type TokenGenerator struct {
	cfg *config.Config
}

func NewTokenGenerator(cfg *config.Config) *TokenGenerator {
	return &TokenGenerator{cfg: cfg}
}

// GenerateAccessToken signs an HS256 bearer token for the user, expiring at
// now + the configured access-token TTL.
func (g *TokenGenerator) GenerateAccessToken(user *entity.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		Name:   user.UserName,
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(user.ID, 10),
			Issuer:    g.cfg.JWT.Issuer,
			Audience:  jwt.ClaimStrings{g.cfg.JWT.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.cfg.JWT.AccessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(g.cfg.JWT.Secret))
}

// GenerateRefreshToken draws a fresh high-entropy token value and returns the
// plaintext alongside the persistable record. Only the bcrypt hash goes into
// the record; the plaintext is handed to the caller exactly once.
func (g *TokenGenerator) GenerateRefreshToken(user *entity.User) (string, *entity.RefreshToken, error) {
	plaintext, err := randomTokenString(RefreshTokenLength)
	if err != nil {
		return "", nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now()
	return plaintext, &entity.RefreshToken{
		UserID:    user.ID,
		TokenHash: string(hash),
		ExpiresAt: now.Add(g.cfg.JWT.RefreshTokenTTL),
		CreatedAt: now,
	}, nil
}

// randomTokenString builds a random string over letters, digits and special
// characters, guaranteeing at least one digit and one special character, then
// shuffles so the guaranteed characters sit at random positions.
func randomTokenString(length int) (string, error) {
	charset := letterChars + digitChars + specialChars

	buf := make([]byte, length)
	var err error
	if buf[0], err = randomChar(digitChars); err != nil {
		return "", err
	}
	if buf[1], err = randomChar(specialChars); err != nil {
		return "", err
	}
	for i := 2; i < length; i++ {
		if buf[i], err = randomChar(charset); err != nil {
			return "", err
		}
	}

	for i := length - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		j := int(n.Int64())
		buf[i], buf[j] = buf[j], buf[i]
	}

	return string(buf), nil
}

func randomChar(set string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
	if err != nil {
		return 0, err
	}
	return set[n.Int64()], nil
}
