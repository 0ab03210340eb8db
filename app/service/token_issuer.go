package service

import (
	"context"
	"strings"

	"github.com/notewell/ms-notes-auth/app/dto"
	"github.com/notewell/ms-notes-auth/app/entity"

	"github.com/sirupsen/logrus"
)

// External failure messages. Every failure kind maps to the same generic
// login-failed text so responses never reveal whether the account exists or
// is locked; the distinction lives in the logs only.
const (
	msgLoginFailed        = "login failed"
	msgMissingCredentials = "email and password are required"
)

type credentialVerifier interface {
	VerifyCredentials(ctx context.Context, email, password string) (*entity.User, PasswordCheckResult, error)
}

type tokenGenerator interface {
	GenerateAccessToken(user *entity.User) (string, error)
	GenerateRefreshToken(user *entity.User) (string, *entity.RefreshToken, error)
}

// refreshTokenStore is the slice of the refresh-token repository the issuer
// needs: delete-then-create keeps at most one live token per user.
type refreshTokenStore interface {
	Create(ctx context.Context, token *entity.RefreshToken) error
	DeleteByUserID(ctx context.Context, userID uint64) error
}

// TokenIssuer composes credential verification, token generation and
// refresh-token persistence into the login flow. IssueToken always returns a
// structured response; collaborator faults never escape it.
type TokenIssuer struct {
	verifier      credentialVerifier
	generator     tokenGenerator
	refreshTokens refreshTokenStore
}

func NewTokenIssuer(verifier credentialVerifier, generator tokenGenerator, refreshTokens refreshTokenStore) *TokenIssuer {
	return &TokenIssuer{
		verifier:      verifier,
		generator:     generator,
		refreshTokens: refreshTokens,
	}
}

// IssueToken runs a single login attempt. Empty input short-circuits before
// any store access. Two concurrent logins for the same user may race the
// delete-then-create pair; last writer wins.
func (s *TokenIssuer) IssueToken(ctx context.Context, email, password string) *dto.TokenResponse {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		logrus.Debug("token issue rejected: blank email or password")
		return failureResponse(msgMissingCredentials)
	}

	user, result, err := s.verifier.VerifyCredentials(ctx, email, password)
	if err != nil {
		logrus.WithError(err).WithField("email", email).Error("token issue failed: credential verification fault")
		return failureResponse(msgLoginFailed)
	}
	if user == nil || result != PasswordCheckSucceeded {
		// Verifier already logged the specific reason.
		return failureResponse(msgLoginFailed)
	}

	refreshPlaintext, refreshToken, err := s.generator.GenerateRefreshToken(user)
	if err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("token issue failed: refresh token generation")
		return failureResponse(msgLoginFailed)
	}

	accessToken, err := s.generator.GenerateAccessToken(user)
	if err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("token issue failed: access token generation")
		return failureResponse(msgLoginFailed)
	}

	if err := s.refreshTokens.DeleteByUserID(ctx, user.ID); err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("token issue failed: deleting previous refresh token")
		return failureResponse(msgLoginFailed)
	}
	if err := s.refreshTokens.Create(ctx, refreshToken); err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("token issue failed: persisting refresh token")
		return failureResponse(msgLoginFailed)
	}

	logrus.WithField("user_id", user.ID).Info("tokens issued")
	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshPlaintext,
		Success:      true,
	}
}

// RevokeTokens deletes the user's current refresh token, ending the ability
// to re-authenticate without a password.
func (s *TokenIssuer) RevokeTokens(ctx context.Context, userID uint64) error {
	return s.refreshTokens.DeleteByUserID(ctx, userID)
}

func failureResponse(message string) *dto.TokenResponse {
	return &dto.TokenResponse{
		Message: message,
		Success: false,
	}
}
