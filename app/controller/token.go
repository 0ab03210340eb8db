package controller

import (
	"context"
	"net/http"

	"github.com/notewell/ms-notes-auth/app/dto"
	httpdto "github.com/notewell/ms-notes-auth/app/dto/http"
	"github.com/notewell/ms-notes-auth/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type tokenIssuer interface {
	IssueToken(ctx context.Context, email, password string) *dto.TokenResponse
	RevokeTokens(ctx context.Context, userID uint64) error
}

type accessTokenValidator interface {
	ValidateAccessToken(tokenString string) (*service.Claims, error)
}

// TokenController is the HTTP surface of the token issuance core.
type TokenController struct {
	issuer    tokenIssuer
	validator accessTokenValidator
}

func NewTokenController(issuer tokenIssuer, validator accessTokenValidator) *TokenController {
	return &TokenController{issuer: issuer, validator: validator}
}

// GetToken handles login. Input validation happens inside the issuer so the
// response body keeps the uniform TokenResponse shape for every failure kind.
func (c *TokenController) GetToken(ctx echo.Context) error {
	var req httpdto.TokenRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("failed to bind token request")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request body"})
	}

	logrus.WithField("email", req.Email).Info("token request received")
	resp := c.issuer.IssueToken(ctx.Request().Context(), req.Email, req.Password)
	if !resp.Success {
		return ctx.JSON(http.StatusUnauthorized, resp)
	}

	return ctx.JSON(http.StatusOK, resp)
}

// RefreshToken is reserved: refresh-token exchange is not part of the current
// flow. Clients re-login to obtain new tokens.
func (c *TokenController) RefreshToken(ctx echo.Context) error {
	return ctx.JSON(http.StatusNotImplemented, httpdto.ErrorResponse{Error: "refresh token exchange is not implemented"})
}

func (c *TokenController) ValidateToken(ctx echo.Context) error {
	var req httpdto.ValidateTokenRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("failed to bind validate token request")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request body"})
	}

	if err := req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: err.Error()})
	}

	claims, err := c.validator.ValidateAccessToken(req.AccessToken)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, httpdto.ErrorResponse{Error: "invalid or expired token"})
	}

	return ctx.JSON(http.StatusOK, httpdto.ValidateTokenResponse{
		UserID:    claims.UserID,
		Name:      claims.Name,
		ExpiresAt: claims.ExpiresAt.Time,
	})
}

// Revoke deletes the caller's refresh token. Requires a valid bearer token;
// the auth middleware puts user_id into the context.
func (c *TokenController) Revoke(ctx echo.Context) error {
	userID, ok := ctx.Get("user_id").(uint64)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, httpdto.ErrorResponse{Error: "missing authentication"})
	}

	if err := c.issuer.RevokeTokens(ctx.Request().Context(), userID); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("failed to revoke refresh token")
		return ctx.JSON(http.StatusInternalServerError, httpdto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithField("user_id", userID).Info("refresh token revoked")
	return ctx.JSON(http.StatusOK, httpdto.RevokeTokenResponse{Message: "refresh token revoked"})
}
