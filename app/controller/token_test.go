package controller_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/notewell/ms-notes-auth/app/controller"
	"github.com/notewell/ms-notes-auth/app/dto"
	"github.com/notewell/ms-notes-auth/app/entity"
	"github.com/notewell/ms-notes-auth/app/service"
	"github.com/notewell/ms-notes-auth/config"

	"github.com/labstack/echo/v4"
)

type stubIssuer struct {
	resp        *dto.TokenResponse
	revokeErr   error
	revokedUser uint64
}

func (s *stubIssuer) IssueToken(_ context.Context, _, _ string) *dto.TokenResponse {
	return s.resp
}

func (s *stubIssuer) RevokeTokens(_ context.Context, userID uint64) error {
	s.revokedUser = userID
	return s.revokeErr
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:          "test-secret",
			Issuer:          "notes-auth-test",
			Audience:        "notes-api-test",
			AccessTokenTTL:  5 * time.Minute,
			RefreshTokenTTL: time.Hour,
		},
	}
}

func doRequest(t *testing.T, handler echo.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	if err := handler(ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestGetToken_Success(t *testing.T) {
	issuer := &stubIssuer{resp: &dto.TokenResponse{
		AccessToken:  "access",
		RefreshToken: "refresh",
		Success:      true,
	}}
	c := controller.NewTokenController(issuer, service.NewTokenValidator(testConfig()))

	rec := doRequest(t, c.GetToken, http.MethodPost, "/api/v1/token",
		`{"email":"tester@example.com","password":"password"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.TokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if !resp.Success || resp.AccessToken != "access" || resp.RefreshToken != "refresh" {
		t.Fatalf("unexpected response %#v", resp)
	}
}

func TestGetToken_FailureIsUnauthorizedWithSameShape(t *testing.T) {
	issuer := &stubIssuer{resp: &dto.TokenResponse{
		Message: "login failed",
		Success: false,
	}}
	c := controller.NewTokenController(issuer, service.NewTokenValidator(testConfig()))

	rec := doRequest(t, c.GetToken, http.MethodPost, "/api/v1/token",
		`{"email":"tester@example.com","password":"wrong"}`)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var resp dto.TokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Success || resp.Message == "" {
		t.Fatalf("unexpected response %#v", resp)
	}
	if resp.AccessToken != "" || resp.RefreshToken != "" {
		t.Fatalf("expected no tokens in failure response")
	}
}

func TestGetToken_InvalidBody(t *testing.T) {
	c := controller.NewTokenController(&stubIssuer{}, service.NewTokenValidator(testConfig()))

	rec := doRequest(t, c.GetToken, http.MethodPost, "/api/v1/token", `{not json`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRefreshToken_NotImplemented(t *testing.T) {
	c := controller.NewTokenController(&stubIssuer{}, service.NewTokenValidator(testConfig()))

	rec := doRequest(t, c.RefreshToken, http.MethodPost, "/api/v1/token/refresh", `{}`)

	if rec.Code != http.StatusNotImplemented {
		t.Fatalf("expected 501, got %d", rec.Code)
	}
}

func TestValidateToken(t *testing.T) {
	cfg := testConfig()
	generator := service.NewTokenGenerator(cfg)
	c := controller.NewTokenController(&stubIssuer{}, service.NewTokenValidator(cfg))

	tokenString, err := generator.GenerateAccessToken(&entity.User{ID: 42, UserName: "tester"})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	rec := doRequest(t, c.ValidateToken, http.MethodPost, "/api/v1/token/validate",
		`{"access_token":"`+tokenString+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, c.ValidateToken, http.MethodPost, "/api/v1/token/validate",
		`{"access_token":"garbage"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	rec = doRequest(t, c.ValidateToken, http.MethodPost, "/api/v1/token/validate", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRevoke(t *testing.T) {
	issuer := &stubIssuer{}
	c := controller.NewTokenController(issuer, service.NewTokenValidator(testConfig()))

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/token", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.Set("user_id", uint64(7))

	if err := c.Revoke(ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if issuer.revokedUser != 7 {
		t.Fatalf("expected revoke for user 7, got %d", issuer.revokedUser)
	}
}

func TestRevoke_MissingIdentity(t *testing.T) {
	c := controller.NewTokenController(&stubIssuer{}, service.NewTokenValidator(testConfig()))

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/token", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	if err := c.Revoke(ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRevoke_StoreFault(t *testing.T) {
	issuer := &stubIssuer{revokeErr: errors.New("db gone")}
	c := controller.NewTokenController(issuer, service.NewTokenValidator(testConfig()))

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/token", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.Set("user_id", uint64(7))

	if err := c.Revoke(ctx); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
