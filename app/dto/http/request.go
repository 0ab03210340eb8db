package http

import (
	"errors"
	"strings"
)

type TokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *TokenRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" || strings.TrimSpace(r.Password) == "" {
		return errors.New("email and password are required")
	}

	return nil
}

type ValidateTokenRequest struct {
	AccessToken string `json:"access_token"`
}

func (r *ValidateTokenRequest) Validate() error {
	if strings.TrimSpace(r.AccessToken) == "" {
		return errors.New("access_token is required")
	}

	return nil
}
