package dto

// TokenResponse is the uniform result of a login attempt. It is transient:
// returned to the caller and never persisted. The refresh token is plaintext
// here; only its hash is stored.
type TokenResponse struct {
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	Message      string `json:"message,omitempty"`
	Success      bool   `json:"success"`
}
