package dto

import "time"

// TokenRequest is the login payload for POST /auth/token.
type TokenRequest struct {
	UserName string `json:"userName" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is returned on a successful login.
type TokenResponse struct {
	Token string `json:"token"`
}

// IssuedToken is printed by the issue-token command.
type IssuedToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
