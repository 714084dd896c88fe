package domain

import "time"

// Token represents issued access token metadata.
type Token struct {
	ID        string
	Username  string
	Issuer    string
	Audience  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
