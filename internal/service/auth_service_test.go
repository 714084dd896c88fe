package service

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookshelf-labs/book-service/internal/auth"
	"github.com/bookshelf-labs/book-service/internal/config"
	"github.com/bookshelf-labs/book-service/internal/domain"
	"github.com/bookshelf-labs/book-service/internal/observability"
	"github.com/bookshelf-labs/book-service/internal/repository"
)

func newTestAuthService(t *testing.T) (*AuthService, *prometheus.Registry) {
	t.Helper()

	hash, err := auth.HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)

	tokens, err := auth.NewTokenManager(config.AuthConfig{
		JWTSecret: "auth-service-test-secret-long-enough",
		Issuer:    "book-service",
		Audience:  "book-clients",
	})
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	svc := NewAuthService(AuthDependencies{
		Directory: NewUserDirectory(repository.NewStaticUserRepository([]config.UserCredential{
			{Username: "alice", PasswordHash: hash},
			{Username: "broken", PasswordHash: "not-a-bcrypt-hash"},
		})),
		TokenManager: tokens,
		Metrics:      observability.NewMetrics(reg),
	})
	return svc, reg
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			return mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	return 0
}

func TestIssueToken(t *testing.T) {
	t.Parallel()

	svc, reg := newTestAuthService(t)

	token, exp, err := svc.IssueToken(context.Background(), domain.Credentials{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, exp.Unix(), claims.ExpiresAt.Unix())
	assert.Equal(t, 1.0, counterValue(t, reg, "book_service_tokens_issued_total"))
}

func TestIssueTokenRejectsUnknownCredentials(t *testing.T) {
	t.Parallel()

	svc, reg := newTestAuthService(t)

	cases := []domain.Credentials{
		{Username: "mallory", Password: "s3cret"},
		{Username: "alice", Password: "wrong"},
		{Username: "broken", Password: "anything"},
	}
	for _, creds := range cases {
		token, _, err := svc.IssueToken(context.Background(), creds)
		require.ErrorIs(t, err, ErrUnknownUser, creds.Username)
		assert.Empty(t, token)
	}

	assert.Equal(t, 3.0, counterValue(t, reg, "book_service_logins_rejected_total"))
	assert.Zero(t, counterValue(t, reg, "book_service_tokens_issued_total"))
}
