package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/bookshelf-labs/book-service/internal/auth"
	"github.com/bookshelf-labs/book-service/internal/domain"
	"github.com/bookshelf-labs/book-service/internal/observability"
)

// AuthService exchanges credentials for access tokens.
type AuthService struct {
	directory UserDirectory
	tokenMgr  *auth.TokenManager
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	Directory    UserDirectory
	TokenManager *auth.TokenManager
	Metrics      *observability.Metrics
	Logger       *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		directory: deps.Directory,
		tokenMgr:  deps.TokenManager,
		metrics:   deps.Metrics,
		logger:    logger,
	}
}

// IssueToken resolves the credentials and signs a token for the identity.
// ErrUnknownUser is returned without building a token when resolution fails.
func (s *AuthService) IssueToken(ctx context.Context, creds domain.Credentials) (string, time.Time, error) {
	identity, err := s.directory.GetUser(ctx, creds)
	if err != nil {
		if errors.Is(err, ErrUnknownUser) {
			s.metrics.RecordLoginRejected()
			s.logger.Info("login rejected", zap.String("username", creds.Username))
		}
		return "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.BuildToken(*identity)
	if err != nil {
		return "", time.Time{}, err
	}
	s.metrics.RecordTokenIssued()
	s.logger.Debug("token issued", zap.String("username", identity.Username), zap.Time("expires_at", exp))
	return token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
