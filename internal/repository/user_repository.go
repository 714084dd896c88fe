package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/bookshelf-labs/book-service/internal/config"
	"github.com/bookshelf-labs/book-service/internal/domain"
)

// UserRepository defines lookup access for directory users.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type staticUserRepository struct {
	users map[string]domain.User
}

// NewStaticUserRepository builds an in-memory directory from configured credentials.
// Each user receives a random opaque identifier for the lifetime of the process.
func NewStaticUserRepository(creds []config.UserCredential) UserRepository {
	users := make(map[string]domain.User, len(creds))
	for _, cred := range creds {
		users[cred.Username] = domain.User{
			ID:           uuid.NewString(),
			Username:     cred.Username,
			PasswordHash: cred.PasswordHash,
		}
	}
	return &staticUserRepository{users: users}
}

func (r *staticUserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	user, ok := r.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}
