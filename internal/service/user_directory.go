package service

import (
	"context"
	"errors"

	"github.com/bookshelf-labs/book-service/internal/auth"
	"github.com/bookshelf-labs/book-service/internal/domain"
	"github.com/bookshelf-labs/book-service/internal/repository"
)

// ErrUnknownUser signals that credentials resolve to no identity.
var ErrUnknownUser = errors.New("unknown user or wrong password")

// UserDirectory resolves login credentials to an identity.
type UserDirectory interface {
	GetUser(ctx context.Context, creds domain.Credentials) (*domain.Identity, error)
}

type passwordDirectory struct {
	users repository.UserRepository
}

// NewUserDirectory returns a directory that checks bcrypt password hashes.
func NewUserDirectory(users repository.UserRepository) UserDirectory {
	return &passwordDirectory{users: users}
}

func (d *passwordDirectory) GetUser(ctx context.Context, creds domain.Credentials) (*domain.Identity, error) {
	user, err := d.users.GetByUsername(ctx, creds.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}
	if err := auth.ComparePassword(user.PasswordHash, creds.Password); err != nil {
		// Malformed configured hashes are treated like a wrong password.
		return nil, ErrUnknownUser
	}
	identity := user.Identity()
	return &identity, nil
}
