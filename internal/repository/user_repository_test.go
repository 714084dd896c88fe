package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookshelf-labs/book-service/internal/config"
)

func TestStaticUserRepository(t *testing.T) {
	t.Parallel()

	repo := NewStaticUserRepository([]config.UserCredential{
		{Username: "alice", PasswordHash: "hash-a"},
		{Username: "bob", PasswordHash: "hash-b"},
	})

	user, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "hash-a", user.PasswordHash)
	assert.NotEmpty(t, user.ID)

	_, err = repo.GetByUsername(context.Background(), "ALICE")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLikeEscape(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `lord`, likeEscape("lord"))
	assert.Equal(t, `50\%`, likeEscape("50%"))
	assert.Equal(t, `a\_b`, likeEscape("a_b"))
	assert.Equal(t, `c:\\dir`, likeEscape(`c:\dir`))
}
