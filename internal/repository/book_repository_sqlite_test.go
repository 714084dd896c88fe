package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bookshelf-labs/book-service/internal/config"
	"github.com/bookshelf-labs/book-service/internal/domain"
	"github.com/bookshelf-labs/book-service/internal/persistence"
)

func tempBookRepo(t *testing.T) BookRepository {
	t.Helper()
	ctx := context.Background()

	db, err := persistence.NewSQLite(ctx, config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "test.db")}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, persistence.EnsureSQLiteSchema(ctx, db.DB, zap.NewNop()))

	return NewSQLiteBookRepository(db.DB)
}

func strPtr(s string) *string { return &s }

func TestSQLiteCreateAndGet(t *testing.T) {
	repo := tempBookRepo(t)
	ctx := context.Background()

	published := time.Date(2020, 5, 17, 0, 0, 0, 0, time.UTC)
	book := &domain.Book{Title: strPtr("X"), Year: 2020, ISBN: 123, Price: 10, AuthorID: 1, PublishedDate: &published}
	require.NoError(t, repo.Create(ctx, book))
	assert.Positive(t, book.ID)

	got, err := repo.GetByID(ctx, book.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Title)
	assert.Equal(t, "X", *got.Title)
	assert.Equal(t, 2020, got.Year)
	assert.Equal(t, int64(123), got.ISBN)
	assert.Equal(t, int16(10), got.Price)
	assert.Equal(t, 1, got.AuthorID)
	require.NotNil(t, got.PublishedDate)
	assert.True(t, published.Equal(*got.PublishedDate))

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteCreateWithoutOptionalFields(t *testing.T) {
	repo := tempBookRepo(t)
	ctx := context.Background()

	book := &domain.Book{Year: 1999}
	require.NoError(t, repo.Create(ctx, book))

	got, err := repo.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Title)
	assert.Nil(t, got.PublishedDate)
}

func TestSQLiteUpdate(t *testing.T) {
	repo := tempBookRepo(t)
	ctx := context.Background()

	book := &domain.Book{Title: strPtr("Old"), Year: 2001, ISBN: 1, Price: 5, AuthorID: 7}
	require.NoError(t, repo.Create(ctx, book))

	updated, err := repo.Update(ctx, book.ID, domain.BookUpdate{Title: "New", Price: 20, ISBN: 42, Year: 2022})
	require.NoError(t, err)
	assert.Equal(t, "New", *updated.Title)
	assert.Equal(t, int16(20), updated.Price)
	assert.Equal(t, int64(42), updated.ISBN)
	assert.Equal(t, 2022, updated.Year)
	assert.Equal(t, 7, updated.AuthorID)

	_, err = repo.Update(ctx, 999, domain.BookUpdate{Title: "Nope"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteSearchByTitle(t *testing.T) {
	repo := tempBookRepo(t)
	ctx := context.Background()

	for _, title := range []string{"The Lord of the Rings", "LORDS of Finance", "Dune", "100% Pure", "snake_case"} {
		require.NoError(t, repo.Create(ctx, &domain.Book{Title: strPtr(title)}))
	}
	require.NoError(t, repo.Create(ctx, &domain.Book{}))

	tests := []struct {
		query string
		want  []string
	}{
		{query: "lord", want: []string{"The Lord of the Rings", "LORDS of Finance"}},
		{query: "DUNE", want: []string{"Dune"}},
		{query: "%", want: []string{"100% Pure"}},
		{query: "_", want: []string{"snake_case"}},
		{query: "missing", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			books, err := repo.SearchByTitle(ctx, tt.query)
			require.NoError(t, err)

			titles := make([]string, 0, len(books))
			for _, b := range books {
				titles = append(titles, *b.Title)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestSQLiteListAndPage(t *testing.T) {
	repo := tempBookRepo(t)
	ctx := context.Background()

	for i := 1; i <= 25; i++ {
		require.NoError(t, repo.Create(ctx, &domain.Book{Title: strPtr(fmt.Sprintf("Book %02d", i)), Year: 2000 + i}))
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 25)

	page, err := repo.ListPage(ctx, 10, 10)
	require.NoError(t, err)
	require.Len(t, page, 10)
	assert.Equal(t, all[10:20], page)

	tail, err := repo.ListPage(ctx, 20, 10)
	require.NoError(t, err)
	assert.Equal(t, all[20:], tail)

	empty, err := repo.ListPage(ctx, 30, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
