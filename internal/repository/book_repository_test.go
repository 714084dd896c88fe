package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bookshelf-labs/book-service/internal/config"
	"github.com/bookshelf-labs/book-service/internal/domain"
	"github.com/bookshelf-labs/book-service/internal/persistence"
)

// pgBookRepo connects to POSTGRES_TEST_DSN and empties the books table.
// The tests are skipped when no DSN is set.
func pgBookRepo(t *testing.T) BookRepository {
	t.Helper()

	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}
	ctx := context.Background()

	pg, err := persistence.NewPostgres(ctx, config.PostgresConfig{DSN: dsn, MaxConns: 2}, true, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(pg.Close)

	truncate := func() {
		_, err := pg.Pool().Exec(ctx, `TRUNCATE books RESTART IDENTITY`)
		require.NoError(t, err)
	}
	truncate()
	t.Cleanup(truncate)

	return NewBookRepository(pg.Pool())
}

func TestPostgresCreateGetUpdate(t *testing.T) {
	repo := pgBookRepo(t)
	ctx := context.Background()

	published := time.Date(2020, 5, 17, 0, 0, 0, 0, time.UTC)
	book := &domain.Book{Title: strPtr("Old"), Year: 2001, ISBN: 1, Price: 5, AuthorID: 7, PublishedDate: &published}
	require.NoError(t, repo.Create(ctx, book))
	assert.Equal(t, 1, book.ID)

	got, err := repo.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Old", *got.Title)
	require.NotNil(t, got.PublishedDate)
	assert.True(t, published.Equal(*got.PublishedDate))

	updated, err := repo.Update(ctx, book.ID, domain.BookUpdate{Title: "New", Price: 20, ISBN: 42, Year: 2022})
	require.NoError(t, err)
	assert.Equal(t, "New", *updated.Title)
	assert.Equal(t, int16(20), updated.Price)
	assert.Equal(t, int64(42), updated.ISBN)
	assert.Equal(t, 2022, updated.Year)
	assert.Equal(t, 7, updated.AuthorID)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.Update(ctx, 999, domain.BookUpdate{Title: "Nope"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresSearchByTitle(t *testing.T) {
	repo := pgBookRepo(t)
	ctx := context.Background()

	for _, title := range []string{"The Lord of the Rings", "LORDS of Finance", "Dune", "100% Pure", "snake_case", `back\slash`} {
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
		{query: `\`, want: []string{`back\slash`}},
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

func TestPostgresListAndPage(t *testing.T) {
	repo := pgBookRepo(t)
	ctx := context.Background()

	for i := 1; i <= 25; i++ {
		require.NoError(t, repo.Create(ctx, &domain.Book{Title: strPtr(fmt.Sprintf("Book %02d", i)), Year: 2000 + i}))
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 25)

	page, err := repo.ListPage(ctx, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, all[10:20], page)

	empty, err := repo.ListPage(ctx, 30, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
