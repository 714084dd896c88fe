package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookshelf-labs/book-service/internal/domain"
	apperrors "github.com/bookshelf-labs/book-service/pkg/util"
)

// ErrNotFound is returned when no book or user matches.
var ErrNotFound = apperrors.ErrNotFound

// BookRepository encapsulates book persistence.
type BookRepository interface {
	List(ctx context.Context) ([]domain.Book, error)
	GetByID(ctx context.Context, id int) (*domain.Book, error)
	Create(ctx context.Context, book *domain.Book) error
	Update(ctx context.Context, id int, upd domain.BookUpdate) (*domain.Book, error)
	SearchByTitle(ctx context.Context, query string) ([]domain.Book, error)
	ListPage(ctx context.Context, offset, limit int) ([]domain.Book, error)
}

const bookColumns = `id, title, year, isbn, published_date, price, author_id`

type bookRepository struct {
	pool *pgxpool.Pool
}

// NewBookRepository returns a Postgres-backed implementation.
func NewBookRepository(pool *pgxpool.Pool) BookRepository {
	return &bookRepository{pool: pool}
}

func (r *bookRepository) List(ctx context.Context) ([]domain.Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books ORDER BY id`
	return r.fetchMany(ctx, query)
}

func (r *bookRepository) GetByID(ctx context.Context, id int) (*domain.Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books WHERE id=$1`
	return scanPgBook(r.pool.QueryRow(ctx, query, id))
}

func (r *bookRepository) Create(ctx context.Context, book *domain.Book) error {
	const query = `
        INSERT INTO books (title, year, isbn, published_date, price, author_id)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		book.Title,
		book.Year,
		book.ISBN,
		book.PublishedDate,
		book.Price,
		book.AuthorID,
	).Scan(&book.ID)
}

func (r *bookRepository) Update(ctx context.Context, id int, upd domain.BookUpdate) (*domain.Book, error) {
	const query = `
        UPDATE books SET title=$1, price=$2, isbn=$3, year=$4
        WHERE id=$5
        RETURNING ` + bookColumns
	return scanPgBook(r.pool.QueryRow(ctx, query,
		upd.Title,
		upd.Price,
		upd.ISBN,
		upd.Year,
		id,
	))
}

func (r *bookRepository) SearchByTitle(ctx context.Context, query string) ([]domain.Book, error) {
	const stmt = `SELECT ` + bookColumns + ` FROM books
        WHERE title ILIKE '%' || $1 || '%' ESCAPE '\'
        ORDER BY id`
	return r.fetchMany(ctx, stmt, likeEscape(query))
}

func (r *bookRepository) ListPage(ctx context.Context, offset, limit int) ([]domain.Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books ORDER BY id OFFSET $1 LIMIT $2`
	return r.fetchMany(ctx, query, offset, limit)
}

func (r *bookRepository) fetchMany(ctx context.Context, query string, args ...any) ([]domain.Book, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Book, 0)
	for rows.Next() {
		book, err := scanPgBook(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *book)
	}
	return result, rows.Err()
}

func scanPgBook(row pgx.Row) (*domain.Book, error) {
	var book domain.Book
	if err := row.Scan(
		&book.ID,
		&book.Title,
		&book.Year,
		&book.ISBN,
		&book.PublishedDate,
		&book.Price,
		&book.AuthorID,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likeEscape makes LIKE wildcards in a user query match literally.
func likeEscape(s string) string {
	return likeEscaper.Replace(s)
}
