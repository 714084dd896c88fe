package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bookshelf-labs/book-service/internal/domain"
)

type sqliteBookRepository struct {
	db *sql.DB
}

// NewSQLiteBookRepository returns a book repository over a SQLite handle.
func NewSQLiteBookRepository(db *sql.DB) BookRepository {
	return &sqliteBookRepository{db: db}
}

func (r *sqliteBookRepository) List(ctx context.Context) ([]domain.Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books ORDER BY id`
	return r.fetchMany(ctx, query)
}

func (r *sqliteBookRepository) GetByID(ctx context.Context, id int) (*domain.Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books WHERE id=?`
	return scanSQLiteBook(r.db.QueryRowContext(ctx, query, id))
}

func (r *sqliteBookRepository) Create(ctx context.Context, book *domain.Book) error {
	const query = `
        INSERT INTO books (title, year, isbn, published_date, price, author_id)
        VALUES (?,?,?,?,?,?)`
	res, err := r.db.ExecContext(ctx, query,
		nullString(book.Title),
		book.Year,
		book.ISBN,
		nullTime(book),
		book.Price,
		book.AuthorID,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	book.ID = int(id)
	return nil
}

func (r *sqliteBookRepository) Update(ctx context.Context, id int, upd domain.BookUpdate) (*domain.Book, error) {
	const query = `UPDATE books SET title=?, price=?, isbn=?, year=? WHERE id=?`
	res, err := r.db.ExecContext(ctx, query, upd.Title, upd.Price, upd.ISBN, upd.Year, id)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *sqliteBookRepository) SearchByTitle(ctx context.Context, query string) ([]domain.Book, error) {
	const stmt = `SELECT ` + bookColumns + ` FROM books
        WHERE LOWER(title) LIKE '%' || LOWER(?) || '%' ESCAPE '\'
        ORDER BY id`
	return r.fetchMany(ctx, stmt, likeEscape(query))
}

func (r *sqliteBookRepository) ListPage(ctx context.Context, offset, limit int) ([]domain.Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books ORDER BY id LIMIT ? OFFSET ?`
	return r.fetchMany(ctx, query, limit, offset)
}

func (r *sqliteBookRepository) fetchMany(ctx context.Context, query string, args ...any) ([]domain.Book, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Book, 0)
	for rows.Next() {
		book, err := scanSQLiteBook(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *book)
	}
	return result, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteBook(row rowScanner) (*domain.Book, error) {
	var (
		book      domain.Book
		title     sql.NullString
		published sql.NullTime
	)
	if err := row.Scan(
		&book.ID,
		&title,
		&book.Year,
		&book.ISBN,
		&published,
		&book.Price,
		&book.AuthorID,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if title.Valid {
		book.Title = &title.String
	}
	if published.Valid {
		t := published.Time
		book.PublishedDate = &t
	}
	return &book, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(book *domain.Book) sql.NullTime {
	if book.PublishedDate == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: book.PublishedDate.UTC(), Valid: true}
}
