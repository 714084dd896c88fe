package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/bookshelf-labs/book-service/internal/domain"
	"github.com/bookshelf-labs/book-service/internal/repository"
	apperrors "github.com/bookshelf-labs/book-service/pkg/util"
)

// BookService coordinates catalog reads and writes.
type BookService struct {
	books repository.BookRepository
}

// NewBookService builds the service.
func NewBookService(books repository.BookRepository) *BookService {
	return &BookService{books: books}
}

// ListAll returns every book ordered by id.
func (s *BookService) ListAll(ctx context.Context) ([]domain.Book, error) {
	return s.books.List(ctx)
}

// Get returns a single book or a not found error.
func (s *BookService) Get(ctx context.Context, id int) (*domain.Book, error) {
	book, err := s.books.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, id)
	}
	return book, nil
}

// Create stores the book and fills in its assigned id.
func (s *BookService) Create(ctx context.Context, book *domain.Book) error {
	return s.books.Create(ctx, book)
}

// Update replaces title, price, isbn and year of an existing book.
func (s *BookService) Update(ctx context.Context, id int, upd domain.BookUpdate) (*domain.Book, error) {
	book, err := s.books.Update(ctx, id, upd)
	if err != nil {
		return nil, mapNotFound(err, id)
	}
	return book, nil
}

// Search returns books whose title contains query, ignoring case.
// An empty slice means no match.
func (s *BookService) Search(ctx context.Context, query string) ([]domain.Book, error) {
	return s.books.SearchByTitle(ctx, query)
}

// MaxPageSize bounds pageSize on the paged listing.
const MaxPageSize = 1000

// Page returns the window skip=(pageNumber-1)*pageSize, take=pageSize.
// Non-positive page numbers and sizes are rejected rather than clamped, as are
// sizes above MaxPageSize and page numbers whose offset would overflow int.
func (s *BookService) Page(ctx context.Context, pageNumber, pageSize int) ([]domain.Book, error) {
	details := map[string]any{
		"pageNumber": pageNumber,
		"pageSize":   pageSize,
	}
	if pageNumber < 1 || pageSize < 1 {
		return nil, apperrors.NewValidationError("pageNumber and pageSize must be positive", details)
	}
	if pageSize > MaxPageSize {
		return nil, apperrors.NewValidationError(fmt.Sprintf("pageSize must not exceed %d", MaxPageSize), details)
	}
	if pageNumber-1 > math.MaxInt/pageSize {
		return nil, apperrors.NewValidationError("pageNumber is out of range", details)
	}
	return s.books.ListPage(ctx, (pageNumber-1)*pageSize, pageSize)
}

func mapNotFound(err error, id int) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("book", map[string]any{"id": id})
	}
	return err
}
