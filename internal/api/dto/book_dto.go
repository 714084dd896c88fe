package dto

import (
	"time"

	"github.com/bookshelf-labs/book-service/internal/domain"
)

// CreateBookRequest is the body of POST /books. The id is always store-assigned.
type CreateBookRequest struct {
	Title         *string    `json:"title"`
	Year          int        `json:"year"`
	ISBN          int64      `json:"isbn"`
	PublishedDate *time.Time `json:"publishedDate"`
	Price         int16      `json:"price"`
	AuthorID      int        `json:"authorId"`
}

// ToDomain converts the request into a new book.
func (r CreateBookRequest) ToDomain() *domain.Book {
	return &domain.Book{
		Title:         r.Title,
		Year:          r.Year,
		ISBN:          r.ISBN,
		PublishedDate: r.PublishedDate,
		Price:         r.Price,
		AuthorID:      r.AuthorID,
	}
}

// UpdateBookQuery carries the query string of PUT /books. Every field is required.
type UpdateBookQuery struct {
	ID    *int    `query:"id" validate:"required"`
	Title *string `query:"title" validate:"required"`
	Price *int16  `query:"price" validate:"required"`
	ISBN  *int64  `query:"isbn" validate:"required"`
	Year  *int    `query:"year" validate:"required"`
}

// ToDomain returns the replacement fields.
func (q UpdateBookQuery) ToDomain() domain.BookUpdate {
	return domain.BookUpdate{
		Title: *q.Title,
		Price: *q.Price,
		ISBN:  *q.ISBN,
		Year:  *q.Year,
	}
}

// PageQuery carries the query string of GET /books/bypage.
type PageQuery struct {
	PageNumber *int `query:"pageNumber" validate:"required"`
	PageSize   *int `query:"pageSize" validate:"required"`
}
