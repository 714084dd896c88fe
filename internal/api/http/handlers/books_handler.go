package handlers

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/bookshelf-labs/book-service/internal/api/dto"
	"github.com/bookshelf-labs/book-service/internal/domain"
	"github.com/bookshelf-labs/book-service/internal/service"
	apperrors "github.com/bookshelf-labs/book-service/pkg/util"
)

// BooksHandler exposes the catalog endpoints.
type BooksHandler struct {
	service *service.BookService
}

// NewBooksHandler constructs handler.
func NewBooksHandler(bookService *service.BookService) *BooksHandler {
	return &BooksHandler{service: bookService}
}

// List GET /books.
func (h *BooksHandler) List(c *fiber.Ctx) error {
	books, err := h.service.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(books)
}

// Create POST /books.
func (h *BooksHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	book := req.ToDomain()
	if err := h.service.Create(c.UserContext(), book); err != nil {
		return err
	}
	c.Location(fmt.Sprintf("books/%d", book.ID))
	return c.Status(http.StatusCreated).JSON(book)
}

// Update PUT /books?id=&title=&price=&isbn=&year=.
func (h *BooksHandler) Update(c *fiber.Ctx) error {
	var q dto.UpdateBookQuery
	if err := c.QueryParser(&q); err != nil {
		return apperrors.NewValidationError("invalid query", nil)
	}
	if details, err := dto.Validate(q); err != nil {
		return apperrors.NewValidationError("id, title, price, isbn, year required", details)
	}

	book, err := h.service.Update(c.UserContext(), *q.ID, q.ToDomain())
	if err != nil {
		return err
	}
	c.Location("/books")
	return c.Status(http.StatusCreated).JSON(book)
}

// Get GET /books/:id.
func (h *BooksHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("id must be an integer", nil)
	}
	book, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(book)
}

// Search GET /books/search/:query. No match answers 404 with an empty array.
func (h *BooksHandler) Search(c *fiber.Ctx) error {
	books, err := h.service.Search(c.UserContext(), c.Params("query"))
	if err != nil {
		return err
	}
	if len(books) == 0 {
		return c.Status(http.StatusNotFound).JSON([]domain.Book{})
	}
	return c.JSON(books)
}

// ByPage GET /books/bypage?pageNumber=&pageSize=.
func (h *BooksHandler) ByPage(c *fiber.Ctx) error {
	var q dto.PageQuery
	if err := c.QueryParser(&q); err != nil {
		return apperrors.NewValidationError("invalid query", nil)
	}
	if details, err := dto.Validate(q); err != nil {
		return apperrors.NewValidationError("pageNumber and pageSize required", details)
	}

	books, err := h.service.Page(c.UserContext(), *q.PageNumber, *q.PageSize)
	if err != nil {
		return err
	}
	return c.JSON(books)
}
