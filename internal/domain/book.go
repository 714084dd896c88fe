package domain

import "time"

// Book is the single catalog record exposed by the service.
type Book struct {
	ID            int        `json:"id"`
	Title         *string    `json:"title"`
	Year          int        `json:"year"`
	ISBN          int64      `json:"isbn"`
	PublishedDate *time.Time `json:"publishedDate"`
	Price         int16      `json:"price"`
	AuthorID      int        `json:"authorId"`
}

// BookUpdate lists the fields replaced by an update.
type BookUpdate struct {
	Title string
	Price int16
	ISBN  int64
	Year  int
}

// Apply overwrites the updatable fields of b.
func (u BookUpdate) Apply(b *Book) {
	title := u.Title
	b.Title = &title
	b.Price = u.Price
	b.ISBN = u.ISBN
	b.Year = u.Year
}
