package book

import (
	"errors"
	"time"

	"booknotes/internal/cover"
)

// ErrNotFound is returned when no book has the requested id.
var ErrNotFound = errors.New("book not found")

// DateLayout is the wire and form format of FinishedOn.
const DateLayout = "2006-01-02"

// Book is a persisted reading-log entry. ISBN, when set, is canonical and
// CoverURL, when set, points at cover.TrustedOrigin.
type Book struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	Author     *string    `json:"author"`
	ISBN       *string    `json:"isbn"`
	CoverURL   *string    `json:"cover_url"`
	Rating     *float64   `json:"rating"`
	FinishedOn *time.Time `json:"finished_on"`
	Review     *string    `json:"review"`
	Notes      *string    `json:"notes"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Fields are the mutable columns of a book after normalization. Create and
// Update write every one of them.
type Fields struct {
	Title      string
	Author     *string
	ISBN       *string
	CoverURL   *string
	Rating     *float64
	FinishedOn *time.Time
	Review     *string
	Notes      *string
}

// Cover returns the stored cover URL, or one derived from the ISBN when none
// was stored. The derived URL is never persisted.
func (b Book) Cover(size cover.Size) string {
	if b.CoverURL != nil && *b.CoverURL != "" {
		return *b.CoverURL
	}
	if b.ISBN != nil {
		return cover.FromISBN(*b.ISBN, size)
	}
	return ""
}

// FinishedOnString formats FinishedOn for forms; "" when unset.
func (b Book) FinishedOnString() string {
	if b.FinishedOn == nil {
		return ""
	}
	return b.FinishedOn.Format(DateLayout)
}

func (b Book) apply(f Fields) Book {
	b.Title = f.Title
	b.Author = f.Author
	b.ISBN = f.ISBN
	b.CoverURL = f.CoverURL
	b.Rating = f.Rating
	b.FinishedOn = f.FinishedOn
	b.Review = f.Review
	b.Notes = f.Notes
	return b
}
