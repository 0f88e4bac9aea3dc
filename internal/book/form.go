package book

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"booknotes/internal/cover"
	"booknotes/internal/isbn"
)

// Form is a create/edit submission exactly as posted. Every field is read;
// a missing field is the same as an empty one.
type Form struct {
	Title      string `form:"title" validate:"max=500"`
	Author     string `form:"author" validate:"max=500"`
	ISBN       string `form:"isbn" validate:"max=64"`
	CoverURL   string `form:"cover_url" validate:"max=2048"`
	Rating     string `form:"rating" validate:"max=32"`
	FinishedOn string `form:"finished_on" validate:"omitempty,datetime=2006-01-02"`
	Review     string `form:"review" validate:"max=20000"`
	Notes      string `form:"notes" validate:"max=20000"`
}

// FormFromRequest reads the url-encoded body of r.
func FormFromRequest(r *http.Request) (Form, error) {
	if err := r.ParseForm(); err != nil {
		return Form{}, err
	}
	return Form{
		Title:      r.PostForm.Get("title"),
		Author:     r.PostForm.Get("author"),
		ISBN:       r.PostForm.Get("isbn"),
		CoverURL:   r.PostForm.Get("cover_url"),
		Rating:     r.PostForm.Get("rating"),
		FinishedOn: r.PostForm.Get("finished_on"),
		Review:     r.PostForm.Get("review"),
		Notes:      r.PostForm.Get("notes"),
	}, nil
}

// FormFromBook pre-fills the edit form.
func FormFromBook(b Book) Form {
	f := Form{
		Title:      b.Title,
		Author:     deref(b.Author),
		ISBN:       deref(b.ISBN),
		CoverURL:   deref(b.CoverURL),
		FinishedOn: b.FinishedOnString(),
		Review:     deref(b.Review),
		Notes:      deref(b.Notes),
	}
	if b.Rating != nil {
		f.Rating = strconv.FormatFloat(*b.Rating, 'f', -1, 64)
	}
	return f
}

// Fields canonicalizes the ISBN, settles the cover URL and coerces the
// optional columns. It never fails: anything unusable becomes empty.
func (f Form) Fields() Fields {
	canonical := isbn.Canonical(f.ISBN)
	return Fields{
		Title:      strings.TrimSpace(f.Title),
		Author:     optional(f.Author),
		ISBN:       optional(canonical),
		CoverURL:   optional(cover.Resolve(f.CoverURL, canonical, cover.Medium)),
		Rating:     parseRating(f.Rating),
		FinishedOn: parseDate(f.FinishedOn),
		Review:     optional(f.Review),
		Notes:      optional(f.Notes),
	}
}

func parseRating(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
