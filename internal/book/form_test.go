package book

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForm_Fields(t *testing.T) {
	t.Run("canonical isbn and derived cover", func(t *testing.T) {
		f := Form{Title: "The Selfish Gene", ISBN: "0-19-857519-x", CoverURL: ""}.Fields()

		require.NotNil(t, f.ISBN)
		assert.Equal(t, "019857519X", *f.ISBN)
		require.NotNil(t, f.CoverURL)
		assert.Equal(t, "https://covers.openlibrary.org/b/isbn/019857519X-M.jpg", *f.CoverURL)
	})

	t.Run("trusted cover kept", func(t *testing.T) {
		f := Form{ISBN: "9780441013593", CoverURL: " https://covers.openlibrary.org/b/id/11481354-M.jpg"}.Fields()
		require.NotNil(t, f.CoverURL)
		// leading space breaks the prefix match, so the cover is re-derived
		assert.Equal(t, "https://covers.openlibrary.org/b/isbn/9780441013593-M.jpg", *f.CoverURL)

		f = Form{ISBN: "9780441013593", CoverURL: "https://covers.openlibrary.org/b/id/11481354-M.jpg\n"}.Fields()
		require.NotNil(t, f.CoverURL)
		assert.Equal(t, "https://covers.openlibrary.org/b/id/11481354-M.jpg", *f.CoverURL)
	})

	t.Run("foreign cover without isbn is dropped", func(t *testing.T) {
		f := Form{Title: "Zine", CoverURL: "https://example.com/c.jpg"}.Fields()
		assert.Nil(t, f.CoverURL)
		assert.Nil(t, f.ISBN)
	})

	t.Run("look-alike cover host without isbn is dropped", func(t *testing.T) {
		for _, c := range []string{
			"https://covers.openlibrary.org.evil.example/x.jpg",
			"https://covers.openlibrary.org@evil.example/x.jpg",
		} {
			f := Form{Title: "t", CoverURL: c}.Fields()
			assert.Nil(t, f.CoverURL, c)
		}
	})

	t.Run("invalid isbn length stored as empty", func(t *testing.T) {
		f := Form{ISBN: "12-34"}.Fields()
		assert.Nil(t, f.ISBN)
		assert.Nil(t, f.CoverURL)
	})

	t.Run("rating coercion", func(t *testing.T) {
		assert.Nil(t, Form{Rating: ""}.Fields().Rating)
		assert.Nil(t, Form{Rating: "great"}.Fields().Rating)
		assert.Nil(t, Form{Rating: "NaN"}.Fields().Rating)
		require.NotNil(t, Form{Rating: "0"}.Fields().Rating)
		assert.Equal(t, 4.5, *Form{Rating: " 4.5 "}.Fields().Rating)
	})

	t.Run("dates and optional text", func(t *testing.T) {
		f := Form{Title: "  Dune ", Author: "  ", FinishedOn: "2024-01-31", Review: "Loved it", Notes: ""}.Fields()
		assert.Equal(t, "Dune", f.Title)
		assert.Nil(t, f.Author)
		require.NotNil(t, f.FinishedOn)
		assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), *f.FinishedOn)
		require.NotNil(t, f.Review)
		assert.Equal(t, "Loved it", *f.Review)
		assert.Nil(t, f.Notes)

		assert.Nil(t, Form{FinishedOn: "31/01/2024"}.Fields().FinishedOn)
	})
}

func TestFormFromRequest(t *testing.T) {
	values := url.Values{
		"title":       {"Dune"},
		"isbn":        {"978-0441013593"},
		"rating":      {"5"},
		"finished_on": {"2023-12-01"},
	}
	r := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	f, err := FormFromRequest(r)
	require.NoError(t, err)
	assert.Equal(t, Form{Title: "Dune", ISBN: "978-0441013593", Rating: "5", FinishedOn: "2023-12-01"}, f)
}

func TestFormFromBook_RoundTrip(t *testing.T) {
	rating := 3.5
	finished := time.Date(2022, 6, 2, 0, 0, 0, 0, time.UTC)
	isbn := "9780441013593"
	b := Book{ID: 1, Title: "Dune", ISBN: &isbn, Rating: &rating, FinishedOn: &finished}

	f := FormFromBook(b)
	assert.Equal(t, "3.5", f.Rating)
	assert.Equal(t, "2022-06-02", f.FinishedOn)
	assert.Equal(t, "", f.Author)

	fields := f.Fields()
	assert.Equal(t, b.Title, fields.Title)
	assert.Equal(t, *b.ISBN, *fields.ISBN)
	assert.Equal(t, *b.Rating, *fields.Rating)
	assert.True(t, b.FinishedOn.Equal(*fields.FinishedOn))
}

func TestBook_Cover(t *testing.T) {
	stored := "https://covers.openlibrary.org/b/id/1-M.jpg"
	isbn := "9780441013593"

	assert.Equal(t, stored, Book{CoverURL: &stored, ISBN: &isbn}.Cover("M"))
	assert.Equal(t, "https://covers.openlibrary.org/b/isbn/9780441013593-S.jpg", Book{ISBN: &isbn}.Cover("S"))
	assert.Equal(t, "", Book{}.Cover("M"))
}
