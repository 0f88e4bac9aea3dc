// Package search looks books up on OpenLibrary and reshapes the results into
// hits that pre-fill the new-book form.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"booknotes/internal/cover"
	"booknotes/internal/platform/openlibrary"
)

// MaxResults caps the number of hits returned, whatever upstream reports.
const MaxResults = 5

var (
	ErrEmptyQuery   = errors.New("search query is empty")
	ErrSearchFailed = errors.New("search failed")
)

// Hit is a transient search result. It is never persisted.
type Hit struct {
	Title            string  `json:"title"`
	Author           *string `json:"author"`
	ISBN             *string `json:"isbn"`
	FirstPublishYear *int    `json:"first_publish_year"`
	CoverURL         *string `json:"cover_url"`
}

// Client is the subset of the OpenLibrary client the service needs.
type Client interface {
	Search(ctx context.Context, q string, limit int) (*openlibrary.SearchResponse, error)
}

type Service struct {
	client Client
}

func NewService(client Client) *Service {
	return &Service{client: client}
}

// Search returns at most MaxResults hits. It either yields every hit or fails
// with ErrSearchFailed; partial results are never returned.
func (s *Service) Search(ctx context.Context, q string) ([]Hit, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, ErrEmptyQuery
	}

	res, err := s.client.Search(ctx, q, MaxResults)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	if res == nil {
		return nil, fmt.Errorf("%w: empty response", ErrSearchFailed)
	}

	docs := res.Docs
	if len(docs) > MaxResults {
		docs = docs[:MaxResults]
	}

	hits := make([]Hit, 0, len(docs))
	for _, d := range docs {
		hits = append(hits, toHit(d))
	}
	return hits, nil
}

func toHit(d openlibrary.Doc) Hit {
	h := Hit{Title: d.Title}
	if len(d.AuthorNames) > 0 && d.AuthorNames[0] != "" {
		h.Author = &d.AuthorNames[0]
	}
	firstISBN := ""
	if len(d.ISBN) > 0 && d.ISBN[0] != "" {
		firstISBN = d.ISBN[0]
		h.ISBN = &firstISBN
	}
	if d.FirstPublishYear != 0 {
		year := d.FirstPublishYear
		h.FirstPublishYear = &year
	}
	if u := cover.FromProviderID(d.CoverI, firstISBN, cover.Medium); u != "" {
		h.CoverURL = &u
	}
	return h
}
