package book

import (
	"context"
)

// Service provides the reading-log operations on top of a Repository.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every book in the order named by rawSort.
func (s *Service) List(ctx context.Context, rawSort string) ([]Book, SortKey, error) {
	key := ParseSort(rawSort)
	books, err := s.repo.List(ctx, key)
	if err != nil {
		return nil, key, err
	}
	return books, key, nil
}

// Get returns a book by id or ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (Book, error) {
	return s.repo.Get(ctx, id)
}

// Create normalizes the form and stores a new book.
func (s *Service) Create(ctx context.Context, f Form) (int64, error) {
	return s.repo.Create(ctx, f.Fields())
}

// Update overwrites every mutable field of book id.
func (s *Service) Update(ctx context.Context, id int64, f Form) error {
	return s.repo.Update(ctx, id, f.Fields())
}

// Delete removes book id for good.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Ping reports whether storage is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
