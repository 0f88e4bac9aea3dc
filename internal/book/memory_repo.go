package book

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"
)

// MemoryRepo keeps books in process memory. It backs tests and
// BOOKS_STORE=memory; nothing survives a restart. Titles sort case-insensitively
// and otherwise by byte order, so accented titles may land elsewhere than under
// a locale-aware database collation.
type MemoryRepo struct {
	mu     sync.RWMutex
	books  map[int64]Book
	nextID int64
	now    func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		books: make(map[int64]Book),
		now:   time.Now,
	}
}

func (r *MemoryRepo) List(_ context.Context, sort SortKey) ([]Book, error) {
	r.mu.RLock()
	out := make([]Book, 0, len(r.books))
	for _, b := range r.books {
		out = append(out, b)
	}
	r.mu.RUnlock()

	slices.SortStableFunc(out, func(a, b Book) int {
		if c := sort.Compare(a, b); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (r *MemoryRepo) Get(_ context.Context, id int64) (Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	return b, nil
}

func (r *MemoryRepo) Create(_ context.Context, f Fields) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	now := r.now()
	b := Book{ID: r.nextID, CreatedAt: now, UpdatedAt: now}.apply(f)
	r.books[b.ID] = b
	return b.ID, nil
}

func (r *MemoryRepo) Update(_ context.Context, id int64, f Fields) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[id]
	if !ok {
		return ErrNotFound
	}
	b = b.apply(f)
	b.UpdatedAt = r.now()
	r.books[id] = b
	return nil
}

func (r *MemoryRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[id]; !ok {
		return ErrNotFound
	}
	delete(r.books, id)
	return nil
}

func (r *MemoryRepo) Ping(context.Context) error { return nil }
