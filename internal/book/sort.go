package book

import (
	"cmp"
	"strings"
	"time"
)

// SortKey selects the listing order.
type SortKey string

const (
	SortRecency SortKey = "recency"
	SortTitle   SortKey = "title"
	SortRating  SortKey = "rating"
)

// orderBy holds the only ORDER BY fragments ever sent to the database.
var orderBy = map[SortKey]string{
	SortRecency: "finished_on DESC NULLS LAST, created_at DESC",
	SortTitle:   "NULLIF(title, '') ASC NULLS LAST",
	SortRating:  "rating DESC NULLS LAST, finished_on DESC NULLS LAST",
}

// ParseSort maps a query parameter to a key. Unknown values mean recency.
func ParseSort(raw string) SortKey {
	k := SortKey(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := orderBy[k]; ok {
		return k
	}
	return SortRecency
}

func (k SortKey) String() string { return string(k) }

// OrderBy returns the SQL ordering for k.
func (k SortKey) OrderBy() string {
	if o, ok := orderBy[k]; ok {
		return o
	}
	return orderBy[SortRecency]
}

// Compare orders two books the same way OrderBy does.
func (k SortKey) Compare(a, b Book) int {
	switch k {
	case SortTitle:
		return compareTitle(a.Title, b.Title)
	case SortRating:
		if c := descNullsLast(a.Rating, b.Rating, cmp.Compare[float64]); c != 0 {
			return c
		}
		return descNullsLast(a.FinishedOn, b.FinishedOn, compareTime)
	default:
		if c := descNullsLast(a.FinishedOn, b.FinishedOn, compareTime); c != 0 {
			return c
		}
		return -compareTime(a.CreatedAt, b.CreatedAt)
	}
}

func compareTitle(a, b string) int {
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return 1
	case b == "":
		return -1
	}
	// Folding case first keeps "apple" ahead of "Banana", which is how the
	// usual Postgres collations order them. Byte order only breaks ties.
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func compareTime(a, b time.Time) int {
	return a.Compare(b)
}

func descNullsLast[T any](a, b *T, compare func(T, T) int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return -compare(*a, *b)
}
