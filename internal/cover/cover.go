// Package cover decides which cover image URL a book may carry. Only URLs on
// the OpenLibrary covers host are ever accepted or produced.
package cover

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"booknotes/internal/isbn"
)

// TrustedOrigin is the only host a stored cover URL may point at.
const TrustedOrigin = "https://covers.openlibrary.org"

// Size is the OpenLibrary covers size token.
type Size string

const (
	Small  Size = "S"
	Medium Size = "M"
	Large  Size = "L"
)

func (s Size) orDefault() Size {
	switch s {
	case Small, Medium, Large:
		return s
	default:
		return Medium
	}
}

type options struct {
	noPlaceholder bool
}

// Option tweaks a derived URL.
type Option func(*options)

// NoPlaceholder asks the covers service to answer 404 instead of serving a
// blank image when it has no cover for the identifier.
func NoPlaceholder() Option {
	return func(o *options) { o.noPlaceholder = true }
}

// FromISBN builds a cover URL from an ISBN. It returns "" unless the
// normalized identifier is 10 or 13 characters long.
func FromISBN(raw string, size Size, opts ...Option) string {
	clean := isbn.Normalize(raw)
	if !isbn.Valid(clean) {
		return ""
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	u := fmt.Sprintf("%s/b/isbn/%s-%s.jpg", TrustedOrigin, url.PathEscape(clean), size.orDefault())
	if o.noPlaceholder {
		u += "?default=false"
	}
	return u
}

// trustedPrefix ends at the path separator so look-alike hosts such as
// covers.openlibrary.org.example or covers.openlibrary.org@example never match.
const trustedPrefix = TrustedOrigin + "/"

// Resolve returns candidate (trimmed) when it already points at the trusted
// origin, and otherwise derives a URL from the ISBN.
func Resolve(candidate, rawISBN string, size Size) string {
	if strings.HasPrefix(candidate, trustedPrefix) {
		return strings.TrimSpace(candidate)
	}
	return FromISBN(rawISBN, size)
}

// FromProviderID prefers an OpenLibrary cover id over the ISBN, since search
// results populate cover ids far more reliably than ISBN covers.
func FromProviderID(coverID int, rawISBN string, size Size) string {
	if coverID > 0 {
		return fmt.Sprintf("%s/b/id/%s-%s.jpg", TrustedOrigin, strconv.Itoa(coverID), size.orDefault())
	}
	return FromISBN(rawISBN, size)
}
