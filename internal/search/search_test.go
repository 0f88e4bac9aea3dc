package search

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"booknotes/internal/platform/openlibrary"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockOLClient struct {
	mock.Mock
}

func (m *mockOLClient) Search(ctx context.Context, q string, limit int) (*openlibrary.SearchResponse, error) {
	args := m.Called(ctx, q, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*openlibrary.SearchResponse), args.Error(1)
}

func TestService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("maps docs to hits", func(t *testing.T) {
		mOL := new(mockOLClient)
		s := NewService(mOL)

		mOL.On("Search", ctx, "dune", MaxResults).Return(&openlibrary.SearchResponse{
			NumFound: 3,
			Docs: []openlibrary.Doc{
				{Title: "Dune", AuthorNames: []string{"Frank Herbert", "Someone Else"}, ISBN: []string{"9780441013593", "0441013597"}, FirstPublishYear: 1965, CoverI: 11481354},
				{Title: "Dune Messiah", ISBN: []string{"978-0-441-17269-7"}},
				{Title: "Untitled draft"},
			},
		}, nil)

		hits, err := s.Search(ctx, "  dune ")
		require.NoError(t, err)
		require.Len(t, hits, 3)

		assert.Equal(t, "Dune", hits[0].Title)
		require.NotNil(t, hits[0].Author)
		assert.Equal(t, "Frank Herbert", *hits[0].Author)
		require.NotNil(t, hits[0].ISBN)
		assert.Equal(t, "9780441013593", *hits[0].ISBN)
		require.NotNil(t, hits[0].FirstPublishYear)
		assert.Equal(t, 1965, *hits[0].FirstPublishYear)
		require.NotNil(t, hits[0].CoverURL)
		assert.Equal(t, "https://covers.openlibrary.org/b/id/11481354-M.jpg", *hits[0].CoverURL)

		assert.Nil(t, hits[1].Author)
		assert.Nil(t, hits[1].FirstPublishYear)
		require.NotNil(t, hits[1].CoverURL)
		assert.Equal(t, "https://covers.openlibrary.org/b/isbn/9780441172697-M.jpg", *hits[1].CoverURL)

		assert.Nil(t, hits[2].ISBN)
		assert.Nil(t, hits[2].CoverURL)
		mOL.AssertExpectations(t)
	})

	t.Run("caps results at five", func(t *testing.T) {
		mOL := new(mockOLClient)
		s := NewService(mOL)

		docs := make([]openlibrary.Doc, 12)
		for i := range docs {
			docs[i] = openlibrary.Doc{Title: fmt.Sprintf("Dune %d", i)}
		}
		mOL.On("Search", ctx, "dune", MaxResults).Return(&openlibrary.SearchResponse{NumFound: 12, Docs: docs}, nil)

		hits, err := s.Search(ctx, "dune")
		require.NoError(t, err)
		assert.Len(t, hits, MaxResults)
		assert.Equal(t, "Dune 4", hits[4].Title)
	})

	t.Run("empty query never calls upstream", func(t *testing.T) {
		mOL := new(mockOLClient)
		s := NewService(mOL)

		for _, q := range []string{"", "   "} {
			_, err := s.Search(ctx, q)
			assert.ErrorIs(t, err, ErrEmptyQuery)
		}
		mOL.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("upstream failure collapses to search failed", func(t *testing.T) {
		mOL := new(mockOLClient)
		s := NewService(mOL)

		mOL.On("Search", ctx, "dune", MaxResults).Return(nil, errors.New("dial tcp: i/o timeout"))

		hits, err := s.Search(ctx, "dune")
		assert.ErrorIs(t, err, ErrSearchFailed)
		assert.Nil(t, hits)
	})

	t.Run("no docs yields empty slice", func(t *testing.T) {
		mOL := new(mockOLClient)
		s := NewService(mOL)

		mOL.On("Search", ctx, "zzzz", MaxResults).Return(&openlibrary.SearchResponse{}, nil)

		hits, err := s.Search(ctx, "zzzz")
		require.NoError(t, err)
		assert.NotNil(t, hits)
		assert.Empty(t, hits)
	})
}
