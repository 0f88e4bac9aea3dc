package book

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	service := NewService(mockRepo)
	ctx := context.Background()

	t.Run("unknown sort falls back to recency", func(t *testing.T) {
		mockRepo.EXPECT().List(ctx, SortRecency).Return([]Book{{ID: 1}}, nil)

		books, key, err := service.List(ctx, "popularity")
		require.NoError(t, err)
		assert.Equal(t, SortRecency, key)
		assert.Len(t, books, 1)
	})

	t.Run("storage error propagates", func(t *testing.T) {
		mockRepo.EXPECT().List(ctx, SortTitle).Return(nil, context.DeadlineExceeded)

		_, _, err := service.List(ctx, "title")
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	service := NewService(mockRepo)
	ctx := context.Background()

	mockRepo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, f Fields) (int64, error) {
		require.NotNil(t, f.ISBN)
		assert.Equal(t, "019853453X", *f.ISBN)
		require.NotNil(t, f.CoverURL)
		assert.Equal(t, "https://covers.openlibrary.org/b/isbn/019853453X-M.jpg", *f.CoverURL)
		return 42, nil
	})

	id, err := service.Create(ctx, Form{Title: "Some Book", ISBN: "0-19-853453-x", CoverURL: ""})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestService_UpdateDelete_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	service := NewService(mockRepo)
	ctx := context.Background()

	mockRepo.EXPECT().Update(ctx, int64(99), gomock.Any()).Return(ErrNotFound)
	mockRepo.EXPECT().Delete(ctx, int64(99)).Return(ErrNotFound)

	assert.ErrorIs(t, service.Update(ctx, 99, Form{Title: "x"}), ErrNotFound)
	assert.ErrorIs(t, service.Delete(ctx, 99), ErrNotFound)
}

func TestService_Update_FullOverwrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	service := NewService(mockRepo)
	ctx := context.Background()

	mockRepo.EXPECT().Update(ctx, int64(5), Fields{Title: "Only title"}).Return(nil)

	assert.NoError(t, service.Update(ctx, 5, Form{Title: "Only title"}))
}

func TestService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	service := NewService(mockRepo)
	ctx := context.Background()

	mockRepo.EXPECT().Get(ctx, int64(1)).Return(Book{ID: 1, Title: "Dune"}, nil)
	mockRepo.EXPECT().Get(ctx, int64(2)).Return(Book{}, ErrNotFound)
	mockRepo.EXPECT().Ping(ctx).Return(errors.New("down"))

	b, err := service.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Dune", b.Title)

	_, err = service.Get(ctx, 2)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Error(t, service.Ping(ctx))
}
