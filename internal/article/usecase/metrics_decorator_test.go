package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	articleDomain "github.com/allisson/guardpost/internal/article/domain"
)

// mockArticleUseCase is a mock implementation of ArticleUseCase.
type mockArticleUseCase struct {
	mock.Mock
}

func (m *mockArticleUseCase) Create(
	ctx context.Context,
	createArticleInput *articleDomain.CreateArticleInput,
) (*articleDomain.Article, error) {
	args := m.Called(ctx, createArticleInput)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*articleDomain.Article), args.Error(1)
}

func (m *mockArticleUseCase) Get(ctx context.Context, articleID uuid.UUID) (*articleDomain.Article, error) {
	args := m.Called(ctx, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*articleDomain.Article), args.Error(1)
}

func (m *mockArticleUseCase) List(ctx context.Context, offset, limit int) ([]*articleDomain.Article, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*articleDomain.Article), args.Error(1)
}

func (m *mockArticleUseCase) Update(
	ctx context.Context,
	articleID uuid.UUID,
	updateArticleInput *articleDomain.UpdateArticleInput,
) (*articleDomain.Article, error) {
	args := m.Called(ctx, articleID, updateArticleInput)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*articleDomain.Article), args.Error(1)
}

func (m *mockArticleUseCase) Delete(ctx context.Context, articleID uuid.UUID) error {
	args := m.Called(ctx, articleID)
	return args.Error(0)
}

// mockBusinessMetrics is a mock implementation of metrics.BusinessMetrics.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func TestArticleUseCaseWithMetrics(t *testing.T) {
	t.Run("Create_RecordsSuccess", func(t *testing.T) {
		mockUseCase := &mockArticleUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		decorated := NewArticleUseCaseWithMetrics(mockUseCase, mockMetrics)

		article := testArticle()

		mockUseCase.On("Create", mock.Anything, mock.Anything).
			Return(article, nil).Once()
		mockMetrics.On("RecordOperation", mock.Anything, "articles", "article_create", "success").Once()
		mockMetrics.On("RecordDuration", mock.Anything, "articles", "article_create", mock.Anything, "success").Once()

		got, err := decorated.Create(context.Background(), &articleDomain.CreateArticleInput{
			Title:   "Title",
			Content: "Content",
		})

		assert.NoError(t, err)
		assert.Equal(t, article, got)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Create_RecordsError", func(t *testing.T) {
		mockUseCase := &mockArticleUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		decorated := NewArticleUseCaseWithMetrics(mockUseCase, mockMetrics)

		mockUseCase.On("Create", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("database error")).Once()
		mockMetrics.On("RecordOperation", mock.Anything, "articles", "article_create", "error").Once()
		mockMetrics.On("RecordDuration", mock.Anything, "articles", "article_create", mock.Anything, "error").Once()

		got, err := decorated.Create(context.Background(), &articleDomain.CreateArticleInput{
			Title:   "Title",
			Content: "Content",
		})

		assert.Error(t, err)
		assert.Nil(t, got)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Get_RecordsSuccess", func(t *testing.T) {
		mockUseCase := &mockArticleUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		decorated := NewArticleUseCaseWithMetrics(mockUseCase, mockMetrics)

		article := testArticle()

		mockUseCase.On("Get", mock.Anything, article.ID).
			Return(article, nil).Once()
		mockMetrics.On("RecordOperation", mock.Anything, "articles", "article_get", "success").Once()
		mockMetrics.On("RecordDuration", mock.Anything, "articles", "article_get", mock.Anything, "success").Once()

		got, err := decorated.Get(context.Background(), article.ID)

		assert.NoError(t, err)
		assert.Equal(t, article, got)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Delete_RecordsSuccess", func(t *testing.T) {
		mockUseCase := &mockArticleUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		decorated := NewArticleUseCaseWithMetrics(mockUseCase, mockMetrics)

		articleID := uuid.Must(uuid.NewV7())

		mockUseCase.On("Delete", mock.Anything, articleID).Return(nil).Once()
		mockMetrics.On("RecordOperation", mock.Anything, "articles", "article_delete", "success").Once()
		mockMetrics.On("RecordDuration", mock.Anything, "articles", "article_delete", mock.Anything, "success").Once()

		err := decorated.Delete(context.Background(), articleID)

		assert.NoError(t, err)
		mockMetrics.AssertExpectations(t)
	})
}
