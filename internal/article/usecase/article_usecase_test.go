package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	articleDomain "github.com/allisson/guardpost/internal/article/domain"
)

// mockArticleRepository is a mock implementation of ArticleRepository.
type mockArticleRepository struct {
	mock.Mock
}

func (m *mockArticleRepository) Create(ctx context.Context, article *articleDomain.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *mockArticleRepository) Update(ctx context.Context, article *articleDomain.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *mockArticleRepository) GetByID(ctx context.Context, articleID uuid.UUID) (*articleDomain.Article, error) {
	args := m.Called(ctx, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*articleDomain.Article), args.Error(1)
}

func (m *mockArticleRepository) List(ctx context.Context, offset, limit int) ([]*articleDomain.Article, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*articleDomain.Article), args.Error(1)
}

func (m *mockArticleRepository) Delete(ctx context.Context, articleID uuid.UUID) error {
	args := m.Called(ctx, articleID)
	return args.Error(0)
}

// mockTxManager executes the transaction function directly without a real
// database.
type mockTxManager struct {
	mock.Mock
}

func (m *mockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

func testArticle() *articleDomain.Article {
	now := time.Now().UTC().Truncate(time.Second)
	return &articleDomain.Article{
		ID:        uuid.Must(uuid.NewV7()),
		Title:     "Intro to Rate Limiting",
		Content:   "Token buckets in practice.",
		AuthorID:  "admin",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestArticleUseCase_Create(t *testing.T) {
	t.Run("Success_CreatesArticle", func(t *testing.T) {
		mockRepo := &mockArticleRepository{}
		mockTx := &mockTxManager{}
		useCase := NewArticleUseCase(mockTx, mockRepo)

		input := &articleDomain.CreateArticleInput{
			Title:    "Intro to Rate Limiting",
			Content:  "Token buckets in practice.",
			AuthorID: "admin",
		}

		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(article *articleDomain.Article) bool {
			return article.Title == input.Title &&
				article.Content == input.Content &&
				article.AuthorID == input.AuthorID &&
				article.ID != uuid.Nil &&
				article.CreatedAt.Equal(article.UpdatedAt)
		})).Return(nil).Once()

		article, err := useCase.Create(context.Background(), input)

		require.NoError(t, err)
		assert.Equal(t, "Intro to Rate Limiting", article.Title)
		assert.Equal(t, "admin", article.AuthorID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error_RepositoryError", func(t *testing.T) {
		mockRepo := &mockArticleRepository{}
		mockTx := &mockTxManager{}
		useCase := NewArticleUseCase(mockTx, mockRepo)

		mockRepo.On("Create", mock.Anything, mock.Anything).
			Return(fmt.Errorf("database error")).Once()

		article, err := useCase.Create(context.Background(), &articleDomain.CreateArticleInput{
			Title:   "Title",
			Content: "Content",
		})

		assert.Error(t, err)
		assert.Nil(t, article)
	})
}

func TestArticleUseCase_Get(t *testing.T) {
	t.Run("Success_ExistingArticle", func(t *testing.T) {
		mockRepo := &mockArticleRepository{}
		mockTx := &mockTxManager{}
		useCase := NewArticleUseCase(mockTx, mockRepo)

		article := testArticle()

		mockRepo.On("GetByID", mock.Anything, article.ID).
			Return(article, nil).Once()

		got, err := useCase.Get(context.Background(), article.ID)

		require.NoError(t, err)
		assert.Equal(t, article, got)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		mockRepo := &mockArticleRepository{}
		mockTx := &mockTxManager{}
		useCase := NewArticleUseCase(mockTx, mockRepo)

		articleID := uuid.Must(uuid.NewV7())

		mockRepo.On("GetByID", mock.Anything, articleID).
			Return(nil, articleDomain.ErrArticleNotFound).Once()

		got, err := useCase.Get(context.Background(), articleID)

		assert.ErrorIs(t, err, articleDomain.ErrArticleNotFound)
		assert.Nil(t, got)
	})
}

func TestArticleUseCase_Update(t *testing.T) {
	t.Run("Success_UpdatesWithinTransaction", func(t *testing.T) {
		mockRepo := &mockArticleRepository{}
		mockTx := &mockTxManager{}
		useCase := NewArticleUseCase(mockTx, mockRepo)

		article := testArticle()
		originalUpdatedAt := article.UpdatedAt

		mockTx.On("WithTx", mock.Anything, mock.Anything).Return(nil).Once()
		mockRepo.On("GetByID", mock.Anything, article.ID).
			Return(article, nil).Once()
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(a *articleDomain.Article) bool {
			return a.Title == "Updated Title" &&
				a.Content == "Updated content." &&
				!a.UpdatedAt.Before(originalUpdatedAt)
		})).Return(nil).Once()

		updated, err := useCase.Update(context.Background(), article.ID, &articleDomain.UpdateArticleInput{
			Title:   "Updated Title",
			Content: "Updated content.",
		})

		require.NoError(t, err)
		assert.Equal(t, "Updated Title", updated.Title)
		mockTx.AssertExpectations(t)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		mockRepo := &mockArticleRepository{}
		mockTx := &mockTxManager{}
		useCase := NewArticleUseCase(mockTx, mockRepo)

		articleID := uuid.Must(uuid.NewV7())

		mockTx.On("WithTx", mock.Anything, mock.Anything).Return(nil).Once()
		mockRepo.On("GetByID", mock.Anything, articleID).
			Return(nil, articleDomain.ErrArticleNotFound).Once()

		updated, err := useCase.Update(context.Background(), articleID, &articleDomain.UpdateArticleInput{
			Title:   "Updated Title",
			Content: "Updated content.",
		})

		assert.ErrorIs(t, err, articleDomain.ErrArticleNotFound)
		assert.Nil(t, updated)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestArticleUseCase_Delete(t *testing.T) {
	t.Run("Success_DeletesArticle", func(t *testing.T) {
		mockRepo := &mockArticleRepository{}
		mockTx := &mockTxManager{}
		useCase := NewArticleUseCase(mockTx, mockRepo)

		articleID := uuid.Must(uuid.NewV7())

		mockRepo.On("Delete", mock.Anything, articleID).Return(nil).Once()

		err := useCase.Delete(context.Background(), articleID)

		assert.NoError(t, err)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		mockRepo := &mockArticleRepository{}
		mockTx := &mockTxManager{}
		useCase := NewArticleUseCase(mockTx, mockRepo)

		articleID := uuid.Must(uuid.NewV7())

		mockRepo.On("Delete", mock.Anything, articleID).
			Return(articleDomain.ErrArticleNotFound).Once()

		err := useCase.Delete(context.Background(), articleID)

		assert.ErrorIs(t, err, articleDomain.ErrArticleNotFound)
	})
}

func TestArticleUseCase_List(t *testing.T) {
	t.Run("Success_ListsArticles", func(t *testing.T) {
		mockRepo := &mockArticleRepository{}
		mockTx := &mockTxManager{}
		useCase := NewArticleUseCase(mockTx, mockRepo)

		articles := []*articleDomain.Article{testArticle()}

		mockRepo.On("List", mock.Anything, 0, 50).
			Return(articles, nil).Once()

		got, err := useCase.List(context.Background(), 0, 50)

		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}
