package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	articleDomain "github.com/allisson/guardpost/internal/article/domain"
	"github.com/allisson/guardpost/internal/database"
)

// articleUseCase implements the ArticleUseCase interface.
type articleUseCase struct {
	txManager   database.TxManager
	articleRepo ArticleRepository
}

// Create stores a new article authored by the given principal.
func (a *articleUseCase) Create(
	ctx context.Context,
	createArticleInput *articleDomain.CreateArticleInput,
) (*articleDomain.Article, error) {
	now := time.Now().UTC()

	article := &articleDomain.Article{
		ID:        uuid.Must(uuid.NewV7()),
		Title:     createArticleInput.Title,
		Content:   createArticleInput.Content,
		AuthorID:  createArticleInput.AuthorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := a.articleRepo.Create(ctx, article); err != nil {
		return nil, err
	}

	return article, nil
}

// Get retrieves an article by ID.
func (a *articleUseCase) Get(
	ctx context.Context,
	articleID uuid.UUID,
) (*articleDomain.Article, error) {
	return a.articleRepo.GetByID(ctx, articleID)
}

// List retrieves articles ordered by creation time with pagination support.
func (a *articleUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*articleDomain.Article, error) {
	return a.articleRepo.List(ctx, offset, limit)
}

// Update modifies an article's title and content. The read-modify-write runs
// inside a transaction so concurrent updates don't interleave.
func (a *articleUseCase) Update(
	ctx context.Context,
	articleID uuid.UUID,
	updateArticleInput *articleDomain.UpdateArticleInput,
) (*articleDomain.Article, error) {
	var updatedArticle *articleDomain.Article

	err := a.txManager.WithTx(ctx, func(txCtx context.Context) error {
		article, err := a.articleRepo.GetByID(txCtx, articleID)
		if err != nil {
			return err
		}

		article.Title = updateArticleInput.Title
		article.Content = updateArticleInput.Content
		article.UpdatedAt = time.Now().UTC()

		if err := a.articleRepo.Update(txCtx, article); err != nil {
			return err
		}

		updatedArticle = article
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updatedArticle, nil
}

// Delete removes an article.
func (a *articleUseCase) Delete(ctx context.Context, articleID uuid.UUID) error {
	return a.articleRepo.Delete(ctx, articleID)
}

// NewArticleUseCase creates a new article use case instance with the provided
// dependencies.
func NewArticleUseCase(
	txManager database.TxManager,
	articleRepo ArticleRepository,
) ArticleUseCase {
	return &articleUseCase{
		txManager:   txManager,
		articleRepo: articleRepo,
	}
}
