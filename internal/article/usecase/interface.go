// Package usecase defines business logic interfaces for article management.
package usecase

import (
	"context"

	"github.com/google/uuid"

	articleDomain "github.com/allisson/guardpost/internal/article/domain"
)

// ArticleRepository defines persistence operations for articles.
// Implementations must support transaction-aware operations via context
// propagation.
type ArticleRepository interface {
	// Create stores a new article.
	Create(ctx context.Context, article *articleDomain.Article) error

	// Update modifies an existing article.
	Update(ctx context.Context, article *articleDomain.Article) error

	// GetByID retrieves an article by ID. Returns ErrArticleNotFound if not found.
	GetByID(ctx context.Context, articleID uuid.UUID) (*articleDomain.Article, error)

	// List retrieves articles ordered by creation time (newest first) with
	// pagination support.
	List(ctx context.Context, offset, limit int) ([]*articleDomain.Article, error)

	// Delete removes an article. Returns ErrArticleNotFound if not found.
	Delete(ctx context.Context, articleID uuid.UUID) error
}

// ArticleUseCase defines business logic operations for managing articles.
type ArticleUseCase interface {
	// Create stores a new article authored by the given principal.
	Create(
		ctx context.Context,
		createArticleInput *articleDomain.CreateArticleInput,
	) (*articleDomain.Article, error)

	// Get retrieves an article by ID.
	//
	// Returns ErrArticleNotFound if the article doesn't exist.
	Get(ctx context.Context, articleID uuid.UUID) (*articleDomain.Article, error)

	// List retrieves articles ordered by creation time with pagination support.
	List(ctx context.Context, offset, limit int) ([]*articleDomain.Article, error)

	// Update modifies an article's title and content within a transaction.
	//
	// Returns ErrArticleNotFound if the article doesn't exist.
	Update(
		ctx context.Context,
		articleID uuid.UUID,
		updateArticleInput *articleDomain.UpdateArticleInput,
	) (*articleDomain.Article, error)

	// Delete removes an article.
	//
	// Returns ErrArticleNotFound if the article doesn't exist.
	Delete(ctx context.Context, articleID uuid.UUID) error
}
