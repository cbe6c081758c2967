package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	articleDomain "github.com/allisson/guardpost/internal/article/domain"
	"github.com/allisson/guardpost/internal/metrics"
)

// articleUseCaseWithMetrics decorates ArticleUseCase with metrics instrumentation.
type articleUseCaseWithMetrics struct {
	next    ArticleUseCase
	metrics metrics.BusinessMetrics
}

// NewArticleUseCaseWithMetrics wraps an ArticleUseCase with metrics recording.
func NewArticleUseCaseWithMetrics(useCase ArticleUseCase, m metrics.BusinessMetrics) ArticleUseCase {
	return &articleUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for article creation operations.
func (a *articleUseCaseWithMetrics) Create(
	ctx context.Context,
	createArticleInput *articleDomain.CreateArticleInput,
) (*articleDomain.Article, error) {
	start := time.Now()
	article, err := a.next.Create(ctx, createArticleInput)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "articles", "article_create", status)
	a.metrics.RecordDuration(ctx, "articles", "article_create", time.Since(start), status)

	return article, err
}

// Get records metrics for article retrieval operations.
func (a *articleUseCaseWithMetrics) Get(
	ctx context.Context,
	articleID uuid.UUID,
) (*articleDomain.Article, error) {
	start := time.Now()
	article, err := a.next.Get(ctx, articleID)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "articles", "article_get", status)
	a.metrics.RecordDuration(ctx, "articles", "article_get", time.Since(start), status)

	return article, err
}

// List records metrics for article list operations.
func (a *articleUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*articleDomain.Article, error) {
	start := time.Now()
	articles, err := a.next.List(ctx, offset, limit)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "articles", "article_list", status)
	a.metrics.RecordDuration(ctx, "articles", "article_list", time.Since(start), status)

	return articles, err
}

// Update records metrics for article update operations.
func (a *articleUseCaseWithMetrics) Update(
	ctx context.Context,
	articleID uuid.UUID,
	updateArticleInput *articleDomain.UpdateArticleInput,
) (*articleDomain.Article, error) {
	start := time.Now()
	article, err := a.next.Update(ctx, articleID, updateArticleInput)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "articles", "article_update", status)
	a.metrics.RecordDuration(ctx, "articles", "article_update", time.Since(start), status)

	return article, err
}

// Delete records metrics for article deletion operations.
func (a *articleUseCaseWithMetrics) Delete(ctx context.Context, articleID uuid.UUID) error {
	start := time.Now()
	err := a.next.Delete(ctx, articleID)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "articles", "article_delete", status)
	a.metrics.RecordDuration(ctx, "articles", "article_delete", time.Since(start), status)

	return err
}
