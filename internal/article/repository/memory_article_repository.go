package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	articleDomain "github.com/allisson/guardpost/internal/article/domain"
)

// MemoryArticleRepository implements article persistence in process memory.
// Intended for tests and single-process deployments; contents are lost on
// restart.
type MemoryArticleRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*articleDomain.Article
}

// Create stores a new article.
func (m *MemoryArticleRepository) Create(ctx context.Context, article *articleDomain.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.byID[article.ID] = cloneArticle(article)
	return nil
}

// Update modifies an existing article.
func (m *MemoryArticleRepository) Update(ctx context.Context, article *articleDomain.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[article.ID]; !ok {
		return articleDomain.ErrArticleNotFound
	}

	m.byID[article.ID] = cloneArticle(article)
	return nil
}

// GetByID retrieves an article by ID. Returns ErrArticleNotFound if not found.
func (m *MemoryArticleRepository) GetByID(
	ctx context.Context,
	articleID uuid.UUID,
) (*articleDomain.Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	article, ok := m.byID[articleID]
	if !ok {
		return nil, articleDomain.ErrArticleNotFound
	}

	return cloneArticle(article), nil
}

// List retrieves articles ordered by creation time (newest first) with
// pagination support.
func (m *MemoryArticleRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*articleDomain.Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]*articleDomain.Article, 0, len(m.byID))
	for _, article := range m.byID {
		all = append(all, article)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return []*articleDomain.Article{}, nil
	}

	end := offset + limit
	if end > len(all) {
		end = len(all)
	}

	articles := make([]*articleDomain.Article, 0, end-offset)
	for _, article := range all[offset:end] {
		articles = append(articles, cloneArticle(article))
	}

	return articles, nil
}

// Delete removes an article. Returns ErrArticleNotFound if not found.
func (m *MemoryArticleRepository) Delete(ctx context.Context, articleID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[articleID]; !ok {
		return articleDomain.ErrArticleNotFound
	}

	delete(m.byID, articleID)
	return nil
}

// cloneArticle returns a copy so callers can't mutate stored state.
func cloneArticle(article *articleDomain.Article) *articleDomain.Article {
	clone := *article
	return &clone
}

// NewMemoryArticleRepository creates a new in-memory article repository.
func NewMemoryArticleRepository() *MemoryArticleRepository {
	return &MemoryArticleRepository{
		byID: make(map[uuid.UUID]*articleDomain.Article),
	}
}
