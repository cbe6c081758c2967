// Package domain defines the article content models.
//
// Articles are the protected resource served by the API: reads require the
// articles:read operation and writes require articles:write.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Article represents a single piece of published content.
type Article struct {
	ID        uuid.UUID
	Title     string
	Content   string
	AuthorID  string // Principal ID of the creator
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateArticleInput contains the parameters for creating a new article.
type CreateArticleInput struct {
	Title    string
	Content  string
	AuthorID string
}

// UpdateArticleInput contains the mutable fields of an article.
type UpdateArticleInput struct {
	Title   string
	Content string
}
