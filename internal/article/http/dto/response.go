package dto

import (
	"time"

	articleDomain "github.com/allisson/guardpost/internal/article/domain"
)

// ArticleResponse represents an article in API responses.
type ArticleResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MapArticleToResponse converts an article to an API response.
func MapArticleToResponse(article *articleDomain.Article) ArticleResponse {
	return ArticleResponse{
		ID:        article.ID.String(),
		Title:     article.Title,
		Content:   article.Content,
		AuthorID:  article.AuthorID,
		CreatedAt: article.CreatedAt,
		UpdatedAt: article.UpdatedAt,
	}
}

// ListArticlesResponse represents a paginated list of articles in API responses.
type ListArticlesResponse struct {
	Data []ArticleResponse `json:"data"`
}

// MapArticlesToListResponse converts a slice of articles to a list API response.
func MapArticlesToListResponse(articles []*articleDomain.Article) ListArticlesResponse {
	articleResponses := make([]ArticleResponse, 0, len(articles))
	for _, article := range articles {
		articleResponses = append(articleResponses, MapArticleToResponse(article))
	}
	return ListArticlesResponse{
		Data: articleResponses,
	}
}
