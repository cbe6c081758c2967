// Package http provides HTTP handlers for article management.
//
// All handlers run behind the authentication and authorization middlewares:
// reads require the articles:read operation, writes require articles:write.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	articleDomain "github.com/allisson/guardpost/internal/article/domain"
	"github.com/allisson/guardpost/internal/article/http/dto"
	articleUseCase "github.com/allisson/guardpost/internal/article/usecase"
	authHTTP "github.com/allisson/guardpost/internal/auth/http"
	"github.com/allisson/guardpost/internal/httputil"
	customValidation "github.com/allisson/guardpost/internal/validation"
)

// ArticleHandler handles HTTP requests for article operations.
type ArticleHandler struct {
	articleUseCase articleUseCase.ArticleUseCase
	logger         *slog.Logger
}

// NewArticleHandler creates a new article handler with required dependencies.
func NewArticleHandler(
	articleUseCase articleUseCase.ArticleUseCase,
	logger *slog.Logger,
) *ArticleHandler {
	return &ArticleHandler{
		articleUseCase: articleUseCase,
		logger:         logger,
	}
}

// CreateHandler creates a new article authored by the authenticated principal.
// POST /v1/articles - Requires the articles:write operation.
// Returns 201 Created with the article data.
func (h *ArticleHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateArticleRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	var authorID string
	if principal, ok := authHTTP.GetPrincipal(c.Request.Context()); ok {
		authorID = principal.ID
	}

	input := &articleDomain.CreateArticleInput{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: authorID,
	}

	article, err := h.articleUseCase.Create(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapArticleToResponse(article))
}

// GetHandler retrieves an article by ID.
// GET /v1/articles/:id - Requires the articles:read operation.
// Returns 200 OK with the article data.
func (h *ArticleHandler) GetHandler(c *gin.Context) {
	articleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid article ID format: must be a valid UUID"),
			h.logger)
		return
	}

	article, err := h.articleUseCase.Get(c.Request.Context(), articleID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapArticleToResponse(article))
}

// ListHandler retrieves articles with pagination.
// GET /v1/articles - Requires the articles:read operation.
// Returns 200 OK with a paginated list.
func (h *ArticleHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	articles, err := h.articleUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapArticlesToListResponse(articles))
}

// UpdateHandler updates an article's title and content.
// PUT /v1/articles/:id - Requires the articles:write operation.
// Returns 200 OK with the updated article data.
func (h *ArticleHandler) UpdateHandler(c *gin.Context) {
	articleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid article ID format: must be a valid UUID"),
			h.logger)
		return
	}

	var req dto.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := &articleDomain.UpdateArticleInput{
		Title:   req.Title,
		Content: req.Content,
	}

	article, err := h.articleUseCase.Update(c.Request.Context(), articleID, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapArticleToResponse(article))
}

// DeleteHandler removes an article.
// DELETE /v1/articles/:id - Requires the articles:write operation.
// Returns 204 No Content.
func (h *ArticleHandler) DeleteHandler(c *gin.Context) {
	articleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid article ID format: must be a valid UUID"),
			h.logger)
		return
	}

	if err := h.articleUseCase.Delete(c.Request.Context(), articleID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
