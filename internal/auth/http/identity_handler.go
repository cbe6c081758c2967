package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/allisson/guardpost/internal/auth/domain"
	"github.com/allisson/guardpost/internal/auth/http/dto"
	authUseCase "github.com/allisson/guardpost/internal/auth/usecase"
	"github.com/allisson/guardpost/internal/httputil"
	customValidation "github.com/allisson/guardpost/internal/validation"
)

// IdentityHandler handles HTTP requests for identity management operations.
type IdentityHandler struct {
	identityUseCase authUseCase.IdentityUseCase
	logger          *slog.Logger
}

// NewIdentityHandler creates a new identity handler with required dependencies.
func NewIdentityHandler(
	identityUseCase authUseCase.IdentityUseCase,
	logger *slog.Logger,
) *IdentityHandler {
	return &IdentityHandler{
		identityUseCase: identityUseCase,
		logger:          logger,
	}
}

// CreateHandler provisions a new identity.
// POST /v1/identities - Requires the identities:write operation.
// Returns 201 Created; the response carries the generated secret exactly once
// when none was supplied.
func (h *IdentityHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateIdentityRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := &authDomain.CreateIdentityInput{
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Secret:      req.Secret,
		Claims:      req.Claims,
		IsActive:    req.IsActive,
	}

	output, err := h.identityUseCase.Create(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.CreateIdentityResponse{
		Identity: dto.MapIdentityToResponse(output.Identity),
		Secret:   output.PlainSecret,
	}

	c.JSON(http.StatusCreated, response)
}

// GetHandler retrieves an identity by ID.
// GET /v1/identities/:id - Requires the identities:read operation.
// Returns 200 OK with identity data (no secret hash).
func (h *IdentityHandler) GetHandler(c *gin.Context) {
	identityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid identity ID format: must be a valid UUID"),
			h.logger)
		return
	}

	identity, err := h.identityUseCase.Get(c.Request.Context(), identityID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapIdentityToResponse(identity))
}

// ListHandler retrieves identities with pagination.
// GET /v1/identities - Requires the identities:read operation.
// Returns 200 OK with a paginated list.
func (h *IdentityHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	identities, err := h.identityUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapIdentitiesToListResponse(identities))
}

// UpdateHandler updates an identity's display name, claims, and active status.
// PUT /v1/identities/:id - Requires the identities:write operation.
// Returns 204 No Content.
func (h *IdentityHandler) UpdateHandler(c *gin.Context) {
	identityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid identity ID format: must be a valid UUID"),
			h.logger)
		return
	}

	var req dto.UpdateIdentityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := &authDomain.UpdateIdentityInput{
		DisplayName: req.DisplayName,
		Claims:      req.Claims,
		IsActive:    req.IsActive,
	}

	if err := h.identityUseCase.Update(c.Request.Context(), identityID, input); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteHandler deactivates an identity (soft delete).
// DELETE /v1/identities/:id - Requires the identities:write operation.
// Returns 204 No Content.
func (h *IdentityHandler) DeleteHandler(c *gin.Context) {
	identityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid identity ID format: must be a valid UUID"),
			h.logger)
		return
	}

	if err := h.identityUseCase.Delete(c.Request.Context(), identityID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
