package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/guardpost/internal/auth/domain"
	"github.com/allisson/guardpost/internal/auth/http/dto"
	authUseCase "github.com/allisson/guardpost/internal/auth/usecase"
	"github.com/allisson/guardpost/internal/httputil"
	customValidation "github.com/allisson/guardpost/internal/validation"
)

// LoginHandler handles HTTP requests for the login endpoint.
// It coordinates credential verification and token issuance with the
// TokenUseCase.
type LoginHandler struct {
	tokenUseCase authUseCase.TokenUseCase
	logger       *slog.Logger
}

// NewLoginHandler creates a new login handler with required dependencies.
func NewLoginHandler(
	tokenUseCase authUseCase.TokenUseCase,
	logger *slog.Logger,
) *LoginHandler {
	return &LoginHandler{
		tokenUseCase: tokenUseCase,
		logger:       logger,
	}
}

// LoginHandler exchanges a username/password pair for a signed bearer token.
// POST /v1/login - No authentication required (this is the authentication endpoint).
// Returns 201 Created with token and expiration time.
func (h *LoginHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := &authDomain.IssueTokenInput{
		Username: req.Username,
		Password: req.Password,
	}

	output, err := h.tokenUseCase.Issue(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.LoginResponse{
		Token:     output.Token,
		ExpiresAt: output.ExpiresAt,
	}

	c.JSON(http.StatusCreated, response)
}
