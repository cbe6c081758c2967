package dto

import (
	"time"

	authDomain "github.com/allisson/guardpost/internal/auth/domain"
)

// LoginResponse contains the result of a successful login.
// SECURITY: The token is only returned once and must be saved securely.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateIdentityResponse contains the result of provisioning an identity.
// Secret is present only when it was generated server-side; it is returned
// once and never again.
type CreateIdentityResponse struct {
	Identity IdentityResponse `json:"identity"`
	Secret   string           `json:"secret,omitempty"` //nolint:gosec // returned once on creation
}

// IdentityResponse represents an identity in API responses (excludes the
// secret hash).
type IdentityResponse struct {
	ID          string            `json:"id"`
	Username    string            `json:"username"`
	DisplayName string            `json:"display_name"`
	Claims      map[string]string `json:"claims"`
	IsActive    bool              `json:"is_active"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// MapIdentityToResponse converts a stored identity to an API response.
func MapIdentityToResponse(identity *authDomain.StoredIdentity) IdentityResponse {
	return IdentityResponse{
		ID:          identity.ID.String(),
		Username:    identity.Username,
		DisplayName: identity.DisplayName,
		Claims:      identity.Claims,
		IsActive:    identity.IsActive,
		CreatedAt:   identity.CreatedAt,
		UpdatedAt:   identity.UpdatedAt,
	}
}

// ListIdentitiesResponse represents a paginated list of identities in API responses.
type ListIdentitiesResponse struct {
	Data []IdentityResponse `json:"data"`
}

// MapIdentitiesToListResponse converts a slice of stored identities to a list API response.
func MapIdentitiesToListResponse(identities []*authDomain.StoredIdentity) ListIdentitiesResponse {
	identityResponses := make([]IdentityResponse, 0, len(identities))
	for _, identity := range identities {
		identityResponses = append(identityResponses, MapIdentityToResponse(identity))
	}
	return ListIdentitiesResponse{
		Data: identityResponses,
	}
}
