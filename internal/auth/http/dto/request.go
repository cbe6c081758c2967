// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/guardpost/internal/validation"
)

// LoginRequest contains the credentials presented to the login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks if the login request is valid.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.Password,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// CreateIdentityRequest contains the parameters for provisioning a new identity.
// When Secret is empty, a secure one is generated and returned exactly once.
type CreateIdentityRequest struct {
	Username    string            `json:"username"`
	DisplayName string            `json:"display_name"`
	Secret      string            `json:"secret"`
	Claims      map[string]string `json:"claims"`
	IsActive    bool              `json:"is_active"`
}

// Validate checks if the create identity request is valid.
func (r *CreateIdentityRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Username,
			validation.Length(1, 255),
		),
		validation.Field(&r.DisplayName,
			validation.Length(0, 255),
		),
	)
}

// UpdateIdentityRequest contains the mutable fields of an identity.
type UpdateIdentityRequest struct {
	DisplayName string            `json:"display_name"`
	Claims      map[string]string `json:"claims"`
	IsActive    bool              `json:"is_active"`
}

// Validate checks if the update identity request is valid.
func (r *UpdateIdentityRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.DisplayName,
			validation.Length(0, 255),
		),
	)
}
