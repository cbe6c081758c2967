// Package dto provides data transfer objects for article HTTP request and
// response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/guardpost/internal/validation"
)

// CreateArticleRequest contains the parameters for creating a new article.
type CreateArticleRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Validate checks if the create article request is valid.
func (r *CreateArticleRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Content,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// UpdateArticleRequest contains the mutable fields of an article.
type UpdateArticleRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Validate checks if the update article request is valid.
func (r *UpdateArticleRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Content,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}
