// Package validation provides custom validation rules for the application.
package validation

import (
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/guardpost/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// Username validates that a string is usable as a principal identifier:
// lowercase letters, digits, and the separators '.', '-', '_'.
//
// Like all string rules, it skips empty values; pair it with
// validation.Required so absence is rejected too.
var Username = validation.NewStringRuleWithError(
	func(s string) bool {
		for _, r := range s {
			switch {
			case r >= 'a' && r <= 'z':
			case r >= '0' && r <= '9':
			case r == '.' || r == '-' || r == '_':
			default:
				return false
			}
		}
		return true
	},
	validation.NewError(
		"validation_username_format",
		"must contain only lowercase letters, digits, '.', '-' or '_'",
	),
)

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a non-empty string contains more than whitespace.
// Empty strings are skipped per the string-rule contract; pair with
// validation.Required to reject them.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)
