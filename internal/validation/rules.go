// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/secureid/internal/errors"
)

var (
	// modelNameRegex accepts type names such as "Product", "billing.Invoice" or "Admin::User"
	modelNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.:]*$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// ModelName validates record type names.
var ModelName = validation.NewStringRuleWithError(
	func(s string) bool {
		return modelNameRegex.MatchString(s)
	},
	validation.NewError(
		"validation_model_name",
		"must start with a letter and contain only letters, digits, '_', '.' or ':'",
	),
)

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)
