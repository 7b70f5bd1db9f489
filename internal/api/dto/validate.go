package dto

import (
	"github.com/go-playground/validator/v10"

	"github.com/service-desk/helpdesk/pkg/util"
)

var validate = validator.New()

// Validate runs struct tag validation and converts failures into field
// detail maps.
func Validate(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return util.NewValidationError("invalid payload", nil)
	}

	details := make(map[string]any, len(validationErrs))
	for _, fieldErr := range validationErrs {
		details[fieldErr.Field()] = fieldErr.Tag()
	}
	return util.NewValidationError("validation failed", details)
}
