package config

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// ValidateConfig validates the entire configuration and returns all validation errors
func (c *Config) ValidateConfig() error {
	var validationErrors ValidationErrors

	if err := validate.Struct(c); err != nil {
		validationErrors = append(validationErrors, convertValidatorErrors(err)...)
	}

	if len(validationErrors) > 0 {
		return validationErrors
	}

	return nil
}

func convertValidatorErrors(err error) ValidationErrors {
	var validationErrors ValidationErrors

	var validatorErrs validator.ValidationErrors
	if errors.As(err, &validatorErrs) {
		for _, e := range validatorErrs {
			// e.Field() returns the TOML tag name because we registered TagNameFunc
			validationErrors = append(validationErrors, ValidationError{
				FieldPath: e.Field(),
				Message:   getValidationMessage(e),
			})
		}
	}

	return validationErrors
}
