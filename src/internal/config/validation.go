package config

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/valyala/fasttemplate"
)

// getValidationMessage returns a human-readable message for a validation error
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field is required"
	case "min":
		return fmt.Sprintf("must contain at least %s item(s)", e.Param())
	case "gt":
		return fmt.Sprintf("must be > %s", e.Param())
	case "source_url":
		return "must be an absolute http:// or https:// URL"
	case "ua_template":
		return "must be a valid template (available variables: {{version}})"
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}

// ValidationError represents a single validation error with context
type ValidationError struct {
	FieldPath string // Dot-notation field path (e.g., "urls[1]", "timeout")
	Message   string // Human-readable error message
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("validation failed with %d error(s):\n", len(ve)))
	for i, err := range ve {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.FieldPath, err.Message))
	}
	return sb.String()
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("source_url", validateSourceURL); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("ua_template", validateUserAgentTemplate); err != nil {
		panic(err)
	}

	// Report fields by their "toml" tag
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Custom validator: absolute http(s) URL with a host
func validateSourceURL(fl validator.FieldLevel) bool {
	return checkSourceURL(fl.Field().String()) == nil
}

func checkSourceURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL has no host")
	}
	return nil
}

// Custom validator: fasttemplate with balanced {{ }} tags
func validateUserAgentTemplate(fl validator.FieldLevel) bool {
	_, err := fasttemplate.NewTemplate(fl.Field().String(), "{{", "}}")
	return err == nil
}
