package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate validates a struct using go-playground/validator tags.
func Validate(s any) error {
	if err := validate.Struct(s); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return &ValidationError{Errors: validationErrors}
		}
		return err
	}
	return nil
}

// ValidationError wraps validator.ValidationErrors with a user-friendly message.
type ValidationError struct {
	Errors validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	var msgs []string
	for _, err := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("field '%s' %s", err.Field(), msgForTag(err)))
	}
	return strings.Join(msgs, "; ")
}

// Fields returns a map of field names to error messages.
func (e *ValidationError) Fields() map[string]string {
	fields := make(map[string]string, len(e.Errors))
	for _, err := range e.Errors {
		fields[err.Field()] = msgForTag(err)
	}
	return fields
}

func msgForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "sku":
		return "must contain only uppercase letters, numbers, and hyphens"
	default:
		return fmt.Sprintf("failed on '%s' validation", fe.Tag())
	}
}

// skuPattern matches uppercase alphanumeric characters and hyphens.
const skuCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-"

func init() {
	// Custom "sku" tag: uppercase alphanumeric plus hyphen.
	_ = validate.RegisterValidation("sku", func(fl validator.FieldLevel) bool {
		v := fl.Field().String()
		if v == "" {
			return false
		}
		for _, r := range v {
			if !strings.ContainsRune(skuCharset, r) {
				return false
			}
		}
		return true
	})
}
