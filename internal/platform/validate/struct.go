// Copyright (c) 2026 Funtush. All rights reserved.

package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/parthibdhar/Funtush-Server/internal/platform/apperr"
)

// engine is shared; validator.Validate caches struct metadata and is safe for concurrent use.
var engine = newEngine()

func newEngine() *validator.Validate {
	instance := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON field names instead of Go field names.
	instance.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})

	return instance
}

// Struct validates a tagged payload and converts failures into a VALIDATION_ERROR.
func Struct(payload interface{}) error {
	err := engine.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return apperr.ValidationError("Validation failed").WithCause(err)
	}

	details := make([]apperr.FieldError, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		details = append(details, apperr.FieldError{
			Field:   fieldError.Field(),
			Message: describe(fieldError),
		})
	}

	return apperr.ValidationError("Validation failed", details...)
}

func describe(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		return fmt.Sprintf("Minimum %s", fieldError.Param())
	case "max":
		return fmt.Sprintf("Maximum %s", fieldError.Param())
	case "gte":
		return fmt.Sprintf("Must be at least %s", fieldError.Param())
	case "lte":
		return fmt.Sprintf("Must be at most %s", fieldError.Param())
	case "url":
		return "Must be a valid URL"
	default:
		return fmt.Sprintf("Failed the %q rule", fieldError.Tag())
	}
}
