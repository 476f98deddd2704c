// Copyright (c) 2026 CookBook Connect. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/taibuivan/cookbook/internal/platform/apperr"
)

var (
	engine     *validator.Validate
	engineOnce sync.Once
)

// Engine returns the shared go-playground validator configured to report
// JSON field names.
func Engine() *validator.Validate {
	engineOnce.Do(func() {
		engine = validator.New(validator.WithRequiredStructEnabled())
		engine.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return engine
}

// Struct validates target against its `validate` tags.
//
// It returns nil or a VALIDATION_ERROR [apperr.AppError] whose details use
// dotted JSON paths (e.g. "ingredients[0].name").
func Struct(target any) error {
	err := Engine().Struct(target)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return apperr.Internal(fmt.Errorf("validate: %w", err))
	}

	details := make([]apperr.FieldError, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		details = append(details, apperr.FieldError{
			Field:   fieldPath(fieldError),
			Message: message(fieldError),
		})
	}

	return apperr.ValidationError("Validation failed", details...)
}

// fieldPath strips the root struct name from the namespace.
func fieldPath(fieldError validator.FieldError) string {
	namespace := fieldError.Namespace()
	if index := strings.Index(namespace, "."); index >= 0 {
		return namespace[index+1:]
	}
	return fieldError.Field()
}

// message renders a validator tag in the same register as [Validator] rules.
func message(fieldError validator.FieldError) string {
	param := fieldError.Param()

	switch fieldError.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "url", "http_url":
		return "Must be a valid URL"
	case "oneof":
		return "Must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "min":
		if isCollection(fieldError.Kind()) {
			return fmt.Sprintf("Must contain at least %s item(s)", param)
		}
		if isNumber(fieldError.Kind()) {
			return "Must be at least " + param
		}
		return fmt.Sprintf("Minimum %s characters", param)
	case "max":
		if isCollection(fieldError.Kind()) {
			return fmt.Sprintf("Must contain at most %s item(s)", param)
		}
		if isNumber(fieldError.Kind()) {
			return "Must be at most " + param
		}
		return fmt.Sprintf("Maximum %s characters", param)
	case "gte":
		return "Must be at least " + param
	case "lte":
		return "Must be at most " + param
	default:
		return fmt.Sprintf("Failed '%s' validation", fieldError.Tag())
	}
}

func isCollection(kind reflect.Kind) bool {
	return kind == reflect.Slice || kind == reflect.Array || kind == reflect.Map
}

func isNumber(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
