package utils

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"helpdesk/internal/shared/errors"
)

var (
	validate       *validator.Validate
	customMessages sync.Map
)

// init initializes the validator
func init() {
	validate = validator.New()

	// Use JSON tag names for validation errors
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// RegisterStructRule registers a cross-field rule for the given form types.
// Rules report failures through sl.ReportError with a tag registered via
// RegisterRuleMessage.
func RegisterStructRule(fn validator.StructLevelFunc, types ...interface{}) {
	validate.RegisterStructValidation(fn, types...)
}

// RegisterRuleMessage sets the message shown for a custom rule tag.
func RegisterRuleMessage(tag, message string) {
	customMessages.Store(tag, message)
}

// ValidateStruct validates a struct and returns a validation AppError whose
// Fields carry one entry per failing field.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.NewValidationError("Validation failed", err.Error())
	}
	if len(validationErrors) == 0 {
		return nil
	}

	messages := make([]string, 0, len(validationErrors))
	fields := make([]errors.FieldError, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		msg := getFieldErrorMessage(fieldError)
		messages = append(messages, msg)
		fields = append(fields, errors.FieldError{Field: fieldError.Field(), Message: msg})
	}

	appErr := errors.NewValidationError("Validation failed", strings.Join(messages, "; "))
	appErr.Fields = fields
	return appErr
}

// getFieldErrorMessage returns a user-friendly error message for a field validation error
func getFieldErrorMessage(fe validator.FieldError) string {
	field := fe.Field()
	tag := fe.Tag()
	param := fe.Param()

	if msg, ok := customMessages.Load(tag); ok {
		return fmt.Sprintf("%s: %s", field, msg)
	}

	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters long", field, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, param)
	case "numeric":
		return fmt.Sprintf("%s must be a valid number", field)
	case "datetime":
		return fmt.Sprintf("%s must match the date layout %s", field, param)
	default:
		return fmt.Sprintf("%s failed validation for '%s'", field, tag)
	}
}
