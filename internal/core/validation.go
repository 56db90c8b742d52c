package core

// validation.go checks operation input before any transaction starts.
//
// Params structs carry validator tags; fields of type models.Optional are
// checked one by one with validateVar since the validator cannot see through
// the wrapper. Messages read "<field> cannot be empty" and
// "<field> must not exceed 200 characters" and name the JSON field.

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxLength is the longest accepted value for any name-like string.
const MaxLength = 200

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// validateStruct runs the validator over params and converts the first
// failure into a KindValidation error.
func validateStruct(op string, params any) error {
	err := validate.Struct(params)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return invalid(op, fe.Field(), formatFieldError(fe.Field(), fe))
	}
	return invalid(op, "", err.Error())
}

// validateVar validates a single value under the given field name.
func validateVar(op, field string, value any, tag string) error {
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return invalid(op, field, formatFieldError(field, verrs[0]))
	}
	return invalid(op, field, err.Error())
}

// formatFieldError formats a single field validation error.
func formatFieldError(field string, e validator.FieldError) string {
	switch e.Tag() {
	case "required", "min":
		return fmt.Sprintf("%s cannot be empty", field)
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters", field, e.Param())
	case "gt":
		return fmt.Sprintf("%s must be a positive id", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
