package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rpupo63/research-lab-backend/errs"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their wire names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks a record's struct tags and returns an *errs.ApiErr naming
// the first offending field, e.g. "authors[1].name".
func Validate(record any) error {
	err := validate.Struct(record)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		return fieldError(validationErrors[0])
	}
	return errs.NewInvalidFieldError("payload", err.Error())
}

func fieldError(e validator.FieldError) *errs.ApiErr {
	field := e.Namespace()
	// drop the struct name prefix
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	switch e.Tag() {
	case "required":
		return errs.NewMissingRequiredFieldError(field)
	case "max":
		return errs.NewInvalidFieldError(field, fmt.Sprintf("%s must be at most %s characters", field, e.Param()))
	default:
		return errs.NewInvalidFieldError(field, fmt.Sprintf("%s is invalid", field))
	}
}
