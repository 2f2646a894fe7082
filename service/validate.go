package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ntu-info/emogo-backend-chaudharyinder/dto"
)

// ValidationError reports the first violated constraint of a submission,
// keyed by the payload's json field name.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// required lets "   " through; the stored timestamp must be non-blank
	// after trimming.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return v
}

// validateRecord runs the field constraints in declaration order and maps
// the first failure to a ValidationError. Validation is deliberately
// shallow: the timestamp is never parsed and the vlog file never checked
// for existence.
func (s *service) validateRecord(req *dto.CreateRecordRequest) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return err
	}

	first := fieldErrors[0]
	return &ValidationError{Field: first.Field(), Reason: fieldReason(first)}
}

func fieldReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "cannot be blank"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	}
	return "is invalid"
}
