package customer

import (
	"customer-service/internal/pkg/apperrors"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	personNamePattern = regexp.MustCompile(`^[\p{L} ']+$`)
	digitsPattern     = regexp.MustCompile(`^[0-9]+$`)

	fieldValidator = newFieldValidator()
)

func newFieldValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	mustRegister(v, "personname", func(fl validator.FieldLevel) bool {
		return personNamePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "onlydigits", func(fl validator.FieldLevel) bool {
		return digitsPattern.MatchString(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("failed to register validation %q: %v", tag, err))
	}
}

// ValidateFields checks the shape of every field and reports all violations at once.
// It never touches the store.
func ValidateFields(fields CustomerFields) error {
	err := fieldValidator.Struct(fields)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	fieldErrs := &apperrors.FieldErrors{}
	for _, fe := range validationErrs {
		fieldErrs.Add(fe.Field(), fieldMessage(fe))
	}
	return fieldErrs
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "name", "lastname":
		label := "name"
		if fe.Field() == "lastname" {
			label = "last name"
		}
		switch fe.Tag() {
		case "required":
			return label + " is required"
		case "min", "max":
			return label + " must have between 2 and 50 characters"
		case "personname":
			return label + " may only contain letters, spaces and apostrophes"
		}
	case "dni":
		switch fe.Tag() {
		case "required":
			return "national id must not be null"
		case "len":
			return "national id must have exactly 8 characters"
		case "onlydigits":
			return "national id must contain only numbers"
		}
	case "email":
		switch fe.Tag() {
		case "required":
			return "email is required"
		case "email":
			return "email format is not valid"
		case "max":
			return "email must have at most 100 characters"
		}
	}
	return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
}
