package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"digital-stamp-go/internal/models"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their persisted names rather than Go names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("design", func(fl validator.FieldLevel) bool {
		return models.Design(fl.Field().String()).Valid()
	})

	return v
}

// Struct validates s against its `validate` tags. The first failing field is
// returned as a *models.ValidationError.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate %T: %w", s, err)
	}

	fe := fieldErrs[0]
	return models.NewValidationError(fe.Field(), msgForTag(fe))
}

func msgForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "must not be blank"
	case "design":
		names := make([]string, 0, len(models.Designs()))
		for _, d := range models.Designs() {
			names = append(names, string(d))
		}
		return fmt.Sprintf("must be one of: %s", strings.Join(names, ", "))
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	default:
		return fmt.Sprintf("failed on '%s' validation", fe.Tag())
	}
}
