package crud

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"fritter/errs"
)

var validate = validator.New()

// validateStruct checks a record against its validation tags right before it is persisted.
// Violations are returned as an EINVALID error naming the offending fields.
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	messages := make([]string, 0, len(verrs))
	for _, e := range verrs {
		messages = append(messages, formatFieldError(e))
	}
	return errs.Errorf(errs.EINVALID, "%s.", strings.Join(messages, "; "))
}

// formatFieldError formats a single field validation error.
func formatFieldError(e validator.FieldError) string {
	field := strings.ToLower(e.Field())
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "uuid":
		return fmt.Sprintf("%s must be a valid ID", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
