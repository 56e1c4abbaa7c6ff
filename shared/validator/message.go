package validator

import (
	"errors"
	"strings"
	"trek/shared/failure"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required": "{field} is required",
		"gte":      "{field} must be greater than or equal to {param}",
		"lte":      "{field} must be less than or equal to {param}",
		"oneof":    "{field} must be one of {param}",
		"max":      "{field} must be less than or equal to {param}",
		"min":      "{field} must be greater than or equal to {param}",
		"email":    "{field} must be a valid email address",
	}
)

// message flattens validator errors into a headline message plus per-field
// errors so clients can focus the offending input.
func message(err error) (string, []failure.FieldError) {
	var valErrors val.ValidationErrors

	if errors.As(err, &valErrors) {
		fieldErrors := make([]failure.FieldError, 0, len(valErrors))

		for _, valErr := range valErrors {
			field := valErr.Field()
			param := valErr.Param()

			errStr := messages[valErr.Tag()]
			if errStr == "" {
				errStr = valErr.Error()
			} else {
				errStr = strings.ReplaceAll(errStr, "{field}", field)
				errStr = strings.ReplaceAll(errStr, "{param}", param)
			}

			fieldErrors = append(fieldErrors, failure.FieldError{Field: field, Message: errStr})
		}

		if len(fieldErrors) > 0 {
			return fieldErrors[0].Message, fieldErrors
		}

		return valErrors.Error(), nil
	}

	return err.Error(), nil
}
