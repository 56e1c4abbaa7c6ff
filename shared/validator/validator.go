package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"trek/shared/failure"

	val "github.com/go-playground/validator/v10"
)

var validate = val.New(val.WithRequiredStructEnabled())

// Validate decodes the request body into data and validates it against the
// struct's validate tags. Validation problems come back as a field-level
// failure so handlers can return them to the client as-is.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)

	if err := decoder.Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		msg, fields := message(err)

		return failure.Validation(msg, fields...) //nolint:wrapcheck
	}

	return nil
}
