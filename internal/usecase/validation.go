package usecase

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var inputValidator = validator.New(validator.WithRequiredStructEnabled())

func validateInput(input any) error {
	if err := inputValidator.Struct(input); err != nil {
		return fmt.Errorf("%w: validation failed: %v", ErrInvalidInput, err)
	}
	return nil
}
