// Package validator adapts go-playground/validator to Echo's Validator interface.
package validator

import (
	playground "github.com/go-playground/validator/v10"

	domainerrors "passport/internal/domain/errors"
	"passport/internal/errors"
)

// EchoValidator wraps a playground validator instance for Echo.
type EchoValidator struct {
	validate *playground.Validate
}

// New creates the validator used by the Echo server.
func New() *EchoValidator {
	return &EchoValidator{
		validate: playground.New(playground.WithRequiredStructEnabled()),
	}
}

// Validate checks the struct tags on the bound input and converts failures
// into the application's validation error so the error handler renders a 400.
func (v *EchoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		var fieldErrs playground.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return domainerrors.ErrValidationFailed.WithDetails(fieldErrs.Error())
		}

		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
