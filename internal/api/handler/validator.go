package handler

import (
	"github.com/99minutos/ebanking-console/internal/core/form"
)

// echoValidator lets Echo call c.Validate(req) with the banking rules.
type echoValidator struct{}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{}
}

// Validate satisfies the echo.Validator interface. Failures are form.Errors.
func (ev *echoValidator) Validate(i any) error {
	return form.Validate(i)
}
