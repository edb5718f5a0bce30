package dto

import (
	"fmt"

	"github.com/SscSPs/bookkeeping_core/internal/apperrors"
	"github.com/go-playground/validator/v10"
)

// validate checks the same `binding` tags gin checks at the HTTP boundary, so callers
// that build requests in code get identical rules.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("binding")
	return v
}

// ValidateStruct runs tag validation on a request value.
func ValidateStruct(req any) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: request validation failed: %v", apperrors.ErrValidation, err)
	}
	return nil
}
