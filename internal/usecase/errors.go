package usecase

import (
	"errors"
	"fmt"

	"hostel-management/internal/data/entity"
	"hostel-management/pkg/utils"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

func validationError(errs map[string]string) error {
	return fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
}

func invalidID(kind, raw string) error {
	return fmt.Errorf("%w: invalid %s ID %q", ErrValidation, kind, raw)
}

// checkMoney rejects amounts that the money columns would round.
func checkMoney(field string, d decimal.Decimal) error {
	if !entity.ValidMoney(d) {
		return fmt.Errorf("%w: %s: %w", ErrValidation, field, entity.ErrAmountPrecision)
	}
	return nil
}
