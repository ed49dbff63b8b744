package shift

import (
	"github.com/shopspring/decimal"
	"github.com/smash-arena/pos-terminal/internal/pkg/validator"
)

type OpenShiftRequest struct {
	StartingCash validator.Amount `json:"starting_cash"`
}

// Validate returns the parsed starting cash.
func (r *OpenShiftRequest) Validate() (decimal.Decimal, error) {
	amount, verr := validator.ParseAmount("starting_cash", r.StartingCash)
	if verr != nil {
		return decimal.Zero, validator.ValidationErrors{*verr}
	}
	return amount, nil
}

type CloseShiftRequest struct {
	EndingCashActual validator.Amount `json:"ending_cash_actual"`
	Note             *string          `json:"note,omitempty"`
}

// Validate returns the parsed ending cash.
func (r *CloseShiftRequest) Validate() (decimal.Decimal, error) {
	var errs validator.ValidationErrors

	amount, verr := validator.ParseAmount("ending_cash_actual", r.EndingCashActual)
	if verr != nil {
		errs = append(errs, *verr)
	}

	if r.Note != nil && len(*r.Note) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "note",
			Message: "note must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return decimal.Zero, errs
	}

	return amount, nil
}

type StatusResponse struct {
	Status Status     `json:"status"`
	Shift  *CashShift `json:"shift,omitempty"`
}
