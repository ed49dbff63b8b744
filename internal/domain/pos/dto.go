package pos

import (
	"github.com/shopspring/decimal"
	"github.com/smash-arena/pos-terminal/internal/pkg/validator"
)

type AddItemRequest struct {
	ProductID int64 `json:"product_id"`
}

func (r *AddItemRequest) Validate() error {
	if r.ProductID <= 0 {
		return validator.ValidationErrors{{
			Field:   "product_id",
			Message: "product_id is required",
		}}
	}
	return nil
}

type ChangeQuantityRequest struct {
	Delta int `json:"delta"`
}

func (r *ChangeQuantityRequest) Validate() error {
	if r.Delta == 0 {
		return validator.ValidationErrors{{
			Field:   "delta",
			Message: "delta must not be zero",
		}}
	}
	return nil
}

type ConfirmRequest struct {
	PaymentMethod string `json:"payment_method"`
	BookingID     *int64 `json:"booking_id,omitempty"`
}

type ExecuteRequest struct {
	DraftID   string           `json:"draft_id"`
	CashGiven validator.Amount `json:"cash_given,omitempty"`
}

// Validate returns the parsed cash given, nil when it was omitted.
func (r *ExecuteRequest) Validate() (*decimal.Decimal, error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.DraftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "draft_id",
			Message: "draft_id is required",
		})
	}

	var cashGiven *decimal.Decimal
	if !validator.IsEmpty(string(r.CashGiven)) {
		amount, verr := validator.ParseAmount("cash_given", r.CashGiven)
		if verr != nil {
			errs = append(errs, *verr)
		} else {
			cashGiven = &amount
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return cashGiven, nil
}
