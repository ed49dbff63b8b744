package booking

import (
	"io"

	"github.com/smash-arena/pos-terminal/internal/pkg/validator"
)

// SettleRequest settles a booking together with its open-bill orders.
type SettleRequest struct {
	PaymentMethod string `json:"payment_method"`

	// Proof is the transfer receipt image; required for transfer.
	Proof         io.Reader `json:"-"`
	ProofFilename string    `json:"-"`
}

var settlementMethods = []string{"cash", "qris", "transfer"}

func (r *SettleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PaymentMethod) {
		errs = append(errs, validator.ValidationError{
			Field:   "payment_method",
			Message: "payment_method is required",
		})
	} else if !validator.IsInSlice(r.PaymentMethod, settlementMethods) {
		errs = append(errs, validator.ValidationError{
			Field:   "payment_method",
			Message: "payment_method must be one of cash, qris, transfer",
		})
	}

	if r.PaymentMethod == "transfer" && r.Proof == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "proof_image",
			Message: "proof_image is required for transfer",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
