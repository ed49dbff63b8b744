package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentMethod_Valid(t *testing.T) {
	for _, m := range []PaymentMethod{PaymentCash, PaymentQRIS, PaymentTransfer, PaymentOpenBill} {
		assert.True(t, m.Valid(), m)
	}
	assert.False(t, PaymentMethod("").Valid())
	assert.False(t, PaymentMethod("credit").Valid())
}

func TestPaymentMethod_Label(t *testing.T) {
	assert.Equal(t, "open bill", PaymentOpenBill.Label())
	assert.Equal(t, "qris", PaymentQRIS.Label())
}
