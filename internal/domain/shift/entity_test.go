package shift

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smash-arena/pos-terminal/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClosingSummary(t *testing.T) {
	cases := []struct {
		name                  string
		start, sales, actual  int64
		wantExpected, wantDif int64
		balanced              bool
	}{
		{"balanced", 100000, 50000, 150000, 150000, 0, true},
		{"short", 100000, 50000, 140000, 150000, -10000, false},
		{"over", 100000, 50000, 155000, 150000, 5000, false},
		{"no sales", 200000, 0, 200000, 200000, 0, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewClosingSummary(decimal.NewFromInt(c.start), decimal.NewFromInt(c.sales), decimal.NewFromInt(c.actual))
			assert.True(t, s.SeharusnyaAda.Equal(decimal.NewFromInt(c.wantExpected)))
			assert.True(t, s.Selisih.Equal(decimal.NewFromInt(c.wantDif)), s.Selisih.String())
			assert.Equal(t, c.balanced, s.IsBalanced())
		})
	}
}

func TestClosingSummary_Normalize(t *testing.T) {
	s := ClosingSummary{
		ModalAwal:      decimal.NewFromInt(100000),
		PenjualanTunai: decimal.NewFromInt(50000),
		FisikUang:      decimal.NewFromInt(140000),
		SeharusnyaAda:  decimal.NewFromInt(1),
		Selisih:        decimal.NewFromInt(1),
	}.Normalize()
	assert.True(t, s.SeharusnyaAda.Equal(decimal.NewFromInt(150000)))
	assert.True(t, s.Selisih.Equal(decimal.NewFromInt(-10000)))
}

func TestCashShift_RecordSale(t *testing.T) {
	s := CashShift{Status: StatusOpen, StartingCash: decimal.NewFromInt(100000)}
	s.RecordSale("cash", decimal.NewFromInt(10000))
	s.RecordSale("qris", decimal.NewFromInt(20000))
	s.RecordSale("transfer", decimal.NewFromInt(5000))
	s.RecordSale("open_bill", decimal.NewFromInt(99000))

	assert.True(t, s.TotalCashSales.Equal(decimal.NewFromInt(10000)))
	assert.True(t, s.TotalNonCashSales.Equal(decimal.NewFromInt(25000)))
	assert.True(t, s.ExpectedCash().Equal(decimal.NewFromInt(110000)))
}

func TestCashShift_Close(t *testing.T) {
	s := CashShift{Status: StatusOpen}
	note := "kurang kembalian"
	at := time.Date(2026, 10, 14, 22, 0, 0, 0, time.UTC)
	summary := NewClosingSummary(decimal.NewFromInt(100000), decimal.NewFromInt(50000), decimal.NewFromInt(140000))

	s.Close(summary, &note, at)

	assert.Equal(t, StatusClosed, s.Status)
	require.NotNil(t, s.ClosedAt)
	assert.Equal(t, at, *s.ClosedAt)
	assert.True(t, s.CashDifference.Equal(decimal.NewFromInt(-10000)))
	assert.Equal(t, "kurang kembalian", *s.Note)
}

func TestOpenShiftRequest_Validate(t *testing.T) {
	amount, err := (&OpenShiftRequest{StartingCash: "100000"}).Validate()
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromInt(100000)))

	for _, raw := range []validator.Amount{"", "abc", "-1"} {
		_, err := (&OpenShiftRequest{StartingCash: raw}).Validate()
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs, "input %q", raw)
		assert.Equal(t, "starting_cash", verrs[0].Field)
	}
}

func TestCloseShiftRequest_Validate(t *testing.T) {
	_, err := (&CloseShiftRequest{}).Validate()
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "ending_cash_actual")

	amount, err := (&CloseShiftRequest{EndingCashActual: "150000"}).Validate()
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromInt(150000)))
}

func TestCashShift_Summary(t *testing.T) {
	s := CashShift{Status: StatusOpen, StartingCash: decimal.NewFromInt(100000)}
	s.RecordSale("cash", decimal.NewFromInt(50000))

	summary := s.Summary(decimal.NewFromInt(140000))
	assert.True(t, summary.ModalAwal.Equal(decimal.NewFromInt(100000)))
	assert.True(t, summary.SeharusnyaAda.Equal(s.ExpectedCash()))
	assert.True(t, summary.Selisih.Equal(decimal.NewFromInt(-10000)))
}
