package shift

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

type Cashier struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CashShift is one cash-drawer session of a terminal.
type CashShift struct {
	ID                int64            `json:"id"`
	Status            Status           `json:"status"`
	OpenedAt          time.Time        `json:"opened_at"`
	ClosedAt          *time.Time       `json:"closed_at,omitempty"`
	StartingCash      decimal.Decimal  `json:"starting_cash"`
	TotalCashSales    decimal.Decimal  `json:"total_cash_sales"`
	TotalNonCashSales decimal.Decimal  `json:"total_non_cash_sales"`
	EndingCashActual  *decimal.Decimal `json:"ending_cash_actual,omitempty"`
	CashDifference    *decimal.Decimal `json:"cash_difference,omitempty"`
	Note              *string          `json:"note,omitempty"`
	UserID            int64            `json:"user_id"`
	User              *Cashier         `json:"user,omitempty"`
}

// ExpectedCash is the amount that should be in the drawer.
func (s CashShift) ExpectedCash() decimal.Decimal {
	return s.StartingCash.Add(s.TotalCashSales)
}

// Summary reconciles the shift against the counted ending cash.
func (s CashShift) Summary(endingCashActual decimal.Decimal) ClosingSummary {
	expected := s.ExpectedCash()
	return ClosingSummary{
		ModalAwal:      s.StartingCash,
		PenjualanTunai: s.TotalCashSales,
		SeharusnyaAda:  expected,
		FisikUang:      endingCashActual,
		Selisih:        endingCashActual.Sub(expected),
	}
}

// CashierName falls back to "Unknown" when the backend omits the user.
func (s CashShift) CashierName() string {
	if s.User != nil && s.User.Name != "" {
		return s.User.Name
	}
	return "Unknown"
}

// RecordSale adds a completed sale to the running totals. Open-bill sales are
// collected at settlement and count toward neither total.
func (s *CashShift) RecordSale(paymentMethod string, amount decimal.Decimal) {
	switch paymentMethod {
	case "cash":
		s.TotalCashSales = s.TotalCashSales.Add(amount)
	case "qris", "transfer":
		s.TotalNonCashSales = s.TotalNonCashSales.Add(amount)
	}
}

// Close applies a closing summary, making the shift terminal.
func (s *CashShift) Close(summary ClosingSummary, note *string, at time.Time) {
	actual := summary.FisikUang
	diff := summary.Selisih
	s.Status = StatusClosed
	s.ClosedAt = &at
	s.EndingCashActual = &actual
	s.CashDifference = &diff
	s.Note = note
}

// ClosingSummary is the reconciliation shown when a shift closes. Field names
// follow the backend payload.
type ClosingSummary struct {
	ModalAwal      decimal.Decimal `json:"modal_awal"`
	PenjualanTunai decimal.Decimal `json:"penjualan_tunai"`
	SeharusnyaAda  decimal.Decimal `json:"seharusnya_ada"`
	FisikUang      decimal.Decimal `json:"fisik_uang"`
	Selisih        decimal.Decimal `json:"selisih"`
}

// NewClosingSummary derives the expected cash and difference.
func NewClosingSummary(startingCash, cashSales, endingCashActual decimal.Decimal) ClosingSummary {
	expected := startingCash.Add(cashSales)
	return ClosingSummary{
		ModalAwal:      startingCash,
		PenjualanTunai: cashSales,
		SeharusnyaAda:  expected,
		FisikUang:      endingCashActual,
		Selisih:        endingCashActual.Sub(expected),
	}
}

// Normalize recomputes the derived fields from the inputs.
func (c ClosingSummary) Normalize() ClosingSummary {
	return NewClosingSummary(c.ModalAwal, c.PenjualanTunai, c.FisikUang)
}

func (c ClosingSummary) IsBalanced() bool {
	return c.Selisih.IsZero()
}

// Page is one page of the shift report.
type Page struct {
	Data        []CashShift `json:"data"`
	CurrentPage int         `json:"current_page"`
	LastPage    int         `json:"last_page"`
	Total       int         `json:"total"`
	From        int         `json:"from"`
	To          int         `json:"to"`
}
