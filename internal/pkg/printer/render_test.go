package printer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"
	"github.com/smash-arena/pos-terminal/internal/config"
	"github.com/smash-arena/pos-terminal/internal/domain/booking"
	"github.com/smash-arena/pos-terminal/internal/domain/receipt"
	"github.com/smash-arena/pos-terminal/internal/domain/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLayout(width int) Layout {
	return NewLayout(config.ReceiptConfig{
		Width:           width,
		BusinessName:    "SMASH ARENA",
		BusinessAddress: "Jl. Badminton No. 1",
		BusinessPhone:   "0812-3456-7890",
	}, time.UTC)
}

func rupiah(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func ptr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func assertFits(t *testing.T, text string, columns int) {
	t.Helper()
	for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		assert.LessOrEqual(t, runewidth.StringWidth(line), columns, line)
	}
}

func row(left, right string, columns int) string {
	return left + strings.Repeat(" ", columns-len(left)-len(right)) + right
}

func cashSale() receipt.Receipt {
	return receipt.Receipt{
		InvoiceCode: "INV-20240105-0001",
		Items: []receipt.Item{
			{ProductID: 1, Name: "Aqua 600ml", Quantity: 2, Price: rupiah(5000), Subtotal: rupiah(10000)},
		},
		TotalAmount:   rupiah(10000),
		PaymentMethod: "cash",
		CashGiven:     ptr(rupiah(20000)),
		Change:        ptr(rupiah(10000)),
		CashierName:   "Rina",
		Timestamp:     time.Date(2024, 1, 5, 19, 5, 3, 0, time.UTC),
	}
}

func TestNewLayout_Columns(t *testing.T) {
	assert.Equal(t, Columns58mm, testLayout(58).Columns)
	assert.Equal(t, Columns80mm, testLayout(80).Columns)
}

func TestRenderSale_Cash(t *testing.T) {
	out := RenderSale(cashSale(), testLayout(58))

	assert.Contains(t, out, "SMASH ARENA")
	assert.Contains(t, out, "Telp: 0812-3456-7890")
	assert.Contains(t, out, "No: INV-20240105-0001\n")
	assert.Contains(t, out, "Tgl: 5/1/2024 19:05:03\n")
	assert.Contains(t, out, "Kasir: Rina\n")
	assert.Contains(t, out, "Aqua 600ml\n")
	assert.Contains(t, out, row("2 x 5.000", "10.000", 32))
	assert.Contains(t, out, row("TOTAL", "Rp 10.000", 32))
	assert.Contains(t, out, row("Tunai", "Rp 20.000", 32))
	assert.Contains(t, out, row("Kembali", "Rp 10.000", 32))
	assert.Contains(t, out, "Selamat Berolahraga!")
	assertFits(t, out, 32)
}

func TestRenderSale_NonCash(t *testing.T) {
	r := cashSale()
	r.PaymentMethod = "open_bill"
	r.CashGiven = nil
	r.Change = nil
	r.Booking = "Budi - Court A (19:00)"
	r.CashierName = ""

	out := RenderSale(r, testLayout(80))

	assert.Contains(t, out, "(OPEN BILL)")
	assert.Contains(t, out, "Cust: Budi - Court A (19:00)")
	assert.Contains(t, out, "Kasir: Admin")
	assert.NotContains(t, out, "Tunai")
	assert.Contains(t, out, row("TOTAL", "Rp 10.000", 48))
	assertFits(t, out, 48)
}

func TestRenderSale_CashShortfall(t *testing.T) {
	r := cashSale()
	r.Items[0].Price = rupiah(6000)
	r.Items[0].Subtotal = rupiah(12000)
	r.TotalAmount = rupiah(12000)
	r.CashGiven = ptr(rupiah(10000))
	r.Change = ptr(decimal.Zero)
	r.AmountDue = ptr(rupiah(2000))

	out := RenderSale(r, testLayout(58))

	assert.Contains(t, out, row("2 x 6.000", "12.000", 32))
	assert.Contains(t, out, row("TOTAL", "Rp 12.000", 32))
	assert.Contains(t, out, row("Kurang", "Rp 2.000", 32))
	assert.NotContains(t, out, "Kembali")
	assert.NotContains(t, out, "Rp -")
}

func TestRenderSale_TruncatesLongNames(t *testing.T) {
	r := cashSale()
	r.Items[0].Name = "Shuttlecock Yonex Aerosensa 50 Tube Isi 12"
	out := RenderSale(r, testLayout(58))
	assertFits(t, out, 32)
}

func TestRenderClosing(t *testing.T) {
	opened := time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC)
	closed := time.Date(2024, 1, 5, 22, 0, 0, 0, time.UTC)
	note := "Kurang kembalian"
	cs := shift.CashShift{
		Status:            shift.StatusClosed,
		OpenedAt:          opened,
		ClosedAt:          &closed,
		StartingCash:      rupiah(100000),
		TotalCashSales:    rupiah(50000),
		TotalNonCashSales: rupiah(30000),
		Note:              &note,
		User:              &shift.Cashier{Name: "Rina"},
	}

	balanced := RenderClosing(shift.NewClosingSummary(rupiah(100000), rupiah(50000), rupiah(150000)), cs, testLayout(58))
	assert.Contains(t, balanced, "Buka: 5/1/2024 08:00:00")
	assert.Contains(t, balanced, "Tutup: 5/1/2024 22:00:00")
	assert.Contains(t, balanced, row("Total Seharusnya", "Rp 150.000", 32))
	assert.Contains(t, balanced, row("Balance (Sesuai)", "Rp 0", 32))
	assert.Contains(t, balanced, "Catatan: Kurang kembalian")
	assertFits(t, balanced, 32)

	short := RenderClosing(shift.NewClosingSummary(rupiah(100000), rupiah(50000), rupiah(140000)), cs, testLayout(58))
	assert.Contains(t, short, row("Selisih", "Rp -10.000", 32))
}

func TestRenderBooking(t *testing.T) {
	b := booking.Booking{
		BookingCode:  "BK-0007",
		CustomerName: "Budi",
		Court:        &booking.Court{Name: "Court A"},
		StartTime:    "19:00:00",
		EndTime:      "21:00:00",
		Status:       booking.StatusPaid,
		TotalPrice:   rupiah(80000),
		Orders: []booking.LinkedOrder{{
			TotalAmount:   rupiah(10000),
			PaymentStatus: "paid",
			Items: []booking.LinkedOrderItem{
				{Product: &booking.OrderProduct{Name: "Aqua 600ml"}, Quantity: 2, Price: rupiah(5000)},
			},
		}},
		Transaction: &booking.Transaction{PaymentMethod: "cash"},
	}

	out := RenderBooking(b, "Rina", time.Date(2024, 1, 5, 21, 10, 0, 0, time.UTC), testLayout(58))

	assert.Contains(t, out, "No: BK-0007")
	assert.Contains(t, out, "Kasir: Rina")
	assert.Contains(t, out, "Cust: Budi")
	assert.Contains(t, out, "Court A (Sewa)")
	assert.Contains(t, out, "(19:00 - 21:00)")
	assert.Contains(t, out, row("2 x 5.000", "10.000", 32))
	assert.Contains(t, out, row("TOTAL", "Rp 90.000", 32))
	assert.Contains(t, out, row("Kembali", "Rp 0", 32))
	assert.Contains(t, out, row("Status", "LUNAS", 32))
	assertFits(t, out, 32)
}

func TestEscPos(t *testing.T) {
	out := EscPos("TOTAL\nRp 10.000 é\n", false)

	require.True(t, bytes.HasPrefix(out, []byte{0x1b, 0x40}))
	require.True(t, bytes.HasSuffix(out, []byte{0x1d, 0x56, 0x41, 0x10}))
	assert.Contains(t, string(out), "TOTAL\nRp 10.000 ?\n")

	withDrawer := EscPos("x", true)
	assert.True(t, bytes.HasPrefix(withDrawer, []byte{0x1b, 0x40, 0x1b, 0x70, 0x00, 0x19, 0xfa}))
}
