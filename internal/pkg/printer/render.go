package printer

import (
	"fmt"
	"strings"
	"time"

	"github.com/smash-arena/pos-terminal/internal/domain/booking"
	"github.com/smash-arena/pos-terminal/internal/domain/order"
	"github.com/smash-arena/pos-terminal/internal/domain/receipt"
	"github.com/smash-arena/pos-terminal/internal/domain/shift"
)

// RenderSale renders the customer receipt of a completed sale.
func RenderSale(r receipt.Receipt, layout Layout) string {
	s := newSheet(layout)
	s.header()

	cashier := r.CashierName
	if cashier == "" {
		cashier = receipt.DefaultCashier
	}
	s.line("No: " + r.InvoiceCode)
	s.line("Tgl: " + s.timestamp(r.Timestamp))
	s.line("Kasir: " + cashier)
	if r.Booking != "" {
		s.line("Cust: " + r.Booking)
	}
	s.rule()

	for _, item := range r.Items {
		s.line(item.Name)
		s.row(fmt.Sprintf("%d x %s", item.Quantity, s.amount(item.Price)), s.amount(item.Subtotal))
	}
	s.rule()

	s.row("TOTAL", s.rupiah(r.TotalAmount))
	if r.PaymentMethod == string(order.PaymentCash) {
		if r.CashGiven != nil {
			s.row("Tunai", s.rupiah(*r.CashGiven))
		}
		if r.AmountDue != nil {
			s.row("Kurang", s.rupiah(*r.AmountDue))
		} else if r.Change != nil {
			s.row("Kembali", s.rupiah(*r.Change))
		}
	} else {
		s.center("(" + strings.ToUpper(order.PaymentMethod(r.PaymentMethod).Label()) + ")")
	}

	s.footer()
	return s.String()
}

// RenderClosing renders the shift closing report.
func RenderClosing(summary shift.ClosingSummary, cs shift.CashShift, layout Layout) string {
	s := newSheet(layout)
	s.header()

	s.center("LAPORAN TUTUP SHIFT")
	s.line("Kasir: " + cs.CashierName())
	if !cs.OpenedAt.IsZero() {
		s.line("Buka: " + s.timestamp(cs.OpenedAt))
	}
	closedAt := time.Now()
	if cs.ClosedAt != nil {
		closedAt = *cs.ClosedAt
	}
	s.line("Tutup: " + s.timestamp(closedAt))
	s.rule()

	s.row("Modal Awal", s.rupiah(summary.ModalAwal))
	s.row("Penjualan Tunai", "+ "+s.rupiah(summary.PenjualanTunai))
	s.row("Penjualan Non-Tunai", "("+s.rupiah(cs.TotalNonCashSales)+")")
	s.row("Total Seharusnya", s.rupiah(summary.SeharusnyaAda))
	s.row("Uang Fisik (Aktual)", s.rupiah(summary.FisikUang))
	s.rule()

	if summary.IsBalanced() {
		s.row("Balance (Sesuai)", s.rupiah(summary.Selisih))
	} else {
		s.row("Selisih", s.rupiah(summary.Selisih))
	}
	if cs.Note != nil && *cs.Note != "" {
		s.line("Catatan: " + *cs.Note)
	}

	s.rule()
	return s.String()
}

// RenderBooking renders the settlement receipt of a booking: the court rental
// followed by its billable open-bill orders.
func RenderBooking(b booking.Booking, cashier string, at time.Time, layout Layout) string {
	s := newSheet(layout)
	s.header()

	if processedBy := b.ProcessedBy(); processedBy != "" {
		cashier = processedBy
	}
	if cashier == "" {
		cashier = receipt.DefaultCashier
	}
	s.line("No: " + b.BookingCode)
	s.line("Tgl: " + s.timestamp(at))
	s.line("Kasir: " + cashier)
	s.line("Cust: " + b.Customer())
	s.rule()

	s.line(b.CourtLine())
	s.row("1 x "+s.amount(b.TotalPrice), s.amount(b.TotalPrice))
	s.line("(" + b.Slot() + ")")
	for _, o := range b.BillableOrders() {
		for _, item := range o.Items {
			s.line(item.Name())
			s.row(fmt.Sprintf("%d x %s", item.Quantity, s.amount(item.Price)), s.amount(item.Subtotal()))
		}
	}
	s.rule()

	grandTotal := b.GrandTotal()
	s.row("TOTAL", s.rupiah(grandTotal))
	method := b.PaymentMethod()
	if method == string(order.PaymentCash) {
		s.row("Tunai", s.rupiah(grandTotal))
		s.row("Kembali", "Rp 0")
	} else {
		s.center("(" + strings.ToUpper(order.PaymentMethod(method).Label()) + ")")
	}

	status := "BELUM LUNAS"
	if b.IsSettled() {
		status = "LUNAS"
	}
	s.row("Status", status)

	s.footer()
	return s.String()
}
