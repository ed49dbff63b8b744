package printer

import (
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"
	"github.com/smash-arena/pos-terminal/internal/config"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Paper widths in columns of a monospace thermal printer font.
const (
	Columns58mm = 32
	Columns80mm = 48
)

// Business is the identity printed in every receipt header.
type Business struct {
	Name    string
	Address string
	Phone   string
}

// Layout describes the paper and header used when rendering.
type Layout struct {
	Columns  int
	Business Business
	Location *time.Location
}

// NewLayout builds a layout from receipt config.
func NewLayout(cfg config.ReceiptConfig, loc *time.Location) Layout {
	columns := Columns58mm
	if cfg.Width == 80 {
		columns = Columns80mm
	}
	if loc == nil {
		loc = time.Local
	}
	return Layout{
		Columns: columns,
		Business: Business{
			Name:    cfg.BusinessName,
			Address: cfg.BusinessAddress,
			Phone:   cfg.BusinessPhone,
		},
		Location: loc,
	}
}

// sheet accumulates fixed-width lines.
type sheet struct {
	layout Layout
	money  *message.Printer
	lines  []string
}

func newSheet(layout Layout) *sheet {
	if layout.Columns <= 0 {
		layout.Columns = Columns58mm
	}
	if layout.Location == nil {
		layout.Location = time.Local
	}
	return &sheet{
		layout: layout,
		money:  message.NewPrinter(language.Indonesian),
	}
}

func (s *sheet) line(text string) {
	s.lines = append(s.lines, runewidth.Truncate(text, s.layout.Columns, ""))
}

func (s *sheet) blank() {
	s.lines = append(s.lines, "")
}

func (s *sheet) rule() {
	s.lines = append(s.lines, strings.Repeat("-", s.layout.Columns))
}

func (s *sheet) center(text string) {
	text = runewidth.Truncate(text, s.layout.Columns, "")
	pad := (s.layout.Columns - runewidth.StringWidth(text)) / 2
	s.lines = append(s.lines, strings.Repeat(" ", pad)+text)
}

// row prints left and right justified text on one line, shortening the left
// side when both do not fit.
func (s *sheet) row(left, right string) {
	rightWidth := runewidth.StringWidth(right)
	room := s.layout.Columns - rightWidth - 1
	if room < 1 {
		s.line(right)
		return
	}
	left = runewidth.Truncate(left, room, "")
	s.lines = append(s.lines, runewidth.FillRight(left, s.layout.Columns-rightWidth)+right)
}

func (s *sheet) header() {
	b := s.layout.Business
	s.center(b.Name)
	if b.Address != "" {
		s.center(b.Address)
	}
	if b.Phone != "" {
		s.center("Telp: " + b.Phone)
	}
	s.rule()
}

func (s *sheet) footer() {
	s.rule()
	s.center("Terima Kasih")
	s.center("Selamat Berolahraga!")
}

// amount formats whole rupiah with Indonesian grouping, e.g. "10.000".
func (s *sheet) amount(d decimal.Decimal) string {
	return s.money.Sprintf("%d", d.IntPart())
}

func (s *sheet) rupiah(d decimal.Decimal) string {
	return "Rp " + s.amount(d)
}

// timestamp renders d/m/yyyy HH:MM:SS in the layout's zone.
func (s *sheet) timestamp(t time.Time) string {
	return t.In(s.layout.Location).Format("2/1/2006 15:04:05")
}

func (s *sheet) String() string {
	return strings.Join(s.lines, "\n") + "\n"
}
