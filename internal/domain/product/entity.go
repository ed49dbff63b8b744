package product

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryDrink     Category = "drink"
	CategoryFood      Category = "food"
	CategoryEquipment Category = "equipment"
	CategoryOther     Category = "other"
)

// CategoryAll disables category filtering.
const CategoryAll Category = "all"

// Product is the terminal's snapshot of a sellable item. Stock is owned by the
// backend and only mirrored here.
type Product struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Category  Category        `json:"category"`
	Price     decimal.Decimal `json:"price"`
	CostPrice decimal.Decimal `json:"cost_price"`
	Stock     int             `json:"stock"`
	IsActive  bool            `json:"is_active"`
	Image     *string         `json:"image,omitempty"`
}

// Filter narrows the catalog shown to the cashier.
type Filter struct {
	Category Category `json:"category"`
	Search   string   `json:"search"`
}

// Apply returns the products matching f, preserving order. Category must
// match exactly unless it is empty or "all"; search is a case-insensitive
// substring match on the name.
func (f Filter) Apply(products []Product) []Product {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	result := make([]Product, 0, len(products))
	for _, p := range products {
		if f.Category != "" && f.Category != CategoryAll && p.Category != f.Category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		result = append(result, p)
	}
	return result
}

// Find returns the product with the given id.
func Find(products []Product, id int64) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
