// Package catalog holds the product list loaded at startup and derives the
// filtered, sorted views shown to the user.
package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// ProductID identifies a product. The upstream feed uses integers.
type ProductID int

// Rating is the optional review summary attached to a product.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product is a purchasable item. Values are never mutated after loading.
type Product struct {
	ID          ProductID       `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	Image       string          `json:"image"`
	Rating      *Rating         `json:"rating,omitempty"`
}

// SortMode selects the ordering of a filtered view.
type SortMode string

const (
	SortDefault SortMode = "default"
	SortLow     SortMode = "low"
	SortHigh    SortMode = "high"
)

// ParseSortMode maps user input to a SortMode; anything unknown is default.
func ParseSortMode(s string) SortMode {
	switch SortMode(strings.ToLower(strings.TrimSpace(s))) {
	case SortLow:
		return SortLow
	case SortHigh:
		return SortHigh
	default:
		return SortDefault
	}
}

// Catalog is the session's source of truth for products.
type Catalog struct {
	products []Product
	byID     map[ProductID]Product
}

// New returns a catalog over a copy of products, keeping their order.
func New(products []Product) *Catalog {
	c := &Catalog{
		products: make([]Product, len(products)),
		byID:     make(map[ProductID]Product, len(products)),
	}
	copy(c.products, products)
	for _, p := range c.products {
		c.byID[p.ID] = p
	}
	return c
}

// Lookup returns the product with the given id.
func (c *Catalog) Lookup(id ProductID) (Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Products returns the full list in catalog order.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len reports how many products are loaded.
func (c *Catalog) Len() int {
	return len(c.products)
}

// ApplyFilters returns a new view of products whose title or category
// contains query (case-insensitive), ordered by mode. The catalog itself is
// left untouched.
func (c *Catalog) ApplyFilters(query string, mode SortMode) []Product {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		if q == "" ||
			strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			out = append(out, p)
		}
	}
	switch mode {
	case SortLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.LessThan(out[j].Price) })
	case SortHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.GreaterThan(out[j].Price) })
	}
	return out
}
