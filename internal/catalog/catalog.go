// =============================================================================
// MoPOS - Catalog Module
// =============================================================================
//
// This module turns the raw product entries from the configuration file into
// the immutable product catalog the rest of the till works against. It is the
// semantic validation layer for products:
//   - Duplicate product codes are a fatal configuration error
//   - Prices must parse as exact decimals (they arrive as strings)
//   - Codes must be lowercase alphabetic so they fit the command grammar
//   - The reserved cash pseudo-codes cannot be used as product codes
//
// The catalog is shared read-only state: it is built once at startup and
// never mutated afterwards.
//
// =============================================================================

package catalog

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/mopos/internal/config"
)

// =============================================================================
// PRODUCT DESCRIPTOR
// =============================================================================

// Product describes one sellable product. Immutable once loaded.
type Product struct {
	// Code is the unique short code typed at the till.
	Code string

	// Name is the display name used on screens and reports.
	Name string

	// UnitPrice is the exact decimal unit price.
	UnitPrice decimal.Decimal

	// PrintOrder controls the position of this product in sorted output.
	PrintOrder int
}

// String renders the descriptor for diagnostics.
func (p *Product) String() string {
	return fmt.Sprintf("Code: %s - Name: %s - Unit price: %s - Order: %d",
		p.Code, p.Name, p.UnitPrice, p.PrintOrder)
}

// =============================================================================
// CATALOG
// =============================================================================

// Catalog is the immutable code -> product mapping supplied to the parser,
// the display layer and the report writer.
type Catalog struct {
	byCode map[string]*Product
}

// reservedCodes are pseudo-codes claimed by the command grammar for cash
// adjustments. A product is not allowed to shadow them.
var reservedCodes = map[string]bool{
	"cash": true, // whole-unit cash adjustment
	"eu":   true, // alias for cash
	"c":    true, // cents-granularity cash adjustment
	"rr":   true, // reset sentinel
	"nn":   true, // settle sentinel
	"qq":   true, // quit sentinel
}

// Load builds the catalog from the till configuration.
//
// PARAMETERS:
//   - cfg: The loaded till configuration.
//
// RETURNS:
//   - A pointer to the immutable Catalog.
//   - An error on the first invalid or duplicate product entry.
//
// Any error returned here is fatal for startup: the till must never open
// with a half-valid product list.
func Load(cfg *config.TillConfig) (*Catalog, error) {
	byCode := make(map[string]*Product, len(cfg.Products))

	for _, entry := range cfg.Products {
		if !isLowerAlpha(entry.Code) {
			return nil, fmt.Errorf("product code %q must be lowercase alphabetic", entry.Code)
		}
		if reservedCodes[entry.Code] {
			return nil, fmt.Errorf("product code %q is reserved by the command grammar", entry.Code)
		}
		if _, exists := byCode[entry.Code]; exists {
			return nil, fmt.Errorf("duplicate product code %q", entry.Code)
		}

		// Prices arrive as strings; NewFromString rejects anything that is
		// not an exact decimal.
		price, err := decimal.NewFromString(entry.Price)
		if err != nil {
			return nil, fmt.Errorf("product %q has invalid price %q: %w", entry.Code, entry.Price, err)
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("product %q has negative price %q", entry.Code, entry.Price)
		}

		byCode[entry.Code] = &Product{
			Code:       entry.Code,
			Name:       entry.Name,
			UnitPrice:  price,
			PrintOrder: entry.PrintOrder,
		}
	}

	return &Catalog{byCode: byCode}, nil
}

// Lookup returns the product for a code, or false if the code is unknown.
func (c *Catalog) Lookup(code string) (*Product, bool) {
	product, ok := c.byCode[code]
	return product, ok
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.byCode)
}

// Products returns all products sorted by PrintOrder (code as tie-breaker),
// for sorted display output and reports.
func (c *Catalog) Products() []*Product {
	products := make([]*Product, 0, len(c.byCode))
	for _, product := range c.byCode {
		products = append(products, product)
	}

	sort.Slice(products, func(i, j int) bool {
		if products[i].PrintOrder != products[j].PrintOrder {
			return products[i].PrintOrder < products[j].PrintOrder
		}
		return products[i].Code < products[j].Code
	})

	return products
}

// isLowerAlpha reports whether s is non-empty and entirely a-z.
func isLowerAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
