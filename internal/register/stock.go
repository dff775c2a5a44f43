// =============================================================================
// MoPOS - Stock Register Module
// =============================================================================
//
// The stock register keeps, per product code, the cumulative quantity sold
// and the cumulative revenue attributed to that code. Quantities can go
// negative when returned goods outweigh sales. Absent codes read as zero
// rather than failing, so displays and reports can ask about any product.
//
// =============================================================================

package register

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/mopos/internal/catalog"
	"github.com/ginjaninja78/mopos/pkg/snapshot"
)

// Stock is the durable per-product sales state of the till.
// Mutated only by settlement.
type Stock struct {
	quantities  map[string]int64
	revenues    map[string]decimal.Decimal
	storagePath string
}

// stockSnapshot is the persisted YAML form of the stock register.
type stockSnapshot struct {
	Items map[string]stockItem `yaml:"items"`
}

// stockItem is one per-code entry in the snapshot, revenue as a decimal
// string for exactness.
type stockItem struct {
	Quantity int64  `yaml:"quantity"`
	Revenue  string `yaml:"revenue"`
}

// NewStock creates an empty stock register, the initial state for a first
// run.
func NewStock(storagePath string) *Stock {
	return &Stock{
		quantities:  make(map[string]int64),
		revenues:    make(map[string]decimal.Decimal),
		storagePath: storagePath,
	}
}

// OpenStock returns the stock register persisted at storagePath, or the
// given initial state when no usable snapshot exists. Same contract as
// OpenCash: a missing snapshot is silent, any other failure comes back as a
// warning while the initial state is used.
func OpenStock(storagePath string, initial *Stock) (reg *Stock, restored bool, warn error) {
	var snap stockSnapshot
	if err := snapshot.Load(storagePath, &snap); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return initial, false, nil
		}
		return initial, false, err
	}

	loaded := NewStock(storagePath)
	for code, item := range snap.Items {
		revenue, err := decimal.NewFromString(item.Revenue)
		if err != nil {
			return initial, false, fmt.Errorf("snapshot has invalid revenue %q for code %q: %w", item.Revenue, code, err)
		}
		loaded.quantities[code] = item.Quantity
		loaded.revenues[code] = revenue
	}
	return loaded, true, nil
}

// Save overwrites the snapshot at the register's storage location.
func (s *Stock) Save() error {
	items := make(map[string]stockItem, len(s.quantities))
	for code, qty := range s.quantities {
		items[code] = stockItem{
			Quantity: qty,
			Revenue:  s.revenues[code].String(),
		}
	}
	return snapshot.Save(s.storagePath, stockSnapshot{Items: items})
}

// RegisterSoldItem records a settled basket line: qty units of the product
// (negative for returns) and qty * unitPrice revenue attributed to its code.
func (s *Stock) RegisterSoldItem(product *catalog.Product, qty int64) {
	s.quantities[product.Code] += qty
	s.revenues[product.Code] = s.revenues[product.Code].Add(
		product.UnitPrice.Mul(decimal.NewFromInt(qty)))
}

// QuantitySold returns the cumulative quantity sold for a code, zero for
// codes never seen.
func (s *Stock) QuantitySold(code string) int64 {
	return s.quantities[code]
}

// Revenue returns the cumulative revenue for a code, zero for codes never
// seen.
func (s *Stock) Revenue(code string) decimal.Decimal {
	if revenue, ok := s.revenues[code]; ok {
		return revenue
	}
	return decimal.Zero
}

// Codes returns all codes with recorded sales, sorted for stable output.
func (s *Stock) Codes() []string {
	codes := make([]string, 0, len(s.quantities))
	for code := range s.quantities {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// StoragePath returns the snapshot storage location.
func (s *Stock) StoragePath() string {
	return s.storagePath
}
