// =============================================================================
// MoPOS - Cash Register Module
// =============================================================================
//
// This package holds the two durable running totals of the till: the cash
// register (this file) and the stock register (stock.go). Both follow the
// same persistence discipline:
//   - Open loads the prior snapshot from the storage location, or starts
//     from a caller-supplied initial state when no snapshot exists yet.
//     A missing snapshot is the normal first-run condition. Any other read
//     failure is reported to the caller but handled the same way: fall back
//     to the initial state.
//   - Save overwrites the snapshot wholesale. Only the settlement protocol
//     calls Save.
//
// The cash register never decreases its revenue or its transaction count,
// and cash-on-hand changes only through settlement; no decrement operation
// exists on this type.
//
// =============================================================================

package register

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/mopos/pkg/snapshot"
)

// =============================================================================
// CASH REGISTER
// =============================================================================

// Cash is the durable cash-on-hand / revenue / transaction-count state of
// the till. Mutated only by settlement.
type Cash struct {
	cash         decimal.Decimal
	revenue      decimal.Decimal
	transactions int64
	currencyCode string
	storagePath  string
}

// cashSnapshot is the persisted YAML form of the cash register. Money fields
// are stored as decimal strings so the snapshot stays exact and readable.
type cashSnapshot struct {
	Cash         string `yaml:"cash"`
	Revenue      string `yaml:"revenue"`
	Transactions int64  `yaml:"transactions"`
	CurrencyCode string `yaml:"currency_code"`
}

// NewCash creates a fresh cash register with the given opening float.
// This is the initial state used when no snapshot exists yet.
func NewCash(initialCash decimal.Decimal, currencyCode, storagePath string) *Cash {
	return &Cash{
		cash:         initialCash,
		revenue:      decimal.Zero,
		currencyCode: currencyCode,
		storagePath:  storagePath,
	}
}

// OpenCash returns the cash register persisted at storagePath, or the given
// initial state when no usable snapshot exists.
//
// PARAMETERS:
//   - storagePath: The snapshot storage location.
//   - initial: The register state to start from on first run.
//
// RETURNS:
//   - The register (always non-nil).
//   - restored: true when a prior snapshot was loaded.
//   - warn: non-nil when an existing snapshot could not be read or decoded;
//     the initial state is used in that case and the till keeps running.
func OpenCash(storagePath string, initial *Cash) (reg *Cash, restored bool, warn error) {
	var snap cashSnapshot
	if err := snapshot.Load(storagePath, &snap); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return initial, false, nil
		}
		return initial, false, err
	}

	loaded, err := cashFromSnapshot(snap, storagePath)
	if err != nil {
		return initial, false, err
	}
	return loaded, true, nil
}

// cashFromSnapshot rebuilds a register from its persisted form.
func cashFromSnapshot(snap cashSnapshot, storagePath string) (*Cash, error) {
	cash, err := decimal.NewFromString(snap.Cash)
	if err != nil {
		return nil, fmt.Errorf("snapshot has invalid cash value %q: %w", snap.Cash, err)
	}
	revenue, err := decimal.NewFromString(snap.Revenue)
	if err != nil {
		return nil, fmt.Errorf("snapshot has invalid revenue value %q: %w", snap.Revenue, err)
	}

	return &Cash{
		cash:         cash,
		revenue:      revenue,
		transactions: snap.Transactions,
		currencyCode: snap.CurrencyCode,
		storagePath:  storagePath,
	}, nil
}

// Save overwrites the snapshot at the register's storage location.
func (c *Cash) Save() error {
	return snapshot.Save(c.storagePath, cashSnapshot{
		Cash:         c.cash.String(),
		Revenue:      c.revenue.String(),
		Transactions: c.transactions,
		CurrencyCode: c.currencyCode,
	})
}

// =============================================================================
// SETTLEMENT MUTATIONS
// =============================================================================

// AddTransaction increments the transaction counter by n.
func (c *Cash) AddTransaction(n int64) {
	c.transactions += n
}

// AddCashAndRevenue adds a settled amount to both cash-on-hand and the
// cumulative revenue.
func (c *Cash) AddCashAndRevenue(amount decimal.Decimal) {
	c.cash = c.cash.Add(amount)
	c.revenue = c.revenue.Add(amount)
}

// =============================================================================
// READ-ONLY ACCESSORS
// =============================================================================

// Cash returns the current cash-on-hand.
func (c *Cash) Cash() decimal.Decimal {
	return c.cash
}

// Revenue returns the cumulative revenue.
func (c *Cash) Revenue() decimal.Decimal {
	return c.revenue
}

// Transactions returns the number of settled transactions.
func (c *Cash) Transactions() int64 {
	return c.transactions
}

// CurrencyCode returns the currency label for displayed amounts.
func (c *Cash) CurrencyCode() string {
	return c.currencyCode
}

// StoragePath returns the snapshot storage location.
func (c *Cash) StoragePath() string {
	return c.storagePath
}
