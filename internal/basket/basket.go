// =============================================================================
// MoPOS - Shopping Basket Module
// =============================================================================
//
// This module holds the in-progress purchase of exactly one customer. The
// basket is a mutable aggregate of product lines and cash tendered; every
// mutation keeps the aggregate fields (item count, amount due) in sync
// immediately, so the display layer can read them at any moment.
//
// INVARIANT:
//   amountDue == sum over lines of quantity * unitPrice, at all times.
//   The amount due is never set independently of the lines.
//
// RETURNED GOODS POLICY:
//   Removing more of a product than the basket currently holds is not an
//   error. It is modelled as accepting returned goods: the line quantity goes
//   negative and the amount due decreases accordingly. The basket therefore
//   never rejects an over-removal.
//
// MONEY ARITHMETIC:
//   All amounts are shopspring decimals accumulated exactly. Two-decimal
//   truncating rounding is a display concern and never happens here.
//
// =============================================================================

package basket

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/mopos/internal/catalog"
)

// =============================================================================
// VALIDATION ERRORS
// =============================================================================
// These are operator input errors: reported, never fatal, and the basket is
// left untouched when one is returned.

var (
	// ErrNonPositiveQuantity rejects add/remove calls with quantity <= 0.
	ErrNonPositiveQuantity = errors.New("quantity must be larger than 0")

	// ErrNegativeQuantity rejects set calls with quantity < 0.
	ErrNegativeQuantity = errors.New("quantity must not be negative")

	// ErrNonPositiveAmount rejects cash add/remove calls with amount <= 0.
	ErrNonPositiveAmount = errors.New("amount must be larger than 0")

	// ErrNegativeAmount rejects cash set calls with amount < 0.
	ErrNegativeAmount = errors.New("amount must not be negative")

	// ErrInsufficientCash rejects removing more cash than was tendered.
	ErrInsufficientCash = errors.New("cannot remove more cash than received")
)

// =============================================================================
// BASKET STRUCTURE
// =============================================================================

// Line is one (product, quantity) entry in the basket. Quantity is signed:
// negative lines represent returned goods.
type Line struct {
	Product  *catalog.Product
	Quantity int64
}

// Extension returns quantity * unit price for this line.
func (l Line) Extension() decimal.Decimal {
	return l.Product.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}

// Basket aggregates one customer's in-progress purchase.
type Basket struct {
	lines        map[string]*Line
	order        []string // insertion order of line codes, for display
	itemCount    int64
	amountDue    decimal.Decimal
	cashReceived decimal.Decimal
	currencyCode string
}

// New creates an empty basket for the given currency.
func New(currencyCode string) *Basket {
	b := &Basket{currencyCode: currencyCode}
	b.Reset()
	return b
}

// Reset restores the basket to its empty state for the next customer.
// This is an explicit operation, not a re-construction: the currency code
// survives, everything else goes back to zero.
func (b *Basket) Reset() {
	b.lines = make(map[string]*Line)
	b.order = b.order[:0]
	b.itemCount = 0
	b.amountDue = decimal.Zero
	b.cashReceived = decimal.Zero
}

// =============================================================================
// ITEM OPERATIONS
// =============================================================================

// AddItem adds qty units of a product to the basket.
//
// PARAMETERS:
//   - product: The catalog product to add.
//   - qty: The number of units; must be > 0.
//
// RETURNS:
//   - ErrNonPositiveQuantity if qty <= 0 (no mutation), nil otherwise.
func (b *Basket) AddItem(product *catalog.Product, qty int64) error {
	if qty <= 0 {
		return ErrNonPositiveQuantity
	}
	b.applyDelta(product, qty)
	return nil
}

// RemoveItem removes qty units of a product from the basket.
//
// Three cases, by comparing qty to the current line quantity:
//   1. qty < current: partial removal, the line shrinks.
//   2. qty == current: full removal, the line is deleted entirely.
//   3. qty > current (including an absent line): returned goods, the line
//      quantity goes negative by the difference.
//
// In every case item count and amount due decrease by qty and
// qty * unitPrice respectively.
//
// RETURNS:
//   - ErrNonPositiveQuantity if qty <= 0 (no mutation), nil otherwise.
func (b *Basket) RemoveItem(product *catalog.Product, qty int64) error {
	if qty <= 0 {
		return ErrNonPositiveQuantity
	}
	b.applyDelta(product, -qty)
	return nil
}

// SetItem makes the line for a product exactly qty units, as if the current
// quantity had been removed in full and qty added back. Setting an absent
// line behaves like AddItem; setting qty 0 leaves the line absent.
//
// RETURNS:
//   - ErrNegativeQuantity if qty < 0 (no mutation), nil otherwise.
func (b *Basket) SetItem(product *catalog.Product, qty int64) error {
	if qty < 0 {
		return ErrNegativeQuantity
	}

	current := int64(0)
	if line, ok := b.lines[product.Code]; ok {
		current = line.Quantity
	}
	if delta := qty - current; delta != 0 {
		b.applyDelta(product, delta)
	}
	return nil
}

// applyDelta adjusts one line by a signed quantity delta, keeping the
// aggregate fields in sync. A line whose quantity lands on exactly zero is
// deleted so the basket never carries zero-quantity lines.
func (b *Basket) applyDelta(product *catalog.Product, delta int64) {
	line, ok := b.lines[product.Code]
	if !ok {
		line = &Line{Product: product}
		b.lines[product.Code] = line
		b.order = append(b.order, product.Code)
	}

	line.Quantity += delta
	b.itemCount += delta
	b.amountDue = b.amountDue.Add(product.UnitPrice.Mul(decimal.NewFromInt(delta)))

	if line.Quantity == 0 {
		b.deleteLine(product.Code)
	}
}

// deleteLine drops a line and its insertion-order slot.
func (b *Basket) deleteLine(code string) {
	delete(b.lines, code)
	for i, c := range b.order {
		if c == code {
			b.order = append(b.order[:i], b.order[i+1:]...)
			return
		}
	}
}

// =============================================================================
// CASH OPERATIONS
// =============================================================================

// AddCash records additional cash tendered by the customer.
//
// RETURNS:
//   - ErrNonPositiveAmount if amount <= 0 (no mutation), nil otherwise.
func (b *Basket) AddCash(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	b.cashReceived = b.cashReceived.Add(amount)
	return nil
}

// RemoveCash hands cash back to the customer before settlement.
//
// RETURNS:
//   - ErrNonPositiveAmount if amount <= 0 (no mutation).
//   - ErrInsufficientCash if amount exceeds the cash tendered (no mutation).
func (b *Basket) RemoveCash(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	if amount.GreaterThan(b.cashReceived) {
		return ErrInsufficientCash
	}
	b.cashReceived = b.cashReceived.Sub(amount)
	return nil
}

// SetCash replaces the cash tendered outright.
//
// RETURNS:
//   - ErrNegativeAmount if amount < 0 (no mutation), nil otherwise.
func (b *Basket) SetCash(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	b.cashReceived = amount
	return nil
}

// =============================================================================
// READ-ONLY ACCESSORS
// =============================================================================
// The presentation layer works exclusively through these; it never formats
// inside this package and never mutates.

// Lines returns the basket lines in insertion order.
func (b *Basket) Lines() []Line {
	lines := make([]Line, 0, len(b.order))
	for _, code := range b.order {
		lines = append(lines, *b.lines[code])
	}
	return lines
}

// Quantity returns the current line quantity for a product code, zero if the
// line is absent.
func (b *Basket) Quantity(code string) int64 {
	if line, ok := b.lines[code]; ok {
		return line.Quantity
	}
	return 0
}

// ItemCount returns the signed total number of items in the basket.
func (b *Basket) ItemCount() int64 {
	return b.itemCount
}

// AmountDue returns the exact total amount due.
func (b *Basket) AmountDue() decimal.Decimal {
	return b.amountDue
}

// CashReceived returns the exact cash tendered so far.
func (b *Basket) CashReceived() decimal.Decimal {
	return b.cashReceived
}

// Change returns cash received minus amount due. Negative change means the
// customer still owes money.
func (b *Basket) Change() decimal.Decimal {
	return b.cashReceived.Sub(b.amountDue)
}

// CurrencyCode returns the currency label for displayed amounts.
func (b *Basket) CurrencyCode() string {
	return b.currencyCode
}

// IsEmpty reports whether the basket holds no lines and no cash.
func (b *Basket) IsEmpty() bool {
	return len(b.lines) == 0 && b.cashReceived.IsZero()
}
