// =============================================================================
// MoPOS - Settlement Module
// =============================================================================
//
// Settlement is the commit protocol of the till: it drains the basket into
// the two durable registers and persists both.
//
// PROTOCOL:
//   1. If the basket's amount due is non-zero: count one transaction, add
//      the amount due to cash-on-hand and revenue, persist the cash register.
//   2. Unconditionally apply every basket line (negative return lines
//      included) to the stock register, then persist it once.
//   3. Reset the basket for the next customer.
//
// A basket with zero amount due and no lines is a valid no-op commit: the
// basket resets, nothing is counted, nothing is persisted.
//
// FAILURE POLICY:
//   The two snapshots are persisted independently; there is no combined
//   atomic transaction across them. When a persist fails, Close returns the
//   error and leaves the basket un-reset. At that point the in-memory
//   registers and the on-disk snapshots have diverged, which a single till
//   cannot repair; the till loop treats the error as fatal.
//
// =============================================================================

package settle

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/mopos/internal/basket"
	"github.com/ginjaninja78/mopos/internal/register"
)

// =============================================================================
// SETTLEMENT RESULT
// =============================================================================

// Result summarizes one settlement for the operator and the till log.
type Result struct {
	// ReceiptID uniquely identifies this settlement.
	ReceiptID uuid.UUID

	// Settled is true when the cash register was touched, false for a
	// no-op commit.
	Settled bool

	// Amount is the amount moved into the cash register.
	Amount decimal.Decimal

	// Lines is the number of basket lines applied to the stock register.
	Lines int
}

// =============================================================================
// COMMIT PROTOCOL
// =============================================================================

// Close commits the basket into the cash and stock registers and resets it.
//
// PARAMETERS:
//   - b: The basket to settle; reset to empty on success.
//   - cash: The cash register; persisted when the amount due is non-zero.
//   - stock: The stock register; persisted when the basket has lines.
//
// RETURNS:
//   - A Result describing what was committed.
//   - An error when either snapshot could not be persisted; the basket is
//     left un-reset in that case (see the failure policy above).
func Close(b *basket.Basket, cash *register.Cash, stock *register.Stock) (Result, error) {
	result := Result{
		ReceiptID: uuid.New(),
		Amount:    b.AmountDue(),
	}

	// Step 1: cash register, only when money changed hands.
	if !b.AmountDue().IsZero() {
		cash.AddTransaction(1)
		cash.AddCashAndRevenue(b.AmountDue())
		if err := cash.Save(); err != nil {
			return result, fmt.Errorf("failed to persist cash register: %w", err)
		}
		result.Settled = true
	}

	// Step 2: stock register, one persist after all lines.
	lines := b.Lines()
	for _, line := range lines {
		stock.RegisterSoldItem(line.Product, line.Quantity)
	}
	result.Lines = len(lines)

	if len(lines) > 0 {
		if err := stock.Save(); err != nil {
			return result, fmt.Errorf("failed to persist stock register: %w", err)
		}
	}

	// Step 3: fresh basket for the next customer.
	b.Reset()
	return result, nil
}
