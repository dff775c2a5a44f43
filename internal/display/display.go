// =============================================================================
// MoPOS - Display Module
// =============================================================================
//
// This module renders till state for the operator console. It is strictly a
// presentation layer: it reads the plain accessor state of the basket and
// the registers and writes formatted text, never mutating anything.
//
// The operator-facing labels are Dutch, as on the original till hardware
// ("Omzet" = revenue, "Ontvangen" = received, "Terug" = change).
//
// ROUNDING:
//   Amounts are accumulated exactly elsewhere; this module applies the
//   two-decimal truncating rounding that belongs to display only.
//
// =============================================================================

package display

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/mopos/internal/basket"
	"github.com/ginjaninja78/mopos/internal/catalog"
	"github.com/ginjaninja78/mopos/internal/register"
)

// Money renders an amount with a currency label, truncated to two decimals.
func Money(currencyCode string, amount decimal.Decimal) string {
	return currencyCode + " " + amount.RoundDown(2).StringFixed(2)
}

// =============================================================================
// BASKET RENDERING
// =============================================================================

// Basket writes the current basket: one row per line, the running total,
// and the received/change block once cash has been tendered.
func Basket(w io.Writer, b *basket.Basket) {
	currency := b.CurrencyCode()

	for _, line := range b.Lines() {
		fmt.Fprintf(w, "%-30s %4d x %10s = %10s\n",
			line.Product.Name,
			line.Quantity,
			Money(currency, line.Product.UnitPrice),
			Money(currency, line.Extension()))
	}

	if !b.AmountDue().IsZero() {
		fmt.Fprintf(w, "\nTotaal %28d item(s)   %10s\n",
			b.ItemCount(), Money(currency, b.AmountDue()))
	}

	if !b.CashReceived().IsZero() {
		receivedLabel := "Ontvangen:"
		changeLabel := "Terug:"
		if b.CashReceived().LessThan(b.AmountDue()) {
			receivedLabel = "Ontvangen (ONTOEREIKEND):"
			changeLabel = "Nog extra te ontvangen:"
		}
		fmt.Fprintf(w, "\n%45s %10s\n", receivedLabel, Money(currency, b.CashReceived()))
		fmt.Fprintf(w, "%45s %10s\n", changeLabel, Money(currency, b.Change()))
	}
}

// =============================================================================
// CASH REGISTER RENDERING
// =============================================================================

// CashRegister writes the three-line cash register summary.
func CashRegister(w io.Writer, c *register.Cash) {
	fmt.Fprintf(w, "%-38s %10s\n", "Cash", Money(c.CurrencyCode(), c.Cash()))
	fmt.Fprintf(w, "%-38s %10s\n", "Omzet", Money(c.CurrencyCode(), c.Revenue()))
	fmt.Fprintf(w, "%-37s %8d\n", "Transacties", c.Transactions())
}

// CashRegisterOneLine writes the compact single-line cash register summary.
func CashRegisterOneLine(w io.Writer, c *register.Cash) {
	fmt.Fprintf(w, "Cash: %s - Omzet: %s - Transacties: %d\n",
		Money(c.CurrencyCode(), c.Cash()),
		Money(c.CurrencyCode(), c.Revenue()),
		c.Transactions())
}

// =============================================================================
// STOCK REGISTER RENDERING
// =============================================================================

// StockRegister writes one row per sold product code. The catalog supplies
// names and unit prices; codes no longer in the catalog fall back to the
// bare code.
func StockRegister(w io.Writer, s *register.Stock, cat *catalog.Catalog, currencyCode string) {
	for _, code := range s.Codes() {
		name := code
		unitPrice := "-"
		if product, ok := cat.Lookup(code); ok {
			name = product.Name
			unitPrice = Money(currencyCode, product.UnitPrice)
		}
		fmt.Fprintf(w, "[%s] %-20s %4d x %10s = %10s\n",
			code,
			name,
			s.QuantitySold(code),
			unitPrice,
			Money(currencyCode, s.Revenue(code)))
	}
}
