// =============================================================================
// MoPOS - Sales Report Module
// =============================================================================
//
// This module exports the durable register state into an XLSX workbook so
// the bookkeeping side of the shop can work with the numbers without touching
// the till. It is read-only over the registers, like the console display.
//
// WORKBOOK LAYOUT:
//   Sheet "Cash Register" : cash-on-hand, revenue, transaction count
//   Sheet "Stock Sales"   : one row per product (code, name, quantity sold,
//                           revenue), in catalog print order, followed by
//                           any sold codes no longer present in the catalog
//
// FILE NAMING:
//   Reports are written as sales_<uuid>.xlsx so repeated exports never
//   overwrite each other.
//
// =============================================================================

package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/mopos/internal/catalog"
	"github.com/ginjaninja78/mopos/internal/register"
)

// Sheet names in the generated workbook.
const (
	cashSheet  = "Cash Register"
	stockSheet = "Stock Sales"
)

// Write generates a sales report workbook in reportDir.
//
// PARAMETERS:
//   - reportDir: The directory to write the report into; created if missing.
//   - cash: The cash register to summarize.
//   - stock: The stock register to tabulate.
//   - cat: The catalog, for product names, prices and print order.
//
// RETURNS:
//   - The path of the written workbook.
//   - An error if the directory or workbook cannot be written.
func Write(reportDir string, cash *register.Cash, stock *register.Stock, cat *catalog.Catalog) (string, error) {
	if err := os.MkdirAll(reportDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory %s: %w", reportDir, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeCashSheet(f, cash); err != nil {
		return "", err
	}
	if err := writeStockSheet(f, stock, cat); err != nil {
		return "", err
	}

	// Drop the default sheet that NewFile creates.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", fmt.Errorf("failed to remove default sheet: %w", err)
	}

	path := filepath.Join(reportDir, fmt.Sprintf("sales_%s.xlsx", uuid.New()))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save report %s: %w", path, err)
	}
	return path, nil
}

// writeCashSheet fills the cash register summary sheet.
func writeCashSheet(f *excelize.File, cash *register.Cash) error {
	if _, err := f.NewSheet(cashSheet); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", cashSheet, err)
	}

	rows := [][]any{
		{"Field", "Value"},
		{"Currency", cash.CurrencyCode()},
		{"Cash", reportAmount(cash.Cash())},
		{"Revenue", reportAmount(cash.Revenue())},
		{"Transactions", cash.Transactions()},
	}
	return writeRows(f, cashSheet, rows)
}

// writeStockSheet fills the per-product sales sheet.
func writeStockSheet(f *excelize.File, stock *register.Stock, cat *catalog.Catalog) error {
	if _, err := f.NewSheet(stockSheet); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", stockSheet, err)
	}

	rows := [][]any{
		{"Code", "Name", "Unit Price", "Quantity Sold", "Revenue"},
	}

	// Catalog products first, in print order.
	seen := make(map[string]bool)
	for _, product := range cat.Products() {
		seen[product.Code] = true
		rows = append(rows, []any{
			product.Code,
			product.Name,
			reportAmount(product.UnitPrice),
			stock.QuantitySold(product.Code),
			reportAmount(stock.Revenue(product.Code)),
		})
	}

	// Sold codes that have since left the catalog still belong in the books.
	for _, code := range stock.Codes() {
		if seen[code] {
			continue
		}
		rows = append(rows, []any{
			code,
			"",
			"",
			stock.QuantitySold(code),
			reportAmount(stock.Revenue(code)),
		})
	}

	return writeRows(f, stockSheet, rows)
}

// writeRows writes rows starting at A1 of the given sheet.
func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to compute cell for row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %q: %w", i+1, sheet, err)
		}
	}
	return nil
}

// reportAmount renders money the way the display layer does: truncated to
// two decimals.
func reportAmount(amount decimal.Decimal) string {
	return amount.RoundDown(2).StringFixed(2)
}
