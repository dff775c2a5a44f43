package report_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/mopos/internal/catalog"
	"github.com/ginjaninja78/mopos/internal/config"
	"github.com/ginjaninja78/mopos/internal/register"
	"github.com/ginjaninja78/mopos/internal/report"
)

func TestWriteProducesReadableWorkbook(t *testing.T) {
	cat, err := catalog.Load(&config.TillConfig{
		Products: []config.ProductEntry{
			{Code: "iv", Name: "Vanilla ice cream", Price: "0.80", PrintOrder: 1},
			{Code: "ik", Name: "Chocolate ice cream", Price: "1.10", PrintOrder: 2},
		},
	})
	require.NoError(t, err)

	dir := t.TempDir()
	cash := register.NewCash(decimal.RequireFromString("6.80"), "EUR", "unused")
	cash.AddTransaction(1)

	stock := register.NewStock("unused")
	ik, _ := cat.Lookup("ik")
	stock.RegisterSoldItem(ik, 4)

	path, err := report.Write(dir, cash, stock, cat)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, dir))
	assert.True(t, strings.HasSuffix(path, ".xlsx"))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	// Cash sheet carries the register summary.
	value, err := f.GetCellValue("Cash Register", "B3")
	require.NoError(t, err)
	assert.Equal(t, "6.80", value)

	// Stock sheet lists products in print order: iv first, ik second.
	code, err := f.GetCellValue("Stock Sales", "A2")
	require.NoError(t, err)
	assert.Equal(t, "iv", code)

	code, err = f.GetCellValue("Stock Sales", "A3")
	require.NoError(t, err)
	assert.Equal(t, "ik", code)

	qty, err := f.GetCellValue("Stock Sales", "D3")
	require.NoError(t, err)
	assert.Equal(t, "4", qty)
}

func TestWriteTwiceNeverOverwrites(t *testing.T) {
	cat, err := catalog.Load(&config.TillConfig{
		Products: []config.ProductEntry{
			{Code: "iv", Name: "Vanilla ice cream", Price: "0.80", PrintOrder: 1},
		},
	})
	require.NoError(t, err)

	dir := t.TempDir()
	cash := register.NewCash(decimal.Zero, "EUR", "unused")
	stock := register.NewStock("unused")

	first, err := report.Write(dir, cash, stock, cat)
	require.NoError(t, err)
	second, err := report.Write(dir, cash, stock, cat)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
