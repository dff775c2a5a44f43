package register_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/mopos/internal/catalog"
	"github.com/ginjaninja78/mopos/internal/register"
)

func product(code, price string) *catalog.Product {
	return &catalog.Product{
		Code:      code,
		Name:      "Product " + code,
		UnitPrice: decimal.RequireFromString(price),
	}
}

func TestCashRegisterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cash_register.yaml")

	reg := register.NewCash(decimal.RequireFromString("50.00"), "EUR", path)
	reg.AddTransaction(1)
	reg.AddCashAndRevenue(decimal.RequireFromString("6.80"))
	require.NoError(t, reg.Save())

	loaded, restored, warn := register.OpenCash(path, register.NewCash(decimal.Zero, "EUR", path))
	require.NoError(t, warn)
	require.True(t, restored)

	assert.True(t, loaded.Cash().Equal(decimal.RequireFromString("56.80")))
	assert.True(t, loaded.Revenue().Equal(decimal.RequireFromString("6.80")))
	assert.Equal(t, int64(1), loaded.Transactions())
	assert.Equal(t, "EUR", loaded.CurrencyCode())
	assert.Equal(t, path, loaded.StoragePath())
}

func TestCashRegisterSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cash_register.yaml")

	reg := register.NewCash(decimal.Zero, "EUR", path)
	require.NoError(t, reg.Save())

	reg.AddTransaction(1)
	reg.AddCashAndRevenue(decimal.RequireFromString("3.30"))
	require.NoError(t, reg.Save())
	require.NoError(t, reg.Save()) // idempotent

	loaded, restored, warn := register.OpenCash(path, register.NewCash(decimal.Zero, "EUR", path))
	require.NoError(t, warn)
	require.True(t, restored)
	assert.True(t, loaded.Cash().Equal(decimal.RequireFromString("3.30")))
	assert.Equal(t, int64(1), loaded.Transactions())
}

func TestOpenCashMissingSnapshotUsesInitial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cash_register.yaml")
	initial := register.NewCash(decimal.RequireFromString("50.00"), "EUR", path)

	loaded, restored, warn := register.OpenCash(path, initial)

	// First run: no warning, no restore, initial state as-is.
	require.NoError(t, warn)
	assert.False(t, restored)
	assert.Same(t, initial, loaded)
	assert.True(t, loaded.Cash().Equal(decimal.RequireFromString("50.00")))
}

func TestOpenCashUnreadableSnapshotFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cash_register.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cash: [not, a, decimal]\n"), 0644))

	initial := register.NewCash(decimal.RequireFromString("50.00"), "EUR", path)
	loaded, restored, warn := register.OpenCash(path, initial)

	// Unreadable is reported but treated like missing: initial state wins.
	assert.Error(t, warn)
	assert.False(t, restored)
	assert.Same(t, initial, loaded)
}

func TestStockRegisterDefaultsToZero(t *testing.T) {
	reg := register.NewStock(filepath.Join(t.TempDir(), "stock_register.yaml"))

	assert.Equal(t, int64(0), reg.QuantitySold("never"))
	assert.True(t, reg.Revenue("never").IsZero())
	assert.Empty(t, reg.Codes())
}

func TestStockRegisterAccumulates(t *testing.T) {
	reg := register.NewStock(filepath.Join(t.TempDir(), "stock_register.yaml"))
	ik := product("ik", "1.10")

	reg.RegisterSoldItem(ik, 4)
	reg.RegisterSoldItem(ik, 2)
	reg.RegisterSoldItem(ik, -1) // a return

	assert.Equal(t, int64(5), reg.QuantitySold("ik"))
	assert.True(t, reg.Revenue("ik").Equal(decimal.RequireFromString("5.50")))
}

func TestStockRegisterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stock_register.yaml")

	reg := register.NewStock(path)
	reg.RegisterSoldItem(product("ik", "1.10"), 4)
	reg.RegisterSoldItem(product("iv", "0.80"), -3) // net returns survive persistence
	require.NoError(t, reg.Save())

	loaded, restored, warn := register.OpenStock(path, register.NewStock(path))
	require.NoError(t, warn)
	require.True(t, restored)

	assert.Equal(t, int64(4), loaded.QuantitySold("ik"))
	assert.True(t, loaded.Revenue("ik").Equal(decimal.RequireFromString("4.40")))
	assert.Equal(t, int64(-3), loaded.QuantitySold("iv"))
	assert.True(t, loaded.Revenue("iv").Equal(decimal.RequireFromString("-2.40")))
	assert.Equal(t, []string{"ik", "iv"}, loaded.Codes())
}

func TestOpenStockMissingSnapshotUsesInitial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stock_register.yaml")
	initial := register.NewStock(path)

	loaded, restored, warn := register.OpenStock(path, initial)

	require.NoError(t, warn)
	assert.False(t, restored)
	assert.Same(t, initial, loaded)
}
