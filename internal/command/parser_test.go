package command_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/mopos/internal/catalog"
	"github.com/ginjaninja78/mopos/internal/command"
	"github.com/ginjaninja78/mopos/internal/config"
)

// testCatalog builds the small catalog used across the parser tests.
func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	cat, err := catalog.Load(&config.TillConfig{
		Products: []config.ProductEntry{
			{Code: "ik", Name: "Chocolate ice cream", Price: "1.10", PrintOrder: 2},
			{Code: "iv", Name: "Vanilla ice cream", Price: "0.80", PrintOrder: 1},
		},
	})
	require.NoError(t, err)
	return cat
}

func TestParseBareCodeEqualsPlusOne(t *testing.T) {
	p := command.New(testCatalog(t))

	bare := p.ParseLine("ik")
	explicit := p.ParseLine("+1ik")

	require.Empty(t, bare.Errors)
	require.Empty(t, explicit.Errors)
	require.Len(t, bare.Commands, 1)
	require.Len(t, explicit.Commands, 1)
	assert.Equal(t, explicit.Commands[0], bare.Commands[0])

	cmd := bare.Commands[0]
	assert.Equal(t, command.KindItem, cmd.Kind)
	assert.Equal(t, command.OpAdd, cmd.Op)
	assert.Equal(t, "ik", cmd.Product.Code)
	assert.Equal(t, int64(1), cmd.Quantity)
}

func TestParseOperationsAndQuantities(t *testing.T) {
	p := command.New(testCatalog(t))

	tests := []struct {
		token string
		op    command.Op
		code  string
		qty   int64
	}{
		{"4ik", command.OpAdd, "ik", 4},
		{"+12iv", command.OpAdd, "iv", 12},
		{"-2iv", command.OpRemove, "iv", 2},
		{"-ik", command.OpRemove, "ik", 1},
		{"=3ik", command.OpSet, "ik", 3},
		{"=0iv", command.OpSet, "iv", 0},
	}

	for _, tt := range tests {
		result := p.ParseLine(tt.token)
		require.Empty(t, result.Errors, "token %q", tt.token)
		require.Len(t, result.Commands, 1, "token %q", tt.token)

		cmd := result.Commands[0]
		assert.Equal(t, command.KindItem, cmd.Kind, "token %q", tt.token)
		assert.Equal(t, tt.op, cmd.Op, "token %q", tt.token)
		assert.Equal(t, tt.code, cmd.Product.Code, "token %q", tt.token)
		assert.Equal(t, tt.qty, cmd.Quantity, "token %q", tt.token)
	}
}

func TestParseCashPseudoCodes(t *testing.T) {
	p := command.New(testCatalog(t))

	tests := []struct {
		token  string
		op     command.Op
		amount string
	}{
		{"25cash", command.OpAdd, "25"},
		{"cash", command.OpAdd, "1"},
		{"25eu", command.OpAdd, "25"}, // alias for cash
		{"-5cash", command.OpRemove, "5"},
		{"=0cash", command.OpSet, "0"},
		{"250c", command.OpAdd, "2.5"}, // cents granularity
		{"-99c", command.OpRemove, "0.99"},
	}

	for _, tt := range tests {
		result := p.ParseLine(tt.token)
		require.Empty(t, result.Errors, "token %q", tt.token)
		require.Len(t, result.Commands, 1, "token %q", tt.token)

		cmd := result.Commands[0]
		assert.Equal(t, command.KindCash, cmd.Kind, "token %q", tt.token)
		assert.Equal(t, tt.op, cmd.Op, "token %q", tt.token)
		assert.True(t, cmd.Amount.Equal(decimal.RequireFromString(tt.amount)),
			"token %q: amount %s != %s", tt.token, cmd.Amount, tt.amount)
	}
}

func TestParseSentinels(t *testing.T) {
	p := command.New(testCatalog(t))

	assert.Equal(t, command.ActionReset, p.ParseLine("rr").Action)
	assert.Equal(t, command.ActionSettle, p.ParseLine("nn").Action)
	assert.Equal(t, command.ActionQuit, p.ParseLine("qq").Action)

	// Surrounding whitespace and case do not defeat sentinel detection.
	assert.Equal(t, command.ActionSettle, p.ParseLine("  NN  ").Action)

	// A sentinel only counts as a whole line; next to other tokens it is an
	// ordinary (unknown) code.
	mixed := p.ParseLine("nn ik")
	assert.Equal(t, command.ActionCommands, mixed.Action)
	require.Len(t, mixed.Commands, 1)
	require.Len(t, mixed.Errors, 1)
}

func TestParseCollectsErrorsAndKeepsGoing(t *testing.T) {
	p := command.New(testCatalog(t))

	result := p.ParseLine("2ik xx 3!! iv")
	assert.Equal(t, command.ActionCommands, result.Action)

	// The two valid tokens still become commands.
	require.Len(t, result.Commands, 2)
	assert.Equal(t, "ik", result.Commands[0].Product.Code)
	assert.Equal(t, "iv", result.Commands[1].Product.Code)

	// The two bad tokens are reported, not raised.
	require.Len(t, result.Errors, 2)
	assert.Equal(t, "xx", result.Errors[0].Token)
	assert.Contains(t, result.Errors[0].Reason, "unknown product code")
	assert.Equal(t, "3!!", result.Errors[1].Token)
}

func TestParseLowercasesInput(t *testing.T) {
	p := command.New(testCatalog(t))

	result := p.ParseLine("4IK")
	require.Empty(t, result.Errors)
	require.Len(t, result.Commands, 1)
	assert.Equal(t, "ik", result.Commands[0].Product.Code)
}

func TestParseEmptyLine(t *testing.T) {
	p := command.New(testCatalog(t))

	result := p.ParseLine("   ")
	assert.Equal(t, command.ActionCommands, result.Action)
	assert.Empty(t, result.Commands)
	assert.Empty(t, result.Errors)
}
