// =============================================================================
// MoPOS - Command Types
// =============================================================================
//
// This file contains the typed commands produced by the parser and consumed
// by the till loop. A command is ephemeral: it is produced from one input
// token, applied to the basket, and discarded.
//
// =============================================================================

package command

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/mopos/internal/catalog"
)

// =============================================================================
// OPERATIONS
// =============================================================================

// Op is the adjustment operation carried by a command.
type Op int

const (
	// OpAdd adds the quantity/amount to the current value ("+", the default).
	OpAdd Op = iota

	// OpRemove subtracts the quantity/amount; removing more items than the
	// basket holds is accepted as returned goods ("-").
	OpRemove

	// OpSet replaces the current quantity/amount outright ("=").
	OpSet
)

// String returns the operator character for an Op.
func (o Op) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpRemove:
		return "-"
	case OpSet:
		return "="
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// =============================================================================
// LINE ACTIONS
// =============================================================================

// Action classifies a whole input line. Sentinel lines bypass per-token
// parsing entirely.
type Action int

const (
	// ActionCommands means the line carried ordinary item/cash tokens.
	ActionCommands Action = iota

	// ActionReset starts a fresh basket ("rr").
	ActionReset

	// ActionSettle commits the basket into the registers ("nn").
	ActionSettle

	// ActionQuit ends the command loop ("qq").
	ActionQuit
)

// =============================================================================
// COMMANDS
// =============================================================================

// Kind distinguishes item adjustments from cash adjustments.
type Kind int

const (
	// KindItem adjusts a product line in the basket.
	KindItem Kind = iota

	// KindCash adjusts the cash tendered by the customer.
	KindCash
)

// Command is one parsed instruction against the basket.
type Command struct {
	// Kind selects which fields below are meaningful.
	Kind Kind

	// Op is the adjustment operation.
	Op Op

	// Product is the catalog product for KindItem commands.
	Product *catalog.Product

	// Quantity is the item quantity for KindItem commands. Always >= 0 as
	// parsed; the sign of the adjustment is carried by Op.
	Quantity int64

	// Amount is the cash amount for KindCash commands.
	Amount decimal.Decimal
}

// =============================================================================
// PARSE ERRORS
// =============================================================================

// ParseError reports one token that could not be turned into a command.
// The rest of the line is unaffected: the parser is deliberately permissive
// so a single mistyped token does not abort the whole line.
type ParseError struct {
	// Token is the offending input token.
	Token string

	// Reason describes why the token was rejected.
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("token %q: %s", e.Token, e.Reason)
}

// =============================================================================
// PARSE RESULT
// =============================================================================

// Result is everything the parser extracted from one input line: the line
// action, the valid commands, and the collected per-token errors. Commands
// and errors coexist so the caller can apply the valid part of a line and
// report the invalid part together.
type Result struct {
	// Action is the whole-line classification. Commands and Errors are only
	// populated for ActionCommands.
	Action Action

	// Commands holds the successfully parsed commands, in token order.
	Commands []Command

	// Errors holds the per-token parse errors, in token order.
	Errors []*ParseError
}
