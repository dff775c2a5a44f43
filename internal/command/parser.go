// =============================================================================
// MoPOS - Command Parser Module
// =============================================================================
//
// This module turns a line of operator input into typed commands. The input
// surface is optimized for speed at the till: an operator types compact
// tokens like "ik", "4ik", "-2iv" or "=3db" and the parser expands them into
// basket adjustments.
//
// GRAMMAR (per token, after lowercasing and splitting on whitespace):
//
//   ^([-+=]?)(\d*)([a-z]+)$
//    |        |    |
//    |        |    +-- product code, or a cash pseudo-code
//    |        +------- unsigned quantity, default 1
//    +---------------- operation, default "+"
//
// CASH PSEUDO-CODES:
//   "cash" / "eu"  : the digits are whole currency units  ("25cash" = 25.00)
//   "c"            : the digits are cents                 ("250c"   =  2.50)
//
// SENTINELS (whole line, checked before token parsing):
//   "rr" = reset basket, "nn" = settle and next customer, "qq" = quit
//
// ERROR HANDLING:
//   Tokens that do not match the grammar or name an unknown product code are
//   collected as ParseErrors next to the valid commands of the same line.
//   Parsing never fails as a whole; a mistyped token costs that token only.
//
// =============================================================================

package command

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/mopos/internal/catalog"
)

// =============================================================================
// TOKEN GRAMMAR
// =============================================================================

// tokenPattern matches one operator+quantity+code token.
var tokenPattern = regexp.MustCompile(`^([-+=]?)(\d*)([a-z]+)$`)

// Sentinel lines understood by the parser.
const (
	sentinelReset  = "rr"
	sentinelSettle = "nn"
	sentinelQuit   = "qq"
)

// centsPerUnit converts the cents pseudo-code digits into currency units.
var centsPerUnit = decimal.NewFromInt(100)

// =============================================================================
// PARSER
// =============================================================================

// Parser parses operator input lines against a product catalog.
type Parser struct {
	catalog *catalog.Catalog
}

// New creates a parser bound to the given catalog.
func New(cat *catalog.Catalog) *Parser {
	return &Parser{catalog: cat}
}

// ParseLine parses one line of operator input.
//
// PARAMETERS:
//   - line: The raw input line (any case, any surrounding whitespace).
//
// RETURNS:
//   - A Result with the line action, the valid commands and the collected
//     per-token errors. ParseLine itself never fails.
//
// Sentinel detection takes precedence over token parsing: a line consisting
// of exactly one sentinel never reaches the grammar.
func (p *Parser) ParseLine(line string) Result {
	tokens := strings.Fields(strings.ToLower(line))

	// Sentinels bypass the grammar entirely.
	if len(tokens) == 1 {
		switch tokens[0] {
		case sentinelReset:
			return Result{Action: ActionReset}
		case sentinelSettle:
			return Result{Action: ActionSettle}
		case sentinelQuit:
			return Result{Action: ActionQuit}
		}
	}

	result := Result{Action: ActionCommands}

	for _, token := range tokens {
		cmd, perr := p.parseToken(token)
		if perr != nil {
			result.Errors = append(result.Errors, perr)
			continue
		}
		result.Commands = append(result.Commands, cmd)
	}

	return result
}

// parseToken parses a single token into a command.
func (p *Parser) parseToken(token string) (Command, *ParseError) {
	match := tokenPattern.FindStringSubmatch(token)
	if match == nil {
		return Command{}, &ParseError{Token: token, Reason: "does not match [+|-|=][number][code]"}
	}

	opText, digits, code := match[1], match[2], match[3]

	// Defaults: omitted operation means add, omitted digits mean 1.
	op := OpAdd
	switch opText {
	case "-":
		op = OpRemove
	case "=":
		op = OpSet
	}

	quantity := int64(1)
	if digits != "" {
		n, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			// Only reachable with absurdly long digit runs.
			return Command{}, &ParseError{Token: token, Reason: "quantity out of range"}
		}
		quantity = n
	}

	// Cash pseudo-codes first; "eu" is an alias kept from the original till.
	switch code {
	case "cash", "eu":
		return Command{
			Kind:   KindCash,
			Op:     op,
			Amount: decimal.NewFromInt(quantity),
		}, nil
	case "c":
		return Command{
			Kind:   KindCash,
			Op:     op,
			Amount: decimal.NewFromInt(quantity).Div(centsPerUnit),
		}, nil
	}

	product, ok := p.catalog.Lookup(code)
	if !ok {
		return Command{}, &ParseError{Token: token, Reason: "unknown product code '" + code + "'"}
	}

	return Command{
		Kind:     KindItem,
		Op:       op,
		Product:  product,
		Quantity: quantity,
	}, nil
}
