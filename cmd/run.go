// =============================================================================
// MoPOS - Run Command
// =============================================================================
//
// This file defines the 'run' command, which opens the till: it loads the
// configuration and the register snapshots and then enters the interactive
// command loop.
//
// COMMAND LOOP:
//   The loop is single-threaded and synchronous: it blocks on a line of
//   operator input, fully processes it (parse -> mutate basket -> optionally
//   settle), renders the resulting state, and only then reads the next line.
//   There is no background work and no cancellation beyond the 'qq' sentinel.
//
// INPUT SURFACE (per line):
//   rr                   reset the basket
//   nn                   settle and move to the next customer
//   qq                   quit after this line
//   <tokens...>          item/cash adjustments, e.g. "4ik -1iv 25cash"
//
// ERROR POLICY:
//   Configuration errors abort startup. Operator input errors are printed
//   and the loop continues. A failed snapshot write during settlement is
//   fatal: memory and disk have diverged and the till must not keep selling.
//
// =============================================================================

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/mopos/internal/basket"
	"github.com/ginjaninja78/mopos/internal/catalog"
	"github.com/ginjaninja78/mopos/internal/command"
	"github.com/ginjaninja78/mopos/internal/config"
	"github.com/ginjaninja78/mopos/internal/display"
	"github.com/ginjaninja78/mopos/internal/register"
	"github.com/ginjaninja78/mopos/internal/settle"
)

// =============================================================================
// RUN COMMAND DEFINITION
// =============================================================================

// runCmd represents the 'run' command.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the till and start the interactive command loop",
	Long: `The run command loads the till configuration, restores the cash and stock
register snapshots (or starts fresh on first run), and reads operator
commands line by line until 'qq'.

Tokens follow the grammar [+|-|=][number][code]:
  ik        add one 'ik'
  4ik       add four 'ik'
  -2iv      remove two 'iv' (going below zero accepts returned goods)
  =3db      make the 'db' line exactly three
  25cash    record 25.00 tendered ('eu' works too)
  250c      record 2.50 tendered (cents granularity)`,

	// RunE is like Run but returns an error. This is preferred for commands
	// that can fail, as it allows Cobra to handle the error gracefully.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTill(os.Stdin, os.Stdout)
	},
}

// init registers the run command with the root command.
func init() {
	rootCmd.AddCommand(runCmd)
}

// =============================================================================
// TILL STARTUP
// =============================================================================

// runTill loads all till state and drives the command loop until quit or
// end of input.
func runTill(in io.Reader, out io.Writer) error {
	// =========================================================================
	// STEP 1: LOAD CONFIGURATION AND CATALOG
	// =========================================================================
	// All configuration errors are fatal and happen before any register or
	// basket state exists.

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load till config: %w", err)
	}
	fmt.Fprintf(out, "Config file '%s' interpreted.\n", cfgFile)

	cat, err := catalog.Load(cfg)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	initialCash, err := decimal.NewFromString(cfg.InitialCash)
	if err != nil {
		return fmt.Errorf("initial cash %q is not a decimal: %w", cfg.InitialCash, err)
	}

	// =========================================================================
	// STEP 2: RESTORE REGISTER SNAPSHOTS
	// =========================================================================
	// A missing snapshot is the normal first-run path; an unreadable one is
	// reported and the register starts from its initial state.

	cashReg, restored, warn := register.OpenCash(
		cfg.CashRegisterFile,
		register.NewCash(initialCash, cfg.CurrencyCode, cfg.CashRegisterFile))
	reportRestore(out, "cash register", cfg.CashRegisterFile, restored, warn)

	stockReg, restored, warn := register.OpenStock(
		cfg.StockRegisterFile,
		register.NewStock(cfg.StockRegisterFile))
	reportRestore(out, "stock register", cfg.StockRegisterFile, restored, warn)

	// =========================================================================
	// STEP 3: COMMAND LOOP
	// =========================================================================

	parser := command.New(cat)
	b := basket.New(cfg.CurrencyCode)
	prompt := buildPrompt(cat)
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprintf(out, "\n%s", prompt)
		if !scanner.Scan() {
			break // end of input behaves like quit
		}

		result := parser.ParseLine(scanner.Text())
		quit, err := dispatch(out, result, b, cashReg, stockReg)
		if err != nil {
			return err
		}

		// The registers are only shown between customers, when the basket
		// holds no items.
		if b.ItemCount() == 0 {
			fmt.Fprintln(out)
			display.CashRegister(out, cashReg)
			display.StockRegister(out, stockReg, cat, cfg.CurrencyCode)
		}
		display.Basket(out, b)

		if quit {
			return nil
		}
	}

	return scanner.Err()
}

// reportRestore prints the startup status of one register.
func reportRestore(out io.Writer, name, path string, restored bool, warn error) {
	switch {
	case warn != nil:
		fmt.Fprintf(out, "WARNING: could not restore %s, starting fresh: %v\n", name, warn)
	case restored:
		fmt.Fprintf(out, "Data imported from the %s file '%s'.\n", name, path)
	default:
		fmt.Fprintf(out, "The %s file '%s' does not yet exist. No data to import.\n", name, path)
	}
}

// buildPrompt lists the product codes in print order so the operator can see
// what is sellable.
func buildPrompt(cat *catalog.Catalog) string {
	codes := make([]string, 0, cat.Len())
	for _, product := range cat.Products() {
		codes = append(codes, product.Code)
	}
	return fmt.Sprintf("[|+|-|=] [nummer] [%s|cash|c] --> ", strings.Join(codes, "|"))
}

// =============================================================================
// COMMAND DISPATCH
// =============================================================================

// dispatch applies one parsed line to the till state and prints everything
// the operator must see (parse errors, validation errors, settlement
// receipts). It returns quit=true when the loop should end, and a non-nil
// error only for a failed settlement persist, which is fatal: memory and
// disk have diverged and the till must not keep selling.
func dispatch(out io.Writer, result command.Result, b *basket.Basket, cashReg *register.Cash, stockReg *register.Stock) (quit bool, err error) {
	switch result.Action {
	case command.ActionQuit:
		fmt.Fprintln(out, "QUIT")
		return true, nil

	case command.ActionReset:
		fmt.Fprintln(out, "RESET")
		b.Reset()
		return false, nil

	case command.ActionSettle:
		receipt, err := settle.Close(b, cashReg, stockReg)
		if err != nil {
			return false, err
		}
		if receipt.Settled {
			fmt.Fprintf(out, "Next customer! Receipt %s: %s, %d line(s).\n",
				receipt.ReceiptID, display.Money(cashReg.CurrencyCode(), receipt.Amount), receipt.Lines)
		} else {
			fmt.Fprintln(out, "Next customer!")
		}
		return false, nil
	}

	// Ordinary tokens: apply the valid commands, then report the collected
	// parse and validation errors together.
	for _, cmd := range result.Commands {
		if err := apply(b, cmd); err != nil {
			fmt.Fprintf(out, "FOUT: %v\n", err)
		}
	}
	for _, perr := range result.Errors {
		fmt.Fprintf(out, "FOUT: %v\n", perr)
	}
	return false, nil
}

// apply routes one command to the matching basket operation.
func apply(b *basket.Basket, cmd command.Command) error {
	switch cmd.Kind {
	case command.KindItem:
		switch cmd.Op {
		case command.OpAdd:
			return b.AddItem(cmd.Product, cmd.Quantity)
		case command.OpRemove:
			return b.RemoveItem(cmd.Product, cmd.Quantity)
		case command.OpSet:
			return b.SetItem(cmd.Product, cmd.Quantity)
		}
	case command.KindCash:
		switch cmd.Op {
		case command.OpAdd:
			return b.AddCash(cmd.Amount)
		case command.OpRemove:
			return b.RemoveCash(cmd.Amount)
		case command.OpSet:
			return b.SetCash(cmd.Amount)
		}
	}
	return fmt.Errorf("unhandled command %v/%v", cmd.Kind, cmd.Op)
}
