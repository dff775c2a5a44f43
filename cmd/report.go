// =============================================================================
// MoPOS - Report Command
// =============================================================================
//
// This file defines the 'report' command, which exports the current register
// snapshots into an XLSX workbook for the bookkeeping side of the shop.
//
// COMMAND USAGE:
//   mopos report [flags]
//
// FLAGS:
//   --out : Directory to write the report into (overrides report_dir from
//           the configuration file)
//
// The command is read-only: it loads the snapshots exactly as 'run' does and
// never writes them back.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/mopos/internal/catalog"
	"github.com/ginjaninja78/mopos/internal/config"
	"github.com/ginjaninja78/mopos/internal/register"
	"github.com/ginjaninja78/mopos/internal/report"
)

// outDir overrides the configured report directory when set.
var outDir string

// reportCmd represents the 'report' command.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export the cash and stock registers to an XLSX workbook",
	Long: `The report command loads the till configuration and the two register
snapshots, then writes a sales report workbook with a cash register summary
sheet and a per-product stock sales sheet.

Repeated exports never overwrite each other: every report gets a unique
file name.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport()
	},
}

// init registers the report command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(reportCmd)

	// --out flag: Directory to write the report into.
	reportCmd.Flags().StringVar(
		&outDir,
		"out",
		"",
		"Directory to write the report into (default is report_dir from the config)",
	)
}

// runReport loads the registers read-only and writes one workbook.
func runReport() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load till config: %w", err)
	}

	cat, err := catalog.Load(cfg)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	initialCash, err := decimal.NewFromString(cfg.InitialCash)
	if err != nil {
		return fmt.Errorf("initial cash %q is not a decimal: %w", cfg.InitialCash, err)
	}

	// First-run defaults produce an empty but valid report.
	cashReg, _, warn := register.OpenCash(
		cfg.CashRegisterFile,
		register.NewCash(initialCash, cfg.CurrencyCode, cfg.CashRegisterFile))
	if warn != nil {
		return fmt.Errorf("cash register snapshot is unreadable: %w", warn)
	}

	stockReg, _, warn := register.OpenStock(
		cfg.StockRegisterFile,
		register.NewStock(cfg.StockRegisterFile))
	if warn != nil {
		return fmt.Errorf("stock register snapshot is unreadable: %w", warn)
	}

	dir := cfg.ReportDir
	if outDir != "" {
		dir = outDir
	}

	path, err := report.Write(dir, cashReg, stockReg, cat)
	if err != nil {
		return err
	}

	fmt.Printf("Report written to %s\n", path)
	return nil
}
