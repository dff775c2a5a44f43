// =============================================================================
// MoPOS - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'run', 'report') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (mopos)
//   ├── runCmd (mopos run)
//   ├── reportCmd (mopos report)
//   └── versionCmd (mopos version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the till configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
// This is the entry point for the CLI application.
var rootCmd = &cobra.Command{
	// Use is the one-line usage message.
	Use: "mopos",

	// Short is a short description shown in the 'help' output.
	Short: "MoPOS - a single-till point-of-sale ledger",

	// Long is a longer description shown in the 'help <command>' output.
	Long: `MoPOS (My Own Point Of Sales) keeps track of cash and goods at a single
till. Operators type compact commands to build up a customer's basket and
settle it into two durable registers: a cash register (cash on hand, revenue,
transaction count) and a stock register (per-product quantities and revenue).

Example Usage:
  mopos run                      # Open the till with mopos.yaml
  mopos run --config ./till.yaml # Open the till with a custom configuration
  mopos report                   # Export the registers to an XLSX report`,

	// Run is the function that will be executed when the root command is
	// called without any subcommands. In this case, we just print the help
	// message.
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen once
// to the rootCmd.
func Execute() {
	// Execute the root command. If there's an error, print it and exit.
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags.
func init() {
	// --config flag: Allows the user to specify a custom configuration file.
	// Default is "mopos.yaml" in the current directory.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"mopos.yaml",
		"Path to the till configuration file (default is mopos.yaml)",
	)
}
