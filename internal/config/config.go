// =============================================================================
// MoPOS - Configuration Module
// =============================================================================
//
// This module is responsible for loading the till configuration file. The
// configuration describes everything the till needs before it can serve the
// first customer:
//   1. The product list (code, name, unit price, print order)
//   2. The currency code and the initial cash float
//   3. The storage locations of the two register snapshots
//
// STRICT DECIMAL POLICY:
//   All money values in the configuration (product prices, initial cash) MUST
//   be YAML strings, never YAML floats. A binary float cannot represent a
//   price like 0.80 exactly, so a non-string money value is rejected at load
//   time, before any till state is touched.
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// TILL CONFIGURATION STRUCTURE
// =============================================================================

// TillConfig holds the full till configuration.
// This is loaded from the main mopos.yaml file.
type TillConfig struct {
	// =========================================================================
	// CURRENCY SETTINGS
	// =========================================================================

	// CurrencyCode is the currency label used on all displayed amounts.
	// Default: "EUR"
	CurrencyCode string `yaml:"currency_code"`

	// InitialCash is the cash float present in the drawer on first run,
	// before any snapshot exists. It must be a decimal string (e.g. "50.00");
	// a YAML float here is a fatal configuration error.
	InitialCash string `yaml:"initial_cash"`

	// =========================================================================
	// STORAGE SETTINGS
	// =========================================================================

	// CashRegisterFile is the storage location of the cash register snapshot.
	// Default: "./data/cash_register.yaml"
	CashRegisterFile string `yaml:"cash_register_file"`

	// StockRegisterFile is the storage location of the stock register snapshot.
	// Default: "./data/stock_register.yaml"
	StockRegisterFile string `yaml:"stock_register_file"`

	// ReportDir is the directory where XLSX sales reports are written.
	// Default: "./reports"
	ReportDir string `yaml:"report_dir"`

	// =========================================================================
	// PRODUCT LIST
	// =========================================================================

	// Products is the full product list sold at this till.
	// Codes must be unique; semantic validation happens in the catalog package.
	Products []ProductEntry `yaml:"products"`
}

// =============================================================================
// PRODUCT ENTRY STRUCTURE
// =============================================================================

// ProductEntry is one product as written in the configuration file.
type ProductEntry struct {
	// Code is the short lowercase alphabetic code typed by the operator.
	// Examples: "iv", "ik", "db"
	Code string `yaml:"code"`

	// Name is the human-readable product name used on displays and reports.
	Name string `yaml:"name"`

	// Price is the unit price as a decimal string (e.g. "1.10").
	// A YAML float here is a fatal configuration error.
	Price string `yaml:"price"`

	// PrintOrder controls the position of this product in sorted output.
	PrintOrder int `yaml:"print_order"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Load reads and parses the till configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file.
//
// RETURNS:
//   - A pointer to the TillConfig struct.
//   - An error if the file cannot be read or parsed.
//
// Note that yaml.v3 refuses to decode a YAML float into a string field, so
// the strict decimal policy for InitialCash and ProductEntry.Price is already
// enforced during unmarshalling; the catalog package then checks that the
// strings actually parse as decimals.
func Load(configPath string) (*TillConfig, error) {
	// Read the configuration file.
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse the YAML.
	var config TillConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply default values.
	applyDefaults(&config)

	// Validate the configuration.
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(config *TillConfig) {
	if config.CurrencyCode == "" {
		config.CurrencyCode = "EUR"
	}
	if config.InitialCash == "" {
		config.InitialCash = "0.00"
	}
	if config.CashRegisterFile == "" {
		config.CashRegisterFile = "./data/cash_register.yaml"
	}
	if config.StockRegisterFile == "" {
		config.StockRegisterFile = "./data/stock_register.yaml"
	}
	if config.ReportDir == "" {
		config.ReportDir = "./reports"
	}
}

// validate checks the structural parts of the configuration.
// Semantic product validation (duplicate codes, decimal prices) lives in the
// catalog package, next to the type it produces.
func validate(config *TillConfig) error {
	if len(config.Products) == 0 {
		return fmt.Errorf("no products defined")
	}

	for i, product := range config.Products {
		if product.Code == "" {
			return fmt.Errorf("product %d has no code", i+1)
		}
		if product.Name == "" {
			return fmt.Errorf("product %q has no name", product.Code)
		}
		if product.Price == "" {
			return fmt.Errorf("product %q has no price", product.Code)
		}
	}

	return nil
}
