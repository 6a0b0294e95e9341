// =============================================================================
// Sales Order Splitter - Configuration Module
// =============================================================================
//
// This module is responsible for loading the optional configuration file.
// Without a file every setting takes its default, and the defaults reproduce
// the standard behavior of the splitter:
//   - Orders_<date> directory next to the input
//   - one "Order" sheet per order workbook
//   - TOTAL PRICE inserted at column index 7
//   - upstream point-of-sale header names
//
// CONFIGURATION FILE (YAML):
//   orders_dir_prefix: "Orders_"
//   sheet_name: "Order"
//   first_order_only: false
//   total_price_index: 7
//   grand_total_label: "GRAND TOTAL:"
//   currency_symbol: "$"
//   log_level: "info"
//   log_pretty: true
//   csv_settings:
//     delimiter: ","
//   xlsx_settings:
//     input_sheet: ""
//   columns:
//     order_id: "ORDER ID"
//     ...
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultTotalPriceIndex is the table position of the derived TOTAL PRICE
// column, counted before the address columns are dropped.
const DefaultTotalPriceIndex = 7

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OrdersDirPrefix is prepended to the ISO date to name the output
	// directory. Default: "Orders_"
	OrdersDirPrefix string `yaml:"orders_dir_prefix"`

	// SheetName is the name of the single sheet in every order workbook.
	// Default: "Order"
	SheetName string `yaml:"sheet_name"`

	// FirstOrderOnly stops after the first order has been exported.
	// Default: false (one workbook per order)
	FirstOrderOnly bool `yaml:"first_order_only"`

	// =========================================================================
	// TRANSFORM SETTINGS
	// =========================================================================

	// TotalPriceIndex is the 0-based column position at which TOTAL PRICE is
	// inserted. Values past the end of the table append the column.
	// Default: 7
	TotalPriceIndex *int `yaml:"total_price_index"`

	// GrandTotalLabel is written in the item price cell of the summary row.
	// Default: "GRAND TOTAL:"
	GrandTotalLabel string `yaml:"grand_total_label"`

	// CurrencySymbol prefixes every formatted amount.
	// Default: "$"
	CurrencySymbol string `yaml:"currency_symbol"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogPretty selects human-readable console logs over JSON lines.
	// Default: true
	LogPretty *bool `yaml:"log_pretty"`

	// =========================================================================
	// INPUT SETTINGS
	// =========================================================================

	CSVSettings  CSVSettings  `yaml:"csv_settings"`
	XLSXSettings XLSXSettings `yaml:"xlsx_settings"`
	Columns      ColumnNames  `yaml:"columns"`
}

// CSVSettings contains settings for parsing CSV exports.
type CSVSettings struct {
	// Delimiter is the character used to separate fields.
	// Accepts a literal character or "tab", "pipe", "semicolon".
	// Default: ","
	Delimiter string `yaml:"delimiter"`
}

// XLSXSettings contains settings for reading workbook exports.
type XLSXSettings struct {
	// InputSheet is the sheet holding the sales table.
	// Default: "" (first sheet)
	InputSheet string `yaml:"input_sheet"`
}

// ColumnNames holds the header text of every column the transform reads or
// writes. Lookups ignore case and surrounding whitespace.
type ColumnNames struct {
	OrderID      string `yaml:"order_id"`
	ItemNumber   string `yaml:"item_number"`
	ItemQuantity string `yaml:"item_quantity"`
	ItemPrice    string `yaml:"item_price"`
	CustomerName string `yaml:"customer_name"`
	Address      string `yaml:"address"`
	City         string `yaml:"city"`
	PostalCode   string `yaml:"postal_code"`
	Country      string `yaml:"country"`

	// TotalPrice is the header of the derived column.
	TotalPrice string `yaml:"total_price"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads the configuration from a YAML file. An empty path returns the
// defaults.
//
// PARAMETERS:
//   - configPath: The path to the configuration file, or "".
//
// RETURNS:
//   - A pointer to the Config struct.
//   - An error if the file cannot be read, parsed or validated.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.OrdersDirPrefix == "" {
		cfg.OrdersDirPrefix = "Orders_"
	}
	if cfg.SheetName == "" {
		cfg.SheetName = "Order"
	}
	if cfg.TotalPriceIndex == nil {
		idx := DefaultTotalPriceIndex
		cfg.TotalPriceIndex = &idx
	}
	if cfg.GrandTotalLabel == "" {
		cfg.GrandTotalLabel = "GRAND TOTAL:"
	}
	if cfg.CurrencySymbol == "" {
		cfg.CurrencySymbol = "$"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogPretty == nil {
		pretty := true
		cfg.LogPretty = &pretty
	}
	if cfg.CSVSettings.Delimiter == "" {
		cfg.CSVSettings.Delimiter = ","
	}

	cols := &cfg.Columns
	setDefault(&cols.OrderID, "ORDER ID")
	setDefault(&cols.ItemNumber, "ITEM NUMBER")
	setDefault(&cols.ItemQuantity, "ITEM QUANTITY")
	setDefault(&cols.ItemPrice, "ITEM PRICE")
	setDefault(&cols.CustomerName, "CUSTOMER NAME")
	setDefault(&cols.Address, "ADDRESS")
	setDefault(&cols.City, "CITY")
	setDefault(&cols.PostalCode, "POSTAL CODE")
	setDefault(&cols.Country, "COUNTRY")
	setDefault(&cols.TotalPrice, "TOTAL PRICE")
}

func setDefault(field *string, value string) {
	if strings.TrimSpace(*field) == "" {
		*field = value
	}
}

// validate checks the values that cannot be defaulted away.
func validate(cfg *Config) error {
	if *cfg.TotalPriceIndex < 0 {
		return fmt.Errorf("total_price_index must not be negative, got %d", *cfg.TotalPriceIndex)
	}

	// Excel limits sheet names to 31 characters and forbids a handful of
	// characters.
	if len([]rune(cfg.SheetName)) > 31 {
		return fmt.Errorf("sheet_name %q exceeds 31 characters", cfg.SheetName)
	}
	if strings.ContainsAny(cfg.SheetName, `:\/?*[]`) {
		return fmt.Errorf("sheet_name %q contains a character Excel does not allow", cfg.SheetName)
	}

	if strings.ContainsAny(cfg.OrdersDirPrefix, `/\`) {
		return fmt.Errorf("orders_dir_prefix %q must not contain path separators", cfg.OrdersDirPrefix)
	}

	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q is not one of debug, info, warn, error", cfg.LogLevel)
	}

	seen := make(map[string]string)
	for field, header := range cfg.Columns.byField() {
		key := strings.ToLower(strings.TrimSpace(header))
		if other, dup := seen[key]; dup {
			return fmt.Errorf("columns.%s and columns.%s share the header %q", other, field, header)
		}
		seen[key] = field
	}

	return nil
}

func (c ColumnNames) byField() map[string]string {
	return map[string]string{
		"order_id":      c.OrderID,
		"item_number":   c.ItemNumber,
		"item_quantity": c.ItemQuantity,
		"item_price":    c.ItemPrice,
		"customer_name": c.CustomerName,
		"address":       c.Address,
		"city":          c.City,
		"postal_code":   c.PostalCode,
		"country":       c.Country,
		"total_price":   c.TotalPrice,
	}
}

// Index returns the configured TOTAL PRICE position.
func (cfg *Config) Index() int {
	if cfg.TotalPriceIndex == nil {
		return DefaultTotalPriceIndex
	}
	return *cfg.TotalPriceIndex
}

// Pretty reports whether console logging is enabled.
func (cfg *Config) Pretty() bool {
	return cfg.LogPretty == nil || *cfg.LogPretty
}
