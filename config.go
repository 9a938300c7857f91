package finlit

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // the configured timezone must resolve on hosts without zoneinfo

	"github.com/francocalvo/finlit/date"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of the dashboard.
type Config struct {
	Ledger   string `yaml:"ledger,omitempty" json:"ledger,omitempty"`
	Currency string `yaml:"currency" json:"currency"` // reporting currency
	// Currencies lists additional currencies shown next to the reporting one
	// in listings, like the local currency.
	Currencies []string `yaml:"currencies,omitempty" json:"currencies,omitempty"`
	Timezone   string   `yaml:"timezone" json:"timezone"`

	InvestmentPrefix string `yaml:"investment_prefix" json:"investment_prefix"`
	IncomeAccounts   string `yaml:"income_accounts,omitempty" json:"income_accounts,omitempty"`   // regexp
	ExpenseAccounts  string `yaml:"expense_accounts,omitempty" json:"expense_accounts,omitempty"` // regexp

	Ratios       RatioConfig      `yaml:"ratios" json:"ratios"`
	Trajectory   TrajectoryParams `yaml:"trajectory" json:"trajectory"`
	PriceSources []PriceSource    `yaml:"price_sources,omitempty" json:"price_sources,omitempty"`
}

// RatioConfig holds the expense ratio exclusion rules.
type RatioConfig struct {
	NetIncomeOrigins      []string `yaml:"net_income_origins" json:"net_income_origins"`
	ExcludedSubcategories []string `yaml:"excluded_subcategories" json:"excluded_subcategories"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Currency:         "USD",
		Timezone:         "America/Argentina/Buenos_Aires",
		InvestmentPrefix: "Assets:Inversiones",
		Ratios: RatioConfig{
			NetIncomeOrigins:      []string{"Job"},
			ExcludedSubcategories: []string{"Comisiones"},
		},
		Trajectory: DefaultTrajectoryParams(),
	}
}

// LoadConfig reads a YAML or JSON configuration file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := DefaultConfig()
	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg = DefaultConfig()
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", errors.Join(err, jerr))
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration, as YAML unless path ends in .json.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error
	if strings.HasSuffix(path, ".json") {
		data, err = json.MarshalIndent(c, "", "  ")
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	var errs []error
	if c.Currency == "" {
		errs = append(errs, fmt.Errorf("currency is required"))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := c.Trajectory.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("trajectory: %w", err))
	}
	for i, s := range c.PriceSources {
		if err := s.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("price_sources[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Today returns the current date in the configured timezone.
func (c *Config) Today() date.Date {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return date.Today()
	}
	return date.New(time.Now().In(loc).Date())
}

// ListingCurrencies returns the reporting currency followed by the
// additional ones.
func (c *Config) ListingCurrencies() []string {
	out := []string{c.Currency}
	for _, cur := range c.Currencies {
		if cur != c.Currency {
			out = append(out, cur)
		}
	}
	return out
}

// RatioOptions returns the expense ratio options of the configuration.
func (c *Config) RatioOptions() RatioOptions {
	return RatioOptions{
		Currency:              c.Currency,
		NetIncomeOrigins:      c.Ratios.NetIncomeOrigins,
		ExcludedSubcategories: c.Ratios.ExcludedSubcategories,
	}
}

// MetricsOptions returns the trailing metrics options as of today.
func (c *Config) MetricsOptions(today date.Date) MetricsOptions {
	return MetricsOptions{
		Until:           today.StartOf(date.Monthly),
		Months:          c.Trajectory.TrailingMonths,
		Currency:        c.Currency,
		IncomeAccounts:  c.IncomeAccounts,
		ExpenseAccounts: c.ExpenseAccounts,
	}
}
