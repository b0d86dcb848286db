package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "taxdesk.yaml"

// Config represents the top-level taxdesk.yaml configuration.
type Config struct {
	Tax     TaxConfig     `yaml:"tax"`
	Display DisplayConfig `yaml:"display"`
	Log     LogConfig     `yaml:"log"`
}

// TaxConfig holds the defaults for tax calculation.
type TaxConfig struct {
	DefaultRate string `yaml:"default_rate"` // percent, e.g. "15"
	Currency    string `yaml:"currency"`     // ISO 4217 code
}

// DisplayConfig controls report output.
type DisplayConfig struct {
	Pretty bool   `yaml:"pretty"`
	Style  string `yaml:"style"` // glamour style: auto, dark, light, notty
}

// LogConfig controls the logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// Load reads a taxdesk.yaml file from disk. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Tax.Currency = strings.ToUpper(strings.TrimSpace(cfg.Tax.Currency))
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks values that cannot be caught by YAML decoding.
func (c *Config) Validate() error {
	if c.Tax.DefaultRate != "" {
		if _, err := decimal.NewFromString(strings.TrimSpace(c.Tax.DefaultRate)); err != nil {
			return fmt.Errorf("tax.default_rate %q is not a number", c.Tax.DefaultRate)
		}
	}
	if c.Tax.Currency == "" {
		return errors.New("tax.currency must be set")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format %q must be text or json", c.Log.Format)
	}
	return nil
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Tax: TaxConfig{
			DefaultRate: "15",
			Currency:    "INR",
		},
		Display: DisplayConfig{
			Pretty: false,
			Style:  "auto",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
