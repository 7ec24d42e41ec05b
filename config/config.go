// Package config loads the YAML configuration of the fcs command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/fcs/export"
	"github.com/arloliu/fcs/format"
	"github.com/arloliu/fcs/internal/logging"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the fcs command configuration
type Config struct {
	Export  Export  `yaml:"export"`
	Logging Logging `yaml:"logging"`
}

// Export controls CSV event table output
type Export struct {
	// Separator is a single character, or "tab".
	Separator string `yaml:"separator"`
	// Precision is the number of significant digits, 0 for the shortest
	// representation that round-trips.
	Precision   int    `yaml:"precision"`
	Compression string `yaml:"compression"`
	HeaderRow   bool   `yaml:"header_row"`
}

// Logging contains logging configuration
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Export: Export{
			Separator:   ",",
			Precision:   0,
			Compression: "none",
			HeaderRow:   true,
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig loads configuration from the specified path. Keys missing from
// the file keep their default values.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// SaveConfig writes the configuration to the specified path
func SaveConfig(config *Config, configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks every field, including that the export settings build a
// CSV writer.
func (c *Config) Validate() error {
	opts, err := c.Export.CSVOptions(nil)
	if err != nil {
		return fmt.Errorf("%w: export: %w", ErrInvalidConfig, err)
	}
	if _, err := export.NewCSVWriter(opts...); err != nil {
		return fmt.Errorf("%w: export: %w", ErrInvalidConfig, err)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging: %w", ErrInvalidConfig, err)
	}
	if _, err := logging.ParseFormat(c.Logging.Format); err != nil {
		return fmt.Errorf("%w: logging: %w", ErrInvalidConfig, err)
	}

	return nil
}

// CSVOptions converts the export section into writer options. names is
// used as the header row when HeaderRow is set.
func (e Export) CSVOptions(names []string) ([]export.CSVOption, error) {
	sep, err := e.separator()
	if err != nil {
		return nil, err
	}

	compression, err := format.ParseCompressionType(e.Compression)
	if err != nil {
		return nil, err
	}

	opts := []export.CSVOption{
		export.WithSeparator(sep),
		export.WithCompression(compression),
	}
	if e.Precision != 0 {
		opts = append(opts, export.WithPrecision(e.Precision))
	}
	if e.HeaderRow && len(names) > 0 {
		opts = append(opts, export.WithHeaderRow(names))
	}

	return opts, nil
}

func (e Export) separator() (byte, error) {
	switch e.Separator {
	case "":
		return export.DefaultSeparator, nil
	case "tab", `\t`, "\t":
		return '\t', nil
	}
	if len(e.Separator) != 1 {
		return 0, fmt.Errorf("%w: %q", export.ErrInvalidSeparator, e.Separator)
	}

	return e.Separator[0], nil
}

// LoggingLevel returns the parsed logging level.
func (c *Config) LoggingLevel() (logging.Level, error) {
	return logging.ParseLevel(c.Logging.Level)
}

// LoggingFormat returns the parsed logging format.
func (c *Config) LoggingFormat() (logging.Format, error) {
	return logging.ParseFormat(c.Logging.Format)
}
