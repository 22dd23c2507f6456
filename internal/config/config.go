package config

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsonstruct/internal/naming"
)

// Config represents the complete configuration for jsonstruct
type Config struct {
	Package    string           `yaml:"package"`
	Formatting FormattingConfig `yaml:"formatting"`
	Types      TypesConfig      `yaml:"types"`
	Naming     NamingConfig     `yaml:"naming"`
	Dev        DevConfig        `yaml:"dev"`
}

// FormattingConfig controls code formatting options
type FormattingConfig struct {
	Enabled bool `yaml:"enabled"`
}

// TypesConfig controls the Go types used for JSON scalars
type TypesConfig struct {
	ForceInt64 bool `yaml:"force_int64"`
}

// NamingConfig controls field naming
type NamingConfig struct {
	Style         naming.Style      `yaml:"style"`
	FieldMappings map[string]string `yaml:"field_mappings"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// configNames are searched, in order, in every directory FindConfigFile visits.
var configNames = []string{".jsonstruct.yml", ".jsonstruct.yaml", "jsonstruct.yml", "jsonstruct.yaml"}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Formatting: FormattingConfig{
			Enabled: false,
		},
		Types: TypesConfig{
			ForceInt64: false,
		},
		Naming: NamingConfig{
			Style:         naming.StyleInitialisms,
			FieldMappings: make(map[string]string),
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that YAML decoding cannot.
func (c *Config) Validate() error {
	if !c.Naming.Style.Valid() {
		return errors.Newf("invalid naming style '%s': expected '%s' or '%s'", c.Naming.Style, naming.StyleInitialisms, naming.StyleStrcase)
	}
	return nil
}

// FindConfigFile searches for a config file in dir and its parents
func FindConfigFile(dir string) string {
	currentDir := dir
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Overrides holds values given on the command line. Zero values mean "not
// given" and leave the file setting in place.
type Overrides struct {
	Package    string
	Format     bool
	ForceInt64 bool
	Debug      bool
}

// LoadConfigWithCLI loads the config file at configPath, or discovers one
// starting from the working directory when configPath is empty, and applies
// CLI overrides on top.
func LoadConfigWithCLI(configPath string, cli Overrides) (*Config, error) {
	if configPath == "" {
		if wd, err := os.Getwd(); err == nil {
			configPath = FindConfigFile(wd)
		}
	}

	cfg := NewConfig()
	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cli.Package != "" {
		cfg.Package = cli.Package
	}
	// Boolean flags can only switch features on.
	if cli.Format {
		cfg.Formatting.Enabled = true
	}
	if cli.ForceInt64 {
		cfg.Types.ForceInt64 = true
	}
	if cli.Debug {
		cfg.Dev.Debug = true
	}

	return cfg, nil
}
