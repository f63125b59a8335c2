// Package config loads solver settings and matrix files for the command-line
// tool. Files are YAML or TOML, chosen by extension, and FIXED_* environment
// variables override file values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/govalues/fixed"
	"github.com/govalues/fixed/newton"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

// Policy names accepted in Config.Policy.
const (
	PolicyString    = "string"
	PolicyTolerance = "tolerance"
)

// Config holds the settings of a solver run.
type Config struct {
	Precision     int    `yaml:"precision" toml:"precision"`
	MaxIterations int    `yaml:"max_iterations" toml:"max_iterations"`
	Policy        string `yaml:"policy" toml:"policy"`
	Tolerance     string `yaml:"tolerance" toml:"tolerance"`
	Parallel      bool   `yaml:"parallel" toml:"parallel"`
	LogLevel      string `yaml:"log_level" toml:"log_level"`
	Plot          string `yaml:"plot" toml:"plot"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		Precision:     fixed.DefaultPrec,
		MaxIterations: newton.DefaultMaxIterations,
		Policy:        PolicyString,
		LogLevel:      "info",
	}
}

// Load reads a config file on top of [Default] and applies environment
// overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := decodeFile(path, cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, v)
	case ".toml":
		err = toml.Unmarshal(data, v)
	default:
		return fmt.Errorf("%s: unsupported extension %q: %w", path, ext, ErrInvalidConfig)
	}
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("FIXED_PRECISION"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FIXED_PRECISION: %w", err)
		}
		c.Precision = n
	}
	if v := os.Getenv("FIXED_MAX_ITERATIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FIXED_MAX_ITERATIONS: %w", err)
		}
		c.MaxIterations = n
	}
	if v := os.Getenv("FIXED_POLICY"); v != "" {
		c.Policy = v
	}
	if v := os.Getenv("FIXED_TOLERANCE"); v != "" {
		c.Tolerance = v
	}
	if v := os.Getenv("FIXED_PARALLEL"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("FIXED_PARALLEL: %w", err)
		}
		c.Parallel = b
	}
	if v := os.Getenv("FIXED_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	return nil
}

// Validate checks ranges and names.
func (c *Config) Validate() error {
	if c.Precision < 0 {
		return fmt.Errorf("precision %v: %w", c.Precision, ErrInvalidConfig)
	}
	if c.MaxIterations < 1 {
		return fmt.Errorf("max_iterations %v: %w", c.MaxIterations, ErrInvalidConfig)
	}
	switch c.Policy {
	case PolicyString:
	case PolicyTolerance:
		if _, err := fixed.ParseExact(c.Tolerance, c.Precision); err != nil || c.Tolerance == "" {
			return fmt.Errorf("tolerance %q: %w", c.Tolerance, ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("policy %q: %w", c.Policy, ErrInvalidConfig)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level %q: %w", c.LogLevel, ErrInvalidConfig)
	}
	return nil
}

// Level returns the parsed log level, info if it cannot be parsed.
func (c *Config) Level() zapcore.Level {
	l, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return l
}

// SolverOptions translates the settings into solver options.
func (c *Config) SolverOptions() ([]newton.Option, error) {
	opts := []newton.Option{
		newton.WithMaxIterations(c.MaxIterations),
		newton.WithParallel(c.Parallel),
	}
	if c.Policy == PolicyTolerance {
		tol, err := fixed.ParseExact(c.Tolerance, c.Precision)
		if err != nil {
			return nil, fmt.Errorf("tolerance: %w", err)
		}
		opts = append(opts, newton.WithPolicy(newton.TolerancePolicy{Tol: tol}))
	}
	return opts, nil
}

// Matrix is the content of a matrix file.
type Matrix struct {
	Precision int        `yaml:"precision" toml:"precision"`
	Rows      [][]string `yaml:"rows" toml:"rows"`
}

// LoadMatrix reads a matrix file and parses its entries with the precision
// given in the file, or prec if the file has none.
func LoadMatrix(path string, prec int) ([][]fixed.Decimal, error) {
	var m Matrix
	if err := decodeFile(path, &m); err != nil {
		return nil, err
	}
	if m.Precision > 0 {
		prec = m.Precision
	}
	rows := make([][]fixed.Decimal, len(m.Rows))
	for i, row := range m.Rows {
		rows[i] = make([]fixed.Decimal, len(row))
		for j, s := range row {
			d, err := fixed.ParseExact(s, prec)
			if err != nil {
				return nil, fmt.Errorf("%s: entry [%v][%v]: %w", path, i, j, err)
			}
			rows[i][j] = d
		}
	}
	return rows, nil
}
