// Package config handles pygarl configuration via YAML files and
// environment variables.
//
// Configuration Precedence (highest to lowest):
//  1. Command-line flags (--threshold, --output, etc.)
//  2. Environment variables (PYGARL_*)
//  3. Config file (pygarl.yaml)
//  4. Built-in defaults
//
// Example Usage:
//
//	cfg, err := config.LoadFromFile(config.FindConfigFile())
//	if err != nil {
//		log.Fatalf("Invalid config: %v", err)
//	}
//
//	fmt.Printf("Threshold: %.1f\n", cfg.Filter.Threshold)
//
// Environment Variables (all use PYGARL_ prefix):
//
// Filter:
//   - PYGARL_THRESHOLD=10
//   - PYGARL_GROUP=true
//   - PYGARL_TOLERANCE_LIMIT=2
//
// Plot:
//   - PYGARL_PLOT=false
//   - PYGARL_PLOT_WIDTH=40
//
// IO:
//   - PYGARL_OUTPUT_DIR="./out"
//
// Logging:
//   - PYGARL_VERBOSE=false
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all pygarl configuration.
//
// Use Default() for built-in defaults, LoadFromEnv() to apply environment
// overrides, or LoadFromFile() to load a YAML file with environment
// overrides applied on top.
type Config struct {
	// Filter settings for the gradient threshold stage
	Filter FilterConfig

	// Plot settings for the terminal renderer
	Plot PlotConfig

	// IO settings for the replay tool
	IO IOConfig

	// Logging
	Logging LoggingConfig
}

// FilterConfig holds gradient threshold filter settings.
type FilterConfig struct {
	// Threshold a sample's absolute mean gradient must reach to count as
	// motion
	Threshold float64
	// Group enables coalescing a gesture's samples into one
	Group bool
	// ToleranceLimit is the number of below-threshold dips absorbed into
	// an in-progress group
	ToleranceLimit int
}

// PlotConfig holds terminal rendering settings.
type PlotConfig struct {
	// Enabled adds a plotter tap after the filter
	Enabled bool
	// Width in glyph cells of the largest bar
	Width int
}

// IOConfig holds replay input/output settings.
type IOConfig struct {
	// OutputDir receives emitted sample files
	OutputDir string
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Verbose enables per-sample diagnostics
	Verbose bool
}

// Default returns the built-in defaults, matching the original capture rig
// tuning.
func Default() Config {
	return Config{
		Filter: FilterConfig{
			Threshold:      10,
			Group:          true,
			ToleranceLimit: 2,
		},
		Plot: PlotConfig{
			Enabled: false,
			Width:   40,
		},
		IO: IOConfig{
			OutputDir: "./out",
		},
		Logging: LoggingConfig{
			Verbose: false,
		},
	}
}

// LoadFromEnv returns the defaults with PYGARL_* environment overrides
// applied.
func LoadFromEnv() Config {
	cfg := Default()
	cfg.applyEnv()
	return cfg
}

// LoadFromFile loads a YAML config file, then applies environment
// overrides on top. An empty path returns LoadFromEnv().
func LoadFromFile(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := cfg.applyYAML(data); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// FindConfigFile returns the first config file found, checking
// ./pygarl.yaml then $HOME/.pygarl/config.yaml. Returns "" when none
// exists.
func FindConfigFile() string {
	candidates := []string{"pygarl.yaml", "pygarl.yml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".pygarl", "config.yaml"))
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Filter.Threshold < 0 {
		return fmt.Errorf("config: threshold must be non-negative, got %g", c.Filter.Threshold)
	}
	if c.Filter.ToleranceLimit < 0 {
		return fmt.Errorf("config: tolerance_limit must be non-negative, got %d", c.Filter.ToleranceLimit)
	}
	if c.Plot.Width < 0 {
		return fmt.Errorf("config: plot width must be non-negative, got %d", c.Plot.Width)
	}
	return nil
}

// yamlConfig mirrors the file layout. Missing keys keep their current
// values, so the file only needs the settings it changes.
type yamlConfig struct {
	Filter struct {
		Threshold      *float64 `yaml:"threshold"`
		Group          *bool    `yaml:"group"`
		ToleranceLimit *int     `yaml:"tolerance_limit"`
	} `yaml:"filter"`
	Plot struct {
		Enabled *bool `yaml:"enabled"`
		Width   *int  `yaml:"width"`
	} `yaml:"plot"`
	IO struct {
		OutputDir *string `yaml:"output_dir"`
	} `yaml:"io"`
	Logging struct {
		Verbose *bool `yaml:"verbose"`
	} `yaml:"logging"`
}

func (c *Config) applyYAML(data []byte) error {
	var y yamlConfig
	if err := yaml.Unmarshal(data, &y); err != nil {
		return err
	}
	if y.Filter.Threshold != nil {
		c.Filter.Threshold = *y.Filter.Threshold
	}
	if y.Filter.Group != nil {
		c.Filter.Group = *y.Filter.Group
	}
	if y.Filter.ToleranceLimit != nil {
		c.Filter.ToleranceLimit = *y.Filter.ToleranceLimit
	}
	if y.Plot.Enabled != nil {
		c.Plot.Enabled = *y.Plot.Enabled
	}
	if y.Plot.Width != nil {
		c.Plot.Width = *y.Plot.Width
	}
	if y.IO.OutputDir != nil {
		c.IO.OutputDir = *y.IO.OutputDir
	}
	if y.Logging.Verbose != nil {
		c.Logging.Verbose = *y.Logging.Verbose
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Filter.Threshold = getEnvFloat("PYGARL_THRESHOLD", c.Filter.Threshold)
	c.Filter.Group = getEnvBool("PYGARL_GROUP", c.Filter.Group)
	c.Filter.ToleranceLimit = getEnvInt("PYGARL_TOLERANCE_LIMIT", c.Filter.ToleranceLimit)
	c.Plot.Enabled = getEnvBool("PYGARL_PLOT", c.Plot.Enabled)
	c.Plot.Width = getEnvInt("PYGARL_PLOT_WIDTH", c.Plot.Width)
	c.IO.OutputDir = getEnvString("PYGARL_OUTPUT_DIR", c.IO.OutputDir)
	c.Logging.Verbose = getEnvBool("PYGARL_VERBOSE", c.Logging.Verbose)
}

// String returns a human-readable summary without spelling out every field.
func (c *Config) String() string {
	return fmt.Sprintf("Config{threshold: %g, group: %t, tolerance: %d, plot: %t, out: %s}",
		c.Filter.Threshold, c.Filter.Group, c.Filter.ToleranceLimit, c.Plot.Enabled, c.IO.OutputDir)
}

func getEnvString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := strings.ToLower(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v == "true" || v == "1" || v == "yes" || v == "on"
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
