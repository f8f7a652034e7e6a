// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable [Load] reads.
const EnvVar = "CIP25_CONFIG"

// Config is the complete tool configuration.
type Config struct {
	// Input configures how documents are read.
	Input InputConfig `yaml:"input"`

	// Output configures how documents are written.
	Output OutputConfig `yaml:"output"`

	// Logging configures the command logger.
	Logging LoggingConfig `yaml:"logging"`

	// IPFS configures IPFS reference resolution.
	IPFS IPFSConfig `yaml:"ipfs"`
}

// InputConfig configures how documents are read.
type InputConfig struct {
	// Hex treats CBOR input as hex text. Whitespace is ignored.
	// Default: false
	Hex bool `yaml:"hex"`
}

// OutputConfig configures how documents are written.
type OutputConfig struct {
	// Hex writes CBOR output as hex text instead of raw bytes.
	// Default: false
	Hex bool `yaml:"hex"`

	// Canonical makes encode and decode-then-reencode paths emit
	// canonical CBOR regardless of captured framing.
	// Default: false
	Canonical bool `yaml:"canonical"`

	// Indent is the per-level indentation for JSON output. Empty
	// means compact output.
	// Default: two spaces
	Indent string `yaml:"indent"`
}

// LoggingConfig configures the command logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: info
	Level string `yaml:"level"`

	// Format is one of auto, text, json. Auto picks text when stderr
	// is a terminal and JSON otherwise.
	// Default: auto
	Format string `yaml:"format"`
}

// IPFSConfig configures IPFS reference resolution.
type IPFSConfig struct {
	// Gateway is the HTTP gateway base URL used to print fetchable
	// URLs for ipfs:// references. Supports ${VAR:-default}.
	// Default: https://ipfs.io
	Gateway string `yaml:"gateway"`
}

// Default returns the configuration used when no file is given. Loaded
// files are merged onto it, so fields a file omits keep these values.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Indent: "  ",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "auto",
		},
		IPFS: IPFSConfig{
			Gateway: "https://ipfs.io",
		},
	}
}

// Load loads configuration from the file named by CIP25_CONFIG. It
// fails when the variable is unset.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvVar)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your cip25.yaml config file, or use --config flag", EnvVar)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from path, merged onto [Default], and
// validates it.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.expandVariables()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve returns the configuration for a command invocation: the file
// at path when non-empty, else the file named by CIP25_CONFIG when
// set, else [Default].
func Resolve(path string) (*Config, error) {
	if path != "" {
		return LoadFile(path)
	}
	if os.Getenv(EnvVar) != "" {
		return Load()
	}
	return Default(), nil
}

func (c *Config) expandVariables() {
	c.IPFS.Gateway = expandVars(c.IPFS.Gateway)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns from the
// environment.
func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		if len(parts) >= 3 {
			return parts[2]
		}
		return ""
	})
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"auto", "text", "json"}
)

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(logLevels, c.Logging.Level) {
		errs = append(errs, fmt.Errorf("logging.level must be one of: %v, got %q", logLevels, c.Logging.Level))
	}
	if !slices.Contains(logFormats, c.Logging.Format) {
		errs = append(errs, fmt.Errorf("logging.format must be one of: %v, got %q", logFormats, c.Logging.Format))
	}
	if strings.Trim(c.Output.Indent, " \t") != "" {
		errs = append(errs, fmt.Errorf("output.indent must contain only spaces and tabs, got %q", c.Output.Indent))
	}

	if c.IPFS.Gateway == "" {
		errs = append(errs, errors.New("ipfs.gateway is required"))
	} else if gateway, err := url.Parse(c.IPFS.Gateway); err != nil {
		errs = append(errs, fmt.Errorf("ipfs.gateway: %w", err))
	} else if (gateway.Scheme != "http" && gateway.Scheme != "https") || gateway.Host == "" {
		errs = append(errs, fmt.Errorf("ipfs.gateway must be an http(s) URL, got %q", c.IPFS.Gateway))
	}

	return errors.Join(errs...)
}

// LogLevel returns the slog level for Logging.Level. Validate rejects
// unknown names; LogLevel maps them to info.
func (c *Config) LogLevel() slog.Level {
	switch c.Logging.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
