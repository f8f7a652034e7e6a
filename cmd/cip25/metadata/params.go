// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package metadata

import (
	"log/slog"

	"github.com/bureau-foundation/cip25/cmd/cip25/cli"
	"github.com/bureau-foundation/cip25/lib/config"
)

// commonParams are accepted by every metadata subcommand.
type commonParams struct {
	ConfigPath string `json:"config"  flag:"config"    desc:"configuration file (default: $CIP25_CONFIG)"`
	Verbose    bool   `json:"verbose" flag:"verbose,v" desc:"log debug detail to stderr"`
}

// cborInput is embedded by subcommands that read CBOR.
type cborInput struct {
	HexInput bool `json:"hex_input" flag:"hex,x" desc:"treat input as hex-encoded CBOR (whitespace ignored)"`
}

// cborOutput is embedded by subcommands that write CBOR.
type cborOutput struct {
	HexOutput bool `json:"hex_output" flag:"hex-output" desc:"write CBOR as hex text instead of raw bytes"`
}

// environment is the resolved configuration and logger for one run.
type environment struct {
	config *config.Config
	logger *slog.Logger
}

// open resolves configuration and builds the command logger.
func (p *commonParams) open(command string) (*environment, error) {
	cfg, err := config.Resolve(p.ConfigPath)
	if err != nil {
		return nil, cli.Validation("load configuration: %w", err)
	}
	level := cfg.LogLevel()
	if p.Verbose {
		level = slog.LevelDebug
	}
	logger := cli.NewCommandLogger(level, cfg.Logging.Format).With("command", command)
	return &environment{config: cfg, logger: logger}, nil
}

func (e *environment) hexInput(input cborInput) bool {
	return input.HexInput || e.config.Input.Hex
}

func (e *environment) hexOutput(output cborOutput) bool {
	return output.HexOutput || e.config.Output.Hex
}
