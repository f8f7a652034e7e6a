// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the cip25
// tool.
//
// Configuration comes from a single file named by either the
// CIP25_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). [Resolve] implements the precedence the CLI uses:
// flag, then environment variable, then [Default]. There is no
// ~/.config discovery and no automatic file search.
//
// The file only sets defaults for command-line flags. A string flag
// given on the command line replaces the file's value; a boolean option
// is on when either the flag or the file enables it.
//
//	input:
//	  hex: true
//	output:
//	  canonical: true
//	  indent: "  "
//	logging:
//	  level: debug
//	ipfs:
//	  gateway: ${IPFS_GATEWAY:-https://ipfs.io}
//
// Variable expansion is performed on the gateway after loading:
// ${VAR} and ${VAR:-default} patterns are expanded. No other
// environment variables override config values.
//
// This package depends on no other cip25 packages.
package config
