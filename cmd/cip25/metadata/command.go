// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package metadata

import "github.com/bureau-foundation/cip25/cmd/cip25/cli"

// Commands returns the metadata subcommands in help order.
func Commands() []*cli.Command {
	return []*cli.Command{
		decodeCommand(),
		encodeCommand(),
		reencodeCommand(),
		canonicalizeCommand(),
		verifyCommand(),
		diagCommand(),
		fingerprintCommand(),
		refsCommand(),
	}
}
