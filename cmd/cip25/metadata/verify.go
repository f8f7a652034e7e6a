// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package metadata

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/cip25/cmd/cip25/cli"
	"github.com/bureau-foundation/cip25/lib/cip25"
	"github.com/bureau-foundation/cip25/lib/codec"
)

type verifyParams struct {
	commonParams
	cborInput
	cli.JSONOutput
	RequireCanonical bool `json:"require_canonical" flag:"require-canonical" desc:"also fail when the input is not canonical"`
}

// verifyReport is the outcome of verify. Difference offsets are -1
// when the compared encodings are equal.
type verifyReport struct {
	InputBytes int `json:"input_bytes"`

	// RoundTrip is true when re-encoding with the captured framing
	// reproduces the input.
	RoundTrip           bool `json:"round_trip"`
	RoundTripDifference int  `json:"round_trip_difference"`

	// Canonical is true when the input is already canonical.
	Canonical           bool `json:"canonical"`
	CanonicalDifference int  `json:"canonical_difference"`
	CanonicalBytes      int  `json:"canonical_bytes"`

	// CrossCheck is true when a generic canonical CBOR encoder that
	// knows nothing about the schema produces the same canonical bytes.
	CrossCheck bool `json:"cross_check"`

	// Stable is true when decoding the canonical bytes and encoding
	// them canonically again reproduces them.
	Stable bool `json:"stable"`
}

func (r verifyReport) ok(requireCanonical bool) bool {
	return r.RoundTrip && r.CrossCheck && r.Stable && (r.Canonical || !requireCanonical)
}

func verifyCommand() *cli.Command {
	var params verifyParams

	return &cli.Command{
		Name:    "verify",
		Summary: "Check round-trip fidelity and canonical form",
		Description: `Decode a metadata document and check the encoder against it.

Four checks are reported:

  round-trip   re-encoding with the captured framing reproduces the input
  canonical    the input is already in canonical form
  cross-check  a generic RFC 7049 canonical encoder agrees with ours
  stable       canonicalizing the canonical form changes nothing

Exits 0 when round-trip, cross-check and stable pass, and 1 otherwise.
With --require-canonical a non-canonical input also exits 1. Input that
does not decode is an error (exit 2).`,
		Usage: "cip25 verify [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Verify a document before submitting it",
				Command:     "cip25 verify --require-canonical metadata.cbor",
			},
			{
				Description: "Machine-readable report",
				Command:     "cip25 verify --json metadata.cbor",
			},
		},
		Params:      func() any { return &params },
		Annotations: cli.ReadOnly(),
		Run: func(args []string) error {
			env, err := params.open("verify")
			if err != nil {
				return err
			}
			data, err := readInput("verify", args, os.Stdin, env.hexInput(params.cborInput))
			if err != nil {
				return err
			}
			report, err := verifyDocument(data, env.logger)
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(os.Stdout, report); done {
				if err != nil {
					return err
				}
			} else if err := writeVerifyReport(os.Stdout, report); err != nil {
				return err
			}
			if !report.ok(params.RequireCanonical) {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}

// verifyDocument decodes data and runs every check.
func verifyDocument(data []byte, logger *slog.Logger) (verifyReport, error) {
	metadata, err := decodeDocument(data)
	if err != nil {
		return verifyReport{}, err
	}

	preserved, err := cip25.Encode(metadata, false)
	if err != nil {
		return verifyReport{}, cli.Internal("re-encode with captured framing: %w", err)
	}
	canonical, err := cip25.Encode(metadata, true)
	if err != nil {
		return verifyReport{}, cli.Internal("canonical encoding: %w", err)
	}
	generic, err := codec.Canonicalize(data)
	if err != nil {
		return verifyReport{}, cli.Internal("generic canonical encoding: %w", err)
	}
	redecoded, err := cip25.Decode(canonical)
	if err != nil {
		return verifyReport{}, cli.Internal("decode canonical form: %w", err)
	}
	again, err := cip25.Encode(redecoded, true)
	if err != nil {
		return verifyReport{}, cli.Internal("re-encode canonical form: %w", err)
	}

	report := verifyReport{
		InputBytes:          len(data),
		RoundTrip:           bytes.Equal(preserved, data),
		RoundTripDifference: -1,
		Canonical:           bytes.Equal(canonical, data),
		CanonicalDifference: -1,
		CanonicalBytes:      len(canonical),
		CrossCheck:          bytes.Equal(generic, canonical),
		Stable:              bytes.Equal(again, canonical),
	}
	if !report.RoundTrip {
		report.RoundTripDifference = firstDifference(data, preserved)
	}
	if !report.Canonical {
		report.CanonicalDifference = firstDifference(data, canonical)
	}
	logger.Debug("verified metadata",
		"round_trip", report.RoundTrip,
		"canonical", report.Canonical,
		"cross_check", report.CrossCheck,
		"stable", report.Stable,
	)
	return report, nil
}

func writeVerifyReport(w io.Writer, report verifyReport) error {
	roundTrip := "ok"
	if !report.RoundTrip {
		roundTrip = fmt.Sprintf("FAILED: first difference at byte %d", report.RoundTripDifference)
	}
	canonical := "yes"
	if !report.Canonical {
		canonical = fmt.Sprintf("no: first difference at byte %d (input %d bytes, canonical %d bytes)",
			report.CanonicalDifference, report.InputBytes, report.CanonicalBytes)
	}
	crossCheck := "ok"
	if !report.CrossCheck {
		crossCheck = "FAILED: generic canonical encoder disagrees"
	}
	stable := "ok"
	if !report.Stable {
		stable = "FAILED: canonical form is not a fixed point"
	}
	_, err := fmt.Fprintf(w, "round-trip:  %s\ncanonical:   %s\ncross-check: %s\nstable:      %s\n",
		roundTrip, canonical, crossCheck, stable)
	return err
}
