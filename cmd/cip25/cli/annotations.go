// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

// ToolAnnotations describes behavioral properties of a command for
// callers that drive the CLI programmatically (scripts, agents). A nil
// field means "unspecified".
//
// Command authors set Annotations on every runnable command using one
// of the preset constructors: [ReadOnly] or [Transform]. The command
// tree test enforces this.
type ToolAnnotations struct {
	// ReadOnly is true when the command only inspects its input and
	// writes a report, never a new document.
	ReadOnly *bool

	// Idempotent is true when repeated calls with identical input
	// produce identical output.
	Idempotent *bool

	// OpenWorld is true when the command's output refers to entities
	// outside the input, such as IPFS gateway URLs.
	OpenWorld *bool
}

// ReadOnly returns annotations for commands that report on a document:
// decode, verify, diag, fingerprint.
func ReadOnly() *ToolAnnotations {
	return &ToolAnnotations{
		ReadOnly:   boolPtr(true),
		Idempotent: boolPtr(true),
		OpenWorld:  boolPtr(false),
	}
}

// Transform returns annotations for commands that produce a new
// document from their input: encode, canonicalize.
func Transform() *ToolAnnotations {
	return &ToolAnnotations{
		ReadOnly:   boolPtr(false),
		Idempotent: boolPtr(true),
		OpenWorld:  boolPtr(false),
	}
}

// WithOpenWorld returns a copy of a with OpenWorld set.
func (a *ToolAnnotations) WithOpenWorld() *ToolAnnotations {
	copied := *a
	copied.OpenWorld = boolPtr(true)
	return &copied
}

func boolPtr(value bool) *bool {
	return &value
}
