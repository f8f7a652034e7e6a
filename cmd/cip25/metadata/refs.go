// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package metadata

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/bureau-foundation/cip25/cmd/cip25/cli"
	"github.com/bureau-foundation/cip25/lib/contentid"
)

type refsParams struct {
	commonParams
	cborInput
	cli.JSONOutput
	Gateway string `json:"gateway" flag:"gateway" desc:"IPFS gateway base URL (default: ipfs.gateway from config)"`
}

// refEntry is one reference in refs output. Error is set instead of
// the parsed fields when the URI does not parse.
type refEntry struct {
	Location   string `json:"location"`
	URI        string `json:"uri"`
	CID        string `json:"cid,omitempty"`
	Path       string `json:"path,omitempty"`
	GatewayURL string `json:"gateway_url,omitempty"`
	Error      string `json:"error,omitempty"`
}

func refsCommand() *cli.Command {
	var params refsParams

	return &cli.Command{
		Name:    "refs",
		Summary: "List the ipfs:// references in a document",
		Description: `List every ipfs:// URI in the image and files[].src fields.

Values split into lists of 64-byte chunks are joined before parsing.
Both ipfs://<cid>/path and the redundant ipfs://ipfs/<cid>/path form are
accepted; CIDv0 and CIDv1 roots are both valid. Each reference is shown
with a gateway URL built from --gateway or ipfs.gateway in the
configuration file. URIs with other schemes are skipped.

Exits 1 when any ipfs:// URI fails to parse.`,
		Usage: "cip25 refs [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "List references with a local gateway",
				Command:     "cip25 refs --gateway http://127.0.0.1:8080 metadata.cbor",
			},
		},
		Params:      func() any { return &params },
		Annotations: cli.ReadOnly().WithOpenWorld(),
		Run: func(args []string) error {
			env, err := params.open("refs")
			if err != nil {
				return err
			}
			data, err := readInput("refs", args, os.Stdin, env.hexInput(params.cborInput))
			if err != nil {
				return err
			}
			gateway := params.Gateway
			if gateway == "" {
				gateway = env.config.IPFS.Gateway
			}
			entries, err := collectRefs(data, gateway, env.logger)
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(os.Stdout, entries); done {
				if err != nil {
					return err
				}
			} else if err := writeRefs(os.Stdout, entries); err != nil {
				return err
			}
			for _, entry := range entries {
				if entry.Error != "" {
					return &cli.ExitError{Code: 1}
				}
			}
			return nil
		},
	}
}

func collectRefs(data []byte, gateway string, logger *slog.Logger) ([]refEntry, error) {
	metadata, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}
	var entries []refEntry
	for _, ref := range contentid.Refs(metadata) {
		entry := refEntry{Location: ref.Location, URI: ref.URI}
		if ref.Err != nil {
			entry.Error = ref.Err.Error()
		} else {
			entry.CID = ref.IPFS.CID.String()
			entry.Path = ref.IPFS.Path
			entry.GatewayURL = ref.IPFS.GatewayURL(gateway)
		}
		entries = append(entries, entry)
	}
	logger.Debug("collected references", "count", len(entries), "gateway", gateway)
	return entries, nil
}

func writeRefs(w io.Writer, entries []refEntry) error {
	tw := tabwriter.NewWriter(w, 2, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LOCATION\tCID\tGATEWAY URL")
	for _, entry := range entries {
		if entry.Error != "" {
			fmt.Fprintf(tw, "%s\t-\terror: %s\n", entry.Location, entry.Error)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", entry.Location, entry.CID, entry.GatewayURL)
	}
	return tw.Flush()
}
