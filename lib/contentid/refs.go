// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package contentid

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ipfs/go-cid"

	"github.com/bureau-foundation/cip25/lib/cip25"
)

// ErrNotIPFS is returned by [ParseIPFSRef] for URIs with another
// scheme.
var ErrNotIPFS = errors.New("contentid: not an ipfs:// URI")

// IPFSRef is a parsed ipfs:// URI: a root CID and an optional path
// below it.
type IPFSRef struct {
	CID cid.Cid

	// Path is empty or starts with "/".
	Path string
}

// ParseIPFSRef parses "ipfs://<cid>[/path]". The redundant
// "ipfs://ipfs/<cid>" form some minting tools emit is accepted. Both
// CIDv0 (Qm...) and CIDv1 roots are accepted.
func ParseIPFSRef(uri string) (IPFSRef, error) {
	rest, ok := strings.CutPrefix(uri, "ipfs://")
	if !ok {
		return IPFSRef{}, ErrNotIPFS
	}
	rest = strings.TrimPrefix(rest, "ipfs/")
	root, path, hasPath := strings.Cut(rest, "/")
	identifier, err := cid.Decode(root)
	if err != nil {
		return IPFSRef{}, fmt.Errorf("ipfs URI %q: %w", uri, err)
	}
	ref := IPFSRef{CID: identifier}
	if hasPath && path != "" {
		ref.Path = "/" + path
	}
	return ref, nil
}

// String returns the normalized ipfs:// form.
func (r IPFSRef) String() string {
	return "ipfs://" + r.CID.String() + r.Path
}

// GatewayURL returns the HTTP URL of the reference on an IPFS gateway
// such as "https://ipfs.io".
func (r IPFSRef) GatewayURL(gateway string) string {
	return strings.TrimSuffix(gateway, "/") + "/ipfs/" + r.CID.String() + r.Path
}

// Ref is one ipfs:// URI found in a document.
type Ref struct {
	// Location identifies the field, for example
	// "data[h'ab'][h'cd'].files[0].src".
	Location string

	// URI is the field value, with list variants joined.
	URI string

	// IPFS is the parsed reference. Zero when Err is set.
	IPFS IPFSRef

	// Err is set when URI has the ipfs:// scheme but does not parse.
	Err error
}

// Refs returns the ipfs:// references in metadata in document order.
// URIs with other schemes (https, ar, data) are skipped.
func Refs(metadata *cip25.Metadata) []Ref {
	var refs []Ref
	add := func(location string, value cip25.StringOrList) {
		uri := value.Joined()
		ref, err := ParseIPFSRef(uri)
		if errors.Is(err, ErrNotIPFS) {
			return
		}
		refs = append(refs, Ref{Location: location, URI: uri, IPFS: ref, Err: err})
	}

	for policyID, assets := range metadata.Label721.Data.All() {
		for assetName, details := range assets.All() {
			prefix := fmt.Sprintf("data[h'%x'][h'%x']", policyID, assetName)
			add(prefix+".image", details.Image)
			for index, file := range details.Files {
				add(fmt.Sprintf("%s.files[%d].src", prefix, index), file.Src)
			}
		}
	}
	return refs
}
