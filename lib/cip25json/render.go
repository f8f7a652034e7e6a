// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cip25json

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/bureau-foundation/cip25/lib/cip25"
)

// ErrNilMetadata is returned by Render for a nil document.
var ErrNilMetadata = errors.New("cip25json: render nil metadata")

// Render returns the JSON view of metadata. With indent non-empty the
// output is pretty-printed using indent per level; otherwise it is
// compact. Output always ends with a newline.
func Render(metadata *cip25.Metadata, indent string) ([]byte, error) {
	if metadata == nil {
		return nil, ErrNilMetadata
	}
	var buffer bytes.Buffer
	buffer.WriteString(`{"721":{"data":{`)
	first := true
	for policyID, assets := range metadata.Label721.Data.All() {
		if !first {
			buffer.WriteByte(',')
		}
		first = false
		writeHexKey(&buffer, policyID)
		if err := renderAssetMap(&buffer, assets); err != nil {
			return nil, err
		}
	}
	buffer.WriteString(`},"version":`)
	buffer.WriteString(strconv.FormatUint(metadata.Label721.Version(), 10))
	buffer.WriteString("}}")

	if indent == "" {
		buffer.WriteByte('\n')
		return buffer.Bytes(), nil
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, buffer.Bytes(), "", indent); err != nil {
		return nil, fmt.Errorf("cip25json: indenting output: %w", err)
	}
	pretty.WriteByte('\n')
	return pretty.Bytes(), nil
}

func renderAssetMap(buffer *bytes.Buffer, assets *cip25.AssetMap) error {
	buffer.WriteByte('{')
	first := true
	for assetName, details := range assets.All() {
		if !first {
			buffer.WriteByte(',')
		}
		first = false
		writeHexKey(buffer, assetName)
		if err := renderAssetDetails(buffer, details); err != nil {
			return err
		}
	}
	buffer.WriteByte('}')
	return nil
}

func renderAssetDetails(buffer *bytes.Buffer, details cip25.AssetDetails) error {
	buffer.WriteString(`{"name":`)
	if err := writeString(buffer, details.Name.String()); err != nil {
		return err
	}
	buffer.WriteString(`,"image":`)
	if err := writeStringOrList(buffer, details.Image); err != nil {
		return err
	}
	if details.MediaType != nil {
		buffer.WriteString(`,"mediaType":`)
		if err := writeString(buffer, details.MediaType.String()); err != nil {
			return err
		}
	}
	if details.Description != nil {
		buffer.WriteString(`,"description":`)
		if err := writeStringOrList(buffer, *details.Description); err != nil {
			return err
		}
	}
	if details.Files != nil {
		buffer.WriteString(`,"files":[`)
		for index, file := range details.Files {
			if index > 0 {
				buffer.WriteByte(',')
			}
			buffer.WriteString(`{"name":`)
			if err := writeString(buffer, file.Name.String()); err != nil {
				return err
			}
			buffer.WriteString(`,"mediaType":`)
			if err := writeString(buffer, file.MediaType.String()); err != nil {
				return err
			}
			buffer.WriteString(`,"src":`)
			if err := writeStringOrList(buffer, file.Src); err != nil {
				return err
			}
			buffer.WriteByte('}')
		}
		buffer.WriteByte(']')
	}
	buffer.WriteByte('}')
	return nil
}

func writeHexKey(buffer *bytes.Buffer, key []byte) {
	buffer.WriteByte('"')
	buffer.WriteString(hex.EncodeToString(key))
	buffer.WriteString(`":`)
}

// writeString quotes text with encoding/json so escaping matches what
// Parse accepts.
func writeString(buffer *bytes.Buffer, text string) error {
	quoted, err := json.Marshal(text)
	if err != nil {
		return fmt.Errorf("cip25json: quoting %q: %w", text, err)
	}
	buffer.Write(quoted)
	return nil
}

func writeStringOrList(buffer *bytes.Buffer, value cip25.StringOrList) error {
	if single, ok := value.Single(); ok {
		return writeString(buffer, single.String())
	}
	items, _ := value.List()
	buffer.WriteByte('[')
	for index, item := range items {
		if index > 0 {
			buffer.WriteByte(',')
		}
		if err := writeString(buffer, item.String()); err != nil {
			return err
		}
	}
	buffer.WriteByte(']')
	return nil
}
