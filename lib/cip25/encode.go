// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cip25

import (
	"bytes"
	"cmp"
	"slices"

	"github.com/bureau-foundation/cip25/lib/cborwire"
)

func (m *Metadata) encode(writer WireWriter, forceCanonical bool) error {
	encoding := &m.encoding
	if err := writer.WriteMapHeader(encoding.container.toLen(1, forceCanonical)); err != nil {
		return err
	}
	for _, field := range orderFor(encoding.order, metadataDefaultOrder, metadataDefaultOrder, forceCanonical) {
		switch field {
		case metadataField721:
			if err := writer.WriteUint(Label, fitSz(Label, encoding.keyWidth, forceCanonical)); err != nil {
				return err
			}
			if err := m.Label721.encode(writer, forceCanonical); err != nil {
				return err
			}
		}
	}
	return encoding.container.end(writer, forceCanonical)
}

func (l *LabelMetadata) encode(writer WireWriter, forceCanonical bool) error {
	encoding := &l.encoding
	if err := writer.WriteMapHeader(encoding.container.toLen(2, forceCanonical)); err != nil {
		return err
	}
	for _, field := range orderFor(encoding.order, labelDefaultOrder, labelDefaultOrder, forceCanonical) {
		switch field {
		case labelFieldData:
			if err := writeKey(writer, "data", encoding.dataKey, forceCanonical); err != nil {
				return err
			}
			if err := l.encodeData(writer, forceCanonical); err != nil {
				return err
			}
		case labelFieldVersion:
			if err := writeKey(writer, "version", encoding.versionKey, forceCanonical); err != nil {
				return err
			}
			if err := writer.WriteUint(Version, fitSz(Version, encoding.versionWidth, forceCanonical)); err != nil {
				return err
			}
		}
	}
	return encoding.container.end(writer, forceCanonical)
}

// encodeData writes the policy map. Entries replay insertion order, or
// canonical key order when forceCanonical is set. Entries added after
// decoding have no recorded framing and are written canonically.
func (l *LabelMetadata) encodeData(writer WireWriter, forceCanonical bool) error {
	policyIDs := l.Data.Keys()
	if forceCanonical {
		policyIDs = canonicalKeyOrder(policyIDs)
	}
	container := l.Data.containerEncoding()
	if err := writer.WriteMapHeader(container.toLen(uint64(len(policyIDs)), forceCanonical)); err != nil {
		return err
	}
	for _, policyID := range policyIDs {
		keyEncoding := l.Data.framingOf(policyID)
		if err := writer.WriteBytes(policyID, keyEncoding.toStringLen(uint64(len(policyID)), forceCanonical)); err != nil {
			return err
		}
		assets, _ := l.Data.Get(policyID)
		if err := encodeAssetMap(writer, assets, forceCanonical); err != nil {
			return err
		}
	}
	return container.end(writer, forceCanonical)
}

func encodeAssetMap(writer WireWriter, assets *AssetMap, forceCanonical bool) error {
	assetNames := assets.Keys()
	if forceCanonical {
		assetNames = canonicalKeyOrder(assetNames)
	}
	container := assets.containerEncoding()
	if err := writer.WriteMapHeader(container.toLen(uint64(len(assetNames)), forceCanonical)); err != nil {
		return err
	}
	for _, assetName := range assetNames {
		keyEncoding := assets.framingOf(assetName)
		if err := writer.WriteBytes(assetName, keyEncoding.toStringLen(uint64(len(assetName)), forceCanonical)); err != nil {
			return err
		}
		details, _ := assets.Get(assetName)
		if err := details.encode(writer, forceCanonical); err != nil {
			return err
		}
	}
	return container.end(writer, forceCanonical)
}

// canonicalKeyOrder sorts byte-string keys by the length of their
// canonical encoding, then bytewise on that encoding.
func canonicalKeyOrder(keys [][]byte) [][]byte {
	type encodedKey struct {
		key     []byte
		encoded []byte
	}
	entries := make([]encodedKey, len(keys))
	for index, key := range keys {
		var buffer bytes.Buffer
		// Writes to a bytes.Buffer cannot fail.
		_ = cborwire.NewWriter(&buffer).WriteBytes(key, cborwire.DefiniteString(cborwire.CanonicalSz(uint64(len(key)))))
		entries[index] = encodedKey{key: key, encoded: buffer.Bytes()}
	}
	slices.SortFunc(entries, func(a, b encodedKey) int {
		if order := cmp.Compare(len(a.encoded), len(b.encoded)); order != 0 {
			return order
		}
		return bytes.Compare(a.encoded, b.encoded)
	})
	sorted := make([][]byte, len(entries))
	for index, entry := range entries {
		sorted[index] = entry.key
	}
	return sorted
}

func (a *AssetDetails) encode(writer WireWriter, forceCanonical bool) error {
	encoding := &a.encoding
	present := a.presentFields()
	if err := writer.WriteMapHeader(encoding.container.toLen(uint64(len(present)), forceCanonical)); err != nil {
		return err
	}
	for _, field := range orderFor(encoding.order, present, assetDefaultOrder, forceCanonical) {
		var err error
		switch field {
		case assetFieldName:
			if err = writeKey(writer, "name", encoding.nameKey, forceCanonical); err == nil {
				err = a.Name.encode(writer, forceCanonical)
			}
		case assetFieldImage:
			if err = writeKey(writer, "image", encoding.imageKey, forceCanonical); err == nil {
				err = a.Image.encode(writer, forceCanonical)
			}
		case assetFieldMediaType:
			if err = writeKey(writer, "mediaType", encoding.mediaTypeKey, forceCanonical); err == nil {
				err = a.MediaType.encode(writer, forceCanonical)
			}
		case assetFieldDescription:
			if err = writeKey(writer, "description", encoding.descriptionKey, forceCanonical); err == nil {
				err = a.Description.encode(writer, forceCanonical)
			}
		case assetFieldFiles:
			if err = writeKey(writer, "files", encoding.filesKey, forceCanonical); err == nil {
				err = encodeFileList(writer, a.Files, encoding.files, forceCanonical)
			}
		}
		if err != nil {
			return err
		}
	}
	return encoding.container.end(writer, forceCanonical)
}

func encodeFileList(writer WireWriter, files []FileDetails, encoding LenEncoding, forceCanonical bool) error {
	if err := writer.WriteArrayHeader(encoding.toLen(uint64(len(files)), forceCanonical)); err != nil {
		return err
	}
	for index := range files {
		if err := files[index].encode(writer, forceCanonical); err != nil {
			return err
		}
	}
	return encoding.end(writer, forceCanonical)
}

var fileAllFields = []int{fileFieldName, fileFieldMediaType, fileFieldSrc}

func (f *FileDetails) encode(writer WireWriter, forceCanonical bool) error {
	encoding := &f.encoding
	if err := writer.WriteMapHeader(encoding.container.toLen(3, forceCanonical)); err != nil {
		return err
	}
	for _, field := range orderFor(encoding.order, fileAllFields, fileDefaultOrder, forceCanonical) {
		var err error
		switch field {
		case fileFieldName:
			if err = writeKey(writer, "name", encoding.nameKey, forceCanonical); err == nil {
				err = f.Name.encode(writer, forceCanonical)
			}
		case fileFieldMediaType:
			if err = writeKey(writer, "mediaType", encoding.mediaTypeKey, forceCanonical); err == nil {
				err = f.MediaType.encode(writer, forceCanonical)
			}
		case fileFieldSrc:
			if err = writeKey(writer, "src", encoding.srcKey, forceCanonical); err == nil {
				err = f.Src.encode(writer, forceCanonical)
			}
		}
		if err != nil {
			return err
		}
	}
	return encoding.container.end(writer, forceCanonical)
}

func (s String64) encode(writer WireWriter, forceCanonical bool) error {
	return writer.WriteText(s.value, s.encoding.toStringLen(uint64(len(s.value)), forceCanonical))
}

func (u StringOrList) encode(writer WireWriter, forceCanonical bool) error {
	if !u.isList {
		return u.single.encode(writer, forceCanonical)
	}
	if err := writer.WriteArrayHeader(u.listEncoding.toLen(uint64(len(u.list)), forceCanonical)); err != nil {
		return err
	}
	for _, item := range u.list {
		if err := item.encode(writer, forceCanonical); err != nil {
			return err
		}
	}
	return u.listEncoding.end(writer, forceCanonical)
}

func writeKey(writer WireWriter, key string, encoding StringEncoding, forceCanonical bool) error {
	return writer.WriteText(key, encoding.toStringLen(uint64(len(key)), forceCanonical))
}
