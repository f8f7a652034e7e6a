// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cip25

import (
	"fmt"

	"github.com/bureau-foundation/cip25/lib/cborwire"
)

// nextItem peeks at the next element of a container. For an indefinite
// container it consumes the terminating break and reports done. Any
// major type 7 item inside a definite container is rejected, as is any
// major type 7 item other than break inside an indefinite one.
func nextItem(reader WireReader, length cborwire.Len) (itemType cborwire.Type, done bool, err error) {
	itemType, err = reader.Type()
	if err != nil {
		return 0, false, err
	}
	if itemType != cborwire.TypeSpecial {
		return itemType, false, nil
	}
	if !length.Indefinite {
		return 0, false, newFailure(Failure{Kind: FailureBreakInDefiniteLen})
	}
	special, err := reader.Special()
	if err != nil {
		return 0, false, err
	}
	if special != cborwire.SpecialBreak {
		return 0, false, newFailure(Failure{Kind: FailureEndingBreakMissing})
	}
	return 0, true, nil
}

// more reports whether a container loop should read another element.
func more(length cborwire.Len, read uint64) bool {
	return length.Indefinite || read < length.N
}

// unknownUintKey consumes an integer key that no record accepts.
func unknownUintKey(reader WireReader) error {
	value, _, err := reader.Uint()
	if err != nil {
		return err
	}
	return keyFailure(FailureUnknownKey, uintKey(value))
}

// readTextKey reads a text map key and the framing it was written with.
func readTextKey(reader WireReader) (string, StringEncoding, error) {
	key, framing, err := reader.Text()
	if err != nil {
		return "", StringEncoding{}, err
	}
	return key, stringEncodingFrom(framing, uint64(len(key))), nil
}

func decodeMetadata(reader WireReader) (*Metadata, error) {
	metadata, err := readMetadata(reader)
	if err != nil {
		return nil, annotate(err, "Metadata")
	}
	return metadata, nil
}

func readMetadata(reader WireReader) (*Metadata, error) {
	length, err := reader.MapHeader()
	if err != nil {
		return nil, err
	}
	counter := newReadLen(length)
	if err := counter.readElems(1); err != nil {
		return nil, err
	}

	metadata := &Metadata{}
	metadata.encoding.container = lenEncodingFrom(length)
	var haveLabel bool
	for read := uint64(0); more(length, read); read++ {
		keyType, done, err := nextItem(reader, length)
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
		switch keyType {
		case cborwire.TypeUnsignedInteger:
			key, width, err := reader.Uint()
			if err != nil {
				return nil, err
			}
			if key != Label {
				return nil, keyFailure(FailureUnknownKey, uintKey(key))
			}
			if haveLabel {
				return nil, keyFailure(FailureDuplicateKey, uintKey(key))
			}
			label, err := decodeLabelMetadata(reader)
			if err != nil {
				return nil, annotate(err, "721")
			}
			haveLabel = true
			metadata.Label721 = label
			metadata.encoding.keyWidth = &width
			metadata.encoding.order = append(metadata.encoding.order, metadataField721)
		case cborwire.TypeText:
			key, _, err := reader.Text()
			if err != nil {
				return nil, err
			}
			return nil, keyFailure(FailureUnknownKey, textKey(key))
		default:
			return nil, newFailure(Failure{Kind: FailureUnexpectedKeyType, KeyType: keyType})
		}
	}

	if !haveLabel {
		return nil, keyFailure(FailureMandatoryFieldMissing, uintKey(Label))
	}
	if err := counter.finish(); err != nil {
		return nil, err
	}
	return metadata, nil
}

func decodeLabelMetadata(reader WireReader) (LabelMetadata, error) {
	label, err := readLabelMetadata(reader)
	if err != nil {
		return LabelMetadata{}, annotate(err, "LabelMetadata")
	}
	return label, nil
}

func readLabelMetadata(reader WireReader) (LabelMetadata, error) {
	length, err := reader.MapHeader()
	if err != nil {
		return LabelMetadata{}, err
	}
	counter := newReadLen(length)
	if err := counter.readElems(2); err != nil {
		return LabelMetadata{}, err
	}

	var (
		label       LabelMetadata
		haveVersion bool
	)
	encoding := &label.encoding
	encoding.container = lenEncodingFrom(length)
	for read := uint64(0); more(length, read); read++ {
		keyType, done, err := nextItem(reader, length)
		if err != nil {
			return LabelMetadata{}, err
		}
		if done {
			break
		}
		switch keyType {
		case cborwire.TypeUnsignedInteger:
			return LabelMetadata{}, unknownUintKey(reader)
		case cborwire.TypeText:
			key, keyEncoding, err := readTextKey(reader)
			if err != nil {
				return LabelMetadata{}, err
			}
			switch key {
			case "data":
				if label.Data != nil {
					return LabelMetadata{}, keyFailure(FailureDuplicateKey, textKey(key))
				}
				data, err := decodePolicyMap(reader)
				if err != nil {
					return LabelMetadata{}, annotate(err, "data")
				}
				label.Data = data
				encoding.dataKey = keyEncoding
				encoding.order = append(encoding.order, labelFieldData)
			case "version":
				if haveVersion {
					return LabelMetadata{}, keyFailure(FailureDuplicateKey, textKey(key))
				}
				value, width, err := reader.Uint()
				if err != nil {
					return LabelMetadata{}, annotate(err, "version")
				}
				if value != Version {
					return LabelMetadata{}, annotate(newFailure(Failure{
						Kind:     FailureFixedValueMismatch,
						Value:    value,
						Expected: Version,
					}), "version")
				}
				haveVersion = true
				encoding.versionWidth = &width
				encoding.versionKey = keyEncoding
				encoding.order = append(encoding.order, labelFieldVersion)
			default:
				return LabelMetadata{}, keyFailure(FailureUnknownKey, textKey(key))
			}
		default:
			return LabelMetadata{}, newFailure(Failure{Kind: FailureUnexpectedKeyType, KeyType: keyType})
		}
	}

	if label.Data == nil {
		return LabelMetadata{}, keyFailure(FailureMandatoryFieldMissing, textKey("data"))
	}
	if !haveVersion {
		return LabelMetadata{}, keyFailure(FailureMandatoryFieldMissing, textKey("version"))
	}
	if err := counter.finish(); err != nil {
		return LabelMetadata{}, err
	}
	return label, nil
}

// decodePolicyMap reads the two-level data map. Header and key framing
// are recorded on the maps themselves.
func decodePolicyMap(reader WireReader) (*PolicyMap, error) {
	length, err := reader.MapHeader()
	if err != nil {
		return nil, err
	}
	policies := NewOrderedMap[*AssetMap]()
	policies.container = lenEncodingFrom(length)
	for read := uint64(0); more(length, read); read++ {
		policyID, keyEncoding, done, err := readBytesKey(reader, length)
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
		if _, exists := policies.Get(policyID); exists {
			return nil, keyFailure(FailureDuplicateKey, bytesKey(policyID))
		}
		assets, err := decodeAssetMap(reader)
		if err != nil {
			return nil, annotate(err, bytesSegment(policyID))
		}
		policies.setFramed(policyID, assets, keyEncoding)
	}
	return policies, nil
}

func decodeAssetMap(reader WireReader) (*AssetMap, error) {
	length, err := reader.MapHeader()
	if err != nil {
		return nil, err
	}
	assets := NewOrderedMap[AssetDetails]()
	assets.container = lenEncodingFrom(length)
	for read := uint64(0); more(length, read); read++ {
		assetName, keyEncoding, done, err := readBytesKey(reader, length)
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
		if _, exists := assets.Get(assetName); exists {
			return nil, keyFailure(FailureDuplicateKey, bytesKey(assetName))
		}
		details, err := decodeAssetDetails(reader)
		if err != nil {
			return nil, annotate(err, bytesSegment(assetName))
		}
		assets.setFramed(assetName, details, keyEncoding)
	}
	return assets, nil
}

// readBytesKey reads one byte-string key of a data map.
func readBytesKey(reader WireReader, length cborwire.Len) ([]byte, StringEncoding, bool, error) {
	keyType, done, err := nextItem(reader, length)
	if err != nil || done {
		return nil, StringEncoding{}, done, err
	}
	if keyType != cborwire.TypeBytes {
		return nil, StringEncoding{}, false, newFailure(Failure{Kind: FailureUnexpectedKeyType, KeyType: keyType})
	}
	key, framing, err := reader.Bytes()
	if err != nil {
		return nil, StringEncoding{}, false, err
	}
	return key, stringEncodingFrom(framing, uint64(len(key))), false, nil
}

func bytesSegment(key []byte) string {
	return fmt.Sprintf("[h'%x']", key)
}

func indexSegment(index uint64) string {
	return fmt.Sprintf("[%d]", index)
}

func decodeAssetDetails(reader WireReader) (AssetDetails, error) {
	details, err := readAssetDetails(reader)
	if err != nil {
		return AssetDetails{}, annotate(err, "AssetDetails")
	}
	return details, nil
}

func readAssetDetails(reader WireReader) (AssetDetails, error) {
	length, err := reader.MapHeader()
	if err != nil {
		return AssetDetails{}, err
	}
	counter := newReadLen(length)
	if err := counter.readElems(2); err != nil {
		return AssetDetails{}, err
	}

	var (
		details             AssetDetails
		haveName, haveImage bool
	)
	encoding := &details.encoding
	encoding.container = lenEncodingFrom(length)
	for read := uint64(0); more(length, read); read++ {
		keyType, done, err := nextItem(reader, length)
		if err != nil {
			return AssetDetails{}, err
		}
		if done {
			break
		}
		switch keyType {
		case cborwire.TypeUnsignedInteger:
			return AssetDetails{}, unknownUintKey(reader)
		case cborwire.TypeText:
			key, keyEncoding, err := readTextKey(reader)
			if err != nil {
				return AssetDetails{}, err
			}
			switch key {
			case "name":
				if haveName {
					return AssetDetails{}, keyFailure(FailureDuplicateKey, textKey(key))
				}
				if details.Name, err = decodeString64(reader); err != nil {
					return AssetDetails{}, annotate(err, key)
				}
				haveName = true
				encoding.nameKey = keyEncoding
				encoding.order = append(encoding.order, assetFieldName)
			case "image":
				if haveImage {
					return AssetDetails{}, keyFailure(FailureDuplicateKey, textKey(key))
				}
				if details.Image, err = decodeStringOrList(reader); err != nil {
					return AssetDetails{}, annotate(err, key)
				}
				haveImage = true
				encoding.imageKey = keyEncoding
				encoding.order = append(encoding.order, assetFieldImage)
			case "mediaType":
				if details.MediaType != nil {
					return AssetDetails{}, keyFailure(FailureDuplicateKey, textKey(key))
				}
				if err := counter.readElems(1); err != nil {
					return AssetDetails{}, annotate(err, key)
				}
				mediaType, err := decodeString64(reader)
				if err != nil {
					return AssetDetails{}, annotate(err, key)
				}
				details.MediaType = &mediaType
				encoding.mediaTypeKey = keyEncoding
				encoding.order = append(encoding.order, assetFieldMediaType)
			case "description":
				if details.Description != nil {
					return AssetDetails{}, keyFailure(FailureDuplicateKey, textKey(key))
				}
				if err := counter.readElems(1); err != nil {
					return AssetDetails{}, annotate(err, key)
				}
				description, err := decodeStringOrList(reader)
				if err != nil {
					return AssetDetails{}, annotate(err, key)
				}
				details.Description = &description
				encoding.descriptionKey = keyEncoding
				encoding.order = append(encoding.order, assetFieldDescription)
			case "files":
				if details.Files != nil {
					return AssetDetails{}, keyFailure(FailureDuplicateKey, textKey(key))
				}
				if err := counter.readElems(1); err != nil {
					return AssetDetails{}, annotate(err, key)
				}
				files, filesEncoding, err := decodeFileList(reader)
				if err != nil {
					return AssetDetails{}, annotate(err, key)
				}
				details.Files = files
				encoding.files = filesEncoding
				encoding.filesKey = keyEncoding
				encoding.order = append(encoding.order, assetFieldFiles)
			default:
				return AssetDetails{}, keyFailure(FailureUnknownKey, textKey(key))
			}
		default:
			return AssetDetails{}, newFailure(Failure{Kind: FailureUnexpectedKeyType, KeyType: keyType})
		}
	}

	if !haveName {
		return AssetDetails{}, keyFailure(FailureMandatoryFieldMissing, textKey("name"))
	}
	if !haveImage {
		return AssetDetails{}, keyFailure(FailureMandatoryFieldMissing, textKey("image"))
	}
	if err := counter.finish(); err != nil {
		return AssetDetails{}, err
	}
	return details, nil
}

// decodeFileList reads the files array. The result is non-nil even when
// the array is empty, so presence survives a round trip.
func decodeFileList(reader WireReader) ([]FileDetails, LenEncoding, error) {
	length, err := reader.ArrayHeader()
	if err != nil {
		return nil, LenEncoding{}, err
	}
	files := []FileDetails{}
	for index := uint64(0); more(length, index); index++ {
		_, done, err := nextItem(reader, length)
		if err != nil {
			return nil, LenEncoding{}, err
		}
		if done {
			break
		}
		file, err := decodeFileDetails(reader)
		if err != nil {
			return nil, LenEncoding{}, annotate(err, indexSegment(index))
		}
		files = append(files, file)
	}
	return files, lenEncodingFrom(length), nil
}

func decodeFileDetails(reader WireReader) (FileDetails, error) {
	details, err := readFileDetails(reader)
	if err != nil {
		return FileDetails{}, annotate(err, "FileDetails")
	}
	return details, nil
}

func readFileDetails(reader WireReader) (FileDetails, error) {
	length, err := reader.MapHeader()
	if err != nil {
		return FileDetails{}, err
	}
	counter := newReadLen(length)
	if err := counter.readElems(3); err != nil {
		return FileDetails{}, err
	}

	var (
		details                          FileDetails
		haveName, haveMediaType, haveSrc bool
	)
	encoding := &details.encoding
	encoding.container = lenEncodingFrom(length)
	for read := uint64(0); more(length, read); read++ {
		keyType, done, err := nextItem(reader, length)
		if err != nil {
			return FileDetails{}, err
		}
		if done {
			break
		}
		switch keyType {
		case cborwire.TypeUnsignedInteger:
			return FileDetails{}, unknownUintKey(reader)
		case cborwire.TypeText:
			key, keyEncoding, err := readTextKey(reader)
			if err != nil {
				return FileDetails{}, err
			}
			switch key {
			case "src":
				if haveSrc {
					return FileDetails{}, keyFailure(FailureDuplicateKey, textKey(key))
				}
				if details.Src, err = decodeStringOrList(reader); err != nil {
					return FileDetails{}, annotate(err, key)
				}
				haveSrc = true
				encoding.srcKey = keyEncoding
				encoding.order = append(encoding.order, fileFieldSrc)
			case "name":
				if haveName {
					return FileDetails{}, keyFailure(FailureDuplicateKey, textKey(key))
				}
				if details.Name, err = decodeString64(reader); err != nil {
					return FileDetails{}, annotate(err, key)
				}
				haveName = true
				encoding.nameKey = keyEncoding
				encoding.order = append(encoding.order, fileFieldName)
			case "mediaType":
				if haveMediaType {
					return FileDetails{}, keyFailure(FailureDuplicateKey, textKey(key))
				}
				if details.MediaType, err = decodeString64(reader); err != nil {
					return FileDetails{}, annotate(err, key)
				}
				haveMediaType = true
				encoding.mediaTypeKey = keyEncoding
				encoding.order = append(encoding.order, fileFieldMediaType)
			default:
				return FileDetails{}, keyFailure(FailureUnknownKey, textKey(key))
			}
		default:
			return FileDetails{}, newFailure(Failure{Kind: FailureUnexpectedKeyType, KeyType: keyType})
		}
	}

	if !haveName {
		return FileDetails{}, keyFailure(FailureMandatoryFieldMissing, textKey("name"))
	}
	if !haveMediaType {
		return FileDetails{}, keyFailure(FailureMandatoryFieldMissing, textKey("mediaType"))
	}
	if !haveSrc {
		return FileDetails{}, keyFailure(FailureMandatoryFieldMissing, textKey("src"))
	}
	if err := counter.finish(); err != nil {
		return FileDetails{}, err
	}
	return details, nil
}

func decodeString64(reader WireReader) (String64, error) {
	text, framing, err := reader.Text()
	if err != nil {
		return String64{}, annotate(err, "String64")
	}
	if len(text) > MaxStringLength {
		return String64{}, annotate(rangeCheck(uint64(len(text)), 0, MaxStringLength), "String64")
	}
	return String64{value: text, encoding: stringEncodingFrom(framing, uint64(len(text)))}, nil
}

// decodeStringOrList tries the single-string variant, then the list
// variant, rewinding the reader between attempts.
func decodeStringOrList(reader WireReader) (StringOrList, error) {
	start := reader.Position()

	single, singleErr := decodeString64(reader)
	if singleErr == nil {
		return SingleString(single), nil
	}
	reader.Seek(start)

	list, listEncoding, listErr := decodeString64List(reader)
	if listErr == nil {
		return StringOrList{list: list, isList: true, listEncoding: listEncoding}, nil
	}
	reader.Seek(start)

	return StringOrList{}, annotate(newFailure(Failure{
		Kind:     FailureNoVariantMatched,
		Variants: []error{singleErr, listErr},
	}), "StringOrList")
}

func decodeString64List(reader WireReader) ([]String64, LenEncoding, error) {
	length, err := reader.ArrayHeader()
	if err != nil {
		return nil, LenEncoding{}, err
	}
	var list []String64
	for index := uint64(0); more(length, index); index++ {
		_, done, err := nextItem(reader, length)
		if err != nil {
			return nil, LenEncoding{}, err
		}
		if done {
			break
		}
		item, err := decodeString64(reader)
		if err != nil {
			return nil, LenEncoding{}, annotate(err, indexSegment(index))
		}
		list = append(list, item)
	}
	return list, lenEncodingFrom(length), nil
}
