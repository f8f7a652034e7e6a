// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cip25json

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/cip25/lib/cip25"
)

var (
	// ErrUnknownKey: an object key outside the closed schema.
	ErrUnknownKey = errors.New("unknown key")

	// ErrDuplicateKey: an object key appeared twice. Hex keys are
	// compared after decoding, so "AB" duplicates "ab".
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrMissingField: a required field is absent.
	ErrMissingField = errors.New("required field missing")

	// ErrUnexpectedType: a value has the wrong JSON type.
	ErrUnexpectedType = errors.New("unexpected JSON type")

	// ErrVersion: version is not 2.
	ErrVersion = errors.New("version must be 2")

	// ErrInvalidHex: a policy id or asset name key is not hex.
	ErrInvalidHex = errors.New("key is not hex")

	// ErrTrailingData: content follows the top-level object.
	ErrTrailingData = errors.New("trailing data after document")
)

// ParseError locates a Parse failure. Path is a JSON path rooted at
// "$". Err wraps one of the sentinel errors above, a String64
// *cip25.DecodeError, or a JSON syntax error.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "cip25json: parse " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse builds a document from its JSONC view. Object entry order
// becomes the order of the policy and asset maps. The result carries no
// framing, so encoding it yields canonical CBOR.
func Parse(data []byte) (*cip25.Metadata, error) {
	decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	decoder.UseNumber()
	p := &parser{decoder: decoder}

	label, err := p.document("$")
	if err != nil {
		return nil, err
	}
	if _, err := decoder.Token(); err != io.EOF {
		if err == nil {
			err = ErrTrailingData
		}
		return nil, &ParseError{Path: "$", Err: err}
	}
	return cip25.NewMetadata(label), nil
}

type parser struct {
	decoder *json.Decoder
}

func (p *parser) token(path string) (json.Token, error) {
	token, err := p.decoder.Token()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, &ParseError{Path: path, Err: err}
	}
	return token, nil
}

func (p *parser) expectDelim(path string, want json.Delim) error {
	token, err := p.token(path)
	if err != nil {
		return err
	}
	if delim, ok := token.(json.Delim); !ok || delim != want {
		return typeError(path, describeDelim(want), token)
	}
	return nil
}

// object consumes one JSON object, calling field for each key with the
// decoder positioned at the value. Exact duplicate keys are rejected
// before field runs.
func (p *parser) object(path string, field func(key string) error) error {
	if err := p.expectDelim(path, '{'); err != nil {
		return err
	}
	seen := make(map[string]bool)
	for p.decoder.More() {
		token, err := p.token(path)
		if err != nil {
			return err
		}
		key := token.(string)
		if seen[key] {
			return &ParseError{Path: path, Err: fmt.Errorf("%w %q", ErrDuplicateKey, key)}
		}
		seen[key] = true
		if err := field(key); err != nil {
			return err
		}
	}
	return p.expectDelim(path, '}')
}

func (p *parser) document(path string) (cip25.LabelMetadata, error) {
	var label cip25.LabelMetadata
	found := false
	err := p.object(path, func(key string) error {
		if key != strconv.Itoa(cip25.Label) {
			return unknownKey(path, key)
		}
		found = true
		var err error
		label, err = p.labelMetadata(path + "." + key)
		return err
	})
	if err != nil {
		return cip25.LabelMetadata{}, err
	}
	if !found {
		return cip25.LabelMetadata{}, missingField(path, strconv.Itoa(cip25.Label))
	}
	return label, nil
}

func (p *parser) labelMetadata(path string) (cip25.LabelMetadata, error) {
	var data *cip25.PolicyMap
	var haveVersion bool
	err := p.object(path, func(key string) error {
		fieldPath := path + "." + key
		switch key {
		case "data":
			var err error
			data, err = p.policyMap(fieldPath)
			return err
		case "version":
			haveVersion = true
			return p.version(fieldPath)
		default:
			return unknownKey(path, key)
		}
	})
	if err != nil {
		return cip25.LabelMetadata{}, err
	}
	if data == nil {
		return cip25.LabelMetadata{}, missingField(path, "data")
	}
	if !haveVersion {
		return cip25.LabelMetadata{}, missingField(path, "version")
	}
	return cip25.NewLabelMetadata(data), nil
}

func (p *parser) version(path string) error {
	token, err := p.token(path)
	if err != nil {
		return err
	}
	number, ok := token.(json.Number)
	if !ok {
		return typeError(path, "number", token)
	}
	if value, err := strconv.ParseUint(number.String(), 10, 64); err != nil || value != cip25.Version {
		return &ParseError{Path: path, Err: fmt.Errorf("%w, found %s", ErrVersion, number)}
	}
	return nil
}

func (p *parser) policyMap(path string) (*cip25.PolicyMap, error) {
	policies := cip25.NewOrderedMap[*cip25.AssetMap]()
	err := p.hexObject(path, func(policyID []byte, entryPath string) error {
		if _, exists := policies.Get(policyID); exists {
			return &ParseError{Path: path, Err: fmt.Errorf("%w h'%x'", ErrDuplicateKey, policyID)}
		}
		assets, err := p.assetMap(entryPath)
		if err != nil {
			return err
		}
		policies.Set(policyID, assets)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return policies, nil
}

func (p *parser) assetMap(path string) (*cip25.AssetMap, error) {
	assets := cip25.NewOrderedMap[cip25.AssetDetails]()
	err := p.hexObject(path, func(assetName []byte, entryPath string) error {
		if _, exists := assets.Get(assetName); exists {
			return &ParseError{Path: path, Err: fmt.Errorf("%w h'%x'", ErrDuplicateKey, assetName)}
		}
		details, err := p.assetDetails(entryPath)
		if err != nil {
			return err
		}
		assets.Set(assetName, details)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return assets, nil
}

// hexObject is object for maps keyed by hex-encoded byte strings.
func (p *parser) hexObject(path string, entry func(key []byte, entryPath string) error) error {
	return p.object(path, func(key string) error {
		entryPath := path + "[" + strconv.Quote(key) + "]"
		decoded, err := hex.DecodeString(key)
		if err != nil {
			return &ParseError{Path: entryPath, Err: fmt.Errorf("%w: %v", ErrInvalidHex, err)}
		}
		return entry(decoded, entryPath)
	})
}

func (p *parser) assetDetails(path string) (cip25.AssetDetails, error) {
	var name, mediaType cip25.String64
	var image, description cip25.StringOrList
	var haveName, haveImage, haveMediaType, haveDescription bool
	var files []cip25.FileDetails
	err := p.object(path, func(key string) error {
		fieldPath := path + "." + key
		var err error
		switch key {
		case "name":
			haveName = true
			name, err = p.string64(fieldPath)
		case "image":
			haveImage = true
			image, err = p.stringOrList(fieldPath)
		case "mediaType":
			haveMediaType = true
			mediaType, err = p.string64(fieldPath)
		case "description":
			haveDescription = true
			description, err = p.stringOrList(fieldPath)
		case "files":
			files, err = p.fileList(fieldPath)
		default:
			err = unknownKey(path, key)
		}
		return err
	})
	if err != nil {
		return cip25.AssetDetails{}, err
	}
	if !haveName {
		return cip25.AssetDetails{}, missingField(path, "name")
	}
	if !haveImage {
		return cip25.AssetDetails{}, missingField(path, "image")
	}

	details := cip25.NewAssetDetails(name, image)
	if haveMediaType {
		details.MediaType = &mediaType
	}
	if haveDescription {
		details.Description = &description
	}
	details.Files = files
	return details, nil
}

func (p *parser) fileList(path string) ([]cip25.FileDetails, error) {
	if err := p.expectDelim(path, '['); err != nil {
		return nil, err
	}
	files := []cip25.FileDetails{}
	for p.decoder.More() {
		file, err := p.fileDetails(path + "[" + strconv.Itoa(len(files)) + "]")
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	if err := p.expectDelim(path, ']'); err != nil {
		return nil, err
	}
	return files, nil
}

func (p *parser) fileDetails(path string) (cip25.FileDetails, error) {
	var name, mediaType cip25.String64
	var src cip25.StringOrList
	var haveName, haveMediaType, haveSrc bool
	err := p.object(path, func(key string) error {
		fieldPath := path + "." + key
		var err error
		switch key {
		case "name":
			haveName = true
			name, err = p.string64(fieldPath)
		case "mediaType":
			haveMediaType = true
			mediaType, err = p.string64(fieldPath)
		case "src":
			haveSrc = true
			src, err = p.stringOrList(fieldPath)
		default:
			err = unknownKey(path, key)
		}
		return err
	})
	if err != nil {
		return cip25.FileDetails{}, err
	}
	switch {
	case !haveName:
		return cip25.FileDetails{}, missingField(path, "name")
	case !haveMediaType:
		return cip25.FileDetails{}, missingField(path, "mediaType")
	case !haveSrc:
		return cip25.FileDetails{}, missingField(path, "src")
	}
	return cip25.NewFileDetails(name, mediaType, src), nil
}

func (p *parser) string64(path string) (cip25.String64, error) {
	token, err := p.token(path)
	if err != nil {
		return cip25.String64{}, err
	}
	text, ok := token.(string)
	if !ok {
		return cip25.String64{}, typeError(path, "string", token)
	}
	return newString64(path, text)
}

func (p *parser) stringOrList(path string) (cip25.StringOrList, error) {
	token, err := p.token(path)
	if err != nil {
		return cip25.StringOrList{}, err
	}
	switch value := token.(type) {
	case string:
		single, err := newString64(path, value)
		if err != nil {
			return cip25.StringOrList{}, err
		}
		return cip25.SingleString(single), nil
	case json.Delim:
		if value != '[' {
			return cip25.StringOrList{}, typeError(path, "string or array of strings", token)
		}
		var items []cip25.String64
		for p.decoder.More() {
			item, err := p.string64(path + "[" + strconv.Itoa(len(items)) + "]")
			if err != nil {
				return cip25.StringOrList{}, err
			}
			items = append(items, item)
		}
		if err := p.expectDelim(path, ']'); err != nil {
			return cip25.StringOrList{}, err
		}
		return cip25.StringList(items), nil
	default:
		return cip25.StringOrList{}, typeError(path, "string or array of strings", token)
	}
}

func newString64(path, text string) (cip25.String64, error) {
	value, err := cip25.NewString64(text)
	if err != nil {
		return cip25.String64{}, &ParseError{Path: path, Err: err}
	}
	return value, nil
}

func unknownKey(path, key string) error {
	return &ParseError{Path: path, Err: fmt.Errorf("%w %q", ErrUnknownKey, key)}
}

func missingField(path, key string) error {
	return &ParseError{Path: path, Err: fmt.Errorf("%w %q", ErrMissingField, key)}
}

func typeError(path, want string, found json.Token) error {
	return &ParseError{Path: path, Err: fmt.Errorf("%w: want %s, found %s", ErrUnexpectedType, want, describeToken(found))}
}

func describeDelim(delim json.Delim) string {
	switch delim {
	case '{', '}':
		return "object"
	default:
		return "array"
	}
}

func describeToken(token json.Token) string {
	switch value := token.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number:
		return "number " + value.String()
	case string:
		return "string"
	case json.Delim:
		return fmt.Sprintf("%q", value.String())
	default:
		return fmt.Sprintf("%T", token)
	}
}
