// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cip25

import (
	"slices"

	"github.com/bureau-foundation/cip25/lib/cborwire"
)

// Field identifiers, in schema declaration order. Captured field order
// is recorded as a sequence of these.
const (
	fileFieldName = iota
	fileFieldMediaType
	fileFieldSrc
)

const (
	assetFieldName = iota
	assetFieldImage
	assetFieldMediaType
	assetFieldDescription
	assetFieldFiles
)

const (
	labelFieldData = iota
	labelFieldVersion
)

const metadataField721 = 0

// Default emission orders. Each coincides with length-first canonical
// ordering of the key text.
var (
	fileDefaultOrder     = []int{fileFieldSrc, fileFieldName, fileFieldMediaType}
	assetDefaultOrder    = []int{assetFieldName, assetFieldFiles, assetFieldImage, assetFieldMediaType, assetFieldDescription}
	labelDefaultOrder    = []int{labelFieldData, labelFieldVersion}
	metadataDefaultOrder = []int{metadataField721}
)

// FileDetails describes one file of an asset. All fields are required.
type FileDetails struct {
	Name      String64
	MediaType String64
	Src       StringOrList

	encoding fileDetailsEncoding
}

type fileDetailsEncoding struct {
	container    LenEncoding
	nameKey      StringEncoding
	mediaTypeKey StringEncoding
	srcKey       StringEncoding
	order        []int
}

// NewFileDetails returns a FileDetails with canonical framing.
func NewFileDetails(name, mediaType String64, src StringOrList) FileDetails {
	return FileDetails{Name: name, MediaType: mediaType, Src: src}
}

// Equal compares field values, ignoring framing.
func (f FileDetails) Equal(other FileDetails) bool {
	return f.Name.Equal(other.Name) &&
		f.MediaType.Equal(other.MediaType) &&
		f.Src.Equal(other.Src)
}

// AssetDetails describes one asset. Name and Image are required; the
// pointer fields are nil when absent. Files is nil when absent and a
// non-nil (possibly empty) slice when present.
type AssetDetails struct {
	Name        String64
	Image       StringOrList
	MediaType   *String64
	Description *StringOrList
	Files       []FileDetails

	encoding assetDetailsEncoding
}

type assetDetailsEncoding struct {
	container      LenEncoding
	nameKey        StringEncoding
	imageKey       StringEncoding
	mediaTypeKey   StringEncoding
	descriptionKey StringEncoding
	filesKey       StringEncoding
	files          LenEncoding
	order          []int
}

// NewAssetDetails returns an AssetDetails with only the required fields
// and canonical framing.
func NewAssetDetails(name String64, image StringOrList) AssetDetails {
	return AssetDetails{Name: name, Image: image}
}

// presentFields lists the fields that will be encoded.
func (a *AssetDetails) presentFields() []int {
	fields := []int{assetFieldName, assetFieldImage}
	if a.MediaType != nil {
		fields = append(fields, assetFieldMediaType)
	}
	if a.Description != nil {
		fields = append(fields, assetFieldDescription)
	}
	if a.Files != nil {
		fields = append(fields, assetFieldFiles)
	}
	return fields
}

// Equal compares field values, ignoring framing.
func (a AssetDetails) Equal(other AssetDetails) bool {
	if !a.Name.Equal(other.Name) || !a.Image.Equal(other.Image) {
		return false
	}
	if (a.MediaType == nil) != (other.MediaType == nil) ||
		(a.MediaType != nil && !a.MediaType.Equal(*other.MediaType)) {
		return false
	}
	if (a.Description == nil) != (other.Description == nil) ||
		(a.Description != nil && !a.Description.Equal(*other.Description)) {
		return false
	}
	if (a.Files == nil) != (other.Files == nil) {
		return false
	}
	return slices.EqualFunc(a.Files, other.Files, FileDetails.Equal)
}

// AssetMap maps asset names to their details.
type AssetMap = OrderedMap[AssetDetails]

// PolicyMap maps policy ids to the assets minted under them.
type PolicyMap = OrderedMap[*AssetMap]

// LabelMetadata is the value stored under label 721: the policy map
// plus the fixed version 2.
type LabelMetadata struct {
	Data *PolicyMap

	encoding labelEncoding
}

type labelEncoding struct {
	container  LenEncoding
	dataKey    StringEncoding
	versionKey StringEncoding

	// versionWidth is nil when the version was never decoded.
	versionWidth *cborwire.Sz
	order        []int
}

// NewLabelMetadata wraps data with canonical framing. A nil data is
// replaced by an empty map.
func NewLabelMetadata(data *PolicyMap) LabelMetadata {
	if data == nil {
		data = NewOrderedMap[*AssetMap]()
	}
	return LabelMetadata{Data: data}
}

// Version returns the schema version, which is always 2.
func (l LabelMetadata) Version() uint64 {
	return Version
}

// Asset looks up the details for one policy id and asset name.
func (l LabelMetadata) Asset(policyID, assetName []byte) (AssetDetails, bool) {
	assets, ok := l.Data.Get(policyID)
	if !ok || assets == nil {
		return AssetDetails{}, false
	}
	return assets.Get(assetName)
}

// SetAsset stores details under policyID and assetName, creating the
// policy entry if needed.
func (l *LabelMetadata) SetAsset(policyID, assetName []byte, details AssetDetails) {
	if l.Data == nil {
		l.Data = NewOrderedMap[*AssetMap]()
	}
	assets, ok := l.Data.Get(policyID)
	if !ok || assets == nil {
		assets = NewOrderedMap[AssetDetails]()
		l.Data.Set(policyID, assets)
	}
	assets.Set(assetName, details)
}

// Equal compares the policy maps entry by entry, including order.
func (l LabelMetadata) Equal(other LabelMetadata) bool {
	if l.Data.Len() != other.Data.Len() {
		return false
	}
	otherKeys := other.Data.Keys()
	index := 0
	for policyID, assets := range l.Data.All() {
		if string(policyID) != string(otherKeys[index]) {
			return false
		}
		otherAssets, _ := other.Data.Get(policyID)
		if !assetMapsEqual(assets, otherAssets) {
			return false
		}
		index++
	}
	return true
}

// EquivalentTo compares the policy maps ignoring entry order.
func (l LabelMetadata) EquivalentTo(other LabelMetadata) bool {
	if l.Data.Len() != other.Data.Len() {
		return false
	}
	for policyID, assets := range l.Data.All() {
		otherAssets, ok := other.Data.Get(policyID)
		if !ok || assets.Len() != otherAssets.Len() {
			return false
		}
		for assetName, details := range assets.All() {
			otherDetails, ok := otherAssets.Get(assetName)
			if !ok || !details.Equal(otherDetails) {
				return false
			}
		}
	}
	return true
}

func assetMapsEqual(a, b *AssetMap) bool {
	if a.Len() != b.Len() {
		return false
	}
	bKeys := b.Keys()
	index := 0
	for assetName, details := range a.All() {
		if string(assetName) != string(bKeys[index]) {
			return false
		}
		otherDetails, _ := b.Get(assetName)
		if !details.Equal(otherDetails) {
			return false
		}
		index++
	}
	return true
}

// Metadata is a complete document: a map with the single key 721.
type Metadata struct {
	Label721 LabelMetadata

	encoding metadataEncoding
}

type metadataEncoding struct {
	container LenEncoding
	// keyWidth is nil when the key was never decoded.
	keyWidth *cborwire.Sz
	order    []int
}

// NewMetadata wraps label with canonical framing.
func NewMetadata(label LabelMetadata) *Metadata {
	return &Metadata{Label721: label}
}

// Equal compares documents entry by entry, ignoring framing.
func (m *Metadata) Equal(other *Metadata) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.Label721.Equal(other.Label721)
}

// orderFor returns the captured order when it names each present field
// exactly once, and otherwise the default order restricted to the
// present fields.
func orderFor(captured, present, defaults []int, forceCanonical bool) []int {
	if !forceCanonical && len(captured) == len(present) && isPermutation(captured, present) {
		return captured
	}
	return slices.DeleteFunc(slices.Clone(defaults), func(field int) bool {
		return !slices.Contains(present, field)
	})
}

func isPermutation(order, fields []int) bool {
	seen := make(map[int]bool, len(order))
	for _, field := range order {
		if seen[field] || !slices.Contains(fields, field) {
			return false
		}
		seen[field] = true
	}
	return true
}
