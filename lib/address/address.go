// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package address

import (
	"fmt"
)

// Field widths that do not depend on the cube layer.
const (
	cubeLayerBits      = 3
	sectorXBits        = 7
	sectorYBits        = 6
	sectorZBits        = 7
	embeddedBodyIDBits = 9

	// MaxCubeLayer is the deepest cube layer (letter 'h').
	MaxCubeLayer = 1<<cubeLayerBits - 1

	// MaxBodyID is the largest body id that fits the embedded body
	// id field.
	MaxBodyID = 1<<embeddedBodyIDBits - 1

	// bodyAddressShift is the bit position of the embedded body id.
	// Everything below it is the system address proper.
	bodyAddressShift = 64 - embeddedBodyIDBits

	// SystemAddressMask clears the embedded body id bits.
	SystemAddressMask = uint64(1)<<bodyAddressShift - 1

	// boxelCoordinateStride is the per-axis stride of a boxel or sector
	// key. It is fixed at seven bits regardless of cube layer.
	boxelCoordinateStride = 7
)

// LayerShift returns the width of the system id field for the given
// cube layer, which is also the shift applied to a body id when it is
// embedded in the numeric part of a system name.
func LayerShift(cubeLayer uint8) int {
	return 11 + 3*int(cubeLayer)
}

// BoxelBits returns the width of each of the three boxel coordinate
// fields for the given cube layer.
func BoxelBits(cubeLayer uint8) int {
	return 7 - int(cubeLayer)
}

// Fields is a system address split into its components.
type Fields struct {
	CubeLayer      uint8
	BoxelX         uint8
	BoxelY         uint8
	BoxelZ         uint8
	SectorX        uint8
	SectorY        uint8
	SectorZ        uint8
	SystemID       uint64
	EmbeddedBodyID uint16
}

// FieldWidth names a field and its width in bits.
type FieldWidth struct {
	Name  string
	Width int
}

// Widths returns the field layout for a cube layer, least significant
// field first. The widths always sum to 64.
func Widths(cubeLayer uint8) []FieldWidth {
	boxel := BoxelBits(cubeLayer)
	return []FieldWidth{
		{"CubeLayer", cubeLayerBits},
		{"BoxelZ", boxel},
		{"SectorZ", sectorZBits},
		{"BoxelY", boxel},
		{"SectorY", sectorYBits},
		{"BoxelX", boxel},
		{"SectorX", sectorXBits},
		{"SystemID", LayerShift(cubeLayer)},
		{"EmbeddedBodyID", embeddedBodyIDBits},
	}
}

// FieldValue is one field of an address with its bit position.
type FieldValue struct {
	Name   string `json:"name"`
	Offset int    `json:"offset"`
	Width  int    `json:"width"`
	Value  uint64 `json:"value"`
}

// Layout lists the fields with their bit offsets, least significant
// first, in the order of [Widths].
func (f Fields) Layout() []FieldValue {
	values := []uint64{
		uint64(f.CubeLayer),
		uint64(f.BoxelZ),
		uint64(f.SectorZ),
		uint64(f.BoxelY),
		uint64(f.SectorY),
		uint64(f.BoxelX),
		uint64(f.SectorX),
		f.SystemID,
		uint64(f.EmbeddedBodyID),
	}

	layout := make([]FieldValue, 0, len(values))
	offset := 0
	for index, width := range Widths(f.CubeLayer) {
		layout = append(layout, FieldValue{
			Name:   width.Name,
			Offset: offset,
			Width:  width.Width,
			Value:  values[index],
		})
		offset += width.Width
	}
	return layout
}

// bitReader consumes fields from the low end of an address.
type bitReader struct {
	remaining uint64
}

func (r *bitReader) take(width int) uint64 {
	if width == 0 {
		return 0
	}
	value := r.remaining & (uint64(1)<<width - 1)
	r.remaining >>= width
	return value
}

// Decode splits a system address into its fields. Every input decodes;
// whether the result names a real system is for the caller to judge.
func Decode(address uint64) Fields {
	reader := bitReader{remaining: address}

	var fields Fields
	fields.CubeLayer = uint8(reader.take(cubeLayerBits))
	boxel := BoxelBits(fields.CubeLayer)
	fields.BoxelZ = uint8(reader.take(boxel))
	fields.SectorZ = uint8(reader.take(sectorZBits))
	fields.BoxelY = uint8(reader.take(boxel))
	fields.SectorY = uint8(reader.take(sectorYBits))
	fields.BoxelX = uint8(reader.take(boxel))
	fields.SectorX = uint8(reader.take(sectorXBits))
	fields.SystemID = reader.take(LayerShift(fields.CubeLayer))
	fields.EmbeddedBodyID = uint16(reader.take(embeddedBodyIDBits))
	return fields
}

// FieldOverflowError reports a field value with bits set above its
// declared width.
type FieldOverflowError struct {
	Field string
	Value uint64
	Width int
}

func (e *FieldOverflowError) Error() string {
	return fmt.Sprintf("address field %s: value %d does not fit in %d bits", e.Field, e.Value, e.Width)
}

// bitWriter accumulates fields from the high end of an address.
type bitWriter struct {
	accumulator uint64
	err         error
}

func (w *bitWriter) put(name string, value uint64, width int) {
	if w.err != nil {
		return
	}
	if width < 64 && value>>width != 0 {
		w.err = &FieldOverflowError{Field: name, Value: value, Width: width}
		return
	}
	w.accumulator = w.accumulator<<width | value
}

// Encode packs fields into a system address. It returns a
// [*FieldOverflowError] for the first field (in packing order) whose
// value does not fit its width.
func Encode(fields Fields) (uint64, error) {
	if fields.CubeLayer > MaxCubeLayer {
		return 0, &FieldOverflowError{Field: "CubeLayer", Value: uint64(fields.CubeLayer), Width: cubeLayerBits}
	}
	boxel := BoxelBits(fields.CubeLayer)

	var writer bitWriter
	writer.put("EmbeddedBodyID", uint64(fields.EmbeddedBodyID), embeddedBodyIDBits)
	writer.put("SystemID", fields.SystemID, LayerShift(fields.CubeLayer))
	writer.put("SectorX", uint64(fields.SectorX), sectorXBits)
	writer.put("BoxelX", uint64(fields.BoxelX), boxel)
	writer.put("SectorY", uint64(fields.SectorY), sectorYBits)
	writer.put("BoxelY", uint64(fields.BoxelY), boxel)
	writer.put("SectorZ", uint64(fields.SectorZ), sectorZBits)
	writer.put("BoxelZ", uint64(fields.BoxelZ), boxel)
	writer.put("CubeLayer", uint64(fields.CubeLayer), cubeLayerBits)
	if writer.err != nil {
		return 0, writer.err
	}
	return writer.accumulator, nil
}

// MustEncode is [Encode] for inputs the caller has already validated.
// It panics with the [*FieldOverflowError] on overflow.
func MustEncode(fields Fields) uint64 {
	address, err := Encode(fields)
	if err != nil {
		panic(err)
	}
	return address
}

// Validate reports whether every field fits its width, without
// encoding.
func (f Fields) Validate() error {
	_, err := Encode(f)
	return err
}

// CalcBodyAddress clears the embedded body id bits of systemAddress and
// returns that masked address together with the body address formed by
// placing bodyID in the cleared bits.
func CalcBodyAddress(systemAddress uint64, bodyID uint16) (masked, body uint64) {
	masked = systemAddress & SystemAddressMask
	body = uint64(bodyID)<<bodyAddressShift | masked
	return masked, body
}

// SectorKey packs sector coordinates into the key used by the sector
// name table.
func SectorKey(x, y, z uint8) uint32 {
	return uint32(x) | uint32(y)<<boxelCoordinateStride | uint32(z)<<(2*boxelCoordinateStride)
}

// SplitSectorKey is the inverse of [SectorKey].
func SplitSectorKey(key uint32) (x, y, z uint8) {
	const mask = 1<<boxelCoordinateStride - 1
	return uint8(key & mask), uint8(key >> boxelCoordinateStride & mask), uint8(key >> (2 * boxelCoordinateStride) & mask)
}

// BoxelKey packs boxel coordinates into the integer rendered as the
// boxel letters of a system name.
func BoxelKey(x, y, z uint8) uint32 {
	return SectorKey(x, y, z)
}

// SplitBoxelKey is the inverse of [BoxelKey]. Bits above the third
// coordinate are ignored; see [FitsLayer].
func SplitBoxelKey(key uint32) (x, y, z uint8) {
	return SplitSectorKey(key)
}

// FitsLayer reports whether a boxel key's coordinates all fit in the
// boxel width of the given cube layer and no bits lie above them.
func FitsLayer(boxelKey uint32, cubeLayer uint8) bool {
	if cubeLayer > MaxCubeLayer {
		return false
	}
	if boxelKey>>(3*boxelCoordinateStride) != 0 {
		return false
	}
	x, y, z := SplitBoxelKey(boxelKey)
	limit := uint8(1) << BoxelBits(cubeLayer)
	return x < limit && y < limit && z < limit
}

// SectorKey returns the sector table key for these fields.
func (f Fields) SectorKey() uint32 {
	return SectorKey(f.SectorX, f.SectorY, f.SectorZ)
}

// BoxelKey returns the boxel key for these fields.
func (f Fields) BoxelKey() uint32 {
	return BoxelKey(f.BoxelX, f.BoxelY, f.BoxelZ)
}

// String renders the fields for logs and diagnostics.
func (f Fields) String() string {
	return fmt.Sprintf("layer=%c sector=(%d,%d,%d) boxel=(%d,%d,%d) system=%d body=%d",
		'a'+f.CubeLayer, f.SectorX, f.SectorY, f.SectorZ,
		f.BoxelX, f.BoxelY, f.BoxelZ, f.SystemID, f.EmbeddedBodyID)
}
