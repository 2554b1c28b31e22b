// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package address

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func TestWidthsSumTo64(t *testing.T) {
	for layer := uint8(0); layer <= MaxCubeLayer; layer++ {
		total := 0
		for _, field := range Widths(layer) {
			total += field.Width
		}
		if total != 64 {
			t.Errorf("layer %d: widths sum to %d, want 64", layer, total)
		}
		if LayerShift(layer) != 11+3*int(layer) {
			t.Errorf("LayerShift(%d) = %d", layer, LayerShift(layer))
		}
	}
}

// maxFields returns the largest in-range value of every field.
func maxFields(layer uint8) Fields {
	boxel := uint8(1)<<BoxelBits(layer) - 1
	return Fields{
		CubeLayer:      layer,
		BoxelX:         boxel,
		BoxelY:         boxel,
		BoxelZ:         boxel,
		SectorX:        127,
		SectorY:        63,
		SectorZ:        127,
		SystemID:       uint64(1)<<LayerShift(layer) - 1,
		EmbeddedBodyID: MaxBodyID,
	}
}

func TestEncodeMaxFieldsFillsAllBits(t *testing.T) {
	for layer := uint8(0); layer <= MaxCubeLayer; layer++ {
		fields := maxFields(layer)
		encoded, err := Encode(fields)
		if err != nil {
			t.Fatalf("layer %d: Encode: %v", layer, err)
		}
		// Every field at its maximum except the layer itself sets every
		// bit above the cube layer field.
		want := ^uint64(0)&^7 | uint64(layer)
		if encoded != want {
			t.Errorf("layer %d: Encode = %#x, want %#x", layer, encoded, want)
		}
		if decoded := Decode(encoded); decoded != fields {
			t.Errorf("layer %d: Decode = %+v, want %+v", layer, decoded, fields)
		}
	}
}

func TestRoundTripExtremes(t *testing.T) {
	for layer := uint8(0); layer <= MaxCubeLayer; layer++ {
		maximum := maxFields(layer)
		cases := []Fields{
			{CubeLayer: layer},
			maximum,
			{CubeLayer: layer, SectorX: maximum.SectorX, BoxelY: maximum.BoxelY, SystemID: 1},
			{CubeLayer: layer, SectorY: maximum.SectorY, BoxelZ: maximum.BoxelZ, EmbeddedBodyID: 1},
			{CubeLayer: layer, SectorZ: 1, BoxelX: maximum.BoxelX, SystemID: maximum.SystemID},
		}
		for _, fields := range cases {
			encoded, err := Encode(fields)
			if err != nil {
				t.Fatalf("Encode(%v): %v", fields, err)
			}
			if decoded := Decode(encoded); decoded != fields {
				t.Errorf("Decode(Encode(%v)) = %v", fields, decoded)
			}
		}
	}
}

func TestRoundTripRandom(t *testing.T) {
	random := rand.New(rand.NewPCG(1, 2))
	for range 20000 {
		layer := uint8(random.IntN(MaxCubeLayer + 1))
		boxelLimit := 1 << BoxelBits(layer)
		fields := Fields{
			CubeLayer:      layer,
			BoxelX:         uint8(random.IntN(boxelLimit)),
			BoxelY:         uint8(random.IntN(boxelLimit)),
			BoxelZ:         uint8(random.IntN(boxelLimit)),
			SectorX:        uint8(random.IntN(128)),
			SectorY:        uint8(random.IntN(64)),
			SectorZ:        uint8(random.IntN(128)),
			SystemID:       random.Uint64N(uint64(1) << LayerShift(layer)),
			EmbeddedBodyID: uint16(random.IntN(MaxBodyID + 1)),
		}
		encoded, err := Encode(fields)
		if err != nil {
			t.Fatalf("Encode(%v): %v", fields, err)
		}
		if decoded := Decode(encoded); decoded != fields {
			t.Fatalf("Decode(Encode(%v)) = %v", fields, decoded)
		}
	}
}

func TestDecodeEncodeIdentity(t *testing.T) {
	// Every 64-bit value decodes to in-range fields, so re-encoding
	// reproduces it exactly.
	random := rand.New(rand.NewPCG(3, 4))
	for range 20000 {
		address := random.Uint64()
		encoded, err := Encode(Decode(address))
		if err != nil {
			t.Fatalf("Encode(Decode(%#x)): %v", address, err)
		}
		if encoded != address {
			t.Fatalf("Encode(Decode(%#x)) = %#x", address, encoded)
		}
	}
}

func TestEncodeOverflow(t *testing.T) {
	tests := []struct {
		name   string
		fields Fields
		field  string
		width  int
	}{
		{"boxel x at layer h", Fields{CubeLayer: 7, BoxelX: 1}, "BoxelX", 0},
		{"boxel z at layer c", Fields{CubeLayer: 2, BoxelZ: 32}, "BoxelZ", 5},
		{"sector y", Fields{SectorY: 64}, "SectorY", 6},
		{"system id at layer a", Fields{SystemID: 1 << 11}, "SystemID", 11},
		{"body id", Fields{EmbeddedBodyID: 512}, "EmbeddedBodyID", 9},
		{"cube layer", Fields{CubeLayer: 8}, "CubeLayer", 3},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Encode(test.fields)
			var overflow *FieldOverflowError
			if !errors.As(err, &overflow) {
				t.Fatalf("Encode error = %v, want *FieldOverflowError", err)
			}
			if overflow.Field != test.field || overflow.Width != test.width {
				t.Errorf("overflow = %+v, want field %s width %d", overflow, test.field, test.width)
			}
		})
	}
}

func TestMustEncodePanicsOnOverflow(t *testing.T) {
	defer func() {
		recovered := recover()
		if _, ok := recovered.(*FieldOverflowError); !ok {
			t.Fatalf("recovered %v, want *FieldOverflowError", recovered)
		}
	}()
	MustEncode(Fields{CubeLayer: 7, BoxelY: 1})
}

func TestScenarioFields(t *testing.T) {
	fields := Fields{
		CubeLayer: 0,
		SectorX:   1,
		SectorY:   2,
		SectorZ:   3,
		BoxelX:    4,
		BoxelY:    5,
		BoxelZ:    6,
		SystemID:  7,
	}
	encoded := MustEncode(fields)
	if decoded := Decode(encoded); decoded != fields {
		t.Fatalf("Decode = %v, want %v", decoded, fields)
	}
	if key := fields.SectorKey(); key != 1|2<<7|3<<14 {
		t.Errorf("SectorKey = %d", key)
	}
	if key := fields.BoxelKey(); key != 98948 {
		t.Errorf("BoxelKey = %d, want 98948", key)
	}
}

func TestCalcBodyAddress(t *testing.T) {
	fields := Fields{CubeLayer: 3, SectorX: 9, SystemID: 42, EmbeddedBodyID: 17}
	systemAddress := MustEncode(fields)

	masked, body := CalcBodyAddress(systemAddress, 5)
	if Decode(masked).EmbeddedBodyID != 0 {
		t.Errorf("masked address still carries body id %d", Decode(masked).EmbeddedBodyID)
	}
	if got := Decode(body).EmbeddedBodyID; got != 5 {
		t.Errorf("body address carries body id %d, want 5", got)
	}
	withoutBody := fields
	withoutBody.EmbeddedBodyID = 0
	if Decode(masked) != withoutBody {
		t.Errorf("masking changed other fields: %v", Decode(masked))
	}

	for _, other := range []uint16{0, 1, 511} {
		again, _ := CalcBodyAddress(masked, other)
		if again != masked {
			t.Errorf("re-masking with body %d = %#x, want %#x", other, again, masked)
		}
	}
}

func TestFitsLayer(t *testing.T) {
	if !FitsLayer(BoxelKey(127, 127, 127), 0) {
		t.Error("layer a should fit 7-bit boxel coordinates")
	}
	if FitsLayer(BoxelKey(64, 0, 0), 1) {
		t.Error("layer b should reject x=64")
	}
	if !FitsLayer(0, 7) || FitsLayer(BoxelKey(0, 0, 1), 7) {
		t.Error("layer h accepts only the zero boxel")
	}
	if FitsLayer(1<<21, 0) {
		t.Error("bits above the z coordinate should not fit")
	}
}

func TestLayout(t *testing.T) {
	fields := Fields{CubeLayer: 2, SectorX: 9, BoxelZ: 3, SystemID: 42, EmbeddedBodyID: 17}
	layout := fields.Layout()
	if len(layout) != 9 {
		t.Fatalf("Layout has %d fields, want 9", len(layout))
	}
	encoded := MustEncode(fields)
	for _, field := range layout {
		value := encoded >> field.Offset & (uint64(1)<<field.Width - 1)
		if value != field.Value {
			t.Errorf("%s: bits at %d+%d hold %d, layout says %d", field.Name, field.Offset, field.Width, value, field.Value)
		}
	}
	last := layout[len(layout)-1]
	if last.Offset != 55 || last.Value != 17 {
		t.Errorf("body field = %+v, want offset 55 value 17", last)
	}
}
