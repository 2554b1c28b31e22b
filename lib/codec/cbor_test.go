// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"testing"
)

// sampleRecord mirrors the shape of a sector table record: json tags
// only, nested struct, integer key.
type sampleRecord struct {
	Key      uint32         `json:"Key"`
	Name     string         `json:"PGN"`
	Position samplePosition `json:"Position"`
}

type samplePosition struct {
	X int `json:"SectorX"`
	Y int `json:"SectorY"`
	Z int `json:"SectorZ"`
}

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	original := sampleRecord{
		Key:      1 | 2<<7 | 3<<14,
		Name:     "Test Sector",
		Position: samplePosition{X: 1, Y: 2, Z: 3},
	}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Marshal produced empty output")
	}

	var decoded sampleRecord
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != original {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	table := map[string]any{
		"Wregoe":  uint64(1),
		"Synuefe": uint64(2),
		"Pru Euq": []uint64{3, 4},
	}

	first, err := Marshal(table)
	if err != nil {
		t.Fatalf("first Marshal: %v", err)
	}
	second, err := Marshal(table)
	if err != nil {
		t.Fatalf("second Marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("deterministic encoding violated: %x != %x", first, second)
	}
}

func TestDecoderStream(t *testing.T) {
	records := []sampleRecord{
		{Key: 1, Name: "Alpha"},
		{Key: 2, Name: "Beta", Position: samplePosition{X: 2}},
	}

	var buffer bytes.Buffer
	for _, record := range records {
		data, err := Marshal(record)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		buffer.Write(data)
	}

	decoder := NewDecoder(&buffer)
	for i, want := range records {
		var got sampleRecord
		if err := decoder.Decode(&got); err != nil {
			t.Fatalf("Decode record %d: %v", i, err)
		}
		if got != want {
			t.Errorf("record %d: got %+v, want %+v", i, got, want)
		}
	}
}

func TestDecodeIntoAnyUsesStringKeys(t *testing.T) {
	data, err := Marshal(map[string]any{"Sol": uint64(10477373803)})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded any
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	table, ok := decoded.(map[string]any)
	if !ok {
		t.Fatalf("decoded %T, want map[string]any", decoded)
	}
	if table["Sol"] != uint64(10477373803) {
		t.Errorf("Sol = %v (%T)", table["Sol"], table["Sol"])
	}
}

func TestUnmarshalInvalidCBOR(t *testing.T) {
	var record sampleRecord
	if err := Unmarshal([]byte{0xFF, 0xFE, 0xFD}, &record); err == nil {
		t.Error("Unmarshal should reject invalid CBOR")
	}
}
