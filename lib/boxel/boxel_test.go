// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package boxel

import (
	"errors"
	"testing"
)

func TestLettersRoundTrip(t *testing.T) {
	for key := uint64(0); key < lettersSpan*50; key++ {
		a, b, c, remainder := KeyToLetters(key)
		if got := LettersToKey(a, b, c, remainder); got != key {
			t.Fatalf("LettersToKey(KeyToLetters(%d)) = %d", key, got)
		}
	}
}

func TestKeyToLetters(t *testing.T) {
	tests := []struct {
		key       uint64
		letters   string
		remainder uint64
	}{
		{0, "AAA", 0},
		{25, "ZAA", 0},
		{26, "ABA", 0},
		{676, "AAB", 0},
		{lettersSpan - 1, "ZZZ", 0},
		{lettersSpan, "AAA", 1},
		{98948, "SJQ", 5},
	}
	for _, test := range tests {
		a, b, c, remainder := KeyToLetters(test.key)
		if got := string([]byte{a, b, c}); got != test.letters || remainder != test.remainder {
			t.Errorf("KeyToLetters(%d) = %s,%d; want %s,%d", test.key, got, remainder, test.letters, test.remainder)
		}
	}
}

func TestFormatSuffix(t *testing.T) {
	tests := []struct {
		layer    uint8
		key      uint64
		systemID uint64
		want     string
	}{
		{0, 0, 7, "AA-A a7"},
		{0, 98948, 7, "SJ-Q a5-7"},
		{3, 26 + 2*676, 1234, "AB-C d1234"},
		{7, 0, 0, "AA-A h0"},
	}
	for _, test := range tests {
		if got := FormatSuffix(test.layer, test.key, test.systemID); got != test.want {
			t.Errorf("FormatSuffix(%d, %d, %d) = %q, want %q", test.layer, test.key, test.systemID, got, test.want)
		}
	}
}

func TestParseSuffix(t *testing.T) {
	tests := []struct {
		input string
		want  Suffix
	}{
		{"a7", Suffix{CubeLayer: 0, SystemID: 7}},
		{"d12-345", Suffix{CubeLayer: 3, BoxelRemainder: 12, SystemID: 345}},
		{"H0", Suffix{CubeLayer: 7}},
		{"Test Sector AB-C c5-99", Suffix{CubeLayer: 2, BoxelRemainder: 5, SystemID: 99}},
	}
	for _, test := range tests {
		got, err := ParseSuffix(test.input)
		if err != nil {
			t.Errorf("ParseSuffix(%q): %v", test.input, err)
			continue
		}
		if got != test.want {
			t.Errorf("ParseSuffix(%q) = %+v, want %+v", test.input, got, test.want)
		}
	}
}

func TestParseSuffixMalformed(t *testing.T) {
	tests := []struct {
		input string
		token string
	}{
		{"i7", "i7"},
		{"Sector AB-C z1", "z1"},
		{"a7x", "a7x"},
		{"a", "a"},
		{"ax-7", "ax-7"},
		{"a-7", "a-7"},
		{"c1-", "c1-"},
		{"a99999999999999999999999", "a99999999999999999999999"},
		{"Sector AB-C ", "Sector AB-C "},
	}
	for _, test := range tests {
		_, err := ParseSuffix(test.input)
		var malformedName *MalformedNameError
		if !errors.As(err, &malformedName) {
			t.Errorf("ParseSuffix(%q) error = %v, want *MalformedNameError", test.input, err)
			continue
		}
		if malformedName.Token != test.token {
			t.Errorf("ParseSuffix(%q) token = %q, want %q", test.input, malformedName.Token, test.token)
		}
	}
}

func TestParseName(t *testing.T) {
	name, err := ParseName("  Pru   Euq cz-k C9-12 ")
	if err != nil {
		t.Fatalf("ParseName: %v", err)
	}
	if name.Sector != "Pru Euq" {
		t.Errorf("Sector = %q", name.Sector)
	}
	if name.Letters != [3]byte{'C', 'Z', 'K'} {
		t.Errorf("Letters = %q", name.Letters[:])
	}
	if name.CubeLayer != 2 || name.BoxelRemainder != 9 || name.SystemID != 12 {
		t.Errorf("Suffix = %+v", name.Suffix)
	}
	if got := name.WithSystemID(12); got != "Pru Euq CZ-K c9-12" {
		t.Errorf("WithSystemID = %q", got)
	}
}

func TestParseNameRoundTripsFormat(t *testing.T) {
	for _, key := range []uint64{0, 1, 17575, 17576, 98948, 2097151} {
		text := "Synuefe " + FormatSuffix(4, key, 321)
		name, err := ParseName(text)
		if err != nil {
			t.Fatalf("ParseName(%q): %v", text, err)
		}
		if name.BoxelKey() != key {
			t.Errorf("ParseName(%q).BoxelKey() = %d, want %d", text, name.BoxelKey(), key)
		}
		if name.WithSystemID(321) != text {
			t.Errorf("WithSystemID = %q, want %q", name.WithSystemID(321), text)
		}
	}
}

func TestParseNameMalformed(t *testing.T) {
	for _, input := range []string{"Sol", "Alpha Centauri", "Col 285 Sector AB-C", "Sector ABC a1", "Sector A1-C a1"} {
		if _, err := ParseName(input); err == nil {
			t.Errorf("ParseName(%q) succeeded, want error", input)
		}
	}
}

func TestLooksProcedural(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Pru Euq CZ-K c9-12", true},
		{"Col 285 Sector AB-C d12-3", true},
		{"Sol", false},
		{"Alpha Centauri", false},
		{"NGC 2168 SB 987", false},
		{"HIP 12345 AB-C z1", false},
	}
	for _, test := range tests {
		if got := LooksProcedural(test.name); got != test.want {
			t.Errorf("LooksProcedural(%q) = %v, want %v", test.name, got, test.want)
		}
	}
}
