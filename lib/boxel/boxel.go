// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package boxel converts between boxel keys and the letter-and-number
// suffix of a procedurally generated system name.
//
// A procedural name has the shape
//
//	<sector name> <A><B>-<C> <layer><remainder>-<system id>
//
// for example "Pru Euq CZ-K c9-12". The three letters are base-26
// digits of the boxel key, least significant first; the remainder is
// the boxel key divided by 26³ and is omitted along with its dash when
// it is zero ("Test Sector AB-C a7"). The layer letter is the cube
// layer, 'a' through 'h'. The system id may carry an embedded body id
// (see the address package).
package boxel

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	radix = 26

	// lettersSpan is the number of keys covered by three letters.
	lettersSpan = radix * radix * radix

	firstLayerLetter = 'a'
	lastLayerLetter  = 'h'
)

// KeyToLetters splits a boxel key into three base-26 letters and the
// remaining quotient.
func KeyToLetters(key uint64) (a, b, c byte, remainder uint64) {
	a = byte('A' + key%radix)
	b = byte('A' + key/radix%radix)
	c = byte('A' + key/(radix*radix)%radix)
	remainder = key / lettersSpan
	return a, b, c, remainder
}

// LettersToKey is the inverse of [KeyToLetters]. Letters must be
// upper-case 'A'..'Z'.
func LettersToKey(a, b, c byte, remainder uint64) uint64 {
	return uint64(a-'A') + radix*uint64(b-'A') + radix*radix*uint64(c-'A') + lettersSpan*remainder
}

// LayerLetter returns the lower-case letter for a cube layer.
func LayerLetter(cubeLayer uint8) byte {
	return firstLayerLetter + cubeLayer
}

// FormatSuffix renders the boxel and id portion of a procedural name:
// "AB-C a7", or "AB-C d3-1234" when the boxel key overflows three
// letters. systemID is printed as given, so a caller embedding a body id
// adds it first.
func FormatSuffix(cubeLayer uint8, boxelKey uint64, systemID uint64) string {
	a, b, c, remainder := KeyToLetters(boxelKey)

	var builder strings.Builder
	builder.WriteByte(a)
	builder.WriteByte(b)
	builder.WriteByte('-')
	builder.WriteByte(c)
	builder.WriteByte(' ')
	builder.WriteByte(LayerLetter(cubeLayer))
	if remainder != 0 {
		builder.WriteString(strconv.FormatUint(remainder, 10))
		builder.WriteByte('-')
	}
	builder.WriteString(strconv.FormatUint(systemID, 10))
	return builder.String()
}

// Suffix is the parsed final token of a procedural name.
type Suffix struct {
	CubeLayer      uint8
	BoxelRemainder uint64
	SystemID       uint64
}

// MalformedNameError reports a system name that cannot be parsed as a
// procedural name. Token is the offending part of the input.
type MalformedNameError struct {
	Token  string
	Reason string
}

func (e *MalformedNameError) Error() string {
	return fmt.Sprintf("malformed system name: %s: %q", e.Reason, e.Token)
}

func malformed(token, reason string) *MalformedNameError {
	return &MalformedNameError{Token: token, Reason: reason}
}

// ParseSuffix parses the layer/remainder/id token of a procedural name,
// such as "a7" or "d3-1234". If given a whole name, only its last
// space-delimited token is considered.
func ParseSuffix(text string) (Suffix, error) {
	token := text
	if index := strings.LastIndexByte(text, ' '); index >= 0 {
		token = text[index+1:]
	}
	if token == "" {
		return Suffix{}, malformed(text, "missing layer suffix")
	}

	layer := toLower(token[0])
	if layer < firstLayerLetter || layer > lastLayerLetter {
		return Suffix{}, malformed(token, "cube layer must be a letter a-h")
	}

	rest := token[1:]
	remainderText, idText := "0", rest
	if index := strings.LastIndexByte(rest, '-'); index >= 0 {
		remainderText, idText = rest[:index], rest[index+1:]
	}

	if !isDigits(idText) {
		return Suffix{}, malformed(token, "system id is not numeric")
	}
	if !isDigits(remainderText) {
		return Suffix{}, malformed(token, "boxel remainder is not numeric")
	}

	systemID, err := strconv.ParseUint(idText, 10, 64)
	if err != nil {
		return Suffix{}, malformed(token, "system id out of range")
	}
	remainder, err := strconv.ParseUint(remainderText, 10, 64)
	if err != nil || remainder > (1<<21)/lettersSpan {
		return Suffix{}, malformed(token, "boxel remainder out of range")
	}

	return Suffix{
		CubeLayer:      layer - firstLayerLetter,
		BoxelRemainder: remainder,
		SystemID:       systemID,
	}, nil
}

// Name is a procedural system name split into its parts.
type Name struct {
	// Sector is the sector name, whitespace-trimmed.
	Sector string

	// Letters are the three upper-case boxel letters in key order.
	Letters [3]byte

	Suffix
}

// BoxelKey reassembles the boxel key from the letters and remainder.
func (n Name) BoxelKey() uint64 {
	return LettersToKey(n.Letters[0], n.Letters[1], n.Letters[2], n.BoxelRemainder)
}

// WithSystemID renders the name with the given numeric id in place of
// the parsed one.
func (n Name) WithSystemID(systemID uint64) string {
	return n.Sector + " " + FormatSuffix(n.CubeLayer, n.BoxelKey(), systemID)
}

// ParseName splits a procedural system name into sector, boxel letters
// and suffix. Letters and the layer letter are accepted in either case.
// Runs of whitespace between words are collapsed.
func ParseName(text string) (Name, error) {
	words := strings.Fields(text)
	if len(words) < 3 {
		return Name{}, malformed(strings.TrimSpace(text), "expected <sector> <boxel> <suffix>")
	}

	suffix, err := ParseSuffix(words[len(words)-1])
	if err != nil {
		return Name{}, err
	}

	letters, ok := parseLetters(words[len(words)-2])
	if !ok {
		return Name{}, malformed(words[len(words)-2], "boxel must look like AB-C")
	}

	return Name{
		Sector:  strings.Join(words[:len(words)-2], " "),
		Letters: letters,
		Suffix:  suffix,
	}, nil
}

// LooksProcedural reports whether name has the shape of a procedural
// name: at least three words, a boxel token of the form AB-C and a final
// token starting with a layer letter. It does not check that the sector
// exists, so systems in radius sectors such as "Col 285 Sector" also
// match.
func LooksProcedural(name string) bool {
	words := strings.Fields(name)
	if len(words) < 3 {
		return false
	}
	last := words[len(words)-1]
	if last[0] < firstLayerLetter || last[0] > lastLayerLetter {
		return false
	}
	boxelToken := words[len(words)-2]
	if len(boxelToken) != 4 || boxelToken[2] != '-' {
		return false
	}
	for _, index := range []int{0, 1, 3} {
		if boxelToken[index] < 'A' || boxelToken[index] > 'Z' {
			return false
		}
	}
	return true
}

func parseLetters(token string) ([3]byte, bool) {
	if len(token) != 4 || token[2] != '-' {
		return [3]byte{}, false
	}
	letters := [3]byte{toUpper(token[0]), toUpper(token[1]), toUpper(token[3])}
	for _, letter := range letters {
		if letter < 'A' || letter > 'Z' {
			return [3]byte{}, false
		}
	}
	return letters, true
}

func isDigits(text string) bool {
	if text == "" {
		return false
	}
	for index := range len(text) {
		if text[index] < '0' || text[index] > '9' {
			return false
		}
	}
	return true
}

func toLower(character byte) byte {
	if character >= 'A' && character <= 'Z' {
		return character + ('a' - 'A')
	}
	return character
}

func toUpper(character byte) byte {
	if character >= 'a' && character <= 'z' {
		return character - ('a' - 'A')
	}
	return character
}
