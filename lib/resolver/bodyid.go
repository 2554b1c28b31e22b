// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"fmt"
	"strconv"

	"github.com/bureau-foundation/edgalmap/lib/address"
)

// BodyID is an optional body id. The zero value is unset, which is
// distinct from an explicit body 0.
type BodyID struct {
	value uint16
	set   bool
}

// Unset is the body id of a request that names no body.
var Unset BodyID

// BodyIDOf returns an explicit body id.
func BodyIDOf(id uint16) BodyID {
	return BodyID{value: id, set: true}
}

// Get returns the body id and whether one is set.
func (b BodyID) Get() (uint16, bool) {
	return b.value, b.set
}

// IsSet reports whether a body id was given.
func (b BodyID) IsSet() bool {
	return b.set
}

// Value returns the body id, or 0 when unset.
func (b BodyID) Value() uint16 {
	return b.value
}

// String returns the decimal id, or the empty string when unset.
func (b BodyID) String() string {
	if !b.set {
		return ""
	}
	return strconv.FormatUint(uint64(b.value), 10)
}

// Set parses a decimal body id. It makes *BodyID usable as a command
// line flag value, so an absent flag stays unset while "-b 0" is an
// explicit zero.
func (b *BodyID) Set(text string) error {
	value, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid body id %q: must be a non-negative integer", text)
	}
	if value > address.MaxBodyID {
		return &BodyIDRangeError{Value: value}
	}
	*b = BodyIDOf(uint16(value))
	return nil
}

// Type names the flag value type in usage output.
func (b *BodyID) Type() string {
	return "int"
}

// MarshalJSON renders an unset body id as null.
func (b BodyID) MarshalJSON() ([]byte, error) {
	if !b.set {
		return []byte("null"), nil
	}
	return strconv.AppendUint(nil, uint64(b.value), 10), nil
}

func (b BodyID) validate() error {
	if b.set && b.value > address.MaxBodyID {
		return &BodyIDRangeError{Value: uint64(b.value)}
	}
	return nil
}

// BodyIDRangeError reports an explicit body id that does not fit the
// nine body id bits of an address.
type BodyIDRangeError struct {
	Value uint64
}

func (e *BodyIDRangeError) Error() string {
	return fmt.Sprintf("body id %d out of range (maximum %d)", e.Value, address.MaxBodyID)
}
