// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides edgalmap's standard CBOR encoding configuration.
//
// The lookup tables ship as JSON because that is what the community
// tooling produces, but a table can also be stored as CBOR: a smaller,
// faster-to-decode file with the same logical content. Every package
// that reads or writes CBOR goes through this package so encoding is
// identical everywhere. The encoder uses Core Deterministic Encoding
// (RFC 8949 §4.2): sorted map keys, smallest integer encoding, no
// indefinite-length items. Same logical data always produces identical
// bytes, so a table's fingerprint is stable across conversions.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For stream-oriented operations:
//
//	decoder := codec.NewDecoder(reader)
//
// # Struct Tag Rules
//
// Dataset record types carry `json` tags only. fxamacker/cbor v2 reads
// `json` tags as fallback when `cbor` tags are absent, so a single tag
// controls field naming for both formats and a CBOR table has exactly
// the field names of its JSON counterpart.
package codec
