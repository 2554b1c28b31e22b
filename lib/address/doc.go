// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package address packs and unpacks the 64-bit system address the game
// uses to identify a procedurally generated star system.
//
// A system address is a sequence of bit fields, least significant
// first:
//
//	CubeLayer      3 bits
//	BoxelZ         7-CubeLayer bits
//	SectorZ        7 bits
//	BoxelY         7-CubeLayer bits
//	SectorY        6 bits
//	BoxelX         7-CubeLayer bits
//	SectorX        7 bits
//	SystemID       11+3*CubeLayer bits
//	EmbeddedBodyID 9 bits
//
// The cube layer selects how many bits go to the boxel coordinates and
// how many to the system id. Every layer sums to exactly 64 bits, and the
// field order is part of the format: changing it changes every address.
//
// [Decode] never fails: any uint64 yields some [Fields]. [Encode] is the
// exact inverse and returns a [*FieldOverflowError] when a field value
// does not fit its width. Callers that have already validated their
// input use [MustEncode], which treats overflow as a programming error.
//
// [CalcBodyAddress] derives the body address of a body within a system
// by overlaying the body id on the top nine bits.
//
// [LayerShift] and [BoxelBits] are the two layer-dependent constants. A
// body id is embedded in the numeric part of a system name by adding
// bodyID << LayerShift(layer) to the system id.
//
// This package depends on no other edgalmap packages.
package address
