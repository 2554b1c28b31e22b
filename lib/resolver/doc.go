// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package resolver converts between system addresses and system names.
//
// A [Resolver] works in two directions. [Resolver.AddressToName] decodes
// a 64-bit system address, looks its sector up by key and renders the
// procedural name. [Resolver.NameToAddress] first tries the named system
// table ("Sol", "Shinrarta Dezhra") and otherwise parses a procedural
// name, looks its sector up by name and encodes the address.
// [Resolver.Resolve] picks the direction from the shape of its input.
//
// # Body ids
//
// A body within a system is addressed by adding BodyID<<LayerShift to
// the numeric id at the end of the name, or equivalently by placing the
// body id in the top nine bits of the address. Both directions accept an
// explicit [BodyID] alongside whatever body id the input already
// carries:
//
//   - explicit and embedded: the explicit id wins and a
//     [BodyIDConflict] warning is recorded;
//   - embedded only: the embedded id is used;
//   - neither: the body is unspecified, which is not the same as body 0.
//
// The unspecified state is kept all the way to the [Result]: a result
// has a body address only when some body id, possibly 0, was given.
//
// # Failures
//
// Malformed names return [*boxel.MalformedNameError], sectors missing
// from the table return [*sector.NotFoundError] alongside a partial
// result, and names shared by several systems return
// [*AmbiguousNameError] alongside a result listing the candidates. All
// three are recoverable. A [Resolver] holds no mutable state and is safe
// for concurrent use as long as its tables are.
package resolver
