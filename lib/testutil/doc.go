// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for edgalmap packages.
//
// [WriteSectorTable] and [WriteNamedSystems] write lookup table files in
// the on-disk formats the loaders read, so tests exercise the real
// parsing path instead of building directories in memory. Named system
// tables are written from an ordered list of [NamedEntry] values because
// insertion order is significant for duplicate names and a Go map would
// lose it.
//
// [TestSector] is the "Test Sector" fixture shared by the resolver,
// catalog and CLI tests.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no edgalmap-internal dependencies.
package testutil
