// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Fataler is the subset of testing.TB the helpers need.
type Fataler interface {
	Helper()
	Fatalf(format string, args ...any)
}

// SectorRecord is one row of a sector table fixture.
type SectorRecord struct {
	Name    string
	X, Y, Z int
}

// Key returns the table key for the record's position.
func (r SectorRecord) Key() int {
	return r.X | r.Y<<7 | r.Z<<14
}

// TestSector is the fixture sector at (1, 2, 3).
var TestSector = SectorRecord{Name: "Test Sector", X: 1, Y: 2, Z: 3}

// SectorTableJSON renders records in the PGSectorNames layout.
func SectorTableJSON(records ...SectorRecord) []byte {
	var builder strings.Builder
	builder.WriteString("{\"ProceduralGeneratedSectorNames\": [\n")
	for index, record := range records {
		name, _ := json.Marshal(record.Name)
		fmt.Fprintf(&builder, `  {"Key": %d, "PGN": %s, "Position": {"SectorX": %d, "SectorY": %d, "SectorZ": %d}}`,
			record.Key(), name, record.X, record.Y, record.Z)
		if index < len(records)-1 {
			builder.WriteByte(',')
		}
		builder.WriteByte('\n')
	}
	builder.WriteString("]}\n")
	return []byte(builder.String())
}

// WriteSectorTable writes a sector table named name in directory and
// returns its path. A ".gz" suffix gzip-compresses the file.
func WriteSectorTable(t Fataler, directory, name string, records ...SectorRecord) string {
	t.Helper()
	return WriteFile(t, directory, name, SectorTableJSON(records...))
}

// NamedEntry is one key of a named system table. A single id is written
// as a number, several as a list.
type NamedEntry struct {
	Name string
	IDs  []uint64
}

// NamedSystemsJSON renders entries as a JSON object in the given order.
func NamedSystemsJSON(entries ...NamedEntry) []byte {
	var builder strings.Builder
	builder.WriteString("{\n")
	for index, entry := range entries {
		name, _ := json.Marshal(entry.Name)
		builder.WriteString(" ")
		builder.Write(name)
		builder.WriteString(": ")
		if len(entry.IDs) == 1 {
			fmt.Fprintf(&builder, "%d", entry.IDs[0])
		} else {
			ids, _ := json.Marshal(entry.IDs)
			builder.Write(ids)
		}
		if index < len(entries)-1 {
			builder.WriteByte(',')
		}
		builder.WriteByte('\n')
	}
	builder.WriteString("}\n")
	return []byte(builder.String())
}

// WriteNamedSystems writes a named system table named name in directory
// and returns its path. A ".gz" suffix gzip-compresses the file.
func WriteNamedSystems(t Fataler, directory, name string, entries ...NamedEntry) string {
	t.Helper()
	return WriteFile(t, directory, name, NamedSystemsJSON(entries...))
}

// WriteFile writes content to directory/name, gzip-compressing it when
// the name ends in ".gz", and returns the path.
func WriteFile(t Fataler, directory, name string, content []byte) string {
	t.Helper()

	if strings.HasSuffix(name, ".gz") {
		var buffer bytes.Buffer
		writer := gzip.NewWriter(&buffer)
		if _, err := writer.Write(content); err != nil {
			t.Fatalf("compressing %s: %v", name, err)
		}
		if err := writer.Close(); err != nil {
			t.Fatalf("compressing %s: %v", name, err)
		}
		content = buffer.Bytes()
	}

	path := filepath.Join(directory, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}
