// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package namedsystem resolves hand-named star systems ("Sol", "Shinrarta
// Dezhra") to their system addresses.
//
// The table is a JSON object mapping each name to one id, or to a list
// of ids when several systems share it:
//
//	{
//	 "NGC 2168 SB 987": [1, 2, 3, 4],
//	 "Sol": 10477373803
//	}
//
// Names match case-insensitively, as the game's search does. Distinct
// keys that differ only in case ("R Centauri", "r Centauri") collapse
// into one entry whose ids keep the order the file lists them in. Ids
// are never deduplicated or merged.
//
// A [Table] is immutable once built and safe for concurrent use.
package namedsystem

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/bureau-foundation/edgalmap/lib/boxel"
	"github.com/bureau-foundation/edgalmap/lib/dataset"
)

// Kind classifies a lookup result.
type Kind int

const (
	NotFound Kind = iota
	Unique
	Ambiguous
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case Unique:
		return "unique"
	case Ambiguous:
		return "ambiguous"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Match is the result of [Table.Resolve].
type Match struct {
	Kind Kind

	// Name is the spelling of the first table entry that matched.
	Name string

	// IDs holds one id for Unique and every candidate, in table order,
	// for Ambiguous.
	IDs []uint64
}

// Table is the case-insensitive name→ids index.
type Table struct {
	ids     map[string][]uint64
	display map[string]string

	fingerprint dataset.Fingerprint
}

// Builder accumulates entries in insertion order.
type Builder struct {
	ids     map[string][]uint64
	display map[string]string
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		ids:     make(map[string][]uint64),
		display: make(map[string]string),
	}
}

func fold(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Add appends ids under name. Calling Add again with the same name, in
// any case, appends rather than replaces.
func (b *Builder) Add(name string, ids ...uint64) {
	key := fold(name)
	if _, ok := b.display[key]; !ok {
		b.display[key] = strings.TrimSpace(name)
	}
	b.ids[key] = append(b.ids[key], ids...)
}

// Build returns the finished Table. The Builder must not be used
// afterwards.
func (b *Builder) Build() *Table {
	table := &Table{ids: b.ids, display: b.display}
	b.ids, b.display = nil, nil
	return table
}

// Empty returns a table with no entries.
func Empty() *Table {
	return &Table{ids: map[string][]uint64{}, display: map[string]string{}}
}

// Resolve looks name up case-insensitively.
func (t *Table) Resolve(name string) Match {
	key := fold(name)
	ids := t.ids[key]
	switch len(ids) {
	case 0:
		return Match{Kind: NotFound}
	case 1:
		return Match{Kind: Unique, Name: t.display[key], IDs: []uint64{ids[0]}}
	default:
		return Match{Kind: Ambiguous, Name: t.display[key], IDs: append([]uint64(nil), ids...)}
	}
}

// Count returns how many systems carry name, case-insensitively.
func (t *Table) Count(name string) int {
	return len(t.ids[fold(name)])
}

// Len returns the number of distinct case-folded names.
func (t *Table) Len() int {
	return len(t.ids)
}

// Fingerprint identifies the table file the table was loaded from.
func (t *Table) Fingerprint() dataset.Fingerprint {
	return t.fingerprint
}

// Load reads a named system table file (see lib/dataset for supported
// compression) and builds a Table. Entries whose names have the shape of
// a procedural name are kept but counted in a warning, since they
// usually mean the table was built without filtering.
func Load(ctx context.Context, path string, logger *slog.Logger) (*Table, error) {
	start := time.Now()

	file, err := dataset.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading named system table: %w", err)
	}
	if file.Format.Encoding != dataset.EncodingJSON {
		return nil, fmt.Errorf("named system table %s: only JSON is supported, not %s", path, file.Format.Encoding)
	}

	builder := NewBuilder()
	stats, err := decode(ctx, bytes.NewReader(file.Data), builder)
	if err != nil {
		return nil, fmt.Errorf("parsing named system table %s: %w", path, err)
	}
	table := builder.Build()
	table.fingerprint = file.Fingerprint

	if stats.procedural > 0 {
		logger.Warn("named system table contains procedural-looking names",
			"path", path,
			"count", stats.procedural,
		)
	}
	logger.Debug("named system table loaded",
		"path", path,
		"entries", stats.entries,
		"names", table.Len(),
		"collisions", stats.entries-table.Len(),
		"compression", file.Format.Compression,
		"fingerprint", file.Fingerprint.Short(),
		"duration", time.Since(start),
	)
	return table, nil
}

type decodeStats struct {
	entries    int
	procedural int
}

// decode streams the top-level object so key order survives; decoding
// into a map would lose it.
func decode(ctx context.Context, reader io.Reader, builder *Builder) (decodeStats, error) {
	var stats decodeStats

	decoder := json.NewDecoder(reader)

	token, err := decoder.Token()
	if err != nil {
		return stats, err
	}
	if delimiter, ok := token.(json.Delim); !ok || delimiter != '{' {
		return stats, errors.New("expected a JSON object")
	}

	for decoder.More() {
		if stats.entries%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
		}

		token, err := decoder.Token()
		if err != nil {
			return stats, err
		}
		name, ok := token.(string)
		if !ok {
			return stats, fmt.Errorf("expected a name, got %v", token)
		}

		var value json.RawMessage
		if err := decoder.Decode(&value); err != nil {
			return stats, fmt.Errorf("%q: %w", name, err)
		}
		ids, err := parseIDs(value)
		if err != nil {
			return stats, fmt.Errorf("%q: %w", name, err)
		}

		builder.Add(name, ids...)
		stats.entries++
		if boxel.LooksProcedural(name) {
			stats.procedural++
		}
	}

	if _, err := decoder.Token(); err != nil {
		return stats, err
	}
	return stats, nil
}

// parseIDs accepts a single id or a non-empty list of ids.
func parseIDs(value json.RawMessage) ([]uint64, error) {
	trimmed := bytes.TrimSpace(value)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var ids []uint64
		if err := json.Unmarshal(trimmed, &ids); err != nil {
			return nil, fmt.Errorf("id list: %w", err)
		}
		if len(ids) == 0 {
			return nil, errors.New("empty id list")
		}
		return ids, nil
	}

	var id uint64
	if err := json.Unmarshal(trimmed, &id); err != nil {
		return nil, fmt.Errorf("id: %w", err)
	}
	return []uint64{id}, nil
}
