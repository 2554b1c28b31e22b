// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package sector maps procedurally generated sector names to sector
// coordinates and back.
//
// The table comes from the community-maintained PGSectorNames file:
//
//	{"ProceduralGeneratedSectorNames": [
//	  {"Key": 16514, "PGN": "Test Sector", "Position": {"SectorX": 2, "SectorY": 1, "SectorZ": 1}},
//	  ...
//	]}
//
// Key is SectorX | SectorY<<7 | SectorZ<<14. Names may carry stray
// whitespace padding, which is trimmed at load. Only boxel sectors are
// listed; radius sectors such as "Col 285 Sector" are not, so a
// position lookup for a system in one of those fails with
// [*NotFoundError].
//
// A [Directory] is immutable after [New] and safe for concurrent use.
package sector

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/kamstrup/intmap"

	"github.com/bureau-foundation/edgalmap/lib/address"
	"github.com/bureau-foundation/edgalmap/lib/codec"
	"github.com/bureau-foundation/edgalmap/lib/dataset"
)

// Position is a sector's coordinate in the sector grid.
type Position struct {
	X uint8 `json:"SectorX"`
	Y uint8 `json:"SectorY"`
	Z uint8 `json:"SectorZ"`
}

// Key returns the table key of the sector at this position.
func (p Position) Key() uint32 {
	return address.SectorKey(p.X, p.Y, p.Z)
}

// Entry is one record of the sector table.
type Entry struct {
	Key      uint32   `json:"Key"`
	Name     string   `json:"PGN"`
	Position Position `json:"Position"`
}

// document is the top-level shape of a sector table file.
type document struct {
	Sectors []Entry `json:"ProceduralGeneratedSectorNames"`
}

// Directory is the two read-only indices built from the sector table.
type Directory struct {
	names     *intmap.Map[uint32, string]
	positions map[string]namedPosition

	fingerprint dataset.Fingerprint
}

type namedPosition struct {
	name     string
	position Position
}

// TrimName strips whitespace and control padding from a sector name.
func TrimName(name string) string {
	return strings.TrimFunc(name, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	})
}

// foldName is the Name→Position index key. The game treats names
// case-insensitively, so the index does too.
func foldName(name string) string {
	return strings.ToLower(TrimName(name))
}

// New builds a Directory from table entries. It rejects positions that
// do not fit the sector coordinate fields, keys that disagree with
// their position, and duplicate keys or names.
func New(entries []Entry) (*Directory, error) {
	directory := &Directory{
		names:     intmap.New[uint32, string](len(entries)),
		positions: make(map[string]namedPosition, len(entries)),
	}

	for index, entry := range entries {
		name := TrimName(entry.Name)
		if name == "" {
			return nil, fmt.Errorf("sector entry %d (key %d): empty name", index, entry.Key)
		}
		position := entry.Position
		if position.X > 127 || position.Y > 63 || position.Z > 127 {
			return nil, fmt.Errorf("sector %q: position (%d,%d,%d) out of range", name, position.X, position.Y, position.Z)
		}
		if position.Key() != entry.Key {
			return nil, fmt.Errorf("sector %q: key %d does not match position (%d,%d,%d) (want %d)",
				name, entry.Key, position.X, position.Y, position.Z, position.Key())
		}
		if existing, ok := directory.names.Get(entry.Key); ok {
			return nil, fmt.Errorf("sector key %d listed twice (%q and %q)", entry.Key, existing, name)
		}
		folded := foldName(name)
		if existing, ok := directory.positions[folded]; ok {
			return nil, fmt.Errorf("sector name %q listed twice (keys %d and %d)", name, existing.position.Key(), entry.Key)
		}

		directory.names.Put(entry.Key, name)
		directory.positions[folded] = namedPosition{name: name, position: position}
	}
	return directory, nil
}

// Load reads a sector table file (JSON or CBOR, optionally compressed;
// see lib/dataset) and builds a Directory.
func Load(ctx context.Context, path string, logger *slog.Logger) (*Directory, error) {
	start := time.Now()

	file, err := dataset.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading sector table: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var parsed document
	switch file.Format.Encoding {
	case dataset.EncodingCBOR:
		err = codec.Unmarshal(file.Data, &parsed)
	default:
		err = json.Unmarshal(file.Data, &parsed)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing sector table %s: %w", path, err)
	}

	directory, err := New(parsed.Sectors)
	if err != nil {
		return nil, fmt.Errorf("sector table %s: %w", path, err)
	}
	directory.fingerprint = file.Fingerprint

	logger.Debug("sector table loaded",
		"path", path,
		"sectors", directory.Len(),
		"encoding", file.Format.Encoding,
		"compression", file.Format.Compression,
		"fingerprint", file.Fingerprint.Short(),
		"duration", time.Since(start),
	)
	return directory, nil
}

// Len returns the number of sectors in the directory.
func (d *Directory) Len() int {
	return d.names.Len()
}

// Fingerprint identifies the table file the directory was loaded from.
// It is zero for directories built directly with [New].
func (d *Directory) Fingerprint() dataset.Fingerprint {
	return d.fingerprint
}

// LookupName returns the sector name for a key. A missing key yields a
// [*NotFoundError] carrying a [Template] for the missing entry.
func (d *Directory) LookupName(key uint32) (string, error) {
	name, ok := d.names.Get(key)
	if !ok {
		x, y, z := address.SplitSectorKey(key)
		return "", &NotFoundError{
			Key:      key,
			Template: &Template{Key: key, Position: Position{X: x, Y: y, Z: z}},
		}
	}
	return name, nil
}

// LookupPosition returns the canonical name and position of a sector.
// The name is matched case-insensitively after trimming.
func (d *Directory) LookupPosition(name string) (string, Position, error) {
	entry, ok := d.positions[foldName(name)]
	if !ok {
		return "", Position{}, &NotFoundError{Name: TrimName(name)}
	}
	return entry.name, entry.position, nil
}

// NotFoundError reports a sector missing from the table. Lookups by key
// carry a Template; lookups by name carry the name.
type NotFoundError struct {
	Key      uint32
	Name     string
	Template *Template
}

func (e *NotFoundError) Error() string {
	if e.Template != nil {
		return fmt.Sprintf("sector %d (%d, %d, %d) missing from the sector table",
			e.Key, e.Template.Position.X, e.Template.Position.Y, e.Template.Position.Z)
	}
	return fmt.Sprintf("sector %q missing from the sector table", e.Name)
}

// Template is a sector table entry with the name left blank, for a
// human to complete and paste into the table.
type Template struct {
	Key      uint32
	Position Position
}

// String renders the template as a sector table line, trailing comma
// included.
func (t Template) String() string {
	return fmt.Sprintf(`{"Key": %d ,"PGN":"","Position":{"SectorX": %d, "SectorY": %d, "SectorZ": %d}},`,
		t.Key, t.Position.X, t.Position.Y, t.Position.Z)
}
