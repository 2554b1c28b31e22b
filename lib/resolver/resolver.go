// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/bureau-foundation/edgalmap/lib/address"
	"github.com/bureau-foundation/edgalmap/lib/boxel"
	"github.com/bureau-foundation/edgalmap/lib/namedsystem"
	"github.com/bureau-foundation/edgalmap/lib/sector"
)

// SectorLookup is the sector table as the resolver uses it.
// *sector.Directory implements it.
type SectorLookup interface {
	LookupName(key uint32) (string, error)
	LookupPosition(name string) (string, sector.Position, error)
}

// NamedLookup is the named system table as the resolver uses it.
// *namedsystem.Table implements it.
type NamedLookup interface {
	Resolve(name string) namedsystem.Match
}

// Resolver converts between system addresses and names using injected
// lookup tables.
type Resolver struct {
	sectors SectorLookup
	named   NamedLookup
	logger  *slog.Logger
}

// New returns a Resolver. A nil named table disables custom name
// lookup; a nil logger discards.
func New(sectors SectorLookup, named NamedLookup, logger *slog.Logger) *Resolver {
	if named == nil {
		named = namedsystem.Empty()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{sectors: sectors, named: named, logger: logger}
}

// Result is the outcome of a resolution. On recoverable failures it is
// returned alongside the error with whatever could be computed.
type Result struct {
	// Name is the system name to enter in the game, with the body id
	// embedded in its numeric id when a nonzero body is known.
	Name string `json:"name,omitempty"`

	// ReadableName is Name with the plain system id, set only when
	// Name carries an embedded body id.
	ReadableName string `json:"readable_name,omitempty"`

	// CustomName is the named system table spelling when the input
	// matched it.
	CustomName string `json:"custom_name,omitempty"`

	// ProceduralName is the procedural name of a custom named system,
	// when its sector is in the sector table.
	ProceduralName string `json:"procedural_name,omitempty"`

	// Fields are the decoded address fields. EmbeddedBodyID is the body
	// id carried by the input, before any explicit override.
	Fields address.Fields `json:"fields"`

	// SystemAddress is the address with the body id bits cleared.
	SystemAddress    uint64 `json:"system_address,omitempty"`
	HasSystemAddress bool   `json:"-"`

	BodyAddress    uint64 `json:"body_address,omitempty"`
	HasBodyAddress bool   `json:"-"`

	// BodyID is the effective body id after applying the override
	// policy.
	BodyID BodyID `json:"body_id"`

	// Candidates lists every id sharing an ambiguous custom name.
	Candidates []uint64 `json:"candidates,omitempty"`

	Warnings []Warning `json:"warnings,omitempty"`
}

// WarningKind classifies a non-fatal [Warning].
type WarningKind string

// BodyIDConflict is recorded when an explicit body id overrides a body
// id the input already carried.
const BodyIDConflict WarningKind = "body_id_conflict"

// Warning is a non-fatal condition noticed during resolution.
type Warning struct {
	Kind     WarningKind `json:"kind"`
	Embedded uint16      `json:"embedded"`
	Explicit uint16      `json:"explicit"`
}

func (w Warning) String() string {
	switch w.Kind {
	case BodyIDConflict:
		return fmt.Sprintf("input already carries body id %d; using explicit body id %d", w.Embedded, w.Explicit)
	default:
		return string(w.Kind)
	}
}

// AmbiguousNameError reports a custom name shared by several systems.
type AmbiguousNameError struct {
	Name       string
	Candidates []uint64
}

func (e *AmbiguousNameError) Error() string {
	return fmt.Sprintf("%q matches %d systems", e.Name, len(e.Candidates))
}

// Resolve converts a reference in either direction: a reference made
// only of digits is a system address, anything else is a name.
func (r *Resolver) Resolve(reference string, body BodyID) (*Result, error) {
	reference = strings.TrimSpace(reference)
	if reference != "" && isDigits(reference) {
		systemAddress, err := strconv.ParseUint(reference, 10, 64)
		if err != nil {
			return nil, &boxel.MalformedNameError{Token: reference, Reason: "address does not fit in 64 bits"}
		}
		return r.AddressToName(systemAddress, body)
	}
	return r.NameToAddress(reference, body)
}

// AddressToName decodes a system address and renders its procedural
// name. A sector missing from the table yields a [*sector.NotFoundError]
// and a result without a name.
func (r *Resolver) AddressToName(systemAddress uint64, body BodyID) (*Result, error) {
	if err := body.validate(); err != nil {
		return nil, err
	}

	fields := address.Decode(systemAddress)
	result := r.describe(systemAddress, fields, body)

	sectorName, err := r.sectors.LookupName(fields.SectorKey())
	if err != nil {
		return result, fmt.Errorf("resolving address %d: %w", systemAddress, err)
	}
	r.setName(result, sectorName)
	return result, nil
}

// NameToAddress resolves a custom or procedural system name to its
// address.
func (r *Resolver) NameToAddress(text string, body BodyID) (*Result, error) {
	if err := body.validate(); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)

	match := r.named.Resolve(text)
	switch match.Kind {
	case namedsystem.Unique:
		return r.custom(match, body), nil
	case namedsystem.Ambiguous:
		r.logger.Debug("ambiguous custom name", "name", match.Name, "candidates", len(match.IDs))
		return &Result{CustomName: match.Name, Candidates: match.IDs},
			&AmbiguousNameError{Name: match.Name, Candidates: match.IDs}
	}

	return r.procedural(text, body)
}

// custom resolves a uniquely matched named system. Named systems are
// usually outside the procedural sectors, so a missing sector is not an
// error here.
func (r *Resolver) custom(match namedsystem.Match, body BodyID) *Result {
	systemAddress := match.IDs[0]
	fields := address.Decode(systemAddress)

	result := r.describe(systemAddress, fields, body)
	result.CustomName = match.Name

	if sectorName, err := r.sectors.LookupName(fields.SectorKey()); err == nil {
		r.setName(result, sectorName)
		result.ProceduralName = result.Name
	}
	result.Name = match.Name
	result.ReadableName = ""
	return result
}

func (r *Resolver) procedural(text string, body BodyID) (*Result, error) {
	parsed, err := boxel.ParseName(text)
	if err != nil {
		return nil, err
	}
	words := strings.Fields(text)

	shift := address.LayerShift(parsed.CubeLayer)
	systemID := parsed.SystemID & (uint64(1)<<shift - 1)
	embedded := parsed.SystemID >> shift
	if embedded > address.MaxBodyID {
		return nil, &boxel.MalformedNameError{
			Token:  words[len(words)-1],
			Reason: fmt.Sprintf("system id too large for layer %c", boxel.LayerLetter(parsed.CubeLayer)),
		}
	}

	boxelKey := parsed.BoxelKey()
	if boxelKey > 1<<32-1 || !address.FitsLayer(uint32(boxelKey), parsed.CubeLayer) {
		return nil, &boxel.MalformedNameError{
			Token:  words[len(words)-2],
			Reason: fmt.Sprintf("boxel out of range for layer %c", boxel.LayerLetter(parsed.CubeLayer)),
		}
	}
	boxelX, boxelY, boxelZ := address.SplitBoxelKey(uint32(boxelKey))

	fields := address.Fields{
		CubeLayer:      parsed.CubeLayer,
		BoxelX:         boxelX,
		BoxelY:         boxelY,
		BoxelZ:         boxelZ,
		SystemID:       systemID,
		EmbeddedBodyID: uint16(embedded),
	}
	effective, warnings := r.bodyPolicy(fields.EmbeddedBodyID, body)
	result := &Result{
		Fields:   fields,
		BodyID:   effective,
		Warnings: warnings,
	}

	sectorName, position, err := r.sectors.LookupPosition(parsed.Sector)
	if err != nil {
		result.Name = parsed.WithSystemID(displayID(fields, effective))
		return result, fmt.Errorf("resolving %q: %w", text, err)
	}
	fields.SectorX, fields.SectorY, fields.SectorZ = position.X, position.Y, position.Z
	result.Fields = fields

	r.setAddress(result, address.MustEncode(fields))
	r.setName(result, sectorName)
	return result, nil
}

// describe fills in everything that depends only on the address.
func (r *Resolver) describe(systemAddress uint64, fields address.Fields, body BodyID) *Result {
	effective, warnings := r.bodyPolicy(fields.EmbeddedBodyID, body)
	result := &Result{
		Fields:   fields,
		BodyID:   effective,
		Warnings: warnings,
	}
	r.setAddress(result, systemAddress)
	return result
}

func (r *Resolver) setAddress(result *Result, systemAddress uint64) {
	masked, bodyAddress := address.CalcBodyAddress(systemAddress, result.BodyID.Value())
	result.SystemAddress, result.HasSystemAddress = masked, true
	if result.BodyID.IsSet() {
		result.BodyAddress, result.HasBodyAddress = bodyAddress, true
	}
}

func (r *Resolver) setName(result *Result, sectorName string) {
	fields := result.Fields
	prefix := sector.TrimName(sectorName) + " "
	boxelKey := uint64(fields.BoxelKey())

	result.Name = prefix + boxel.FormatSuffix(fields.CubeLayer, boxelKey, displayID(fields, result.BodyID))
	if result.BodyID.Value() != 0 {
		result.ReadableName = prefix + boxel.FormatSuffix(fields.CubeLayer, boxelKey, fields.SystemID)
	}
}

// bodyPolicy picks the effective body id from the embedded and explicit
// ones.
func (r *Resolver) bodyPolicy(embedded uint16, explicit BodyID) (BodyID, []Warning) {
	switch {
	case explicit.IsSet() && embedded != 0:
		warning := Warning{Kind: BodyIDConflict, Embedded: embedded, Explicit: explicit.Value()}
		r.logger.Warn("explicit body id overrides embedded body id",
			"embedded", embedded,
			"explicit", explicit.Value(),
		)
		return explicit, []Warning{warning}
	case explicit.IsSet():
		return explicit, nil
	case embedded != 0:
		return BodyIDOf(embedded), nil
	default:
		return Unset, nil
	}
}

// displayID is the numeric id shown in a name: the system id with the
// effective body id embedded.
func displayID(fields address.Fields, body BodyID) uint64 {
	return fields.SystemID + uint64(body.Value())<<address.LayerShift(fields.CubeLayer)
}

func isDigits(text string) bool {
	for index := 0; index < len(text); index++ {
		if text[index] < '0' || text[index] > '9' {
			return false
		}
	}
	return true
}

// IsRecoverable reports whether err is one of the resolution failures a
// caller is expected to report and move past.
func IsRecoverable(err error) bool {
	var (
		malformed *boxel.MalformedNameError
		notFound  *sector.NotFoundError
		ambiguous *AmbiguousNameError
		bodyRange *BodyIDRangeError
	)
	return errors.As(err, &malformed) ||
		errors.As(err, &notFound) ||
		errors.As(err, &ambiguous) ||
		errors.As(err, &bodyRange)
}
