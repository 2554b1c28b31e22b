// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package dataset reads the lookup table files edgalmap loads at
// startup.
//
// A table file is JSON or CBOR, optionally compressed. The encoding is
// chosen by file extension, compression first:
//
//	PGSectorNames.json        plain JSON
//	PGSectorNames.json.gz     gzip
//	NamedSystems.json.zst     zstd
//	NamedSystems.json.lz4     LZ4 frame
//	PGSectorNames.cbor        CBOR (see lib/codec)
//
// JSON tables are maintained by hand as well as by tools. [ReadFile]
// therefore accepts comments and trailing commas (the missing-sector
// template the CLI prints ends in a comma, ready to paste), and raw
// control characters inside strings, which the community sector table
// contains as tab padding around some names.
//
// Every file read carries a BLAKE3 [Fingerprint] of its decompressed
// content so logs identify exactly which table a process loaded.
package dataset

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/tidwall/jsonc"
	"github.com/zeebo/blake3"
)

// Encoding is the serialization format of a table file.
type Encoding string

const (
	EncodingJSON Encoding = "json"
	EncodingCBOR Encoding = "cbor"
)

// Compression is the compression wrapper of a table file.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
	CompressionLZ4  Compression = "lz4"
)

// Format describes how a table file is stored.
type Format struct {
	Encoding    Encoding
	Compression Compression
}

// DetectFormat derives the storage format from a file name.
func DetectFormat(path string) Format {
	name := strings.ToLower(filepath.Base(path))
	format := Format{Encoding: EncodingJSON, Compression: CompressionNone}

	switch filepath.Ext(name) {
	case ".gz":
		format.Compression = CompressionGzip
	case ".zst":
		format.Compression = CompressionZstd
	case ".lz4":
		format.Compression = CompressionLZ4
	}
	if format.Compression != CompressionNone {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}

	if filepath.Ext(name) == ".cbor" {
		format.Encoding = EncodingCBOR
	}
	return format
}

// Fingerprint is the BLAKE3 digest of a table's decompressed content.
type Fingerprint [32]byte

// String returns the full hex digest.
func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// Short returns the first twelve hex digits, enough to tell tables
// apart in logs.
func (f Fingerprint) Short() string {
	return hex.EncodeToString(f[:6])
}

// File is a table file read into memory.
type File struct {
	Path   string
	Format Format

	// Data is the decompressed content. For JSON tables it has been
	// normalized to strict JSON.
	Data []byte

	// Fingerprint covers the decompressed content before JSON
	// normalization.
	Fingerprint Fingerprint
}

// ReadFile reads, decompresses and normalizes a table file.
func ReadFile(path string) (*File, error) {
	format := DetectFormat(path)

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader, err := Decompress(bufio.NewReader(file), format.Compression)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	result := &File{
		Path:        path,
		Format:      format,
		Fingerprint: blake3.Sum256(raw),
		Data:        raw,
	}
	if format.Encoding == EncodingJSON {
		result.Data = NormalizeJSON(raw)
	}
	return result, nil
}

// Decompress wraps reader according to compression.
func Decompress(reader io.Reader, compression Compression) (io.ReadCloser, error) {
	switch compression {
	case CompressionNone:
		return io.NopCloser(reader), nil

	case CompressionGzip:
		gzipReader, err := gzip.NewReader(reader)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return gzipReader, nil

	case CompressionZstd:
		decoder, err := zstd.NewReader(reader)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return decoder.IOReadCloser(), nil

	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(reader)), nil

	default:
		return nil, fmt.Errorf("unsupported compression %q", compression)
	}
}

// NormalizeJSON converts hand-edited JSON to strict JSON: comments and
// trailing commas are removed and raw control characters inside
// strings are escaped. Content that is already strict JSON is returned
// with identical meaning.
func NormalizeJSON(data []byte) []byte {
	return escapeControlCharacters(jsonc.ToJSON(data))
}

// escapeControlCharacters rewrites raw bytes below 0x20 that appear
// inside JSON string literals as \u00XX escapes. Bytes outside strings
// are whitespace or invalid JSON either way and are left alone.
func escapeControlCharacters(data []byte) []byte {
	if !hasControlInString(data) {
		return data
	}

	var output bytes.Buffer
	output.Grow(len(data) + 64)
	inString, escaped := false, false
	for _, character := range data {
		switch {
		case !inString:
			if character == '"' {
				inString = true
			}
		case escaped:
			escaped = false
		case character == '\\':
			escaped = true
		case character == '"':
			inString = false
		case character < 0x20:
			fmt.Fprintf(&output, `\u%04x`, character)
			continue
		}
		output.WriteByte(character)
	}
	return output.Bytes()
}

func hasControlInString(data []byte) bool {
	inString, escaped := false, false
	for _, character := range data {
		switch {
		case !inString:
			inString = character == '"'
		case escaped:
			escaped = false
		case character == '\\':
			escaped = true
		case character == '"':
			inString = false
		case character < 0x20:
			return true
		}
	}
	return false
}
