// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"PGSectorNames.json", Format{EncodingJSON, CompressionNone}},
		{"/data/NamedSystems.json.gz", Format{EncodingJSON, CompressionGzip}},
		{"NamedSystems.JSON.ZST", Format{EncodingJSON, CompressionZstd}},
		{"sectors.cbor.lz4", Format{EncodingCBOR, CompressionLZ4}},
		{"sectors.cbor", Format{EncodingCBOR, CompressionNone}},
		{"sectors", Format{EncodingJSON, CompressionNone}},
	}
	for _, test := range tests {
		require.Equal(t, test.want, DetectFormat(test.path), test.path)
	}
}

func TestNormalizeJSON(t *testing.T) {
	input := []byte("{\n" +
		"  // hand-added entry\n" +
		"  \"names\": [\"\tPadded Sector\t\", \"Plain\",],\n" +
		"  \"escaped\": \"quote \\\" and tab\\t\",\n" +
		"}\n")

	normalized := NormalizeJSON(input)

	var decoded struct {
		Names   []string `json:"names"`
		Escaped string   `json:"escaped"`
	}
	require.NoError(t, json.Unmarshal(normalized, &decoded), "normalized: %s", normalized)
	require.Equal(t, []string{"\tPadded Sector\t", "Plain"}, decoded.Names)
	require.Equal(t, "quote \" and tab\t", decoded.Escaped)
}

func TestNormalizeJSONLeavesStrictInputAlone(t *testing.T) {
	input := []byte(`{"Key":1,"PGN":"Alpha"}`)
	var want, got map[string]any
	require.NoError(t, json.Unmarshal(input, &want))
	require.NoError(t, json.Unmarshal(NormalizeJSON(input), &got))
	require.Equal(t, want, got)
}

func writeCompressed(t *testing.T, path string, content []byte) {
	t.Helper()

	var buffer bytes.Buffer
	switch DetectFormat(path).Compression {
	case CompressionGzip:
		writer := gzip.NewWriter(&buffer)
		_, err := writer.Write(content)
		require.NoError(t, err)
		require.NoError(t, writer.Close())
	case CompressionZstd:
		writer, err := zstd.NewWriter(&buffer)
		require.NoError(t, err)
		_, err = writer.Write(content)
		require.NoError(t, err)
		require.NoError(t, writer.Close())
	case CompressionLZ4:
		writer := lz4.NewWriter(&buffer)
		_, err := writer.Write(content)
		require.NoError(t, err)
		require.NoError(t, writer.Close())
	default:
		buffer.Write(content)
	}
	require.NoError(t, os.WriteFile(path, buffer.Bytes(), 0o644))
}

func TestReadFileDecompresses(t *testing.T) {
	content := []byte(`{"Sol": 10477373803}`)
	directory := t.TempDir()

	var fingerprints []Fingerprint
	for _, name := range []string{"plain.json", "table.json.gz", "table.json.zst", "table.json.lz4"} {
		path := filepath.Join(directory, name)
		writeCompressed(t, path, content)

		file, err := ReadFile(path)
		require.NoError(t, err, name)
		require.JSONEq(t, string(content), string(file.Data), name)
		fingerprints = append(fingerprints, file.Fingerprint)
	}

	// The fingerprint covers decompressed content, so every variant of
	// the same table agrees.
	for _, fingerprint := range fingerprints[1:] {
		require.Equal(t, fingerprints[0], fingerprint)
	}
	require.Len(t, fingerprints[0].Short(), 12)
	require.Len(t, fingerprints[0].String(), 64)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "absent.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadFileCorruptGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json.gz")
	require.NoError(t, os.WriteFile(path, []byte("not gzip"), 0o644))
	_, err := ReadFile(path)
	require.Error(t, err)
}
