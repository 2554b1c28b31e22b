// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports build version information for the edgalmap
// binary.
//
// Version information is injected at build time via -ldflags:
//
//	go build -ldflags "-X github.com/bureau-foundation/edgalmap/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// Binaries built with plain "go install" carry no ldflags; for those the
// commit, dirty flag and build time are read from the VCS stamp the Go
// toolchain embeds in the binary.
package version
