// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for edgalmap.
//
// Configuration comes from at most one file, named by the --config flag
// or the EDGALMAP_CONFIG environment variable, in that order. With
// neither, [Default] applies: the lookup tables are expected next to the
// edgalmap executable, which is how the tables have always been
// distributed. There is no further discovery.
//
// Variable expansion is performed on path fields after loading:
// ${HOME}, ${EDGALMAP_DATA} (the data directory) and ${VAR:-default}
// patterns are expanded. Relative paths in a config file are relative
// to the file's directory.
//
// Command line flags override config values; that merge happens in the
// command, not here.
//
// This package depends on no other edgalmap packages.
package config
