// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package catalog loads the lookup tables a resolver needs, once, at
// startup.
package catalog

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bureau-foundation/edgalmap/lib/namedsystem"
	"github.com/bureau-foundation/edgalmap/lib/resolver"
	"github.com/bureau-foundation/edgalmap/lib/sector"
)

// Paths locates the table files.
type Paths struct {
	// Sectors is the sector table. Required.
	Sectors string

	// NamedSystems is the named system table. An empty path, or a path
	// to a file that does not exist, gives an empty table: custom names
	// then fall through to procedural parsing.
	NamedSystems string
}

// Catalog holds the loaded tables. Both are immutable.
type Catalog struct {
	Sectors      *sector.Directory
	NamedSystems *namedsystem.Table
}

// Load reads both tables concurrently. The first failure cancels the
// other load.
func Load(ctx context.Context, paths Paths, logger *slog.Logger) (*Catalog, error) {
	if paths.Sectors == "" {
		return nil, errors.New("no sector table configured")
	}

	start := time.Now()
	var catalog Catalog
	group, groupContext := errgroup.WithContext(ctx)

	group.Go(func() error {
		directory, err := sector.Load(groupContext, paths.Sectors, logger)
		if err != nil {
			return err
		}
		catalog.Sectors = directory
		return nil
	})

	group.Go(func() error {
		table, err := loadNamedSystems(groupContext, paths.NamedSystems, logger)
		if err != nil {
			return err
		}
		catalog.NamedSystems = table
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	logger.Debug("catalog loaded",
		"sectors", catalog.Sectors.Len(),
		"named_systems", catalog.NamedSystems.Len(),
		"duration", time.Since(start),
	)
	return &catalog, nil
}

func loadNamedSystems(ctx context.Context, path string, logger *slog.Logger) (*namedsystem.Table, error) {
	if path == "" {
		return namedsystem.Empty(), nil
	}
	table, err := namedsystem.Load(ctx, path, logger)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Info("named system table not found, custom names disabled", "path", path)
		return namedsystem.Empty(), nil
	}
	return table, err
}

// Resolver returns a resolver over the catalog's tables.
func (c *Catalog) Resolver(logger *slog.Logger) *resolver.Resolver {
	return resolver.New(c.Sectors, c.NamedSystems, logger)
}
