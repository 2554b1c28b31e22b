// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the edgalmap command tree.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/edgalmap/cmd/edgalmap/cli"
	"github.com/bureau-foundation/edgalmap/lib/clipboard"
)

// Environment is the process context commands write to.
type Environment struct {
	Stdout io.Writer
	Stderr io.Writer

	// Clipboard receives resolved names. Nil selects a sink from the
	// configured clipboard mode.
	Clipboard clipboard.Sink
}

func (e Environment) withDefaults() Environment {
	if e.Stdout == nil {
		e.Stdout = os.Stdout
	}
	if e.Stderr == nil {
		e.Stderr = os.Stderr
	}
	return e
}

// Root returns the edgalmap root command.
func Root(env Environment) *cli.Command {
	env = env.withDefaults()

	var params resolveParams
	return &cli.Command{
		Name:    "edgalmap",
		Summary: "Convert between system addresses and galaxy map names",
		Description: `Convert between a system address and the name to type into the galaxy map.

Given a system address (the SystemAddress field of a journal event),
edgalmap prints the procedural name of the system. Given a procedural
name such as "Pru Euq AB-C d12-345", it prints the system address. With
--body-id, the body id is embedded in the name so the galaxy map
search lands on that body. The resulting name is copied to the
clipboard.

Hand-named systems ("Sol") resolve through the named system table.`,
		Usage: "edgalmap [flags] <system name | system address>",
		Examples: []cli.Example{
			{
				Description: "Name a system from its journal address",
				Command:     "edgalmap 10477373803",
			},
			{
				Description: "Target body 5 of a procedural system",
				Command:     "edgalmap -b 5 Pru Euq AB-C d12-345",
			},
			{
				Description: "Show the address fields",
				Command:     "edgalmap decode 10477373803",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("edgalmap", &params)
		},
		Subcommands: []*cli.Command{
			decodeCommand(env),
			encodeCommand(env),
			versionCommand(env),
		},
		Logger: func() *slog.Logger {
			level := slog.LevelWarn
			if params.Verbose {
				level = slog.LevelDebug
			}
			return cli.NewCommandLogger(env.Stderr, level, "auto")
		},
		Stderr: env.Stderr,
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			return runResolve(ctx, env, &params, args, logger)
		},
	}
}
