// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/edgalmap/cmd/edgalmap/cli"
	"github.com/bureau-foundation/edgalmap/lib/version"
)

type versionParams struct {
	cli.JSONOutput
}

func versionCommand(env Environment) *cli.Command {
	var params versionParams
	return &cli.Command{
		Name:    "version",
		Summary: "Show version information",
		Usage:   "edgalmap version [--json]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("version", &params)
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument %q", args[0])
			}
			if done, err := params.EmitJSON(env.Stdout, version.Get()); done {
				return err
			}
			newPrinter(env.Stdout).linef("edgalmap %s", version.Full())
			return nil
		},
	}
}
