// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/edgalmap/cmd/edgalmap/cli"
	"github.com/bureau-foundation/edgalmap/lib/address"
)

type encodeParams struct {
	cli.JSONOutput
	Layer    uint8  `flag:"layer" desc:"cube layer, 0-7 (a-h)"`
	SectorX  uint8  `flag:"sector-x" desc:"sector x coordinate, 0-127"`
	SectorY  uint8  `flag:"sector-y" desc:"sector y coordinate, 0-63"`
	SectorZ  uint8  `flag:"sector-z" desc:"sector z coordinate, 0-127"`
	BoxelX   uint8  `flag:"boxel-x" desc:"boxel x coordinate within the sector"`
	BoxelY   uint8  `flag:"boxel-y" desc:"boxel y coordinate within the sector"`
	BoxelZ   uint8  `flag:"boxel-z" desc:"boxel z coordinate within the sector"`
	SystemID uint64 `flag:"system-id" desc:"system id within the boxel"`
	Body     uint16 `flag:"body" desc:"embedded body id, 0-511"`
}

type encodeOutput struct {
	SystemAddress uint64         `json:"system_address"`
	Fields        address.Fields `json:"fields"`
}

func encodeCommand(env Environment) *cli.Command {
	var params encodeParams
	return &cli.Command{
		Name:    "encode",
		Summary: "Pack address fields into a system address",
		Description: `Pack address fields into a system address.

Each field must fit its width for the chosen cube layer; edgalmap
decode shows the widths.`,
		Usage: "edgalmap encode [flags]",
		Examples: []cli.Example{
			{
				Description: "Encode a layer d system",
				Command:     "edgalmap encode --layer 3 --sector-x 40 --sector-y 20 --sector-z 90 --boxel-x 5 --system-id 345",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("encode", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument %q: fields are given as flags", args[0]).
					WithHint("Run 'edgalmap encode --help' for usage.")
			}

			fields := address.Fields{
				CubeLayer:      params.Layer,
				SectorX:        params.SectorX,
				SectorY:        params.SectorY,
				SectorZ:        params.SectorZ,
				BoxelX:         params.BoxelX,
				BoxelY:         params.BoxelY,
				BoxelZ:         params.BoxelZ,
				SystemID:       params.SystemID,
				EmbeddedBodyID: params.Body,
			}
			systemAddress, err := address.Encode(fields)
			if err != nil {
				var overflow *address.FieldOverflowError
				if errors.As(err, &overflow) {
					return cli.Validation("%w", err)
				}
				return cli.Internal("%w", err)
			}
			logger.Debug("encoded system address", "address", systemAddress, "fields", fields.String())

			if done, err := params.EmitJSON(env.Stdout, encodeOutput{SystemAddress: systemAddress, Fields: fields}); done {
				return err
			}
			newPrinter(env.Stdout).linef("%d", systemAddress)
			return nil
		},
	}
}
