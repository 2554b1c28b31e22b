// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/edgalmap/cmd/edgalmap/cli"
	"github.com/bureau-foundation/edgalmap/lib/address"
	"github.com/bureau-foundation/edgalmap/lib/boxel"
)

type decodeParams struct {
	cli.JSONOutput
}

// decodeOutput is the field breakdown of one system address.
type decodeOutput struct {
	SystemAddress uint64               `json:"system_address"`
	Fields        address.Fields       `json:"fields"`
	Layout        []address.FieldValue `json:"layout"`
	SectorKey     uint32               `json:"sector_key"`
	BoxelKey      uint32               `json:"boxel_key"`
	NameSuffix    string               `json:"name_suffix"`

	// MaskedAddress is the address with the embedded body id cleared.
	MaskedAddress uint64 `json:"masked_address"`
}

func decodeCommand(env Environment) *cli.Command {
	var params decodeParams
	return &cli.Command{
		Name:    "decode",
		Summary: "Show the bit fields of a system address",
		Description: `Split a system address into its bit fields.

The layout depends on the cube layer in the lowest three bits: boxel
coordinates shrink and the system id grows as the layer rises. No
lookup tables are needed.`,
		Usage: "edgalmap decode [flags] <system address>",
		Examples: []cli.Example{
			{
				Description: "Decode a journal SystemAddress",
				Command:     "edgalmap decode 10477373803",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("decode", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("expected one system address, got %d arguments", len(args)).
					WithHint("Run 'edgalmap decode --help' for usage.")
			}
			systemAddress, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return cli.Validation("invalid system address %q: must be a decimal 64-bit unsigned integer", args[0])
			}

			output := describeAddress(systemAddress)
			logger.Debug("decoded system address", "address", systemAddress, "fields", output.Fields.String())

			if done, err := params.EmitJSON(env.Stdout, output); done {
				return err
			}
			printDecode(newPrinter(env.Stdout), output)
			return nil
		},
	}
}

func describeAddress(systemAddress uint64) decodeOutput {
	fields := address.Decode(systemAddress)
	masked, _ := address.CalcBodyAddress(systemAddress, 0)
	return decodeOutput{
		SystemAddress: systemAddress,
		Fields:        fields,
		Layout:        fields.Layout(),
		SectorKey:     fields.SectorKey(),
		BoxelKey:      fields.BoxelKey(),
		NameSuffix:    boxel.FormatSuffix(fields.CubeLayer, uint64(fields.BoxelKey()), fields.SystemID),
		MaskedAddress: masked,
	}
}

func printDecode(out *printer, output decodeOutput) {
	headers := []string{"FIELD", "BITS", "WIDTH", "VALUE"}
	rows := make([][]string, 0, len(output.Layout))
	for index := len(output.Layout) - 1; index >= 0; index-- {
		field := output.Layout[index]
		rows = append(rows, []string{
			field.Name,
			bitRange(field),
			strconv.Itoa(field.Width),
			strconv.FormatUint(field.Value, 10),
		})
	}

	if cli.IsTerminal(out.w) {
		fieldTable := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(out.label).
			Headers(headers...).
			Rows(rows...)
		fmt.Fprintln(out.w, fieldTable.Render())
	} else {
		writer := tabwriter.NewWriter(out.w, 2, 0, 3, ' ', 0)
		fmt.Fprintln(writer, strings.Join(headers, "\t"))
		for _, row := range rows {
			fmt.Fprintln(writer, strings.Join(row, "\t"))
		}
		writer.Flush()
	}

	out.field("Layer", fmt.Sprintf("%c", boxel.LayerLetter(output.Fields.CubeLayer)))
	out.field("Sector key", output.SectorKey)
	out.field("Boxel key", output.BoxelKey)
	out.field("Name suffix", output.NameSuffix)
	if output.Fields.EmbeddedBodyID != 0 {
		out.field("Address without body", output.MaskedAddress)
	}
}

// bitRange renders a field's bit span, high bit first.
func bitRange(field address.FieldValue) string {
	switch field.Width {
	case 0:
		return "-"
	case 1:
		return strconv.Itoa(field.Offset)
	default:
		return fmt.Sprintf("%d-%d", field.Offset+field.Width-1, field.Offset)
	}
}
