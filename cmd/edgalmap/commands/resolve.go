// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/bureau-foundation/edgalmap/cmd/edgalmap/cli"
	"github.com/bureau-foundation/edgalmap/lib/boxel"
	"github.com/bureau-foundation/edgalmap/lib/catalog"
	"github.com/bureau-foundation/edgalmap/lib/clipboard"
	"github.com/bureau-foundation/edgalmap/lib/config"
	"github.com/bureau-foundation/edgalmap/lib/resolver"
	"github.com/bureau-foundation/edgalmap/lib/sector"
)

type resolveParams struct {
	cli.JSONOutput
	Body         resolver.BodyID `flag:"body-id,b" desc:"body id to target, 0-511"`
	Config       string          `flag:"config" desc:"config file (default: $EDGALMAP_CONFIG)"`
	Sectors      string          `flag:"sectors" desc:"sector table file, overriding the config"`
	NamedSystems string          `flag:"named-systems" desc:"named system table file, overriding the config"`
	Clipboard    string          `flag:"clipboard" desc:"clipboard mode: auto, osc52, command, none"`
	Verbose      bool            `flag:"verbose,v" desc:"log table loading and resolution details"`
}

// resolution carries what one resolve run has loaded.
type resolution struct {
	env      Environment
	params   *resolveParams
	config   *config.Config
	logger   *slog.Logger
	resolver *resolver.Resolver
}

func runResolve(ctx context.Context, env Environment, params *resolveParams, args []string, logger *slog.Logger) error {
	reference := strings.TrimSpace(strings.Join(args, " "))
	if reference == "" {
		return cli.Validation("a system name or system address is required").
			WithHint("Run 'edgalmap --help' for usage.")
	}

	cfg, err := loadConfig(params)
	if err != nil {
		return err
	}
	if !params.Verbose {
		logger, err = configLogger(env.Stderr, cfg)
		if err != nil {
			return err
		}
	}

	tables, err := catalog.Load(ctx, catalog.Paths{
		Sectors:      cfg.Data.Sectors,
		NamedSystems: cfg.Data.NamedSystems,
	}, logger)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cli.NotFound("%w", err).
				WithHint("Set data.sectors in the config file or pass --sectors.")
		}
		return cli.Internal("%w", err)
	}

	run := &resolution{
		env:      env,
		params:   params,
		config:   cfg,
		logger:   logger,
		resolver: tables.Resolver(logger),
	}

	result, err := run.resolver.Resolve(reference, params.Body)
	if err != nil {
		if !resolver.IsRecoverable(err) {
			return cli.Internal("%w", err)
		}
		return run.reportFailure(result, err)
	}
	return run.reportResult(result)
}

// loadConfig loads the config file and applies flag overrides.
func loadConfig(params *resolveParams) (*config.Config, error) {
	cfg, err := config.Load(params.Config)
	if err != nil {
		return nil, cli.Validation("%w", err).
			WithHint(fmt.Sprintf("Check the file named by --config or $%s.", config.EnvironmentVariable))
	}

	if params.Sectors != "" {
		cfg.Data.Sectors = params.Sectors
	}
	if params.NamedSystems != "" {
		cfg.Data.NamedSystems = params.NamedSystems
	}
	if params.Clipboard != "" {
		cfg.Clipboard.Mode = params.Clipboard
	}

	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("invalid configuration: %w", err)
	}
	return cfg, nil
}

func configLogger(w io.Writer, cfg *config.Config) (*slog.Logger, error) {
	level, err := cli.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, cli.Validation("%w", err)
	}
	return cli.NewCommandLogger(w, level, cfg.Log.Format), nil
}

func (r *resolution) reportResult(result *resolver.Result) error {
	if done, err := r.params.EmitJSON(r.env.Stdout, result); done {
		return err
	}

	out := newPrinter(r.env.Stdout)
	if result.ReadableName != "" {
		out.linef("%s, Body %d", out.name.Render(result.ReadableName), result.BodyID.Value())
	}
	if result.CustomName != "" && result.ProceduralName != "" {
		out.field("Procedural name", result.ProceduralName)
	}
	if result.HasSystemAddress {
		out.field("System address", result.SystemAddress)
	}
	if result.HasBodyAddress {
		out.field("Body address", result.BodyAddress)
	}

	r.copy(out, clipboardText(r.logger, result))
	return nil
}

// clipboardText picks the text to paste into the galaxy map. A custom
// name cannot carry a body id, so a body target uses the procedural name.
func clipboardText(logger *slog.Logger, result *resolver.Result) string {
	if result.CustomName == "" || result.BodyID.Value() == 0 {
		return result.Name
	}
	if result.ProceduralName != "" {
		return result.ProceduralName
	}
	logger.Warn("body id dropped: the sector of this named system is not in the sector table",
		"name", result.CustomName,
		"body_id", result.BodyID.Value(),
	)
	return result.Name
}

func (r *resolution) reportFailure(result *resolver.Result, err error) error {
	var (
		malformed *boxel.MalformedNameError
		notFound  *sector.NotFoundError
		ambiguous *resolver.AmbiguousNameError
	)

	if r.params.OutputJSON {
		output := failureOutput{
			Error:  err.Error(),
			Kind:   failureKind(err),
			Result: result,
		}
		if errors.As(err, &notFound) && notFound.Template != nil {
			output.Template = notFound.Template.String()
		}
		if writeErr := cli.WriteJSON(r.env.Stdout, output); writeErr != nil {
			return writeErr
		}
		return &cli.ExitError{Code: cli.ExitFailure}
	}

	out := newPrinter(r.env.Stdout)
	table := filepath.Base(r.config.Data.Sectors)
	switch {
	case errors.As(err, &malformed):
		out.linef("Malformed system name: %s (%s)", malformed.Token, malformed.Reason)

	case errors.As(err, &notFound) && notFound.Template != nil:
		out.linef("Sector missing from %s, please add an entry such as this with PGN filled out:", table)
		out.linef("%s", notFound.Template)

	case errors.As(err, &notFound):
		out.linef("Sector %q is not in %s, so the system address is unknown.", notFound.Name, table)
		if result != nil && result.Name != "" {
			r.copy(out, result.Name)
		}

	case errors.As(err, &ambiguous):
		out.linef("%q names %d systems. Use the system address of the one you want:", ambiguous.Name, len(ambiguous.Candidates))
		for _, candidate := range ambiguous.Candidates {
			line := fmt.Sprintf("  %d", candidate)
			if described, err := r.resolver.AddressToName(candidate, resolver.Unset); err == nil {
				line += "  " + described.Name
			}
			out.linef("%s", line)
		}

	default:
		out.linef("%v", err)
	}
	return &cli.ExitError{Code: cli.ExitFailure}
}

// failureOutput is the --json rendering of a recoverable failure.
type failureOutput struct {
	Error    string           `json:"error"`
	Kind     string           `json:"kind"`
	Template string           `json:"template,omitempty"`
	Result   *resolver.Result `json:"result,omitempty"`
}

func failureKind(err error) string {
	var (
		malformed *boxel.MalformedNameError
		notFound  *sector.NotFoundError
		ambiguous *resolver.AmbiguousNameError
		bodyRange *resolver.BodyIDRangeError
	)
	switch {
	case errors.As(err, &malformed):
		return "malformed_name"
	case errors.As(err, &notFound):
		return "sector_missing"
	case errors.As(err, &ambiguous):
		return "ambiguous_name"
	case errors.As(err, &bodyRange):
		return "body_id_range"
	default:
		return "unknown"
	}
}

// copy sends text to the clipboard and reports it. A clipboard failure
// only costs the copy; the name is still printed.
func (r *resolution) copy(out *printer, text string) {
	sink, err := r.sink()
	if err != nil {
		r.logger.Warn("clipboard unavailable", "mode", r.config.Clipboard.Mode, "error", err)
		out.linef("%s", out.name.Render(text))
		return
	}
	if _, disabled := sink.(clipboard.Nop); disabled {
		out.linef("%s", out.name.Render(text))
		return
	}
	if err := sink.SetText([]byte(text)); err != nil {
		r.logger.Warn("copying to clipboard failed", "error", err)
		out.linef("%s", out.name.Render(text))
		return
	}
	out.linef("Copied to clipboard: %s", out.name.Render(`"`+text+`"`))
}

func (r *resolution) sink() (clipboard.Sink, error) {
	if r.env.Clipboard != nil {
		return r.env.Clipboard, nil
	}
	mode, err := clipboard.ParseMode(r.config.Clipboard.Mode)
	if err != nil {
		return nil, err
	}
	return clipboard.New(mode, clipboard.Host{
		Terminal:   r.env.Stdout,
		IsTerminal: cli.IsTerminal(r.env.Stdout),
	})
}
