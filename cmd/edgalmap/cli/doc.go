// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework behind the edgalmap binary.
//
// A [Command] tree dispatches on the first positional argument, parses
// flags with github.com/spf13/pflag, and suggests the closest command or
// flag name on typos. Flags are declared as tagged struct fields and
// bound with [FlagsFromParams]. Commands report handled failures with
// [ExitError] and classify unhandled ones with [ToolError], which the
// binary's main function maps to exit codes.
package cli
