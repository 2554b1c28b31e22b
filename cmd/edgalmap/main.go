// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// edgalmap converts between galaxy map system names and the system
// addresses recorded in game journals.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bureau-foundation/edgalmap/cmd/edgalmap/cli"
	"github.com/bureau-foundation/edgalmap/cmd/edgalmap/commands"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own diagnostics return an ExitError
		// with the desired exit code. Don't print a redundant "error:"
		// line for those.
		code, printError := cli.ExitCodeFor(err)
		if printError {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(code)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := commands.Root(commands.Environment{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
	return root.Execute(ctx, os.Args[1:])
}
