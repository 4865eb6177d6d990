// fsidx - finding file names quickly with a database.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/jeranaias/fsidx/internal/cli"
	"github.com/jeranaias/fsidx/internal/config"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, cmd, rest, err := cli.Parse(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cli.PrintUsage(cli.NewStyles(), 1)
		return 1
	}

	if opts.Version {
		cli.PrintVersion()
		if cmd == cli.CmdNone {
			return 0
		}
	}
	if opts.HelpLevel > 0 || cmd == cli.CmdHelp {
		level := opts.HelpLevel
		if level == 0 {
			level = 1
		}
		cli.PrintUsage(cli.NewStyles(), level)
		return 0
	}
	if cmd == cli.CmdNone {
		cli.PrintUsage(cli.NewStyles(), 1)
		return 1
	}

	// init runs before any config exists.
	if cmd == cli.CmdInit {
		if err := cli.HandleInit(&opts, rest); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		if errors.Is(err, config.ErrNotFound) {
			fmt.Fprintln(os.Stderr, "Error: no configuration file found; run `fsidx init` to create one.")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	if opts.Verbose() {
		fmt.Fprintf(os.Stderr, "Database directory: %s\n", cfg.Index.DBPath)
	}

	switch cmd {
	case cli.CmdUpdate:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err = cli.HandleUpdate(ctx, cfg, &opts, rest)
	case cli.CmdLocate:
		err = cli.HandleLocate(cfg, &opts, rest)
	case cli.CmdShell:
		err = cli.Shell(cfg, &opts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
