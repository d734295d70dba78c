// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command dmflags is a line-oriented client console. It parses and runs
// client commands, manages auto-commands and drives the updater.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmdirc/dmflags/pkg/config"
	"github.com/shayne/yargs"
	"golang.org/x/term"
)

// version is replaced at build time with -ldflags "-X main.version=...".
var version = "0.1.0"

type globalFlagsParsed struct {
	Config  string `flag:"config" help:"Path to the client configuration (DMFLAGS_CONFIG)"`
	NoColor bool   `flag:"no-color" help:"Disable coloured output"`
	Network string `flag:"network" help:"Network of the origin window"`
	Server  string `flag:"server" help:"Server address of the origin window"`
	Profile string `flag:"profile" help:"Profile used to connect"`
	Channel string `flag:"channel" help:"Channel of the origin window"`
}

func parseGlobalFlags(args []string) (globalFlagsParsed, []string, error) {
	result, err := yargs.ParseKnownFlags[globalFlagsParsed](args, yargs.KnownFlagsOptions{})
	if err != nil {
		return globalFlagsParsed{}, nil, err
	}
	return result.Flags, result.RemainingArgs, nil
}

var globalFlags globalFlagsParsed

func main() {
	flags, remaining, err := parseGlobalFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	globalFlags = flags
	if globalFlags.Config == "" {
		globalFlags.Config = config.DefaultPath()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	helpConfig := buildHelpConfig()
	args := yargs.ApplyAliases(remaining, helpConfig)
	handlers := map[string]yargs.SubcommandHandler{
		"run":      handleRun,
		"exec":     handleExec,
		"complete": handleComplete,
	}
	if err := yargs.RunSubcommandsWithGroups(ctx, args, helpConfig, globalFlagsParsed{}, handlers, buildGroupHandlers()); err != nil {
		printCLIError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func printCLIError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(w, err)
}

func buildGroupHandlers() map[string]yargs.Group {
	return map[string]yargs.Group{
		"autocmd": {
			Description: "Manage auto-commands",
			Commands: map[string]yargs.SubcommandHandler{
				"list":   handleAutocmdList,
				"add":    handleAutocmdAdd,
				"remove": handleAutocmdRemove,
			},
		},
		"update": {
			Description: "Check for and install updates",
			Commands: map[string]yargs.SubcommandHandler{
				"check":    handleUpdateCheck,
				"retrieve": handleUpdateRetrieve,
				"install":  handleUpdateInstall,
			},
		},
	}
}

func buildHelpConfig() yargs.HelpConfig {
	return yargs.HelpConfig{
		Command: yargs.CommandInfo{
			Name:        "dmflags",
			Description: "Run client commands from a console, with auto-commands and self-update.",
			Examples: []string{
				"dmflags run",
				"dmflags exec '/echo --ts 0 hello'",
				"dmflags --network Quakenet exec '/set --server ui foo bar'",
				"dmflags complete '/set --'",
			},
		},
		SubCommands: map[string]yargs.SubCommandInfo{
			"run": {
				Name:        "run",
				Description: "Read commands from stdin until EOF",
			},
			"exec": {
				Name:        "exec",
				Description: "Run each argument as a command line",
				Usage:       "LINE...",
				Aliases:     []string{"x"},
			},
			"complete": {
				Name:        "complete",
				Description: "Print completions for a partial command line",
				Usage:       "LINE",
			},
		},
		Groups: map[string]yargs.GroupInfo{
			"autocmd": {
				Name:        "autocmd",
				Description: "Manage auto-commands",
				Commands: map[string]yargs.SubCommandInfo{
					"list": {Name: "list", Description: "List auto-commands"},
					"add": {
						Name:        "add",
						Description: "Add or replace an auto-command; each argument is one line",
						Usage:       "[--network=NET] [--server=ADDR] [--profile=NAME] LINE...",
						Examples:    []string{"dmflags autocmd add --network Quakenet 'join #dmdirc'"},
					},
					"remove": {
						Name:        "remove",
						Description: "Remove an auto-command",
						Usage:       "[--network=NET] [--server=ADDR] [--profile=NAME]",
					},
				},
			},
			"update": {
				Name:        "update",
				Description: "Check for and install updates",
				Commands: map[string]yargs.SubCommandInfo{
					"check":    {Name: "check", Description: "Check every component for updates"},
					"retrieve": {Name: "retrieve", Description: "Download pending updates", Usage: "[COMPONENT...]"},
					"install":  {Name: "install", Description: "Install pending updates", Usage: "[COMPONENT...]"},
				},
			},
		},
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// stripCommand removes the leading subcommand name from args.
func stripCommand(args []string, name string) []string {
	if len(args) > 0 && args[0] == name {
		return args[1:]
	}
	return args
}
