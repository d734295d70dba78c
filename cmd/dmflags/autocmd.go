// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dmdirc/dmflags/pkg/autocmd"
)

// autocmdTarget returns an auto-command targeting the connection named by
// the --network, --server and --profile flags. Without any of them the
// target is the global auto-command.
func autocmdTarget(f globalFlagsParsed) autocmd.AutoCommand {
	return autocmd.AutoCommand{Network: f.Network, Server: f.Server, Profile: f.Profile}
}

func printAutoCommands(w io.Writer, cmds []autocmd.AutoCommand) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer tw.Flush()
	fmt.Fprintln(tw, "TARGET\tRESPONSE")
	for _, a := range cmds {
		fmt.Fprintf(tw, "%s\t%s\n", a, strings.Join(a.Lines(), " | "))
	}
}

func handleAutocmdList(_ context.Context, _ []string) error {
	a, _, _, err := loadApp()
	if err != nil {
		return err
	}
	printAutoCommands(os.Stdout, a.autos.All())
	return nil
}

func handleAutocmdAdd(_ context.Context, args []string) error {
	target := autocmdTarget(globalFlags)
	lines := stripCommand(args, "add")
	if len(lines) == 0 {
		return errors.New("autocmd add needs at least one line")
	}
	a, _, _, err := loadApp()
	if err != nil {
		return err
	}
	target.Response = strings.Join(lines, "\n")
	a.autos.Replace(target)
	if err := a.autos.Save(); err != nil {
		return fmt.Errorf("failed to save auto-commands: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Saved auto-command for %s\n", target)
	return nil
}

func handleAutocmdRemove(_ context.Context, _ []string) error {
	target := autocmdTarget(globalFlags)
	a, _, _, err := loadApp()
	if err != nil {
		return err
	}
	if !a.autos.Remove(target) {
		return fmt.Errorf("no auto-command for %s", target)
	}
	return a.autos.Save()
}
