// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmdirc/dmflags/pkg/autocmd"
	"github.com/dmdirc/dmflags/pkg/commands"
	"github.com/dmdirc/dmflags/pkg/config"
	"github.com/dmdirc/dmflags/pkg/window"
	"github.com/fatih/color"
)

// app is a loaded client: configuration, windows and command machinery.
type app struct {
	cfg      *config.Client
	ids      *config.Identities
	windows  *window.Manager
	status   *window.Window
	registry *commands.Registry
	parser   *commands.Parser
	autos    *autocmd.Manager
	handler  *autocmd.Handler
	opts     []window.Option
}

func newApp(cfgPath string, out io.Writer, colored bool) (*app, error) {
	cfg, err := config.LoadClient(cfgPath)
	if err != nil {
		return nil, err
	}
	chars, err := cfg.Chars()
	if err != nil {
		return nil, err
	}
	ids, err := config.OpenIdentities(cfg.IdentityDir, cfg.Defaults)
	if err != nil {
		return nil, err
	}
	a := &app{
		cfg:     cfg,
		ids:     ids,
		windows: window.NewManager(),
		opts:    []window.Option{window.WithWriter(out), window.WithColor(colored)},
	}
	a.status = window.New("status", a.opts...)
	if err := a.windows.Add(nil, a.status); err != nil {
		return nil, err
	}
	a.registry, err = commands.Builtins(a.windows, ids)
	if err != nil {
		return nil, err
	}
	a.parser = commands.NewParser(a.registry, chars)
	a.autos = autocmd.NewManager(autocmd.NewYAMLStore(cfg.AutoCommands))
	if err := a.autos.Load(); err != nil {
		return nil, err
	}
	a.handler = autocmd.NewHandler(a.autos, a.parser, a.status)
	return a, nil
}

// openWindow returns the window called name under parent, creating it if
// needed.
func (a *app) openWindow(parent *window.Window, name string) (*window.Window, error) {
	for _, w := range a.windows.Children(parent) {
		if w.Name() == name {
			return w, nil
		}
	}
	w := window.New(name, a.opts...)
	if err := a.windows.Add(parent, w); err != nil {
		return nil, err
	}
	return w, nil
}

// origin builds the window for the given connection details. Without a
// network or server the status window is used. A channel window is opened
// under the server window.
func (a *app) origin(f globalFlagsParsed) (commands.Origin, *autocmd.Connection, error) {
	o := commands.Origin{Window: a.status, Network: f.Network}
	if f.Network == "" && f.Server == "" {
		return o, nil, nil
	}
	name := f.Server
	if name == "" {
		name = f.Network
	}
	server, err := a.openWindow(a.status, name)
	if err != nil {
		return o, nil, err
	}
	conn := &autocmd.Connection{Address: f.Server, Network: f.Network, Profile: f.Profile, Window: server}
	o.Window = server
	if f.Channel != "" {
		ch, err := a.openWindow(server, f.Channel)
		if err != nil {
			return o, nil, err
		}
		o.Window = ch
		o.Channel = f.Channel
	}
	return o, conn, nil
}

// start runs the global auto-command and, when connected, the matching
// connection auto-commands.
func (a *app) start(conn *autocmd.Connection) {
	a.handler.ClientOpened()
	if conn != nil {
		a.handler.ServerConnected(*conn)
	}
}

// runLines runs each line in o. Failures have already been shown in the
// window; they are returned joined.
func (a *app) runLines(o commands.Origin, lines []string) error {
	var errs []error
	for _, line := range lines {
		if err := a.parser.ParseCommand(o, line); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// repl reads lines from in until EOF or ctx is done.
func (a *app) repl(ctx context.Context, o commands.Origin, in io.Reader, prompt io.Writer) error {
	promptColor := color.New(color.FgCyan, color.Bold)
	sc := bufio.NewScanner(in)
	for {
		if prompt != nil {
			promptColor.Fprintf(prompt, "%s> ", o.Window.Name())
		}
		if !sc.Scan() {
			return sc.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		// Errors are shown in the window.
		_ = a.parser.ParseCommand(o, strings.TrimRight(sc.Text(), "\r"))
	}
}

func loadApp() (*app, commands.Origin, *autocmd.Connection, error) {
	a, err := newApp(globalFlags.Config, os.Stdout, !globalFlags.NoColor && isTerminal(os.Stdout))
	if err != nil {
		return nil, commands.Origin{}, nil, err
	}
	o, conn, err := a.origin(globalFlags)
	if err != nil {
		return nil, commands.Origin{}, nil, err
	}
	return a, o, conn, nil
}

func handleRun(ctx context.Context, _ []string) error {
	a, o, conn, err := loadApp()
	if err != nil {
		return err
	}
	a.start(conn)
	var prompt io.Writer
	if isTerminal(os.Stdin) {
		prompt = os.Stdout
	}
	return a.repl(ctx, o, os.Stdin, prompt)
}

func handleExec(_ context.Context, args []string) error {
	args = stripCommand(args, "exec")
	if len(args) == 0 {
		return errors.New("exec needs at least one command line")
	}
	a, o, conn, err := loadApp()
	if err != nil {
		return err
	}
	a.start(conn)
	return a.runLines(o, args)
}

func handleComplete(_ context.Context, args []string) error {
	args = stripCommand(args, "complete")
	a, o, _, err := loadApp()
	if err != nil {
		return err
	}
	for _, s := range a.parser.Complete(o, strings.Join(args, " ")) {
		fmt.Println(s)
	}
	return nil
}
