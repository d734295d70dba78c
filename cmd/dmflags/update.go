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

	"github.com/Masterminds/semver/v3"
	"github.com/dmdirc/dmflags/pkg/config"
	"github.com/dmdirc/dmflags/pkg/tui"
	"github.com/dmdirc/dmflags/pkg/updater"
	"github.com/fatih/color"
)

const clientComponent = "dmflags"

// newUpdater returns an update manager for the client binary configured by
// cfg. Status changes are written to out.
func newUpdater(cfg *config.Client, out io.Writer) (*updater.Manager, error) {
	channel, err := updater.ParseChannel(cfg.Updates.Channel)
	if err != nil {
		return nil, err
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return nil, fmt.Errorf("invalid build version %q: %w", version, err)
	}

	opts := []updater.ManagerOption{
		updater.WithRetrievers(updater.NewFileRetriever(cfg.Updates.StagingDir)),
		updater.WithInstallers(updater.NewFileInstaller(cfg.Updates.InstallDir)),
	}
	if cfg.Updates.Manifest != "" {
		opts = append(opts, updater.WithCheckers(updater.NewManifestChecker(cfg.Updates.Manifest, channel)))
	}
	m := updater.NewManager(updater.ConfigPolicy{Channel: channel, Disabled: cfg.Updates.Disabled}, opts...)
	m.AddComponent(&updater.Component{
		Name:            clientComponent,
		FriendlyName:    "dmflags client",
		Version:         v,
		RequiresRestart: true,
	})
	if out != nil {
		m.AddListener(statusPrinter(out))
	}
	return m, nil
}

var (
	statusOK      = color.New(color.FgGreen)
	statusPending = color.New(color.FgYellow)
)

func statusPrinter(out io.Writer) updater.StatusListener {
	return func(c *updater.Component, s updater.Status, progress float64) {
		switch s {
		case updater.Retrieving, updater.Installing:
			if progress > 0 && progress < 100 {
				return
			}
			fmt.Fprintf(out, "%s: %s %.0f%%\n", c.Name, s, progress)
		case updater.UpdatePending, updater.RestartPending:
			statusPending.Fprintf(out, "%s: %s\n", c.Name, s)
		case updater.Updated:
			statusOK.Fprintf(out, "%s: %s\n", c.Name, s)
		default:
			fmt.Fprintf(out, "%s: %s\n", c.Name, s)
		}
	}
}

// spinnerListener animates retrieval and installation progress on a
// terminal and prints every other status on its own line.
func spinnerListener(sp *tui.Spinner, out io.Writer) updater.StatusListener {
	plain := statusPrinter(out)
	return func(c *updater.Component, s updater.Status, progress float64) {
		switch s {
		case updater.Retrieving, updater.Installing:
			msg := fmt.Sprintf("%s: %s %.0f%%", c.Name, s, progress)
			sp.Start(msg)
			sp.Update(msg)
		default:
			sp.Stop("")
			plain(c, s, progress)
		}
	}
}

func loadUpdater() (*updater.Manager, error) {
	cfg, err := config.LoadClient(globalFlags.Config)
	if err != nil {
		return nil, err
	}
	if globalFlags.NoColor {
		color.NoColor = true
	}
	if !isTerminal(os.Stdout) {
		return newUpdater(cfg, os.Stdout)
	}
	m, err := newUpdater(cfg, nil)
	if err != nil {
		return nil, err
	}
	m.AddListener(spinnerListener(tui.NewSpinner(os.Stdout), os.Stdout))
	return m, nil
}

// confirmInstall asks before installing when running on a terminal.
func confirmInstall(m *updater.Manager, name string) (bool, error) {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return true, nil
	}
	r, ok := m.CheckResult(name)
	if !ok {
		return true, nil
	}
	return tui.Confirm(os.Stdin, os.Stdout, fmt.Sprintf("Install %s %s?", name, r.Version))
}

// targets returns the named components, or every component when names is
// empty.
func targets(m *updater.Manager, names []string) []string {
	if len(names) > 0 {
		return names
	}
	var out []string
	for _, c := range m.Components() {
		out = append(out, c.Name)
	}
	return out
}

func handleUpdateCheck(ctx context.Context, _ []string) error {
	m, err := loadUpdater()
	if err != nil {
		return err
	}
	if err := m.CheckForUpdates(ctx); err != nil {
		return err
	}
	for _, c := range m.Components() {
		if r, ok := m.CheckResult(c.Name); ok {
			fmt.Printf("%s %s -> %s (%s)\n", c.Name, c.Version, r.Version, r.URL)
		}
	}
	return nil
}

func handleUpdateRetrieve(ctx context.Context, args []string) error {
	return checkThen(ctx, stripCommand(args, "retrieve"), func(m *updater.Manager, name string) error {
		return m.Retrieve(ctx, name, false)
	})
}

func handleUpdateInstall(ctx context.Context, args []string) error {
	return checkThen(ctx, stripCommand(args, "install"), func(m *updater.Manager, name string) error {
		ok, err := confirmInstall(m, name)
		if err != nil || !ok {
			return err
		}
		return m.Install(ctx, name)
	})
}

// checkThen checks for updates and runs fn for each target with one
// pending. Components without an update are skipped.
func checkThen(ctx context.Context, names []string, fn func(*updater.Manager, string) error) error {
	m, err := loadUpdater()
	if err != nil {
		return err
	}
	if err := m.CheckForUpdates(ctx); err != nil {
		return err
	}
	var errs []error
	for _, name := range targets(m, names) {
		if err := fn(m, name); err != nil && !errors.Is(err, updater.ErrNoUpdate) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
