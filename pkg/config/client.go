// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/dmdirc/dmflags/pkg/cmdargs"
	"github.com/dmdirc/dmflags/pkg/fileutil"
)

const (
	// EnvConfig overrides the location of the client configuration file.
	EnvConfig = "DMFLAGS_CONFIG"

	clientConfigName = "config.toml"
)

// Client is the client configuration file.
type Client struct {
	CommandChar  string                       `toml:"command_char,omitempty"`
	SilenceChar  string                       `toml:"silence_char,omitempty"`
	IdentityDir  string                       `toml:"identity_dir,omitempty"`
	AutoCommands string                       `toml:"autocommands,omitempty"`
	Defaults     map[string]map[string]string `toml:"defaults,omitempty"`
	Updates      Updates                      `toml:"updates"`
}

// Updates configures the update checker.
type Updates struct {
	// Channel is one of "stable", "unstable", "nightly" or "none".
	Channel    string   `toml:"channel,omitempty"`
	Manifest   string   `toml:"manifest,omitempty"`
	StagingDir string   `toml:"staging_dir,omitempty"`
	InstallDir string   `toml:"install_dir,omitempty"`
	Disabled   []string `toml:"disabled,omitempty"`
}

// DefaultPath returns $DMFLAGS_CONFIG, or config.toml under ~/.dmflags.
func DefaultPath() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".dmflags", clientConfigName)
}

// LoadClient reads the client configuration at path. A missing file yields
// the defaults. Relative paths in the file are resolved against its
// directory.
func LoadClient(path string) (*Client, error) {
	var c Client
	if _, err := toml.DecodeFile(path, &c); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	c.applyDefaults(filepath.Dir(path))
	if _, err := c.Chars(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return &c, nil
}

func (c *Client) applyDefaults(base string) {
	if c.CommandChar == "" {
		c.CommandChar = string(cmdargs.DefaultChars.Command)
	}
	if c.SilenceChar == "" {
		c.SilenceChar = string(cmdargs.DefaultChars.Silence)
	}
	if c.Updates.Channel == "" {
		c.Updates.Channel = "none"
	}
	c.IdentityDir = resolve(base, c.IdentityDir, "identities")
	c.AutoCommands = resolve(base, c.AutoCommands, "autocommands.yaml")
	c.Updates.StagingDir = resolve(base, c.Updates.StagingDir, "updates")
	c.Updates.InstallDir = resolve(base, c.Updates.InstallDir, "installed")
	if c.Updates.Manifest != "" {
		c.Updates.Manifest = resolve(base, c.Updates.Manifest, "")
	}
}

func resolve(base, p, def string) string {
	if p == "" {
		p = def
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// Chars returns the configured command characters.
func (c *Client) Chars() (cmdargs.Chars, error) {
	cmd, err := singleRune("command_char", c.CommandChar)
	if err != nil {
		return cmdargs.Chars{}, err
	}
	silence, err := singleRune("silence_char", c.SilenceChar)
	if err != nil {
		return cmdargs.Chars{}, err
	}
	if cmd == silence {
		return cmdargs.Chars{}, fmt.Errorf("command_char and silence_char must differ")
	}
	return cmdargs.Chars{Command: cmd, Silence: silence}, nil
}

func singleRune(key, s string) (rune, error) {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 || n != len(s) || r == utf8.RuneError {
		return 0, fmt.Errorf("%s must be a single character, got %q", key, s)
	}
	return r, nil
}

// Save writes the configuration to path.
func (c *Client) Save(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return err
	}
	return fileutil.WriteFile(path, buf.Bytes(), 0o644)
}
