// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package autocmd runs user-defined commands when the client starts or a
// server connection is established.
package autocmd

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

var (
	// ErrGlobalExists is returned when adding a second global auto-command.
	ErrGlobalExists = errors.New("a global auto-command already exists")
	// ErrExists is returned when adding an auto-command whose target is
	// already taken.
	ErrExists = errors.New("an auto-command for this target already exists")
)

// AutoCommand is a response run on a trigger. Empty Server, Network and
// Profile fields match anything.
type AutoCommand struct {
	Server   string `yaml:"server,omitempty"`
	Network  string `yaml:"network,omitempty"`
	Profile  string `yaml:"profile,omitempty"`
	Response string `yaml:"response"`
}

// IsGlobal reports whether the auto-command runs when the client starts,
// rather than on connection.
func (a AutoCommand) IsGlobal() bool {
	return a.Server == "" && a.Network == ""
}

// Lines returns the response split into one command line each, skipping
// blank lines.
func (a AutoCommand) Lines() []string {
	var out []string
	for _, l := range strings.Split(a.Response, "\n") {
		l = strings.TrimRight(l, "\r")
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}

func (a AutoCommand) String() string {
	if a.IsGlobal() {
		return "global"
	}
	var parts []string
	for _, f := range []struct{ k, v string }{{"network", a.Network}, {"server", a.Server}, {"profile", a.Profile}} {
		if f.v != "" {
			parts = append(parts, f.k+"="+f.v)
		}
	}
	return strings.Join(parts, " ")
}

func (a AutoCommand) sameTarget(b AutoCommand) bool {
	return a.Server == b.Server && a.Network == b.Network && a.Profile == b.Profile
}

// Store persists auto-commands.
type Store interface {
	ReadAll() ([]AutoCommand, error)
	WriteAll([]AutoCommand) error
}

// Manager holds the configured auto-commands.
type Manager struct {
	store Store

	mu   sync.Mutex
	cmds []AutoCommand
}

// NewManager returns a Manager that loads from and saves to store. A nil
// store keeps everything in memory.
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Load replaces the held auto-commands with those in the store.
func (m *Manager) Load() error {
	if m.store == nil {
		return nil
	}
	cmds, err := m.store.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read auto-commands: %w", err)
	}
	loaded := &Manager{}
	for _, c := range cmds {
		if err := loaded.addLocked(c); err != nil {
			return fmt.Errorf("invalid auto-command %v: %w", c, err)
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cmds = loaded.cmds
	return nil
}

// Save writes the held auto-commands to the store.
func (m *Manager) Save() error {
	if m.store == nil {
		return nil
	}
	return m.store.WriteAll(m.All())
}

// Add adds a. There may be at most one global auto-command and one per
// server/network/profile combination.
func (m *Manager) Add(a AutoCommand) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.addLocked(a)
}

func (m *Manager) addLocked(a AutoCommand) error {
	for _, c := range m.cmds {
		if a.IsGlobal() && c.IsGlobal() {
			return ErrGlobalExists
		}
		if c.sameTarget(a) {
			return ErrExists
		}
	}
	m.cmds = append(m.cmds, a)
	return nil
}

// Replace adds a, or replaces the response of the auto-command with the same
// target.
func (m *Manager) Replace(a AutoCommand) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.cmds {
		if c.sameTarget(a) || (a.IsGlobal() && c.IsGlobal()) {
			m.cmds[i] = a
			return
		}
	}
	m.cmds = append(m.cmds, a)
}

// Remove removes the auto-command with a's target and reports whether one
// was found.
func (m *Manager) Remove(a AutoCommand) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := slices.IndexFunc(m.cmds, a.sameTarget)
	if i < 0 {
		return false
	}
	m.cmds = slices.Delete(m.cmds, i, i+1)
	return true
}

// All returns every auto-command.
func (m *Manager) All() []AutoCommand {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.cmds)
}

// Global returns the global auto-command, if there is one.
func (m *Manager) Global() (AutoCommand, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.cmds {
		if c.IsGlobal() {
			return c, true
		}
	}
	return AutoCommand{}, false
}

// Connection returns the auto-commands that run on connection.
func (m *Manager) Connection() []AutoCommand {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []AutoCommand
	for _, c := range m.cmds {
		if !c.IsGlobal() {
			out = append(out, c)
		}
	}
	return out
}

// Get returns the auto-command whose network, server and profile are exactly
// the given values.
func (m *Manager) Get(network, server, profile string) (AutoCommand, bool) {
	want := AutoCommand{Network: network, Server: server, Profile: profile}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.cmds {
		if c.sameTarget(want) {
			return c, true
		}
	}
	return AutoCommand{}, false
}

// GetOrCreate is like Get but returns a new auto-command with an empty
// response when there is no match. The new auto-command is not added.
func (m *Manager) GetOrCreate(network, server, profile string) AutoCommand {
	if c, ok := m.Get(network, server, profile); ok {
		return c
	}
	return AutoCommand{Network: network, Server: server, Profile: profile}
}
