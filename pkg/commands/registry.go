// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Registry holds the available commands by name. Names are case-insensitive.
type Registry struct {
	mu   sync.RWMutex
	cmds map[string]Command
}

// NewRegistry returns a registry holding cmds.
func NewRegistry(cmds ...Command) (*Registry, error) {
	r := &Registry{cmds: make(map[string]Command)}
	for _, c := range cmds {
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds c.
func (r *Registry) Register(c Command) error {
	name := strings.ToLower(c.Info().Name)
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cmds[name]; ok {
		return fmt.Errorf("command %q already registered", name)
	}
	r.cmds[name] = c
	return nil
}

// Unregister removes the command called name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.cmds, strings.ToLower(name))
}

// Lookup returns the command called name.
func (r *Registry) Lookup(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.cmds[strings.ToLower(name)]
	return c, ok
}

// Names returns the registered command names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.cmds))
}

// All returns the registered commands sorted by name.
func (r *Registry) All() []Command {
	names := r.Names()
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Command, 0, len(names))
	for _, n := range names {
		if c, ok := r.cmds[n]; ok {
			out = append(out, c)
		}
	}
	return out
}
