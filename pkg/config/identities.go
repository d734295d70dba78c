// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"path/filepath"
	"sync"
)

// Identities owns the writable settings layers: the user's global settings
// and per-network and per-channel overrides. With a directory each layer is
// stored as its own TOML file under it.
type Identities struct {
	dir      string
	defaults *Provider
	global   *Provider

	mu       sync.Mutex
	servers  map[string]*Provider
	channels map[string]*Provider
}

// OpenIdentities loads the global settings from dir. An empty dir keeps all
// settings in memory. defaults form the bottom layer of every view and are
// never saved.
func OpenIdentities(dir string, defaults map[string]map[string]string) (*Identities, error) {
	ids := &Identities{
		dir:      dir,
		defaults: NewProvider("defaults"),
		servers:  make(map[string]*Provider),
		channels: make(map[string]*Provider),
	}
	for domain, opts := range defaults {
		for option, value := range opts {
			ids.defaults.SetOption(domain, option, value)
		}
	}
	global, err := ids.load("global", "global.toml")
	if err != nil {
		return nil, err
	}
	ids.global = global
	return ids, nil
}

func (ids *Identities) load(name string, rel ...string) (*Provider, error) {
	if ids.dir == "" {
		return NewProvider(name), nil
	}
	return LoadProvider(name, filepath.Join(append([]string{ids.dir}, rel...)...))
}

// Defaults returns the read-only defaults layer.
func (ids *Identities) Defaults() Reader { return ids.defaults }

// Global returns the user's global settings.
func (ids *Identities) Global() *Provider { return ids.global }

// Server returns the settings for network, loading them on first use.
func (ids *Identities) Server(network string) (*Provider, error) {
	if network == "" {
		return nil, errors.New("network name cannot be empty")
	}
	ids.mu.Lock()
	defer ids.mu.Unlock()
	if p, ok := ids.servers[network]; ok {
		return p, nil
	}
	p, err := ids.load("network "+network, "networks", fileName(network))
	if err != nil {
		return nil, err
	}
	ids.servers[network] = p
	return p, nil
}

// Channel returns the settings for channel on network, loading them on first
// use.
func (ids *Identities) Channel(network, channel string) (*Provider, error) {
	if network == "" || channel == "" {
		return nil, errors.New("network and channel names cannot be empty")
	}
	key := network + "\x00" + channel
	ids.mu.Lock()
	defer ids.mu.Unlock()
	if p, ok := ids.channels[key]; ok {
		return p, nil
	}
	p, err := ids.load(fmt.Sprintf("channel %s on %s", channel, network), "channels", url.PathEscape(network), fileName(channel))
	if err != nil {
		return nil, err
	}
	ids.channels[key] = p
	return p, nil
}

// View returns the settings seen from a channel on a network. Either name may
// be empty to leave that layer out.
func (ids *Identities) View(network, channel string) (*Aggregate, error) {
	var layers []Reader
	if network != "" && channel != "" {
		p, err := ids.Channel(network, channel)
		if err != nil {
			return nil, err
		}
		layers = append(layers, p)
	}
	if network != "" {
		p, err := ids.Server(network)
		if err != nil {
			return nil, err
		}
		layers = append(layers, p)
	}
	layers = append(layers, ids.global, ids.defaults)
	return NewAggregate(layers...), nil
}

// Save writes every loaded layer to disk.
func (ids *Identities) Save() error {
	ids.mu.Lock()
	providers := []*Provider{ids.global}
	for _, p := range ids.servers {
		providers = append(providers, p)
	}
	for _, p := range ids.channels {
		providers = append(providers, p)
	}
	ids.mu.Unlock()

	var errs []error
	for _, p := range providers {
		if err := p.Save(); err != nil {
			log.Printf("failed to save %s settings: %v", p.Name(), err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func fileName(name string) string {
	return url.PathEscape(name) + ".toml"
}
