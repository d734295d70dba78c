// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config stores client settings as domain/option/value triples and
// layers them into the view a command sees.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/dmdirc/dmflags/pkg/fileutil"
)

// Reader is read access to settings.
type Reader interface {
	// Option returns the value of domain.option.
	Option(domain, option string) (string, bool)
	// Domains returns every domain with at least one option, sorted.
	Domains() []string
	// Options returns the options set in domain.
	Options(domain string) map[string]string
}

// Store is a Reader that can also be changed.
type Store interface {
	Reader
	SetOption(domain, option, value string)
	UnsetOption(domain, option string)
}

// Provider is a single layer of settings, optionally backed by a TOML file
// with one table per domain.
type Provider struct {
	name string
	path string

	mu   sync.RWMutex
	data map[string]map[string]string
}

// NewProvider returns an empty in-memory Provider.
func NewProvider(name string) *Provider {
	return &Provider{name: name, data: make(map[string]map[string]string)}
}

// LoadProvider reads the provider stored at path. A missing file yields an
// empty provider that will be created on Save.
func LoadProvider(name, path string) (*Provider, error) {
	p := NewProvider(name)
	p.path = path
	if _, err := toml.DecodeFile(path, &p.data); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return p, nil
		}
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if p.data == nil {
		p.data = make(map[string]map[string]string)
	}
	return p, nil
}

// Name returns the provider's name.
func (p *Provider) Name() string { return p.name }

// Path returns the file backing the provider, or "" if it is in memory only.
func (p *Provider) Path() string { return p.path }

func (p *Provider) Option(domain, option string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.data[domain][option]
	return v, ok
}

func (p *Provider) Domains() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Sorted(maps.Keys(p.data))
}

func (p *Provider) Options(domain string) map[string]string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return maps.Clone(p.data[domain])
}

func (p *Provider) SetOption(domain, option, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	d, ok := p.data[domain]
	if !ok {
		d = make(map[string]string)
		p.data[domain] = d
	}
	d[option] = value
}

func (p *Provider) UnsetOption(domain, option string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	d, ok := p.data[domain]
	if !ok {
		return
	}
	delete(d, option)
	if len(d) == 0 {
		delete(p.data, domain)
	}
}

// Save writes the provider to its file. In-memory providers are not saved.
func (p *Provider) Save() error {
	if p.path == "" {
		return nil
	}
	p.mu.RLock()
	var buf bytes.Buffer
	err := toml.NewEncoder(&buf).Encode(p.data)
	p.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", p.name, err)
	}
	return fileutil.WriteFile(p.path, buf.Bytes(), 0o600)
}
