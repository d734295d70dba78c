// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package updater

import (
	"context"
	"fmt"
	"log"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
)

// Manifest lists published component versions.
type Manifest struct {
	Releases []Release `toml:"release"`
}

// Release is a single published version of a component.
type Release struct {
	Component string `toml:"component"`
	Channel   string `toml:"channel"`
	Version   string `toml:"version"`
	URL       string `toml:"url"`
}

// LoadManifest reads a TOML manifest from path.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &m, nil
}

// ManifestChecker offers the newest release in a manifest file whose channel
// is included in the subscribed channel.
type ManifestChecker struct {
	path    string
	channel Channel
}

// NewManifestChecker returns a checker reading the manifest at path.
func NewManifestChecker(path string, channel Channel) *ManifestChecker {
	return &ManifestChecker{path: path, channel: channel}
}

func (mc *ManifestChecker) CheckForUpdates(ctx context.Context, components []*Component) (map[string]CheckResult, error) {
	if mc.channel == None {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m, err := LoadManifest(mc.path)
	if err != nil {
		return nil, err
	}

	latest := make(map[string]CheckResult)
	for _, rel := range m.Releases {
		ch, err := ParseChannel(rel.Channel)
		if err != nil {
			log.Printf("manifest %s: skipping %s %s: %v", mc.path, rel.Component, rel.Version, err)
			continue
		}
		if !mc.channel.Includes(ch) {
			continue
		}
		v, err := semver.NewVersion(rel.Version)
		if err != nil {
			log.Printf("manifest %s: skipping %s: invalid version %q: %v", mc.path, rel.Component, rel.Version, err)
			continue
		}
		if cur, ok := latest[rel.Component]; ok && !v.GreaterThan(cur.Version) {
			continue
		}
		latest[rel.Component] = CheckResult{Version: v, URL: rel.URL}
	}

	out := make(map[string]CheckResult, len(components))
	for _, c := range components {
		r, ok := latest[c.Name]
		if !ok {
			continue
		}
		r.Component = c
		r.Available = c.Version == nil || r.Version.GreaterThan(c.Version)
		out[c.Name] = r
	}
	return out, nil
}
