// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"maps"
	"slices"
)

// Aggregate layers several Readers. Earlier layers take precedence.
type Aggregate struct {
	layers []Reader
}

// NewAggregate returns an Aggregate over layers, most specific first.
func NewAggregate(layers ...Reader) *Aggregate {
	return &Aggregate{layers: layers}
}

func (a *Aggregate) Option(domain, option string) (string, bool) {
	for _, l := range a.layers {
		if v, ok := l.Option(domain, option); ok {
			return v, true
		}
	}
	return "", false
}

func (a *Aggregate) Domains() []string {
	seen := make(map[string]struct{})
	for _, l := range a.layers {
		for _, d := range l.Domains() {
			seen[d] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

func (a *Aggregate) Options(domain string) map[string]string {
	out := make(map[string]string)
	for i := len(a.layers) - 1; i >= 0; i-- {
		maps.Copy(out, a.layers[i].Options(domain))
	}
	return out
}
