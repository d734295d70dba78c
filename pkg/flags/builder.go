// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flags

import (
	"errors"
	"fmt"
	"slices"
)

var errBuilt = errors.New("flag builder already built")

// Builder collects flags and their relationships for one command. The first
// error encountered is kept and returned by Build, so declarations can be
// chained without checking each step.
type Builder struct {
	flags  []*Flag
	byName map[string]*Flag
	err    error
	built  bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{byName: make(map[string]*Flag)}
}

// Add registers a flag described by s and returns it.
func (b *Builder) Add(s Spec) *Flag {
	f := &Flag{
		name:    s.Name,
		minArgs: s.MinArgs,
		maxArgs: max(s.MaxArgs, s.MinArgs),
		delayed: s.DelayedArgs,
		owner:   b,
	}
	if b.built {
		b.fail(errBuilt)
		return f
	}
	if err := s.validate(); err != nil {
		b.fail(err)
		return f
	}
	if _, exists := b.byName[s.Name]; exists {
		b.fail(fmt.Errorf("flag %q already defined", s.Name))
		return f
	}
	b.byName[s.Name] = f
	b.flags = append(b.flags, f)
	return f
}

// Switch registers a flag that takes no arguments.
func (b *Builder) Switch(name string) *Flag {
	return b.Add(Spec{Name: name})
}

// Enable declares that f makes each of targets eligible. A flag with at
// least one enabler is ineligible until an enabler has been used.
func (b *Builder) Enable(f *Flag, targets ...*Flag) *Builder {
	if b.relate(f, targets) {
		f.enables = appendNew(f.enables, targets)
	}
	return b
}

// Disable declares that f makes each of targets ineligible for the rest of
// the command line.
func (b *Builder) Disable(f *Flag, targets ...*Flag) *Builder {
	if b.relate(f, targets) {
		f.disables = appendNew(f.disables, targets)
	}
	return b
}

// Exclusive makes every flag in fs disable every other flag in fs.
func (b *Builder) Exclusive(fs ...*Flag) *Builder {
	for i, f := range fs {
		others := make([]*Flag, 0, len(fs)-1)
		others = append(others, fs[:i]...)
		others = append(others, fs[i+1:]...)
		b.Disable(f, others...)
	}
	return b
}

func (b *Builder) relate(f *Flag, targets []*Flag) bool {
	if b.built {
		b.fail(errBuilt)
		return false
	}
	for _, t := range append([]*Flag{f}, targets...) {
		if t == nil || t.owner != b || b.byName[t.name] != t {
			b.fail(fmt.Errorf("flag %v is not registered with this builder", t))
			return false
		}
	}
	return true
}

// appendNew appends the targets not already in fs.
func appendNew(fs, targets []*Flag) []*Flag {
	for _, t := range targets {
		if !slices.Contains(fs, t) {
			fs = append(fs, t)
		}
	}
	return fs
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Build freezes the flag set and returns a Handler for it. The Builder
// cannot be modified afterwards.
func (b *Builder) Build() (*Handler, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.built {
		return nil, errBuilt
	}
	b.built = true

	h := &Handler{
		flags:    append([]*Flag(nil), b.flags...),
		byName:   make(map[string]*Flag, len(b.flags)),
		enablers: make(map[*Flag][]*Flag),
	}
	for _, f := range b.flags {
		h.byName[f.name] = f
		for _, t := range f.enables {
			h.enablers[t] = append(h.enablers[t], f)
		}
	}
	return h, nil
}

// MustBuild is like Build but panics on error. It is meant for flag sets
// declared at command construction time.
func (b *Builder) MustBuild() *Handler {
	h, err := b.Build()
	if err != nil {
		panic(err)
	}
	return h
}
