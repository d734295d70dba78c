// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flags

import "fmt"

// Prefix is the token prefix that marks a flag.
const Prefix = "--"

// Spec declares a flag before it is added to a Builder.
type Spec struct {
	// Name is matched case-sensitively against "--Name" tokens.
	Name string
	// MinArgs immediate arguments must directly follow the flag.
	MinArgs int
	// MaxArgs bounds the immediate arguments. Values below MinArgs are
	// treated as MinArgs.
	MaxArgs int
	// DelayedArgs are taken from the trailing arguments once all flags
	// have been read.
	DelayedArgs int
}

// Flag is a single flag of a command. Flags are created by a Builder and
// must not be shared between builders.
type Flag struct {
	name    string
	minArgs int
	maxArgs int
	delayed int

	owner    *Builder
	enables  []*Flag
	disables []*Flag
}

// Name returns the flag name without the "--" prefix.
func (f *Flag) Name() string { return f.name }

// MinArgs returns the number of required immediate arguments.
func (f *Flag) MinArgs() int { return f.minArgs }

// MaxArgs returns the maximum number of immediate arguments.
func (f *Flag) MaxArgs() int { return f.maxArgs }

// DelayedArgs returns the number of arguments taken from the trailing
// argument list.
func (f *Flag) DelayedArgs() int { return f.delayed }

// NeedsArguments reports whether the flag consumes any tokens besides
// itself.
func (f *Flag) NeedsArguments() bool { return f.maxArgs > 0 || f.delayed > 0 }

// Enables returns the flags this flag makes eligible.
func (f *Flag) Enables() []*Flag { return append([]*Flag(nil), f.enables...) }

// Disables returns the flags this flag makes ineligible.
func (f *Flag) Disables() []*Flag { return append([]*Flag(nil), f.disables...) }

func (f *Flag) String() string {
	if f == nil {
		return "<nil>"
	}
	return Prefix + f.name
}

func (s Spec) validate() error {
	if s.Name == "" {
		return fmt.Errorf("flag name cannot be empty")
	}
	if s.MinArgs < 0 || s.MaxArgs < 0 || s.DelayedArgs < 0 {
		return fmt.Errorf("flag %q: argument counts cannot be negative", s.Name)
	}
	if s.MaxArgs != 0 && s.MaxArgs < s.MinArgs {
		return fmt.Errorf("flag %q: maximum arguments %d below minimum %d", s.Name, s.MaxArgs, s.MinArgs)
	}
	return nil
}
