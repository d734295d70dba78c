// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flags

import (
	"strings"
	"testing"
)

func TestBuilderErrors(t *testing.T) {
	tests := []struct {
		name    string
		build   func(b *Builder)
		wantErr string
	}{
		{
			name:    "duplicate",
			build:   func(b *Builder) { b.Switch("a"); b.Switch("a") },
			wantErr: `flag "a" already defined`,
		},
		{
			name:    "empty name",
			build:   func(b *Builder) { b.Switch("") },
			wantErr: "flag name cannot be empty",
		},
		{
			name:    "negative",
			build:   func(b *Builder) { b.Add(Spec{Name: "a", DelayedArgs: -1}) },
			wantErr: "cannot be negative",
		},
		{
			name:    "max below min",
			build:   func(b *Builder) { b.Add(Spec{Name: "a", MinArgs: 2, MaxArgs: 1}) },
			wantErr: "maximum arguments 1 below minimum 2",
		},
		{
			name: "foreign flag",
			build: func(b *Builder) {
				other := NewBuilder().Switch("x")
				b.Enable(b.Switch("a"), other)
			},
			wantErr: "flag --x is not registered with this builder",
		},
		{
			name:    "nil flag",
			build:   func(b *Builder) { b.Disable(b.Switch("a"), nil) },
			wantErr: "flag <nil> is not registered with this builder",
		},
		{
			name: "first error wins",
			build: func(b *Builder) {
				b.Switch("")
				b.Switch("a")
				b.Switch("a")
			},
			wantErr: "flag name cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			tt.build(b)
			h, err := b.Build()
			if err == nil {
				t.Fatalf("Build succeeded, want error containing %q", tt.wantErr)
			}
			if h != nil {
				t.Errorf("Build returned a handler alongside error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestBuilderFrozenAfterBuild(t *testing.T) {
	b := NewBuilder()
	b.Switch("a")
	if _, err := b.Build(); err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if _, err := b.Build(); err == nil {
		t.Fatal("second Build succeeded, want error")
	}

	b = NewBuilder()
	a := b.Switch("a")
	h := b.MustBuild()
	b.Enable(a, b.Switch("late"))
	if _, ok := h.Lookup("late"); ok {
		t.Error("flag added after Build is visible to the handler")
	}
	if len(a.Enables()) != 0 {
		t.Errorf("Enables() = %v after Build, want none", a.Enables())
	}
}

func TestMustBuildPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MustBuild did not panic")
		}
	}()
	b := NewBuilder()
	b.Switch("a")
	b.Switch("a")
	b.MustBuild()
}

func TestFlagArgumentCounts(t *testing.T) {
	tests := []struct {
		spec      Spec
		wantMax   int
		wantNeeds bool
	}{
		{Spec{Name: "switch"}, 0, false},
		{Spec{Name: "min", MinArgs: 2}, 2, true},
		{Spec{Name: "range", MinArgs: 1, MaxArgs: 3}, 3, true},
		{Spec{Name: "optional", MaxArgs: 2}, 2, true},
		{Spec{Name: "delayed", DelayedArgs: 1}, 0, true},
	}
	b := NewBuilder()
	for _, tt := range tests {
		f := b.Add(tt.spec)
		if f.MaxArgs() != tt.wantMax {
			t.Errorf("%s: MaxArgs() = %d, want %d", f, f.MaxArgs(), tt.wantMax)
		}
		if f.NeedsArguments() != tt.wantNeeds {
			t.Errorf("%s: NeedsArguments() = %v, want %v", f, f.NeedsArguments(), tt.wantNeeds)
		}
	}
	h := b.MustBuild()
	if got := len(h.Flags()); got != len(tests) {
		t.Errorf("len(Flags()) = %d, want %d", got, len(tests))
	}
}

func TestExclusive(t *testing.T) {
	b := NewBuilder()
	a, c, d := b.Switch("a"), b.Switch("c"), b.Switch("d")
	b.Exclusive(a, c, d)
	h := b.MustBuild()

	for _, f := range []*Flag{a, c, d} {
		if got := len(f.Disables()); got != 2 {
			t.Errorf("%s disables %d flags, want 2", f, got)
		}
	}
	for _, args := range [][]string{{"--a", "--c"}, {"--d", "--a"}, {"--c", "--d"}} {
		if _, err := h.Parse(nil, args); err == nil {
			t.Errorf("Parse(%v) succeeded, want error", args)
		}
	}
	if _, err := h.Parse(nil, []string{"--c"}); err != nil {
		t.Errorf("Parse(--c) error: %v", err)
	}
}

func TestEnablers(t *testing.T) {
	b := NewBuilder()
	a, c, d := b.Switch("a"), b.Switch("c"), b.Switch("d")
	b.Enable(c, d)
	b.Enable(a, d)
	h := b.MustBuild()

	got := h.Enablers(d)
	if len(got) != 2 || got[0] != a || got[1] != c {
		t.Errorf("Enablers(d) = %v, want [--a --c]", got)
	}
	if len(h.Enablers(a)) != 0 {
		t.Errorf("Enablers(a) = %v, want none", h.Enablers(a))
	}
}

func TestRepeatedRelations(t *testing.T) {
	b := NewBuilder()
	a, x := b.Switch("a"), b.Switch("x")
	b.Enable(a, x)
	b.Enable(a, x, x)
	b.Disable(x, a)
	b.Disable(x, a)
	h := b.MustBuild()

	if got := h.Enablers(x); len(got) != 1 || got[0] != a {
		t.Errorf("Enablers(x) = %v, want [--a]", got)
	}
	if got := x.Disables(); len(got) != 1 || got[0] != a {
		t.Errorf("x.Disables() = %v, want [--a]", got)
	}
	_, err := h.Parse(nil, []string{"--x"})
	if err == nil {
		t.Fatal("Parse(--x) succeeded without its enabler")
	}
	if want := "Cannot use flag --x without --a"; err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}
