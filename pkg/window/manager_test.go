// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package window

import "testing"

func TestManagerFind(t *testing.T) {
	m := NewManager()
	status := New("status")
	server := New("irc.example.net")
	channel := New("#dmdirc")
	custom := New("notes")
	serverCustom := New("raw")
	rootCustom := New("global")

	mustAdd := func(parent, w *Window) {
		t.Helper()
		if err := m.Add(parent, w); err != nil {
			t.Fatalf("Add(%q) error: %v", w.Name(), err)
		}
	}
	mustAdd(nil, status)
	mustAdd(nil, rootCustom)
	mustAdd(nil, server)
	mustAdd(server, channel)
	mustAdd(server, serverCustom)
	mustAdd(channel, custom)

	tests := []struct {
		origin *Window
		name   string
		want   *Window
	}{
		{channel, "notes", custom},
		{channel, "raw", serverCustom},
		{channel, "global", rootCustom},
		{status, "raw", nil},
		{status, "global", rootCustom},
		{channel, "missing", nil},
		{nil, "status", status},
	}
	for _, tt := range tests {
		got, ok := m.Find(tt.origin, tt.name)
		if ok != (tt.want != nil) || got != tt.want {
			t.Errorf("Find(%v, %q) = %v, %v, want %v", tt.origin, tt.name, got, ok, tt.want)
		}
	}

	if p, ok := m.Parent(custom); !ok || p != channel {
		t.Errorf("Parent(notes) = %v, %v, want #dmdirc", p, ok)
	}
	if _, ok := m.Parent(status); ok {
		t.Error("Parent(status) found, want root")
	}
	if got := m.Children(server); len(got) != 2 {
		t.Errorf("len(Children(server)) = %d, want 2", len(got))
	}
	if got := m.Roots(); len(got) != 3 {
		t.Errorf("len(Roots()) = %d, want 3", len(got))
	}
}

func TestManagerAddErrors(t *testing.T) {
	m := NewManager()
	w := New("a")
	if err := m.Add(nil, w); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if err := m.Add(nil, w); err == nil {
		t.Error("adding a window twice succeeded")
	}
	if err := m.Add(New("stranger"), New("b")); err == nil {
		t.Error("adding under an unknown parent succeeded")
	}
}
