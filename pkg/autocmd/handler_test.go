// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package autocmd

import (
	"testing"

	"github.com/dmdirc/dmflags/pkg/cmdargs"
	"github.com/dmdirc/dmflags/pkg/commands"
	"github.com/dmdirc/dmflags/pkg/window"
	"github.com/google/go-cmp/cmp"
)

type call struct {
	Window  string
	Network string
	Line    string
}

type recorder struct {
	calls []call
}

func (r *recorder) Info() commands.Info { return commands.Info{Name: "rec"} }

func (r *recorder) Execute(ctx *commands.Context) error {
	r.calls = append(r.calls, call{
		Window:  ctx.Origin.Window.Name(),
		Network: ctx.Origin.Network,
		Line:    ctx.Args.ArgumentsString(0),
	})
	return nil
}

func newTestHandler(t *testing.T, a AutoCommand) (*Handler, *recorder) {
	t.Helper()
	rec := &recorder{}
	reg, err := commands.NewRegistry(rec)
	if err != nil {
		t.Fatalf("NewRegistry error: %v", err)
	}
	m := NewManager(nil)
	if err := m.Add(a); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	parser := commands.NewParser(reg, cmdargs.DefaultChars)
	return NewHandler(m, parser, window.New("global")), rec
}

var quakenetConn = Connection{
	Address: "irc.quakenet.org",
	Network: "Quakenet",
	Profile: "profile",
	Window:  window.New("irc.quakenet.org"),
}

func TestHandlerClientOpened(t *testing.T) {
	tests := []struct {
		name string
		auto AutoCommand
		want []call
	}{
		{
			name: "global with profile",
			auto: AutoCommand{Profile: "profile", Response: "rec Testing123"},
			want: []call{{Window: "global", Line: "Testing123"}},
		},
		{
			name: "network is not global",
			auto: AutoCommand{Network: "Quakenet", Profile: "profile", Response: "rec Testing123"},
		},
		{
			name: "multiple lines",
			auto: AutoCommand{Response: "rec Testing\nrec 123"},
			want: []call{{Window: "global", Line: "Testing"}, {Window: "global", Line: "123"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, rec := newTestHandler(t, tt.auto)
			h.ClientOpened()
			if diff := cmp.Diff(tt.want, rec.calls); diff != "" {
				t.Errorf("calls mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHandlerServerConnected(t *testing.T) {
	ran := []call{{Window: "irc.quakenet.org", Network: "Quakenet", Line: "Testing123"}}
	tests := []struct {
		name string
		auto AutoCommand
		want []call
	}{
		{"global never runs on connect", AutoCommand{Profile: "profile", Response: "rec Testing123"}, nil},
		{"wrong profile", AutoCommand{Network: "Quakenet", Profile: "profile1", Response: "rec Testing123"}, nil},
		{"matching profile", AutoCommand{Network: "Quakenet", Profile: "profile", Response: "rec Testing123"}, ran},
		{"wrong server", AutoCommand{Server: "server", Profile: "profile", Response: "rec Testing123"}, nil},
		{"wrong network", AutoCommand{Network: "network", Profile: "profile", Response: "rec Testing123"}, nil},
		{"network only", AutoCommand{Network: "Quakenet", Response: "rec Testing123"}, ran},
		{"server only", AutoCommand{Server: "irc.quakenet.org", Response: "rec Testing123"}, ran},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, rec := newTestHandler(t, tt.auto)
			h.ServerConnected(quakenetConn)
			if diff := cmp.Diff(tt.want, rec.calls); diff != "" {
				t.Errorf("calls mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHandlerUnknownCommandShownInWindow(t *testing.T) {
	h, rec := newTestHandler(t, AutoCommand{Response: "nope"})
	h.ClientOpened()
	if len(rec.calls) != 0 {
		t.Errorf("recorder called: %v", rec.calls)
	}
	lines := h.global.Lines()
	if len(lines) != 1 || lines[0].Text != "Unknown command nope." {
		t.Errorf("global window lines = %+v", lines)
	}
}
