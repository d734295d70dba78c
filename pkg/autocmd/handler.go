// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package autocmd

import (
	"log"

	"github.com/dmdirc/dmflags/pkg/commands"
	"github.com/dmdirc/dmflags/pkg/window"
)

// Connection describes an established server connection.
type Connection struct {
	Address string
	Network string
	Profile string
	// Window is the connection's server window.
	Window *window.Window
}

// Matches reports whether a applies to conn. Global auto-commands never
// match a connection.
func (a AutoCommand) Matches(conn Connection) bool {
	if a.IsGlobal() {
		return false
	}
	return (a.Server == "" || a.Server == conn.Address) &&
		(a.Network == "" || a.Network == conn.Network) &&
		(a.Profile == "" || a.Profile == conn.Profile)
}

// Handler runs auto-commands through a command parser.
type Handler struct {
	manager *Manager
	parser  *commands.Parser
	global  *window.Window
}

// NewHandler returns a Handler running the auto-commands held by m. Global
// auto-commands run in the global window.
func NewHandler(m *Manager, parser *commands.Parser, global *window.Window) *Handler {
	return &Handler{manager: m, parser: parser, global: global}
}

// ClientOpened runs the global auto-command.
func (h *Handler) ClientOpened() {
	if a, ok := h.manager.Global(); ok {
		h.run(commands.Origin{Window: h.global}, a)
	}
}

// ServerConnected runs every connection auto-command matching conn.
func (h *Handler) ServerConnected(conn Connection) {
	origin := commands.Origin{Window: conn.Window, Network: conn.Network}
	for _, a := range h.manager.Connection() {
		if a.Matches(conn) {
			h.run(origin, a)
		}
	}
}

func (h *Handler) run(origin commands.Origin, a AutoCommand) {
	prefix := string(h.parser.Chars().Command)
	for _, line := range a.Lines() {
		if err := h.parser.ParseCommand(origin, prefix+line); err != nil {
			log.Printf("auto-command %v: %v", a, err)
		}
	}
}
