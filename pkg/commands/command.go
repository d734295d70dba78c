// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commands implements the chat commands typed into a window, such as
// "/echo" and "/set", and the parser that dispatches them.
package commands

import (
	"strings"

	"github.com/dmdirc/dmflags/pkg/cmdargs"
	"github.com/dmdirc/dmflags/pkg/window"
)

// Info describes a command.
type Info struct {
	Name string
	// Help holds one "syntax - description" line per form of the command,
	// without the command character.
	Help []string
}

// Usage returns the syntax part of each help line.
func (i Info) Usage() []string {
	out := make([]string, len(i.Help))
	for n, h := range i.Help {
		syntax, _, _ := strings.Cut(h, " - ")
		out[n] = syntax
	}
	return out
}

// Command is a chat command.
type Command interface {
	Info() Info
	// Execute runs the command. Errors wrapping flags.ErrInvalid have already
	// been shown to the user; the parser follows them with the usage text.
	Execute(ctx *Context) error
}

// Completer is implemented by commands that can suggest values for the
// argument at index arg, given the arguments before it.
type Completer interface {
	Suggest(ctx *Context, arg int, previous []string) []string
}

// Origin is where a line was typed.
type Origin struct {
	Window *window.Window
	// Network and Channel are set when the window belongs to a connection
	// or a channel on it.
	Network string
	Channel string
}

// Context is passed to a command for one invocation.
type Context struct {
	Origin Origin
	Args   *cmdargs.Arguments
}

// Silent reports whether the command was silenced.
func (c *Context) Silent() bool { return c.Args.IsSilent() }

// ShowOutput writes msg to the origin window unless the command is silent.
func (c *Context) ShowOutput(msg string) {
	if !c.Silent() {
		c.Origin.Window.ShowOutput(msg)
	}
}

// ShowError writes an error to the origin window unless the command is
// silent.
func (c *Context) ShowError(msg string) {
	if !c.Silent() {
		c.Origin.Window.ShowError(msg)
	}
}

// ShowUsage writes usage text to the origin window unless the command is
// silent.
func (c *Context) ShowUsage(msg string) {
	if !c.Silent() {
		c.Origin.Window.ShowUsage(msg)
	}
}
