// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"
	"strings"
)

// Help lists commands and shows their help text.
type Help struct {
	registry *Registry
}

// NewHelp returns the help command for the commands in r.
func NewHelp(r *Registry) *Help {
	return &Help{registry: r}
}

func (h *Help) Info() Info {
	return Info{
		Name: "help",
		Help: []string{"help [command] - shows client command help"},
	}
}

func (h *Help) Execute(ctx *Context) error {
	args := ctx.Args.Arguments()
	cmdChar := string(ctx.Args.Chars().Command)
	if len(args) == 0 {
		ctx.ShowOutput("Available commands: " + strings.Join(h.registry.Names(), ", "))
		return nil
	}
	name := strings.TrimPrefix(args[0], cmdChar)
	cmd, ok := h.registry.Lookup(name)
	if !ok {
		ctx.ShowError(fmt.Sprintf("Command not found: %s", name))
		return nil
	}
	for _, line := range cmd.Info().Help {
		ctx.ShowOutput(cmdChar + line)
	}
	return nil
}

func (h *Help) Suggest(_ *Context, arg int, _ []string) []string {
	if arg == 0 {
		return h.registry.Names()
	}
	return nil
}
