// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmdirc/dmflags/pkg/cmdargs"
	"github.com/dmdirc/dmflags/pkg/flags"
	"github.com/dmdirc/dmflags/pkg/window"
)

// ErrUnknownCommand is returned by ParseCommand for lines naming a command
// that is not registered.
var ErrUnknownCommand = errors.New("unknown command")

// Parser dispatches typed lines to commands.
type Parser struct {
	registry *Registry
	chars    cmdargs.Chars
}

// NewParser returns a parser for the commands in r.
func NewParser(r *Registry, chars cmdargs.Chars) *Parser {
	return &Parser{registry: r, chars: chars}
}

// Chars returns the command characters the parser recognises.
func (p *Parser) Chars() cmdargs.Chars { return p.chars }

// ParseCommand handles one line typed into o.Window. Command lines run the
// named command; any other non-empty line is added to the window as a
// message. The returned error has already been shown in the window.
func (p *Parser) ParseCommand(o Origin, line string) error {
	if line == "" {
		return nil
	}
	args := cmdargs.New(p.chars, line)
	if !args.IsCommand() {
		o.Window.AddLine(window.Message, line)
		return nil
	}

	ctx := &Context{Origin: o, Args: args}
	name := args.CommandName()
	cmd, ok := p.registry.Lookup(name)
	if !ok {
		ctx.ShowError(fmt.Sprintf("Unknown command %s.", name))
		return fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}

	err := cmd.Execute(ctx)
	switch {
	case err == nil:
	case errors.Is(err, flags.ErrInvalid):
		for _, u := range cmd.Info().Usage() {
			ctx.ShowUsage(string(p.chars.Command) + u)
		}
	default:
		ctx.ShowError(err.Error())
	}
	return err
}

// Complete returns suggestions for the last word of a partially typed line.
// A trailing space starts a new, empty word.
func (p *Parser) Complete(o Origin, line string) []string {
	args := cmdargs.New(p.chars, line)
	if !args.IsCommand() {
		return nil
	}
	words := args.Words()
	partial := ""
	if last, _ := utf8.DecodeLastRuneInString(line); line != "" && !unicode.IsSpace(last) {
		partial = words[len(words)-1]
		words = words[:len(words)-1]
	}

	if len(words) == 0 {
		prefix := strings.TrimPrefix(partial, string(p.chars.Command))
		if args.IsSilent() {
			prefix = strings.TrimPrefix(prefix, string(p.chars.Silence))
		}
		return filterPrefix(p.registry.Names(), prefix)
	}

	cmd, ok := p.registry.Lookup(args.CommandName())
	if !ok {
		return nil
	}
	c, ok := cmd.(Completer)
	if !ok {
		return nil
	}
	previous := words[1:]
	ctx := &Context{Origin: o, Args: args}
	return filterPrefix(c.Suggest(ctx, len(previous), previous), partial)
}

func filterPrefix(candidates []string, prefix string) []string {
	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
