// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"
	"log"
	"maps"
	"slices"
	"strings"

	"github.com/dmdirc/dmflags/pkg/config"
	"github.com/dmdirc/dmflags/pkg/flags"
)

// Set inspects and changes settings.
type Set struct {
	ids *config.Identities

	flags   *flags.Handler
	server  *flags.Flag
	channel *flags.Flag
	unset   *flags.Flag
	append  *flags.Flag
}

// NewSet returns the set command operating on ids.
func NewSet(ids *config.Identities) *Set {
	s := &Set{ids: ids}
	b := flags.NewBuilder()
	s.server = b.Switch("server")
	s.channel = b.Switch("channel")
	s.unset = b.Add(flags.Spec{Name: "unset", DelayedArgs: 2})
	s.append = b.Add(flags.Spec{Name: "append", DelayedArgs: 2})
	b.Exclusive(s.server, s.channel)
	b.Exclusive(s.unset, s.append)
	s.flags = b.MustBuild()
	return s
}

func (s *Set) Info() Info {
	return Info{
		Name: "set",
		Help: []string{
			"set [--server|--channel] [domain [option [newvalue]]] - inspect or change configuration settings",
			"set [--server|--channel] --append <domain> <option> <data> - appends data to the specified option",
			"set [--server|--channel] --unset <domain> <option> - unsets the specified option",
		},
	}
}

func (s *Set) Execute(ctx *Context) error {
	res, err := s.flags.Process(ctx, ctx.Args)
	if err != nil {
		return err
	}

	network, channel := "", ""
	if res.Has(s.server) {
		if ctx.Origin.Network == "" {
			ctx.ShowError("Cannot use --server in this context")
			return nil
		}
		network = ctx.Origin.Network
	}
	if res.Has(s.channel) {
		if ctx.Origin.Network == "" || ctx.Origin.Channel == "" {
			ctx.ShowError("Cannot use --channel in this context")
			return nil
		}
		network, channel = ctx.Origin.Network, ctx.Origin.Channel
	}
	store, err := s.store(network, channel)
	if err != nil {
		return err
	}
	view, err := s.ids.View(network, channel)
	if err != nil {
		return err
	}

	if res.Has(s.unset) {
		a := res.Arguments(s.unset)
		store.UnsetOption(a[0], a[1])
		if err := s.save(store); err != nil {
			return err
		}
		ctx.ShowOutput(fmt.Sprintf("%s.%s has been unset.", a[0], a[1]))
		return nil
	}
	if res.Has(s.append) {
		a := res.Arguments(s.append)
		current, _ := view.Option(a[0], a[1])
		return s.setOption(ctx, store, a[0], a[1], current+res.TrailingString(0))
	}

	args := res.Trailing()
	switch len(args) {
	case 0:
		ctx.ShowOutput(fmt.Sprintf("Valid domains (use %cset <domain> to see options within a domain): %s",
			ctx.Args.Chars().Command, strings.Join(view.Domains(), ", ")))
	case 1:
		opts := slices.Sorted(maps.Keys(view.Options(args[0])))
		if len(opts) == 0 {
			ctx.ShowError(fmt.Sprintf("There are no options in the domain '%s'.", args[0]))
			return nil
		}
		ctx.ShowOutput(fmt.Sprintf("Options in domain '%s': %s", args[0], strings.Join(opts, ", ")))
	case 2:
		v, ok := view.Option(args[0], args[1])
		if !ok {
			ctx.ShowError(fmt.Sprintf("Option not found: %s.%s", args[0], args[1]))
			return nil
		}
		ctx.ShowOutput(fmt.Sprintf("The current value of %s.%s is: %s", args[0], args[1], v))
	default:
		return s.setOption(ctx, store, args[0], args[1], res.TrailingString(2))
	}
	return nil
}

func (s *Set) store(network, channel string) (*config.Provider, error) {
	switch {
	case channel != "":
		return s.ids.Channel(network, channel)
	case network != "":
		return s.ids.Server(network)
	default:
		return s.ids.Global(), nil
	}
}

func (s *Set) setOption(ctx *Context, store *config.Provider, domain, option, value string) error {
	store.SetOption(domain, option, value)
	if err := s.save(store); err != nil {
		return err
	}
	ctx.ShowOutput(fmt.Sprintf("%s.%s has been set to: %s", domain, option, value))
	return nil
}

func (s *Set) save(store *config.Provider) error {
	if err := store.Save(); err != nil {
		log.Printf("failed to save %s settings: %v", store.Name(), err)
		return fmt.Errorf("unable to save settings: %w", err)
	}
	return nil
}

var setFlagNames = []string{"--unset", "--append", "--server", "--channel"}

func (s *Set) Suggest(ctx *Context, arg int, previous []string) []string {
	view, err := s.ids.View(ctx.Origin.Network, ctx.Origin.Channel)
	if err != nil {
		return nil
	}
	optionNames := func(domain string) []string {
		return slices.Sorted(maps.Keys(view.Options(domain)))
	}
	switch {
	case arg == 0:
		return append(view.Domains(), setFlagNames...)
	case arg == 1 && slices.Contains(setFlagNames, previous[0]):
		return view.Domains()
	case arg == 1:
		return optionNames(previous[0])
	case arg == 2 && slices.Contains(setFlagNames, previous[0]):
		return optionNames(previous[1])
	}
	return nil
}
