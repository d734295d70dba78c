// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"strconv"
	"time"

	"github.com/dmdirc/dmflags/pkg/flags"
	"github.com/dmdirc/dmflags/pkg/window"
)

// Echo writes its arguments back to a window.
type Echo struct {
	windows *window.Manager
	now     func() time.Time

	flags  *flags.Handler
	ts     *flags.Flag
	target *flags.Flag
}

// NewEcho returns the echo command. Targets named with --target are looked
// up in windows.
func NewEcho(windows *window.Manager) *Echo {
	e := &Echo{windows: windows, now: time.Now}
	b := flags.NewBuilder()
	e.ts = b.Add(flags.Spec{Name: "ts", MinArgs: 1})
	e.target = b.Add(flags.Spec{Name: "target", MinArgs: 1})
	e.flags = b.MustBuild()
	return e
}

func (e *Echo) Info() Info {
	return Info{
		Name: "echo",
		Help: []string{"echo [--ts <timestamp>] [--target <window>] <line> - echos the specified line to the window"},
	}
}

func (e *Echo) Execute(ctx *Context) error {
	res, err := e.flags.Process(ctx, ctx.Args)
	if err != nil {
		return err
	}

	at := e.now()
	if res.Has(e.ts) {
		ms, err := strconv.ParseInt(res.ArgumentsString(e.ts), 10, 64)
		if err != nil {
			ctx.ShowError("Unable to process timestamp")
			return nil
		}
		at = time.UnixMilli(ms)
	}

	dest := ctx.Origin.Window
	if res.Has(e.target) {
		w, ok := e.windows.Find(ctx.Origin.Window, res.ArgumentsString(e.target))
		if !ok {
			ctx.ShowError("Unable to find target window")
			return nil
		}
		dest = w
	}
	if !ctx.Silent() {
		dest.AddLineAt(at, window.Output, res.TrailingString(0))
	}
	return nil
}

func (e *Echo) Suggest(ctx *Context, arg int, previous []string) []string {
	switch {
	case arg == 0:
		return []string{"--target", "--ts"}
	case arg == 1 && previous[0] == "--target",
		arg == 3 && previous[0] == "--ts" && previous[2] == "--target":
		return e.windowNames(ctx.Origin.Window)
	case arg == 1 && previous[0] == "--ts":
		return []string{strconv.FormatInt(e.now().UnixMilli(), 10)}
	case arg == 2 && previous[0] == "--ts":
		return []string{"--target"}
	}
	return nil
}

// windowNames lists the windows a --target from origin could name: its
// children, its parent's children and the root windows.
func (e *Echo) windowNames(origin *window.Window) []string {
	ws := e.windows.Children(origin)
	if p, ok := e.windows.Parent(origin); ok {
		ws = append(ws, e.windows.Children(p)...)
	}
	ws = append(ws, e.windows.Roots()...)
	names := make([]string, 0, len(ws))
	for _, w := range ws {
		names = append(names, w.Name())
	}
	return names
}
