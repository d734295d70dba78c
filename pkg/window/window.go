// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package window provides the text windows that commands write to.
package window

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Kind classifies a line written to a window.
type Kind int

const (
	// Output is command output.
	Output Kind = iota
	// Error is an error message from a command.
	Error
	// Usage is a command's usage text.
	Usage
	// Message is text the user typed that was not a command.
	Message
)

func (k Kind) String() string {
	switch k {
	case Output:
		return "output"
	case Error:
		return "error"
	case Usage:
		return "usage"
	case Message:
		return "message"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Line is a single line in a window's history.
type Line struct {
	Time time.Time
	Kind Kind
	Text string
}

// Window is a named target for command output. Lines are kept in memory and,
// when the window has a writer, rendered to it as they arrive.
type Window struct {
	name string
	out  io.Writer
	now  func() time.Time

	timestamp *color.Color
	errColor  *color.Color
	usage     *color.Color

	mu    sync.Mutex
	lines []Line
}

// Option configures a Window.
type Option func(*Window)

// WithWriter renders every line added to the window to out.
func WithWriter(out io.Writer) Option {
	return func(w *Window) {
		w.out = out
	}
}

// WithColor forces colour output on or off. By default fatih/color decides
// based on whether stdout is a terminal.
func WithColor(enabled bool) Option {
	return func(w *Window) {
		for _, c := range []*color.Color{w.timestamp, w.errColor, w.usage} {
			if enabled {
				c.EnableColor()
			} else {
				c.DisableColor()
			}
		}
	}
}

// WithClock sets the time source used for lines without an explicit time.
func WithClock(now func() time.Time) Option {
	return func(w *Window) {
		if now != nil {
			w.now = now
		}
	}
}

// New returns a window called name.
func New(name string, opts ...Option) *Window {
	w := &Window{
		name:      name,
		now:       time.Now,
		timestamp: color.New(color.Faint),
		errColor:  color.New(color.FgRed),
		usage:     color.New(color.FgYellow),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Name returns the window's name.
func (w *Window) Name() string { return w.name }

// AddLine adds text to the window at the current time.
func (w *Window) AddLine(kind Kind, text string) {
	w.AddLineAt(w.now(), kind, text)
}

// AddLineAt adds text to the window with the given timestamp. Multi-line
// text is split into one line each.
func (w *Window) AddLineAt(t time.Time, kind Kind, text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, s := range strings.Split(text, "\n") {
		l := Line{Time: t, Kind: kind, Text: s}
		w.lines = append(w.lines, l)
		if w.out != nil {
			fmt.Fprintln(w.out, w.render(l))
		}
	}
}

// ShowError adds an error line.
func (w *Window) ShowError(msg string) { w.AddLine(Error, msg) }

// ShowUsage adds a usage line.
func (w *Window) ShowUsage(msg string) { w.AddLine(Usage, msg) }

// ShowOutput adds an output line.
func (w *Window) ShowOutput(msg string) { w.AddLine(Output, msg) }

// Lines returns the window's history.
func (w *Window) Lines() []Line {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]Line(nil), w.lines...)
}

// Clear drops the window's history.
func (w *Window) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lines = nil
}

func (w *Window) render(l Line) string {
	ts := w.timestamp.Sprintf("[%s]", l.Time.Format("15:04:05"))
	switch l.Kind {
	case Error:
		return ts + " " + w.errColor.Sprint(l.Text)
	case Usage:
		return ts + " " + w.usage.Sprint("Usage: "+l.Text)
	default:
		return ts + " " + l.Text
	}
}
