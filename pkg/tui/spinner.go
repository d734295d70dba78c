// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tui holds small terminal helpers for the console.
package tui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
)

var DefaultFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner redraws a single status line until stopped.
type Spinner struct {
	out      io.Writer
	frames   []string
	interval time.Duration
	color    *color.Color

	mu      sync.Mutex
	msg     string
	idx     int
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

type SpinnerOption func(*Spinner)

func WithFrames(frames []string) SpinnerOption {
	return func(s *Spinner) {
		if len(frames) > 0 {
			s.frames = frames
		}
	}
}

func WithInterval(d time.Duration) SpinnerOption {
	return func(s *Spinner) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithColor colours the spinner frame.
func WithColor(c *color.Color) SpinnerOption {
	return func(s *Spinner) { s.color = c }
}

func NewSpinner(out io.Writer, opts ...SpinnerOption) *Spinner {
	s := &Spinner{
		out:      out,
		frames:   DefaultFrames,
		interval: 120 * time.Millisecond,
		color:    color.New(color.FgCyan),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start shows msg and starts animating. Starting a running spinner only
// replaces its message.
func (s *Spinner) Start(msg string) {
	s.mu.Lock()
	if s.running {
		s.msg = msg
		s.mu.Unlock()
		return
	}
	s.running = true
	s.msg = msg
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	s.render()
	s.mu.Unlock()
	go s.loop()
}

// Update replaces the message of a running spinner.
func (s *Spinner) Update(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.msg = msg
	s.render()
}

// Stop halts the animation and replaces the line with final, or clears it
// when final is empty.
func (s *Spinner) Stop(final string) {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	stopCh, doneCh := s.stopCh, s.doneCh
	s.mu.Unlock()

	close(stopCh)
	<-doneCh

	fmt.Fprint(s.out, "\r\033[K")
	if final != "" {
		fmt.Fprintln(s.out, final)
	}
}

func (s *Spinner) loop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			if s.running {
				s.idx = (s.idx + 1) % len(s.frames)
				s.render()
			}
			s.mu.Unlock()
		case <-s.stopCh:
			close(s.doneCh)
			return
		}
	}
}

// render draws the current frame. s.mu must be held.
func (s *Spinner) render() {
	line := s.color.Sprint(s.frames[s.idx%len(s.frames)])
	if s.msg != "" {
		line += " " + s.msg
	}
	fmt.Fprintf(s.out, "\r\033[K%s", line)
}
