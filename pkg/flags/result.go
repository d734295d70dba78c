// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flags

import (
	"strings"

	"github.com/dmdirc/dmflags/pkg/cmdargs"
)

// Span is a half-open range of token indexes.
type Span struct {
	Start int
	End   int
}

// Len returns the number of tokens in the span.
func (s Span) Len() int { return s.End - s.Start }

// Match records where a flag's arguments were found.
type Match struct {
	Flag      *Flag
	Immediate Span
	Delayed   Span
}

// Result is the outcome of a successful parse.
type Result struct {
	args    []string
	line    *cmdargs.Arguments
	matches map[*Flag]Match
	order   []*Flag
	scanned int
	global  int
}

func (r *Result) record(m Match) {
	if _, ok := r.matches[m.Flag]; !ok {
		r.order = append(r.order, m.Flag)
	}
	r.matches[m.Flag] = m
}

// Has reports whether f was used.
func (r *Result) Has(f *Flag) bool {
	_, ok := r.matches[f]
	return ok
}

// Match returns the match for f. If f was repeated, the last occurrence
// wins.
func (r *Result) Match(f *Flag) (Match, bool) {
	m, ok := r.matches[f]
	return m, ok
}

// Flags returns the matched flags in order of first appearance.
func (r *Result) Flags() []*Flag {
	return append([]*Flag(nil), r.order...)
}

// Offset returns the index of the first token after f's immediate
// arguments.
func (r *Result) Offset(f *Flag) (int, bool) {
	m, ok := r.matches[f]
	if !ok {
		return 0, false
	}
	return m.Immediate.End, true
}

// Offsets returns Offset for every matched flag, keyed by flag name.
func (r *Result) Offsets() map[string]int {
	out := make(map[string]int, len(r.matches))
	for f, m := range r.matches {
		out[f.name] = m.Immediate.End
	}
	return out
}

// Scanned returns the index at which flag scanning stopped.
func (r *Result) Scanned() int { return r.scanned }

// Global returns the index of the first free trailing argument, after any
// delayed flag arguments.
func (r *Result) Global() int { return r.global }

// Arguments returns f's immediate arguments followed by its delayed ones.
func (r *Result) Arguments(f *Flag) []string {
	m, ok := r.matches[f]
	if !ok {
		return nil
	}
	out := make([]string, 0, m.Immediate.Len()+m.Delayed.Len())
	out = append(out, r.args[m.Immediate.Start:m.Immediate.End]...)
	out = append(out, r.args[m.Delayed.Start:m.Delayed.End]...)
	return out
}

// ArgumentsString returns f's arguments as a single string. When the result
// came from Process, whitespace inside each span is kept as typed.
func (r *Result) ArgumentsString(f *Flag) string {
	m, ok := r.matches[f]
	if !ok {
		return ""
	}
	var parts []string
	for _, s := range []Span{m.Immediate, m.Delayed} {
		if s.Len() == 0 {
			continue
		}
		parts = append(parts, r.spanString(s))
	}
	return strings.Join(parts, " ")
}

// Trailing returns the free arguments after all flags.
func (r *Result) Trailing() []string {
	return append([]string(nil), r.args[r.global:]...)
}

// TrailingString returns the free arguments, skipping the first skip of
// them, as a single string.
func (r *Result) TrailingString(skip int) string {
	start := r.global + skip
	if start >= len(r.args) {
		return ""
	}
	return r.spanString(Span{Start: start, End: len(r.args)})
}

func (r *Result) spanString(s Span) string {
	if r.line != nil {
		return r.line.ArgumentsRange(s.Start, s.End-1)
	}
	return strings.Join(r.args[s.Start:s.End], " ")
}
