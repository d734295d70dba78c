// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flags

import (
	"slices"
	"strings"

	"github.com/dmdirc/dmflags/pkg/cmdargs"
	"tailscale.com/util/set"
)

// Source receives messages about a rejected command line.
type Source interface {
	ShowError(msg string)
	ShowUsage(msg string)
}

// Handler parses command lines against a fixed set of flags. It holds no
// per-parse state and is safe for concurrent use.
type Handler struct {
	flags    []*Flag
	byName   map[string]*Flag
	enablers map[*Flag][]*Flag
}

// Flags returns the handler's flags in registration order.
func (h *Handler) Flags() []*Flag {
	return append([]*Flag(nil), h.flags...)
}

// Lookup returns the flag with the given name, without the "--" prefix.
func (h *Handler) Lookup(name string) (*Flag, bool) {
	f, ok := h.byName[name]
	return f, ok
}

// Enablers returns the flags that enable f, in registration order.
func (h *Handler) Enablers(f *Flag) []*Flag {
	return append([]*Flag(nil), h.enablers[f]...)
}

// Process parses the arguments of a typed command. Errors are not shown to
// src when the command was silenced.
func (h *Handler) Process(src Source, args *cmdargs.Arguments) (*Result, error) {
	if args.IsSilent() {
		src = nil
	}
	res, err := h.Parse(src, args.Arguments())
	if err != nil {
		return nil, err
	}
	res.line = args
	return res, nil
}

// Parse reads the leading flags of args, which must not include the command
// name. Scanning stops at the first token that is not a registered flag;
// that token and everything after it are trailing arguments. Any rejected
// flag aborts the whole parse: the error is shown to src, if non-nil, and
// returned with a nil Result.
func (h *Handler) Parse(src Source, args []string) (*Result, error) {
	res, err := h.parse(args)
	if err != nil {
		if src != nil {
			src.ShowError(err.Error())
		}
		return nil, err
	}
	return res, nil
}

type parseState struct {
	seen       set.Set[*Flag]
	disabledBy map[*Flag]*Flag
}

func (h *Handler) parse(args []string) (*Result, error) {
	st := parseState{
		seen:       make(set.Set[*Flag]),
		disabledBy: make(map[*Flag]*Flag),
	}
	res := &Result{args: args, matches: make(map[*Flag]Match)}

	var delayed []*Flag
	offset := 0
	for offset < len(args) {
		f, ok := h.flagFor(args[offset])
		if !ok {
			break
		}
		if err := h.check(&st, f); err != nil {
			return nil, err
		}
		end, err := h.readImmediate(f, args, offset+1)
		if err != nil {
			return nil, err
		}
		res.record(Match{Flag: f, Immediate: Span{Start: offset + 1, End: end}})
		st.apply(f)
		if f.delayed > 0 && !slices.Contains(delayed, f) {
			delayed = append(delayed, f)
		}
		offset = end
	}
	res.scanned = offset

	for _, f := range delayed {
		end := offset + f.delayed
		if end > len(args) {
			return nil, &ArgumentsError{Flag: f, Want: f.delayed}
		}
		m := res.matches[f]
		m.Delayed = Span{Start: offset, End: end}
		res.matches[f] = m
		offset = end
	}
	res.global = offset
	return res, nil
}

// flagFor returns the registered flag named by tok, if tok is a flag token.
func (h *Handler) flagFor(tok string) (*Flag, bool) {
	name, ok := strings.CutPrefix(tok, Prefix)
	if !ok {
		return nil, false
	}
	f, ok := h.byName[name]
	return f, ok
}

// check runs the disabled check before the prerequisite check.
func (h *Handler) check(st *parseState, f *Flag) error {
	if by, ok := st.disabledBy[f]; ok {
		return &DisabledError{Flag: f, By: by}
	}
	enablers := h.enablers[f]
	if len(enablers) == 0 {
		return nil
	}
	for _, e := range enablers {
		if st.seen.Contains(e) {
			return nil
		}
	}
	return &PrerequisiteError{Flag: f, Enablers: append([]*Flag(nil), enablers...)}
}

func (h *Handler) readImmediate(f *Flag, args []string, start int) (int, error) {
	end := start
	for ; end < start+f.minArgs; end++ {
		if end >= len(args) {
			return 0, &ArgumentsError{Flag: f, Want: f.minArgs}
		}
		if _, isFlag := h.flagFor(args[end]); isFlag {
			return 0, &ArgumentsError{Flag: f, Want: f.minArgs}
		}
	}
	for end < start+f.maxArgs && end < len(args) {
		if _, isFlag := h.flagFor(args[end]); isFlag {
			break
		}
		end++
	}
	return end, nil
}

func (st *parseState) apply(f *Flag) {
	st.seen.Add(f)
	for _, d := range f.disables {
		if _, ok := st.disabledBy[d]; !ok {
			st.disabledBy[d] = f
		}
	}
}
