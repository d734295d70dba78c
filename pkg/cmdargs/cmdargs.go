// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmdargs splits a typed line into a command name and arguments,
// keeping enough position information to hand back argument ranges with
// their original spacing.
package cmdargs

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Chars holds the characters that mark a line as a command.
type Chars struct {
	// Command starts a command, as in "/echo".
	Command rune
	// Silence directly after Command suppresses the command's output, as
	// in "/.echo".
	Silence rune
}

// DefaultChars are the command characters used when none are configured.
var DefaultChars = Chars{Command: '/', Silence: '.'}

// Arguments is a single typed line.
type Arguments struct {
	chars Chars
	line  string
	words []string
	// bounds[i] holds the byte offsets of words[i] within line.
	bounds [][2]int
}

// New parses line.
func New(chars Chars, line string) *Arguments {
	a := &Arguments{chars: chars, line: line}
	a.split()
	return a
}

// FromWords builds Arguments from already split words, joined by single
// spaces.
func FromWords(chars Chars, words []string) *Arguments {
	return New(chars, strings.Join(words, " "))
}

func (a *Arguments) split() {
	start := -1
	for i, r := range a.line {
		if unicode.IsSpace(r) {
			if start >= 0 {
				a.words = append(a.words, a.line[start:i])
				a.bounds = append(a.bounds, [2]int{start, i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		a.words = append(a.words, a.line[start:])
		a.bounds = append(a.bounds, [2]int{start, len(a.line)})
	}
}

// Line returns the line as typed.
func (a *Arguments) Line() string { return a.line }

// Chars returns the command characters the line was parsed with.
func (a *Arguments) Chars() Chars { return a.chars }

// Words returns the whitespace separated words of the line, including the
// command name.
func (a *Arguments) Words() []string {
	return append([]string(nil), a.words...)
}

// Arguments returns the words after the command name.
func (a *Arguments) Arguments() []string {
	if len(a.words) == 0 {
		return []string{}
	}
	return append([]string{}, a.words[1:]...)
}

// IsCommand reports whether the line starts with the command character.
func (a *Arguments) IsCommand() bool {
	r, _ := utf8.DecodeRuneInString(a.line)
	return a.line != "" && r == a.chars.Command
}

// IsSilent reports whether the line is a silenced command.
func (a *Arguments) IsSilent() bool {
	if !a.IsCommand() {
		return false
	}
	_, n := utf8.DecodeRuneInString(a.line)
	r, _ := utf8.DecodeRuneInString(a.line[n:])
	return len(a.line) > n && r == a.chars.Silence
}

func (a *Arguments) prefixLen() int {
	if !a.IsCommand() {
		return 0
	}
	n := utf8.RuneLen(a.chars.Command)
	if a.IsSilent() {
		n += utf8.RuneLen(a.chars.Silence)
	}
	return n
}

// StrippedLine returns the line without its command characters.
func (a *Arguments) StrippedLine() string {
	return a.line[a.prefixLen():]
}

// CommandName returns the first word without command characters.
func (a *Arguments) CommandName() string {
	if len(a.words) == 0 {
		return ""
	}
	n := a.prefixLen()
	if n > len(a.words[0]) {
		return ""
	}
	return a.words[0][n:]
}

// ArgumentsString returns the arguments from index start onwards with
// their original spacing.
func (a *Arguments) ArgumentsString(start int) string {
	return a.ArgumentsRange(start, len(a.words)-2)
}

// ArgumentsRange returns arguments start through end, inclusive, with their
// original spacing.
func (a *Arguments) ArgumentsRange(start, end int) string {
	return a.WordsRange(start+1, end+1)
}

// WordsString returns the words from index start onwards with their
// original spacing.
func (a *Arguments) WordsString(start int) string {
	return a.WordsRange(start, len(a.words)-1)
}

// WordsRange returns words start through end, inclusive, with their
// original spacing. Out of range requests return "".
func (a *Arguments) WordsRange(start, end int) string {
	if start < 0 || start >= len(a.words) || end < start {
		return ""
	}
	end = min(end, len(a.words)-1)
	return a.line[a.bounds[start][0]:a.bounds[end][1]]
}
