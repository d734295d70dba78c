// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package flags

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid is wrapped by every error returned from Parse. Callers that
// only need to know that the command line was rejected can use errors.Is.
var ErrInvalid = errors.New("invalid command flags")

// DisabledError is returned when a flag is used after a flag that disables
// it.
type DisabledError struct {
	Flag *Flag
	By   *Flag
}

func (e *DisabledError) Error() string {
	return fmt.Sprintf("Cannot use flag %s in conjunction with %s", e.Flag, e.By)
}

func (e *DisabledError) Unwrap() error { return ErrInvalid }

// PrerequisiteError is returned when a flag is used before any of the flags
// that enable it.
type PrerequisiteError struct {
	Flag     *Flag
	Enablers []*Flag
}

func (e *PrerequisiteError) Error() string {
	return fmt.Sprintf("Cannot use flag %s without %s", e.Flag, describeEnablers(e.Enablers))
}

func (e *PrerequisiteError) Unwrap() error { return ErrInvalid }

// ArgumentsError is returned when a flag is not followed by enough
// arguments.
type ArgumentsError struct {
	Flag *Flag
	Want int
}

func (e *ArgumentsError) Error() string {
	plural := "s"
	if e.Want == 1 {
		plural = ""
	}
	return fmt.Sprintf("Flag %s expects %d argument%s", e.Flag, e.Want, plural)
}

func (e *ArgumentsError) Unwrap() error { return ErrInvalid }

func describeEnablers(enablers []*Flag) string {
	if len(enablers) == 1 {
		return enablers[0].String()
	}
	names := make([]string, len(enablers))
	for i, f := range enablers {
		names[i] = f.String()
	}
	return "one of " + strings.Join(names, ", ")
}
