// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package flags parses shell-like "--name" flags at the start of a chat
// command's arguments.
//
// A command declares its flags once on a Builder, including which flags
// enable or disable others, and builds a Handler:
//
//	b := flags.NewBuilder()
//	server := b.Switch("server")
//	channel := b.Switch("channel")
//	unset := b.Add(flags.Spec{Name: "unset", DelayedArgs: 2})
//	b.Exclusive(server, channel)
//	h := b.MustBuild()
//
// Handler.Parse then walks the leading tokens of a command line:
//   - a token without the "--" prefix, or naming a flag the handler does
//     not know, ends the scan; it and everything after it are trailing
//     arguments
//   - a flag used after a flag that disables it is rejected
//   - a flag that has enablers is rejected unless one of them came first
//   - MinArgs immediate arguments must follow the flag and may not be flag
//     tokens; up to MaxArgs are taken while available
//   - DelayedArgs are taken from the trailing arguments, in flag order,
//     once scanning is done
//
// Parsing is all or nothing: a rejected command line returns a nil Result
// and an error wrapping ErrInvalid.
package flags
