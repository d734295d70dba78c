// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"github.com/dmdirc/dmflags/pkg/config"
	"github.com/dmdirc/dmflags/pkg/window"
)

// Builtins returns a registry holding the echo, set and help commands.
func Builtins(windows *window.Manager, ids *config.Identities) (*Registry, error) {
	r, err := NewRegistry(NewEcho(windows), NewSet(ids))
	if err != nil {
		return nil, err
	}
	if err := r.Register(NewHelp(r)); err != nil {
		return nil, err
	}
	return r, nil
}
