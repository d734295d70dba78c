// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package updater checks for, retrieves and installs new versions of client
// components.
package updater

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var (
	// ErrNoUpdate is returned when retrieving a component without a pending
	// update.
	ErrNoUpdate = errors.New("no update available")
	// ErrNoStrategy is returned when no registered strategy can handle a
	// retrieval or installation.
	ErrNoStrategy = errors.New("no strategy can handle update")
	// ErrUnknownComponent is returned for component names that are not
	// registered.
	ErrUnknownComponent = errors.New("unknown component")
)

// Component is something that can be updated.
type Component struct {
	Name         string
	FriendlyName string
	Version      *semver.Version
	// RequiresRestart is set when an installed update only takes effect
	// after the client restarts.
	RequiresRestart bool
}

func (c *Component) String() string {
	return fmt.Sprintf("%s %s", c.Name, c.Version)
}

// Status is the state of a component in the update pipeline.
type Status int

const (
	Idle Status = iota
	Checking
	CheckingNotPermitted
	UpdatePending
	Retrieving
	InstallPending
	Installing
	Updated
	RestartPending
)

var statusNames = []string{
	"idle",
	"checking",
	"checking not permitted",
	"update pending",
	"retrieving",
	"install pending",
	"installing",
	"updated",
	"restart pending",
}

func (s Status) String() string {
	if s >= 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// StatusListener is told about status changes. Progress is a percentage for
// Retrieving and Installing and zero otherwise.
type StatusListener func(c *Component, s Status, progress float64)

// Channel selects how unstable the updates offered are.
type Channel int

const (
	// None disables update checks.
	None Channel = iota
	Stable
	Unstable
	Nightly
)

var channelNames = []string{"none", "stable", "unstable", "nightly"}

func (c Channel) String() string {
	if c >= 0 && int(c) < len(channelNames) {
		return channelNames[c]
	}
	return fmt.Sprintf("Channel(%d)", int(c))
}

// ParseChannel parses a channel name, ignoring case.
func ParseChannel(s string) (Channel, error) {
	i := slices.Index(channelNames, strings.ToLower(strings.TrimSpace(s)))
	if i < 0 {
		return None, fmt.Errorf("unknown update channel %q", s)
	}
	return Channel(i), nil
}

// Includes reports whether releases published on other are offered to
// subscribers of c. Each channel includes the more stable ones.
func (c Channel) Includes(other Channel) bool {
	return c != None && other != None && other <= c
}

// CheckResult is the outcome of checking one component.
type CheckResult struct {
	Component *Component
	Available bool
	Version   *semver.Version
	// URL locates the update payload.
	URL string
}

// RetrievalResult is a downloaded update waiting to be installed.
type RetrievalResult struct {
	Check CheckResult
	// Path is the staged payload.
	Path string
}

// CheckStrategy finds updates for components.
type CheckStrategy interface {
	CheckForUpdates(ctx context.Context, components []*Component) (map[string]CheckResult, error)
}

// RetrievalStrategy fetches an available update.
type RetrievalStrategy interface {
	CanHandle(CheckResult) bool
	Retrieve(ctx context.Context, r CheckResult, progress func(float64)) (RetrievalResult, error)
}

// InstallationStrategy installs a retrieved update.
type InstallationStrategy interface {
	CanHandle(RetrievalResult) bool
	Install(ctx context.Context, r RetrievalResult, progress func(float64)) error
}

// Policy decides which components may be checked.
type Policy interface {
	CanCheck(*Component) bool
}

// ConfigPolicy permits checks unless the channel is None or the component is
// listed in Disabled.
type ConfigPolicy struct {
	Channel  Channel
	Disabled []string
}

func (p ConfigPolicy) CanCheck(c *Component) bool {
	return p.Channel != None && !slices.Contains(p.Disabled, c.Name)
}

// Consolidator merges the results of several check strategies.
type Consolidator func(results []map[string]CheckResult) map[string]CheckResult

// HighestVersion keeps, per component, the available update with the highest
// version. Components without any available update keep an unavailable
// result.
func HighestVersion(results []map[string]CheckResult) map[string]CheckResult {
	out := make(map[string]CheckResult)
	for _, rs := range results {
		for name, r := range rs {
			cur, ok := out[name]
			switch {
			case !ok:
				out[name] = r
			case r.Available && !cur.Available:
				out[name] = r
			case r.Available && cur.Available && r.Version.GreaterThan(cur.Version):
				out[name] = r
			}
		}
	}
	return out
}
