// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package updater

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"tailscale.com/util/mak"
)

// Manager drives components through checking, retrieval and installation.
type Manager struct {
	policy       Policy
	consolidator Consolidator
	checkers     []CheckStrategy
	retrievers   []RetrievalStrategy
	installers   []InstallationStrategy

	mu         sync.Mutex
	components map[string]*Component
	status     map[string]Status
	checks     map[string]CheckResult
	retrievals map[string]RetrievalResult
	listeners  []StatusListener
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithCheckers adds check strategies.
func WithCheckers(cs ...CheckStrategy) ManagerOption {
	return func(m *Manager) { m.checkers = append(m.checkers, cs...) }
}

// WithRetrievers adds retrieval strategies. The first that can handle an
// update is used.
func WithRetrievers(rs ...RetrievalStrategy) ManagerOption {
	return func(m *Manager) { m.retrievers = append(m.retrievers, rs...) }
}

// WithInstallers adds installation strategies. The first that can handle an
// update is used.
func WithInstallers(is ...InstallationStrategy) ManagerOption {
	return func(m *Manager) { m.installers = append(m.installers, is...) }
}

// WithConsolidator replaces HighestVersion as the way results from several
// checkers are merged.
func WithConsolidator(c Consolidator) ManagerOption {
	return func(m *Manager) { m.consolidator = c }
}

// NewManager returns a manager that checks components permitted by policy.
func NewManager(policy Policy, opts ...ManagerOption) *Manager {
	m := &Manager{policy: policy, consolidator: HighestVersion}
	for _, o := range opts {
		o(m)
	}
	return m
}

// AddComponent registers c, replacing any component with the same name.
func (m *Manager) AddComponent(c *Component) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mak.Set(&m.components, c.Name, c)
	mak.Set(&m.status, c.Name, Idle)
	delete(m.checks, c.Name)
	delete(m.retrievals, c.Name)
}

// RemoveComponent forgets the named component.
func (m *Manager) RemoveComponent(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.components, name)
	delete(m.status, name)
	delete(m.checks, name)
	delete(m.retrievals, name)
}

// Components returns the registered components sorted by name.
func (m *Manager) Components() []*Component {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Component, 0, len(m.components))
	for _, c := range m.components {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b *Component) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// AddListener registers l for status changes.
func (m *Manager) AddListener(l StatusListener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

// Status returns the named component's status.
func (m *Manager) Status(name string) Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status[name]
}

// CheckResult returns the latest check result for the named component.
func (m *Manager) CheckResult(name string) (CheckResult, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.checks[name]
	return r, ok
}

func (m *Manager) setStatus(c *Component, s Status, progress float64) {
	m.mu.Lock()
	if _, ok := m.components[c.Name]; ok {
		mak.Set(&m.status, c.Name, s)
	}
	listeners := slices.Clone(m.listeners)
	m.mu.Unlock()
	for _, l := range listeners {
		l(c, s, progress)
	}
}

// CheckForUpdates asks every checker about the components the policy
// permits. Checker failures are logged and returned joined; results from the
// checkers that succeeded are still applied.
func (m *Manager) CheckForUpdates(ctx context.Context) error {
	var permitted []*Component
	for _, c := range m.Components() {
		if m.policy != nil && !m.policy.CanCheck(c) {
			m.setStatus(c, CheckingNotPermitted, 0)
			continue
		}
		m.setStatus(c, Checking, 0)
		permitted = append(permitted, c)
	}

	results := make([]map[string]CheckResult, len(m.checkers))
	errs := make([]error, len(m.checkers))
	var wg errgroup.Group
	for i, checker := range m.checkers {
		wg.Go(func() error {
			r, err := checker.CheckForUpdates(ctx, permitted)
			if err != nil {
				log.Printf("update check failed: %v", err)
				errs[i] = err
				return nil
			}
			results[i] = r
			return nil
		})
	}
	wg.Wait()

	merged := m.consolidator(results)
	for _, c := range permitted {
		r, ok := merged[c.Name]
		m.mu.Lock()
		if ok && r.Available {
			mak.Set(&m.checks, c.Name, r)
		} else {
			delete(m.checks, c.Name)
		}
		delete(m.retrievals, c.Name)
		m.mu.Unlock()
		if ok && r.Available {
			m.setStatus(c, UpdatePending, 0)
		} else {
			m.setStatus(c, Idle, 0)
		}
	}
	return errors.Join(errs...)
}

func (m *Manager) lookup(name string) (*Component, CheckResult, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.components[name]
	if !ok {
		return nil, CheckResult{}, false, fmt.Errorf("%w: %s", ErrUnknownComponent, name)
	}
	r, ok := m.checks[name]
	return c, r, ok, nil
}

// Retrieve fetches the pending update for the named component, installing it
// afterwards when install is set.
func (m *Manager) Retrieve(ctx context.Context, name string, install bool) error {
	c, check, ok, err := m.lookup(name)
	if err != nil {
		return err
	}
	if !ok || !check.Available {
		m.setStatus(c, Idle, 0)
		return fmt.Errorf("%w for %s", ErrNoUpdate, name)
	}
	var strategy RetrievalStrategy
	for _, s := range m.retrievers {
		if s.CanHandle(check) {
			strategy = s
			break
		}
	}
	if strategy == nil {
		m.setStatus(c, Idle, 0)
		return fmt.Errorf("%w: retrieving %s from %q", ErrNoStrategy, name, check.URL)
	}

	m.setStatus(c, Retrieving, 0)
	res, err := strategy.Retrieve(ctx, check, func(p float64) {
		m.setStatus(c, Retrieving, p)
	})
	if err != nil {
		m.setStatus(c, UpdatePending, 0)
		return fmt.Errorf("failed to retrieve %s: %w", name, err)
	}
	m.mu.Lock()
	mak.Set(&m.retrievals, name, res)
	m.mu.Unlock()
	m.setStatus(c, InstallPending, 0)

	if install {
		return m.Install(ctx, name)
	}
	return nil
}

// Install installs the retrieved update for the named component, retrieving
// it first if needed.
func (m *Manager) Install(ctx context.Context, name string) error {
	m.mu.Lock()
	res, ok := m.retrievals[name]
	c := m.components[name]
	m.mu.Unlock()
	if c == nil {
		return fmt.Errorf("%w: %s", ErrUnknownComponent, name)
	}
	if !ok {
		return m.Retrieve(ctx, name, true)
	}

	var strategy InstallationStrategy
	for _, s := range m.installers {
		if s.CanHandle(res) {
			strategy = s
			break
		}
	}
	if strategy == nil {
		m.setStatus(c, Idle, 0)
		return fmt.Errorf("%w: installing %s", ErrNoStrategy, name)
	}

	m.setStatus(c, Installing, 0)
	err := strategy.Install(ctx, res, func(p float64) {
		m.setStatus(c, Installing, p)
	})
	m.mu.Lock()
	delete(m.retrievals, name)
	delete(m.checks, name)
	m.mu.Unlock()
	if err != nil {
		m.setStatus(c, Idle, 0)
		return fmt.Errorf("failed to install %s: %w", name, err)
	}
	if c.RequiresRestart {
		m.setStatus(c, RestartPending, 0)
	} else {
		m.setStatus(c, Updated, 0)
	}
	return nil
}
