// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package window

import (
	"fmt"
	"sync"
)

// Manager tracks open windows and their parent/child relationships.
type Manager struct {
	mu       sync.Mutex
	roots    []*Window
	parents  map[*Window]*Window
	children map[*Window][]*Window
}

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{
		parents:  make(map[*Window]*Window),
		children: make(map[*Window][]*Window),
	}
}

// Add registers w under parent. A nil parent makes w a root window.
func (m *Manager) Add(parent, w *Window) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.known(w) {
		return fmt.Errorf("window %q already added", w.Name())
	}
	if parent == nil {
		m.roots = append(m.roots, w)
		return nil
	}
	if !m.known(parent) {
		return fmt.Errorf("parent window %q not found", parent.Name())
	}
	m.parents[w] = parent
	m.children[parent] = append(m.children[parent], w)
	return nil
}

func (m *Manager) known(w *Window) bool {
	if _, ok := m.parents[w]; ok {
		return true
	}
	for _, r := range m.roots {
		if r == w {
			return true
		}
	}
	return false
}

// Roots returns the windows without a parent.
func (m *Manager) Roots() []*Window {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*Window(nil), m.roots...)
}

// Children returns the direct children of w.
func (m *Manager) Children(w *Window) []*Window {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*Window(nil), m.children[w]...)
}

// Parent returns the parent of w, if it has one.
func (m *Manager) Parent(w *Window) (*Window, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.parents[w]
	return p, ok
}

// Find looks for a window called name among the children of origin, then
// among the children of each of origin's ancestors, and finally among the
// root windows.
func (m *Manager) Find(origin *Window, name string) (*Window, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for w := origin; w != nil; w = m.parents[w] {
		if found := byName(m.children[w], name); found != nil {
			return found, true
		}
	}
	if found := byName(m.roots, name); found != nil {
		return found, true
	}
	return nil, false
}

func byName(ws []*Window, name string) *Window {
	for _, w := range ws {
		if w.Name() == name {
			return w
		}
	}
	return nil
}
