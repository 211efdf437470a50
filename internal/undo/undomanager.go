/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package undo

import (
	"sync"
	"time"
)

// Snapshot is one reversible element position, captured at drag end.
// TS is when the snapshot was captured.
type Snapshot struct {
	ElementID string
	X, Y      float64
	TS        time.Time
}

// Config controls depth caps and coalescing behavior.
type Config struct {
	// MaxTotal is a soft cap on snapshots across all elements; the oldest
	// entries are pruned when exceeded.
	MaxTotal int
	// MaxPerElement limits snapshots kept per element (0 means unlimited).
	MaxPerElement int
	// MinInterval coalesces snapshots captured within the interval for the
	// same element, replacing the previous one instead of pushing a new entry.
	MinInterval time.Duration
}

// Manager provides an in-memory undo/redo stack per element with performance
// safeguards. It is safe for concurrent use.
type Manager struct {
	cfg Config
	mu  sync.Mutex
	// per-element stacks
	undo map[string][]Snapshot
	redo map[string][]Snapshot
	// accounting
	total int
}

func NewManager(cfg Config) *Manager {
	// Set conservative defaults if not provided
	if cfg.MaxTotal <= 0 {
		cfg.MaxTotal = 4096
	}
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = 250 * time.Millisecond
	}
	return &Manager{cfg: cfg, undo: make(map[string][]Snapshot), redo: make(map[string][]Snapshot)}
}

// PushSnapshot records a snapshot for an element. If within MinInterval from
// the last snapshot of the same element, it replaces the last one. Clears the
// redo stack for that element.
func (m *Manager) PushSnapshot(s Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stack := m.undo[s.ElementID]
	if n := len(stack); n > 0 {
		last := stack[n-1]
		if s.TS.Sub(last.TS) < m.cfg.MinInterval {
			// Coalesce: replace in place
			stack[n-1] = s
			m.undo[s.ElementID] = stack
			m.redo[s.ElementID] = nil
			m.enforceCapsLocked(s.ElementID)
			return
		}
	}
	// Push new
	stack = append(stack, s)
	m.undo[s.ElementID] = stack
	m.total++
	// Any new change invalidates redo for the element
	m.redo[s.ElementID] = nil
	m.enforceCapsLocked(s.ElementID)
}

// Undo pops from the element's undo stack and pushes to redo, returning the snapshot.
func (m *Manager) Undo(elementID string) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stack := m.undo[elementID]
	if len(stack) == 0 {
		return Snapshot{}, false
	}
	s := stack[len(stack)-1]
	m.undo[elementID] = stack[:len(stack)-1]
	m.total--
	m.redo[elementID] = append(m.redo[elementID], s)
	return s, true
}

// Redo pops from redo and pushes back to undo.
func (m *Manager) Redo(elementID string) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.redo[elementID]
	if len(r) == 0 {
		return Snapshot{}, false
	}
	s := r[len(r)-1]
	m.redo[elementID] = r[:len(r)-1]
	m.undo[elementID] = append(m.undo[elementID], s)
	m.total++
	m.enforceCapsLocked(elementID)
	return s, true
}

// ClearElement drops undo/redo stacks for an element to free memory.
func (m *Manager) ClearElement(elementID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.total -= len(m.undo[elementID])
	delete(m.undo, elementID)
	delete(m.redo, elementID)
	if m.total < 0 {
		m.total = 0
	}
}

// Stats returns current sizes for diagnostics.
func (m *Manager) Stats() (elements int, totalSnapshots int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undo), m.total
}

func (m *Manager) enforceCapsLocked(elementID string) {
	// Per-element depth cap
	if m.cfg.MaxPerElement > 0 {
		stack := m.undo[elementID]
		if len(stack) > m.cfg.MaxPerElement {
			// drop the oldest extras
			toDrop := len(stack) - m.cfg.MaxPerElement
			m.total -= toDrop
			m.undo[elementID] = append([]Snapshot{}, stack[toDrop:]...)
		}
	}
	// Global cap: prune oldest across all elements
	for m.cfg.MaxTotal > 0 && m.total > m.cfg.MaxTotal {
		oldestID := ""
		oldestIdx := -1
		var oldestTS time.Time
		for id, stack := range m.undo {
			if len(stack) == 0 {
				continue
			}
			if oldestIdx == -1 || stack[0].TS.Before(oldestTS) {
				oldestID = id
				oldestIdx = 0
				oldestTS = stack[0].TS
			}
		}
		if oldestIdx == -1 {
			break
		}
		stack := m.undo[oldestID]
		m.total--
		m.undo[oldestID] = stack[1:]
		if len(m.undo[oldestID]) == 0 {
			delete(m.undo, oldestID)
		}
	}
}
