/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package guides implements the canvas alignment-guide and snapping engine.
// It is invoked once per pointer-drag frame by the host editor: given the
// dragged element's geometry at its proposed (uncorrected) position, the
// current zoom and the other elements on the canvas, it computes per-axis
// alignment matches against page and sibling anchors, applies the best match
// (or a grid fallback) as a positional correction, and emits guide lines for
// rendering. The engine is UI-agnostic, pure and deterministic; the only
// cross-frame state is the hysteresis key pair threaded by the caller.
package guides

// ElementData is a per-frame snapshot of one element's alignment-relevant
// geometry in world units. The host rebuilds these from the live document on
// every frame; the engine keeps no copy.
type ElementData struct {
	ID string
	// Position and size in document/world coordinates (not screen pixels).
	X, Y, W, H float64
	Hidden     bool
	// IsGuide marks elements that are themselves rendered guide lines; they
	// never participate as match targets.
	IsGuide bool
	// IsPageBreak marks structural page-break markers.
	IsPageBreak bool
	// IsText biases match scoring toward paragraph-start alignment.
	IsText bool
}

// Eligible reports whether an element participates as a match target.
func (e ElementData) Eligible() bool {
	return e.W > 0 && e.H > 0 && !e.Hidden && !e.IsGuide && !e.IsPageBreak
}

// SpatialIndex holds the current frame's eligible candidate set. It is a thin
// filter rather than a spatial acceleration structure: the expected scale is
// tens of elements, not thousands.
type SpatialIndex struct {
	elems []ElementData
}

// NewSpatialIndex returns an empty index.
func NewSpatialIndex() *SpatialIndex { return &SpatialIndex{} }

// Build replaces the index contents with the eligible subset of elements,
// preserving input order. Previous contents are discarded.
func (s *SpatialIndex) Build(elements []ElementData) {
	s.elems = s.elems[:0]
	for _, e := range elements {
		if e.Eligible() {
			s.elems = append(s.elems, e)
		}
	}
}

// All returns the eligible elements in input order. The returned slice is the
// index's backing storage; callers must not mutate it.
func (s *SpatialIndex) All() []ElementData {
	if s == nil {
		return nil
	}
	return s.elems
}

// Len reports the number of eligible elements.
func (s *SpatialIndex) Len() int {
	if s == nil {
		return 0
	}
	return len(s.elems)
}
