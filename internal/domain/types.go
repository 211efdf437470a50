/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany..
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// This file defines the host-side canvas model the editor hands to the
// alignment engine. It is deliberately shallow: the engine only ever sees a
// flat per-frame snapshot, never this tree.

import "resumecanvas/internal/guides"

// Element kinds. Guides and page breaks are structural: they render but never
// participate as alignment targets.
const (
	KindText      = "text"
	KindShape     = "shape"
	KindImage     = "image"
	KindGuide     = "guide"
	KindPageBreak = "pageBreak"
)

// Canvas is one editable resume canvas: a page size plus a flat element list.
type Canvas struct {
	PageWidth  float64   `json:"pageWidth"`
	PageHeight float64   `json:"pageHeight"`
	Elements   []Element `json:"elements"`
}

// Element is one positioned object on the canvas, in world units.
type Element struct {
	ID     string `json:"id"`
	Kind   string `json:"kind"` // text, shape, image, guide, pageBreak
	Rect   Rect   `json:"rect"`
	Z      int    `json:"z,omitempty"`
	Hidden bool   `json:"hidden,omitempty"`
	Label  string `json:"label,omitempty"`
}

// AlignmentSnapshot flattens the canvas into the engine's per-frame element
// list. Normalization happens here, at the host boundary: structural elements
// are carried through as flags and filtered by the engine's eligibility
// invariant.
func (c Canvas) AlignmentSnapshot() []guides.ElementData {
	out := make([]guides.ElementData, 0, len(c.Elements))
	for _, e := range c.Elements {
		out = append(out, e.AlignmentData())
	}
	return out
}

// AlignmentData converts one element to its engine snapshot.
func (e Element) AlignmentData() guides.ElementData {
	return guides.ElementData{
		ID:          e.ID,
		X:           e.Rect.X,
		Y:           e.Rect.Y,
		W:           e.Rect.Width,
		H:           e.Rect.Height,
		Hidden:      e.Hidden,
		IsGuide:     e.Kind == KindGuide,
		IsPageBreak: e.Kind == KindPageBreak,
		IsText:      e.Kind == KindText,
	}
}

// FindElement returns a pointer to the element with the given id, or nil.
func (c *Canvas) FindElement(id string) *Element {
	for i := range c.Elements {
		if c.Elements[i].ID == id {
			return &c.Elements[i]
		}
	}
	return nil
}

// Geometry and styling primitives shared by the renderer and exporters.

type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// IsZero reports whether the color is the zero value (treated as "unset").
func (c Color) IsZero() bool { return c.R == 0 && c.G == 0 && c.B == 0 && c.A == 0 }

type Stroke struct {
	Color Color   `json:"color"`
	Width float64 `json:"width"`
}
