/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package session

import "resumecanvas/internal/domain"

// SampleCanvas returns a small resume-like canvas used by the demo command
// and as the editor's fallback document.
func SampleCanvas() domain.Canvas {
	return domain.Canvas{
		PageWidth:  794,
		PageHeight: 1123,
		Elements: []domain.Element{
			{ID: "name", Kind: domain.KindText, Rect: domain.Rect{X: 60, Y: 50, Width: 300, Height: 36}, Label: "Name"},
			{ID: "title", Kind: domain.KindText, Rect: domain.Rect{X: 60, Y: 96, Width: 240, Height: 20}, Label: "Title"},
			{ID: "photo", Kind: domain.KindImage, Rect: domain.Rect{X: 610, Y: 50, Width: 124, Height: 124}, Label: "Photo"},
			{ID: "summary", Kind: domain.KindText, Rect: domain.Rect{X: 60, Y: 160, Width: 674, Height: 80}, Label: "Summary"},
			{ID: "divider", Kind: domain.KindShape, Rect: domain.Rect{X: 60, Y: 260, Width: 674, Height: 2}, Label: "Divider"},
			{ID: "experience", Kind: domain.KindText, Rect: domain.Rect{X: 60, Y: 290, Width: 440, Height: 300}, Label: "Experience"},
			{ID: "skills", Kind: domain.KindText, Rect: domain.Rect{X: 530, Y: 290, Width: 204, Height: 300}, Label: "Skills"},
		},
	}
}

// SampleTrace returns a synthetic drag of the photo element that exercises
// sibling snapping, hysteresis hold and a free segment.
func SampleTrace() Trace {
	return Trace{
		ActiveID: "photo",
		Zoom:     1,
		Frames: []Point{
			{X: 600, Y: 50}, {X: 570, Y: 52}, {X: 540, Y: 54},
			{X: 534, Y: 56}, {X: 532, Y: 58}, {X: 531, Y: 60},
			{X: 536, Y: 60}, {X: 540, Y: 60},
			{X: 400, Y: 100}, {X: 300, Y: 140},
			{X: 65, Y: 160}, {X: 62, Y: 158}, {X: 60, Y: 156},
		},
	}
}
