/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"image"
	"image/color"
	"testing"

	"resumecanvas/internal/guides"
)

func TestGuidesClearsSurface(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 50, 50))
	img.SetRGBA(10, 10, color.RGBA{R: 255, A: 255})
	Guides(img, nil, 1, DefaultStyle())
	if got := img.RGBAAt(10, 10); got.A != 0 {
		t.Fatalf("surface must be cleared, pixel still %+v", got)
	}
}

func TestGuidesDrawsDashedVertical(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	st := Style{Color: color.RGBA{R: 255, A: 255}, Width: 1, DashLen: 4, GapLen: 2}
	g := guides.Guide{Axis: guides.AxisX, Pos: 20, SpanStart: 0, SpanEnd: 60}
	Guides(img, []guides.Guide{g}, 1, st)

	// Dash period is 6px: pixels 0..3 on, 4..5 off.
	if got := img.RGBAAt(20, 0); got != st.Color {
		t.Fatalf("expected dash pixel at (20,0), got %+v", got)
	}
	if got := img.RGBAAt(20, 4); got.A != 0 {
		t.Fatalf("expected gap pixel at (20,4), got %+v", got)
	}
	if got := img.RGBAAt(20, 6); got != st.Color {
		t.Fatalf("expected next dash at (20,6), got %+v", got)
	}
	// Nothing off the line.
	if got := img.RGBAAt(21, 0); got.A != 0 {
		t.Fatalf("stray pixel at (21,0): %+v", got)
	}
	// Nothing beyond the span.
	if got := img.RGBAAt(20, 61); got.A != 0 {
		t.Fatalf("pixel beyond span at (20,61): %+v", got)
	}
}

func TestGuidesScalesByZoom(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 200))
	st := Style{Color: color.RGBA{B: 255, A: 255}, Width: 1, DashLen: 100, GapLen: 1}
	g := guides.Guide{Axis: guides.AxisY, Pos: 30, SpanStart: 10, SpanEnd: 50}
	Guides(img, []guides.Guide{g}, 2, st)

	if got := img.RGBAAt(20, 60); got != st.Color {
		t.Fatalf("expected horizontal guide at y=60 (30*2), got %+v", got)
	}
	if got := img.RGBAAt(18, 60); got.A != 0 {
		t.Fatalf("span start must scale to 20, found pixel at x=18: %+v", got)
	}
}

func TestGuidesClipsToBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	g := guides.Guide{Axis: guides.AxisX, Pos: 5, SpanStart: -100, SpanEnd: 100}
	// Must not panic on out-of-bounds spans.
	Guides(img, []guides.Guide{g}, 1, DefaultStyle())
}
