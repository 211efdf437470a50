/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export renders a canvas together with its computed guide lines to
// PNG, SVG and PDF. These are diagnostic overlays for inspecting snapping
// behavior, not document output.
package export

import (
	"image/color"

	"resumecanvas/internal/domain"
	"resumecanvas/internal/render"
)

// Options controls overlay rendering across the three formats.
// Zero values fall back to sane defaults.
type Options struct {
	// Zoom scales world units to output pixels (PNG only; SVG/PDF stay in
	// world units).
	Zoom float64
	// Labels draws element labels next to each box (PNG only).
	Labels bool

	Background    domain.Color
	ElementStroke domain.Stroke
	GuideStyle    render.Style
}

func (o Options) normalized() Options {
	if o.Zoom <= 0 {
		o.Zoom = 1
	}
	if o.Background.IsZero() {
		o.Background = domain.Color{R: 255, G: 255, B: 255, A: 255}
	}
	if o.ElementStroke.Width <= 0 {
		o.ElementStroke = domain.Stroke{Color: domain.Color{A: 255}, Width: 1}
	}
	if o.GuideStyle.Width <= 0 {
		o.GuideStyle = render.DefaultStyle()
	}
	return o
}

func rgba(c domain.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// drawable reports whether an element gets a box in the overlay.
func drawable(e domain.Element) bool {
	return !e.Hidden && e.Kind != domain.KindGuide && e.Kind != domain.KindPageBreak &&
		e.Rect.Width > 0 && e.Rect.Height > 0
}
