/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package render projects guide descriptors onto a pixel surface. It holds no
// state: each call clears the surface and redraws from scratch.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"resumecanvas/internal/guides"
)

// Style is the stroke applied to guide lines, in screen pixels.
type Style struct {
	Color   color.RGBA
	Width   int
	DashLen int
	GapLen  int
}

// DefaultStyle matches the editor's magenta dashed hairline.
func DefaultStyle() Style {
	return Style{Color: color.RGBA{R: 236, G: 72, B: 153, A: 255}, Width: 1, DashLen: 6, GapLen: 4}
}

func (s Style) normalized() Style {
	if s.Color.A == 0 && s.Color.R == 0 && s.Color.G == 0 && s.Color.B == 0 {
		s.Color = DefaultStyle().Color
	}
	if s.Width <= 0 {
		s.Width = 1
	}
	if s.DashLen <= 0 {
		s.DashLen = 6
	}
	if s.GapLen <= 0 {
		s.GapLen = 4
	}
	return s
}

// Guides clears dst and draws each guide as a dashed line scaled by zoom:
// vertical lines for X-axis guides at pos*zoom spanning [span1*zoom,
// span2*zoom], horizontal lines for Y-axis guides analogously. Zero guides
// leaves the surface cleared and blank.
func Guides(dst *image.RGBA, gs []guides.Guide, zoom float64, st Style) {
	draw.Draw(dst, dst.Bounds(), image.Transparent, image.Point{}, draw.Src)
	if zoom <= 0 {
		zoom = 1
	}
	st = st.normalized()
	for _, g := range gs {
		pos := int(math.Round(g.Pos * zoom))
		from := int(math.Round(math.Min(g.SpanStart, g.SpanEnd) * zoom))
		to := int(math.Round(math.Max(g.SpanStart, g.SpanEnd) * zoom))
		switch g.Axis {
		case guides.AxisX:
			dashedVLine(dst, pos, from, to, st)
		case guides.AxisY:
			dashedHLine(dst, pos, from, to, st)
		}
	}
}

func dashedVLine(img *image.RGBA, x, y0, y1 int, st Style) {
	period := st.DashLen + st.GapLen
	for y := y0; y <= y1; y++ {
		if (y-y0)%period >= st.DashLen {
			continue
		}
		for w := 0; w < st.Width; w++ {
			setPixel(img, x+w, y, st.Color)
		}
	}
}

func dashedHLine(img *image.RGBA, y, x0, x1 int, st Style) {
	period := st.DashLen + st.GapLen
	for x := x0; x <= x1; x++ {
		if (x-x0)%period >= st.DashLen {
			continue
		}
		for w := 0; w < st.Width; w++ {
			setPixel(img, x, y+w, st.Color)
		}
	}
}

func setPixel(img *image.RGBA, x, y int, c color.RGBA) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.SetRGBA(x, y, c)
	}
}
