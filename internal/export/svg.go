/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"resumecanvas/internal/domain"
	"resumecanvas/internal/guides"
)

// SVG writes the canvas overlay as an SVG document in world units. Guides are
// dashed lines; elements are outlined rects.
func SVG(path string, c domain.Canvas, gs []guides.Guide, opt Options) error {
	opt = opt.normalized()
	if c.PageWidth <= 0 || c.PageHeight <= 0 {
		return fmt.Errorf("canvas page size %gx%g is not renderable", c.PageWidth, c.PageHeight)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<?xml version="1.0" encoding="UTF-8"?>`+"\n")
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		num(c.PageWidth), num(c.PageHeight), num(c.PageWidth), num(c.PageHeight))

	bg := opt.Background
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%s" height="%s" fill="#%02x%02x%02x"/>`+"\n",
		num(c.PageWidth), num(c.PageHeight), bg.R, bg.G, bg.B)

	es := opt.ElementStroke
	for _, e := range c.Elements {
		if !drawable(e) {
			continue
		}
		fmt.Fprintf(&buf, `  <rect x="%s" y="%s" width="%s" height="%s" fill="none" stroke="#%02x%02x%02x" stroke-width="%s"/>`+"\n",
			num(e.Rect.X), num(e.Rect.Y), num(e.Rect.Width), num(e.Rect.Height),
			es.Color.R, es.Color.G, es.Color.B, num(es.Width))
	}

	gst := opt.GuideStyle
	for _, g := range gs {
		var x1, y1, x2, y2 float64
		switch g.Axis {
		case guides.AxisX:
			x1, x2 = g.Pos, g.Pos
			y1 = math.Min(g.SpanStart, g.SpanEnd)
			y2 = math.Max(g.SpanStart, g.SpanEnd)
		case guides.AxisY:
			y1, y2 = g.Pos, g.Pos
			x1 = math.Min(g.SpanStart, g.SpanEnd)
			x2 = math.Max(g.SpanStart, g.SpanEnd)
		default:
			continue
		}
		fmt.Fprintf(&buf, `  <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#%02x%02x%02x" stroke-width="%d" stroke-dasharray="%d %d"/>`+"\n",
			num(x1), num(y1), num(x2), num(y2),
			gst.Color.R, gst.Color.G, gst.Color.B, gst.Width, gst.DashLen, gst.GapLen)
	}

	buf.WriteString("</svg>\n")

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure output dir: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

// num formats a coordinate without trailing zeros.
func num(v float64) string {
	return fmt.Sprintf("%g", v)
}
