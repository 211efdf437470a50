/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"resumecanvas/internal/domain"
	"resumecanvas/internal/guides"
)

// PDF writes the canvas overlay as a single-page PDF. World units map 1:1 to
// PDF points, which keeps coordinates comparable across exporters.
func PDF(path string, c domain.Canvas, gs []guides.Guide, opt Options) error {
	opt = opt.normalized()
	if c.PageWidth <= 0 || c.PageHeight <= 0 {
		return fmt.Errorf("canvas page size %gx%g is not renderable", c.PageWidth, c.PageHeight)
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: c.PageWidth, Ht: c.PageHeight},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	bg := opt.Background
	pdf.SetFillColor(int(bg.R), int(bg.G), int(bg.B))
	pdf.Rect(0, 0, c.PageWidth, c.PageHeight, "F")

	es := opt.ElementStroke
	pdf.SetDrawColor(int(es.Color.R), int(es.Color.G), int(es.Color.B))
	pdf.SetLineWidth(es.Width)
	for _, e := range c.Elements {
		if !drawable(e) {
			continue
		}
		pdf.Rect(e.Rect.X, e.Rect.Y, e.Rect.Width, e.Rect.Height, "D")
	}

	gst := opt.GuideStyle
	pdf.SetDrawColor(int(gst.Color.R), int(gst.Color.G), int(gst.Color.B))
	pdf.SetLineWidth(float64(gst.Width))
	pdf.SetDashPattern([]float64{float64(gst.DashLen), float64(gst.GapLen)}, 0)
	for _, g := range gs {
		from := math.Min(g.SpanStart, g.SpanEnd)
		to := math.Max(g.SpanStart, g.SpanEnd)
		switch g.Axis {
		case guides.AxisX:
			pdf.Line(g.Pos, from, g.Pos, to)
		case guides.AxisY:
			pdf.Line(from, g.Pos, to, g.Pos)
		}
	}
	pdf.SetDashPattern([]float64{}, 0)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("build pdf: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure output dir: %w", err)
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
