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
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"resumecanvas/internal/domain"
	"resumecanvas/internal/guides"
	"resumecanvas/internal/render"
)

// PNG writes the canvas overlay as a PNG file: page background, element
// outlines, then the guide lines composited on top via the live renderer.
func PNG(path string, c domain.Canvas, gs []guides.Guide, opt Options) error {
	opt = opt.normalized()
	w := int(math.Ceil(c.PageWidth * opt.Zoom))
	h := int(math.Ceil(c.PageHeight * opt.Zoom))
	if w <= 0 || h <= 0 {
		return fmt.Errorf("canvas page size %gx%g is not renderable", c.PageWidth, c.PageHeight)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(rgba(opt.Background)), image.Point{}, draw.Src)

	stroke := rgba(opt.ElementStroke.Color)
	sw := int(opt.ElementStroke.Width)
	if sw <= 0 {
		sw = 1
	}
	for _, e := range c.Elements {
		if !drawable(e) {
			continue
		}
		x0 := int(math.Round(e.Rect.X * opt.Zoom))
		y0 := int(math.Round(e.Rect.Y * opt.Zoom))
		x1 := int(math.Round((e.Rect.X + e.Rect.Width) * opt.Zoom))
		y1 := int(math.Round((e.Rect.Y + e.Rect.Height) * opt.Zoom))
		for s := 0; s < sw; s++ {
			outlineRect(img, x0+s, y0+s, x1-s, y1-s, stroke)
		}
		if opt.Labels {
			label := e.Label
			if label == "" {
				label = e.ID
			}
			drawLabel(img, x0+2, y0-3, label, stroke)
		}
	}

	// Guides are rendered onto their own layer (the renderer clears its
	// surface) and composited over the page.
	overlay := image.NewRGBA(img.Bounds())
	render.Guides(overlay, gs, opt.Zoom, opt.GuideStyle)
	draw.Draw(img, img.Bounds(), overlay, image.Point{}, draw.Over)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	defer func() { _ = f.Close() }()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func outlineRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	for x := x0; x <= x1; x++ {
		setPx(img, x, y0, col)
		setPx(img, x, y1, col)
	}
	for y := y0; y <= y1; y++ {
		setPx(img, x0, y, col)
		setPx(img, x1, y, col)
	}
}

func setPx(img *image.RGBA, x, y int, col color.RGBA) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.SetRGBA(x, y, col)
	}
}

// drawLabel renders small 7x13 text above an element box.
func drawLabel(img *image.RGBA, x, y int, text string, col color.RGBA) {
	if text == "" {
		return
	}
	if y < basicfont.Face7x13.Ascent {
		y = basicfont.Face7x13.Ascent
	}
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
