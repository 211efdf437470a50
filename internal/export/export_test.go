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
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"resumecanvas/internal/domain"
	"resumecanvas/internal/guides"
)

func overlayCanvas() domain.Canvas {
	return domain.Canvas{
		PageWidth:  200,
		PageHeight: 100,
		Elements: []domain.Element{
			{ID: "box", Kind: domain.KindShape, Rect: domain.Rect{X: 20, Y: 20, Width: 40, Height: 30}},
			{ID: "ruler", Kind: domain.KindGuide, Rect: domain.Rect{X: 0, Y: 0, Width: 200, Height: 1}},
			{ID: "gone", Kind: domain.KindShape, Hidden: true, Rect: domain.Rect{X: 1, Y: 1, Width: 5, Height: 5}},
		},
	}
}

func overlayGuides() []guides.Guide {
	return []guides.Guide{
		{Axis: guides.AxisX, Pos: 20, SpanStart: 0, SpanEnd: 100, ActiveAnchor: guides.AnchorLeft, TargetAnchor: guides.AnchorLeft},
		{Axis: guides.AxisY, Pos: 50, SpanStart: 20, SpanEnd: 60},
	}
}

func TestPNGOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overlay.png")
	if err := PNG(path, overlayCanvas(), overlayGuides(), Options{Zoom: 1}); err != nil {
		t.Fatalf("png: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 200 || b.Dy() != 100 {
		t.Fatalf("expected 200x100, got %dx%d", b.Dx(), b.Dy())
	}
	// Background is white away from any geometry.
	if r, g, bl, _ := img.At(150, 90).RGBA(); r>>8 != 255 || g>>8 != 255 || bl>>8 != 255 {
		t.Fatalf("expected white background at (150,90)")
	}
	// First dash of the vertical guide sits at x=20, y=0.
	r, g, bl, _ := img.At(20, 0).RGBA()
	if r>>8 != 236 || g>>8 != 72 || bl>>8 != 153 {
		t.Fatalf("expected guide color at (20,0), got %d,%d,%d", r>>8, g>>8, bl>>8)
	}
}

func TestPNGScalesWithZoom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overlay2x.png")
	if err := PNG(path, overlayCanvas(), nil, Options{Zoom: 2}); err != nil {
		t.Fatalf("png: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 400 || img.Bounds().Dy() != 200 {
		t.Fatalf("expected 400x200 at zoom 2, got %v", img.Bounds())
	}
}

func TestPNGRejectsDegeneratePage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	if err := PNG(path, domain.Canvas{}, nil, Options{}); err == nil {
		t.Fatal("expected error for zero page size")
	}
}

func TestSVGOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overlay.svg")
	if err := SVG(path, overlayCanvas(), overlayGuides(), Options{}); err != nil {
		t.Fatalf("svg: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	s := string(data)
	for _, want := range []string{
		`viewBox="0 0 200 100"`,
		`<rect x="20" y="20" width="40" height="30"`,
		`stroke-dasharray="6 4"`,
		`<line x1="20" y1="0" x2="20" y2="100"`,
	} {
		if !strings.Contains(s, want) {
			t.Fatalf("svg missing %q:\n%s", want, s)
		}
	}
	// Hidden and structural elements never get boxes.
	if strings.Contains(s, `width="5"`) || strings.Contains(s, `height="1"`) {
		t.Fatalf("structural/hidden elements leaked into svg:\n%s", s)
	}
}

func TestPDFOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overlay.pdf")
	if err := PDF(path, overlayCanvas(), overlayGuides(), Options{}); err != nil {
		t.Fatalf("pdf: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output is not a pdf: %q", data[:8])
	}
	if len(data) < 500 {
		t.Fatalf("pdf suspiciously small: %d bytes", len(data))
	}
}
