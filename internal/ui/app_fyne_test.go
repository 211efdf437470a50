//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// These tests validate the editor's drag loop without a window or display.
// They are gated behind the "fyne" build tag so CI (which is headless) does
// not need Fyne or a display. To run locally:
//
//	go test -tags fyne ./internal/ui
package ui

import (
	"testing"
	"time"

	"resumecanvas/internal/config"
	"resumecanvas/internal/domain"
	"resumecanvas/internal/guides"
	"resumecanvas/internal/undo"
)

func dragTestEditor() *editor {
	doc := domain.Canvas{
		PageWidth:  400,
		PageHeight: 600,
		Elements: []domain.Element{
			{ID: "hdr", Kind: domain.KindShape, Rect: domain.Rect{X: 100, Y: 50, Width: 40, Height: 10}},
			{ID: "sib", Kind: domain.KindShape, Rect: domain.Rect{X: 100, Y: 0, Width: 60, Height: 10}},
		},
	}
	return newEditor(&doc, config.Defaults(), nil)
}

func TestDragFrameSnapsToSibling(t *testing.T) {
	ed := dragTestEditor()
	ed.beginDrag("hdr")
	res, ok := ed.dragFrame("hdr", 3, 0) // proposed x=103, within threshold of sib's left
	if !ok {
		t.Fatal("drag frame rejected")
	}
	if res.CorrectedX != 100 || res.SnapX == nil {
		t.Fatalf("expected snap back to 100, got %+v", res)
	}
	if el := ed.doc.FindElement("hdr"); el.Rect.X != 100 {
		t.Fatalf("document not updated, x=%g", el.Rect.X)
	}
	// Snap memory is threaded for the next frame.
	if ed.lastX == nil || ed.lastX.Key != "left->sib:left" {
		t.Fatalf("snap memory not threaded: %+v", ed.lastX)
	}
}

func TestEndDragClearsMemoryAndRecordsUndo(t *testing.T) {
	ed := dragTestEditor()
	ed.beginDrag("hdr")
	if _, ok := ed.dragFrame("hdr", 3, 0); !ok {
		t.Fatal("drag frame rejected")
	}
	ed.endDrag("hdr")
	if ed.dragging || ed.lastX != nil || ed.lastY != nil {
		t.Fatalf("drag state not cleared: dragging=%v lastX=%v lastY=%v", ed.dragging, ed.lastX, ed.lastY)
	}
	if _, total := ed.undoMgr.Stats(); total != 1 {
		t.Fatalf("expected one undo snapshot, got %d", total)
	}
}

func TestRefreshGuidesTogglesLines(t *testing.T) {
	ed := dragTestEditor()
	ed.beginDrag("hdr")
	res, _ := ed.dragFrame("hdr", 3, 0)
	ed.refreshGuides(res)
	if !ed.vLine.Visible() {
		t.Fatal("vertical guide line must be visible while snapped")
	}
	ed.endDrag("hdr")
	ed.refreshGuides(guides.Result{})
	if ed.vLine.Visible() || ed.hLine.Visible() {
		t.Fatal("guide lines must hide after drag end")
	}
}

func TestUndoLastRestoresPosition(t *testing.T) {
	ed := dragTestEditor()
	// No coalescing: the test's drag ends are nanoseconds apart.
	ed.undoMgr = undo.NewManager(undo.Config{MinInterval: time.Nanosecond})
	// First move establishes a baseline position.
	ed.beginDrag("hdr")
	ed.dragFrame("hdr", 150, 200)
	ed.endDrag("hdr")
	first := ed.doc.FindElement("hdr").Rect

	// Second move somewhere else.
	ed.beginDrag("hdr")
	ed.dragFrame("hdr", 50, 50)
	ed.endDrag("hdr")

	ed.undoLast()
	got := ed.doc.FindElement("hdr").Rect
	if got.X != first.X || got.Y != first.Y {
		t.Fatalf("undo expected (%g,%g), got (%g,%g)", first.X, first.Y, got.X, got.Y)
	}
}
