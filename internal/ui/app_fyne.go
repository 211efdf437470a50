//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"resumecanvas/internal/config"
	"resumecanvas/internal/crash"
	"resumecanvas/internal/domain"
	"resumecanvas/internal/guides"
	applog "resumecanvas/internal/log"
	"resumecanvas/internal/session"
	"resumecanvas/internal/storage"
	"resumecanvas/internal/telemetry"
	"resumecanvas/internal/undo"
	"resumecanvas/internal/version"
)

// editor owns the live drag loop: one frame per pointer event, snap memory
// threaded between frames, guide lines redrawn from each result.
type editor struct {
	doc  *domain.Canvas
	cfg  guides.Config
	zoom float64

	idx          *guides.SpatialIndex
	lastX, lastY *guides.LastSnap
	dragging     bool
	rawX, rawY   float64

	undoMgr   *undo.Manager
	lastMoved string
	journal   *storage.Journal
	sessionID int64
	seq       int

	lg *slog.Logger

	// view
	surface      *fyne.Container
	boxes        map[string]*elementBox
	vLine, hLine *canvas.Line
	status       *widget.Label
}

func newEditor(doc *domain.Canvas, cfg config.AppConfig, journal *storage.Journal) *editor {
	ec := cfg.Guides.Engine()
	if ec.PageWidth == 0 {
		ec.PageWidth = doc.PageWidth
	}
	if ec.PageHeight == 0 {
		ec.PageHeight = doc.PageHeight
	}
	st := cfg.Renderer.Style()
	ed := &editor{
		doc:     doc,
		cfg:     ec,
		zoom:    1,
		idx:     guides.NewSpatialIndex(),
		undoMgr: undo.NewManager(undo.Config{MaxPerElement: 64}),
		journal: journal,
		lg:      applog.WithComponent("ui"),
		boxes:   make(map[string]*elementBox),
	}
	ed.vLine = canvas.NewLine(st.Color)
	ed.hLine = canvas.NewLine(st.Color)
	ed.vLine.StrokeWidth = float32(st.Width)
	ed.hLine.StrokeWidth = float32(st.Width)
	ed.vLine.Hide()
	ed.hLine.Hide()
	return ed
}

// beginDrag builds the frame candidate index and opens a journal session.
// Snap memory starts empty at every drag start.
func (ed *editor) beginDrag(id string) {
	el := ed.doc.FindElement(id)
	if el == nil {
		return
	}
	ed.dragging = true
	ed.rawX, ed.rawY = el.Rect.X, el.Rect.Y
	ed.lastX, ed.lastY = nil, nil
	ed.idx.Build(ed.doc.AlignmentSnapshot())
	ed.seq = 0
	if ed.journal != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if sid, err := ed.journal.BeginSession(ctx, id, ed.zoom); err == nil {
			ed.sessionID = sid
		} else {
			ed.lg.Warn("journal session failed", slog.Any("err", err))
			ed.sessionID = 0
		}
	}
}

// dragFrame advances the proposed position by a screen-space delta and
// resolves one frame. The corrected position is written back to the document.
func (ed *editor) dragFrame(id string, dxScreen, dyScreen float64) (guides.Result, bool) {
	el := ed.doc.FindElement(id)
	if el == nil || !ed.dragging {
		return guides.Result{}, false
	}
	ed.rawX += dxScreen / ed.zoom
	ed.rawY += dyScreen / ed.zoom

	active := el.AlignmentData()
	res := guides.ComputeGuidesAndSnaps(active, ed.rawX, ed.rawY, ed.zoom, ed.idx, ed.cfg, ed.lastX, ed.lastY)
	el.Rect.X = res.CorrectedX
	el.Rect.Y = res.CorrectedY
	ed.lastX, ed.lastY = res.SnapX, res.SnapY

	if ed.journal != nil && ed.sessionID != 0 {
		ev := storage.FrameEvent{
			Seq: ed.seq, RawX: ed.rawX, RawY: ed.rawY,
			CorrectedX: res.CorrectedX, CorrectedY: res.CorrectedY,
			GuideCount: len(res.Guides),
		}
		if res.SnapX != nil {
			ev.SnapXKey = res.SnapX.Key
		}
		if res.SnapY != nil {
			ev.SnapYKey = res.SnapY.Key
		}
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		if err := ed.journal.RecordFrame(ctx, ed.sessionID, ev); err != nil {
			ed.lg.Warn("journal frame failed", slog.Any("err", err))
		}
		cancel()
	}
	ed.seq++
	return res, true
}

// endDrag closes the session, clears snap memory and pushes an undo snapshot.
func (ed *editor) endDrag(id string) {
	if !ed.dragging {
		return
	}
	ed.dragging = false
	ed.lastX, ed.lastY = nil, nil
	if el := ed.doc.FindElement(id); el != nil {
		ed.undoMgr.PushSnapshot(undo.Snapshot{ElementID: id, X: el.Rect.X, Y: el.Rect.Y, TS: time.Now()})
		ed.lastMoved = id
	}
	if ed.journal != nil && ed.sessionID != 0 {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		if err := ed.journal.EndSession(ctx, ed.sessionID, ed.seq); err != nil {
			ed.lg.Warn("journal end failed", slog.Any("err", err))
		}
		cancel()
		ed.sessionID = 0
	}
	telemetry.Event("drag_session", map[string]any{"frames": ed.seq})
}

// refreshGuides projects the frame's guide lines into the view.
func (ed *editor) refreshGuides(res guides.Result) {
	ed.vLine.Hide()
	ed.hLine.Hide()
	for _, g := range res.Guides {
		switch g.Axis {
		case guides.AxisX:
			ed.vLine.Position1 = fyne.NewPos(float32(g.Pos*ed.zoom), float32(g.SpanStart*ed.zoom))
			ed.vLine.Position2 = fyne.NewPos(float32(g.Pos*ed.zoom), float32(g.SpanEnd*ed.zoom))
			ed.vLine.Show()
			ed.vLine.Refresh()
		case guides.AxisY:
			ed.hLine.Position1 = fyne.NewPos(float32(g.SpanStart*ed.zoom), float32(g.Pos*ed.zoom))
			ed.hLine.Position2 = fyne.NewPos(float32(g.SpanEnd*ed.zoom), float32(g.Pos*ed.zoom))
			ed.hLine.Show()
			ed.hLine.Refresh()
		}
	}
}

func (ed *editor) statusLine(res guides.Result) string {
	s := fmt.Sprintf("(%.0f, %.0f)", res.CorrectedX, res.CorrectedY)
	if res.SnapX != nil {
		s += "  x:" + res.SnapX.Key
	}
	if res.SnapY != nil {
		s += "  y:" + res.SnapY.Key
	}
	return s
}

// undoLast restores the previous recorded position of the last moved element.
func (ed *editor) undoLast() {
	if ed.lastMoved == "" {
		return
	}
	// The top snapshot is the current position; the one below is the target.
	if _, ok := ed.undoMgr.Undo(ed.lastMoved); !ok {
		return
	}
	if prev, ok := ed.undoMgr.Undo(ed.lastMoved); ok {
		if el := ed.doc.FindElement(ed.lastMoved); el != nil {
			el.Rect.X, el.Rect.Y = prev.X, prev.Y
			// keep it on the stack as the new current position
			ed.undoMgr.PushSnapshot(undo.Snapshot{ElementID: ed.lastMoved, X: prev.X, Y: prev.Y, TS: time.Now()})
			if box, ok := ed.boxes[ed.lastMoved]; ok {
				box.sync()
			}
		}
	}
}

// elementBox is one draggable canvas element.
type elementBox struct {
	widget.BaseWidget
	ed   *editor
	id   string
	rect *canvas.Rectangle
	name *canvas.Text
}

func newElementBox(ed *editor, el *domain.Element) *elementBox {
	b := &elementBox{ed: ed, id: el.ID}
	b.rect = canvas.NewRectangle(color.NRGBA{R: 235, G: 240, B: 248, A: 255})
	b.rect.StrokeColor = color.NRGBA{R: 60, G: 72, B: 96, A: 255}
	b.rect.StrokeWidth = 1
	label := el.Label
	if label == "" {
		label = el.ID
	}
	b.name = canvas.NewText(label, color.NRGBA{R: 60, G: 72, B: 96, A: 255})
	b.name.TextSize = 11
	b.ExtendBaseWidget(b)
	return b
}

func (b *elementBox) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(b.rect, container.NewCenter(b.name)))
}

// sync moves the widget to its element's current document position.
func (b *elementBox) sync() {
	el := b.ed.doc.FindElement(b.id)
	if el == nil {
		return
	}
	z := b.ed.zoom
	b.Move(fyne.NewPos(float32(el.Rect.X*z), float32(el.Rect.Y*z)))
	b.Resize(fyne.NewSize(float32(el.Rect.Width*z), float32(el.Rect.Height*z)))
}

func (b *elementBox) Dragged(ev *fyne.DragEvent) {
	if !b.ed.dragging {
		b.ed.beginDrag(b.id)
	}
	res, ok := b.ed.dragFrame(b.id, float64(ev.Dragged.DX), float64(ev.Dragged.DY))
	if !ok {
		return
	}
	b.sync()
	b.ed.refreshGuides(res)
	if b.ed.status != nil {
		b.ed.status.SetText(b.ed.statusLine(res))
	}
}

func (b *elementBox) DragEnd() {
	b.ed.endDrag(b.id)
	b.ed.refreshGuides(guides.Result{})
	if b.ed.status != nil {
		b.ed.status.SetText("")
	}
}

func (b *elementBox) Tapped(*fyne.PointEvent) {}

// buildSurface lays out the page rectangle, the element boxes and the guide
// line overlays in one absolutely-positioned container.
func (ed *editor) buildSurface() *fyne.Container {
	page := canvas.NewRectangle(color.White)
	page.StrokeColor = color.NRGBA{R: 180, G: 180, B: 180, A: 255}
	page.StrokeWidth = 1
	page.Resize(fyne.NewSize(float32(ed.doc.PageWidth*ed.zoom), float32(ed.doc.PageHeight*ed.zoom)))

	ed.surface = container.NewWithoutLayout(page)
	for i := range ed.doc.Elements {
		el := &ed.doc.Elements[i]
		if el.Hidden || el.Kind == domain.KindGuide || el.Kind == domain.KindPageBreak {
			continue
		}
		box := newElementBox(ed, el)
		ed.boxes[el.ID] = box
		ed.surface.Add(box)
		box.sync()
	}
	ed.surface.Add(ed.vLine)
	ed.surface.Add(ed.hLine)
	return ed.surface
}

// Run starts the desktop editor. canvasPath may name a canvas JSON document;
// when empty or unreadable the built-in sample canvas is used.
func Run(canvasPath string) error {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("ui")

	cfg, err := config.Load()
	if err != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", err))
		cfg = config.Defaults()
	}

	journalRoot := ""
	if p, err := config.ConfigPath(); err == nil {
		journalRoot = filepath.Dir(p)
	}
	defer func() { crash.Recover(journalRoot) }()

	var journal *storage.Journal
	if journalRoot != "" {
		if j, err := storage.Open(journalRoot); err == nil {
			journal = j
			defer journal.Close()
		} else {
			l.Warn("journal unavailable", slog.Any("err", err))
		}
	}

	doc := session.SampleCanvas()
	if canvasPath != "" {
		if data, err := os.ReadFile(canvasPath); err == nil {
			var loaded domain.Canvas
			if err := json.Unmarshal(data, &loaded); err == nil && len(loaded.Elements) > 0 {
				doc = loaded
			} else {
				l.Warn("canvas document unreadable, using sample", slog.String("path", canvasPath), slog.Any("err", err))
			}
		} else {
			l.Warn("canvas document missing, using sample", slog.String("path", canvasPath), slog.Any("err", err))
		}
	}

	telemetry.InitDefault()
	telemetry.Event("ui_start", nil)

	a := app.New()
	w := a.NewWindow("ResumeCanvas " + version.String())

	ed := newEditor(&doc, cfg, journal)
	ed.status = widget.NewLabel("")
	content := container.NewBorder(nil, ed.status, nil, nil, container.NewScroll(ed.buildSurface()))
	w.SetContent(content)
	w.Resize(fyne.NewSize(900, 700))

	w.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) {
		ed.undoLast()
	})

	l.Info("editor ready", slog.Int("elements", len(doc.Elements)))
	w.ShowAndRun()
	return nil
}
