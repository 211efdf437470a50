/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package session records and replays drag sessions. A Trace is a portable
// JSON description of one drag (which element, at which zoom, through which
// pointer positions); Replay feeds it through the frame resolver exactly the
// way a live editor would, threading the per-axis snap memory between frames.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"resumecanvas/internal/domain"
	"resumecanvas/internal/guides"
)

// Point is one proposed pointer position in world units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Trace is a recorded drag session: the dragged element and the sequence of
// proposed positions, frame by frame.
type Trace struct {
	ActiveID string  `json:"activeId"`
	Zoom     float64 `json:"zoom"`
	Frames   []Point `json:"frames"`
}

// FrameResult pairs a trace frame with the resolver's output for it.
type FrameResult struct {
	Frame  Point
	Result guides.Result
}

// Summary aggregates a replay.
type Summary struct {
	Frames   int
	SnapsX   int
	SnapsY   int
	GridX    int
	GridY    int
	SnapKeys []string // distinct composite keys seen, sorted
}

// Replay runs the trace against the canvas under cfg. The spatial index is
// built once from the canvas snapshot; the active element does not occlude
// itself because the matcher skips same-ID targets. Snap memory starts empty
// and is threaded across frames, as at a live drag start.
func Replay(c domain.Canvas, cfg guides.Config, tr Trace) ([]FrameResult, Summary, error) {
	if strings.TrimSpace(tr.ActiveID) == "" {
		return nil, Summary{}, fmt.Errorf("trace has no active element id")
	}
	el := c.FindElement(tr.ActiveID)
	if el == nil {
		return nil, Summary{}, fmt.Errorf("trace element %q not on canvas", tr.ActiveID)
	}
	active := el.AlignmentData()

	if cfg.PageWidth == 0 {
		cfg.PageWidth = c.PageWidth
	}
	if cfg.PageHeight == 0 {
		cfg.PageHeight = c.PageHeight
	}

	idx := guides.NewSpatialIndex()
	idx.Build(c.AlignmentSnapshot())

	results := make([]FrameResult, 0, len(tr.Frames))
	var sum Summary
	keys := map[string]struct{}{}
	var lastX, lastY *guides.LastSnap
	for _, p := range tr.Frames {
		res := guides.ComputeGuidesAndSnaps(active, p.X, p.Y, tr.Zoom, idx, cfg, lastX, lastY)
		if res.SnapX != nil {
			sum.SnapsX++
			keys[res.SnapX.Key] = struct{}{}
		} else if cfg.GridEnabled && res.CorrectedX != p.X {
			sum.GridX++
		}
		if res.SnapY != nil {
			sum.SnapsY++
			keys[res.SnapY.Key] = struct{}{}
		} else if cfg.GridEnabled && res.CorrectedY != p.Y {
			sum.GridY++
		}
		lastX, lastY = res.SnapX, res.SnapY
		results = append(results, FrameResult{Frame: p, Result: res})
	}
	sum.Frames = len(tr.Frames)
	sum.SnapKeys = make([]string, 0, len(keys))
	for k := range keys {
		sum.SnapKeys = append(sum.SnapKeys, k)
	}
	sort.Strings(sum.SnapKeys)
	return results, sum, nil
}

// String renders the summary in one line for CLI output.
func (s Summary) String() string {
	return fmt.Sprintf("frames=%d snapsX=%d snapsY=%d gridX=%d gridY=%d keys=%d",
		s.Frames, s.SnapsX, s.SnapsY, s.GridX, s.GridY, len(s.SnapKeys))
}

// LoadTrace reads a JSON trace from disk.
func LoadTrace(path string) (Trace, error) {
	var tr Trace
	data, err := os.ReadFile(path)
	if err != nil {
		return tr, fmt.Errorf("read trace: %w", err)
	}
	if err := json.Unmarshal(data, &tr); err != nil {
		return tr, fmt.Errorf("parse trace: %w", err)
	}
	if len(tr.Frames) == 0 {
		return tr, fmt.Errorf("trace %s has no frames", path)
	}
	return tr, nil
}

// SaveTrace writes a JSON trace to disk, indented for hand editing.
func SaveTrace(path string, tr Trace) error {
	data, err := json.MarshalIndent(tr, "", "  ")
	if err != nil {
		return fmt.Errorf("encode trace: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write trace: %w", err)
	}
	return nil
}
