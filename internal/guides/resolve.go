/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package guides

import "math"

// Axis identifies the orientation of a guide: AxisX is a vertical line at an
// x coordinate, AxisY a horizontal line at a y coordinate.
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)

// Config is the immutable per-session snapping configuration supplied by the
// host. Threshold and hysteresis are in screen pixels and converted to world
// units per frame by dividing by zoom, so perceived snap distance is
// zoom-invariant. Grid size and page dimensions are in world units.
type Config struct {
	SnapThresholdPx float64
	HysteresisPx    float64
	GridEnabled     bool
	GridSize        float64
	PageWidth       float64
	PageHeight      float64
}

// DefaultSnapThresholdPx applies when the configured threshold is degenerate.
const DefaultSnapThresholdPx = 8

// LastSnap is the per-axis memory of which match was active last frame. It is
// owned by the host: read before each resolver call, replaced with the call's
// SnapX/SnapY afterwards, and cleared at drag start/end.
type LastSnap struct {
	// Key is the composite identity "activeAnchor->targetId:targetAnchor".
	Key string
	// Pos is the matched line position in world units.
	Pos float64
}

// Guide is one accepted alignment line, produced fresh each frame and
// consumed immediately by the renderer. At most one per axis.
type Guide struct {
	Axis Axis
	// Pos is the aligned coordinate in world units.
	Pos float64
	// SpanStart/SpanEnd bound the line on the perpendicular axis.
	SpanStart, SpanEnd float64
	// ActiveAnchor/TargetAnchor record the anchor pair that produced the
	// guide (diagnostic).
	ActiveAnchor, TargetAnchor string
}

// Result is the output contract of one frame resolution.
type Result struct {
	CorrectedX, CorrectedY float64
	Guides                 []Guide
	// SnapX/SnapY are this frame's snap identities (nil when the axis did not
	// match); the host feeds them back as lastSnapX/lastSnapY next frame.
	SnapX, SnapY *LastSnap
}

// ComputeGuidesAndSnaps resolves one drag frame. It matches both axes
// independently at the proposed (rawX, rawY), applies the best match per axis
// as a correction, falls back to grid snapping on unmatched axes when the grid
// is enabled (grid snaps emit no guide line), and returns the guides to render
// plus the snap identities for the next frame's hysteresis check.
//
// Deterministic given identical inputs; no I/O; the corrected position is
// always defined and falls through to the raw position in the worst case.
func ComputeGuidesAndSnaps(active ElementData, rawX, rawY, zoom float64, index *SpatialIndex, cfg Config, lastSnapX, lastSnapY *LastSnap) Result {
	if zoom <= 0 {
		zoom = 1
	}
	thresholdPx := cfg.SnapThresholdPx
	if thresholdPx <= 0 {
		thresholdPx = DefaultSnapThresholdPx
	}
	hysteresisPx := cfg.HysteresisPx
	if hysteresisPx < 0 {
		hysteresisPx = 0
	}
	threshold := thresholdPx / zoom
	hysteresis := hysteresisPx / zoom
	limit := threshold + hysteresis

	others := index.All()

	res := Result{CorrectedX: rawX, CorrectedY: rawY}

	candsX := matchAxisX(active, rawX, others, cfg.PageWidth, limit)
	if best, ok := selectBestMatch(candsX, active.IsText, lastSnapX, threshold, hysteresis); ok {
		res.CorrectedX = rawX + best.delta
		res.SnapX = &LastSnap{Key: best.key(), Pos: best.pos}
		res.Guides = append(res.Guides, Guide{
			Axis:         AxisX,
			Pos:          best.pos,
			SpanStart:    best.spanMin,
			SpanEnd:      best.spanMax,
			ActiveAnchor: best.activeAnchor,
			TargetAnchor: best.targetAnchor,
		})
	} else if cfg.GridEnabled && cfg.GridSize > 0 {
		res.CorrectedX = math.Round(rawX/cfg.GridSize) * cfg.GridSize
	}

	// Y matching sees the element's horizontal extent at the proposed X so
	// horizontal spans of Y-guides are computed where the element will land.
	candsY := matchAxisY(active, rawX, rawY, others, limit)
	if best, ok := selectBestMatch(candsY, active.IsText, lastSnapY, threshold, hysteresis); ok {
		res.CorrectedY = rawY + best.delta
		res.SnapY = &LastSnap{Key: best.key(), Pos: best.pos}
		res.Guides = append(res.Guides, Guide{
			Axis:         AxisY,
			Pos:          best.pos,
			SpanStart:    best.spanMin,
			SpanEnd:      best.spanMax,
			ActiveAnchor: best.activeAnchor,
			TargetAnchor: best.targetAnchor,
		})
	} else if cfg.GridEnabled && cfg.GridSize > 0 {
		res.CorrectedY = math.Round(rawY/cfg.GridSize) * cfg.GridSize
	}

	return res
}
