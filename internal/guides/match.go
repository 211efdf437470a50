/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package guides

import "math"

// Anchor names used in match keys and guide diagnostics.
const (
	AnchorLeft   = "left"
	AnchorCenter = "center"
	AnchorRight  = "right"
	AnchorTop    = "top"
	AnchorBottom = "bottom"

	AnchorPageLeft   = "page-left"
	AnchorPageCenter = "page-center"
	AnchorPageRight  = "page-right"
	AnchorPageTop    = "page-top"
)

// PageTargetID is the target identifier for page-anchor matches.
const PageTargetID = "page"

// alignMatch is one candidate alignment between the active element and either
// the page or another element, on one axis. Recomputed each frame, discarded
// after selection.
type alignMatch struct {
	// pos is the resulting line position in world units.
	pos float64
	// delta is the signed correction that snaps the active element's anchor
	// onto the line: target_pos - active_pos.
	delta        float64
	activeAnchor string
	targetAnchor string
	targetID     string
	// spanMin/spanMax bound both participants on the perpendicular axis; the
	// guide line is drawn over this range.
	spanMin, spanMax float64
	targetIsText     bool
}

// key is the composite snap identity used for the hysteresis comparison.
func (m alignMatch) key() string {
	return m.activeAnchor + "->" + m.targetID + ":" + m.targetAnchor
}

type anchorPos struct {
	name string
	pos  float64
}

// matchAxisX enumerates every X-axis alignment candidate for the active
// element at proposed position rawX. limit is the enumeration gate in world
// units; it includes the hysteresis slack so a previously locked match stays
// discoverable just beyond the nominal threshold (selection re-applies the
// tighter gate for unlocked candidates).
func matchAxisX(active ElementData, rawX float64, others []ElementData, pageWidth, limit float64) []alignMatch {
	activeAnchors := [3]anchorPos{
		{AnchorLeft, rawX},
		{AnchorCenter, rawX + active.W/2},
		{AnchorRight, rawX + active.W},
	}
	pageAnchors := [3]anchorPos{
		{AnchorPageLeft, 0},
		{AnchorPageCenter, pageWidth / 2},
		{AnchorPageRight, pageWidth},
	}

	// 9 page pairs + 9 pairs per sibling.
	out := make([]alignMatch, 0, 9+9*len(others))

	for _, aa := range activeAnchors {
		for _, pa := range pageAnchors {
			d := pa.pos - aa.pos
			if math.Abs(d) > limit {
				continue
			}
			out = append(out, alignMatch{
				pos:          pa.pos,
				delta:        d,
				activeAnchor: aa.name,
				targetAnchor: pa.name,
				targetID:     PageTargetID,
				// The page is vertically unbounded; span only the finite
				// participant.
				spanMin: active.Y,
				spanMax: active.Y + active.H,
			})
		}
	}

	for _, t := range others {
		if t.ID == active.ID {
			continue
		}
		targetAnchors := [3]anchorPos{
			{AnchorLeft, t.X},
			{AnchorCenter, t.X + t.W/2},
			{AnchorRight, t.X + t.W},
		}
		spanMin := math.Min(active.Y, t.Y)
		spanMax := math.Max(active.Y+active.H, t.Y+t.H)
		for _, aa := range activeAnchors {
			for _, ta := range targetAnchors {
				d := ta.pos - aa.pos
				if math.Abs(d) > limit {
					continue
				}
				out = append(out, alignMatch{
					pos:          ta.pos,
					delta:        d,
					activeAnchor: aa.name,
					targetAnchor: ta.name,
					targetID:     t.ID,
					spanMin:      spanMin,
					spanMax:      spanMax,
					targetIsText: t.IsText,
				})
			}
		}
	}
	return out
}

// matchAxisY enumerates every Y-axis alignment candidate for the active
// element at proposed position rawY. The element's horizontal extent is taken
// at rawX (its would-be corrected X), so horizontal spans of Y-guides are
// computed where the element will actually land. Only a page-top anchor
// exists: the canvas grows downward without a fixed bottom.
func matchAxisY(active ElementData, rawX, rawY float64, others []ElementData, limit float64) []alignMatch {
	activeAnchors := [3]anchorPos{
		{AnchorTop, rawY},
		{AnchorCenter, rawY + active.H/2},
		{AnchorBottom, rawY + active.H},
	}

	out := make([]alignMatch, 0, 3+9*len(others))

	for _, aa := range activeAnchors {
		d := 0 - aa.pos
		if math.Abs(d) > limit {
			continue
		}
		out = append(out, alignMatch{
			pos:          0,
			delta:        d,
			activeAnchor: aa.name,
			targetAnchor: AnchorPageTop,
			targetID:     PageTargetID,
			spanMin:      rawX,
			spanMax:      rawX + active.W,
		})
	}

	for _, t := range others {
		if t.ID == active.ID {
			continue
		}
		targetAnchors := [3]anchorPos{
			{AnchorTop, t.Y},
			{AnchorCenter, t.Y + t.H/2},
			{AnchorBottom, t.Y + t.H},
		}
		spanMin := math.Min(rawX, t.X)
		spanMax := math.Max(rawX+active.W, t.X+t.W)
		for _, aa := range activeAnchors {
			for _, ta := range targetAnchors {
				d := ta.pos - aa.pos
				if math.Abs(d) > limit {
					continue
				}
				out = append(out, alignMatch{
					pos:          ta.pos,
					delta:        d,
					activeAnchor: aa.name,
					targetAnchor: ta.name,
					targetID:     t.ID,
					spanMin:      spanMin,
					spanMax:      spanMax,
					targetIsText: t.IsText,
				})
			}
		}
	}
	return out
}
