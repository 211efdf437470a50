/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package guides

import (
	"math"
	"sort"
)

// scoreMatch ranks one candidate. Page alignment and same-anchor alignment
// (left-left and top-top above all, more so between two text runs) outrank
// edge-to-edge stacking, which outranks pairs with no structural relationship.
// The constants are empirically tuned; tests pin them.
func scoreMatch(m alignMatch, activeIsText bool) float64 {
	score := 0.0
	switch {
	case m.targetID == PageTargetID:
		score += 100
		switch m.targetAnchor {
		case AnchorPageCenter:
			score += 20
		case AnchorPageLeft:
			score += 15
		}
	case m.activeAnchor == m.targetAnchor:
		score += 80
		switch m.activeAnchor {
		case AnchorLeft:
			score += 30
			if activeIsText && m.targetIsText {
				score += 20
			}
		case AnchorTop:
			score += 25
			if activeIsText && m.targetIsText {
				score += 15
			}
		case AnchorCenter:
			score += 10
		}
	case isEdgeAdjacency(m.activeAnchor, m.targetAnchor):
		score += 60
		if m.activeAnchor == AnchorTop && m.targetAnchor == AnchorBottom {
			// vertical stacking: active top touching another's bottom
			score += 10
		}
	}
	if m.targetID != PageTargetID && m.targetIsText {
		score += 10
	}
	score -= 2 * math.Abs(m.delta)
	return score
}

func isEdgeAdjacency(active, target string) bool {
	switch {
	case active == AnchorLeft && target == AnchorRight,
		active == AnchorRight && target == AnchorLeft,
		active == AnchorTop && target == AnchorBottom,
		active == AnchorBottom && target == AnchorTop:
		return true
	}
	return false
}

// selectBestMatch picks the winning candidate for one axis.
//
// If last carries a snap key from the previous frame and a candidate with the
// same key lies within threshold+hysteresis, that candidate wins outright:
// this keeps a locked guide stable while the pointer jitters near the snap
// boundary. Otherwise candidates within the nominal threshold are scored and
// the highest strictly-positive score wins. Ties break on smaller |delta|,
// then on key, so the result is deterministic for identical inputs.
func selectBestMatch(cands []alignMatch, activeIsText bool, last *LastSnap, threshold, hysteresis float64) (alignMatch, bool) {
	if last != nil && last.Key != "" {
		for _, c := range cands {
			if c.key() == last.Key && math.Abs(c.delta) <= threshold+hysteresis {
				return c, true
			}
		}
	}

	scored := cands[:0:0]
	for _, c := range cands {
		if math.Abs(c.delta) <= threshold {
			scored = append(scored, c)
		}
	}
	if len(scored) == 0 {
		return alignMatch{}, false
	}
	sort.Slice(scored, func(i, j int) bool {
		si, sj := scoreMatch(scored[i], activeIsText), scoreMatch(scored[j], activeIsText)
		if si != sj {
			return si > sj
		}
		di, dj := math.Abs(scored[i].delta), math.Abs(scored[j].delta)
		if di != dj {
			return di < dj
		}
		return scored[i].key() < scored[j].key()
	})
	best := scored[0]
	if scoreMatch(best, activeIsText) <= 0 {
		return alignMatch{}, false
	}
	return best, true
}
