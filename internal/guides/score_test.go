/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package guides

import "testing"

// The scoring constants are behavioral contract; these tests pin the exact
// arithmetic.
func TestScoreMatchConstants(t *testing.T) {
	cases := []struct {
		name       string
		m          alignMatch
		activeText bool
		want       float64
	}{
		{"page base", alignMatch{targetID: PageTargetID, activeAnchor: AnchorRight, targetAnchor: AnchorPageRight}, false, 100},
		{"page center bonus", alignMatch{targetID: PageTargetID, activeAnchor: AnchorCenter, targetAnchor: AnchorPageCenter}, false, 120},
		{"page left bonus", alignMatch{targetID: PageTargetID, activeAnchor: AnchorLeft, targetAnchor: AnchorPageLeft}, false, 115},
		{"left-left", alignMatch{targetID: "e", activeAnchor: AnchorLeft, targetAnchor: AnchorLeft}, false, 110},
		{"left-left both text", alignMatch{targetID: "e", activeAnchor: AnchorLeft, targetAnchor: AnchorLeft, targetIsText: true}, true, 140},
		{"top-top", alignMatch{targetID: "e", activeAnchor: AnchorTop, targetAnchor: AnchorTop}, false, 105},
		{"top-top both text", alignMatch{targetID: "e", activeAnchor: AnchorTop, targetAnchor: AnchorTop, targetIsText: true}, true, 130},
		{"center-center", alignMatch{targetID: "e", activeAnchor: AnchorCenter, targetAnchor: AnchorCenter}, false, 90},
		{"right-right", alignMatch{targetID: "e", activeAnchor: AnchorRight, targetAnchor: AnchorRight}, false, 80},
		{"bottom-bottom", alignMatch{targetID: "e", activeAnchor: AnchorBottom, targetAnchor: AnchorBottom}, false, 80},
		{"left abuts right", alignMatch{targetID: "e", activeAnchor: AnchorLeft, targetAnchor: AnchorRight}, false, 60},
		{"stacking top on bottom", alignMatch{targetID: "e", activeAnchor: AnchorTop, targetAnchor: AnchorBottom}, false, 70},
		{"bottom on top", alignMatch{targetID: "e", activeAnchor: AnchorBottom, targetAnchor: AnchorTop}, false, 60},
		{"text target bonus", alignMatch{targetID: "e", activeAnchor: AnchorRight, targetAnchor: AnchorRight, targetIsText: true}, false, 90},
		{"no structural relation", alignMatch{targetID: "e", activeAnchor: AnchorLeft, targetAnchor: AnchorCenter}, false, 0},
	}
	for _, tc := range cases {
		if got := scoreMatch(tc.m, tc.activeText); got != tc.want {
			t.Fatalf("%s: score = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestScoreMatchDistancePenalty(t *testing.T) {
	m := alignMatch{targetID: "e", activeAnchor: AnchorLeft, targetAnchor: AnchorLeft, delta: 3.5}
	if got := scoreMatch(m, false); got != 110-7 {
		t.Fatalf("penalty must be 2*|delta|: got %v", got)
	}
	m.delta = -3.5
	if got := scoreMatch(m, false); got != 110-7 {
		t.Fatalf("penalty must use absolute delta: got %v", got)
	}
}

func TestSelectBestMatchRejectsNonPositive(t *testing.T) {
	// A relation-free pair at distance > 0 scores negative and must not win.
	cands := []alignMatch{{targetID: "e", activeAnchor: AnchorLeft, targetAnchor: AnchorCenter, delta: 1}}
	if _, ok := selectBestMatch(cands, false, nil, 8, 0); ok {
		t.Fatalf("non-positive score must yield no match")
	}
}

func TestSelectBestMatchEmpty(t *testing.T) {
	if _, ok := selectBestMatch(nil, false, nil, 8, 4); ok {
		t.Fatalf("zero candidates must yield no match")
	}
}

func TestSelectBestMatchHysteresisShortCircuit(t *testing.T) {
	locked := alignMatch{targetID: "e", activeAnchor: AnchorLeft, targetAnchor: AnchorLeft, delta: 10, pos: 100}
	rival := alignMatch{targetID: PageTargetID, activeAnchor: AnchorCenter, targetAnchor: AnchorPageCenter, delta: 0, pos: 200}
	last := &LastSnap{Key: locked.key(), Pos: 100}

	// Locked key inside threshold+hysteresis wins over a better-scoring rival.
	got, ok := selectBestMatch([]alignMatch{rival, locked}, false, last, 8, 4)
	if !ok || got.key() != locked.key() {
		t.Fatalf("expected locked match to win, got %+v ok=%v", got, ok)
	}

	// Beyond threshold+hysteresis the lock drops and scoring resumes.
	locked.delta = 13
	got, ok = selectBestMatch([]alignMatch{rival, locked}, false, last, 8, 4)
	if !ok || got.key() != rival.key() {
		t.Fatalf("expected lock to drop beyond threshold+hysteresis, got %+v ok=%v", got, ok)
	}
}

func TestSelectBestMatchStaleLockFallsThrough(t *testing.T) {
	// The locked target disappeared this frame; scoring proceeds normally.
	last := &LastSnap{Key: "left->gone:left", Pos: 0}
	cand := alignMatch{targetID: "e", activeAnchor: AnchorLeft, targetAnchor: AnchorLeft, delta: 2}
	got, ok := selectBestMatch([]alignMatch{cand}, false, last, 8, 4)
	if !ok || got.key() != cand.key() {
		t.Fatalf("stale lock must be treated as not found, got %+v ok=%v", got, ok)
	}
}
