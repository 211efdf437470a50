/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package guides

import "testing"

func TestSpatialIndexFiltersIneligible(t *testing.T) {
	idx := NewSpatialIndex()
	idx.Build([]ElementData{
		{ID: "a", X: 0, Y: 0, W: 10, H: 10},
		{ID: "hidden", X: 0, Y: 0, W: 10, H: 10, Hidden: true},
		{ID: "guide", X: 0, Y: 0, W: 10, H: 10, IsGuide: true},
		{ID: "break", X: 0, Y: 0, W: 10, H: 10, IsPageBreak: true},
		{ID: "flat", X: 0, Y: 0, W: 10, H: 0},
		{ID: "thin", X: 0, Y: 0, W: 0, H: 10},
		{ID: "neg", X: 0, Y: 0, W: -5, H: 10},
		{ID: "b", X: 5, Y: 5, W: 1, H: 1},
	})
	got := idx.All()
	if len(got) != 2 {
		t.Fatalf("expected 2 eligible elements, got %d", len(got))
	}
	if got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("input order not preserved: %q, %q", got[0].ID, got[1].ID)
	}
}

func TestSpatialIndexBuildReplacesContents(t *testing.T) {
	idx := NewSpatialIndex()
	idx.Build([]ElementData{{ID: "a", W: 10, H: 10}})
	idx.Build([]ElementData{{ID: "b", W: 10, H: 10}})
	if idx.Len() != 1 || idx.All()[0].ID != "b" {
		t.Fatalf("rebuild must replace previous contents, got %+v", idx.All())
	}
}

func TestSpatialIndexEmptyInput(t *testing.T) {
	idx := NewSpatialIndex()
	idx.Build(nil)
	if idx.Len() != 0 {
		t.Fatalf("empty input must yield empty index")
	}
}
