/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"image/color"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.ConfigVersion != 1 {
		t.Fatalf("expected config_version 1, got %d", cfg.ConfigVersion)
	}
	if cfg.Guides.SnapThresholdPx != 8 || cfg.Guides.HysteresisPx != 4 {
		t.Fatalf("unexpected snap defaults: %+v", cfg.Guides)
	}
	if cfg.Guides.PageWidth != 794 || cfg.Guides.PageHeight != 1123 {
		t.Fatalf("expected A4 page at 96dpi, got %gx%g", cfg.Guides.PageWidth, cfg.Guides.PageHeight)
	}
	if cfg.General.TelemetryOptIn {
		t.Fatal("telemetry must default to opt-out")
	}
	if cfg.Renderer.Color != "#ec4899" {
		t.Fatalf("unexpected default guide color %q", cfg.Renderer.Color)
	}
}

func TestMergeInto(t *testing.T) {
	dst := Defaults()
	src := AppConfig{
		Guides:  GuidesConfig{SnapThresholdPx: 12, GridEnabled: true, GridSize: 25},
		Logging: LoggingConfig{Level: "DEBUG", Format: "json"},
	}
	mergeInto(&dst, &src)
	if dst.Guides.SnapThresholdPx != 12 {
		t.Fatalf("expected threshold 12, got %g", dst.Guides.SnapThresholdPx)
	}
	if !dst.Guides.GridEnabled || dst.Guides.GridSize != 25 {
		t.Fatalf("grid not merged: %+v", dst.Guides)
	}
	// Zero-valued fields in src must not clobber defaults.
	if dst.Guides.HysteresisPx != 4 || dst.Guides.PageWidth != 794 {
		t.Fatalf("defaults clobbered: %+v", dst.Guides)
	}
	if dst.Logging.Level != "debug" || dst.Logging.Format != "json" {
		t.Fatalf("logging not merged: %+v", dst.Logging)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv(EnvSnapThreshold, "16")
	t.Setenv(EnvHysteresis, "6")
	t.Setenv(EnvGridEnabled, "true")
	t.Setenv(EnvTelemetryOptIn, "1")
	t.Setenv(EnvLogLevel, "WARN")

	cfg := Defaults()
	applyEnvOverrides(&cfg)

	if cfg.Guides.SnapThresholdPx != 16 || cfg.Guides.HysteresisPx != 6 {
		t.Fatalf("env snap overrides not applied: %+v", cfg.Guides)
	}
	if !cfg.Guides.GridEnabled {
		t.Fatal("env grid override not applied")
	}
	if !cfg.General.TelemetryOptIn {
		t.Fatal("env telemetry override not applied")
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("env log level not applied: %q", cfg.Logging.Level)
	}
}

func TestApplyEnvOverridesRejectsBadValues(t *testing.T) {
	t.Setenv(EnvSnapThreshold, "not-a-number")
	t.Setenv(EnvGridSize, "-5")

	cfg := Defaults()
	applyEnvOverrides(&cfg)

	if cfg.Guides.SnapThresholdPx != 8 {
		t.Fatalf("bad threshold must be ignored, got %g", cfg.Guides.SnapThresholdPx)
	}
	if cfg.Guides.GridSize != 10 {
		t.Fatalf("negative grid size must be ignored, got %g", cfg.Guides.GridSize)
	}
}

func TestEnvOverrideFor(t *testing.T) {
	t.Setenv(EnvSnapThreshold, "16")
	if name, ok := EnvOverrideFor("guides.snap_threshold_px"); !ok || name != EnvSnapThreshold {
		t.Fatalf("expected override report for threshold, got %q %v", name, ok)
	}
	if _, ok := EnvOverrideFor("guides.grid_size"); ok {
		t.Fatal("grid_size is not set and must not report an override")
	}
	if _, ok := EnvOverrideFor("no.such.key"); ok {
		t.Fatal("unknown keys must not report overrides")
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#ec4899")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if (c != color.RGBA{R: 0xec, G: 0x48, B: 0x99, A: 255}) {
		t.Fatalf("unexpected color %+v", c)
	}
	for _, bad := range []string{"", "ec4899", "#ec48", "#zzzzzz"} {
		if _, err := ParseHexColor(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestEngineAndStyleConversions(t *testing.T) {
	cfg := Defaults()
	eng := cfg.Guides.Engine()
	if eng.SnapThresholdPx != 8 || eng.PageWidth != 794 || eng.PageHeight != 1123 {
		t.Fatalf("engine conversion mismatch: %+v", eng)
	}

	st := RendererConfig{Color: "#0000ff", Width: 2, DashLen: 8, GapLen: 3}.Style()
	if (st.Color != color.RGBA{B: 255, A: 255}) || st.Width != 2 || st.DashLen != 8 || st.GapLen != 3 {
		t.Fatalf("style conversion mismatch: %+v", st)
	}

	// Bad color falls back to the default stroke color.
	fallback := RendererConfig{Color: "nope"}.Style()
	if fallback.Color != DefaultsRendererColor() {
		t.Fatalf("expected fallback color, got %+v", fallback.Color)
	}
}

// DefaultsRendererColor resolves the default stroke color for assertions.
func DefaultsRendererColor() color.RGBA {
	c, _ := ParseHexColor(Defaults().Renderer.Color)
	return c
}
