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
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"resumecanvas/internal/guides"
	"resumecanvas/internal/render"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.
// Unknown fields are preserved by being ignored on unmarshal.

type GuidesConfig struct {
	// SnapThresholdPx and HysteresisPx are screen pixels; the engine divides
	// by zoom so the perceived snap distance is zoom-invariant.
	SnapThresholdPx float64 `yaml:"snap_threshold_px"`
	HysteresisPx    float64 `yaml:"hysteresis_px"`
	GridEnabled     bool    `yaml:"grid_enabled"`
	GridSize        float64 `yaml:"grid_size"` // world units
	PageWidth       float64 `yaml:"page_width"`
	PageHeight      float64 `yaml:"page_height"`
}

type RendererConfig struct {
	Color   string `yaml:"color"` // #rrggbb
	Width   int    `yaml:"width"`
	DashLen int    `yaml:"dash_len"`
	GapLen  int    `yaml:"gap_len"`
}

type GeneralConfig struct {
	TelemetryOptIn bool   `yaml:"telemetry_opt_in"`
	Theme          string `yaml:"theme"` // "system" | "light" | "dark" (informational for now)
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int            `yaml:"config_version"`
	General       GeneralConfig  `yaml:"general"`
	Guides        GuidesConfig   `yaml:"guides"`
	Renderer      RendererConfig `yaml:"renderer"`
	Logging       LoggingConfig  `yaml:"logging"`
}

// Defaults returns the application defaults. Page size is A4 at 96 dpi in
// world units.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{TelemetryOptIn: false, Theme: "system"},
		Guides: GuidesConfig{
			SnapThresholdPx: 8,
			HysteresisPx:    4,
			GridEnabled:     false,
			GridSize:        10,
			PageWidth:       794,
			PageHeight:      1123,
		},
		Renderer: RendererConfig{Color: "#ec4899", Width: 1, DashLen: 6, GapLen: 4},
		Logging:  LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvSnapThreshold  = "RCV_SNAP_THRESHOLD_PX"
	EnvHysteresis     = "RCV_HYSTERESIS_PX"
	EnvGridEnabled    = "RCV_GRID_ENABLED"
	EnvGridSize       = "RCV_GRID_SIZE"
	EnvTelemetryOptIn = "RCV_TELEMETRY_OPT_IN"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "RCV_LOG_LEVEL"
	EnvLogFormat = "RCV_LOG_FORMAT"
	EnvLogSource = "RCV_LOG_SOURCE"
	EnvLogFile   = "RCV_LOG_FILE"
)

// Engine converts the user-facing guides section into the engine's
// per-session configuration.
func (g GuidesConfig) Engine() guides.Config {
	return guides.Config{
		SnapThresholdPx: g.SnapThresholdPx,
		HysteresisPx:    g.HysteresisPx,
		GridEnabled:     g.GridEnabled,
		GridSize:        g.GridSize,
		PageWidth:       g.PageWidth,
		PageHeight:      g.PageHeight,
	}
}

// Style converts the renderer section into a concrete stroke style. Bad hex
// values fall back to the default guide color.
func (r RendererConfig) Style() render.Style {
	st := render.DefaultStyle()
	if c, err := ParseHexColor(r.Color); err == nil {
		st.Color = c
	}
	if r.Width > 0 {
		st.Width = r.Width
	}
	if r.DashLen > 0 {
		st.DashLen = r.DashLen
	}
	if r.GapLen > 0 {
		st.GapLen = r.GapLen
	}
	return st
}

// ParseHexColor parses "#rrggbb" into an opaque RGBA color.
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "ResumeCanvas")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "ResumeCanvas")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "resumecanvas")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges
// environment overrides.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.General.Theme != "" {
		dst.General.Theme = src.General.Theme
	}
	// booleans: copy directly from src (file) so user preferences persist
	dst.General.TelemetryOptIn = src.General.TelemetryOptIn
	// guides
	if src.Guides.SnapThresholdPx > 0 {
		dst.Guides.SnapThresholdPx = src.Guides.SnapThresholdPx
	}
	if src.Guides.HysteresisPx > 0 {
		dst.Guides.HysteresisPx = src.Guides.HysteresisPx
	}
	dst.Guides.GridEnabled = src.Guides.GridEnabled
	if src.Guides.GridSize > 0 {
		dst.Guides.GridSize = src.Guides.GridSize
	}
	if src.Guides.PageWidth > 0 {
		dst.Guides.PageWidth = src.Guides.PageWidth
	}
	if src.Guides.PageHeight > 0 {
		dst.Guides.PageHeight = src.Guides.PageHeight
	}
	// renderer
	if strings.TrimSpace(src.Renderer.Color) != "" {
		dst.Renderer.Color = strings.TrimSpace(src.Renderer.Color)
	}
	if src.Renderer.Width > 0 {
		dst.Renderer.Width = src.Renderer.Width
	}
	if src.Renderer.DashLen > 0 {
		dst.Renderer.DashLen = src.Renderer.DashLen
	}
	if src.Renderer.GapLen > 0 {
		dst.Renderer.GapLen = src.Renderer.GapLen
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvSnapThreshold)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.Guides.SnapThresholdPx = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvHysteresis)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			cfg.Guides.HysteresisPx = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvGridEnabled)); v != "" {
		lv := strings.ToLower(v)
		cfg.Guides.GridEnabled = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvGridSize)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.Guides.GridSize = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvTelemetryOptIn)); v != "" {
		lv := strings.ToLower(v)
		cfg.General.TelemetryOptIn = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		cfg.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	switch key {
	case "guides.snap_threshold_px":
		if os.Getenv(EnvSnapThreshold) != "" {
			return EnvSnapThreshold, true
		}
	case "guides.hysteresis_px":
		if os.Getenv(EnvHysteresis) != "" {
			return EnvHysteresis, true
		}
	case "guides.grid_enabled":
		if os.Getenv(EnvGridEnabled) != "" {
			return EnvGridEnabled, true
		}
	case "guides.grid_size":
		if os.Getenv(EnvGridSize) != "" {
			return EnvGridSize, true
		}
	case "general.telemetry_opt_in":
		if os.Getenv(EnvTelemetryOptIn) != "" {
			return EnvTelemetryOptIn, true
		}
	case "logging.level":
		if os.Getenv(EnvLogLevel) != "" {
			return EnvLogLevel, true
		}
	case "logging.format":
		if os.Getenv(EnvLogFormat) != "" {
			return EnvLogFormat, true
		}
	case "logging.source":
		if os.Getenv(EnvLogSource) != "" {
			return EnvLogSource, true
		}
	case "logging.file":
		if os.Getenv(EnvLogFile) != "" {
			return EnvLogFile, true
		}
	}
	return "", false
}
