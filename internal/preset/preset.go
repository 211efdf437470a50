/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package preset stores named alignment presets as JSON files: a snapping
// configuration plus a renderer style under a human-chosen name. Files are
// validated against an embedded JSON Schema on load and written atomically.
package preset

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"

	"resumecanvas/internal/config"
)

// Preset is one named snapping/rendering configuration.
type Preset struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Guides      GuidesSettings `json:"guides"`
	Renderer    StyleSettings  `json:"renderer,omitempty"`
}

// GuidesSettings mirrors the snapping knobs a preset can pin.
type GuidesSettings struct {
	SnapThresholdPx float64 `json:"snapThresholdPx"`
	HysteresisPx    float64 `json:"hysteresisPx"`
	GridEnabled     bool    `json:"gridEnabled,omitempty"`
	GridSize        float64 `json:"gridSize,omitempty"`
}

// StyleSettings mirrors the guide stroke knobs a preset can pin.
type StyleSettings struct {
	Color   string `json:"color,omitempty"`
	Width   int    `json:"width,omitempty"`
	DashLen int    `json:"dashLen,omitempty"`
	GapLen  int    `json:"gapLen,omitempty"`
}

// schemaJSON is the embedded contract every preset file must satisfy.
const schemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "Alignment Preset",
  "type": "object",
  "required": ["name", "guides"],
  "additionalProperties": false,
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "description": {"type": "string"},
    "guides": {
      "type": "object",
      "required": ["snapThresholdPx", "hysteresisPx"],
      "additionalProperties": false,
      "properties": {
        "snapThresholdPx": {"type": "number", "exclusiveMinimum": 0},
        "hysteresisPx": {"type": "number", "minimum": 0},
        "gridEnabled": {"type": "boolean"},
        "gridSize": {"type": "number", "exclusiveMinimum": 0}
      }
    },
    "renderer": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "color": {"type": "string", "pattern": "^#[0-9a-fA-F]{6}$"},
        "width": {"type": "integer", "minimum": 1},
        "dashLen": {"type": "integer", "minimum": 1},
        "gapLen": {"type": "integer", "minimum": 1}
      }
    }
  }
}`

// Apply copies the preset's settings into an app config.
func (p Preset) Apply(cfg *config.AppConfig) {
	cfg.Guides.SnapThresholdPx = p.Guides.SnapThresholdPx
	cfg.Guides.HysteresisPx = p.Guides.HysteresisPx
	cfg.Guides.GridEnabled = p.Guides.GridEnabled
	if p.Guides.GridSize > 0 {
		cfg.Guides.GridSize = p.Guides.GridSize
	}
	if p.Renderer.Color != "" {
		cfg.Renderer.Color = p.Renderer.Color
	}
	if p.Renderer.Width > 0 {
		cfg.Renderer.Width = p.Renderer.Width
	}
	if p.Renderer.DashLen > 0 {
		cfg.Renderer.DashLen = p.Renderer.DashLen
	}
	if p.Renderer.GapLen > 0 {
		cfg.Renderer.GapLen = p.Renderer.GapLen
	}
}

// FromConfig captures the current app config as a preset.
func FromConfig(name, description string, cfg config.AppConfig) Preset {
	return Preset{
		Name:        name,
		Description: description,
		Guides: GuidesSettings{
			SnapThresholdPx: cfg.Guides.SnapThresholdPx,
			HysteresisPx:    cfg.Guides.HysteresisPx,
			GridEnabled:     cfg.Guides.GridEnabled,
			GridSize:        cfg.Guides.GridSize,
		},
		Renderer: StyleSettings{
			Color:   cfg.Renderer.Color,
			Width:   cfg.Renderer.Width,
			DashLen: cfg.Renderer.DashLen,
			GapLen:  cfg.Renderer.GapLen,
		},
	}
}

// DefaultDir returns the per-user preset directory next to the config file.
func DefaultDir() (string, error) {
	cfgPath, err := config.ConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(cfgPath), "presets"), nil
}

// fileName maps a preset name to its on-disk file name.
func fileName(name string) (string, error) {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, slug)
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "", fmt.Errorf("preset name %q yields no usable file name", name)
	}
	return slug + ".json", nil
}

// Validate checks a raw preset document against the embedded schema.
func Validate(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaJSON),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("schema validate: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("preset invalid: %s", strings.Join(msgs, "; "))
	}
	return nil
}

// Save writes the preset into dir atomically: temp file in the same
// directory, then rename over the target.
func Save(dir string, p Preset) error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("preset name is required")
	}
	fname, err := fileName(p.Name)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode preset: %w", err)
	}
	if err := Validate(data); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure preset dir: %w", err)
	}
	target := filepath.Join(dir, fname)
	temp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d-%d", fname, os.Getpid(), rand.Int()))
	if err := os.WriteFile(temp, data, 0o644); err != nil {
		return fmt.Errorf("write temp preset: %w", err)
	}
	// On Windows, replace by removing destination first if needed
	if _, err := os.Stat(target); err == nil {
		_ = os.Remove(target)
	}
	if err := os.Rename(temp, target); err != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("replace preset: %w", err)
	}
	return nil
}

// Load reads and validates one preset by name.
func Load(dir, name string) (Preset, error) {
	var p Preset
	fname, err := fileName(name)
	if err != nil {
		return p, err
	}
	data, err := os.ReadFile(filepath.Join(dir, fname))
	if err != nil {
		return p, fmt.Errorf("read preset: %w", err)
	}
	if err := Validate(data); err != nil {
		return p, err
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse preset: %w", err)
	}
	return p, nil
}

// List returns the names of all valid presets in dir, sorted. Invalid files
// are skipped.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read preset dir: %w", err)
	}
	var names []string
	for _, ent := range entries {
		if ent.IsDir() || !strings.HasSuffix(ent.Name(), ".json") || strings.HasPrefix(ent.Name(), ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, ent.Name()))
		if err != nil || Validate(data) != nil {
			continue
		}
		var p Preset
		if json.Unmarshal(data, &p) == nil && p.Name != "" {
			names = append(names, p.Name)
		}
	}
	sort.Strings(names)
	return names, nil
}
