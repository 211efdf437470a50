/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package preset

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	applog "resumecanvas/internal/log"
)

const packManifestName = "presetpack.manifest.txt"

// ExportPack zips the preset directory into a single .zip file. The archive
// carries a small manifest at the root for quick human inspection. An empty
// preset directory still yields an archive with only the manifest.
func ExportPack(dir string, destZipPath string) error {
	l := applog.WithOperation(applog.WithComponent("preset"), "export").With(slog.String("dir", dir))
	if strings.TrimSpace(dir) == "" {
		return errors.New("preset dir is required")
	}
	if strings.TrimSpace(destZipPath) == "" {
		return errors.New("destZipPath is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure preset dir: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(destZipPath), 0o755); err != nil {
		return fmt.Errorf("ensure zip dir: %w", err)
	}
	// On Windows, remove destination if present before create
	_ = os.Remove(destZipPath)

	zf, err := os.Create(destZipPath)
	if err != nil {
		return fmt.Errorf("create zip: %w", err)
	}
	defer func() { _ = zf.Close() }()
	zw := zip.NewWriter(zf)
	defer func() { _ = zw.Close() }()

	manifest := fmt.Sprintf("ResumeCanvas Alignment Preset Pack\nCreated: %s\n\nContents mirror the preset directory.\n",
		time.Now().Format(time.RFC3339))
	w, err := zw.Create(packManifestName)
	if err != nil {
		return fmt.Errorf("add manifest: %w", err)
	}
	if _, err := w.Write([]byte(manifest)); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read preset dir: %w", err)
	}
	added := 0
	for _, ent := range entries {
		if ent.IsDir() || !strings.HasSuffix(ent.Name(), ".json") || strings.HasPrefix(ent.Name(), ".") {
			continue
		}
		fw, err := zw.Create(ent.Name())
		if err != nil {
			return fmt.Errorf("add %s: %w", ent.Name(), err)
		}
		f, err := os.Open(filepath.Join(dir, ent.Name()))
		if err != nil {
			return fmt.Errorf("open %s: %w", ent.Name(), err)
		}
		if _, err := io.Copy(fw, f); err != nil {
			_ = f.Close()
			return fmt.Errorf("copy %s: %w", ent.Name(), err)
		}
		_ = f.Close()
		added++
	}
	l.Info("preset pack exported", slog.Int("files", added), slog.String("zip", destZipPath))
	return nil
}

// InstallPack extracts a preset pack into dir. Existing presets are never
// overwritten; invalid documents are skipped. Returns the count of presets
// installed.
func InstallPack(dir string, packZipPath string) (int, error) {
	l := applog.WithOperation(applog.WithComponent("preset"), "install").With(slog.String("dir", dir))
	if strings.TrimSpace(dir) == "" {
		return 0, errors.New("preset dir is required")
	}
	if strings.TrimSpace(packZipPath) == "" {
		return 0, errors.New("packZipPath is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("ensure preset dir: %w", err)
	}

	r, err := zip.OpenReader(packZipPath)
	if err != nil {
		return 0, fmt.Errorf("open pack: %w", err)
	}
	defer func() { _ = r.Close() }()

	installed := 0
	for _, f := range r.File {
		name := filepath.Base(f.Name)
		if name == packManifestName || f.FileInfo().IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		targetPath := filepath.Join(dir, name)
		if _, err := os.Stat(targetPath); err == nil {
			l.Warn("skip existing preset", slog.String("path", targetPath))
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return installed, fmt.Errorf("open %s: %w", name, err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return installed, fmt.Errorf("read %s: %w", name, err)
		}
		if err := Validate(data); err != nil {
			l.Warn("skip invalid preset", slog.String("name", name), slog.Any("err", err))
			continue
		}
		if err := os.WriteFile(targetPath, data, 0o644); err != nil {
			return installed, fmt.Errorf("write %s: %w", name, err)
		}
		installed++
	}
	l.Info("preset pack installed", slog.Int("files", installed))
	return installed, nil
}
