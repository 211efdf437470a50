/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"resumecanvas/internal/config"
	"resumecanvas/internal/crash"
	"resumecanvas/internal/export"
	applog "resumecanvas/internal/log"
	"resumecanvas/internal/preset"
	"resumecanvas/internal/session"
	"resumecanvas/internal/storage"
	"resumecanvas/internal/ui"
	"resumecanvas/internal/version"
)

func usage() {
	fmt.Println("ResumeCanvas — canvas alignment and snapping toolkit")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  resumecanvas version|-v|--version   Show version")
	fmt.Println("  resumecanvas demo <outdir>          Replay the built-in drag trace and write overlay PNG/SVG/PDF")
	fmt.Println("  resumecanvas replay <trace.json>    Replay a recorded drag trace against the sample canvas")
	fmt.Println("  resumecanvas preset list            List saved alignment presets")
	fmt.Println("  resumecanvas preset save <name>     Save the current config as a named preset")
	fmt.Println("  resumecanvas preset apply <name>    Apply a named preset to the config file")
	fmt.Println("  resumecanvas preset export <zip>    Export all presets as a pack")
	fmt.Println("  resumecanvas preset install <zip>   Install presets from a pack (skips existing)")
	fmt.Println("  resumecanvas ui [<canvas.json>]     Launch desktop editor (build with -tags fyne for full UI)")
}

func main() {
	// initialize structured logging using environment defaults
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")
	var journalRoot string
	defer func() { crash.Recover(journalRoot) }()

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("ResumeCanvas — canvas alignment and snapping toolkit")
			fmt.Println(version.String())
			return
		case "demo":
			if len(args) < 3 {
				fmt.Println("demo requires <outdir>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			journalRoot = abs
			if err := runDemo(abs); err != nil {
				l.Error("demo failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		case "replay":
			if len(args) < 3 {
				fmt.Println("replay requires <trace.json>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			journalRoot = filepath.Dir(abs)
			if err := runReplay(abs); err != nil {
				l.Error("replay failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		case "preset":
			if len(args) < 3 {
				fmt.Println("preset requires a subcommand")
				usage()
				os.Exit(2)
			}
			if err := runPreset(args[2], args[3:]); err != nil {
				l.Error("preset failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		case "ui":
			var doc string
			if len(args) >= 3 {
				doc = args[2]
			}
			if err := ui.Run(doc); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		}
	}

	usage()
}

// runDemo replays the built-in trace against the sample canvas, journals the
// session, and writes overlay exports showing the final frame's guides.
func runDemo(outDir string) error {
	l := applog.WithOperation(applog.WithComponent("cli"), "demo").With(slog.String("out", outDir))
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	doc := session.SampleCanvas()
	trace := session.SampleTrace()
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create outdir: %w", err)
	}
	tracePath := filepath.Join(outDir, "trace.json")
	if err := session.SaveTrace(tracePath, trace); err != nil {
		return err
	}

	results, sum, err := session.Replay(doc, cfg.Guides.Engine(), trace)
	if err != nil {
		return err
	}
	fmt.Println("Replay:", sum)
	for _, k := range sum.SnapKeys {
		fmt.Println("  snap:", k)
	}

	if err := journalReplay(outDir, trace, results); err != nil {
		l.Warn("journal failed", slog.Any("err", err))
	}

	// Export the last snapped frame so the overlay actually shows guides.
	last := results[len(results)-1].Result
	if el := doc.FindElement(trace.ActiveID); el != nil {
		el.Rect.X = last.CorrectedX
		el.Rect.Y = last.CorrectedY
	}
	opt := export.Options{Zoom: 1, Labels: true, GuideStyle: cfg.Renderer.Style()}
	exports := []struct {
		name string
		fn   func(string) error
	}{
		{"overlay.png", func(p string) error { return export.PNG(p, doc, last.Guides, opt) }},
		{"overlay.svg", func(p string) error { return export.SVG(p, doc, last.Guides, opt) }},
		{"overlay.pdf", func(p string) error { return export.PDF(p, doc, last.Guides, opt) }},
	}
	for _, e := range exports {
		path := filepath.Join(outDir, e.name)
		if err := e.fn(path); err != nil {
			return err
		}
		fmt.Println("Wrote", path)
	}
	l.Info("demo complete", slog.Int("frames", sum.Frames))
	return nil
}

// runReplay replays a recorded trace file against the sample canvas and
// prints the per-frame corrections plus a summary.
func runReplay(tracePath string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	trace, err := session.LoadTrace(tracePath)
	if err != nil {
		return err
	}
	doc := session.SampleCanvas()
	results, sum, err := session.Replay(doc, cfg.Guides.Engine(), trace)
	if err != nil {
		return err
	}
	for i, fr := range results {
		line := fmt.Sprintf("frame %3d raw=(%g,%g) corrected=(%g,%g)", i, fr.Frame.X, fr.Frame.Y, fr.Result.CorrectedX, fr.Result.CorrectedY)
		if fr.Result.SnapX != nil {
			line += " x:" + fr.Result.SnapX.Key
		}
		if fr.Result.SnapY != nil {
			line += " y:" + fr.Result.SnapY.Key
		}
		fmt.Println(line)
	}
	fmt.Println("Summary:", sum)

	if err := journalReplay(filepath.Dir(tracePath), trace, results); err != nil {
		applog.WithComponent("cli").Warn("journal failed", slog.Any("err", err))
	}
	return nil
}

// runPreset dispatches the preset subcommands against the user preset dir.
func runPreset(sub string, rest []string) error {
	dir, err := preset.DefaultDir()
	if err != nil {
		return err
	}
	switch sub {
	case "list":
		names, err := preset.List(dir)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("No presets saved.")
			return nil
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return nil
	case "save":
		if len(rest) < 1 {
			return fmt.Errorf("preset save requires <name>")
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := preset.Save(dir, preset.FromConfig(rest[0], "", cfg)); err != nil {
			return err
		}
		fmt.Println("Saved preset", rest[0])
		return nil
	case "apply":
		if len(rest) < 1 {
			return fmt.Errorf("preset apply requires <name>")
		}
		p, err := preset.Load(dir, rest[0])
		if err != nil {
			return err
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		p.Apply(&cfg)
		if err := config.Save(cfg); err != nil {
			return err
		}
		fmt.Println("Applied preset", p.Name)
		return nil
	case "export":
		if len(rest) < 1 {
			return fmt.Errorf("preset export requires <zip>")
		}
		if err := preset.ExportPack(dir, rest[0]); err != nil {
			return err
		}
		fmt.Println("Exported preset pack to", rest[0])
		return nil
	case "install":
		if len(rest) < 1 {
			return fmt.Errorf("preset install requires <zip>")
		}
		n, err := preset.InstallPack(dir, rest[0])
		if err != nil {
			return err
		}
		fmt.Printf("Installed %d preset(s)\n", n)
		return nil
	default:
		return fmt.Errorf("unknown preset subcommand %q", sub)
	}
}

// journalReplay records a replayed session in the local journal under root.
func journalReplay(root string, trace session.Trace, results []session.FrameResult) error {
	j, err := storage.Open(root)
	if err != nil {
		return err
	}
	defer j.Close()
	ctx := context.Background()
	sid, err := j.BeginSession(ctx, trace.ActiveID, trace.Zoom)
	if err != nil {
		return err
	}
	for i, fr := range results {
		ev := storage.FrameEvent{
			Seq: i, RawX: fr.Frame.X, RawY: fr.Frame.Y,
			CorrectedX: fr.Result.CorrectedX, CorrectedY: fr.Result.CorrectedY,
			GuideCount: len(fr.Result.Guides),
		}
		if fr.Result.SnapX != nil {
			ev.SnapXKey = fr.Result.SnapX.Key
		}
		if fr.Result.SnapY != nil {
			ev.SnapYKey = fr.Result.SnapY.Key
		}
		if err := j.RecordFrame(ctx, sid, ev); err != nil {
			return err
		}
	}
	return j.EndSession(ctx, sid, len(results))
}
