package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adnsv/svgrender/errs"
	"github.com/adnsv/svgrender/model"
	"github.com/charmbracelet/log"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	fn := filepath.Join(dir, "svgrender.yaml")
	if err := os.WriteFile(fn, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return fn
}

func TestSelectionOverrides(t *testing.T) {
	dir := t.TempDir()
	fn := writeConfig(t, dir, "glob: \"*-src.svg\"\nmarker: guide\n")

	tests := []struct {
		name    string
		sel     selection
		check   func(t *testing.T, cfg *model.Config)
		wantErr errs.Code
	}{
		{
			name: "config only",
			sel:  selection{configFN: fn},
			check: func(t *testing.T, cfg *model.Config) {
				if cfg.Glob != "*-src.svg" || cfg.Marker != "guide" {
					t.Errorf("cfg = %+v", cfg)
				}
			},
		},
		{
			name: "assets replace glob",
			sel:  selection{configFN: fn, assets: []string{"FM", "ATV"}},
			check: func(t *testing.T, cfg *model.Config) {
				if cfg.Glob != "" || len(cfg.Assets) != 2 {
					t.Errorf("glob=%q assets=%v", cfg.Glob, cfg.Assets)
				}
			},
		},
		{
			name: "flags",
			sel:  selection{configFN: fn, src: "a", out: "b", marker: "m", tool: "/opt/inkscape"},
			check: func(t *testing.T, cfg *model.Config) {
				if cfg.SourceDir != "a" || cfg.OutputDir != "b" || cfg.Marker != "m" || cfg.Tool.Exec != "/opt/inkscape" {
					t.Errorf("cfg = %+v", cfg)
				}
			},
		},
		{
			name:    "assets and glob flags conflict",
			sel:     selection{configFN: fn, assets: []string{"FM"}, glob: "*.svg"},
			wantErr: errs.CodeConfig,
		},
		{
			name:    "missing config file",
			sel:     selection{configFN: filepath.Join(dir, "nope.yaml")},
			wantErr: errs.CodeConfig,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := tt.sel.load()
			if tt.wantErr != "" {
				if !errs.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestRunStatus(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "res-src")
	if err := os.MkdirAll(src, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "knob18-src.svg"), []byte("<svg/>"), 0644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	s := &selection{configFN: writeConfig(t, dir, "source-dir: res-src\noutput-dir: res\n")}
	if err := runStatus(&buf, s); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "knob18") || !strings.Contains(out, "missing-output") {
		t.Errorf("status output = %q", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "res")); !os.IsNotExist(err) {
		t.Error("status must not create the output directory")
	}
}

func TestRunInit(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "svgrender.yaml")
	logger := log.New(io.Discard)

	if err := runInit(fn, false, logger); err != nil {
		t.Fatal(err)
	}
	cfg, err := model.LoadConfig(fn)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Marker != model.DefaultMarker {
		t.Errorf("Marker = %q", cfg.Marker)
	}

	if err := runInit(fn, false, logger); !errs.Is(err, errs.CodeConfig) {
		t.Errorf("second init: err = %v, want CONFIG error", err)
	}
	if err := runInit(fn, true, logger); err != nil {
		t.Errorf("forced init: %v", err)
	}
}

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)
	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug message written at info level: %q", buf.String())
	}
	logger.Info("Processing res/FM.svg...")
	if !strings.Contains(buf.String(), "Processing res/FM.svg...") {
		t.Errorf("info message missing: %q", buf.String())
	}
}
