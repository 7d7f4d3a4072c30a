package xmap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Theme.Background != DefaultBackground {
		t.Errorf("theme = %v", cfg.Theme.Background)
	}
}

func TestDecodeConfig(t *testing.T) {
	data := `
title = "Campus"
width = 1280
height = 720
frame_rate = 30
debug = true

[theme.background]
color = "#112233"
alpha = 0.5

[demo]
floors = 5
floor_gap = 250.0
`
	cfg, err := DecodeConfig(strings.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Title != "Campus" || cfg.Width != 1280 || cfg.Height != 720 || cfg.FrameRate != 30 || !cfg.Debug {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Demo.Floors != 5 || cfg.Demo.FloorGap != 250 {
		t.Errorf("demo = %+v", cfg.Demo)
	}
	// Unset keys keep their defaults.
	if cfg.Demo.Size != 2000 || cfg.ScreenshotDir != "screenshots" {
		t.Errorf("defaults lost: %+v", cfg)
	}

	bg := resolveBackground(cfg.Theme.Background)
	if !approxEqual(bg.A, 0.5, 1e-9) || !approxEqual(bg.R, 0x11/255.0, 1e-9) {
		t.Errorf("decoded background = %+v", bg)
	}
}

func TestDecodeConfigStringBackground(t *testing.T) {
	cfg, err := DecodeConfig(strings.NewReader(`theme = { background = "#abcdef" }`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Theme.Background != "#abcdef" {
		t.Errorf("background = %v", cfg.Theme.Background)
	}
}

func TestDecodeConfigErrors(t *testing.T) {
	tests := []struct {
		name, data, want string
	}{
		{"syntax", "width = ", "decode config"},
		{"size", "width = 0", "invalid size"},
		{"frame rate", "frame_rate = -1", "frame_rate"},
		{"floors", "[demo]\nfloors = -2", "demo.floors"},
	}
	for _, tt := range tests {
		_, err := DecodeConfig(strings.NewReader(tt.data))
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: err = %v, want containing %q", tt.name, err, tt.want)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xmap.toml")
	if err := os.WriteFile(path, []byte("width = 300\nheight = 200\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 300 || cfg.Height != 200 {
		t.Errorf("size = %dx%d", cfg.Width, cfg.Height)
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing file loaded")
	}
}

func TestConfigOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FrameRate = 24
	cfg.Debug = true
	mv := NewMapView(NewStaticHost(1, 1), cfg.Options()...)
	if mv.frameRate != 24 || !mv.debug {
		t.Errorf("frameRate=%d debug=%v", mv.frameRate, mv.debug)
	}
}
