package xmap

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the settings of a map viewer window.
type Config struct {
	Title         string  `toml:"title"`
	Width         int     `toml:"width"`
	Height        int     `toml:"height"`
	FrameRate     int     `toml:"frame_rate"`
	Debug         bool    `toml:"debug"`
	LogLevel      string  `toml:"log_level"`
	ScreenshotDir string  `toml:"screenshot_dir"`
	Theme         Theme   `toml:"theme"`
	Demo          DemoMap `toml:"demo"`
}

// DemoMap describes the procedural map built by the viewer.
type DemoMap struct {
	Floors   int     `toml:"floors"`
	FloorGap float64 `toml:"floor_gap"`
	Size     float64 `toml:"size"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() Config {
	return Config{
		Title:         "xmap",
		Width:         960,
		Height:        640,
		FrameRate:     defaultFrameRate,
		LogLevel:      "info",
		ScreenshotDir: "screenshots",
		Theme:         Theme{Background: DefaultBackground},
		Demo: DemoMap{
			Floors:   3,
			FloorGap: 400,
			Size:     2000,
		},
	}
}

// DecodeConfig reads TOML from r over the defaults.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a TOML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	defer f.Close()
	return DecodeConfig(f)
}

// Validate reports settings the viewer cannot run with.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: invalid size %dx%d", c.Width, c.Height)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("config: invalid frame_rate %d", c.FrameRate)
	}
	if c.Demo.Floors < 0 {
		return fmt.Errorf("config: invalid demo.floors %d", c.Demo.Floors)
	}
	return nil
}

// Options returns the MapView options implied by the config.
func (c Config) Options() []Option {
	return []Option{
		WithFrameRate(c.FrameRate),
		WithDebug(c.Debug),
	}
}
