package cli

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/phanxgames/xmap"
)

func execute(t *testing.T, args ...string) (*CLI, error) {
	t.Helper()
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&buf)
	root.SetErr(&buf)
	return c, root.Execute()
}

func TestRootCommandHasSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	for _, name := range []string{"run", "snapshot"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestSnapshotWritesPNG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frame.png")
	if _, err := execute(t, "snapshot", "-o", out, "--width", "80", "--height", "60", "--background", "#112233"); err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 80 || b.Dy() != 60 {
		t.Errorf("size = %dx%d, want 80x60", b.Dx(), b.Dy())
	}
}

func TestSnapshotInvalidFloor(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frame.png")
	_, err := execute(t, "snapshot", "-o", out, "--width", "40", "--height", "30", "--floor", "99")
	if !errors.Is(err, xmap.ErrInvalidFloor) {
		t.Fatalf("err = %v, want ErrInvalidFloor", err)
	}
	if _, statErr := os.Stat(out); statErr == nil {
		t.Error("no file should be written for an invalid floor")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xmap.toml")
	data := "width = 320\nheight = 240\nlog_level = \"warn\"\n[demo]\nfloors = 1\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(&bytes.Buffer{}, LogInfo)
	c.configPath = path
	cfg, err := c.loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 320 || cfg.Height != 240 || cfg.Demo.Floors != 1 {
		t.Errorf("cfg = %+v", cfg)
	}
	if c.Logger.GetLevel() != log.WarnLevel {
		t.Errorf("level = %v, want warn", c.Logger.GetLevel())
	}
}

func TestVerboseWinsOverConfigLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xmap.toml")
	if err := os.WriteFile(path, []byte("log_level = \"error\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(&bytes.Buffer{}, LogInfo)
	c.SetLogLevel(LogDebug)
	c.configPath = path
	if _, err := c.loadConfig(); err != nil {
		t.Fatal(err)
	}
	if c.Logger.GetLevel() != LogDebug {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
}

func TestLoadConfigBadLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xmap.toml")
	if err := os.WriteFile(path, []byte("log_level = \"loud\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c := New(&bytes.Buffer{}, LogInfo)
	c.configPath = path
	_, err := c.loadConfig()
	if err == nil || !strings.Contains(err.Error(), "log_level") {
		t.Fatalf("err = %v, want log_level error", err)
	}
}
