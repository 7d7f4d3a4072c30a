// Package cli implements the xmapview command-line interface.
package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phanxgames/xmap"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	// levelSet is true once --verbose has forced a level, so the config
	// file's log_level does not override it.
	levelSet bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: xmap.NewLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	c.levelSet = true
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "xmapview",
		Short:        "xmapview renders multi-floor 3D maps",
		Long:         `xmapview opens an interactive window on a procedural multi-floor map, or renders a single frame of it to a PNG file.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "TOML config file")

	root.AddCommand(c.runCommand())
	root.AddCommand(c.snapshotCommand())

	return root
}

// loadConfig reads the --config file, or the defaults when none is given,
// and applies its log level unless --verbose already set one.
func (c *CLI) loadConfig() (xmap.Config, error) {
	cfg := xmap.DefaultConfig()
	if c.configPath != "" {
		var err error
		if cfg, err = xmap.LoadConfig(c.configPath); err != nil {
			return xmap.Config{}, err
		}
		c.Logger.Debug("config loaded", "path", c.configPath)
	}
	if !c.levelSet && cfg.LogLevel != "" {
		level, err := log.ParseLevel(cfg.LogLevel)
		if err != nil {
			return xmap.Config{}, fmt.Errorf("config: log_level: %w", err)
		}
		c.Logger.SetLevel(level)
	}
	return cfg, nil
}

// viewOptions returns the MapView options shared by all commands.
func (c *CLI) viewOptions(cfg xmap.Config) []xmap.Option {
	return append(cfg.Options(), xmap.WithLogger(c.Logger))
}
