package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/xmap"
)

type runOpts struct {
	script  string
	showFPS bool
	exit    bool
}

func (c *CLI) runCommand() *cobra.Command {
	var opts runOpts

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the demo map in a window",
		Long:  `Open an interactive window on the demo map. Click to pick, scroll to zoom.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(opts)
		},
	}

	cmd.Flags().StringVar(&opts.script, "script", "", "JSON test script to play")
	cmd.Flags().BoolVar(&opts.showFPS, "fps", false, "show FPS and TPS")
	cmd.Flags().BoolVar(&opts.exit, "exit", false, "close the window when the script finishes")

	return cmd
}

func (c *CLI) runView(opts runOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	rc := xmap.RunConfig{
		Title:              cfg.Title,
		Width:              cfg.Width,
		Height:             cfg.Height,
		ShowFPS:            opts.showFPS || cfg.Debug,
		ScreenshotDir:      cfg.ScreenshotDir,
		Markers:            xmap.NewMarkerLayer(),
		ExitWhenScriptDone: opts.exit,
	}
	if opts.script != "" {
		data, err := os.ReadFile(opts.script)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		if rc.Script, err = xmap.LoadTestScript(data); err != nil {
			return err
		}
	}

	model := xmap.BuildDemoMap(cfg.Demo)
	for _, f := range model.Floors() {
		rc.Markers.Add(f.Name, xmap.Location{Floor: f.Index})
	}

	c.Logger.Info("opening window", "width", cfg.Width, "height", cfg.Height, "floors", cfg.Demo.Floors)
	return xmap.Run(func(mv *xmap.MapView) error {
		if err := mv.LoadModel(model); err != nil {
			return err
		}
		return mv.ChangeTheme(cfg.Theme)
	}, rc, c.viewOptions(cfg)...)
}
