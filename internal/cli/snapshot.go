package cli

import (
	"github.com/spf13/cobra"

	"github.com/phanxgames/xmap"
	"github.com/phanxgames/xmap/ggrender"
)

type snapshotOpts struct {
	output     string
	width      int
	height     int
	background string
	floor      int
}

func (c *CLI) snapshotCommand() *cobra.Command {
	var opts snapshotOpts

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render one frame of the demo map to PNG",
		Long:  `Render one frame of the demo map off-screen and write it as a PNG file. No window is opened.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.snapshot(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "xmap.png", "output PNG path")
	cmd.Flags().IntVar(&opts.width, "width", 0, "frame width (default from config)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "frame height (default from config)")
	cmd.Flags().StringVar(&opts.background, "background", "", "background color (default from config)")
	cmd.Flags().IntVar(&opts.floor, "floor", -1, "show only this floor")

	return cmd
}

func (c *CLI) snapshot(opts snapshotOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if opts.width > 0 {
		cfg.Width = opts.width
	}
	if opts.height > 0 {
		cfg.Height = opts.height
	}
	if opts.background != "" {
		cfg.Theme = xmap.Theme{Background: opts.background}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	model := xmap.BuildDemoMap(cfg.Demo)
	if opts.floor >= 0 {
		if !model.ShowFloor(opts.floor) {
			return &xmap.InvalidFloorError{Floor: opts.floor}
		}
	}

	surface, err := ggrender.Snapshot(model, cfg.Theme, cfg.Width, cfg.Height, c.viewOptions(cfg)...)
	if err != nil {
		return err
	}
	defer surface.Close()

	if err := surface.SavePNG(opts.output); err != nil {
		return err
	}
	c.Logger.Info("snapshot written", "path", opts.output, "width", cfg.Width, "height", cfg.Height)
	return nil
}
