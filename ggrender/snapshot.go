package ggrender

import (
	"fmt"

	"github.com/phanxgames/xmap"
)

// Snapshot renders model once into a w×h frame with theme applied and
// returns the surface holding the result.
func Snapshot(model xmap.Model, theme xmap.Theme, w, h int, opts ...xmap.Option) (*Surface, error) {
	surface := NewSurface()
	host := xmap.NewStaticHost(w, h)
	opts = append(opts, xmap.WithRenderer(xmap.NewRasterizer(surface)))
	mv := xmap.NewMapView(host, opts...)
	mv.InitView()
	defer mv.Destroy()

	if err := mv.LoadModel(model); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	if err := mv.ChangeTheme(theme); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	if !mv.Tick() {
		return nil, fmt.Errorf("snapshot: frame was not drawn")
	}
	if mv.Stats().Errors > 0 {
		return nil, fmt.Errorf("snapshot: frame failed")
	}
	return surface, nil
}
