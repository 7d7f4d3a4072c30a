// Package ggrender draws xmap frames with the gg 2D library, off-screen and
// without a window. It backs the snapshot command and golden-image tests.
package ggrender

import (
	"fmt"
	"image"
	"io"

	"github.com/gogpu/gg"

	"github.com/phanxgames/xmap"
)

// Surface is an xmap.Surface backed by a gg.Context. The context is
// allocated on the first Resize with a positive size.
type Surface struct {
	dc *gg.Context
}

// NewSurface creates an empty surface.
func NewSurface() *Surface {
	return &Surface{}
}

// Resize implements xmap.Surface. Non-positive sizes release the canvas.
func (s *Surface) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		s.Close()
		return
	}
	if s.dc == nil {
		s.dc = gg.NewContext(w, h)
		return
	}
	// Resize only fails on non-positive sizes, handled above.
	_ = s.dc.Resize(w, h)
}

// Fill implements xmap.Surface.
func (s *Surface) Fill(c xmap.Color) {
	if s.dc == nil {
		return
	}
	s.dc.ClearWithColor(gg.RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
}

// DrawTriangles implements xmap.Surface. Triangles are filled in order so
// later ones cover earlier ones.
func (s *Surface) DrawTriangles(tris []xmap.Triangle) error {
	if s.dc == nil {
		return nil
	}
	for i, t := range tris {
		s.dc.SetRGBA(t.Color.R, t.Color.G, t.Color.B, t.Color.A)
		s.dc.MoveTo(t.P[0].X, t.P[0].Y)
		s.dc.LineTo(t.P[1].X, t.P[1].Y)
		s.dc.LineTo(t.P[2].X, t.P[2].Y)
		s.dc.ClosePath()
		if err := s.dc.Fill(); err != nil {
			return fmt.Errorf("fill triangle %d: %w", i, err)
		}
	}
	return nil
}

// Size returns the canvas size in pixels.
func (s *Surface) Size() (int, int) {
	if s.dc == nil {
		return 0, 0
	}
	return s.dc.Width(), s.dc.Height()
}

// Image returns the current frame, or nil before the first Resize.
func (s *Surface) Image() image.Image {
	if s.dc == nil {
		return nil
	}
	return s.dc.Image()
}

// SavePNG writes the current frame to path.
func (s *Surface) SavePNG(path string) error {
	if s.dc == nil {
		return fmt.Errorf("save %s: surface has no size", path)
	}
	if err := s.dc.SavePNG(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// EncodePNG writes the current frame as PNG to w.
func (s *Surface) EncodePNG(w io.Writer) error {
	if s.dc == nil {
		return fmt.Errorf("encode png: surface has no size")
	}
	return s.dc.EncodePNG(w)
}

// Close releases the canvas.
func (s *Surface) Close() error {
	if s.dc == nil {
		return nil
	}
	err := s.dc.Close()
	s.dc = nil
	return err
}
