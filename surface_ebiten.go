package xmap

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// maxBatchTriangles keeps each DrawTriangles call within uint16 indices.
const maxBatchTriangles = 65535 / 3

// whitePixel is a 1x1 white image used as the source for flat triangles.
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.toRGBA())
	}
	return whitePixel
}

// EbitenSurface is a persistent offscreen canvas the Rasterizer draws into.
// The host blits it to the screen each frame.
type EbitenSurface struct {
	image *ebiten.Image
	w, h  int

	verts []ebiten.Vertex
	inds  []uint16
}

// NewEbitenSurface creates an empty surface. The canvas is allocated on the
// first Resize.
func NewEbitenSurface() *EbitenSurface {
	return &EbitenSurface{}
}

// Image returns the underlying canvas, or nil before the first Resize.
func (s *EbitenSurface) Image() *ebiten.Image {
	return s.image
}

// Resize implements Surface. Contents are discarded when the size changes.
func (s *EbitenSurface) Resize(w, h int) {
	if w == s.w && h == s.h && s.image != nil {
		return
	}
	if s.image != nil {
		s.image.Deallocate()
		s.image = nil
	}
	s.w, s.h = w, h
	if w > 0 && h > 0 {
		s.image = ebiten.NewImage(w, h)
	}
}

// Fill implements Surface.
func (s *EbitenSurface) Fill(c Color) {
	if s.image == nil {
		return
	}
	s.image.Fill(c.toRGBA())
}

// DrawTriangles implements Surface.
func (s *EbitenSurface) DrawTriangles(tris []Triangle) error {
	if s.image == nil {
		return nil
	}
	src := ensureWhitePixel()
	for start := 0; start < len(tris); start += maxBatchTriangles {
		end := min(start+maxBatchTriangles, len(tris))
		s.fillBatch(tris[start:end])
		s.image.DrawTriangles(s.verts, s.inds, src, &ebiten.DrawTrianglesOptions{})
	}
	return nil
}

// fillBatch converts tris into the reusable vertex and index buffers.
// Vertex colors are premultiplied.
func (s *EbitenSurface) fillBatch(tris []Triangle) {
	s.verts = s.verts[:0]
	s.inds = s.inds[:0]
	for i := range tris {
		t := &tris[i]
		a := float32(t.Color.A)
		r := float32(t.Color.R) * a
		g := float32(t.Color.G) * a
		b := float32(t.Color.B) * a
		base := uint16(len(s.verts))
		for _, p := range t.P {
			s.verts = append(s.verts, ebiten.Vertex{
				DstX:   float32(p.X),
				DstY:   float32(p.Y),
				SrcX:   0.5,
				SrcY:   0.5,
				ColorR: r,
				ColorG: g,
				ColorB: b,
				ColorA: a,
			})
		}
		s.inds = append(s.inds, base, base+1, base+2)
	}
}
