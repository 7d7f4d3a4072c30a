package xmap

import (
	"image/color"
	"math"
)

// PerspectiveFOV is the vertical field of view of the map camera, in degrees.
const PerspectiveFOV = 20

// Near and far clipping planes of the map camera, in world units.
const (
	CameraNear = 200
	CameraFar  = 50000
)

// RaySeedZ is the NDC depth used to unproject a pointer position when
// building a picking ray. Any depth strictly between the clip planes yields
// the same direction.
const RaySeedZ = 0.5

// DefaultBackground is the clear colour used when a theme supplies none.
const DefaultBackground = "#f9f9f9"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default mesh tint.
var ColorWhite = Color{1, 1, 1, 1}

// RGBA implements color.Color with premultiplied components.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.toRGBA().RGBA()
}

// toRGBA converts c to a premultiplied 8-bit color.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// ColorHex converts a packed 0xRRGGBB value to an opaque Color.
func ColorHex(v uint32) Color {
	return Color{
		R: float64(v>>16&0xff) / 255,
		G: float64(v>>8&0xff) / 255,
		B: float64(v&0xff) / 255,
		A: 1,
	}
}

// Vec2 is a 2D point in host widget pixels, origin top-left.
type Vec2 struct {
	X, Y float64
}

// Location is a world-space point on one floor of the attached model.
type Location struct {
	X, Y, Z float64
	Floor   int
}

// ScreenPosition is the result of projecting a Location into the viewport.
// Distance is the true 3D distance from the camera, not projected depth.
type ScreenPosition struct {
	X, Y     float64
	Distance float64
}

// offscreen is returned for locations on floors that exist but are hidden.
var offscreen = ScreenPosition{X: math.Inf(-1), Y: math.Inf(-1), Distance: math.Inf(1)}

// Offscreen reports whether p is the hidden-floor sentinel.
func (p ScreenPosition) Offscreen() bool {
	return math.IsInf(p.X, -1) && math.IsInf(p.Y, -1) && math.IsInf(p.Distance, 1)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
