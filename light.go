package xmap

import "github.com/go-gl/mathgl/mgl64"

// LightType distinguishes ambient from directional lights.
type LightType uint8

const (
	LightAmbient     LightType = iota // uniform light from every direction
	LightDirectional                  // parallel light from Position toward Target
)

// Light is a scene node contributing to flat shading of meshes.
type Light struct {
	Object

	Type      LightType
	Color     Color
	Intensity float64
	// Target is the world point a directional light shines at.
	Target mgl64.Vec3
}

// NewAmbientLight creates an ambient light from a packed 0xRRGGBB color.
func NewAmbientLight(rgb uint32) *Light {
	l := &Light{Type: LightAmbient, Color: ColorHex(rgb), Intensity: 1}
	initObject(&l.Object, "ambient")
	return l
}

// NewDirectionalLight creates a directional light shining from position
// toward the origin.
func NewDirectionalLight(rgb uint32, intensity float64, position mgl64.Vec3) *Light {
	l := &Light{Type: LightDirectional, Color: ColorHex(rgb), Intensity: intensity}
	initObject(&l.Object, "directional")
	l.Position = position
	return l
}

// direction returns the unit vector pointing from the surface toward the light.
func (l *Light) direction() mgl64.Vec3 {
	d := l.Position.Sub(l.Target)
	if d.Len() == 0 {
		return mgl64.Vec3{0, 0, 1}
	}
	return d.Normalize()
}

// defaultLights returns the standard map lighting rig.
func defaultLights() []*Light {
	return []*Light{
		NewAmbientLight(0x747474),
		NewDirectionalLight(0x888888, 1.2, mgl64.Vec3{4000, 4000, 4000}.Normalize()),
		NewDirectionalLight(0x333333, 1, mgl64.Vec3{-4000, -4000, 4000}.Normalize()),
	}
}

// shade computes the flat-shaded color of a surface with the given normal.
func shade(base Color, normal mgl64.Vec3, lights []*Light) Color {
	var r, g, b float64
	for _, l := range lights {
		if !l.Visible {
			continue
		}
		k := l.Intensity
		if l.Type == LightDirectional {
			k *= max(0, normal.Dot(l.direction()))
		}
		r += l.Color.R * k
		g += l.Color.G * k
		b += l.Color.B * k
	}
	return Color{
		R: clamp01(base.R * r),
		G: clamp01(base.G * g),
		B: clamp01(base.B * b),
		A: base.A,
	}
}
