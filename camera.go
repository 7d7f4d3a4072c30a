package xmap

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween/ease"
)

// Camera is the perspective camera of a MapView. The field of view and clip
// planes are fixed; aspect ratio and sprite scale follow the viewport size.
type Camera struct {
	// Position is the eye position in world space.
	Position mgl64.Vec3
	// Target is the world point the camera looks at.
	Target mgl64.Vec3
	// Up is the world up direction. Maps are Z-up.
	Up mgl64.Vec3

	fov    float64
	near   float64
	far    float64
	aspect float64

	// spriteScale converts world size at unit distance to pixels.
	spriteScale float64

	projection mgl64.Mat4
}

// newCamera creates a camera for a w×h viewport looking down at the origin.
func newCamera(w, h float64) *Camera {
	c := &Camera{
		Position: mgl64.Vec3{0, -3000, 3000},
		Up:       mgl64.Vec3{0, 0, 1},
		fov:      PerspectiveFOV,
		near:     CameraNear,
		far:      CameraFar,
		aspect:   1,
	}
	if !c.Recompute(w, h) {
		c.UpdateProjection()
	}
	return c
}

// Recompute updates aspect ratio, sprite scale and projection for a w×h
// viewport and reports whether it did. Non-positive sizes are ignored.
func (c *Camera) Recompute(w, h float64) bool {
	if w <= 0 || h <= 0 {
		return false
	}
	c.aspect = w / h
	c.spriteScale = 1 / (h / 2 / math.Tan(mgl64.DegToRad(c.fov)/2))
	c.UpdateProjection()
	return true
}

// UpdateProjection rebuilds the projection matrix from fov, aspect and
// clip planes.
func (c *Camera) UpdateProjection() {
	c.projection = mgl64.Perspective(mgl64.DegToRad(c.fov), c.aspect, c.near, c.far)
}

// FOV returns the vertical field of view in degrees.
func (c *Camera) FOV() float64 { return c.fov }

// Aspect returns the current aspect ratio.
func (c *Camera) Aspect() float64 { return c.aspect }

// SpriteScale returns 1 / (halfHeight / tan(halfFov)).
func (c *Camera) SpriteScale() float64 { return c.spriteScale }

// Near returns the near clip distance.
func (c *Camera) Near() float64 { return c.near }

// Far returns the far clip distance.
func (c *Camera) Far() float64 { return c.far }

// Projection returns the projection matrix as of the last UpdateProjection.
func (c *Camera) Projection() mgl64.Mat4 { return c.projection }

// View returns the view matrix for the camera's current placement.
func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.Target, c.Up)
}

// ViewProjection returns Projection * View.
func (c *Camera) ViewProjection() mgl64.Mat4 {
	return c.projection.Mul4(c.View())
}

// LookAt points the camera at target from its current position.
func (c *Camera) LookAt(target mgl64.Vec3) {
	c.Target = target
}

// Project maps a world point to NDC. The z component is the NDC depth.
func (c *Camera) Project(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(p, c.ViewProjection())
}

// Unproject maps an NDC point back to world space.
func (c *Camera) Unproject(ndc mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(ndc, c.ViewProjection().Inv())
}

// Forward returns the unit view direction.
func (c *Camera) Forward() mgl64.Vec3 {
	d := c.Target.Sub(c.Position)
	if d.Len() == 0 {
		return mgl64.Vec3{0, 0, -1}
	}
	return d.Normalize()
}

// FlyTo animates the camera position and target over duration seconds on
// the given animator. The returned tween can be stopped early.
func (c *Camera) FlyTo(a *Animator, position, target mgl64.Vec3, duration float32, easeFn ease.TweenFunc) *Tween {
	if easeFn == nil {
		easeFn = ease.InOutQuad
	}
	t := NewTween(duration, easeFn)
	for i := 0; i < 3; i++ {
		t.Add(&c.Position[i], position[i])
		t.Add(&c.Target[i], target[i])
	}
	a.Add(t)
	return t
}
