package xmap

import "github.com/go-gl/mathgl/mgl64"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ≈ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// computeLocalMatrix builds the object's local matrix.
//
// Composition order: Scale -> Rotate -> Translate(Position)
func computeLocalMatrix(o *Object) mgl64.Mat4 {
	t := mgl64.Translate3D(o.Position[0], o.Position[1], o.Position[2])
	r := o.Rotation.Normalize().Mat4()
	s := mgl64.Scale3D(o.Scale[0], o.Scale[1], o.Scale[2])
	return t.Mul4(r).Mul4(s)
}

// computeWorldMatrix composes local matrices from the root down to o without
// touching any cached state.
func computeWorldMatrix(o *Object) mgl64.Mat4 {
	m := computeLocalMatrix(o)
	for p := o.parent; p != nil; p = p.parent {
		m = computeLocalMatrix(p).Mul4(m)
	}
	return m
}

// updateWorldMatrix recomputes cached world matrices for n and its subtree.
// parentRecomputed forces recomputation of clean children whose parent moved.
func updateWorldMatrix(n Node, parent mgl64.Mat4, parentRecomputed bool) {
	o := n.Base()
	recompute := o.transformDirty || parentRecomputed
	if recompute {
		o.worldMatrix = parent.Mul4(computeLocalMatrix(o))
		o.transformDirty = false
	}
	for _, child := range o.children {
		updateWorldMatrix(child, o.worldMatrix, recompute)
	}
}

// --- Transform property setters ---

// SetPosition sets the object's local position and marks it dirty.
func (o *Object) SetPosition(x, y, z float64) {
	o.Position = mgl64.Vec3{x, y, z}
	o.transformDirty = true
}

// SetScale sets the object's local scale and marks it dirty.
func (o *Object) SetScale(sx, sy, sz float64) {
	o.Scale = mgl64.Vec3{sx, sy, sz}
	o.transformDirty = true
}

// SetRotation sets the object's rotation from XYZ Euler angles in radians
// and marks it dirty.
func (o *Object) SetRotation(x, y, z float64) {
	o.Rotation = mgl64.AnglesToQuat(x, y, z, mgl64.XYZ)
	o.transformDirty = true
}

// MarkDirty marks the object's transform as dirty, forcing recomputation
// on the next frame. Useful after bulk-setting fields directly.
func (o *Object) MarkDirty() {
	o.transformDirty = true
}

// --- Coordinate conversion ---

// LocalToWorld converts a point in this object's local space to world space.
// The world matrix is composed on demand so the result is current even
// before the next frame has been drawn.
func (o *Object) LocalToWorld(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(p, computeWorldMatrix(o))
}

// WorldToLocal converts a world-space point to this object's local space.
func (o *Object) WorldToLocal(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(p, computeWorldMatrix(o).Inv())
}
