package xmap

import "github.com/go-gl/mathgl/mgl64"

// Mesh is a triangle list in local space drawn with a flat, lit color.
type Mesh struct {
	Object

	// Vertices in local space.
	Vertices []mgl64.Vec3
	// Indices into Vertices, three per triangle, counter-clockwise front faces.
	Indices []uint16
	// Color is the unlit base color.
	Color Color
	// DoubleSided draws back faces as well.
	DoubleSided bool
}

// NewMesh creates a mesh node from raw geometry.
func NewMesh(name string, vertices []mgl64.Vec3, indices []uint16, c Color) *Mesh {
	m := &Mesh{Vertices: vertices, Indices: indices, Color: c}
	initObject(&m.Object, name)
	return m
}

// NewPlane creates a w×d rectangle in the XY plane centered on the origin,
// facing +Z.
func NewPlane(name string, w, d float64, c Color) *Mesh {
	hw, hd := w/2, d/2
	verts := []mgl64.Vec3{
		{-hw, -hd, 0},
		{hw, -hd, 0},
		{hw, hd, 0},
		{-hw, hd, 0},
	}
	m := NewMesh(name, verts, []uint16{0, 1, 2, 0, 2, 3}, c)
	m.DoubleSided = true
	return m
}

// NewBox creates an axis-aligned box with its base centered on the origin,
// extruded h units along +Z.
func NewBox(name string, w, d, h float64, c Color) *Mesh {
	hw, hd := w/2, d/2
	verts := []mgl64.Vec3{
		{-hw, -hd, 0}, {hw, -hd, 0}, {hw, hd, 0}, {-hw, hd, 0},
		{-hw, -hd, h}, {hw, -hd, h}, {hw, hd, h}, {-hw, hd, h},
	}
	indices := []uint16{
		0, 2, 1, 0, 3, 2, // bottom
		4, 5, 6, 4, 6, 7, // top
		0, 1, 5, 0, 5, 4, // front
		1, 2, 6, 1, 6, 5, // right
		2, 3, 7, 2, 7, 6, // back
		3, 0, 4, 3, 4, 7, // left
	}
	return NewMesh(name, verts, indices, c)
}

// triangleCount returns the number of complete triangles in the index list.
func (m *Mesh) triangleCount() int {
	return len(m.Indices) / 3
}

// worldTriangle returns triangle i transformed by the given world matrix.
func (m *Mesh) worldTriangle(i int, world mgl64.Mat4) (a, b, c mgl64.Vec3) {
	i0, i1, i2 := m.Indices[i*3], m.Indices[i*3+1], m.Indices[i*3+2]
	a = mgl64.TransformCoordinate(m.Vertices[i0], world)
	b = mgl64.TransformCoordinate(m.Vertices[i1], world)
	c = mgl64.TransformCoordinate(m.Vertices[i2], world)
	return
}
