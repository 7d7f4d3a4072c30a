package xmap

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNewPlane(t *testing.T) {
	p := NewPlane("p", 4, 2, ColorWhite)
	if p.triangleCount() != 2 {
		t.Fatalf("triangles = %d, want 2", p.triangleCount())
	}
	if !p.DoubleSided {
		t.Error("plane should be double sided")
	}
	a, b, c := p.worldTriangle(0, mgl64.Ident4())
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Z() <= 0 {
		t.Errorf("plane normal %v does not face +Z", n)
	}
	if p.Vertices[2] != (mgl64.Vec3{2, 1, 0}) {
		t.Errorf("corner = %v", p.Vertices[2])
	}
}

func TestNewBoxFacesOutward(t *testing.T) {
	const h = 3
	b := NewBox("b", 2, 4, h, ColorWhite)
	if b.triangleCount() != 12 {
		t.Fatalf("triangles = %d, want 12", b.triangleCount())
	}
	if b.DoubleSided {
		t.Error("box should be single sided")
	}
	center := mgl64.Vec3{0, 0, h / 2.0}
	for i := range b.triangleCount() {
		p0, p1, p2 := b.worldTriangle(i, mgl64.Ident4())
		n := p1.Sub(p0).Cross(p2.Sub(p0))
		centroid := p0.Add(p1).Add(p2).Mul(1.0 / 3)
		if n.Dot(centroid.Sub(center)) <= 0 {
			t.Errorf("triangle %d faces inward", i)
		}
	}
}

func TestMeshWorldTriangle(t *testing.T) {
	m := NewMesh("m", []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, []uint16{0, 1, 2, 0}, ColorWhite)
	if m.triangleCount() != 1 {
		t.Errorf("incomplete triangle counted: %d", m.triangleCount())
	}
	a, _, c := m.worldTriangle(0, mgl64.Translate3D(10, 20, 30))
	assertVec3(t, "a", a, mgl64.Vec3{10, 20, 30}, epsilon)
	assertVec3(t, "c", c, mgl64.Vec3{10, 21, 30}, epsilon)
}
