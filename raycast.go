package xmap

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Ray is a half-line in world space. Direction is unit length.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Hit is a ray intersection with a mesh.
type Hit struct {
	Mesh     *Mesh
	Point    mgl64.Vec3
	Distance float64
	// Triangle is the index of the hit triangle within the mesh.
	Triangle int
}

// Raycaster builds rays from camera and pointer state and intersects them
// with meshes. One Raycaster is reused per MapView.
type Raycaster struct {
	Ray Ray
}

// SetFromCamera points the ray from the camera's current position through
// the given NDC point. ndc.Z() seeds the unprojection depth.
func (rc *Raycaster) SetFromCamera(ndc mgl64.Vec3, cam *Camera) {
	rc.Ray.Origin = cam.Position
	dir := cam.Unproject(ndc).Sub(cam.Position)
	if dir.Len() == 0 {
		dir = cam.Forward()
	}
	rc.Ray.Direction = dir.Normalize()
}

// IntersectNode tests the ray against every visible mesh under n and
// returns hits sorted nearest first.
func (rc *Raycaster) IntersectNode(n Node) []Hit {
	var hits []Hit
	Walk(n, func(node Node) bool {
		if !node.Base().Visible {
			return false
		}
		m, ok := node.(*Mesh)
		if !ok {
			return true
		}
		if hit, ok := rc.intersectMesh(m); ok {
			hits = insertHit(hits, hit)
		}
		return true
	})
	return hits
}

// intersectMesh returns the nearest triangle hit on m.
func (rc *Raycaster) intersectMesh(m *Mesh) (Hit, bool) {
	world := computeWorldMatrix(&m.Object)
	best := Hit{Distance: math.Inf(1)}
	found := false
	for i := 0; i < m.triangleCount(); i++ {
		a, b, c := m.worldTriangle(i, world)
		t, ok := intersectTriangle(rc.Ray, a, b, c, !m.DoubleSided)
		if ok && t < best.Distance {
			best = Hit{Mesh: m, Point: rc.Ray.At(t), Distance: t, Triangle: i}
			found = true
		}
	}
	return best, found
}

// insertHit keeps hits sorted by ascending distance.
func insertHit(hits []Hit, h Hit) []Hit {
	i := len(hits)
	for i > 0 && hits[i-1].Distance > h.Distance {
		i--
	}
	hits = append(hits, Hit{})
	copy(hits[i+1:], hits[i:])
	hits[i] = h
	return hits
}

// intersectTriangle is the Möller–Trumbore ray/triangle test. It returns
// the ray parameter of the hit. With cullBack, triangles facing away from
// the ray origin are ignored.
func intersectTriangle(r Ray, a, b, c mgl64.Vec3, cullBack bool) (float64, bool) {
	const eps = 1e-9
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if cullBack && det < eps {
		return 0, false
	}
	if math.Abs(det) < eps {
		return 0, false
	}
	inv := 1 / det
	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	if t < eps {
		return 0, false
	}
	return t, true
}
