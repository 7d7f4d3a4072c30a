package xmap

import (
	"github.com/go-gl/mathgl/mgl64"
)

// renderCommand is one shaded triangle waiting in the depth buffer.
type renderCommand struct {
	tri   Triangle
	depth float64 // mean NDC z; larger is farther
	order int     // emission order, for stable ties
}

// emit walks the scene depth-first and appends a command for every visible,
// front-facing triangle in front of the camera.
func (r *Rasterizer) emit(scene *Scene, cam *Camera, dst []renderCommand) []renderCommand {
	viewProj := cam.ViewProjection()
	lights := scene.Lights()

	var visit func(n Node)
	visit = func(n Node) {
		o := n.Base()
		if !o.Visible {
			return
		}
		if m, ok := n.(*Mesh); ok {
			dst = r.emitMesh(m, cam, viewProj, lights, dst)
		}
		for _, child := range o.children {
			visit(child)
		}
	}
	visit(scene.root)
	return dst
}

// emitMesh projects, culls and shades every triangle of m.
func (r *Rasterizer) emitMesh(m *Mesh, cam *Camera, viewProj mgl64.Mat4, lights []*Light, dst []renderCommand) []renderCommand {
	world := m.worldMatrix
	for i := 0; i < m.triangleCount(); i++ {
		a, b, c := m.worldTriangle(i, world)

		normal := b.Sub(a).Cross(c.Sub(a))
		if normal.Len() == 0 {
			continue
		}
		normal = normal.Normalize()
		if normal.Dot(cam.Position.Sub(a)) <= 0 {
			if !m.DoubleSided {
				continue
			}
			normal = normal.Mul(-1)
		}

		var ndc [3]mgl64.Vec3
		behind := false
		for k, p := range [3]mgl64.Vec3{a, b, c} {
			clip := viewProj.Mul4x1(p.Vec4(1))
			if clip.W() <= 0 {
				behind = true
				break
			}
			ndc[k] = clip.Vec3().Mul(1 / clip.W())
		}
		if behind || outsideFrustum(ndc) {
			continue
		}

		col := m.Color
		if len(lights) > 0 {
			col = shade(m.Color, normal, lights)
		}

		var tri Triangle
		for k := range ndc {
			x, y := r.viewport.NDCToScreen(ndc[k].X(), ndc[k].Y())
			tri.P[k] = Vec2{X: x, Y: y}
		}
		tri.Color = col

		r.order++
		dst = append(dst, renderCommand{
			tri:   tri,
			depth: (ndc[0].Z() + ndc[1].Z() + ndc[2].Z()) / 3,
			order: r.order,
		})
	}
	return dst
}

// outsideFrustum reports whether all three vertices lie beyond the same
// clip plane.
func outsideFrustum(ndc [3]mgl64.Vec3) bool {
	for axis := 0; axis < 3; axis++ {
		below, above := 0, 0
		for _, v := range ndc {
			if v[axis] < -1 {
				below++
			} else if v[axis] > 1 {
				above++
			}
		}
		if below == 3 || above == 3 {
			return true
		}
	}
	return false
}

// sortByDepth performs a stable, non-allocating merge sort of the depth
// buffer, far to near.
func (r *Rasterizer) sortByDepth() {
	n := len(r.depth)
	if n <= 1 {
		return
	}
	if cap(r.sortBuf) < n {
		r.sortBuf = make([]renderCommand, n)
	}
	r.sortBuf = r.sortBuf[:n]

	a := r.depth
	b := r.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}

	if swapped {
		copy(r.depth, r.sortBuf)
	}
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []renderCommand, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if commandLessOrEqual(src[i], src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < hi {
		dst[k] = src[j]
		j++
		k++
	}
}

// commandLessOrEqual orders farther triangles first, then emission order.
func commandLessOrEqual(a, b renderCommand) bool {
	if a.depth != b.depth {
		return a.depth > b.depth
	}
	return a.order <= b.order
}
