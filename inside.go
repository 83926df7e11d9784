package meshsdf

import "gonum.org/v1/gonum/spatial/r3"

// IsInside reports whether p lies inside the closed surface formed by tris.
// A ray is cast from p along +X and p is inside if it crosses the surface an
// odd number of times. The result is only meaningful for closed,
// non self-intersecting meshes.
//
// Rays that graze an edge or vertex are resolved as if the ray origin had
// been moved by an infinitesimal amount in +Y and a far smaller amount in +Z.
// An edge shared by two triangles is thus crossed through exactly one of
// them and the result does not depend on triangle order.
func IsInside(p r3.Vec, tris []r3.Triangle) bool {
	crossings := 0
	for i := range tris {
		if crossesPlusX(p, &tris[i]) {
			crossings++
		}
	}
	return crossings%2 == 1
}

// crossesPlusX reports whether the ray starting at p in direction +X
// crosses t strictly ahead of p.
func crossesPlusX(p r3.Vec, t *r3.Triangle) bool {
	a, b, c := t[0], t[1], t[2]
	// Twice the signed area of t projected onto the YZ plane.
	area := yzEdge(a, b, c)
	if area == 0 {
		// Ray parallel to the triangle's plane.
		return false
	}
	if area < 0 {
		// Orient projection counter clockwise.
		b, c = c, b
	}
	wa := yzEdge(b, c, p)
	if !owns(wa, b, c) {
		return false
	}
	wb := yzEdge(c, a, p)
	if !owns(wb, c, a) {
		return false
	}
	wc := yzEdge(a, b, p)
	if !owns(wc, a, b) {
		return false
	}
	sum := wa + wb + wc
	if sum == 0 {
		return false
	}
	// Barycentric interpolation of the crossing point's X coordinate.
	x := (wa*a.X + wb*b.X + wc*c.X) / sum
	return x > p.X
}

// owns reports whether a point with edge function value w relative to the
// directed edge e0->e1 is on the inner side of the edge. Points exactly on
// the edge are decided by the sign of the perturbed edge function.
func owns(w float64, e0, e1 r3.Vec) bool {
	if w != 0 {
		return w > 0
	}
	dy := e1.Y - e0.Y
	dz := e1.Z - e0.Z
	return dz < 0 || (dz == 0 && dy > 0)
}

// yzEdge returns the edge function of p relative to the directed edge
// e0->e1 projected onto the YZ plane. It is positive when p is to the left
// of the edge. Endpoints are evaluated in a canonical order so that
// reversing the edge exactly negates the result.
func yzEdge(e0, e1, p r3.Vec) float64 {
	if e1.Y < e0.Y || (e1.Y == e0.Y && e1.Z < e0.Z) {
		return -edgeFunc(e1, e0, p)
	}
	return edgeFunc(e0, e1, p)
}

func edgeFunc(e0, e1, p r3.Vec) float64 {
	return (e1.Y-e0.Y)*(p.Z-e0.Z) - (e1.Z-e0.Z)*(p.Y-e0.Y)
}
