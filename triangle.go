package meshsdf

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Feature identifies the part of a triangle closest to a query point.
type Feature uint8

const (
	FeatureA Feature = iota // vertex a
	FeatureB                // vertex b
	FeatureC                // vertex c
	FeatureAB               // edge a-b
	FeatureAC               // edge a-c
	FeatureBC               // edge b-c
	FeatureFace
	// FeatureDegenerate is reported for triangles with collinear or
	// coincident corners when the closest feature could not be resolved.
	// The distance returned is then the distance to vertex a.
	FeatureDegenerate
)

func (f Feature) String() string {
	switch f {
	case FeatureA:
		return "vertex a"
	case FeatureB:
		return "vertex b"
	case FeatureC:
		return "vertex c"
	case FeatureAB:
		return "edge ab"
	case FeatureAC:
		return "edge ac"
	case FeatureBC:
		return "edge bc"
	case FeatureFace:
		return "face"
	case FeatureDegenerate:
		return "degenerate"
	}
	return "unknown feature"
}

// DistanceToTriangle returns the euclidean distance from p to the closest
// point on triangle t. Degenerate triangles are tolerated.
func DistanceToTriangle(p r3.Vec, t r3.Triangle) float64 {
	_, dist := closestFeature(p, t, false)
	return dist
}

// ClosestFeature returns the feature of t closest to p and the distance to it.
func ClosestFeature(p r3.Vec, t r3.Triangle) (Feature, float64) {
	return closestFeature(p, t, false)
}

// LegacyDistanceToTriangle is like DistanceToTriangle except that points
// closest to edge b-c are measured against vertex c. Volumes sampled with
// it match those produced by older exporters bit for bit.
func LegacyDistanceToTriangle(p r3.Vec, t r3.Triangle) float64 {
	_, dist := closestFeature(p, t, true)
	return dist
}

// closestFeature classifies p against the Voronoi regions of the
// vertices, edges and face of t. See Ericson, Real-Time Collision
// Detection, section 5.1.5.
func closestFeature(p r3.Vec, t r3.Triangle, legacyBC bool) (Feature, float64) {
	a, b, c := t[0], t[1], t[2]
	ab := r3.Sub(b, a)
	ac := r3.Sub(c, a)
	ap := r3.Sub(p, a)
	d1 := r3.Dot(ab, ap)
	d2 := r3.Dot(ac, ap)
	if d1 <= 0 && d2 <= 0 {
		return FeatureA, r3.Norm(ap)
	}

	bp := r3.Sub(p, b)
	d3 := r3.Dot(ab, bp)
	d4 := r3.Dot(ac, bp)
	if d3 >= 0 && d4 <= d3 {
		return FeatureB, r3.Norm(bp)
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		if d1 == d3 {
			// a and b coincide.
			return FeatureDegenerate, r3.Norm(ap)
		}
		v := d1 / (d1 - d3)
		return FeatureAB, r3.Norm(r3.Sub(p, r3.Add(a, r3.Scale(v, ab))))
	}

	cp := r3.Sub(p, c)
	d5 := r3.Dot(ab, cp)
	d6 := r3.Dot(ac, cp)
	if d6 >= 0 && d5 <= d6 {
		return FeatureC, r3.Norm(cp)
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		if d2 == d6 {
			// a and c coincide.
			return FeatureDegenerate, r3.Norm(ap)
		}
		w := d2 / (d2 - d6)
		return FeatureAC, r3.Norm(r3.Sub(p, r3.Add(a, r3.Scale(w, ac))))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		if legacyBC {
			return FeatureBC, r3.Norm(cp)
		}
		den := (d4 - d3) + (d5 - d6)
		if den == 0 {
			// b and c coincide.
			return FeatureDegenerate, r3.Norm(ap)
		}
		w := (d4 - d3) / den
		return FeatureBC, r3.Norm(r3.Sub(p, r3.Add(b, r3.Scale(w, r3.Sub(c, b)))))
	}

	// p projects onto the interior of the face.
	n := r3.Cross(ab, ac)
	den := r3.Norm(n)
	if den == 0 {
		return FeatureDegenerate, r3.Norm(ap)
	}
	return FeatureFace, math.Abs(r3.Dot(ap, n)) / den
}
