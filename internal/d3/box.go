package d3

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Box is a 3d axis aligned bounding box.
type Box r3.Box

// EmptyBox returns an inverted box which contains no points. Including
// any point in it yields a box of zero size around that point.
func EmptyBox() Box {
	return Box{Min: Elem(math.MaxFloat64), Max: Elem(-math.MaxFloat64)}
}

// Include enlarges a 3d box to include a point.
func (a Box) Include(v r3.Vec) Box {
	return Box{
		Min: MinElem(a.Min, v),
		Max: MaxElem(a.Max, v),
	}
}

// IncludeTriangle enlarges a 3d box to include the corners of t.
func (a Box) IncludeTriangle(t r3.Triangle) Box {
	return a.Include(t[0]).Include(t[1]).Include(t[2])
}

// Size returns the size of a 3d box. The size of an empty box is negative.
func (a Box) Size() r3.Vec {
	return r3.Sub(a.Max, a.Min)
}

// Pad returns the box grown by margin on every side of every axis.
func (a Box) Pad(margin float64) Box {
	m := Elem(margin)
	return Box{
		Min: r3.Sub(a.Min, m),
		Max: r3.Add(a.Max, m),
	}
}
