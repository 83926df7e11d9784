package render

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/chewxy/math32"
	"github.com/hschendel/stl"
	"github.com/soypat/meshsdf"
	"gonum.org/v1/gonum/spatial/r3"
)

// ReadSTL reads the triangles of an ASCII or binary STL file.
// Stored normals are ignored; the winding of the vertices is kept.
func ReadSTL(r io.Reader) ([]r3.Triangle, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		// The format is detected by seeking back after reading the header.
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading STL: %w", err)
		}
		rs = bytes.NewReader(b)
	}
	solid, err := stl.ReadAll(rs)
	if err != nil {
		return nil, fmt.Errorf("reading STL: %w", err)
	}
	if len(solid.Triangles) == 0 {
		return nil, meshsdf.ErrEmptyMesh
	}
	tris := make([]r3.Triangle, len(solid.Triangles))
	for i, t := range solid.Triangles {
		for j, v := range t.Vertices {
			f := [3]float32(v)
			if bad3F32(f) {
				return nil, fmt.Errorf("%w: STL triangle %d vertex %d is %v", meshsdf.ErrNonFinite, i, j, f)
			}
			tris[i][j] = r3From3F32(f)
		}
	}
	return tris, nil
}

// OpenSTL reads the triangles of the STL file at path.
func OpenSTL(path string) ([]r3.Triangle, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	return ReadSTL(fp)
}

// WriteSTL writes triangles to w in binary STL format.
// Coordinates are stored in single precision.
func WriteSTL(w io.Writer, tris []r3.Triangle) error {
	if len(tris) == 0 {
		return errors.New("empty triangle slice")
	}
	header := stlHeader{
		Count: uint32(len(tris)),
	}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return err
	}
	var (
		d   stlTriangle
		buf [stlTriangleSize]byte
	)
	for _, t := range tris {
		d.Normal = to3F32(unitNormal(t))
		d.Vertex1 = to3F32(t[0])
		d.Vertex2 = to3F32(t[1])
		d.Vertex3 = to3F32(t[2])
		d.put(buf[:])
		if _, err := w.Write(buf[:]); err != nil {
			return err
		}
	}
	return nil
}

// CreateSTL writes triangles to a new binary STL file at path.
func CreateSTL(path string, tris []r3.Triangle) (err error) {
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fp.Close(); err == nil {
			err = cerr
		}
	}()
	bw := bufio.NewWriter(fp)
	if err = WriteSTL(bw, tris); err != nil {
		return err
	}
	return bw.Flush()
}

const stlTriangleSize = 50

// stlHeader defines the STL file header.
type stlHeader struct {
	_     [80]uint8 // Header
	Count uint32    // Number of triangles
}

// stlTriangle defines the triangle data within an STL file.
type stlTriangle struct {
	Normal  [3]float32
	Vertex1 [3]float32
	Vertex2 [3]float32
	Vertex3 [3]float32
	_       uint16 // Attribute byte count
}

func (t stlTriangle) put(b []byte) {
	if len(b) < stlTriangleSize {
		panic("need length 50 to marshal stlTriangle")
	}
	put3F32(b, t.Normal)
	put3F32(b[12:], t.Vertex1)
	put3F32(b[24:], t.Vertex2)
	put3F32(b[36:], t.Vertex3)
	binary.LittleEndian.PutUint16(b[48:], 0)
}

func put3F32(b []byte, f [3]float32) {
	_ = b[11] // early bounds check
	binary.LittleEndian.PutUint32(b, math.Float32bits(f[0]))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(f[1]))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(f[2]))
}

func bad3F32(f [3]float32) bool {
	return math32.IsNaN(f[0]) || math32.IsInf(f[0], 0) ||
		math32.IsNaN(f[1]) || math32.IsInf(f[1], 0) ||
		math32.IsNaN(f[2]) || math32.IsInf(f[2], 0)
}

func r3From3F32(f [3]float32) r3.Vec {
	return r3.Vec{X: float64(f[0]), Y: float64(f[1]), Z: float64(f[2])}
}

func to3F32(v r3.Vec) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

// unitNormal returns the normal of t following the right hand rule,
// or the zero vector for degenerate triangles.
func unitNormal(t r3.Triangle) r3.Vec {
	n := r3.Cross(r3.Sub(t[1], t[0]), r3.Sub(t[2], t[0]))
	l := r3.Norm(n)
	if l == 0 {
		return r3.Vec{}
	}
	return r3.Scale(1/l, n)
}
